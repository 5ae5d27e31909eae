package memory

import (
	"sort"

	"github.com/vsinha/factoryops/pkg/domain/repositories"
)

// collection keeps entities by id. Values are copied in and out so callers
// never share state with the store.
type collection[T any] struct {
	items map[string]T
	id    func(*T) string
	less  func(a, b *T) bool
}

func newCollection[T any](id func(*T) string, less func(a, b *T) bool) *collection[T] {
	return &collection[T]{items: make(map[string]T), id: id, less: less}
}

func (c *collection[T]) list() []*T {
	out := make([]*T, 0, len(c.items))
	for _, v := range c.items {
		v := v
		out = append(out, &v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c.less(out[i], out[j]) {
			return true
		}
		if c.less(out[j], out[i]) {
			return false
		}
		return c.id(out[i]) < c.id(out[j])
	})
	return out
}

func (c *collection[T]) get(id string) (*T, error) {
	v, ok := c.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &v, nil
}

func (c *collection[T]) save(v *T) {
	c.items[c.id(v)] = *v
}

func (c *collection[T]) delete(id string) error {
	if _, ok := c.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(c.items, id)
	return nil
}

func (c *collection[T]) replace(values []*T) {
	c.items = make(map[string]T, len(values))
	for _, v := range values {
		c.save(v)
	}
}
