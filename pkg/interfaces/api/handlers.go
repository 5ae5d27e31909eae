package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/infrastructure/blobstore"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type handler struct {
	store   blobstore.Store
	logger  logrus.FieldLogger
	maxBody int64
}

func (h *handler) health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("blob store unavailable")
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) key(c *gin.Context) (string, bool) {
	key := c.Param("key")
	if !validKey.MatchString(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sync key"})
		return "", false
	}
	return key, true
}

func (h *handler) get(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}
	doc, err := h.store.Get(c.Request.Context(), key)
	if errors.Is(err, blobstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset for key"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("key", key).Error("failed to read dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read dataset"})
		return
	}
	c.Data(http.StatusOK, "application/json", doc)
}

// put checks the body decodes as a dataset and stores it verbatim
func (h *handler) put(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "dataset too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body: " + err.Error()})
		return
	}
	var data entities.Dataset
	if err := json.Unmarshal(body, &data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body is not a dataset: " + err.Error()})
		return
	}

	if err := h.store.Put(c.Request.Context(), key, body); err != nil {
		h.logger.WithError(err).WithField("key", key).Error("failed to store dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store dataset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"records":      len(data.Records),
		"orders":       len(data.Orders),
		"customers":    len(data.Customers),
		"transactions": len(data.Transactions),
	})
}
