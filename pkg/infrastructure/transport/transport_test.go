package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	fixtures "github.com/vsinha/factoryops/pkg/application/services/testing"
	"github.com/vsinha/factoryops/pkg/domain/entities"
)

func TestHTTPTransport_PushPull(t *testing.T) {
	var stored []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %s", ct)
			}
			stored, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			w.Write(stored)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	tr := NewHTTPTransport(server.URL, 5*time.Second)
	sample := fixtures.BuildSampleDataset()

	if err := tr.Push(ctx, sample); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	var shape map[string]json.RawMessage
	if err := json.Unmarshal(stored, &shape); err != nil {
		t.Fatalf("Pushed body is not JSON: %v", err)
	}
	for _, key := range []string{"records", "orders", "customers"} {
		if _, ok := shape[key]; !ok {
			t.Errorf("Expected key %q in pushed document", key)
		}
	}

	pulled, err := tr.Pull(ctx)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if len(pulled.Records) != len(sample.Records) || len(pulled.Orders) != len(sample.Orders) {
		t.Fatalf("Pulled dataset differs: %d records, %d orders", len(pulled.Records), len(pulled.Orders))
	}
	if !pulled.Orders[0].TotalWeightKg.Equal(sample.Orders[0].TotalWeightKg) {
		t.Errorf("Expected total %s, got %s", sample.Orders[0].TotalWeightKg, pulled.Orders[0].TotalWeightKg)
	}
}

func TestHTTPTransport_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte("not json"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx := context.Background()
	tr := NewHTTPTransport(server.URL, time.Second)

	if err := tr.Push(ctx, &entities.Dataset{}); err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("Expected status 502 error, got %v", err)
	}
	if _, err := tr.Pull(ctx); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("Expected decode error, got %v", err)
	}
}

func TestHTTPTransport_PullsPlainNumbers(t *testing.T) {
	body := `{"records":[{"id":"R1","date":"2025-12-03","productName":"SPARKWELD 6013","size":"2.6 x 350","weightKg":500}],"orders":[],"customers":[]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	data, err := NewHTTPTransport(server.URL, time.Second).Pull(context.Background())
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if !data.Records[0].WeightKg.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected weight 500, got %s", data.Records[0].WeightKg)
	}
	if data.Transactions != nil {
		t.Errorf("Expected no transactions in a document without them, got %d", len(data.Transactions))
	}
}

func TestFileTransport_PushPull(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "remote.json")
	tr := NewFileTransport(path)

	if _, err := tr.Pull(ctx); err == nil {
		t.Error("Expected error pulling a missing file")
	}

	sample := fixtures.BuildSampleDataset()
	if err := tr.Push(ctx, sample); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	pulled, err := tr.Pull(ctx)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if len(pulled.Transactions) != len(sample.Transactions) {
		t.Errorf("Expected %d transactions, got %d", len(sample.Transactions), len(pulled.Transactions))
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := tr.Push(cancelled, sample); err == nil {
		t.Error("Expected error on cancelled context")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"", "<nil>"},
		{"  ", "<nil>"},
		{"file:///tmp/factory.json", "*transport.FileTransport"},
		{"https://sync.example.com/sync/plant-1", "*transport.HTTPTransport"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got := fmt.Sprintf("%T", New(tt.target, time.Second))
			if tt.want == "<nil>" {
				if New(tt.target, time.Second) != nil {
					t.Errorf("Expected nil transport, got %s", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
