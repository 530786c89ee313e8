package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	financeapp "github.com/finops/backend/internal/application/finance"
)

var _ financeapp.ReceiptStorage = (*MemoryReceiptStorage)(nil)

// StoredObject is a receipt held by MemoryReceiptStorage
type StoredObject struct {
	Data        []byte
	ContentType string
}

// MemoryReceiptStorage keeps receipts in process memory. Used for local
// development when object storage is disabled, and in tests.
type MemoryReceiptStorage struct {
	// BaseURL prefixes the download URLs handed out by PresignDownload
	BaseURL string
	Expiry  time.Duration

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// NewMemoryReceiptStorage creates an empty store
func NewMemoryReceiptStorage() *MemoryReceiptStorage {
	return &MemoryReceiptStorage{
		BaseURL: "http://localhost/receipts",
		Expiry:  15 * time.Minute,
		objects: make(map[string]StoredObject),
	}
}

// Upload reads body fully and stores it under key
func (m *MemoryReceiptStorage) Upload(_ context.Context, key string, body io.Reader, size int64, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, body)
	if err != nil {
		return fmt.Errorf("failed to read receipt: %w", err)
	}
	if size >= 0 && n != size {
		return fmt.Errorf("receipt size mismatch: declared %d, read %d", size, n)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = StoredObject{Data: buf.Bytes(), ContentType: contentType}
	return nil
}

// PresignDownload returns a fake signed URL for key
func (m *MemoryReceiptStorage) PresignDownload(_ context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(m.Expiry)
	return m.BaseURL + "/" + key + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339)), expiresAt, nil
}

// Delete removes key
func (m *MemoryReceiptStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Object returns the stored receipt for key
func (m *MemoryReceiptStorage) Object(key string) (StoredObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}
