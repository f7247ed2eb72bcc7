package storage

import (
	"context"
	"sync"
)

// MemoryStorage 仅用于测试，不做真实上传
type MemoryStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

var _ Provider = (*MemoryStorage)(nil)

func (s *MemoryStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[path] = buf
	return "mem://" + path, nil
}

// Blob 返回已上传的对象内容（测试用）
func (s *MemoryStorage) Blob(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[path]
	return data, ok
}
