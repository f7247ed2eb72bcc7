package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SangJLee1103/InstagramClone/internal/util"

	"go.uber.org/zap"
)

type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

var _ Provider = (*LocalStorage)(nil)

func (s *LocalStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	fullPath := filepath.Join(s.basePath, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	util.Logger.Info("blob uploaded", zap.String("fullPath", fullPath))
	return path, nil // 返回相对路径
}
