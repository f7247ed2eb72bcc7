package storage

import "context"

// Provider 定义对象存储的上传操作，返回可公开访问的URL
type Provider interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}
