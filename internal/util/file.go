package util

import (
	"github.com/google/uuid"
)

// NewBlobName 生成唯一的对象存储文件名
func NewBlobName(ext string) string {
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	return uuid.New().String() + ext
}
