package service

import (
	"context"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/storage"
	"github.com/SangJLee1103/InstagramClone/internal/util"
)

// ImageUploader 负责把图片字节写入对象存储并返回可访问URL
type ImageUploader struct {
	provider storage.Provider
}

// NewImageUploader 创建一个新的 ImageUploader 实例
func NewImageUploader(provider storage.Provider) *ImageUploader {
	return &ImageUploader{provider: provider}
}

func (u *ImageUploader) UploadImage(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New(errors.ErrValidation, "empty image data")
	}

	path := "profile_images/" + util.NewBlobName(".jpg")
	url, err := u.provider.Upload(ctx, path, image, "image/jpeg")
	if err != nil {
		return "", errors.Wrap(errors.ErrNetwork, "upload image", err)
	}
	return url, nil
}

type ImageUploaderInterface interface {
	UploadImage(ctx context.Context, image []byte) (string, error)
}

var _ ImageUploaderInterface = (*ImageUploader)(nil)
