package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/Mzarifin59/letter-pln-sub001/internal/workflow"
)

// StorageService stores signature images and other attachments in object
// storage. Without a configured minio client it still hands out object
// names so the workflow keeps working in dev and tests.
type StorageService struct {
	client *minio.Client
	bucket string
}

// NewStorageService creates the storage service.
func NewStorageService(client *minio.Client, bucket string) *StorageService {
	return &StorageService{client: client, bucket: bucket}
}

// Put stores a stream and returns its object name.
func (s *StorageService) Put(ctx context.Context, reader io.Reader, size int64, contentType, fileName string) (string, error) {
	objectName := fmt.Sprintf("signatures/%s/%s%s",
		time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(fileName))

	if s.client != nil {
		_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return "", fmt.Errorf("upload object: %w", err)
		}
	}

	return objectName, nil
}

// PutDataURL decodes a canvas-drawn signature (data:image/...;base64,..)
// and stores it. Malformed input is a validation error, not an internal
// one: the data came straight from the caller.
func (s *StorageService) PutDataURL(ctx context.Context, dataURL string) (string, error) {
	meta, payload, found := strings.Cut(dataURL, ",")
	if !found || !strings.HasPrefix(meta, "data:") {
		return "", fmt.Errorf("%w: malformed signature data URL", workflow.ErrValidation)
	}

	contentType := strings.TrimPrefix(meta, "data:")
	contentType = strings.TrimSuffix(contentType, ";base64")

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: undecodable signature data: %v", workflow.ErrValidation, err)
	}

	ext := ".png"
	if exts, _ := extForContentType(contentType); exts != "" {
		ext = exts
	}

	return s.Put(ctx, bytes.NewReader(raw), int64(len(raw)), contentType, "signature"+ext)
}

func extForContentType(contentType string) (string, bool) {
	switch contentType {
	case "image/png":
		return ".png", true
	case "image/jpeg":
		return ".jpg", true
	case "image/svg+xml":
		return ".svg", true
	default:
		return "", false
	}
}
