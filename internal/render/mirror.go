package render

import (
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nguyentantai21042004/audio-report/internal/config"
)

type minioMirror struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioMirror connects to the S3-compatible store described by cfg.
func NewMinioMirror(cfg config.S3Config) (Mirror, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &minioMirror{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (m *minioMirror) Put(ctx context.Context, localPath, objectName, contentType string) error {
	key := objectName
	if m.prefix != "" {
		key = path.Join(m.prefix, objectName)
	}

	_, err := m.client.FPutObject(ctx, m.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
