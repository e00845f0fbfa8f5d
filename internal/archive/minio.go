// Package archive keeps copies of generated images in S3-compatible object
// storage. Archiving is best-effort: failures are logged by the caller and
// never fail a turn.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type Store struct {
	mc     *minio.Client
	bucket string
}

func New(cfg Config) (*Store, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &Store{mc: mc, bucket: cfg.Bucket}, nil
}

// Init creates the archive bucket if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}

	if !exists {
		if err := s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}

	return nil
}

// SaveImage stores one generated image under the session it belongs to and
// returns the object name.
func (s *Store) SaveImage(ctx context.Context, sessionID string, data []byte) (string, error) {
	name := fmt.Sprintf("%s/%s.png", sessionID, time.Now().UTC().Format("20060102-150405.000"))

	_, err := s.mc.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "image/png",
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}

	return name, nil
}
