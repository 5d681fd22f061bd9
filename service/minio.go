package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pskill9/PreclinicalResearch/config"
	"github.com/pskill9/PreclinicalResearch/model"
)

// MinioService archives submission rows as JSON objects, one per row.
type MinioService struct {
	client *minio.Client
	bucket string
	config *config.MinioConfig
}

// archivedRow is the object body written for each row.
type archivedRow struct {
	*model.Row
	Header []string `json:"header"`
	Values []string `json:"values"`
}

func NewMinioService(cfg *config.MinioConfig) (*MinioService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioService{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *MinioService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ObjectName returns the object key a row is archived under.
func (s *MinioService) ObjectName(row *model.Row) string {
	return path.Join(s.config.Prefix, row.ReceivedAt.UTC().Format("2006/01/02"), row.ID+".json")
}

// AppendRow uploads row as a JSON object.
func (s *MinioService) AppendRow(ctx context.Context, row *model.Row) error {
	data, err := json.Marshal(archivedRow{Row: row, Header: model.SheetHeader, Values: row.Values()})
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}

	objectName := s.ObjectName(row)
	_, err = s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload row: %w", err)
	}

	slog.Debug("row archived", "submission_id", row.ID, "url", s.GetPublicURL(objectName))
	return nil
}

// GetPublicURL returns a public URL for the object (if bucket policy allows)
func (s *MinioService) GetPublicURL(objectName string) string {
	protocol := "http"
	if s.config.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.config.Endpoint, s.bucket, objectName)
}
