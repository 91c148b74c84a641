package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store is the interface post and account deletion depend on. Uploaded
// objects are referenced from posts by their key, so deletes can purge
// them before the rows go away.
type Store interface {
	Upload(ctx context.Context, userID, filename, contentType string, size int64, r io.Reader) (*Object, error)
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, keys []string) error
}

// Object describes an uploaded file
type Object struct {
	Key  string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Config holds the S3-compatible store settings
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// MinioStore implements Store on an S3-compatible object store
type MinioStore struct {
	cfg    Config
	client *minio.Client
}

// NewMinioStore connects to the object store and ensures the bucket exists
func NewMinioStore(ctx context.Context, cfg Config) (*MinioStore, error) {
	client, err := minio.New(strings.TrimPrefix(cfg.Endpoint, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to media store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking media bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating media bucket: %w", err)
		}
	}

	log.Println("Media store connected, bucket:", cfg.Bucket)
	return &MinioStore{cfg: cfg, client: client}, nil
}

// Upload stores one file under a user-scoped key and returns its public
// reference
func (s *MinioStore) Upload(ctx context.Context, userID, filename, contentType string, size int64, r io.Reader) (*Object, error) {
	key := fmt.Sprintf("%s/%d%s", userID, time.Now().UnixNano(), path.Ext(filename))
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}
	return &Object{
		Key:  key,
		URL:  s.publicURL(key),
		Name: filename,
		Type: contentType,
	}, nil
}

// Delete removes one object by key
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{})
}

// DeleteAll removes the given objects, continuing past individual
// failures so one missing file does not block a deletion cascade.
func (s *MinioStore) DeleteAll(ctx context.Context, keys []string) error {
	var firstErr error
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.Delete(ctx, key); err != nil {
			log.Printf("Error deleting media object %s: %v", key, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *MinioStore) publicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key)
}
