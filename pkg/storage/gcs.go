package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type Config struct {
	Bucket          string
	CredentialsFile string
	PublicBaseURL   string
}

// ImageStore uploads public objects into a single GCS bucket.
type ImageStore struct {
	client        *gcs.Client
	bucket        string
	publicBaseURL string
}

func NewImageStore(ctx context.Context, cfg *Config) (*ImageStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("storage: bucket is empty")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	return &ImageStore{client: client, bucket: cfg.Bucket, publicBaseURL: base}, nil
}

// Upload stores r under prefix/<random>-<fileName> and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, prefix, fileName, contentType string, r io.Reader) (string, error) {
	objectPath := ObjectPath(prefix, fileName, newObjectID())

	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, objectPath), nil
}

func (s *ImageStore) Close() error {
	return s.client.Close()
}

// ObjectPath builds a bucket-relative path with separators stripped from user input.
func ObjectPath(prefix, fileName, id string) string {
	name := sanitizePathSegment(path.Base(fileName))
	if name == "" {
		name = "file"
	}
	return path.Join(sanitizePrefix(prefix), id+"-"+name)
}

// sanitizePrefix keeps the folders of prefix, dropping empty, "." and ".." segments.
func sanitizePrefix(prefix string) string {
	var parts []string
	for _, seg := range strings.Split(strings.ReplaceAll(prefix, "\\", "/"), "/") {
		if seg = sanitizePathSegment(seg); seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}

func sanitizePathSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return strings.Trim(s, ". ")
}

func newObjectID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}
	return fmt.Sprintf("%d", time.Now().UTC().UnixNano())
}
