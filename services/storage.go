package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"itrack_admin/config"
	"itrack_admin/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StorageProvider defines the interface for file storage operations
type StorageProvider interface {
	UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error)
	Delete(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error) // Returns reader, content-type, error
	GetPublicURL(key string) string
	IsConfigured() bool
}

// StorageResult contains information about the stored file
type StorageResult struct {
	Key      string // Storage key/path
	FileName string
	FileSize int64
	MimeType string
	URL      string // Public or signed URL
}

// Storage is the global storage instance
var Storage StorageProvider

// InitializeStorage sets up the storage provider based on configuration
func InitializeStorage(cfg *config.Config) {
	if !cfg.R2Configured() {
		Storage = NewLocalStorage(cfg.ExportDir)
		logrus.WithField("path", cfg.ExportDir).Info("Storage ready (local filesystem)")
		return
	}

	r2, err := NewR2Storage(cfg)
	if err != nil {
		logrus.WithError(err).Warn("Failed to initialize R2 storage, falling back to local storage")
		Storage = NewLocalStorage(cfg.ExportDir)
		return
	}

	// Test R2 connection (HeadBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = r2.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: &cfg.R2BucketName,
	})
	if err != nil {
		logrus.WithError(err).Warn("R2 bucket connection test failed, falling back to local storage")
		Storage = NewLocalStorage(cfg.ExportDir)
		return
	}

	Storage = r2
	logrus.WithField("bucket", cfg.R2BucketName).Info("Storage ready (Cloudflare R2)")
}

// R2Storage implements StorageProvider for Cloudflare R2
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewR2Storage creates a new R2 storage provider
func NewR2Storage(cfg *config.Config) (*R2Storage, error) {
	// R2 endpoint format: https://<account_id>.r2.cloudflarestorage.com
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)

	creds := credentials.NewStaticCredentialsProvider(
		cfg.R2AccessKeyID,
		cfg.R2SecretAccessKey,
		"",
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion("auto"), // R2 uses "auto" region
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:    client,
		bucket:    cfg.R2BucketName,
		publicURL: cfg.R2PublicURL,
	}, nil
}

// IsConfigured returns true if R2 is properly configured
func (r *R2Storage) IsConfigured() bool {
	return r.client != nil && r.bucket != ""
}

// UploadReader uploads content from a reader to R2
func (r *R2Storage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload to R2: %w", err)
	}

	return &StorageResult{
		Key:      key,
		FileName: filepath.Base(key),
		FileSize: size,
		MimeType: contentType,
		URL:      r.GetPublicURL(key),
	}, nil
}

// Delete removes a file from R2
func (r *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// Get retrieves a file from R2 and returns a reader
func (r *R2Storage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object from R2: %w", err)
	}

	contentType := "application/octet-stream"
	if result.ContentType != nil {
		contentType = *result.ContentType
	}
	return result.Body, contentType, nil
}

// GetPublicURL returns the public URL for a file, or "" when the bucket is private
func (r *R2Storage) GetPublicURL(key string) string {
	if r.publicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(r.publicURL, "/"), key)
	}
	return ""
}

// LocalStorage implements StorageProvider for local filesystem
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a new local storage provider
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// IsConfigured returns true (local storage is always available)
func (l *LocalStorage) IsConfigured() bool {
	return true
}

// UploadReader saves content from a reader to local filesystem
func (l *LocalStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	fullPath := filepath.Join(l.baseDir, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StorageResult{
		Key:      key,
		FileName: filepath.Base(key),
		FileSize: written,
		MimeType: contentType,
		URL:      l.GetPublicURL(key),
	}, nil
}

// Delete removes a file from local filesystem
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(l.baseDir, key)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Get retrieves a file from local filesystem and returns a reader
func (l *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	file, err := os.Open(filepath.Join(l.baseDir, key))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := "application/octet-stream"
	if strings.ToLower(filepath.Ext(key)) == ".xlsx" {
		contentType = xlsxContentType
	}
	return file, contentType, nil
}

// GetPublicURL returns the local file path
func (l *LocalStorage) GetPublicURL(key string) string {
	return "/" + filepath.ToSlash(filepath.Join(l.baseDir, key))
}

// GenerateExportKey creates a unique storage key for a region export workbook
func GenerateExportKey(now time.Time) string {
	return fmt.Sprintf("regions/%s_regions_%s.xlsx", now.UTC().Format("20060102-150405"), uuid.New().String()[:8])
}

// ExportDownloadPrefix is the app route that streams exports from a private bucket
const ExportDownloadPrefix = "/regions/exports/"

// ErrExportNotFound is returned for exports that were never recorded or already expired
var ErrExportNotFound = errors.New("region export not found")

// StoreRegionExport uploads an export workbook, records it and returns a URL it can be
// downloaded from. Private buckets have no public URL; those exports go through the app.
func StoreRegionExport(ctx context.Context, database *gorm.DB, content []byte, regionCount int, actorID string) (*StorageResult, error) {
	if Storage == nil || !Storage.IsConfigured() {
		return nil, fmt.Errorf("storage is not initialized")
	}

	key := GenerateExportKey(time.Now())
	result, err := Storage.UploadReader(ctx, bytes.NewReader(content), key, xlsxContentType, int64(len(content)))
	if err != nil {
		return nil, err
	}

	export := &models.RegionExport{
		Key:         key,
		FileName:    result.FileName,
		FileSize:    result.FileSize,
		RegionCount: regionCount,
		ActorID:     actorID,
	}
	if err := database.Create(export).Error; err != nil {
		if delErr := Storage.Delete(ctx, key); delErr != nil {
			logrus.WithError(delErr).WithField("key", key).Warn("Failed to remove unrecorded export")
		}
		return nil, fmt.Errorf("failed to record region export: %w", err)
	}

	if result.URL == "" {
		result.URL = ExportDownloadPrefix + url.PathEscape(result.FileName)
	}
	return result, nil
}

// FindRegionExport looks up a recorded export by its file name
func FindRegionExport(database *gorm.DB, fileName string) (*models.RegionExport, error) {
	var export models.RegionExport
	if err := database.First(&export, "file_name = ?", fileName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExportNotFound
		}
		return nil, fmt.Errorf("failed to load region export: %w", err)
	}
	return &export, nil
}

// PurgeExpiredExports deletes exports older than ttl from storage and forgets them.
// An object that cannot be deleted keeps its row so the next run retries it.
func PurgeExpiredExports(ctx context.Context, database *gorm.DB, ttl time.Duration) (int64, error) {
	if Storage == nil {
		return 0, fmt.Errorf("storage is not initialized")
	}

	var expired []models.RegionExport
	if err := database.Where("created_at < ?", time.Now().Add(-ttl)).Find(&expired).Error; err != nil {
		return 0, fmt.Errorf("failed to list expired region exports: %w", err)
	}

	var removed int64
	for _, export := range expired {
		if err := Storage.Delete(ctx, export.Key); err != nil {
			logrus.WithError(err).WithField("key", export.Key).Warn("Failed to delete expired export")
			continue
		}
		if err := database.Delete(&models.RegionExport{}, "id = ?", export.ID).Error; err != nil {
			return removed, fmt.Errorf("failed to forget region export: %w", err)
		}
		removed++
	}
	return removed, nil
}
