// Package storage provides object storage for snapshot files and reports.
// Snapshots can live locally or in a COS bucket; the provider layer only
// sees local files, so remote snapshots are fetched before analysis.
package storage

import (
	"context"
	"fmt"
	"io"

	apperrors "github.com/heapscope/pkg/errors"

	"github.com/heapscope/pkg/config"
)

// Storage is the interface for snapshot and report object storage.
type Storage interface {
	// Upload stores data from reader under the given key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// UploadFile stores a local file under the given key.
	UploadFile(ctx context.Context, key string, localPath string) error

	// Download opens the object stored under the given key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// DownloadFile copies the object stored under the given key to a local file.
	DownloadFile(ctx context.Context, key string, localPath string) error

	// Exists reports whether an object exists under the given key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the object under the given key.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for the key, if the backend has one.
	GetURL(key string) string
}

// Type identifies a storage backend.
type Type string

const (
	TypeLocal Type = "local"
	TypeCOS   Type = "cos"
)

// SnapshotKey returns the storage key for a snapshot file.
func SnapshotKey(snapshotID string) string {
	return fmt.Sprintf("snapshots/%s.heap.json", snapshotID)
}

// ReportKey returns the storage key for a run's report artifact.
func ReportKey(runUUID, resultType string) string {
	return fmt.Sprintf("reports/%s/%s.json", runUUID, resultType)
}

// New creates a Storage backend from the configuration.
func New(cfg *config.Storage) (Storage, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	switch Type(cfg.Type) {
	case TypeCOS:
		return NewCOSStorage(&COSConfig{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Domain:    cfg.Domain,
			Scheme:    cfg.Scheme,
		})
	default:
		return NewLocalStorage(cfg.LocalPath)
	}
}

// validate checks the storage configuration before constructing a backend.
func validate(cfg *config.Storage) error {
	if cfg == nil {
		return apperrors.New(apperrors.CodeConfigError, "storage config is nil")
	}

	storageType := Type(cfg.Type)
	if storageType == "" {
		storageType = TypeLocal
	}

	switch storageType {
	case TypeLocal:
		if cfg.LocalPath == "" {
			return apperrors.New(apperrors.CodeConfigError, "local storage path is required")
		}
	case TypeCOS:
		if cfg.Bucket == "" || cfg.Region == "" {
			return apperrors.New(apperrors.CodeConfigError, "COS bucket and region are required")
		}
		if cfg.SecretID == "" || cfg.SecretKey == "" {
			return apperrors.New(apperrors.CodeConfigError, "COS credentials are required")
		}
	default:
		return apperrors.New(apperrors.CodeConfigError,
			fmt.Sprintf("unsupported storage type: %s", cfg.Type))
	}

	return nil
}
