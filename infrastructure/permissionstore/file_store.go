// Package permissionstore persists granted permissions between runs.
package permissionstore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	path     string      // Path to the permissions file
	dirPerm  os.FileMode // Permission for created directories
	filePerm os.FileMode // Permission for the permissions file
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		path:     DefaultPath(),
		dirPerm:  0o755,
		filePerm: 0o600, // permissions contexts are bearer credentials
	}
}

// DefaultPath returns ~/.walletctl/permissions.yaml, or a path relative to the
// working directory if the home directory cannot be resolved.
func DefaultPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".walletctl", "permissions.yaml")
	}
	return filepath.Join(home, ".walletctl", "permissions.yaml")
}

// FileStoreOption configures a FileStore instance.
type FileStoreOption func(*fileStoreConfig)

// WithPath sets the path to the permissions file. A leading ~ is expanded.
// An empty path is ignored.
func WithPath(path string) FileStoreOption {
	return func(c *fileStoreConfig) {
		if path == "" {
			return
		}
		if expanded, err := homedir.Expand(path); err == nil {
			path = expanded
		}
		c.path = path
	}
}

// WithFilePermissions sets the file permissions for the permissions file.
// Default is 0o600 (user-only). Use with caution.
func WithFilePermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// WithDirPermissions sets the permissions for created directories.
// Default is 0o755.
func WithDirPermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.dirPerm = perm
	}
}

var _ ports.PermissionStore = (*FileStore)(nil)

// FileStore provides YAML file persistence for granted permissions.
// Writes replace the file atomically.
type FileStore struct {
	config fileStoreConfig
}

// NewFileStore creates a new FileStore with the given options.
func NewFileStore(opts ...FileStoreOption) *FileStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{config: cfg}
}

// Load retrieves all stored grants.
func (s *FileStore) Load() (*entities.PermissionSet, error) {
	data, err := os.ReadFile(s.config.path)
	if os.IsNotExist(err) {
		return &entities.PermissionSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read permission store: %w", err)
	}

	var set entities.PermissionSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse permission store %s: %w", s.config.path, err)
	}
	return &set, nil
}

// Save persists grants, replacing the stored set.
func (s *FileStore) Save(grants *entities.PermissionSet) error {
	if grants == nil {
		grants = &entities.PermissionSet{}
	}

	data, err := yaml.Marshal(grants)
	if err != nil {
		return fmt.Errorf("failed to marshal permissions: %w", err)
	}

	dir := filepath.Dir(s.config.path)
	if err := os.MkdirAll(dir, s.config.dirPerm); err != nil {
		return fmt.Errorf("failed to create permission store directory: %w", err)
	}

	if err := atomic.WriteFile(s.config.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write permission store: %w", err)
	}
	if err := os.Chmod(s.config.path, s.config.filePerm); err != nil {
		return fmt.Errorf("failed to set permission store mode: %w", err)
	}
	return nil
}

// ConfigPath returns the path to the backing store.
func (s *FileStore) ConfigPath() string {
	return s.config.path
}
