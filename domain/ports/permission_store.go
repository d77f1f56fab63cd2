package ports

import "github.com/reglet-dev/wallet-sdk/domain/entities"

// PermissionStore provides persistence for granted permissions.
type PermissionStore interface {
	// Load retrieves all stored grants.
	// Returns an empty PermissionSet (not error) if nothing was stored yet.
	Load() (*entities.PermissionSet, error)

	// Save persists the given grants, replacing what was stored.
	Save(grants *entities.PermissionSet) error

	// ConfigPath returns the path to the backing store (for user messaging).
	ConfigPath() string
}
