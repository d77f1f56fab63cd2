package ports

import "github.com/reglet-dev/wallet-sdk/domain/entities"

// Prompter handles interactive confirmation before a permission request is sent.
type Prompter interface {
	// IsInteractive returns true if running in an interactive terminal.
	IsInteractive() bool

	// ConfirmPermissions shows params and asks whether to send the request.
	ConfirmPermissions(params *entities.IssuePermissionsParameters) (bool, error)

	// FormatNonInteractiveError creates a helpful error for non-interactive mode.
	FormatNonInteractiveError(params *entities.IssuePermissionsParameters) error
}
