package ports

import "github.com/reglet-dev/wallet-sdk/domain/entities"

// ParamsParser decodes a permission request document.
type ParamsParser interface {
	Parse(data []byte) (*entities.IssuePermissionsParameters, error)
}
