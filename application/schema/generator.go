// Package schema generates JSON Schema documents for the SDK's wire types.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/errors"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, &errors.SchemaError{Type: fmt.Sprintf("%T", v), Err: err}
	}

	return jsonBytes, nil
}

// GenerateRequestSchema returns the schema of the wallet_issuePermissions
// request object as sent on the wire.
func GenerateRequestSchema() ([]byte, error) {
	return GenerateSchema(&entities.IssuePermissionsRequest{})
}
