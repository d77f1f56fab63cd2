// Package validation checks wire payloads against their JSON Schema.
package validation

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reglet-dev/wallet-sdk/application/schema"
	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/errors"
)

const requestSchemaURL = "wallet_issuePermissions.request.json"

// RequestValidator checks formatted wallet_issuePermissions requests against
// the schema generated from entities.IssuePermissionsRequest. It checks shape
// only; what a permission allows is for the wallet to decide.
type RequestValidator struct {
	schema *jsonschema.Schema
}

// NewRequestValidator compiles the request schema.
func NewRequestValidator() (*RequestValidator, error) {
	raw, err := schema.GenerateRequestSchema()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(requestSchemaURL, bytes.NewReader(raw)); err != nil {
		return nil, &errors.SchemaError{Type: "IssuePermissionsRequest", Err: err}
	}
	sch, err := compiler.Compile(requestSchemaURL)
	if err != nil {
		return nil, &errors.SchemaError{Type: "IssuePermissionsRequest", Err: err}
	}
	return &RequestValidator{schema: sch}, nil
}

// Validate returns a *errors.WireFormatError describing every violation, or nil.
func (v *RequestValidator) Validate(request *entities.IssuePermissionsRequest) error {
	b, err := json.Marshal(request)
	if err != nil {
		return &errors.WireFormatError{Operation: "encode", Type: "IssuePermissionsRequest", Err: err}
	}

	// Decode with UseNumber so large expiry values keep full precision.
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var obj interface{}
	if err := dec.Decode(&obj); err != nil {
		return &errors.WireFormatError{Operation: "encode", Type: "IssuePermissionsRequest", Err: err}
	}

	if err := v.schema.Validate(obj); err != nil {
		return &errors.WireFormatError{
			Operation: "validate",
			Type:      "IssuePermissionsRequest",
			Err:       err,
		}
	}
	return nil
}
