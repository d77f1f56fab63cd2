// Package parser decodes permission request documents written by users.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

// ErrEmptyDocument is returned when the input holds no parameters.
var ErrEmptyDocument = errors.New("parameters document is empty")

// ParamsParser implements ports.ParamsParser for YAML and JSON documents.
// JSON is accepted as a subset of YAML.
type ParamsParser struct{}

var _ ports.ParamsParser = (*ParamsParser)(nil)

// NewParamsParser creates a new ParamsParser.
func NewParamsParser() *ParamsParser {
	return &ParamsParser{}
}

// Parse decodes data into IssuePermissionsParameters. Unknown fields, including
// those inside a known permission's data, and missing amounts are rejected so
// typos surface before anything is sent to a wallet.
//
// Example document:
//
//	expiry: 1716846083638
//	permissions:
//	  - type: native-token-limit
//	    data:
//	      amount: 69420
//	    required: true
func (p *ParamsParser) Parse(data []byte) (*entities.IssuePermissionsParameters, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var params entities.IssuePermissionsParameters
	if err := dec.Decode(&params); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to parse parameters: %w", err)
	}
	for i, perm := range params.Permissions {
		if err := perm.CheckData(); err != nil {
			return nil, fmt.Errorf("failed to parse parameters: permissions[%d]: %w", i, err)
		}
	}
	return &params, nil
}
