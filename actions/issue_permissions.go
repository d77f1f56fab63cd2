// Package actions implements wallet JSON-RPC actions on top of ports.Client.
package actions

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/errors"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

// ErrNilParameters is returned when IssuePermissions is called without parameters.
var ErrNilParameters = stdErrors.New("issue permissions parameters are required")

// IssuePermissionsFunc is the signature of IssuePermissions.
type IssuePermissionsFunc func(
	ctx context.Context,
	client ports.Client,
	params *entities.IssuePermissionsParameters,
) (*entities.IssuePermissionsReturnType, error)

var _ IssuePermissionsFunc = IssuePermissions

// IssuePermissions requests permissions from a wallet to perform actions on
// behalf of a user (ERC-7715, wallet_issuePermissions).
//
// The request is sent exactly once; errors from the client are returned
// unmodified. params is never mutated.
//
// Example usage:
//
//	required := true
//	result, err := actions.IssuePermissions(ctx, c, &entities.IssuePermissionsParameters{
//	    Expiry: 1716846083638,
//	    Permissions: []entities.Permission{
//	        {Type: entities.PermissionContractCall, Data: entities.ContractCall{Address: common.Address{}}},
//	        {Type: entities.PermissionNativeTokenLimit, Data: entities.NativeTokenLimit{Amount: big.NewInt(69420)}, Required: &required},
//	    },
//	})
func IssuePermissions(
	ctx context.Context,
	client ports.Client,
	params *entities.IssuePermissionsParameters,
) (*entities.IssuePermissionsReturnType, error) {
	if params == nil {
		return nil, ErrNilParameters
	}

	request, err := FormatParameters(params)
	if err != nil {
		return nil, err
	}

	var response entities.IssuePermissionsResponse
	if err := client.Request(ctx, &response, entities.MethodIssuePermissions, request); err != nil {
		return nil, err
	}

	return formatResult(&response)
}

// FormatParameters converts params into the wallet_issuePermissions request
// object without sending it.
func FormatParameters(params *entities.IssuePermissionsParameters) (*entities.IssuePermissionsRequest, error) {
	permissions := make([]entities.PermissionWire, 0, len(params.Permissions))
	for i, p := range params.Permissions {
		data, err := encodePermissionData(p)
		if err != nil {
			return nil, &errors.WireFormatError{
				Operation: "encode",
				Type:      fmt.Sprintf("permissions[%d] (%s)", i, p.Type),
				Err:       err,
			}
		}
		permissions = append(permissions, entities.PermissionWire{
			Type:     string(p.Type),
			Data:     data,
			Required: p.IsRequired(),
		})
	}

	return &entities.IssuePermissionsRequest{
		Expiry:      params.Expiry,
		Permissions: permissions,
		Signer:      resolveSigner(params),
	}, nil
}

// resolveSigner derives the wire signer: a JSON-RPC account signs through the
// wallet, a local account through its address, otherwise the explicit signer.
func resolveSigner(params *entities.IssuePermissionsParameters) *entities.Signer {
	if params.Account != nil {
		switch params.Account.Type {
		case entities.AccountTypeJSONRPC:
			return &entities.Signer{Type: entities.SignerWallet}
		case entities.AccountTypeLocal:
			return &entities.Signer{
				Type: entities.SignerAccount,
				Data: entities.AccountSignerData{ID: params.Account.Address},
			}
		}
	}
	return params.Signer
}

func encodePermissionData(p entities.Permission) (any, error) {
	if err := p.CheckData(); err != nil {
		return nil, err
	}
	switch data := p.Data.(type) {
	case entities.NativeTokenLimit:
		return entities.AmountWire{Amount: (*hexutil.Big)(data.Amount)}, nil
	case *entities.NativeTokenLimit:
		return entities.AmountWire{Amount: (*hexutil.Big)(data.Amount)}, nil
	case entities.GasLimit:
		return entities.AmountWire{Amount: (*hexutil.Big)(data.Amount)}, nil
	case *entities.GasLimit:
		return entities.AmountWire{Amount: (*hexutil.Big)(data.Amount)}, nil
	case entities.ERC20TokenLimit:
		return entities.ERC20TokenLimitWire{Address: data.Address, Amount: (*hexutil.Big)(data.Amount)}, nil
	case *entities.ERC20TokenLimit:
		return entities.ERC20TokenLimitWire{Address: data.Address, Amount: (*hexutil.Big)(data.Amount)}, nil
	case entities.RateLimit, *entities.RateLimit, entities.ContractCall, *entities.ContractCall:
		return data, nil
	}

	if p.Type.IsKnown() {
		return nil, fmt.Errorf("data of type %T does not match permission type %s", p.Data, p.Type)
	}
	return p.Data, nil
}

func formatResult(response *entities.IssuePermissionsResponse) (*entities.IssuePermissionsReturnType, error) {
	granted := make([]entities.Permission, 0, len(response.Permissions))
	for i, w := range response.Permissions {
		p, err := decodeGranted(w)
		if err != nil {
			return nil, &errors.WireFormatError{
				Operation: "decode",
				Type:      fmt.Sprintf("permissions[%d] (%s)", i, w.Type),
				Err:       err,
			}
		}
		granted = append(granted, p)
	}

	result := &entities.IssuePermissionsReturnType{
		Expiry:             response.Expiry,
		GrantedPermissions: granted,
		PermissionsContext: response.PermissionsContext,
		SignerData:         response.SignerData,
	}
	if response.Factory != nil {
		result.Factory = response.Factory
		result.FactoryData = response.FactoryData
	}
	return result, nil
}

func decodeGranted(w entities.GrantedWire) (entities.Permission, error) {
	p := entities.Permission{
		Type:     entities.PermissionType(w.Type),
		Required: w.Required,
	}

	switch p.Type {
	case entities.PermissionNativeTokenLimit:
		var data entities.AmountWire
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return p, err
		}
		p.Data = entities.NativeTokenLimit{Amount: data.Amount.ToInt()}
	case entities.PermissionGasLimit:
		var data entities.AmountWire
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return p, err
		}
		p.Data = entities.GasLimit{Amount: data.Amount.ToInt()}
	case entities.PermissionERC20TokenLimit:
		var data entities.ERC20TokenLimitWire
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return p, err
		}
		p.Data = entities.ERC20TokenLimit{Address: data.Address, Amount: data.Amount.ToInt()}
	case entities.PermissionRateLimit:
		var data entities.RateLimit
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return p, err
		}
		p.Data = data
	case entities.PermissionContractCall:
		var data entities.ContractCall
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return p, err
		}
		p.Data = data
	default:
		p.Data = w.Data
	}
	return p, nil
}

// PermissionTypes lists the distinct permission types in params, in order of
// first appearance.
func PermissionTypes(params *entities.IssuePermissionsParameters) []entities.PermissionType {
	if params == nil {
		return nil
	}
	return lo.Uniq(lo.Map(params.Permissions, func(p entities.Permission, _ int) entities.PermissionType {
		return p.Type
	}))
}
