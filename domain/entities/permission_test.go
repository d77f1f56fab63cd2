package entities

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPermissionType_IsKnown(t *testing.T) {
	assert.True(t, PermissionNativeTokenLimit.IsKnown())
	assert.True(t, PermissionContractCall.IsKnown())
	assert.False(t, PermissionType("session-key").IsKnown())
}

func TestPermission_UnmarshalJSON(t *testing.T) {
	t.Run("native token limit", func(t *testing.T) {
		var p Permission
		require.NoError(t, json.Unmarshal([]byte(`{"type":"native-token-limit","data":{"amount":69420},"required":true}`), &p))

		assert.Equal(t, PermissionNativeTokenLimit, p.Type)
		assert.True(t, p.IsRequired())
		data, ok := p.Data.(NativeTokenLimit)
		require.True(t, ok)
		assert.Equal(t, 0, data.Amount.Cmp(big.NewInt(69420)))
	})

	t.Run("contract call", func(t *testing.T) {
		var p Permission
		require.NoError(t, json.Unmarshal([]byte(`{"type":"contract-call","data":{"address":"0x0000000000000000000000000000000000000001"}}`), &p))

		data, ok := p.Data.(ContractCall)
		require.True(t, ok)
		assert.Equal(t, common.HexToAddress("0x01"), data.Address)
		assert.False(t, p.IsRequired())
	})

	t.Run("custom type keeps raw data", func(t *testing.T) {
		var p Permission
		require.NoError(t, json.Unmarshal([]byte(`{"type":"session-key","data":{"key":"abc"}}`), &p))

		raw, ok := p.Data.(json.RawMessage)
		require.True(t, ok)
		assert.JSONEq(t, `{"key":"abc"}`, string(raw))
	})

	t.Run("missing type", func(t *testing.T) {
		var p Permission
		err := json.Unmarshal([]byte(`{"data":{}}`), &p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type is required")
	})

	t.Run("unknown field in known data", func(t *testing.T) {
		var p Permission
		err := json.Unmarshal([]byte(`{"type":"native-token-limit","data":{"amont":5}}`), &p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amont")
	})

	t.Run("custom data is not restricted", func(t *testing.T) {
		var p Permission
		require.NoError(t, json.Unmarshal([]byte(`{"type":"session-key","data":{"anything":1}}`), &p))
	})

	t.Run("known type without data", func(t *testing.T) {
		var p Permission
		err := json.Unmarshal([]byte(`{"type":"gas-limit"}`), &p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing data")
	})
}

func TestPermission_CheckData(t *testing.T) {
	tests := []struct {
		name    string
		perm    Permission
		wantErr bool
	}{
		{name: "native amount set", perm: Permission{Type: PermissionNativeTokenLimit, Data: NativeTokenLimit{Amount: big.NewInt(1)}}},
		{name: "native amount nil", perm: Permission{Type: PermissionNativeTokenLimit, Data: NativeTokenLimit{}}, wantErr: true},
		{name: "erc20 pointer nil", perm: Permission{Type: PermissionERC20TokenLimit, Data: (*ERC20TokenLimit)(nil)}, wantErr: true},
		{name: "gas amount nil", perm: Permission{Type: PermissionGasLimit, Data: &GasLimit{}}, wantErr: true},
		{name: "rate limit", perm: Permission{Type: PermissionRateLimit, Data: RateLimit{}}},
		{name: "custom", perm: Permission{Type: "session-key", Data: map[string]any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.perm.CheckData()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingAmount)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPermission_UnmarshalYAML_UnknownDataField(t *testing.T) {
	var p Permission
	err := yaml.Unmarshal([]byte("type: rate-limit\ndata: {count: 1, intervall: 60}\n"), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intervall")
}

func TestPermission_YAMLRoundTrip(t *testing.T) {
	required := true
	in := []Permission{
		{Type: PermissionNativeTokenLimit, Data: NativeTokenLimit{Amount: big.NewInt(69420)}, Required: &required},
		{Type: PermissionRateLimit, Data: RateLimit{Count: 5, Interval: 3600}},
		{Type: "session-key", Data: json.RawMessage(`{"key":"abc"}`)},
	}

	out, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "!!binary")

	var decoded []Permission
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 3)

	native, ok := decoded[0].Data.(NativeTokenLimit)
	require.True(t, ok)
	assert.Equal(t, "69420", native.Amount.String())
	assert.True(t, decoded[0].IsRequired())

	assert.Equal(t, RateLimit{Count: 5, Interval: 3600}, decoded[1].Data)

	raw, ok := decoded[2].Data.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"key":"abc"}`, string(raw))
}

func TestIssuePermissionsParameters_UnmarshalJSON(t *testing.T) {
	var params IssuePermissionsParameters
	doc := `{
		"expiry": 1716846083638,
		"permissions": [
			{"type": "contract-call", "data": {"address": "0x0000000000000000000000000000000000000000"}},
			{"type": "native-token-limit", "data": {"amount": 69420}, "required": true}
		]
	}`
	require.NoError(t, json.Unmarshal([]byte(doc), &params))

	assert.Equal(t, int64(1716846083638), params.Expiry)
	require.Len(t, params.Permissions, 2)
	assert.IsType(t, ContractCall{}, params.Permissions[0].Data)
	assert.IsType(t, NativeTokenLimit{}, params.Permissions[1].Data)
	assert.Nil(t, params.Signer)
}
