package prompter_test

import (
	"bytes"
	"io"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/infrastructure/prompter"
)

func testParams() *entities.IssuePermissionsParameters {
	required := true
	return &entities.IssuePermissionsParameters{
		Expiry: 1716846083638,
		Permissions: []entities.Permission{
			{Type: entities.PermissionNativeTokenLimit, Data: entities.NativeTokenLimit{Amount: big.NewInt(69420)}, Required: &required},
			{Type: entities.PermissionContractCall, Data: entities.ContractCall{Address: common.HexToAddress("0xcc")}},
		},
	}
}

func TestCliPrompter_ConfirmPermissions(t *testing.T) {
	t.Run("Accept", func(t *testing.T) {
		in := bytes.NewBufferString("y\n")
		out := &bytes.Buffer{}
		p := prompter.NewCliPrompter(in, out)

		ok, err := p.ConfirmPermissions(testParams())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, out.String(), "- native-token-limit: up to 69420 wei (required)")
		assert.Contains(t, out.String(), "Expires: 2024-05-27T21:41:23Z")
		assert.Contains(t, out.String(), "Send request? [y/N]:")
	})

	t.Run("Deny", func(t *testing.T) {
		p := prompter.NewCliPrompter(bytes.NewBufferString("n\n"), &bytes.Buffer{})

		ok, err := p.ConfirmPermissions(testParams())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Default Deny", func(t *testing.T) {
		p := prompter.NewCliPrompter(bytes.NewBufferString("\n"), &bytes.Buffer{})

		ok, err := p.ConfirmPermissions(testParams())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("EOF", func(t *testing.T) {
		p := prompter.NewCliPrompter(bytes.NewBufferString(""), &bytes.Buffer{})

		ok, err := p.ConfirmPermissions(testParams())
		assert.ErrorIs(t, err, io.EOF)
		assert.False(t, ok)
	})
}

func TestCliPrompter_IsInteractive(t *testing.T) {
	assert.False(t, prompter.NewCliPrompter(bytes.NewBufferString(""), nil).IsInteractive())
}

func TestSummarize(t *testing.T) {
	params := &entities.IssuePermissionsParameters{
		Permissions: []entities.Permission{
			{Type: entities.PermissionERC20TokenLimit, Data: entities.ERC20TokenLimit{Amount: big.NewInt(5), Address: common.HexToAddress("0xbb")}},
			{Type: entities.PermissionGasLimit, Data: entities.GasLimit{Amount: big.NewInt(21000)}},
			{Type: entities.PermissionRateLimit, Data: entities.RateLimit{Count: 3, Interval: 60}},
			{Type: entities.PermissionContractCall, Data: entities.ContractCall{Address: common.HexToAddress("0xcc"), Calls: []string{"transfer(address,uint256)"}}},
			{Type: "session-key"},
		},
	}

	assert.Equal(t, []string{
		"erc20-token-limit: up to 5 of token " + common.HexToAddress("0xbb").Hex(),
		"gas-limit: up to 21000 gas",
		"rate-limit: 3 call(s) every 60s",
		"contract-call: transfer(address,uint256) on " + common.HexToAddress("0xcc").Hex(),
		"session-key: custom data",
	}, prompter.Summarize(params))
}

func TestCliPrompter_FormatNonInteractiveError(t *testing.T) {
	p := prompter.NewCliPrompter(nil, nil)
	err := p.FormatNonInteractiveError(testParams())
	assert.ErrorContains(t, err, "refusing to request 2 permission(s) without confirmation in non-interactive mode")
	assert.ErrorContains(t, err, "--yes")
}
