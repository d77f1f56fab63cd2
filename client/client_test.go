package client

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/internal/testutil"
)

func TestNew_RequiresTransport(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a transport")
}

func TestNew_Defaults(t *testing.T) {
	tr := testutil.NewRecordingTransport()
	c, err := New(tr)
	require.NoError(t, err)

	assert.Nil(t, c.Chain())
	assert.Nil(t, c.Account())
	assert.Same(t, tr, c.Transport())
	assert.Equal(t, "base", c.Key())
	assert.Equal(t, "Base Client", c.Name())
	assert.NotEmpty(t, c.UID())
	assert.Equal(t, baseActions, c.BoundActions())
}

func TestNew_WithOptions(t *testing.T) {
	addr := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	account := entities.JSONRPCAccount(addr)

	c, err := New(testutil.NewRecordingTransport(),
		WithChain(&entities.Sepolia),
		WithAccount(account),
		WithKey("wallet"),
		WithName("Wallet Client"),
	)
	require.NoError(t, err)

	assert.Equal(t, uint64(11155111), c.Chain().ID)
	assert.Same(t, account, c.Account())
	assert.Equal(t, "wallet", c.Key())
	assert.Equal(t, "Wallet Client", c.Name())
}

func TestClient_Request(t *testing.T) {
	tr := testutil.NewRecordingTransport().Reply("eth_chainId", `"0xaa36a7"`)
	c, err := New(tr)
	require.NoError(t, err)

	var chainID string
	require.NoError(t, c.Request(context.Background(), &chainID, "eth_chainId"))
	assert.Equal(t, "0xaa36a7", chainID)

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "eth_chainId", calls[0].Method)
	assert.Empty(t, calls[0].Params)
}

func TestClient_Request_PassesErrorThrough(t *testing.T) {
	want := errors.New("wallet unavailable")
	tr := testutil.NewRecordingTransport().Fail("wallet_issuePermissions", want)
	c, err := New(tr)
	require.NoError(t, err)

	got := c.Request(context.Background(), nil, "wallet_issuePermissions", map[string]any{"expiry": 1})
	assert.Same(t, want, got)
}

func TestClient_Request_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr := testutil.NewRecordingTransport().Reply("eth_accounts", `[]`)
	c, err := New(tr, WithLogger(logger))
	require.NoError(t, err)

	require.NoError(t, c.Request(context.Background(), nil, "eth_accounts"))
	assert.Contains(t, buf.String(), "method=eth_accounts")
	assert.Contains(t, buf.String(), "request_id=")
}

func TestClient_Close(t *testing.T) {
	tr := testutil.NewRecordingTransport()
	c, err := New(tr)
	require.NoError(t, err)

	c.Close()
	assert.True(t, tr.Closed())
}
