package decorators

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/reglet-dev/wallet-sdk/actions"
	"github.com/reglet-dev/wallet-sdk/client"
	"github.com/reglet-dev/wallet-sdk/domain/entities"
	domainerrors "github.com/reglet-dev/wallet-sdk/domain/errors"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
	"github.com/reglet-dev/wallet-sdk/internal/testutil"
)

// MockIssuePermissions records calls to the issue permissions action.
type MockIssuePermissions struct {
	mock.Mock
}

func (m *MockIssuePermissions) IssuePermissions(
	ctx context.Context,
	c ports.Client,
	params *entities.IssuePermissionsParameters,
) (*entities.IssuePermissionsReturnType, error) {
	args := m.Called(ctx, c, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IssuePermissionsReturnType), args.Error(1)
}

func sameClient(expected ports.Client) any {
	return mock.MatchedBy(func(c ports.Client) bool { return c == expected })
}

func sameParams(expected *entities.IssuePermissionsParameters) any {
	return mock.MatchedBy(func(p *entities.IssuePermissionsParameters) bool { return p == expected })
}

func newClient(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.New(testutil.NewRecordingTransport())
	require.NoError(t, err)
	return c
}

func scenarioParams() *entities.IssuePermissionsParameters {
	required := true
	return &entities.IssuePermissionsParameters{
		Expiry: 1716846083638,
		Permissions: []entities.Permission{
			{
				Type:     entities.PermissionNativeTokenLimit,
				Data:     entities.NativeTokenLimit{Amount: big.NewInt(69420)},
				Required: &required,
			},
		},
	}
}

func TestWalletActionsERC7715_ForwardsClientAndParams(t *testing.T) {
	c := newClient(t)
	params := scenarioParams()
	expected := &entities.IssuePermissionsReturnType{
		Expiry:             1716846083638,
		PermissionsContext: "0xcontext",
		GrantedPermissions: params.Permissions,
	}

	action := new(MockIssuePermissions)
	action.On("IssuePermissions", mock.Anything, sameClient(c), sameParams(params)).Return(expected, nil).Once()

	ext := WalletActionsERC7715(WithIssuePermissionsFunc(action.IssuePermissions))(c)
	result, err := ext.IssuePermissions(context.Background(), params)

	require.NoError(t, err)
	assert.Same(t, expected, result)
	assert.Equal(t, scenarioParams(), params, "params must not be modified")
	action.AssertExpectations(t)
}

func TestWalletActionsERC7715_ForwardsContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	action := new(MockIssuePermissions)
	action.On("IssuePermissions",
		mock.MatchedBy(func(got context.Context) bool { return got.Value(ctxKey{}) == "marker" }),
		mock.Anything, mock.Anything,
	).Return(&entities.IssuePermissionsReturnType{}, nil)

	ext := WalletActionsERC7715(WithIssuePermissionsFunc(action.IssuePermissions))(newClient(t))
	_, err := ext.IssuePermissions(ctx, scenarioParams())

	require.NoError(t, err)
	action.AssertExpectations(t)
}

func TestWalletActionsERC7715_ErrorUnchanged(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "user rejected", err: &domainerrors.RPCError{Code: domainerrors.CodeUserRejectedRequest, Message: "User rejected the request."}},
		{name: "network", err: &domainerrors.NetworkError{Operation: "dial", Err: errors.New("connection refused")}},
		{name: "plain", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := new(MockIssuePermissions)
			action.On("IssuePermissions", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			ext := WalletActionsERC7715(WithIssuePermissionsFunc(action.IssuePermissions))(newClient(t))
			result, err := ext.IssuePermissions(context.Background(), scenarioParams())

			assert.Nil(t, result)
			assert.Same(t, tt.err, err)
		})
	}
}

func TestWalletActionsERC7715_NoMemoization(t *testing.T) {
	params := scenarioParams()
	action := new(MockIssuePermissions)
	action.On("IssuePermissions", mock.Anything, mock.Anything, sameParams(params)).
		Return(&entities.IssuePermissionsReturnType{}, nil)

	ext := WalletActionsERC7715(WithIssuePermissionsFunc(action.IssuePermissions))(newClient(t))
	_, err := ext.IssuePermissions(context.Background(), params)
	require.NoError(t, err)
	_, err = ext.IssuePermissions(context.Background(), params)
	require.NoError(t, err)

	action.AssertNumberOfCalls(t, "IssuePermissions", 2)
}

func TestWalletActionsERC7715_IndependentClients(t *testing.T) {
	first, second := newClient(t), newClient(t)

	action := new(MockIssuePermissions)
	firstResult := &entities.IssuePermissionsReturnType{PermissionsContext: "0x01"}
	secondResult := &entities.IssuePermissionsReturnType{PermissionsContext: "0x02"}
	action.On("IssuePermissions", mock.Anything, sameClient(first), mock.Anything).Return(firstResult, nil).Once()
	action.On("IssuePermissions", mock.Anything, sameClient(second), mock.Anything).Return(secondResult, nil).Once()

	extA := WalletActionsERC7715(WithIssuePermissionsFunc(action.IssuePermissions))(first)
	extB := WalletActionsERC7715(WithIssuePermissionsFunc(action.IssuePermissions))(second)

	assert.Same(t, first, extA.Client())
	assert.Same(t, second, extB.Client())

	got, err := extB.IssuePermissions(context.Background(), scenarioParams())
	require.NoError(t, err)
	assert.Same(t, secondResult, got)

	got, err = extA.IssuePermissions(context.Background(), scenarioParams())
	require.NoError(t, err)
	assert.Same(t, firstResult, got)

	action.AssertExpectations(t)
}

func TestWalletActionsERC7715_Concurrent(t *testing.T) {
	const calls = 16

	action := new(MockIssuePermissions)
	action.On("IssuePermissions", mock.Anything, mock.Anything, mock.Anything).
		Return(&entities.IssuePermissionsReturnType{}, nil)

	ext := WalletActionsERC7715(WithIssuePermissionsFunc(action.IssuePermissions))(newClient(t))

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < calls; i++ {
		g.Go(func() error {
			_, err := ext.IssuePermissions(ctx, scenarioParams())
			return err
		})
	}
	require.NoError(t, g.Wait())

	action.AssertNumberOfCalls(t, "IssuePermissions", calls)
}

func TestWalletActionsERC7715_DefaultsToAction(t *testing.T) {
	reply := `{
		"expiry": 1716846083638,
		"permissionsContext": "0xcontext",
		"permissions": [{"type": "native-token-limit", "data": {"amount": "0x10f2c"}, "required": true}]
	}`

	direct := testutil.NewRecordingTransport().Reply(entities.MethodIssuePermissions, reply)
	directClient, err := client.New(direct)
	require.NoError(t, err)
	want, err := actions.IssuePermissions(context.Background(), directClient, scenarioParams())
	require.NoError(t, err)

	tr := testutil.NewRecordingTransport().Reply(entities.MethodIssuePermissions, reply)
	c, err := client.New(tr)
	require.NoError(t, err)

	wc, err := client.Extend(c, WalletActionsERC7715())
	require.NoError(t, err)

	got, err := wc.Actions.IssuePermissions(context.Background(), scenarioParams())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, tr.Calls(), 1)
	assert.Equal(t, direct.Calls()[0].ParamsJSON(), tr.Calls()[0].ParamsJSON())
}

func TestWalletActionsERC7715_Extend(t *testing.T) {
	c := newClient(t)

	wc, err := client.Extend(c, WalletActionsERC7715())
	require.NoError(t, err)

	assert.True(t, wc.HasAction(ActionIssuePermissions))
	assert.False(t, c.HasAction(ActionIssuePermissions), "original client must not change")
	assert.Equal(t, []string{ActionIssuePermissions}, wc.Actions.ActionNames())
	assert.Same(t, c, wc.Actions.Client())

	_, err = client.Extend(wc.Client, WalletActionsERC7715())
	var conflict *domainerrors.ActionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ActionIssuePermissions, conflict.Action)
}

func TestWithIssuePermissionsFunc_NilIgnored(t *testing.T) {
	tr := testutil.NewRecordingTransport().Fail(entities.MethodIssuePermissions, errors.New("unreachable"))
	c, err := client.New(tr)
	require.NoError(t, err)

	ext := WalletActionsERC7715(WithIssuePermissionsFunc(nil))(c)
	_, err = ext.IssuePermissions(context.Background(), scenarioParams())

	assert.EqualError(t, err, "unreachable")
	assert.Len(t, tr.Calls(), 1, "default action must still be used")
}
