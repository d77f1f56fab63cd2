// Package decorators composes wallet actions onto a client.
//
// A decorator is a factory returning a client.Extender: bind it with
// client.Extend and call the actions through the returned capability object.
//
//	wc, err := client.Extend(c, decorators.WalletActionsERC7715())
//	if err != nil {
//	    return err
//	}
//	result, err := wc.Actions.IssuePermissions(ctx, params)
package decorators

import (
	"context"

	"github.com/reglet-dev/wallet-sdk/actions"
	"github.com/reglet-dev/wallet-sdk/client"
	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

// ActionIssuePermissions is the action name ERC7715Actions binds on a client.
const ActionIssuePermissions = "issuePermissions"

var _ client.Extension = ERC7715Actions{}

// ERC7715Actions exposes the ERC-7715 wallet actions for a single client.
type ERC7715Actions struct {
	client ports.Client
	issue  actions.IssuePermissionsFunc
}

// IssuePermissions requests permissions from the wallet through the bound
// client. params is forwarded as-is and the action's result and error are
// returned unchanged.
func (a ERC7715Actions) IssuePermissions(
	ctx context.Context,
	params *entities.IssuePermissionsParameters,
) (*entities.IssuePermissionsReturnType, error) {
	return a.issue(ctx, a.client, params)
}

// Client returns the client the actions are bound to.
func (a ERC7715Actions) Client() ports.Client {
	return a.client
}

// ActionNames implements client.Extension.
func (a ERC7715Actions) ActionNames() []string {
	return []string{ActionIssuePermissions}
}

// Option configures WalletActionsERC7715.
type Option func(*erc7715Config)

type erc7715Config struct {
	issue actions.IssuePermissionsFunc
}

func defaultERC7715Config() erc7715Config {
	return erc7715Config{issue: actions.IssuePermissions}
}

// WithIssuePermissionsFunc replaces the function IssuePermissions delegates to.
// A nil fn is ignored.
func WithIssuePermissionsFunc(fn actions.IssuePermissionsFunc) Option {
	return func(c *erc7715Config) {
		if fn != nil {
			c.issue = fn
		}
	}
}

// WalletActionsERC7715 returns an extender binding the ERC-7715 wallet actions
// to a client.
func WalletActionsERC7715(opts ...Option) client.Extender[ERC7715Actions] {
	cfg := defaultERC7715Config()
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(c ports.Client) ERC7715Actions {
		return ERC7715Actions{client: c, issue: cfg.issue}
	}
}
