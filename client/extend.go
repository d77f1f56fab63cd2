package client

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/reglet-dev/wallet-sdk/domain/errors"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

// baseActions are the names every client reserves. Sorted.
var baseActions = []string{"account", "chain", "close", "extend", "request", "transport"}

// Extension is a capability object that can be composed onto a client.
type Extension interface {
	// ActionNames lists the actions the extension exposes.
	ActionNames() []string
}

// Extender binds an extension to a client.
type Extender[X Extension] func(ports.Client) X

// Extended is a client together with an extension bound to it.
type Extended[X Extension] struct {
	*Client
	Actions X
}

// Extend binds extender to c and returns a derived client whose action set
// includes the extension's actions. c itself is not modified; both share the
// same transport, chain and account.
//
// Extend rejects the composition with *errors.ActionConflictError when an
// action name is already bound on c, or repeated within the extension.
//
// Example usage:
//
//	wc, err := client.Extend(c, decorators.WalletActionsERC7715())
//	if err != nil {
//	    return err
//	}
//	result, err := wc.Actions.IssuePermissions(ctx, params)
func Extend[X Extension](c *Client, extender Extender[X]) (*Extended[X], error) {
	if c == nil {
		return nil, fmt.Errorf("cannot extend a nil client")
	}
	if extender == nil {
		return nil, fmt.Errorf("extender cannot be nil")
	}

	ext := extender(c)
	names := ext.ActionNames()

	bound := append([]string(nil), c.actions...)
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("action name cannot be empty")
		}
		if lo.Contains(bound, name) {
			return nil, &errors.ActionConflictError{Action: name}
		}
		bound = append(bound, name)
	}
	sort.Strings(bound)

	derived := *c
	derived.actions = bound

	c.logger.Debug("client extended",
		"client", c.uid,
		"actions", names,
	)

	return &Extended[X]{Client: &derived, Actions: ext}, nil
}

// HasAction reports whether name is bound on the client.
func (c *Client) HasAction(name string) bool {
	i := sort.SearchStrings(c.actions, name)
	return i < len(c.actions) && c.actions[i] == name
}
