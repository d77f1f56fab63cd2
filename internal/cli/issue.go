package cli

import (
	stdErrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/wallet-sdk/actions"
	apptemplate "github.com/reglet-dev/wallet-sdk/application/template"
	"github.com/reglet-dev/wallet-sdk/application/validation"
	"github.com/reglet-dev/wallet-sdk/client"
	"github.com/reglet-dev/wallet-sdk/decorators"
	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/infrastructure/parser"
)

// ErrDeclined is returned when the user does not confirm a request.
var ErrDeclined = stdErrors.New("permission request declined")

type issueOptions struct {
	file   string
	save   bool
	yes    bool
	dryRun bool
	vars   map[string]string
}

func (a *app) newIssuePermissionsCommand() *cobra.Command {
	var opts issueOptions

	cmd := &cobra.Command{
		Use:   "issue-permissions",
		Short: "Request permissions from the wallet",
		Long: `Request permissions from the wallet (wallet_issuePermissions).

The parameters file is YAML or JSON:

  expiry: 1716846083638
  permissions:
    - type: native-token-limit
      data:
        amount: 69420
      required: true

The file is rendered as a Go template first: --set values are available as
{{ .vars.name }} and {{ expiresIn "24h" }} yields an expiry timestamp.`,
		Example: "  walletctl issue-permissions -f params.yaml --save\n  walletctl issue-permissions -f params.yaml --dry-run",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runIssuePermissions(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "parameters file, - for stdin")
	cmd.Flags().BoolVar(&opts.save, "save", false, "remember the granted permissions in the permission store")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "send without asking for confirmation")
	cmd.Flags().StringToStringVar(&opts.vars, "set", nil, "template variable for the parameters file, as key=value")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate and print the wire request without sending it")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (a *app) runIssuePermissions(cmd *cobra.Command, opts issueOptions) error {
	ctx := cmd.Context()

	data, err := a.readParams(opts.file)
	if err != nil {
		return err
	}
	data, err = apptemplate.NewGoTemplateEngine(apptemplate.WithClock(a.env.Now)).Render(data, opts.vars)
	if err != nil {
		return err
	}
	params, err := parser.NewParamsParser().Parse(data)
	if err != nil {
		return err
	}
	if params.Account == nil {
		params.Account = a.cfg.AccountEntity()
	}
	if opts.dryRun {
		return a.printRequest(params)
	}
	if err := a.cfg.RequireRPC(); err != nil {
		return err
	}

	if !opts.yes {
		p := a.env.Prompter
		if opts.file == "-" || !p.IsInteractive() {
			return p.FormatNonInteractiveError(params)
		}
		ok, err := p.ConfirmPermissions(params)
		if err != nil && !stdErrors.Is(err, io.EOF) {
			return err
		}
		if !ok {
			return ErrDeclined
		}
	}

	tr, err := a.env.Dial(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer tr.Close()

	c, err := client.New(tr,
		client.WithChain(a.cfg.ChainEntity()),
		client.WithAccount(params.Account),
		client.WithLogger(a.logger),
		client.WithKey("walletctl"),
		client.WithName("walletctl"),
	)
	if err != nil {
		return err
	}

	wc, err := client.Extend(c, decorators.WalletActionsERC7715())
	if err != nil {
		return err
	}

	a.logger.Info("requesting permissions",
		"types", actions.PermissionTypes(params),
		"transport", tr.Info().Name,
	)
	result, err := wc.Actions.IssuePermissions(ctx, params)
	if err != nil {
		return err
	}

	if opts.save {
		if err := a.saveGrant(result, c); err != nil {
			return err
		}
	}
	return printJSON(a.env.Out, result)
}

func (a *app) printRequest(params *entities.IssuePermissionsParameters) error {
	request, err := actions.FormatParameters(params)
	if err != nil {
		return err
	}
	v, err := validation.NewRequestValidator()
	if err != nil {
		return err
	}
	if err := v.Validate(request); err != nil {
		return err
	}
	return printJSON(a.env.Out, request)
}

func (a *app) readParams(file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(a.env.In)
		if err != nil {
			return nil, fmt.Errorf("failed to read parameters from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}
	return data, nil
}

func (a *app) saveGrant(result *entities.IssuePermissionsReturnType, c *client.Client) error {
	var chainID uint64
	if chain := c.Chain(); chain != nil {
		chainID = chain.ID
	}

	store := a.store()
	set, err := store.Load()
	if err != nil {
		return err
	}

	now := a.env.Now()
	set.Put(entities.NewPermissionGrant(result, chainID, now))
	pruned := set.Prune(now)
	if err := store.Save(set); err != nil {
		return err
	}

	a.logger.Info("permissions saved",
		"path", store.ConfigPath(),
		"context", result.PermissionsContext,
		"pruned", pruned,
	)
	return nil
}
