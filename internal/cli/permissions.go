package cli

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
)

// grantView is a stored grant as listed by walletctl.
type grantView struct {
	entities.PermissionGrant
	ExpiresAt time.Time `json:"expiresAt"`
	Expired   bool      `json:"expired"`
}

func (a *app) newPermissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Inspect permissions remembered with --save",
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored permission grants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := a.store().Load()
			if err != nil {
				return err
			}

			now := a.env.Now()
			grants := set.Grants
			if !all {
				grants = set.Active(now)
			}
			views := lo.Map(grants, func(g entities.PermissionGrant, _ int) grantView {
				return grantView{PermissionGrant: g, ExpiresAt: g.ExpiresAt().UTC(), Expired: g.Expired(now)}
			})
			return printJSON(a.env.Out, views)
		},
	}
	list.Flags().BoolVar(&all, "all", false, "include expired grants")

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove expired grants from the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := a.store()
			set, err := store.Load()
			if err != nil {
				return err
			}

			removed := set.Prune(a.env.Now())
			if removed > 0 {
				if err := store.Save(set); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(a.env.Out, "removed %d expired grant(s) from %s\n", removed, store.ConfigPath())
			return err
		},
	}

	cmd.AddCommand(list, prune)
	return cmd
}
