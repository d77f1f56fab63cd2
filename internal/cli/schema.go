package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/wallet-sdk/application/schema"
)

func (a *app) newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the wallet_issuePermissions request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := schema.GenerateRequestSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.env.Out, string(out))
			return err
		},
	}
}
