package commands

import (
	"fmt"
	"strings"

	"github.com/iov-one/remit/config"
	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/x/cash"
	"github.com/spf13/cobra"
)

const flagAccount = "account"

// InitCmd writes the default config into the home directory and loads the
// genesis balances into a new database.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize config and genesis balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			raw, err := cmd.Flags().GetStringSlice(flagAccount)
			if err != nil {
				return err
			}
			accts, err := parseAccounts(raw)
			if err != nil {
				return err
			}

			conf := config.DefaultConfig()
			conf.Genesis.Accounts = accts
			if err := conf.Write(home); err != nil {
				return err
			}
			return withNode(cmd, func(n *node) error {
				if err := n.app.InitGenesis(n.conf.Genesis.Accounts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", n.home)
				return nil
			})
		},
	}
	cmd.Flags().StringSlice(flagAccount, nil, "genesis balance as address=amount, can be repeated")
	return cmd
}

func parseAccounts(raw []string) ([]cash.GenesisAccount, error) {
	accts := make([]cash.GenesisAccount, 0, len(raw))
	for _, r := range raw {
		chunks := strings.SplitN(r, "=", 2)
		if len(chunks) != 2 {
			return nil, errors.Wrapf(errors.ErrInput, "account %q is not address=amount", r)
		}
		accts = append(accts, cash.GenesisAccount{Address: chunks[0], Amount: chunks[1]})
	}
	return accts, nil
}
