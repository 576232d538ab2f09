package commands

import (
	"fmt"

	"github.com/iov-one/remit"
	"github.com/iov-one/remit/rpcserver"
	"github.com/iov-one/remit/x/remittance"
	"github.com/spf13/cobra"
)

// ShowCmd prints the deposit locked under a commitment.
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <commitment>",
		Short: "Show a live deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := remittance.ParseCommitment(args[0])
			if err != nil {
				return err
			}
			return withNode(cmd, func(n *node) error {
				d, err := n.app.GetDeposit(c)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rpcserver.NewDepositResult(c, d))
			})
		},
	}
}

// ListCmd prints all live deposits.
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live deposits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNode(cmd, func(n *node) error {
				entries, err := n.app.Deposits()
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
						e.Commitment, e.Deposit.RemitterAddress(), e.Deposit.Amount())
				}
				return nil
			})
		},
	}
}

// BalanceCmd prints the coins held by an account.
func BalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Print the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := remit.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return withNode(cmd, func(n *node) error {
				b, err := n.app.Balance(addr)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), b)
				return nil
			})
		},
	}
}

// VersionCmd prints the version.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), remit.Version())
		},
	}
}
