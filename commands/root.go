/*
Package commands implements the remitd command line interface.
*/
package commands

import (
	"github.com/spf13/cobra"
)

const (
	flagHome = "home"
	flagFrom = "from"
)

// NewRootCmd returns the remitd command with all subcommands attached.
func NewRootCmd(defaultHome string) *cobra.Command {
	root := &cobra.Command{
		Use:           "remitd",
		Short:         "Hash-lock remittance escrow",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")

	root.AddCommand(
		InitCmd(),
		PuzzleCmd(),
		EscrowAccountCmd(),
		DepositCmd(),
		ClaimCmd(),
		WithdrawCmd(),
		ShowCmd(),
		ListCmd(),
		BalanceCmd(),
		MintCmd(),
		SendCmd(),
		ServeCmd(),
		VersionCmd(),
		TestGenCmd(),
	)
	return root
}
