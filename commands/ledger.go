package commands

import (
	"context"
	"fmt"

	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/x/remittance"
	"github.com/spf13/cobra"
)

// PuzzleCmd prints the commitment of a recipient and a password.
func PuzzleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "puzzle <recipient> <password>",
		Short: "Compute the commitment to lock a deposit under",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := remittance.Puzzle(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

// EscrowAccountCmd prints the account holding the deposit of a commitment.
func EscrowAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "escrow-account <commitment>",
		Short: "Print the escrow account of a commitment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := remittance.ParseCommitment(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), remittance.EscrowAccount(c))
			return nil
		},
	}
}

// DepositCmd locks coins of the --from account under a commitment.
func DepositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit <commitment> <amount>",
		Short: "Lock coins under a commitment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := fromAddress(cmd)
			if err != nil {
				return err
			}
			c, err := remittance.ParseCommitment(args[0])
			if err != nil {
				return err
			}
			value, err := coin.ParseAmount(args[1])
			if err != nil {
				return err
			}
			return withNode(cmd, func(n *node) error {
				if err := n.app.Deposit(context.Background(), from, c, value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "locked %s under %s\n", value, c)
				return nil
			})
		},
	}
	cmd.Flags().String(flagFrom, "", "address of the remitter")
	return cmd
}

// ClaimCmd releases a deposit to the recipient that knows the secret.
func ClaimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <commitment> <recipient> <secret>",
		Short: "Claim a deposit by revealing its secret",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := remittance.ParseCommitment(args[0])
			if err != nil {
				return err
			}
			return withNode(cmd, func(n *node) error {
				value, err := n.app.Claim(context.Background(), c, []byte(args[1]), []byte(args[2]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "claimed %s\n", value)
				return nil
			})
		},
	}
}

// WithdrawCmd returns a deposit to its remitter.
func WithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw <commitment>",
		Short: "Take back an unclaimed deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := fromAddress(cmd)
			if err != nil {
				return err
			}
			c, err := remittance.ParseCommitment(args[0])
			if err != nil {
				return err
			}
			return withNode(cmd, func(n *node) error {
				value, err := n.app.Withdraw(context.Background(), from, c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "withdrawn %s\n", value)
				return nil
			})
		},
	}
	cmd.Flags().String(flagFrom, "", "address of the remitter")
	return cmd
}

// MintCmd issues new coins to an account.
func MintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mint <address> <amount>",
		Short: "Issue coins to an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := remit.ParseAddress(args[0])
			if err != nil {
				return err
			}
			amount, err := coin.ParseAmount(args[1])
			if err != nil {
				return err
			}
			return withNode(cmd, func(n *node) error {
				if err := n.app.Mint(context.Background(), addr, amount); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "issued %s to %s\n", amount, addr)
				return nil
			})
		},
	}
}

// SendCmd moves coins of the --from account to another account.
func SendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <address> <amount>",
		Short: "Send coins to another account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := fromAddress(cmd)
			if err != nil {
				return err
			}
			dest, err := remit.ParseAddress(args[0])
			if err != nil {
				return err
			}
			amount, err := coin.ParseAmount(args[1])
			if err != nil {
				return err
			}
			return withNode(cmd, func(n *node) error {
				if err := n.app.Send(context.Background(), from, dest, amount); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s\n", amount, dest)
				return nil
			})
		},
	}
	cmd.Flags().String(flagFrom, "", "address of the sender")
	return cmd
}

// fromAddress returns the caller identity given with --from. It is taken as
// already authenticated by the host running the command, nothing here
// checks a signature.
func fromAddress(cmd *cobra.Command) (remit.Address, error) {
	raw, err := cmd.Flags().GetString(flagFrom)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "--from is required")
	}
	return remit.ParseAddress(raw)
}
