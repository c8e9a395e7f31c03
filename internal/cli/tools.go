package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trm-labs/notionsync/internal/numseq"
)

// newToolsCommand creates the "tools" group with the standalone numeric
// utilities that ship alongside the sync pipeline.
func newToolsCommand() *cobra.Command {
	return newGroupCommand(
		"tools",
		"Standalone numeric utilities",
		newFizzbuzzCommand(),
		newPrimeCommand(),
	)
}

// newFizzbuzzCommand creates "tools fizzbuzz" printing the sequence up to n.
func newFizzbuzzCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fizzbuzz <n>",
		Short: "Print the fizzbuzz sequence from 1 through n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid upper bound %q: %w", args[0], err)
			}
			for _, value := range numseq.Sequence(n) {
				fmt.Fprintln(cmd.OutOrStdout(), value)
			}
			return nil
		},
	}
}

// newPrimeCommand creates "tools prime" reporting primality for each argument.
func newPrimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prime <n>...",
		Short: "Report whether each number is prime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid number %q: %w", arg, err)
				}
				verdict := "not prime"
				if numseq.IsPrime(n) {
					verdict = "prime"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d is %s\n", n, verdict)
			}
			return nil
		},
	}
}
