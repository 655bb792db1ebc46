package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalArg accepts zero or one positional argument, named name in the
// error message.
func OptionalArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Only one %s may be given.`, len(args), cmd.UseLine(), name)
		}
		return nil
	}
}
