package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/vaxstat/internal/config"
)

var outputFormats = []string{config.OutputJSON, config.OutputYAML, config.OutputTable}

// completeOutputFormats provides shell completion for --output values.
func completeOutputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, f := range outputFormats {
		if strings.HasPrefix(f, toComplete) {
			matches = append(matches, f)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeCSVFiles restricts file completion to .csv files.
func completeCSVFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"csv"}, cobra.ShellCompDirectiveFilterFileExt
}
