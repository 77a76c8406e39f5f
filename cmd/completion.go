package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:                   "completion [bash|zsh|fish|powershell]",
	Short:                 "Print a shell completion script",
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:                  writeCompletion,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func writeCompletion(cmd *cobra.Command, args []string) error {
	out := os.Stdout
	switch args[0] {
	case "bash":
		return rootCmd.GenBashCompletionV2(out, true)
	case "zsh":
		return rootCmd.GenZshCompletion(out)
	case "fish":
		return rootCmd.GenFishCompletion(out, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("unsupported shell: %s", args[0])
	}
}

// presetNames lists preset names starting with prefix, with their behavior
// as the description. userOnly limits it to presets in the user file.
func presetNames(prefix string, userOnly bool) []string {
	var names []string
	if userOnly {
		user, err := config.LoadUserPresets()
		if err != nil {
			return nil
		}
		for _, p := range user {
			if strings.HasPrefix(p.Name, prefix) {
				names = append(names, p.Name+"\t"+string(p.Behavior))
			}
		}
		return names
	}

	presets, _ := config.LoadPresets()
	for _, name := range config.SortedNames(presets) {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name+"\t"+string(presets[name].Behavior))
		}
	}
	return names
}

func completePresets(userOnly bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return presetNames(toComplete, userOnly), cobra.ShellCompDirectiveNoFileComp
	}
}
