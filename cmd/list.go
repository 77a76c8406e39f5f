package cmd

import (
	"fmt"
	"log"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and user presets",
	Run:   listPresets,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listPresets(cmd *cobra.Command, args []string) {
	presets, err := config.LoadPresets()
	if err != nil {
		log.Printf("Failed to load user presets: %v", err)
	}
	builtin := config.Builtin()

	fmt.Println("Presets:")
	for _, name := range config.SortedNames(presets) {
		p := presets[name]
		marker := ""
		if _, ok := builtin[name]; !ok {
			marker = " (user)"
		} else if p != builtin[name] {
			marker = " (user override)"
		}
		fmt.Printf("  %-12s %s%s\n", name, p.Behavior, marker)
	}
}
