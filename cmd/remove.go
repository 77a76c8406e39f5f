package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [preset]",
	Short: "Remove a user preset by name",
	Run:   removePreset,

	ValidArgsFunction: completePresets(true),
}

func init() {
	rootCmd.AddCommand(removeCmd)
	log.SetFlags(0)
}

func removePreset(cmd *cobra.Command, args []string) {
	if len(args) <= 0 {
		log.Fatalf("Please specify a preset")
	}

	if err := config.RemovePreset(args[0]); err != nil {
		if errors.Is(err, config.ErrPresetNotFound) {
			if _, ok := config.Builtin()[args[0]]; ok {
				log.Fatalf("Preset %s is built in and cannot be removed", args[0])
			}
			log.Fatalf("Preset not found: %s", args[0])
		}
		log.Fatal("Failed to save presets:", err)
	}

	fmt.Println("Removed preset:", args[0])
}
