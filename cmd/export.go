package cmd

import (
	"fmt"
	"log"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/spf13/cobra"
)

var exportAs string

var exportCmd = &cobra.Command{
	Use:   "export [preset]",
	Short: "Copy a preset into the user presets file for editing",
	Args:  cobra.ExactArgs(1),
	Run:   exportPreset,

	ValidArgsFunction: completePresets(false),
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportAs, "as", "", "save under a new name")
}

func exportPreset(cmd *cobra.Command, args []string) {
	preset, err := config.Lookup(args[0])
	if err != nil {
		log.Fatal("Failed to find preset:", err)
	}
	if exportAs != "" {
		preset.Name = exportAs
	}
	if err := config.SavePreset(preset); err != nil {
		log.Fatal("Failed to save preset:", err)
	}

	path, err := config.GetPresetsPath()
	if err != nil {
		log.Fatal("Failed to get presets path:", err)
	}
	fmt.Printf("Exported %s to %s\n", preset.Name, path)
}
