package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/ThatOtherAndrew/Glyphdust/internal/term"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

var termFlags sceneFlags

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Render the particles in the terminal",
	RunE:  runTerm,
}

func init() {
	rootCmd.AddCommand(termCmd)
	termFlags.register(termCmd)
}

func runTerm(cmd *cobra.Command, args []string) error {
	settings := loadSettings(cmd, &termFlags)

	eng, err := buildEngine(settings, &termFlags)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// Log lines would scribble over the screen.
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return term.Run(ctx, screen, eng, settings.FPS)
}
