package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/ThatOtherAndrew/Glyphdust/internal/engine"
	"github.com/ThatOtherAndrew/Glyphdust/internal/shape"
	"github.com/ThatOtherAndrew/Glyphdust/internal/video"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "glyphdust",
	Short: "Interactive particle text",
	Long:  "Glyphdust renders text as a cloud of particles that react to the pointer.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// sceneFlags are shared by the window and terminal hosts.
type sceneFlags struct {
	preset string
	text   string
	font   string
	video  string
	amount int
	seed   int64
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "preset name (see list)")
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "text to sample")
	cmd.Flags().StringVar(&f.font, "font", "", "path to a TTF or OTF font")
	cmd.Flags().StringVar(&f.video, "video", "", "animated GIF for the video preset")
	cmd.Flags().IntVarP(&f.amount, "amount", "n", 0, "points per closed outline")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed")
	if err := cmd.RegisterFlagCompletionFunc("preset", completePresets(false)); err != nil {
		log.Printf("Failed to register preset completion: %v", err)
	}
}

// apply overrides settings with any flags that were set.
func (f *sceneFlags) apply(cmd *cobra.Command, settings *config.Settings) {
	if cmd.Flags().Changed("preset") {
		settings.Preset = f.preset
	}
	if cmd.Flags().Changed("text") {
		settings.Text = f.text
	}
	if cmd.Flags().Changed("font") {
		settings.Font = f.font
	}
	if cmd.Flags().Changed("seed") {
		settings.Seed = f.seed
	}
}

func loadSettings(cmd *cobra.Command, flags *sceneFlags) *config.Settings {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Printf("Failed to load settings, using defaults: %v", err)
		settings = config.DefaultSettings()
	}
	flags.apply(cmd, settings)
	return settings
}

func loadFont(path string) (shape.OutlineProvider, error) {
	if path == "" {
		return shape.DefaultFontOutlines()
	}
	return shape.LoadFontOutlines(path)
}

// buildEngine creates the engine and installs its first shape.
func buildEngine(settings *config.Settings, flags *sceneFlags) (*engine.Engine, error) {
	preset, err := config.Lookup(settings.Preset)
	if err != nil {
		return nil, err
	}
	if flags.amount > 0 {
		preset.Amount = flags.amount
	}
	log.Printf("Preset %s (%s)", preset.Name, preset.Behavior)

	eng := engine.New(preset, uint64(settings.Seed))

	if preset.Behavior == config.BehaviorVideo {
		if flags.video == "" {
			return nil, fmt.Errorf("preset %s needs --video", preset.Name)
		}
		src, err := video.LoadGIF(flags.video)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded %s with %d frame(s)", src.Name(), src.Len())
		eng.SetVideo(src)
		return eng, nil
	}

	provider, err := loadFont(settings.Font)
	if err != nil {
		return nil, err
	}
	text := settings.Text
	if preset.Text != "" && settings.Text == config.DefaultSettings().Text {
		text = preset.Text
	}
	if err := eng.SetText(provider, text); err != nil {
		return nil, err
	}
	return eng, nil
}
