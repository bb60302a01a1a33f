package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/polyglot/internal/config"
	"github.com/abhisek/polyglot/internal/speech"
)

var sayCmd = &cobra.Command{
	Use:   "say <text...>",
	Short: "Pronounce text with the configured speech engine",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if !cfg.SpeechEnabled {
			return fmt.Errorf("speech is disabled (POLYGLOT_SPEECH=off)")
		}
		spk, err := speech.Detect(cfg.SpeechCmd)
		if err != nil {
			return err
		}
		if spk == nil {
			return fmt.Errorf("no speech engine found; install espeak-ng or set POLYGLOT_SPEECH_CMD")
		}

		return spk.Speak(cmd.Context(), strings.Join(args, " "), lang)
	},
}

func init() {
	sayCmd.Flags().StringP("lang", "l", "es-ES", "Language tag of the text")
}
