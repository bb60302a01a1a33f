package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/polyglot/internal/app"
	"github.com/abhisek/polyglot/internal/llm"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/speech"
	"github.com/abhisek/polyglot/internal/tutor"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the trainer (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	svc := e.services(cmd.Context())
	defer svc.Speech.Close()
	defer svc.Tutor.Cancel()

	return app.Run(app.Options{Services: svc})
}

// services wires the shared screen dependencies. Speech and the tutor are
// optional and left nil when unavailable.
func (e *env) services(ctx context.Context) *screen.Services {
	svc := &screen.Services{
		Library: e.library(ctx),
		Bank:    e.bank(),
		Events:  e.events(),
	}

	if e.cfg.SpeechEnabled {
		spk, err := speech.Detect(e.cfg.SpeechCmd)
		switch {
		case err != nil:
			fmt.Fprintln(os.Stderr, "warning: pronunciation unavailable:", err)
		case spk != nil:
			svc.Speech = speech.NewPlayer(spk)
		}
	}

	if e.cfg.LLM.Enabled() {
		provider, err := llm.NewProvider(ctx, e.cfg.LLM, svc.Events)
		if err != nil {
			fmt.Fprintln(os.Stderr, "warning: LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Explanations will be unavailable.")
		} else {
			svc.Tutor = tutor.NewService(provider, tutor.DefaultConfig())
		}
	}
	return svc
}
