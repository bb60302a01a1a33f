package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/polyglot/internal/content"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the curriculum as JSON (\"-\" for stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := content.ExportFileName
		if len(args) == 1 {
			path = args[0]
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		lib := e.library(cmd.Context())

		if path == "-" {
			return lib.ExportTo(os.Stdout)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := lib.ExportTo(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d courses to %s\n", len(lib.Data().Courses), path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the curriculum with a JSON file (\"-\" for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()
			r = f
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		lib := e.library(cmd.Context())

		if err := lib.ImportFrom(cmd.Context(), r); err != nil {
			return err
		}
		if !lib.Durable() {
			fmt.Fprintln(os.Stderr, "warning: imported curriculum could not be saved")
		}
		fmt.Fprintf(os.Stderr, "Imported %d courses\n", len(lib.Data().Courses))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset curriculum, progress and navigation to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), "This deletes all edits and progress. Continue? [y/N] ") {
			fmt.Println("Aborted.")
			return nil
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		lib := e.library(cmd.Context())
		lib.Reset(cmd.Context())
		if !lib.Durable() {
			fmt.Fprintln(os.Stderr, "warning: stored data could not be cleared")
		}
		fmt.Println("Reset complete.")
		return nil
	},
}

func confirm(in io.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
