package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/library"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit chapters of the local curriculum",
}

var editShowCmd = &cobra.Command{
	Use:   "show <course-id> <chapter-id>",
	Short: "Print a chapter in its editable form",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		lib := e.library(cmd.Context())

		ci, chi, err := lib.Locate(args[0], args[1])
		if err != nil {
			return err
		}
		d, err := lib.Draft(ci, chi)
		if err != nil {
			return err
		}

		sep := strings.Repeat("─", 60)
		fmt.Printf("Title:  %s\n", d.Title)
		fmt.Printf("Color:  %s\n", d.Color)
		fmt.Println(sep)
		fmt.Println("PHRASES")
		fmt.Println(sep)
		for i, p := range d.Phrases {
			fmt.Printf("%3d  %-30s  %s\n", i, p.Source, p.Target)
		}
		fmt.Println(sep)
		fmt.Println("TIPS")
		fmt.Println(sep)
		fmt.Println(orNone(d.Tips))
		fmt.Println(sep)
		fmt.Printf("DIALOG  %s\n", d.DialogTitle)
		fmt.Println(sep)
		fmt.Println("A:", orNone(strings.ReplaceAll(d.LinesA, "\n", " | ")))
		fmt.Println("B:", orNone(strings.ReplaceAll(d.LinesB, "\n", " | ")))
		return nil
	},
}

var editSetCmd = &cobra.Command{
	Use:   "set <course-id> <chapter-id>",
	Short: "Change a chapter's title, color, tips or dialog",
	Long: `Change a chapter's title, color, tips or dialog. Only the flags given are applied.

Tips files hold one "Title: text" per line. Dialog files hold one line per
turn; speaker A and B lines are interleaved and replace the chapter's dialogs.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		return withDraft(cmd, args[0], args[1], func(_ *library.Library, d *content.ChapterDraft) error {
			if flags.Changed("title") {
				d.Title, _ = flags.GetString("title")
			}
			if flags.Changed("color") {
				d.Color, _ = flags.GetString("color")
			}
			if flags.Changed("dialog-title") {
				d.DialogTitle, _ = flags.GetString("dialog-title")
			}
			for flag, dst := range map[string]*string{
				"tips-file":    &d.Tips,
				"lines-a-file": &d.LinesA,
				"lines-b-file": &d.LinesB,
			} {
				if !flags.Changed(flag) {
					continue
				}
				path, _ := flags.GetString(flag)
				b, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read --%s: %w", flag, err)
				}
				*dst = string(b)
			}
			return nil
		})
	},
}

var editAddPhraseCmd = &cobra.Command{
	Use:   "add-phrase <course-id> <chapter-id> <source> <target>",
	Short: "Append a phrase to a chapter",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDraft(cmd, args[0], args[1], func(lib *library.Library, d *content.ChapterDraft) error {
			lib.Editor().AddPhrase(d)
			p := &d.Phrases[len(d.Phrases)-1]
			p.Source, p.Target = args[2], args[3]
			return nil
		})
	},
}

var editRemovePhraseCmd = &cobra.Command{
	Use:   "remove-phrase <course-id> <chapter-id> <index>",
	Short: "Remove a phrase by its index (see edit show)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[2], err)
		}
		return withDraft(cmd, args[0], args[1], func(lib *library.Library, d *content.ChapterDraft) error {
			if !lib.Editor().RemovePhrase(d, idx) {
				return fmt.Errorf("no phrase at index %d", idx)
			}
			return nil
		})
	},
}

var editAddChapterCmd = &cobra.Command{
	Use:   "add-chapter <course-id>",
	Short: "Append a starter chapter to a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()
		lib := e.library(ctx)

		ci, _, err := lib.Locate(args[0], "")
		if err != nil {
			return err
		}
		idx, err := lib.AddChapter(ctx, ci)
		if err != nil {
			return err
		}
		warnNotSaved(lib)
		fmt.Println("Added chapter", lib.Data().Courses[ci].Chapters[idx].ID)
		return nil
	},
}

// withDraft loads a chapter draft, applies fn and saves the result.
func withDraft(cmd *cobra.Command, courseID, chapterID string, fn func(*library.Library, *content.ChapterDraft) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	ctx := cmd.Context()
	lib := e.library(ctx)

	ci, chi, err := lib.Locate(courseID, chapterID)
	if err != nil {
		return err
	}
	d, err := lib.Draft(ci, chi)
	if err != nil {
		return err
	}
	if err := fn(lib, &d); err != nil {
		return err
	}
	if err := lib.SaveChapter(ctx, ci, chi, d); err != nil {
		return err
	}
	warnNotSaved(lib)
	fmt.Printf("Saved %s/%s (revision %d)\n", courseID, chapterID, lib.Data().Revision)
	return nil
}

func warnNotSaved(lib *library.Library) {
	if !lib.Durable() {
		fmt.Fprintln(os.Stderr, "warning: changes could not be saved")
	}
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}

func init() {
	editSetCmd.Flags().String("title", "", "Chapter title")
	editSetCmd.Flags().String("color", "", "Chapter color class, e.g. \"from-amber-200 to-amber-50\"")
	editSetCmd.Flags().String("tips-file", "", "File with one \"Title: text\" tip per line")
	editSetCmd.Flags().String("dialog-title", "", "Dialog title")
	editSetCmd.Flags().String("lines-a-file", "", "File with speaker A lines")
	editSetCmd.Flags().String("lines-b-file", "", "File with speaker B lines")

	editCmd.AddCommand(editShowCmd)
	editCmd.AddCommand(editSetCmd)
	editCmd.AddCommand(editAddPhraseCmd)
	editCmd.AddCommand(editRemovePhraseCmd)
	editCmd.AddCommand(editAddChapterCmd)
}
