package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/mastery"
	"github.com/abhisek/polyglot/internal/quiz"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List courses and chapters with mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		lib := e.library(cmd.Context())
		bank := e.bank()
		data := lib.Data()
		if len(data.Courses) == 0 {
			fmt.Println("No courses. Import a curriculum with `polyglot import <file>`.")
			return nil
		}

		ms := lib.Mastery()
		for i, c := range data.Courses {
			if i > 0 {
				fmt.Println()
			}
			ids := make([]string, len(c.Chapters))
			for j, ch := range c.Chapters {
				ids[j] = ch.ID
			}
			fmt.Printf("%s  (%s, %s)  avg %d%%\n", c.Label, c.ID, c.LearnLang, ms.CourseAverage(c.ID, ids))
			fmt.Println(strings.Repeat("─", 72))
			fmt.Printf("%-20s  %-28s  %5s  %7s  %s\n", "ID", "Title", "Words", "Mastery", "Quizzes")
			for j := range c.Chapters {
				ch := &c.Chapters[j]
				fmt.Printf("%-20s  %-28s  %5d  %7s  %s\n",
					truncate(ch.ID, 20),
					truncate(ch.Title, 28),
					len(content.Pool(ch)),
					mastery.Badge(ms.Get(c.ID, ch.ID), ms.Has(c.ID, ch.ID)),
					availableKinds(bank, ch),
				)
			}
		}
		return nil
	},
}

func availableKinds(bank *quiz.Bank, ch *content.Chapter) string {
	var kinds []string
	for _, k := range quiz.Kinds {
		if bank.Available(k, ch) {
			kinds = append(kinds, string(k))
		}
	}
	if len(kinds) == 0 {
		return "-"
	}
	return strings.Join(kinds, ", ")
}
