package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/polyglot/internal/mastery"
	"github.com/abhisek/polyglot/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [course-id]",
	Short: "Show learning statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("recent")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		st, err := e.requireStore()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var courseID string
		if len(args) == 1 {
			courseID = args[0]
		}

		lib := e.library(ctx)
		repo := st.EventRepo()
		stats, err := repo.ChapterStats(ctx, courseID)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		byChapter := make(map[string]store.ChapterStats, len(stats))
		for _, s := range stats {
			byChapter[s.CourseID+"/"+s.ChapterID] = s
		}

		ms := lib.Mastery()
		fmt.Println("Mastery by Chapter")
		fmt.Println(strings.Repeat("─", 84))
		fmt.Printf("%-10s  %-28s  %7s  %6s  %6s  %8s  %s\n",
			"Course", "Chapter", "Mastery", "Quizzes", "Best", "Accuracy", "Last")
		fmt.Println(strings.Repeat("─", 84))
		for _, c := range lib.Data().Courses {
			if courseID != "" && c.ID != courseID {
				continue
			}
			for _, ch := range c.Chapters {
				s := byChapter[c.ID+"/"+ch.ID]
				last := "-"
				if !s.LastActivity.IsZero() {
					last = s.LastActivity.Local().Format("2006-01-02")
				}
				fmt.Printf("%-10s  %-28s  %7s  %6d  %5d%%  %8s  %s\n",
					truncate(c.ID, 10),
					truncate(ch.Title, 28),
					mastery.Badge(ms.Get(c.ID, ch.ID), ms.Has(c.ID, ch.ID)),
					s.Completed,
					s.BestPercent,
					accuracy(s.Correct, s.Answers),
					last,
				)
			}
		}

		if limit <= 0 {
			return nil
		}
		events, err := repo.QueryQuizEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query quiz events: %w", err)
		}
		fmt.Println()
		fmt.Println("Recent Quizzes")
		fmt.Println(strings.Repeat("─", 84))
		if len(events) == 0 {
			fmt.Println("No quizzes taken yet.")
			return nil
		}
		fmt.Printf("%-19s  %-10s  %-20s  %-8s  %-8s  %7s  %s\n",
			"Timestamp", "Course", "Chapter", "Kind", "Action", "Score", "Time")
		for _, ev := range events {
			if courseID != "" && ev.CourseID != courseID {
				continue
			}
			score := "-"
			if ev.Action == store.QuizActionComplete {
				score = fmt.Sprintf("%d/%d", ev.CorrectAnswers, ev.TotalQuestions)
			}
			fmt.Printf("%-19s  %-10s  %-20s  %-8s  %-8s  %7s  %ds\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(ev.CourseID, 10),
				truncate(ev.ChapterID, 20),
				ev.Kind,
				ev.Action,
				score,
				ev.DurationSecs,
			)
		}
		return nil
	},
}

func accuracy(correct, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", correct*100/total)
}

func init() {
	statsCmd.Flags().IntP("recent", "n", 10, "Number of recent quiz events to show (0 hides them)")
}
