package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/abhisek/hotsquiz/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz results by subject and the most recent quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		s, err := rt.openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		bySubject, err := s.EventRepo().QuizStatsBySubject(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(bySubject) == 0 {
			fmt.Println("No quizzes taken yet.")
			return nil
		}

		fmt.Println("By Subject")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-16s  %8s  %10s  %10s\n", "Subject", "Quizzes", "Average", "Best")
		fmt.Println(strings.Repeat("─", 56))
		var total int
		for _, st := range bySubject {
			fmt.Printf("%-16s  %8d  %9.2f%%  %9.2f%%\n",
				quizgen.Subject(st.Subject).DisplayName(), st.Quizzes, st.AvgScore, st.BestScore)
			total += st.Quizzes
		}
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-16s  %8d\n", "TOTAL", total)

		recent, err := s.EventRepo().QueryQuizResults(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		fmt.Println()
		fmt.Println("Recent Quizzes")
		fmt.Println(strings.Repeat("─", 80))
		for _, r := range recent {
			fmt.Printf("%-16s  %-12s  %-24s  %2d/%-2d  %7.2f%%\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(quizgen.Subject(r.Subject).DisplayName(), 12),
				truncate(r.Aspiration, 24),
				r.Correct, r.Questions, r.Score)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent quizzes to show")
}
