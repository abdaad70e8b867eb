package cmd

import (
	"github.com/abhisek/hotsquiz/internal/quizgen"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz",
	Long: `Start the quiz TUI. With --aspiration the setup screens are skipped and a
quiz starts straight away using the given flags over the configured defaults.`,
	Example: `  hotsquiz play
  hotsquiz play --subject physics --level sma --aspiration "become a pilot" --count 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		quick := cmd.Flags().Changed("aspiration")
		return runApp(cmd, quick)
	},
}

func init() {
	addQuizFlags(playCmd)
}

// addQuizFlags registers the quiz parameter flags shared by play and preview.
func addQuizFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("subject", "s", "", "Subject key or name (e.g. biology, Informatics)")
	cmd.Flags().StringP("level", "l", "", "School level: elementary, lower-secondary, upper-secondary (or SD, SMP, SMA)")
	cmd.Flags().StringP("aspiration", "a", "", "What the student wants to become")
	cmd.Flags().IntP("count", "n", 0, "Number of questions")
}

// paramsFromFlags overlays the quiz flags that were set onto p and
// validates the result.
func paramsFromFlags(cmd *cobra.Command, p quizgen.Params) (quizgen.Params, error) {
	f := cmd.Flags()
	if f.Changed("subject") {
		v, _ := f.GetString("subject")
		sub, err := quizgen.ParseSubject(v)
		if err != nil {
			return p, err
		}
		p.Subject = sub
	}
	if f.Changed("level") {
		v, _ := f.GetString("level")
		lvl, err := quizgen.ParseLevel(v)
		if err != nil {
			return p, err
		}
		p.Level = lvl
	}
	if f.Changed("aspiration") {
		p.Aspiration, _ = f.GetString("aspiration")
	}
	if f.Changed("count") {
		p.Count, _ = f.GetInt("count")
	}
	p = p.WithDefaults()
	return p, p.Validate()
}
