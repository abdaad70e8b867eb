package cmd

import (
	"github.com/abhisek/hotsquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hotsquiz",
	Short: "Higher-order thinking quizzes in your terminal",
	Long: `hotsquiz generates HOTS (higher-order thinking skills) quizzes with an LLM,
set in situations from the career you are aiming for, and scores them.

Set one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or
OPENROUTER_API_KEY (or HOTSQUIZ_LLM_PROVIDER with its HOTSQUIZ_*_API_KEY)
to enable quiz generation.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides HOTSQUIZ_DB and the config file)")
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/hotsquiz/config.yaml)")
	pf.String("log-mode", "", "Diagnostic log format: dev or prod")
	pf.String("log-level", "", "Diagnostic log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db (highest priority),
// then HOTSQUIZ_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
