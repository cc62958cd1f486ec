package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/kousuan/internal/config"
	"github.com/abhisek/kousuan/internal/llm"
	"github.com/abhisek/kousuan/internal/problemgen"
	"github.com/abhisek/kousuan/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "kousuan",
	Short: "Arithmetic practice generator for kids",
	Long: `kousuan generates arithmetic drills (口算) by named property: operand
range, carry or borrow, fill-in-the-blank. It also serves single practice
problems by difficulty, optionally written by an LLM, with multiple-choice
options.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			if _, err := config.ParseLevel(lvl); err != nil {
				return err
			}
			loaded.LogLevel = lvl
		}
		cfg = loaded
		logger = cfg.NewLogger(os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file for the LLM request log (overrides KOUSUAN_DB)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides KOUSUAN_LOG_LEVEL)")

	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(problemCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KOUSUAN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// newProblemService builds the difficulty-level problem service. Remote
// generation is enabled when an LLM provider is configured; every request
// is then recorded in the store. An unusable store only disables the
// request log. The returned func closes the store.
func newProblemService(cmd *cobra.Command) (*problemgen.Service, func(), error) {
	repo, closeStore := openEventLog(cmd)
	local := problemgen.NewLocalGenerator(nil)

	provider, err := llm.NewProviderFromEnv(cmd.Context(), repo, logger)
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Problems will be generated locally.")
		return problemgen.NewService(nil, local, logger), closeStore, nil
	case provider == nil:
		logger.Debug("no LLM provider configured, generating locally")
		return problemgen.NewService(nil, local, logger), closeStore, nil
	}

	pcfg := problemgen.DefaultConfig()
	pcfg.Strict = cfg.Strict
	remote := problemgen.NewRemoteGenerator(provider, pcfg)
	return problemgen.NewService(remote, local, logger), closeStore, nil
}

// openEventLog opens the LLM request log. On failure it warns and returns a
// nil repo, which turns request recording off.
func openEventLog(cmd *cobra.Command) (store.EventRepo, func()) {
	st, err := openStore(cmd)
	if err != nil {
		logger.Warn("LLM request log disabled", "error", err)
		return nil, func() {}
	}
	return st.EventRepo(), func() { st.Close() }
}
