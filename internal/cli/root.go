package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/cardscout/internal/auth"
	"github.com/existflow/cardscout/internal/catalog"
	"github.com/existflow/cardscout/internal/config"
	"github.com/existflow/cardscout/internal/logger"
	"github.com/existflow/cardscout/internal/storage"
	"github.com/existflow/cardscout/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cardscout",
	Short: "CardScout - terminal trading card price checker",
	Long: `CardScout estimates the market value of a trading card from its name,
set, number and condition, with a local fallback when the catalog has no match.

Run 'cardscout' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if configChanged {
			if err := cfg.Save(); err != nil {
				fmt.Printf("Warning: failed to save config: %v\n", err)
			}
		}

		logConfig := logger.Config{
			Level:    cfg.LogLevel,
			FilePath: cfg.LogFile,
			Console:  cfg.LogConsole,
		}
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("CardScout started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		kv, authStore, err := openStores()
		if err != nil {
			return err
		}
		defer func() {
			_ = kv.Close()
			logger.Info("Store closed")
		}()

		lookup := catalog.NewService(catalog.NewClient(cfg.APIBaseURL), cfg.CacheTTL)

		logger.Info("Launching TUI")
		m := tui.NewModel(authStore, lookup)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("CardScout exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// openStores opens the local kv store and the auth store on top of it
func openStores() (*storage.Store, *auth.Store, error) {
	kv, err := storage.OpenDefault()
	if err != nil {
		logger.Error("Failed to open store", logger.F("error", err))
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	authStore, err := auth.NewStore(kv)
	if err != nil {
		_ = kv.Close()
		return nil, nil, fmt.Errorf("failed to open auth store: %w", err)
	}

	return kv, authStore, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(priceCmd)
}
