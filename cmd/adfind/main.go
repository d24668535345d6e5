package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/adfind/internal/backend"
	"github.com/pders01/adfind/internal/config"
	"github.com/pders01/adfind/internal/debuglog"
	"github.com/pders01/adfind/internal/history"
	"github.com/pders01/adfind/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	apiURL     string
	semantic   bool
	quiet      bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "adfind",
	Short:         "Search classified ads from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("adfind %s\n", Version)
		fmt.Println("Classifieds search client")
		fmt.Println("github.com/pders01/adfind")
	},
}

var configGenCmd = &cobra.Command{
	Use:   "generate-config [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPath()
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			return fmt.Errorf("generating config: %w", err)
		}
		fmt.Printf("Generated default configuration at: %s\n", path)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to configuration file")
	pf.StringVar(&apiURL, "api", "", "Backend base URL (overrides config)")
	pf.BoolVar(&semantic, "semantic", false, "Start in semantic search mode")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Skip startup banner")

	rootCmd.AddCommand(versionCmd, configGenCmd, searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSearchFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api") {
		cfg.API.BaseURL = apiURL
	}
	if flags.Changed("semantic") {
		cfg.UI.Semantic = semantic
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	if err := debuglog.Configure(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	return cfg, nil
}

// openHistory returns nil when history is disabled.
func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path, cfg.History.Limit)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return store, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !quiet {
		tui.ShowBanner(Version)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer debuglog.Close()

	client, err := backend.NewClient(cfg)
	if err != nil {
		return err
	}

	deps := tui.Deps{Backend: client}
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		deps.History = store
	}

	debuglog.Infof("starting against %s", client.BaseURL())

	p := tea.NewProgram(tui.NewApp(cfg, deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
