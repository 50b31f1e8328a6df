// Package main implements the gitbattle terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitbattle/internal/config"
	"gitbattle/internal/github"
	"gitbattle/internal/logging"
	"gitbattle/internal/ui"
)

var (
	configPath string
	token      string
	apiURL     string
	logFile    string
	logLevel   string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gitbattle",
	Short: "Browse popular GitHub repositories and battle GitHub users",
	Long: `gitbattle is a terminal client for GitHub.

"Top Hits" ranks the most starred repositories per language.
"Fight!" compares two GitHub users by followers and stars.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default is the user config dir)")
	flags.StringVar(&token, "token", "", "GitHub token (overrides config and $GITHUB_TOKEN)")
	flags.StringVar(&apiURL, "api-url", "", "GitHub API base URL")
	flags.StringVar(&logFile, "log-file", "", "log file (overrides config)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(popularCmd)
	rootCmd.AddCommand(battleCmd)
}

// app holds what every command needs
type app struct {
	cfg    *config.Config
	client *github.Client
	logger *zap.Logger
}

// setup loads configuration, applies overrides and builds the logger and client
func setup(ctx context.Context) (*app, error) {
	svc := config.NewConfigService()
	if configPath != "" {
		svc = config.NewConfigServiceAt(configPath)
	}
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		cfg.GitHub.Token = env
	}
	if token != "" {
		cfg.GitHub.Token = token
	}
	if apiURL != "" {
		cfg.GitHub.APIURL = apiURL
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	logger.Info("config loaded", zap.String("path", svc.Path()), zap.String("theme", cfg.UI.Theme))

	client, err := github.NewClient(ctx, github.Options{
		BaseURL:           cfg.GitHub.APIURL,
		Token:             cfg.GitHub.Token,
		PerPage:           cfg.GitHub.PerPage,
		RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, client: client, logger: logger}, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	model := ui.NewModel(ctx, ui.Deps{Config: a.cfg, Client: a.client, Logger: a.logger})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	a.logger.Info("starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		a.logger.Error("error running program", zap.Error(err))
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("UI exited normally")
	return nil
}
