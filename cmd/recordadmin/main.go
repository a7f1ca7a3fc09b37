// Command recordadmin is the terminal admin console for the records service.
// It wires the REST client, the reconcilers and the notification center into
// the TUI and hands control to bubbletea.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/recordops/recordadmin/internal/core/domain"
	"github.com/recordops/recordadmin/internal/core/service"
	"github.com/recordops/recordadmin/internal/infrastructure/config"
	"github.com/recordops/recordadmin/internal/infrastructure/rest"
	"github.com/recordops/recordadmin/internal/tui"
	"github.com/recordops/recordadmin/pkg/logger"
)

var version = "dev"

func main() {
	var (
		apiURL      = pflag.String("api", "", "base URL of the records API (overrides API_BASE_URL)")
		user        = pflag.String("user", "", "open the posts page filtered to this username")
		logLevel    = pflag.String("log-level", "", "log level: trace, debug, info, warn, error")
		showVersion = pflag.BoolP("version", "v", false, "print version and exit")
	)
	pflag.Parse()

	if *showVersion {
		fmt.Println("recordadmin", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Output: io.Discard,
	})
	log.Info().Str("api", cfg.APIBaseURL).Str("version", version).Msg("starting admin console")

	client := rest.NewClient(cfg.APIBaseURL, cfg.APITimeout, log)
	notes := service.NewNotificationCenter()
	users := service.NewReconciler[domain.User]("user", rest.NewUsers(client), notes, log)
	posts := service.NewReconciler[domain.Post]("post", rest.NewPosts(client), notes, log)

	app := tui.New(users, posts, notes, log, *user)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
