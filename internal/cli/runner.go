package cli

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/idilsaglam/healthlog/internal/api"
	"github.com/idilsaglam/healthlog/internal/auth"
	"github.com/idilsaglam/healthlog/internal/config"
	"github.com/idilsaglam/healthlog/internal/logger"
	"github.com/idilsaglam/healthlog/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Theme   string
	NoColor bool
}

// App carries what every subcommand needs.
type App struct {
	Config *config.Config
	Log    *zap.Logger
	API    *api.Client
}

// NewApp wires config, logger and API client for one invocation.
func NewApp(cfg *config.Config, interactive bool) (*App, error) {
	log, err := logger.NewZapLogger(cfg, interactive)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	client := api.NewClient(cfg.API.BaseURL, log,
		api.WithTokenSource(auth.Bearer),
		api.WithTimeout(cfg.API.RequestTimeout),
		api.WithRateLimit(cfg.API.RateLimitPerSecond),
	)
	return &App{Config: cfg, Log: log, API: client}, nil
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cfg := config.Load()
	theme := opt.Theme
	if theme == "" {
		theme = cfg.App.Theme
	}
	ui.SetTheme(theme)
	if opt.NoColor || cfg.App.NoColor {
		ui.SetColorForcing(false, true)
	}

	app, err := NewApp(cfg, args[0] == "ui")
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer app.Log.Sync()
	return app.Run(ctx, args)
}

func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		return a.doUI(ctx)

	case "appointments", "ls":
		return a.doAppointments(ctx, rest)

	case "treatments":
		return a.doTreatments(ctx, rest)

	case "treatment":
		if len(rest) == 0 {
			ui.Fail("usage: healthlog treatment <show|add|edit> ...")
			return 2
		}
		switch rest[0] {
		case "show":
			return a.doTreatmentShow(ctx, rest[1:])
		case "add":
			return a.doTreatmentAdd(ctx, rest[1:])
		case "edit":
			return a.doTreatmentEdit(ctx, rest[1:])
		}
		ui.Fail("usage: healthlog treatment <show|add|edit> ...")
		return 2

	case "auth":
		if len(rest) == 0 {
			ui.Fail("usage: healthlog auth <login|logout|status|whoami>")
			return 2
		}
		switch rest[0] {
		case "login":
			return doAuthLogin()
		case "logout":
			return doAuthLogout()
		case "status":
			return doAuthStatus()
		case "whoami":
			return doAuthWhoAmI()
		}
		ui.Fail("usage: healthlog auth <login|logout|status|whoami>")
		return 2
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`healthlog - appointments and treatments from your terminal

Usage:
  healthlog [-theme classic|neon|mono] [-no-color] <subcommand> [args]

Subcommands:
  ui                                  Interactive screens (appointments, treatments, form)
  appointments [-pages N] [search...] List appointments
  treatments [-pages N] [search...]   List treatments
  treatment show <id>                 Show one treatment
  treatment add -title T -date YYYY-MM-DD -location L [-kind K] [-description D] [-files F]
  treatment edit <id> [-title T] [-date ...] [-location ...] [-kind ...] [-description ...]
  auth <login|logout|status|whoami>   Token authentication

Treatment kinds: medicine, physiotherapy, aesthetic, dental, spiritual, psychotherapy

Examples:
  healthlog ui
  healthlog appointments -pages 2 cardio
  healthlog treatment add -title "Physio" -kind physiotherapy -date 2025-03-01 -location "City clinic"
  healthlog treatment edit 42 -location "Home"
`)
}
