package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/hpungsan/jotter/internal/config"
	"github.com/hpungsan/jotter/internal/db"
	"github.com/hpungsan/jotter/internal/logger"
	"github.com/hpungsan/jotter/internal/mcp"
	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"create": true, "update": true, "delete": true, "pin": true,
	"show": true, "view": true, "category": true, "theme": true,
	"export": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
       _       _   _
      (_) ___ | |_| |_ ___ _ __
      | |/ _ \| __| __/ _ \ '__|
      | | (_) | |_| ||  __/ |
     _/ |\___/ \__|\__\___|_|
    |__/

  Local notes with categories, pins and search

  Usage: jotter <command> [options]
         jotter serve      (web UI)
         jotter --help

  MCP server mode requires piped input.`)
}

// app bundles what every command needs once the store is open.
type app struct {
	st      *store.Store
	cfg     *config.Config
	log     *logger.Logger
	baseDir string
}

func (a *app) exportsDir() string {
	return db.ExportsDir(a.baseDir)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		if err := newCLIApp(nil).Run(os.Args); err != nil {
			fatal("%v", err)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if !isCLIMode() && len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'jotter --help' for usage.\n")
		os.Exit(1)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fatal("could not determine home directory: %v", err)
	}
	baseDir := filepath.Join(homeDir, ".jotter")

	cwd, err := os.Getwd()
	if err != nil {
		fatal("could not determine working directory: %v", err)
	}
	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fatal("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("invalid config: %v", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fatal("invalid log_level: %v", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, log)

	database, err := db.Init(baseDir)
	if err != nil {
		fatal("failed to initialize database: %v", err)
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)

	a, err := openApp(ctx, database, cfg, log, baseDir)
	if err != nil {
		fatal("failed to load notes: %v", err)
	}

	if isCLIMode() {
		if err := newCLIApp(a).RunContext(ctx, os.Args); err != nil {
			fatal("%v", err)
		}
		return
	}

	// MCP server mode (default)
	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		log.Warn(ctx, "unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}

	autosaveCtx, cancelAutosave := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.st.RunAutosave(autosaveCtx, cfg.AutosaveInterval())
	}()

	err = mcp.Run(a.st, cfg, a.exportsDir(), Version)
	cancelAutosave()
	<-done
	if err != nil {
		fatal("%v", err)
	}
}

// openApp builds the store on top of an initialized database and loads it.
func openApp(ctx context.Context, database *sql.DB, cfg *config.Config, log *logger.Logger, baseDir string) (*app, error) {
	defaultTheme, ok := note.ParseTheme(cfg.DefaultTheme)
	if !ok {
		log.Warn(ctx, "invalid default_theme, using light", zap.String("default_theme", cfg.DefaultTheme))
		defaultTheme = note.ThemeLight
	}

	st := store.New(db.NewKV(database),
		store.WithLogger(log),
		store.WithDefaultTheme(defaultTheme),
	)
	if err := st.Load(ctx); err != nil {
		return nil, err
	}

	return &app{st: st, cfg: cfg, log: log, baseDir: baseDir}, nil
}
