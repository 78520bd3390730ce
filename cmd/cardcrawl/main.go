package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mwalter/cardcrawl"
	cardrod "github.com/mwalter/cardcrawl/rod"
	"github.com/mwalter/cardcrawl/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Source catalog. Replaceable for end-to-end testing.
	Catalog []*SourceEntry

	// Session and archive factories. Replaceable for end-to-end testing.
	NewSession  func(headless bool) (cardcrawl.Session, error)
	OpenArchive func(path string) (cardcrawl.RunService, func() error, error)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Catalog:     DefaultCatalog(),
		NewSession:  newBrowserSession,
		OpenArchive: openSQLiteArchive,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:         ctx,
		Stdout:      stdout,
		Stderr:      stderr,
		Catalog:     m.Catalog,
		NewSession:  m.NewSession,
		OpenArchive: m.OpenArchive,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cardcrawl"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cardcrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return kongCtx.Run(deps)
}

// newBrowserSession launches a Chrome-backed session.
func newBrowserSession(headless bool) (cardcrawl.Session, error) {
	return cardrod.NewSession(cardrod.WithHeadless(headless))
}

// openSQLiteArchive opens the run archive database at path.
func openSQLiteArchive(path string) (cardcrawl.RunService, func() error, error) {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewRunService(db), db.Close, nil
}
