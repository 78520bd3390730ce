package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mwalter/cardcrawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Catalog []*SourceEntry

	// NewSession opens a fresh browser session. Every crawled source gets
	// its own session; sessions are never shared.
	NewSession func(headless bool) (cardcrawl.Session, error)

	// OpenArchive opens the run archive at the given path. The returned
	// closer releases it.
	OpenArchive func(path string) (cardcrawl.RunService, func() error, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a source and write its records to an xlsx artifact"`
	Sources SourcesCmd `cmd:"" help:"List configured sources"`
	Runs    RunsCmd    `cmd:"" help:"List archived crawl runs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Source   string  `arg:"" optional:"" help:"Source name (see 'cardcrawl sources')"`
	All      bool    `help:"Crawl every configured source concurrently"`
	Out      string  `short:"o" help:"Output xlsx path (defaults to <source>.xlsx)"`
	Headless bool    `default:"true" negatable:"" help:"Run the browser headless"`
	Rate     float64 `default:"1" help:"Max pagination transitions per second"`
	DB       string  `help:"Archive the run to this SQLite database"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Source string `arg:"" optional:"" help:"Restrict to one source"`
	DB     string `default:"cardcrawl.db" help:"SQLite database path"`
}
