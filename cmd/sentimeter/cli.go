package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sentimeter"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Extractor  sentimeter.Extractor
	Classifier sentimeter.Classifier

	// Runs is nil when run history is unavailable.
	Runs sentimeter.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log pipeline progress to stderr"`

	Analyze AnalyzeCmd `cmd:"" help:"Classify the comments of a YouTube video page"`
	History HistoryCmd `cmd:"" help:"List archived analysis runs"`
	Show    ShowCmd    `cmd:"" help:"Show an archived analysis run"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an archived analysis run"`
}

// Extraction modes.
const (
	ModeBrowser = "browser"
	ModeStatic  = "static"
	ModeAuto    = "auto"
)

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL    string `arg:"" help:"YouTube video page URL (youtube.com/watch?v=...)"`
	Filter string `short:"f" default:"all" enum:"all,positive,neutral,negative" help:"Show only comments with this sentiment (all, positive, neutral, negative)"`
	Export bool   `short:"e" help:"Print every comment in export format instead of the report"`
	Output string `short:"o" type:"path" help:"Write the export text to this file"`

	Mode     string        `short:"m" default:"browser" enum:"browser,static,auto" help:"How to read the page: browser, static HTML, or auto to probe"`
	HTML     string        `type:"path" help:"Read the page from a saved HTML file instead of the network"`
	Selector string        `help:"CSS selector matching comment bodies"`
	Scrolls  int           `default:"3" help:"Scrolls performed to load lazy comments (browser mode)"`
	Timeout  time.Duration `short:"t" default:"30s" help:"Page load timeout"`
	Settle   time.Duration `default:"500ms" help:"Wait between preparing and reading the page"`
	Pattern  string        `help:"Regular expression for accepted page URLs"`

	API        string        `default:"http://localhost:8000" env:"SENTIMETER_API" help:"Classification service base URL"`
	APITimeout time.Duration `name:"api-timeout" default:"10s" help:"Classification request timeout"`
	APIRate    float64       `name:"api-rate" help:"Maximum classification requests per second (0 for unlimited)"`

	NoHistory bool `help:"Do not archive this run"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to list"`
	URL   string `name:"url" help:"List only runs of this page URL"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Run ID"`
	Filter string `short:"f" default:"all" enum:"all,positive,neutral,negative" help:"Show only comments with this sentiment"`
	Export bool   `short:"e" help:"Print every comment in export format instead of the report"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}
