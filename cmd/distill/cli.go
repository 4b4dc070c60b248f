package main

import (
	"context"
	"io"

	"github.com/jswierad/distill"
	"github.com/jswierad/distill/batch"
	"github.com/jswierad/distill/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Runs    distill.RunService
	Runner  *batch.Runner
	Scraper *batch.Scraper
	Asker   distill.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Batch  BatchCmd  `cmd:"" help:"Extract articles from a directory of HTML files"`
	Scrape ScrapeCmd `cmd:"" help:"Scrape articles from live URLs"`
	Runs   RunsCmd   `cmd:"" help:"List recorded batch runs"`
	Serve  ServeCmd  `cmd:"" help:"Serve scrape and batch operations over HTTP"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about extracted articles"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	InputDir    string `arg:"" help:"Directory containing HTML files"`
	OutputDir   string `arg:"" help:"Directory for rendered artifacts and manifest"`
	Format      string `short:"f" default:"markdown" enum:"markdown,text" help:"Output format (markdown or text)"`
	Overwrite   bool   `short:"o" help:"Reprocess files with existing artifacts"`
	Limit       int    `short:"n" default:"0" help:"Process at most N files (0 = all)"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent extraction limit"`
	Engine      string `short:"e" default:"trafilatura" help:"Extraction engine (trafilatura or readability)"`
	Tables      bool   `default:"true" negatable:"" help:"Include table content in extracted text"`
	Comments    bool   `help:"Include comment sections in extracted text"`
	Quiet       bool   `short:"q" help:"Suppress per-file progress output"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs      []string `arg:"" help:"Article URLs to scrape"`
	OutputDir string   `short:"d" default:"scraped" help:"Directory for scraped artifacts"`
	Engine    string   `short:"e" default:"trafilatura" help:"Extraction engine (trafilatura or readability)"`
	Tables    bool     `default:"true" negatable:"" help:"Include table content in extracted text"`
	Comments  bool     `help:"Include comment sections in extracted text"`
	Raw       bool     `help:"Store the pre-cleaning plain text in the JSON record"`
	RPS       float64  `default:"1.0" help:"Requests per second per domain"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	ID       string `arg:"" optional:"" help:"Show per-file results for a run"`
	InputDir string `short:"i" help:"Only runs over this input directory"`
	Limit    int    `short:"n" default:"20" help:"Show at most N runs"`
	Offset   int    `default:"0" help:"Skip the first N runs"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string `default:":8080" help:"Listen address"`
	OutputDir string `short:"d" default:"scraped" help:"Default directory for scraped artifacts"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Dir      string `arg:"" help:"Directory of rendered artifacts"`
	Question string `arg:"" help:"Question to ask about the articles"`
}
