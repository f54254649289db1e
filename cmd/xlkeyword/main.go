package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"xlkeyword/internal/config"
	"xlkeyword/internal/logger"
	"xlkeyword/internal/model"
	"xlkeyword/internal/report"
	"xlkeyword/internal/ui"
)

const (
	appName    = "xlkeyword"
	appVersion = "1.0.0"
	appDesc    = "Keyword operations over Excel workbooks: write, search, annotate, extract, split, export"
)

var (
	configPath  string
	verbose     bool
	quiet       bool
	pause       bool
	showVersion bool
	showConfig  bool
	outputDir   string
	outputFile  string
	keywordFlag string
	messageFlag string
	cellsFile   string
	chunkSize   int
	formats     string
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&quiet, "quiet", false, "Hide progress bars")
	flag.BoolVar(&pause, "pause", false, "Wait for Enter before exiting")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showConfig, "show-config", false, "Print the effective configuration before running")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&outputFile, "out", "", "Override extraction workbook name from config")
	flag.StringVar(&keywordFlag, "keyword", "", "Override keyword from config")
	flag.StringVar(&keywordFlag, "k", "", "Override keyword from config (shorthand)")
	flag.StringVar(&messageFlag, "message", "", "Override annotation message from config")
	flag.StringVar(&cellsFile, "cells", "", "Assignment file for the write command (CELL=value per line)")
	flag.IntVar(&chunkSize, "size", 0, "Override chunk size from config")
	flag.StringVar(&formats, "report", "", "Comma-separated run report formats (word,excel)")
	flag.Usage = usage
}

func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
		}
		if pause {
			waitForEnter()
		}
		os.Exit(exitCode)
	}()

	exitCode = run()
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	if flag.NArg() == 0 {
		usage()
		return 1
	}
	name, args := flag.Arg(0), flag.Args()[1:]

	cmd, ok := commands[name]
	if !ok {
		fmt.Printf("❌ Unknown command %q\n\n", name)
		usage()
		return 1
	}

	if !quiet {
		printBanner()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}
	if err := applyFlags(cfg); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		return 1
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	if err := initLogger(cfg); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	if showConfig {
		cfg.Print()
	}

	progress := ui.NewReporter()
	if quiet {
		progress.Disable()
	}

	e := &env{cfg: cfg, progress: progress, args: args}
	summary := model.NewRun(name)
	summary.Keyword = cfg.Keyword.Value

	err = cmd.run(e, summary)
	progress.Finish()
	summary.Finish(err)

	writeReports(cfg, summary)

	if err != nil {
		logger.LogFailure(name, failurePath(summary), err)
		return 1
	}

	logger.Info("✅ %s complete (%s)", name, summary.Duration().Round(time.Millisecond))
	return 0
}

// applyFlags lets command-line flags take precedence over the configuration
func applyFlags(cfg *config.Config) error {
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if outputFile != "" {
		cfg.Output.File = outputFile
	}
	if keywordFlag != "" {
		cfg.Keyword.Value = keywordFlag
	}
	if messageFlag != "" {
		cfg.Keyword.Message = messageFlag
	}
	if chunkSize != 0 {
		cfg.Chunk.Size = chunkSize
	}
	if formats != "" {
		cfg.Report.Formats = strings.Split(formats, ",")
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	return cfg.Validate()
}

func initLogger(cfg *config.Config) error {
	if err := logger.Init(os.Stdout, cfg.GetLogPath(), cfg.Log.Verbose); err != nil {
		return err
	}
	if cfg.Log.Verbose {
		return nil
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("%v, using INFO", err)
		return nil
	}
	logger.SetLevel(level)
	return nil
}

func writeReports(cfg *config.Config, run *model.Run) {
	reporters := report.GetReporters(cfg.Report.Formats, cfg.Report.Template)
	if len(reporters) == 0 {
		return
	}

	logger.Info("Generating %d reports...", len(reporters))
	if _, err := report.WriteAll(reporters, run, cfg.GetReportPath(run.Operation)); err != nil {
		logger.Warn("Some reports could not be written")
	}
}

func failurePath(run *model.Run) string {
	if len(run.Inputs) == 1 {
		return run.Inputs[0]
	}
	return ""
}

// waitForEnter pauses execution and waits for user to press Enter
// This prevents the console window from closing immediately when double-clicked
func waitForEnter() {
	fmt.Println("\n==========================================")
	fmt.Println("Execution Finished. Press 'Enter' to exit.")
	fmt.Println("==========================================")
	bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <command> [arguments]\n\nCommands:\n", appName)
	for _, name := range commandOrder {
		c := commands[name]
		fmt.Fprintf(out, "  %-11s %-30s %s\n", name, c.args, c.summary)
	}
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                      XLKEYWORD v1.0.0                     ║
║           Keyword Operations for Excel Workbooks          ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
