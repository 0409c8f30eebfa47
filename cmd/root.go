// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/metrics"
	"github.com/nibzard/todo-go/internal/script"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// With no subcommand the interactive screen opens
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	cfg := cws.Config
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "run":
		return runCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "logs":
		return logsCommand(cfg, remainingArgs)
	case "schema":
		return schemaCommand(remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newStore builds a store with the configured id strategy and the given
// observers attached.
func newStore(cfg *config.Config, observers ...todo.Observer) (*todo.Store, error) {
	ids, err := todo.NewIDGenerator(cfg.IDStrategy)
	if err != nil {
		return nil, err
	}
	opts := []todo.Option{todo.WithIDGenerator(ids)}
	for _, obs := range observers {
		opts = append(opts, todo.WithObserver(obs))
	}
	return todo.NewStore(opts...), nil
}

// openSessionLog creates a session log in the configured directory and a
// logger writing to it.
func openSessionLog(cfg *config.Config) (*logging.SessionLog, *log.Logger, error) {
	sl, err := logging.NewSessionLog(cfg.LogDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session log: %w", err)
	}
	return sl, logging.New(sl.Writer(), logging.OptionsFromConfig(cfg)), nil
}

// tuiCommand opens the interactive screen.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY (use 'todo run' for scripted sessions)")
	}

	sl, logger, err := openSessionLog(cfg)
	if err != nil {
		return err
	}
	defer sl.Close()

	rec := metrics.NewRecorder()
	store, err := newStore(cfg, logging.StoreObserver(logger), rec.Observer())
	if err != nil {
		return err
	}

	logger.Info("Session started", "mode", "tui", "run_id", sl.RunID, "id_strategy", cfg.IDStrategy)
	err = ui.RunTUI(ctx, cfg, store,
		ui.WithLogger(logger),
		ui.WithValidationHook(rec.RecordValidationFailure),
	)
	pending, completed := store.Counts()
	logger.Info("Session finished", "pending", pending, "completed", completed)
	logSessionMetrics(logger, rec)
	return err
}

// logSessionMetrics writes the session's metrics into its log at debug
// level. A failure to render them is logged as a warning.
func logSessionMetrics(logger *log.Logger, rec *metrics.Recorder) {
	var text bytes.Buffer
	if err := rec.WriteText(&text); err != nil {
		logger.Warn("Session metrics unavailable", "err", err)
		return
	}
	logger.Debug("Session metrics", "text", text.String())
}

// runCommand applies a script to a fresh store.
func runCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "Print the final list as a JSON snapshot document")
	validate := fs.Bool("validate", false, "Validate the final snapshot document against its schema")
	showMetrics := fs.Bool("metrics", false, "Print operation metrics in Prometheus text format")
	strict := fs.Bool("strict", false, "Fail if any command was rejected")

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	path := "-"
	if len(remaining) == 1 {
		path = remaining[0]
	}

	cmds, err := readScript(path)
	if err != nil {
		return err
	}

	sl, logger, err := openSessionLog(cfg)
	if err != nil {
		return err
	}
	defer sl.Close()

	rec := metrics.NewRecorder()
	store, err := newStore(cfg, logging.StoreObserver(logger), rec.Observer())
	if err != nil {
		return err
	}

	// The document owns stdout in JSON mode
	out := stdout
	if *asJSON {
		out = stderr
	}

	logger.Info("Session started", "mode", "run", "run_id", sl.RunID, "script", path, "commands", len(cmds))
	runner := script.NewRunner(store,
		script.WithOutput(out),
		script.WithLogger(logger),
		script.WithNotifications(cfg.Notifications),
		script.WithValidationHook(rec.RecordValidationFailure),
	)
	sum, err := runner.Run(ctx, cmds)
	if err != nil {
		return err
	}
	logger.Info("Session finished", "applied", sum.Applied, "failed", sum.Failed)
	logSessionMetrics(logger, rec)

	if *asJSON || *validate {
		var doc bytes.Buffer
		if err := todo.NewDocument(store.Snapshot()).Encode(&doc); err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		if *validate {
			if result := todo.ValidateDocument(doc.Bytes()); !result.Valid {
				return fmt.Errorf("snapshot document invalid: %w", result.Err())
			}
		}
		if *asJSON {
			if _, err := stdout.Write(doc.Bytes()); err != nil {
				return err
			}
		}
	}
	if *showMetrics {
		if err := rec.WriteText(out); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	if *strict && sum.Failed > 0 {
		return fmt.Errorf("%d of %d commands rejected", sum.Failed, sum.Applied+sum.Failed)
	}
	return nil
}

// readScript parses the script at path, or stdin when path is "-".
func readScript(path string) ([]script.Command, error) {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		in = f
	}
	cmds, err := script.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return cmds, nil
}

// configCommand prints the effective configuration or an example file.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todo config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	fmt.Fprintln(stdout, "Effective configuration:")
	fmt.Fprintln(stdout)
	for _, field := range config.Fields() {
		fmt.Fprintf(stdout, "  %-16s %-24s (%s)\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	fmt.Fprintln(stdout)
	if len(cws.Files) == 0 {
		fmt.Fprintln(stdout, "No config files found.")
		return nil
	}
	fmt.Fprintln(stdout, "Config files:")
	for _, file := range cws.Files {
		fmt.Fprintf(stdout, "  %s\n", file)
	}
	return nil
}

// schemaCommand prints the JSON Schema that snapshot documents follow.
func schemaCommand(args []string) error {
	fs := flag.NewFlagSet("todo schema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	_, err := stdout.Write(todo.SchemaJSON())
	return err
}

// logsCommand prints the newest session log path, optionally with its tail.
func logsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", 0, "Also print the last n lines of the log")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logPath, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No session logs found.")
		return nil
	}

	fmt.Fprintln(stdout, logPath)
	if *n > 0 {
		fmt.Fprintln(stdout)
		return logging.TailLog(stdout, logPath, *n)
	}
	return nil
}

func versionCommand() error {
	fmt.Fprintf(stdout, "todo version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo - A small to-do list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui             Open the interactive list (default command)")
	fmt.Fprintln(w, "  run [file|-]    Apply a script of commands (reads stdin by default)")
	fmt.Fprintln(w, "  config          Show the effective configuration and its sources")
	fmt.Fprintln(w, "  logs            Show the newest session log")
	fmt.Fprintln(w, "  schema          Print the JSON Schema of snapshot documents")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(stderr)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run Options (use with 'run' command):")
	fmt.Fprintln(w, "  -json        Print the final list as a JSON snapshot document")
	fmt.Fprintln(w, "  -validate    Validate the final snapshot document against its schema")
	fmt.Fprintln(w, "  -metrics     Print operation metrics in Prometheus text format")
	fmt.Fprintln(w, "  -strict      Fail if any command was rejected")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Script lines:")
	fmt.Fprintln(w, "  add <text>            Add a to-do item at the top of the list")
	fmt.Fprintln(w, "  toggle <pos>          Mark the item at pos done or not done")
	fmt.Fprintln(w, "  delete <pos> [...]    Remove the items at the given positions")
	fmt.Fprintln(w, "  clear                 Remove completed items")
	fmt.Fprintln(w, "  list                  Print the list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example     Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options (use with 'logs' command):")
	fmt.Fprintln(w, "  -n int       Also print the last n lines of the log")
}
