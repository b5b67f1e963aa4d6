package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/genc-murat/collectionmem/internal/app"
	"github.com/genc-murat/collectionmem/internal/config"
	"github.com/genc-murat/collectionmem/internal/storage"
)

const version = "0.1.0"

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "collectionmem",
		Usage:     "Estimate the memory footprint of common container kinds",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Environment name, loads config/<env>.yaml",
				Value:   "development",
				EnvVars: []string{"COLLECTIONMEM_ENV"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (overrides --env)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text or json (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "human",
				Usage: "Print byte counts as IEC sizes",
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Print only the value at this gjson path of the JSON output",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print estimator counters to stderr on exit",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "breakdown",
				Usage:  "Show the memory breakdown of one container",
				Flags:  snapshotFlags(),
				Action: withRuntime(breakdownCommand),
			},
			{
				Name:  "compare",
				Usage: "Compare all container kinds at the display element count",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "Source container kind", Required: true},
					&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Usage: "Current element count"},
				},
				Action: withRuntime(compareCommand),
			},
			{
				Name:   "report",
				Usage:  "Show breakdown, growth outlook and comparison for one container",
				Flags:  snapshotFlags(),
				Action: withRuntime(reportCommand),
			},
			{
				Name:   "profiles",
				Usage:  "List the overhead constants for every kind",
				Action: withRuntime(profilesCommand),
			},
			{
				Name:  "batch",
				Usage: "Build reports for every snapshot in a YAML file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"i"}, Usage: "Batch file path", Required: true},
				},
				Action: withRuntime(batchCommand),
			},
			{
				Name:  "history",
				Usage: "Replay reports stored in the report log",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Show only the most recent N reports (0 for all)"},
				},
				Action: withRuntime(historyCommand),
			},
		},
	}
}

func snapshotFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "Container kind (deque, syncmap, orderedmap, sortedmap)", Required: true},
		&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Usage: "Element or entry count"},
		&cli.IntFlag{Name: "capacity", Usage: "Backing array capacity (defaults to size)", Value: -1},
		&cli.IntFlag{Name: "extra", Usage: "Kind-specific value, e.g. tree height"},
	}
}

// cmdEnv holds what every command needs once flags and config are resolved.
type cmdEnv struct {
	cfg       *config.Config
	estimator *app.Estimator
	reportLog *storage.ReportLog
	out       io.Writer
	query     string
}

func withRuntime(fn func(c *cli.Context, rt *cmdEnv) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		logOut, closeLog, err := logOutput(c, cfg.Logging.Output)
		if err != nil {
			return err
		}
		defer closeLog()

		logger := log.New(logOut, cfg.Logging.Prefix, log.LstdFlags)
		opts := []app.Option{app.WithLogger(logger)}

		var reportLog *storage.ReportLog
		if cfg.ReportLog.Enabled {
			reportLog, err = storage.NewReportLog(cfg.ReportLog.Path)
			if err != nil {
				return err
			}
			defer reportLog.Close()
			opts = append(opts, app.WithSink(reportLog))
		}

		rt := &cmdEnv{
			cfg:       cfg,
			estimator: app.NewEstimator(cfg, opts...),
			reportLog: reportLog,
			out:       c.App.Writer,
			query:     c.String("query"),
		}

		err = fn(c, rt)
		if c.Bool("stats") {
			if !cfg.Metrics.Enabled {
				fmt.Fprintln(c.App.ErrWriter, "--stats ignored: metrics are disabled in config")
			} else if statsErr := printStats(c.App.ErrWriter, rt.estimator.Metrics(), cfg.Report.Format); statsErr != nil && err == nil {
				err = fmt.Errorf("error printing stats: %w", statsErr)
			}
		}
		return err
	}
}

// logOutput resolves "stderr", "stdout" or a file path to a writer.
func logOutput(c *cli.Context, output string) (io.Writer, func(), error) {
	switch output {
	case "", "stderr":
		return c.App.ErrWriter, func() {}, nil
	case "stdout":
		return c.App.Writer, func() {}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		cfg = loaded
	} else if loaded, err := config.LoadConfig(c.String("env")); err == nil {
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if format := c.String("format"); format != "" {
		cfg.Report.Format = format
	}
	if c.Bool("human") {
		cfg.Report.HumanReadable = true
	}
	if c.String("query") != "" {
		cfg.Report.Format = config.FormatJSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
