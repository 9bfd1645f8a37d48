// Command tja-dump prints what tjachart reads from TJA charts.
//
// Usage:
//
//	tja-dump info <chart.tja>
//	tja-dump notes --course oni <chart.tja>
//	tja-dump scan <songs-dir>
//	tja-dump version
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/simonhull/tjachart"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "tja-dump",
		Usage:   "inspect TJA rhythm-game charts",
		Version: tjachart.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "encoding",
				Value: "auto",
				Usage: "chart text encoding (auto, utf-8, shift-jis, utf-16)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "treat warnings as errors",
			},
			&cli.BoolFlag{
				Name:  "probe-audio",
				Usage: "read the WAVE file header and check its length",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log parser diagnostics to stderr",
			},
		},
		Commands: []*cli.Command{
			infoCommand(),
			notesCommand(),
			scanCommand(),
			versionCommand(),
		},
	}
}

// parserOptions turns the global flags into library options.
func parserOptions(c *cli.Context) ([]tjachart.Option, error) {
	enc, err := tjachart.ParseEncoding(c.String("encoding"))
	if err != nil {
		return nil, err
	}

	opts := []tjachart.Option{tjachart.WithEncoding(enc)}
	if c.Bool("strict") {
		opts = append(opts, tjachart.WithStrictParsing())
	}
	if c.Bool("probe-audio") {
		opts = append(opts, tjachart.WithAudioProbe())
	}

	level := slog.LevelWarn
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	opts = append(opts, tjachart.WithLogger(logger))

	return opts, nil
}

// requireArg returns the single positional argument of a command.
func requireArg(c *cli.Context, name string) (string, error) {
	if c.Args().Len() != 1 {
		return "", cli.Exit(fmt.Sprintf("usage: tja-dump %s <%s>", c.Command.Name, name), 2)
	}
	return c.Args().First(), nil
}
