// Command serwer-docs builds the Serwer website into a directory of static
// files.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/zielvna/serwer/internal/build"
	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/render"
)

const defaultOutDir = "build"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML file overriding the built-in site configuration",
		EnvVars: []string{"SERWER_DOCS_CONFIG"},
	}
	outFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "directory to write the site to",
		Value:   defaultOutDir,
		EnvVars: []string{"SERWER_DOCS_OUT"},
	}
)

var buildCommand = &cli.Command{
	Name:  "build",
	Usage: "Render the site and write it to the output directory",
	Flags: []cli.Flag{
		configFlag,
		outFlag,
		&cli.BoolFlag{
			Name:    "no-minify",
			Usage:   "write HTML, CSS, and JavaScript as rendered",
			EnvVars: []string{"SERWER_DOCS_NO_MINIFY"},
		},
		&cli.BoolFlag{
			Name:    "gzip",
			Usage:   "write a .gz copy next to every compressible file",
			EnvVars: []string{"SERWER_DOCS_GZIP"},
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c.String(configFlag.Name))
		if err != nil {
			return err
		}
		builder := build.New(cfg, build.Options{
			OutDir: c.String(outFlag.Name),
			Minify: !c.Bool("no-minify"),
			Gzip:   c.Bool("gzip"),
		})
		report, err := builder.Build(c.Context)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Built %d pages and %d assets into %s (%d warnings)\n",
			len(report.Routes), report.Assets, builder.OutDir, len(report.Warnings))
		return nil
	},
}

var checkCommand = &cli.Command{
	Name:  "check",
	Usage: "Render the site and check its links without writing anything",
	Flags: []cli.Flag{configFlag},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c.String(configFlag.Name))
		if err != nil {
			return err
		}
		report, err := build.New(cfg, build.Options{}).Check(c.Context)
		if err != nil {
			return err
		}
		for _, warning := range report.Warnings {
			fmt.Fprintln(c.App.Writer, "warning:", warning)
		}
		fmt.Fprintf(c.App.Writer, "Checked %d pages\n", len(report.Routes))
		return nil
	},
}

var cleanCommand = &cli.Command{
	Name:  "clean",
	Usage: "Remove the output directory",
	Flags: []cli.Flag{outFlag},
	Action: func(c *cli.Context) error {
		dir := c.String(outFlag.Name)
		err := build.Clean(dir)
		if err != nil {
			return err
		}
		render.Logger(c.Context).InfoContext(c.Context, "cleaned output directory", "out", dir)
		return nil
	},
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "serwer-docs",
		Usage:     "Build the Serwer website",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "one of debug, info, warn, or error",
				Value:   "info",
				EnvVars: []string{"SERWER_DOCS_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			var level slog.Level
			err := level.UnmarshalText([]byte(c.String("log-level")))
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", c.String("log-level"), err)
			}
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
			c.Context = render.LoggingContext(c.Context, logger)
			return nil
		},
		Commands: []*cli.Command{
			buildCommand,
			checkCommand,
			cleanCommand,
		},
	}
}

func runApp(ctx context.Context, args []string) error {
	return newApp(os.Stdout, os.Stderr).RunContext(ctx, args)
}

func main() {
	if err := runApp(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
