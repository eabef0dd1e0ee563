package main

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/natefinch/atomic"

	"github.com/halcyonic/seam/pkg/engine"
)

var cli struct {
	Input  string `arg:"" help:"Template file to expand."`
	Output string `arg:"" help:"File the concatenated output is written to."`
	Config string `help:"Path to a JSON config file." default:"./seam.json" type:"path"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("seam"),
		kong.Description("Expands a seam template into an output file."),
		kong.UsageOnError(),
	)

	config, err := loadConfig(cli.Config)
	kctx.FatalIfErrorf(err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.slogLevel()}))

	var buf bytes.Buffer
	ctx := engine.NewContext().Set("write", func(s string) {
		buf.WriteString(s)
	})

	eng := engine.New(logger)
	err = eng.RunSync(cli.Input, ctx, engine.WithDelimiters(config.StartDelim, config.EndDelim))
	if err != nil {
		logger.Error("template run failed", "input", cli.Input, "error", err)
		os.Exit(1)
	}

	if err = atomic.WriteFile(cli.Output, &buf); err != nil {
		logger.Error("failed to write output", "output", cli.Output, "error", err)
		os.Exit(1)
	}
	logger.Info("template expanded", "input", cli.Input, "output", cli.Output, "bytes", buf.Len())
}
