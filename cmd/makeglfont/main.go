// Command makeglfont bakes a font into a signed distance field atlas.
//
// Usage:
//
//	makeglfont [-v] [-config file.yml] <font-file> <atlas-size>
//
// The atlas is written to <font-name>.png in the working directory, and the
// glyph metrics, texture coordinates and kerning to <font-name>.json.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/gogpu/glfont"
)

func main() {
	var (
		verbose    = flag.Bool("v", false, "log per-glyph detail")
		configPath = flag.String("config", "", "YAML file overriding the default configuration")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	glfont.SetLogger(logger)

	if err := run(flag.Arg(0), flag.Arg(1), *configPath, logger); err != nil {
		logger.Error("makeglfont failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] [-config file.yml] <font-file> <atlas-size>\n", os.Args[0])
	flag.PrintDefaults()
}

func run(fontPath, sizeArg, configPath string, logger *slog.Logger) error {
	atlasSize, err := strconv.Atoi(sizeArg)
	if err != nil {
		return fmt.Errorf("atlas size %q: %w", sizeArg, err)
	}

	cfg := glfont.DefaultConfig()
	if configPath != "" {
		if cfg, err = glfont.LoadConfig(configPath); err != nil {
			return err
		}
	}

	e, err := glfont.OpenFont(fontPath)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()
	logger.Info("loaded font", "path", fontPath, "family", e.Name(), "glyphs", e.NumGlyphs())

	name := glfont.FontName(fontPath)
	res, err := glfont.Generate(context.Background(), e, name, atlasSize, cfg)
	if err != nil {
		return err
	}

	// Write failures are reported but do not fail the run.
	pngPath, jsonPath := name+".png", name+".json"
	if err := glfont.WritePNG(pngPath, res.Atlas); err != nil {
		logger.Error("could not write atlas", "path", pngPath, "err", err)
	} else {
		logger.Info("wrote atlas", "path", pngPath)
	}
	if err := glfont.WriteJSON(jsonPath, glfont.NewRecord(res, cfg.EmitKerningThreshold)); err != nil {
		logger.Error("could not write record", "path", jsonPath, "err", err)
	} else {
		logger.Info("wrote record", "path", jsonPath)
	}
	return nil
}
