// rbmexport converts a scene of meshes and materials into an RBM model file.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Faultbox/rbm-export/internal/config"
	"github.com/Faultbox/rbm-export/internal/export"
	"github.com/Faultbox/rbm-export/internal/logger"
	"github.com/Faultbox/rbm-export/internal/scene"
	"github.com/Faultbox/rbm-export/pkg/rbm"
)

func main() {
	pflag.Usage = printUsage
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if path := config.SavePath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "slots":
		cmdSlots(args[1:])
	case "help":
		printUsage()
	default:
		os.Exit(cmdExport(cfg, args))
	}
}

func printUsage() {
	fmt.Println(`rbmexport - RBM model exporter

Usage:
  rbmexport [options] <scene.yaml>   Export the scene to an RBM file
  rbmexport slots [VARIANT]          List texture slots of a material variant

Examples:
  rbmexport -o car.rbm scene.yaml
  rbmexport --up-axis z --debug scene.yaml
  rbmexport slots CARPAINTMM

Options:`)
	pflag.PrintDefaults()
}

func cmdSlots(args []string) {
	variants := rbm.Variants
	if len(args) > 0 {
		v, ok := rbm.ParseVariant(strings.ToUpper(args[0]))
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown variant: %s\n", args[0])
			os.Exit(1)
		}
		variants = []rbm.Variant{v}
	}

	for _, v := range variants {
		slots := v.TextureSlots()
		fmt.Printf("%s (%d texture slots)\n", v, len(slots))
		for i, slot := range slots {
			fmt.Printf("  %2d  %s\n", i, slot)
		}
	}
}

func cmdExport(cfg *config.Config, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: rbmexport [options] <scene.yaml>")
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	sc, err := scene.Load(args[0], scene.Options{UpAxis: cfg.Export.UpAxis})
	if err != nil {
		logger.Error("Failed to load scene", zap.Error(err))
		return 1
	}
	logger.Info("Loaded scene",
		zap.String("path", args[0]),
		zap.Int("objects", len(sc.Manifest.Objects)),
		zap.Int("materials", len(sc.Manifest.Materials)))

	exp := export.New(logger.Named("export"), rbm.BuildOptions{
		NormalizeTexturePaths: cfg.Export.NormalizeTexturePaths,
	})
	res, err := exp.Export(sc.Objects(), cfg.Export.Output)
	if err != nil {
		if errors.Is(err, rbm.ErrEmptyBatch) {
			logger.Error("Nothing to export: no object has a supported material",
				zap.String("scene", args[0]))
		} else {
			logger.Error("Export failed", zap.Error(err))
		}
		return 1
	}

	fmt.Printf("Wrote %s: %d objects, %d skipped, %d bytes\n",
		res.Path, len(res.Written), len(res.Skipped), res.Size)
	for _, s := range res.Skipped {
		fmt.Printf("  skipped %s: %v\n", s.Object, s.Reason)
	}
	fmt.Printf("blake3 %s\n", res.Digest)
	return 0
}
