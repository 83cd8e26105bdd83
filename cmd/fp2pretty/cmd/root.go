// Package cmd wires the fp2pretty command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/freepcb2pretty/pkg/freepcb"
	"github.com/OpenTraceLab/freepcb2pretty/pkg/kicad"
)

var (
	verbose bool

	threeDMap        string
	roundedPads      bool
	roundedExcept1   bool
	padExceptions    string
	centerExceptions string
	stripLMN         bool
	courtyard        float64
	hashTime         bool
)

var rootCmd = &cobra.Command{
	Use:   "fp2pretty DIR [FILE...]",
	Short: "Convert FreePCB libraries to a KiCad pretty library",
	Long: `fp2pretty reads FreePCB library files and converts them to KiCad
footprint format, writing one .kicad_mod file per footprint into the output
directory. Multiple input files are merged; duplicate footprint names are an
error. With no input files the output directory is left untouched.`,
	Version: "1.0.0",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runConvert,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVar(&threeDMap, "3dmap", "",
		"file mapping footprints to 3D models")
	rootCmd.Flags().BoolVar(&roundedPads, "rounded-pads", false,
		"round all corners of square pads")
	rootCmd.Flags().BoolVar(&roundedExcept1, "rounded-except-1", false,
		"round all corners of square pads, except pad 1")
	rootCmd.Flags().StringVar(&padExceptions, "rounded-pad-exceptions", "",
		"exception list for rounded pads, one regex per line")
	rootCmd.Flags().StringVar(&centerExceptions, "rounded-center-exceptions", "",
		"exception list for rounded center pads")
	rootCmd.Flags().BoolVar(&stripLMN, "strip-lmn", false,
		"strip final L/M/N specifiers from footprint names")
	rootCmd.Flags().Float64Var(&courtyard, "add-courtyard", 0,
		"add a courtyard a fixed number of mm outside the bounding box")
	rootCmd.Flags().BoolVar(&hashTime, "hash-time", false,
		"set a reproducible edit time derived from a content hash")

	rootCmd.MarkFlagsMutuallyExclusive("rounded-pads", "rounded-except-1")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := newLogger()
	outDir := args[0]
	inputs := args[1:]

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	library := &freepcb.Library{}
	for _, path := range inputs {
		log.Info("loading FreePCB library", "file", path)
		sub, err := freepcb.LoadLibrary(path)
		if err != nil {
			return err
		}
		if err := library.Merge(sub); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	log.Debug("libraries merged", "footprints", len(library.Modules))

	// Post-processing order matters: courtyards depend on all other graphics
	// being present, and hashed timestamps observe the finished content.
	if stripLMN {
		library.StripSuffixes()
	}
	if threeDMap != "" {
		if err := freepcb.LoadThreeDMap(threeDMap, library); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("add-courtyard") {
		for _, m := range library.Modules {
			if err := m.AddCourtyard(courtyard); err != nil {
				return err
			}
		}
	}
	if hashTime {
		for _, m := range library.Modules {
			t, err := kicad.HashEditTime(m, opts)
			if err != nil {
				return err
			}
			m.EditTime = int64(t)
		}
	}

	log.Info("generating KiCad library", "dir", outDir)
	for _, m := range library.Modules {
		log.Debug("writing footprint", "name", m.Name, "file", kicad.FileName(m.Name))
	}
	return kicad.WriteLibrary(outDir, library, opts)
}

func buildOptions() (kicad.Options, error) {
	var opts kicad.Options

	switch {
	case roundedPads:
		opts.Rounding.Mode = kicad.RoundAll
	case roundedExcept1:
		opts.Rounding.Mode = kicad.RoundAllButPin1
	default:
		opts.Rounding.Mode = kicad.RoundNone
	}

	var err error
	if padExceptions != "" {
		if opts.Rounding.PadExceptions, err = kicad.LoadExceptions(padExceptions); err != nil {
			return opts, err
		}
	}
	if centerExceptions != "" {
		if opts.Rounding.CenterExceptions, err = kicad.LoadExceptions(centerExceptions); err != nil {
			return opts, err
		}
	}
	return opts, nil
}
