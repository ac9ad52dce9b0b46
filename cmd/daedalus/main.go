package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/internal/tracing"
	"github.com/wehubfusion/Daedalus/pkg/engine"
	"github.com/wehubfusion/Daedalus/pkg/generator"
	"github.com/wehubfusion/Daedalus/pkg/spec"
)

var (
	specPath   string
	iterations int
	outputPath string
	format     string
	strict     bool
	trace      bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "daedalus",
	Short: "Daedalus - declarative synthetic data generation",
	Long: `Daedalus generates synthetic records from a declarative field spec.

A spec maps field names to value generators: literal values, weighted
choices, ranges, dates, CSV columns, combinations and calculated fields.
Specs may use shorthand notation such as age:rand_int_range?min=1&max=90.

Examples:
  daedalus --spec spec.json -n 100                # 100 records to stdout
  daedalus --spec spec.yaml -n 1000 -o out.ndjson # newline-delimited JSON`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&specPath, "spec", "s", "", "path to the data spec (JSON or YAML)")
	rootCmd.Flags().IntVarP(&iterations, "iterations", "n", 10, "number of records to generate")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "ndjson", "output format: json or ndjson")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "validate field specs against type schemas")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "emit OpenTelemetry spans for the session")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.MarkFlagRequired("spec")
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx := cmd.Context()
	if trace {
		shutdown, err := tracing.Setup(ctx, tracing.DefaultConfig("daedalus"), logger)
		if err != nil {
			logger.Warn("Failed to setup tracing, continuing without tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(shutdown, logger)
		}
	}

	raw, err := loadSpec(specPath)
	if err != nil {
		return err
	}

	gen, err := engine.NewGenerator(raw, engine.Options{
		Logger:           logger,
		StrictValidation: strict,
		Tracing:          trace,
	})
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("unable to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	return writeRecords(ctx, gen, out)
}

func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}

func loadSpec(path string) (spec.RawSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read spec: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return spec.FromYAML(data)
	default:
		return spec.FromJSON(data)
	}
}

func writeRecords(ctx context.Context, gen *generator.Generator, out *os.File) error {
	encoder := json.NewEncoder(out)

	switch format {
	case "ndjson":
		return gen.Stream(ctx, iterations, func(_ int, record generator.Record) error {
			return encoder.Encode(record)
		})
	case "json":
		records, err := gen.Records(ctx, iterations)
		if err != nil {
			return err
		}
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	default:
		return fmt.Errorf("unknown format %q: expected json or ndjson", format)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
