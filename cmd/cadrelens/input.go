package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spektr-org/cadrelens/category"
	"github.com/spektr-org/cadrelens/engine"
	"github.com/spektr-org/cadrelens/helpers"
	"github.com/spektr-org/cadrelens/schema"
	"github.com/spektr-org/cadrelens/source"
)

// inputFlags select where a dataset comes from. Exactly one of file, url or
// (base URL + indicator) must resolve.
type inputFlags struct {
	file      string
	url       string
	indicator string
}

func (in *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.file, "file", "f", "", "read the dataset from a JSON or CSV file")
	cmd.Flags().StringVar(&in.url, "url", "", "fetch the dataset from a URL")
	cmd.Flags().StringVarP(&in.indicator, "indicator", "i", "", "indicator name ("+strings.Join(schema.Indicators(), ", ")+")")
}

// loaded is a parsed dataset plus the schema that read it.
type loaded struct {
	Dataset *engine.Dataset
	Schema  schema.Config
	Table   category.Map
}

func newFetcher() *source.Fetcher {
	return source.New(source.Config{
		BaseURL: viper.GetString("source.base_url"),
		Timeout: viper.GetDuration("source.timeout"),
	}, slog.Default())
}

func loadInput(ctx context.Context, in inputFlags) (*loaded, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case in.file != "":
		data, err = os.ReadFile(in.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	case in.url != "":
		data, err = newFetcher().FetchURL(ctx, in.url)
		if err != nil {
			return nil, err
		}
	case in.indicator != "" && viper.GetString("source.base_url") != "":
		data, err = newFetcher().Fetch(ctx, in.indicator)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("one of --file, --url or --indicator with --base-url is required")
	}

	if strings.EqualFold(filepath.Ext(in.file), ".csv") {
		return loadCSV(data, in.indicator)
	}
	return loadJSON(data, in.indicator)
}

func loadJSON(data []byte, indicator string) (*loaded, error) {
	sch, err := resolveSchema(data, indicator)
	if err != nil {
		return nil, err
	}

	ds, err := helpers.ParseDataset(data, sch)
	if err != nil {
		// The dataset is empty but usable; the view still renders.
		slog.Warn("Dataset could not be read", "indicator", sch.Indicator, "error", err)
	}
	slog.Debug("Parsed dataset", "indicator", ds.Indicator, "periods", len(ds.Periods), "records", ds.Len())

	return withTable(ds, sch)
}

func loadCSV(data []byte, indicator string) (*loaded, error) {
	if indicator == "" {
		return nil, errors.New("--indicator is required for CSV input")
	}
	sch, err := schema.Builtin(indicator)
	if err != nil {
		return nil, err
	}
	ds, err := helpers.ParseCSV(data, sch)
	if err != nil {
		return nil, err
	}
	return withTable(ds, sch)
}

// resolveSchema prefers the built-in schema for the indicator (flag or
// payload), and falls back to discovery for unknown indicators.
func resolveSchema(data []byte, indicator string) (schema.Config, error) {
	if indicator != "" {
		if sch, err := schema.Builtin(indicator); err == nil {
			return sch, nil
		}
	}

	discovered, err := schema.DiscoverFromJSON(data, schema.DiscoverOptions{SampleSize: 200, Indicator: indicator})
	if err != nil {
		if indicator != "" {
			return schema.Config{}, fmt.Errorf("%w: %q (discovery failed: %v)", schema.ErrUnknownIndicator, indicator, err)
		}
		// Let ingestion report the malformed payload.
		return schema.Config{Indicator: "dataset", LabelFields: []string{"Cadre"}, CategoryTable: "cadres"}, nil
	}
	if sch, err := schema.Builtin(discovered.Indicator); err == nil {
		return sch, nil
	}
	slog.Info("Using discovered schema",
		"indicator", discovered.Indicator,
		"label", discovered.LabelFields,
		"total", discovered.TotalField,
		"outcome", discovered.OutcomeField)
	return *discovered, nil
}

func withTable(ds *engine.Dataset, sch schema.Config) (*loaded, error) {
	table, err := categoryTable(sch)
	if err != nil {
		return nil, err
	}
	return &loaded{Dataset: ds, Schema: sch, Table: table}, nil
}

// categoryTable returns the YAML override from categories.file, or the
// schema's table.
func categoryTable(sch schema.Config) (category.Map, error) {
	path := viper.GetString("categories.file")
	if path == "" {
		return sch.Table(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category table: %w", err)
	}
	table, err := category.LoadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load category table %s: %w", path, err)
	}
	return table, nil
}

func engineOptions(l *loaded) []engine.Option {
	opts := []engine.Option{
		engine.WithCategoryMap(l.Table),
		engine.WithLogger(slog.Default()),
	}
	if len(l.Schema.PassOutcomes) > 0 {
		opts = append(opts, engine.WithPassOutcomes(l.Schema.PassOutcomes...))
	}
	return opts
}
