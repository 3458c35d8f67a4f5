package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spektr-org/cadrelens/engine"
	"github.com/spektr-org/cadrelens/helpers"
	"github.com/spektr-org/cadrelens/schema"
)

// indicatorOptions is the filter menu for one indicator.
type indicatorOptions struct {
	Indicator string                  `json:"indicator"`
	Records   int                     `json:"records"`
	Options   engine.AvailableOptions `json:"options"`
}

func optionsCmd() *cobra.Command {
	var (
		in         inputFlags
		indicators []string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the filter values a dataset offers",
		Long: `List periods, categories and sub-categories for one dataset, or for several
indicators fetched concurrently from the data source.`,
		Example: `  cadrelens options -f registrations.json
  cadrelens options --base-url https://api.example.org --indicators registrations,exam_results`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out []indicatorOptions
			var err error
			if len(indicators) > 0 {
				out, err = fetchOptions(cmd, indicators)
			} else {
				var one *indicatorOptions
				one, err = localOptions(cmd, in)
				if one != nil {
					out = append(out, *one)
				}
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out, format)
		},
	}

	in.register(cmd)
	cmd.Flags().StringSliceVar(&indicators, "indicators", nil, "fetch these indicators concurrently from --base-url")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format: json, pretty")
	return cmd
}

func localOptions(cmd *cobra.Command, in inputFlags) (*indicatorOptions, error) {
	l, err := loadInput(cmd.Context(), in)
	if err != nil {
		return nil, err
	}
	result := engine.Process(l.Dataset, engine.NewSelection(), engineOptions(l)...)
	return &indicatorOptions{Indicator: result.Indicator, Records: l.Dataset.Len(), Options: result.Options}, nil
}

// fetchOptions fetches every indicator concurrently and waits for all of them
// before computing any options.
func fetchOptions(cmd *cobra.Command, indicators []string) ([]indicatorOptions, error) {
	if viper.GetString("source.base_url") == "" {
		return nil, errors.New("--indicators requires --base-url (or source.base_url in config)")
	}

	payloads, err := newFetcher().FetchAll(cmd.Context(), indicators)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	out := make([]indicatorOptions, 0, len(indicators))
	for _, ind := range indicators {
		sch, err := schema.Builtin(ind)
		if err != nil {
			sch, err = resolveSchema(payloads[ind], ind)
			if err != nil {
				return nil, err
			}
		}
		ds, err := helpers.ParseDataset(payloads[ind], sch)
		if err != nil {
			slog.Warn("Dataset could not be read", "indicator", ind, "error", err)
		}
		l, err := withTable(ds, sch)
		if err != nil {
			return nil, err
		}
		result := engine.Process(l.Dataset, engine.NewSelection(), engineOptions(l)...)
		out = append(out, indicatorOptions{Indicator: ind, Records: ds.Len(), Options: result.Options})
	}
	return out, nil
}
