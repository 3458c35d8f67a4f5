package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spektr-org/cadrelens/engine"
	"github.com/spektr-org/cadrelens/render"
)

type processFlags struct {
	input       inputFlags
	period      string
	category    string
	subCategory string
	search      string
	lastN       int
	fromYear    int
	format      string
	out         string
	stacked     bool
	title       string
}

func processCmd() *cobra.Command {
	var f processFlags

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Filter, group and summarize a dataset",
		Long: `Process a dataset under a filter selection.

The grouping axis follows the bound filters: nothing bound groups by period,
a period groups by category, a period and a category group by cadre.`,
		Example: `  cadrelens process -f registrations.json --period 2023
  cadrelens process -i exam_results --base-url https://api.example.org --format text
  cadrelens process -f exam.json --last 3 --format xlsx --out exam.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProcess(cmd, f)
		},
	}

	f.input.register(cmd)
	cmd.Flags().StringVar(&f.period, "period", engine.All, "period filter")
	cmd.Flags().StringVar(&f.category, "category", engine.All, "category filter")
	cmd.Flags().StringVar(&f.subCategory, "sub-category", engine.All, "cadre / centre filter (exact label)")
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive label search")
	cmd.Flags().IntVar(&f.lastN, "last", 0, "keep only the last N years")
	cmd.Flags().IntVar(&f.fromYear, "from", 0, "keep only years from this one on")
	cmd.Flags().StringVar(&f.format, "format", "json", "output format: json, pretty, text, csv, chart-csv, xlsx")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&f.stacked, "stacked", false, "split chart series by outcome when available")
	cmd.Flags().StringVar(&f.title, "title", "", "chart title")
	cmd.Flags().Int("label-budget", render.DefaultLabelBudget, "max chart label length")
	cmd.Flags().String("chart-type", "bar", "chart type hint (bar, line, pie, doughnut)")

	_ = viper.BindPFlag("chart.label_budget", cmd.Flags().Lookup("label-budget"))
	_ = viper.BindPFlag("chart.type", cmd.Flags().Lookup("chart-type"))

	return cmd
}

// selectionFromFlags replays the flag values as filter events.
func selectionFromFlags(f processFlags) engine.Selection {
	return engine.Replay(
		engine.Change{Dimension: engine.DimPeriod, Value: f.period},
		engine.Change{Dimension: engine.DimCategory, Value: f.category},
		engine.Change{Dimension: engine.DimSubCategory, Value: f.subCategory},
		engine.Change{Dimension: engine.DimSearch, Value: f.search},
		engine.ChangeRange{Range: engine.PeriodRange{LastN: f.lastN, FromYear: f.fromYear}},
	)
}

func styleHints(f processFlags) render.StyleHints {
	hints := render.DefaultStyleHints()
	hints.ChartType = viper.GetString("chart.type")
	hints.LabelBudget = viper.GetInt("chart.label_budget")
	hints.Stacked = f.stacked
	hints.Title = f.title
	return hints
}

func runProcess(cmd *cobra.Command, f processFlags) error {
	if !validFormat(f.format) {
		return fmt.Errorf("unknown format %q", f.format)
	}

	in, err := loadInput(cmd.Context(), f.input)
	if err != nil {
		return err
	}

	sel := selectionFromFlags(f)
	result := engine.Process(in.Dataset, sel, engineOptions(in)...)
	slog.Info("Processed dataset",
		"indicator", result.Indicator,
		"filtered", len(result.Filtered),
		"group_by", string(result.GroupBy),
		"total", result.Summary.GrandTotal)

	out := buildOutput(result, in.Schema, styleHints(f))

	w, closeFn, err := openOutput(cmd, f.out)
	if err != nil {
		return err
	}
	defer closeFn()

	return writeOutput(w, f.format, out)
}
