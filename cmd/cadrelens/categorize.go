package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/cadrelens/category"
	"github.com/spektr-org/cadrelens/schema"
)

func categorizeCmd() *cobra.Command {
	var (
		tableName string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "categorize [label...]",
		Short: "Map raw labels to their coarse category",
		Example: `  cadrelens categorize "KENYA REGISTERED COMMUNITY HEALTH NURSE"
  cadrelens categorize --table centers "KMTC NAIROBI"
  cut -d, -f2 cadres.csv | cadrelens categorize --stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := category.Lookup(tableName); !ok {
				return fmt.Errorf("unknown category table %q", tableName)
			}
			table, err := categoryTable(schema.Config{CategoryTable: tableName})
			if err != nil {
				return err
			}

			labels := args
			if fromStdin {
				read, err := readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
				labels = append(labels, read...)
			}
			if len(labels) == 0 {
				return fmt.Errorf("no labels given")
			}

			w := cmd.OutOrStdout()
			for _, label := range labels {
				fmt.Fprintf(w, "%s\t%s\n", category.Clean(label), category.Categorize(label, table))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tableName, "table", "t", "cadres", "category table (cadres, centers)")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "also read labels from stdin, one per line")
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	return lines, nil
}
