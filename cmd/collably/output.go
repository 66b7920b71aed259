package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/query"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func parseOutput(value string) (string, error) {
	switch strings.ToLower(value) {
	case outputTable, "":
		return outputTable, nil
	case outputJSON:
		return outputJSON, nil
	case outputYAML, "yml":
		return outputYAML, nil
	default:
		return "", apierrors.Newf(apierrors.KindValidation, "unknown output format %q (want table, json or yaml)", value)
	}
}

// table is the tabular rendering of a value
type table struct {
	headers []string
	rows    [][]string
}

// printer writes a value as a table, JSON or YAML
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(cmd *cobra.Command, opts *rootOptions) printer {
	format, _ := parseOutput(opts.output)
	return printer{w: cmd.OutOrStdout(), format: format}
}

// print renders value. The table is only built for table output.
func (p printer) print(value any, render func() table) error {
	switch p.format {
	case outputJSON:
		encoder := json.NewEncoder(p.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case outputYAML:
		encoder := yaml.NewEncoder(p.w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return p.table(render())
	}
}

func (p printer) table(t table) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// message prints a one-line confirmation in table mode and {"message": text} otherwise
func (p printer) message(text string) error {
	if p.format == outputTable {
		_, err := fmt.Fprintln(p.w, text)
		return err
	}
	return p.print(map[string]string{"message": text}, nil)
}

// printPage renders one page of a list with a position footer in table mode
func printPage[T any](p printer, page query.Page[T], render func([]T) table) error {
	if p.format != outputTable {
		return p.print(page, nil)
	}
	if page.Total == 0 {
		_, err := fmt.Fprintln(p.w, "No results")
		return err
	}
	if err := p.table(render(page.Items)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.w, "\nShowing %d-%d of %d (page %d of %d)\n", page.From, page.To, page.Total, page.Page, page.TotalPages)
	return err
}

// confirm asks a yes/no question on stdin unless --yes was given
func confirm(cmd *cobra.Command, opts *rootOptions, question string) (bool, error) {
	if opts.yes {
		return true, nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// prompt reads one line from stdin when value is empty
func prompt(cmd *cobra.Command, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", label)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func formatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-1]) + "…"
}
