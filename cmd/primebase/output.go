package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/JoshOrndorff/PrimeBase/primebase"
)

// report is the rendering of one Number. Value is empty when the magnitude
// exceeds the configured limits; the hereditary form is always present.
type report struct {
	Input         string   `json:"input" yaml:"input"`
	Value         string   `json:"value,omitempty" yaml:"value,omitempty"`
	Factorization []string `json:"factorization" yaml:"factorization"`
	Hereditary    string   `json:"hereditary" yaml:"hereditary"`
}

func newReport(input string, n *primebase.Number) (report, error) {
	r := report{Input: input, Factorization: []string{}}

	h, err := n.Hereditary()
	if err != nil {
		return report{}, err
	}
	r.Hereditary = h

	m, err := n.Magnitude()
	switch {
	case err == nil:
		r.Value = m.String()
	case !errors.Is(err, primebase.ErrTooLarge):
		return report{}, err
	}

	exps, err := n.Exponents()
	if err != nil {
		return report{}, err
	}
	for _, e := range exps {
		if em, err := e.Magnitude(); err == nil {
			r.Factorization = append(r.Factorization, em.String())
			continue
		}
		eh, err := e.Hereditary()
		if err != nil {
			return report{}, err
		}
		r.Factorization = append(r.Factorization, eh)
	}
	return r, nil
}

func (r report) text() string {
	value := r.Value
	if value == "" {
		value = "(too large)"
	}
	return fmt.Sprintf("%s: Value: %s, Factorization: [%s]", r.Input, value, strings.Join(r.Factorization, ", "))
}

func (a *app) renderNumber(cmd *cobra.Command, input string, n *primebase.Number) error {
	r, err := newReport(input, n)
	if err != nil {
		return err
	}
	return a.render(cmd, r)
}

type texter interface {
	text() string
}

// render writes v in the configured output format. In text format v must
// be a texter or a slice of reports.
func (a *app) render(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()
	switch a.settings.Output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	switch t := v.(type) {
	case texter:
		_, err := fmt.Fprintln(out, t.text())
		return err
	case []report:
		for _, r := range t {
			if _, err := fmt.Fprintln(out, r.text()); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("cannot render %T as text", v)
}
