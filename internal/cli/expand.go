package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/uritemplate/pkg/uritemplate/config"
	"github.com/randalmurphal/uritemplate/pkg/uritemplate/observability"
)

// Expand renders an expression.
type Expand struct {
	Vars []string `help:"Variable as name=value. Repeating a name builds a list." name:"var" placeholder:"NAME=VALUE" sep:"none" short:"v"`
	File string   `help:"YAML or JSON file of variables." placeholder:"FILE" short:"f" type:"existingfile"`

	Expression string `arg:"" help:"Expression source, or @name for a catalog entry."`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context, app *App) error {
	expr, err := app.Resolve(e.Expression)
	if err != nil {
		return err
	}

	vars, err := e.variables()
	if err != nil {
		return err
	}

	out, err := expr.ExpandContext(ctx, vars)
	if err != nil {
		return err
	}

	observability.EnrichLogger(app.Logger, expr.String(), expr.Operator().String()).
		Debug("expanded", slog.Int("length", len(out)))

	_, err = fmt.Fprintln(app.Out, out)
	return err
}

// variables merges the variables file with -v flags; flags win.
func (e *Expand) variables() (map[string]any, error) {
	vars := map[string]any{}
	if e.File != "" {
		cfg, err := config.FromFile(e.File)
		if err != nil {
			return nil, err
		}
		if vars, err = cfg.Variables(); err != nil {
			return nil, err
		}
	}

	flags, err := parseVars(e.Vars)
	if err != nil {
		return nil, err
	}
	for k, v := range flags {
		vars[k] = v
	}
	return vars, nil
}

// parseVars turns name=value pairs into scalars, or lists when a name
// repeats.
func parseVars(pairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q: want name=value", p)
		}
		switch prev := vars[name].(type) {
		case nil:
			vars[name] = value
		case string:
			vars[name] = []string{prev, value}
		case []string:
			vars[name] = append(prev, value)
		}
	}
	return vars, nil
}
