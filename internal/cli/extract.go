package cli

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/randalmurphal/uritemplate/pkg/uritemplate/observability"
)

// Extract recovers one variable binding from a matched substring.
type Extract struct {
	Absent bool `help:"The variable did not participate in the match."`

	Expression string `arg:"" help:"Expression source, or @name for a catalog entry."`
	Position   int    `arg:"" help:"Zero-based variable position within the expression."`
	Matched    string `arg:"" help:"Substring matched for the variable." optional:""`
}

type extractOutput struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// Run executes the extract command.
func (x *Extract) Run(ctx context.Context, app *App) error {
	expr, err := app.Resolve(x.Expression)
	if err != nil {
		return err
	}

	var matched *string
	if !x.Absent {
		matched = &x.Matched
	}

	bindings, err := expr.ExtractContext(ctx, x.Position, matched)
	if err != nil {
		return err
	}

	observability.EnrichLogger(app.Logger, expr.String(), expr.Operator().String()).
		Debug("extracted", slog.Int("position", x.Position), slog.Int("bindings", len(bindings)))

	out := make([]extractOutput, len(bindings))
	for i, b := range bindings {
		out[i] = extractOutput{Name: b.Name, Kind: b.Value.Kind().String(), Value: b.Value.Any()}
	}

	enc := json.NewEncoder(app.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
