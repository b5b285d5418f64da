package cli

import (
	"context"
	"encoding/json"

	"github.com/randalmurphal/uritemplate/pkg/uritemplate"
)

// Inspect describes an expression.
type Inspect struct {
	Expression string `arg:"" help:"Expression source, or @name for a catalog entry."`
}

type specOutput struct {
	Name      string `json:"name"`
	Explode   bool   `json:"explode,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
}

type inspectOutput struct {
	Source    string       `json:"source"`
	Operator  string       `json:"operator"`
	Level     int          `json:"level"`
	Arity     int          `json:"arity"`
	Expands   bool         `json:"expands"`
	Variables []string     `json:"variables"`
	Specs     []specOutput `json:"specs"`
}

// Run executes the inspect command.
func (i *Inspect) Run(_ context.Context, app *App) error {
	expr, err := app.Resolve(i.Expression)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(app.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(describe(expr))
}

func describe(expr *uritemplate.Expression) inspectOutput {
	specs := expr.Specs()
	out := inspectOutput{
		Source:    expr.String(),
		Operator:  expr.Operator().String(),
		Level:     expr.Level(),
		Arity:     expr.Arity(),
		Expands:   expr.Expands(),
		Variables: expr.Variables(),
		Specs:     make([]specOutput, len(specs)),
	}
	for i, s := range specs {
		out.Specs[i] = specOutput{Name: s.Name, Explode: s.Explode, MaxLength: s.MaxLength}
	}
	return out
}
