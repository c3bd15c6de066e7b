package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/gretago/internal/builder"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/diagram"
	"github.com/specialistvlad/gretago/internal/model"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

var (
	ErrInvalidAssignment = errors.New("assignment must have the form name=value")
	ErrUnknownName       = errors.New("no node with this name")
)

// Build builds and lowers the model described by the loaded files.
func (a *App) Build(ctx context.Context) (*model.Model, error) {
	ctx = a.context(ctx)
	seeds, err := a.seeds()
	if err != nil {
		return nil, err
	}
	return model.Build(ctx, a.registry, a.session, a.options, seeds...)
}

// Summary builds the model and writes its summary as text or YAML.
func (a *App) Summary(ctx context.Context, format string) error {
	m, err := a.Build(ctx)
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		out, err := m.YAML()
		if err != nil {
			return err
		}
		_, err = a.outW.Write(out)
		return err
	case "", "text":
		fmt.Fprintln(a.outW, m.String())
		for i, members := range m.Summary().Members {
			fmt.Fprintf(a.outW, "component %d: %s\n", i, strings.Join(members, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Graph builds the model and writes its diagram in DOT format.
func (a *App) Graph(ctx context.Context) error {
	m, err := a.Build(ctx)
	if err != nil {
		return err
	}
	dot, err := diagram.DOT(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.outW, dot)
	return err
}

// Check reports every structural violation of the model at once, then
// lowers it to catch engine rejections.
func (a *App) Check(ctx context.Context) error {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)

	seeds, err := a.seeds()
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		seeds = a.registry.NonData()
	}
	if len(seeds) == 0 {
		return builder.ErrEmptySeeds
	}

	g, err := builder.Analyze(ctx, a.registry, seeds)
	if err != nil {
		return err
	}
	if err := builder.CheckAll(g.Roles, g.Components); err != nil {
		logger.Debug("Model has structural violations.", "error", err)
		return err
	}

	m, err := a.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "ok: %s\n", m)
	return nil
}

// Eval builds the model, evaluates it with the given `name=value`
// assignments to variables and writes every named value in plan order.
// Values are HCL expressions such as `1.5` or `[1, 2]`.
func (a *App) Eval(ctx context.Context, assignments []string) error {
	ctx = a.context(ctx)

	values := make(map[nodeid.ID]cty.Value, len(assignments))
	for _, raw := range assignments {
		id, v, err := a.assignment(raw)
		if err != nil {
			return err
		}
		values[id] = v
	}

	m, err := a.Build(ctx)
	if err != nil {
		return err
	}
	out, err := m.Executable().Evaluate(ctx, values)
	if err != nil {
		return err
	}

	tracked := m.Targets()
	for _, step := range m.Plan().Steps {
		v, ok := out[step.ID]
		if !ok || step.Name == "" {
			continue
		}
		if len(a.def.Settings.Track) > 0 && !slices.Contains(tracked, step.ID) {
			continue
		}
		line := fmt.Sprintf("%s = %s\n", step.Name, hclwrite.TokensForValue(v).Bytes())
		if _, err := a.outW.Write(hclwrite.Format([]byte(line))); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) assignment(raw string) (nodeid.ID, cty.Value, error) {
	name, expr, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return nodeid.ID{}, cty.NilVal, fmt.Errorf("%w: %q", ErrInvalidAssignment, raw)
	}

	n, found := a.registry.Lookup(name)
	if !found {
		return nodeid.ID{}, cty.NilVal, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	if n.Role() != node.Variable {
		return nodeid.ID{}, cty.NilVal, fmt.Errorf("%w: %q is %s, only variables can be assigned", ErrInvalidAssignment, name, n.Role())
	}

	parsed, diags := hclsyntax.ParseExpression([]byte(expr), "--set "+name, hcl.InitialPos)
	if diags.HasErrors() {
		return nodeid.ID{}, cty.NilVal, fmt.Errorf("value of %s: %w", name, diags)
	}
	v, diags := parsed.Value(nil)
	if diags.HasErrors() {
		return nodeid.ID{}, cty.NilVal, fmt.Errorf("value of %s: %w", name, diags)
	}
	return n.ID(), v, nil
}
