package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translator accumulates the blocks of every file into one Definition.
type translator struct {
	evalCtx   *hcl.EvalContext
	functions map[string]struct{}
	def       *config.Definition
	seen      map[nodeid.Ref]hcl.Range
	model     *hcl.Range
}

func (l *Loader) translate(ctx context.Context, files []*hcl.File) (*config.Definition, error) {
	logger := ctxlog.FromContext(ctx)
	t := &translator{
		evalCtx:   l.evalCtx,
		functions: make(map[string]struct{}, len(l.evalCtx.Functions)),
		def:       config.NewDefinition(),
		seen:      make(map[nodeid.Ref]hcl.Range),
	}
	for name := range l.evalCtx.Functions {
		t.functions[name] = struct{}{}
	}

	var diags hcl.Diagnostics
	for _, file := range files {
		content, contentDiags := file.Body.Content(rootSchema)
		diags = append(diags, contentDiags...)
		for _, block := range content.Blocks {
			diags = append(diags, t.block(block)...)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	logger.Debug("HCL loading complete.",
		"data", len(t.def.Data),
		"variables", len(t.def.Variables),
		"operations", len(t.def.Operations),
		"distributions", len(t.def.Distributions),
	)
	return t.def, nil
}

func (t *translator) block(block *hcl.Block) hcl.Diagnostics {
	if block.Type == "model" {
		return t.modelBlock(block)
	}

	diags := t.declare(block)
	if diags.HasErrors() {
		return diags
	}
	name := block.Labels[0]

	switch block.Type {
	case "data":
		var body dataBody
		if diags := gohcl.DecodeBody(block.Body, t.evalCtx, &body); diags.HasErrors() {
			return diags
		}
		value, diags := t.constant(body.Value)
		if diags.HasErrors() {
			return diags
		}
		t.def.Data = append(t.def.Data, &config.Data{Name: name, Value: value, DeclRange: block.DefRange})

	case "variable":
		var body variableBody
		if diags := gohcl.DecodeBody(block.Body, t.evalCtx, &body); diags.HasErrors() {
			return diags
		}
		t.def.Variables = append(t.def.Variables, &config.Variable{
			Name:      name,
			Lower:     body.Lower,
			Upper:     body.Upper,
			DeclRange: block.DefRange,
		})

	case "operation":
		var body operationBody
		if diags := gohcl.DecodeBody(block.Body, t.evalCtx, &body); diags.HasErrors() {
			return diags
		}
		operands, diags := t.operands(body.Operands)
		if diags.HasErrors() {
			return diags
		}
		t.def.Operations = append(t.def.Operations, &config.Operation{
			Name:      name,
			Op:        body.Op,
			Operands:  operands,
			DeclRange: block.DefRange,
		})

	case "distribution":
		var body distributionBody
		if diags := gohcl.DecodeBody(block.Body, t.evalCtx, &body); diags.HasErrors() {
			return diags
		}
		target, diags := reference(body.Target)
		if diags.HasErrors() {
			return diags
		}
		params, diags := t.params(body.Params)
		if diags.HasErrors() {
			return diags
		}
		t.def.Distributions = append(t.def.Distributions, &config.Distribution{
			Name:      name,
			Family:    body.Family,
			Target:    target,
			Params:    params,
			DeclRange: block.DefRange,
		})
	}
	return nil
}

// declare records a labelled block, rejecting invalid names and duplicates
// across all files.
func (t *translator) declare(block *hcl.Block) hcl.Diagnostics {
	ref, err := nodeid.ParseRef(block.Type + "." + block.Labels[0])
	if err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid block name",
			Detail:   err.Error(),
			Subject:  block.LabelRanges[0].Ptr(),
		}}
	}
	if prev, ok := t.seen[ref]; ok {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Duplicate %s block", block.Type),
			Detail:   fmt.Sprintf("%s was already declared at %s.", ref, prev),
			Subject:  block.DefRange.Ptr(),
		}}
	}
	t.seen[ref] = block.DefRange
	return nil
}

func (t *translator) modelBlock(block *hcl.Block) hcl.Diagnostics {
	if t.model != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Duplicate model block",
			Detail:   fmt.Sprintf("Only one model block is allowed; the first one is at %s.", t.model),
			Subject:  block.DefRange.Ptr(),
		}}
	}
	t.model = block.DefRange.Ptr()

	var body modelBody
	if diags := gohcl.DecodeBody(block.Body, t.evalCtx, &body); diags.HasErrors() {
		return diags
	}
	settings := &config.Settings{
		Precision: body.Precision,
		Cores:     body.Cores,
		Compile:   body.Compile,
	}

	if !absent(body.Track) {
		exprs, diags := hcl.ExprList(body.Track)
		if diags.HasErrors() {
			return diags
		}
		for _, expr := range exprs {
			ref, diags := reference(expr)
			if diags.HasErrors() {
				return diags
			}
			settings.Track = append(settings.Track, ref)
		}
	}

	t.def.Settings = settings
	return nil
}

func (t *translator) operands(expr hcl.Expression) ([]config.Operand, hcl.Diagnostics) {
	exprs, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, diags
	}
	operands := make([]config.Operand, 0, len(exprs))
	for _, e := range exprs {
		op, diags := t.operand(e)
		if diags.HasErrors() {
			return nil, diags
		}
		operands = append(operands, op)
	}
	return operands, nil
}

func (t *translator) params(expr hcl.Expression) (map[string]config.Operand, hcl.Diagnostics) {
	if absent(expr) {
		return nil, nil
	}
	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return nil, diags
	}

	params := make(map[string]config.Operand, len(pairs))
	for _, pair := range pairs {
		name := hcl.ExprAsKeyword(pair.Key)
		if name == "" {
			key, diags := pair.Key.Value(nil)
			if diags.HasErrors() || !key.Type().Equals(cty.String) || !key.IsKnown() || key.IsNull() {
				return nil, hcl.Diagnostics{{
					Severity: hcl.DiagError,
					Summary:  "Invalid parameter name",
					Detail:   "Parameter names must be identifiers or strings.",
					Subject:  pair.Key.Range().Ptr(),
				}}
			}
			name = key.AsString()
		}
		if _, dup := params[name]; dup {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Duplicate parameter",
				Detail:   fmt.Sprintf("Parameter %q is set more than once.", name),
				Subject:  pair.Key.Range().Ptr(),
			}}
		}

		op, diags := t.operand(pair.Value)
		if diags.HasErrors() {
			return nil, diags
		}
		params[name] = op
	}
	return params, nil
}

// operand treats a bare traversal as a reference and anything else as a
// numeric constant.
func (t *translator) operand(expr hcl.Expression) (config.Operand, hcl.Diagnostics) {
	if _, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		ref, diags := reference(expr)
		if diags.HasErrors() {
			return config.Operand{}, diags
		}
		return config.RefOperand(ref), nil
	}

	value, diags := t.constant(expr)
	if diags.HasErrors() {
		return config.Operand{}, diags
	}
	return config.ConstOperand(value), nil
}

// constant evaluates expr into a number or a list of numbers.
func (t *translator) constant(expr hcl.Expression) (cty.Value, hcl.Diagnostics) {
	if diags := checkConstant(expr, t.functions); diags.HasErrors() {
		return cty.NilVal, diags
	}
	value, diags := expr.Value(t.evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}

	invalid := func(detail string) hcl.Diagnostics {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid constant",
			Detail:   detail,
			Subject:  expr.Range().Ptr(),
		}}
	}
	if value.IsNull() || !value.IsWhollyKnown() {
		return cty.NilVal, invalid("A known, non-null value is required.")
	}

	want := cty.List(cty.Number)
	if value.Type().IsPrimitiveType() {
		want = cty.Number
	}
	converted, err := convert.Convert(value, want)
	if err != nil {
		return cty.NilVal, invalid(fmt.Sprintf("A number or a list of numbers is required: %s.", err))
	}
	return converted, nil
}

// reference turns a `kind.name` traversal into a Ref.
func reference(expr hcl.Expression) (nodeid.Ref, hcl.Diagnostics) {
	invalid := func(detail string) hcl.Diagnostics {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid reference",
			Detail:   detail,
			Subject:  expr.Range().Ptr(),
		}}
	}

	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() {
		return nodeid.Ref{}, invalid("A reference to a declared block is required, such as variable.mu.")
	}
	ref, err := nodeid.ParseRef(traversalKey(traversal))
	if err != nil {
		return nodeid.Ref{}, invalid(err.Error())
	}
	return ref, nil
}

// absent reports whether an optional expression attribute was left out.
// gohcl substitutes a static null for missing expressions.
func absent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if len(expr.Variables()) > 0 {
		return false
	}
	value, diags := expr.Value(nil)
	return !diags.HasErrors() && value.IsNull()
}
