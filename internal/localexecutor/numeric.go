package localexecutor

import (
	"fmt"

	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/executor"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// round maps every number of v onto the float width of the precision.
func round(v cty.Value, p config.Precision) (cty.Value, error) {
	if v.Type().IsListType() {
		if v.LengthInt() == 0 {
			return v, nil
		}
		out := make([]cty.Value, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			r, err := round(el, p)
			if err != nil {
				return cty.NilVal, err
			}
			out = append(out, r)
		}
		return cty.ListVal(out), nil
	}

	var f float64
	if err := gocty.FromCtyValue(v, &f); err != nil {
		return cty.NilVal, err
	}
	if p == config.PrecisionSingle {
		return cty.NumberFloatVal(float64(float32(f))), nil
	}
	return cty.NumberFloatVal(f), nil
}

func checkBounds(v cty.Value, b node.Bounds) error {
	if v == cty.NilVal || v.IsNull() || !v.IsWhollyKnown() {
		return fmt.Errorf("%w: value must be known", executor.ErrMissingAssignment)
	}
	if v.Type().IsListType() || v.Type().IsTupleType() {
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			if err := checkBounds(el, b); err != nil {
				return err
			}
		}
		return nil
	}

	var f float64
	if err := gocty.FromCtyValue(v, &f); err != nil {
		return err
	}
	if b.Lower != nil && f < *b.Lower {
		return fmt.Errorf("%w: %g < %g", executor.ErrOutOfBounds, f, *b.Lower)
	}
	if b.Upper != nil && f > *b.Upper {
		return fmt.Errorf("%w: %g > %g", executor.ErrOutOfBounds, f, *b.Upper)
	}
	return nil
}
