package settings

import (
	"fmt"
	"io"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Unset is how a null value is rendered by Format and Dump.
const Unset = "<unset>"

// Format renders a primitive value as the text a settings file would use.
func Format(v cty.Value) (string, error) {
	if v == cty.NilVal || v.IsNull() {
		return Unset, nil
	}
	if !v.IsKnown() {
		return "", fmt.Errorf("value is unknown")
	}
	if v.Type() == cty.Number {
		// Integral numbers print without a fraction, others in shortest form.
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int(nil)
			return i.String(), nil
		}
		return bf.Text('g', -1), nil
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", err
	}
	return s.AsString(), nil
}

// AsString converts v to a Go string; ok is false for null values.
func AsString(v cty.Value) (string, bool) {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return "", false
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", false
	}
	return s.AsString(), true
}

// AsBool converts v to a Go bool; ok is false for null or non-boolean values.
func AsBool(v cty.Value) (b bool, ok bool) {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return false, false
	}
	if v.Type() == cty.String {
		parsed, err := ParseBool(v.AsString())
		return parsed, err == nil
	}
	if err := gocty.FromCtyValue(v, &b); err != nil {
		return false, false
	}
	return b, true
}

// AsInt converts v to a Go int; ok is false for null or non-integral values.
func AsInt(v cty.Value) (int, bool) {
	f, ok := asNumber(v)
	if !ok || !f.IsInt() {
		return 0, false
	}
	i, _ := f.Int64()
	return int(i), true
}

// AsFloat converts v to a Go float64; ok is false for null or non-numeric values.
func AsFloat(v cty.Value) (float64, bool) {
	f, ok := asNumber(v)
	if !ok {
		return 0, false
	}
	out, _ := f.Float64()
	return out, true
}

func asNumber(v cty.Value) (*big.Float, bool) {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return nil, false
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil {
		return nil, false
	}
	return n.AsBigFloat(), true
}

// Dump writes every key as `name=value` in definition order.
func (s *Store) Dump(w io.Writer) error {
	for _, name := range s.Keys() {
		v, err := s.Get(name)
		if err != nil {
			return err
		}
		text, err := Format(v)
		if err != nil {
			return fmt.Errorf("format %s: %w", name, err)
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, text); err != nil {
			return err
		}
	}
	return nil
}
