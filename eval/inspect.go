package eval

import (
	"math"
	"strconv"
)

// =========
// Stringify
// =========

type Stringer interface {
	String() string
}

// Stringify returns the text that print writes for v.
func Stringify(v Value) string {
	return v.(Stringer).String()
}

// Inspect is like Stringify, except that strings are quoted.
func Inspect(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}
	return Stringify(v)
}

func (v Nil) String() string { return "nil" }
func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (v Number) String() string { return formatNumber(float64(v)) }
func (v String) String() string { return string(v) }

func (v *Function) String() string { return "<fn " + v.Name() + ">" }
func (v *Builtin) String() string  { return "<native fn>" }
func (v *Class) String() string    { return v.Name }
func (v *Instance) String() string { return v.class.Name + " instance" }

// formatNumber prints integral numbers without a fraction, and
// falls back to the shortest representation for everything else.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == math.Trunc(n) && math.Abs(n) < 1e21:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
