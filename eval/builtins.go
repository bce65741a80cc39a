package eval

import "time"

// =================
// Builtin functions
// =================

func defineBuiltins(env *Environment) {
	env.Define("clock", newBuiltin("clock", 0, bi_clock))
}

// -----
// clock
// -----
func bi_clock(in *Interpreter, args []Value) (Value, error) {
	return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}
