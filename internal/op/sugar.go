package op

// sugar.go collects the operator-style constructors that synthesize Eval
// nodes over the embedded host-expression evaluator. Go has no operator
// overloading, so arithmetic and comparison get ordinary functions instead
// of infix syntax; each one just wires two operands through a host
// expression using Eval's buildEnv letter-naming convention (a, b, ...).

func binExpr(expr string, l, r Op) Op {
	return NewEval([]Op{l, r}, expr, true)
}

// Add synthesizes Eval(l, r, "a + b").
func Add(l, r Op) Op { return binExpr("a + b", l, r) }

// Sub synthesizes Eval(l, r, "a - b").
func Sub(l, r Op) Op { return binExpr("a - b", l, r) }

// Mul synthesizes Eval(l, r, "a * b").
func Mul(l, r Op) Op { return binExpr("a * b", l, r) }

// Div synthesizes Eval(l, r, "a / b").
func Div(l, r Op) Op { return binExpr("a / b", l, r) }

// Mod synthesizes Eval(l, r, "a % b").
func Mod(l, r Op) Op { return binExpr("a % b", l, r) }

// Eq synthesizes Eval(l, r, "a == b").
func Eq(l, r Op) Op { return binExpr("a == b", l, r) }

// Ne synthesizes Eval(l, r, "a != b").
func Ne(l, r Op) Op { return binExpr("a != b", l, r) }

// Lt synthesizes Eval(l, r, "a < b").
func Lt(l, r Op) Op { return binExpr("a < b", l, r) }

// Le synthesizes Eval(l, r, "a <= b").
func Le(l, r Op) Op { return binExpr("a <= b", l, r) }

// Gt synthesizes Eval(l, r, "a > b").
func Gt(l, r Op) Op { return binExpr("a > b", l, r) }

// Ge synthesizes Eval(l, r, "a >= b").
func Ge(l, r Op) Op { return binExpr("a >= b", l, r) }

// And synthesizes Eval(l, r, "a && b"). Both operands are evaluated
// eagerly as ordinary Deps — short-circuiting belongs to Match, not to
// this sugar, matching the rest of the algebra's eager-dependency model.
func And(l, r Op) Op { return binExpr("a && b", l, r) }

// Or synthesizes Eval(l, r, "a || b").
func Or(l, r Op) Op { return binExpr("a || b", l, r) }

// Not synthesizes Eval(x, "!a").
func Not(x Op) Op { return NewEval([]Op{x}, "!a", true) }

// Neg synthesizes Eval(x, "-a").
func Neg(x Op) Op { return NewEval([]Op{x}, "-a", true) }
