package calc_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/calc-shell/calc"
)

// f64 converts an evaluation result for comparison against a float64
// expectation.
func f64(t *testing.T, v *big.Float) float64 {
	t.Helper()
	if v == nil {
		t.Fatal("nil result")
	}
	f, _ := v.Float64()
	return f
}

func TestEval(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"1", 1},
		{"1.5", 1.5},
		{".25", 0.25},
		// precedence and associativity
		{"2 + 3 * 4", 14},
		{"2 * 3 + 4", 10},
		{"1 - 2 - 3", -4},
		{"8 / 4 / 2", 1},
		{"10 / 4", 2.5},
		{"2 ^ 3 ^ 2", 512},
		{"(1 + 2) * 3", 9},
		// unary operators
		{"+5", 5},
		{"--4", 4},
		{"-2 ^ 2", 4},
		{"2 ^ -2", 0.25},
		{"(-2) ^ 3", -8},
		// powers
		{"0 ^ 0", 1},
		{"0 ^ 5", 0},
		{"pow(2, 10)", 1024},
		// factorial
		{"0!", 1},
		{"3!", 6},
		{"3!!", 720},
		{"3.7!", 6},
		{"-3!", -6},
		{"fact(4)", 24},
		// absolute value
		{"|1 - 4|", 3},
		{"abs(-3)", 3},
		{"|2 + 2|", 4},
		// roots
		{"sqrt(16)", 4},
		{"sqrt(0)", 0},
	}
	for _, c := range cases {
		r, err := calc.EvalString(c.src)
		if err != nil {
			t.Errorf("%q failed to evaluate: %v", c.src, err)
			continue
		}
		if f := f64(t, r); f != c.want {
			t.Errorf("%q evaluated wrong: want %v, got %v", c.src, c.want, f)
		}
	}
}

func TestEvalApprox(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		// constants
		{"pi", math.Pi},
		{"e", math.E},
		{"deg2rad * rad2deg", 1},
		{"90 * deg2rad", math.Pi / 2},
		// circular functions
		{"sin(0)", 0},
		{"cos(0)", 1},
		{"tan(0)", 0},
		{"sin(pi/2)", 1},
		{"cos(pi)", -1},
		{"asin(1)", math.Pi / 2},
		{"acos(1)", 0},
		{"atan(1) * 4", math.Pi},
		// exponentials and logarithms
		{"exp(0)", 1},
		{"exp(1)", math.E},
		{"ln(e)", 1},
		{"ln(1)", 0},
		{"log10(1000)", 3},
		{"logten(100)", 2},
		{"log(8, 2)", 3},
		{"log(81, 3)", 4},
		{"pow(2, 0.5)", math.Sqrt2},
		{"sqrt(2)", math.Sqrt2},
		{"exp(ln(7))", 7},
	}
	for _, c := range cases {
		r, err := calc.EvalString(c.src)
		if err != nil {
			t.Errorf("%q failed to evaluate: %v", c.src, err)
			continue
		}
		f := f64(t, r)
		if math.Abs(f-c.want) > 1e-12*(1+math.Abs(c.want)) {
			t.Errorf("%q evaluated wrong: want %v, got %v", c.src, c.want, f)
		}
	}
}

func TestEvalInf(t *testing.T) {
	r, err := calc.EvalString("0 ^ -1")
	if err != nil {
		t.Fatalf("0 ^ -1 failed to evaluate: %v", err)
	}
	if !r.IsInf() || r.Sign() < 0 {
		t.Errorf("0 ^ -1 = %v, want +Inf", r)
	}
}

func TestEvalDomainErrors(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"1 / 0", "division by zero"},
		{"1 / (2 - 2)", "division by zero"},
		{"(-2) ^ 0.5", "negative base with non-integer exponent"},
		{"pow(-2, 1.5)", "negative base with non-integer exponent"},
		{"ln(0)", "logarithm of non-positive value"},
		{"ln(-1)", "logarithm of non-positive value"},
		{"log10(0)", "logarithm of non-positive value"},
		{"log(-5, 2)", "logarithm of non-positive value"},
		{"log(5, 1)", "logarithm base of 1"},
		{"sqrt(-1)", "square root of negative value"},
		{"(-1)!", "factorial of negative value"},
	}
	for _, c := range cases {
		r, err := calc.EvalString(c.src)
		if err == nil {
			t.Errorf("%q evaluated to %v without error", c.src, r)
			continue
		}
		var derr *calc.DomainError
		if !errors.As(err, &derr) {
			t.Errorf("%q: error %#v is not *DomainError", c.src, err)
			continue
		}
		if err.Error() != c.msg {
			t.Errorf("%q: error message %q, want %q", c.src, err.Error(), c.msg)
		}
	}
}

func TestEvalOutsideDomain(t *testing.T) {
	for _, src := range []string{"asin(2)", "acos(-2)"} {
		r, err := calc.EvalString(src)
		if err == nil {
			t.Errorf("%q evaluated to %v without error", src, r)
			continue
		}
		var derr *calc.DomainError
		if !errors.As(err, &derr) {
			t.Errorf("%q: error %#v is not *DomainError", src, err)
		}
	}
}

func TestEvalUndefinedVariable(t *testing.T) {
	r, err := calc.EvalString("x + 1")
	if err == nil {
		t.Fatalf("x + 1 evaluated to %v without error", r)
	}
	var nerr *calc.NameError
	if !errors.As(err, &nerr) {
		t.Fatalf("error %#v is not *NameError", err)
	}
	if nerr.Name != "x" {
		t.Errorf("wrong missing name: %q", nerr.Name)
	}
	if err.Error() != "undefined variable: x" {
		t.Errorf("wrong message: %q", err.Error())
	}
}

func TestEvalAssignmentFlow(t *testing.T) {
	c := calc.NewCalculator()
	tokens, err := calc.Tokenize("x = 2 + 3")
	if err != nil {
		t.Fatal(err)
	}
	p := calc.NewParser(tokens)
	e, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	r, err := c.Evaluate(e)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsAssignment() || p.AssignVar() != "x" {
		t.Fatalf("x = 2 + 3 not recognized as assignment of x")
	}
	c.Assign(p.AssignVar(), r)
	e, err = calc.ParseString("x * 2")
	if err != nil {
		t.Fatal(err)
	}
	r, err = c.Evaluate(e)
	if err != nil {
		t.Fatal(err)
	}
	if f := f64(t, r); f != 10 {
		t.Errorf("x * 2 with x = 5 gave %v", f)
	}
}

func TestEvalErrorLeavesEnvironment(t *testing.T) {
	c := calc.NewCalculator()
	e, err := calc.ParseString("1 / (pi - pi)")
	if err != nil {
		t.Fatal(err)
	}
	before := len(c.Vars())
	if r, err := c.Evaluate(e); err == nil {
		t.Fatalf("1 / (pi - pi) evaluated to %v without error", r)
	}
	if after := len(c.Vars()); after != before {
		t.Errorf("failed evaluation changed the environment: %d vars, was %d", after, before)
	}
}

func TestEvalClone(t *testing.T) {
	c := calc.NewCalculator()
	c.Assign("x", big.NewFloat(2))
	e, err := calc.ParseString("x^2 + sin(x) - 3!")
	if err != nil {
		t.Fatal(err)
	}
	r1, err := c.Evaluate(e)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := c.Evaluate(e.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if r1.Cmp(r2) != 0 {
		t.Errorf("clone evaluated differently: %v vs %v", r1, r2)
	}
}

func TestEvalDeterminism(t *testing.T) {
	const src = "exp(sin(1)) + ln(10) * atan(0.5)"
	r1, err := calc.EvalString(src)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := calc.EvalString(src)
	if err != nil {
		t.Fatal(err)
	}
	if r1.Cmp(r2) != 0 {
		t.Errorf("%q evaluated differently across runs: %v vs %v", src, r1, r2)
	}
}

func TestEvalPrec(t *testing.T) {
	c := calc.NewCalculator(calc.Prec(128))
	if c.Prec() != 128 {
		t.Fatalf("precision is %d, want 128", c.Prec())
	}
	e, err := calc.ParseString("pi")
	if err != nil {
		t.Fatal(err)
	}
	r, err := c.Evaluate(e)
	if err != nil {
		t.Fatal(err)
	}
	if r.Prec() != 128 {
		t.Errorf("result precision is %d, want 128", r.Prec())
	}
}
