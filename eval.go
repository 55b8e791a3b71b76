package calc

import (
	"math/big"

	mapset "github.com/deckarep/golang-set"
	"github.com/zephyrtronium/bigfloat"
)

// Calculator owns the variable environment for one interactive session: the
// name-to-value mapping, a cached variable-reference expression per name,
// and the set of names preserved across Clear. It is not safe to use a
// Calculator concurrently.
type Calculator struct {
	values    map[string]*big.Float
	varNodes  map[string]*Expr
	preserved mapset.Set
	// nums caches parsed number literals by their text.
	nums map[string]*big.Float
	prec uint
}

// Option is an option used when creating a calculator.
type Option interface {
	calcOption(*Calculator)
}

type precopt uint

func (o precopt) calcOption(c *Calculator) { c.prec = uint(o) }

// Prec sets the precision of calculations in significand bits. The default
// of 64 matches the extended-precision floating point type historically
// used for this grammar.
func Prec(prec uint) Option {
	return precopt(prec)
}

// NewCalculator creates a calculator pre-populated with the constants pi,
// e, deg2rad, and rad2deg, all four preserved.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		values:    make(map[string]*big.Float),
		varNodes:  make(map[string]*Expr),
		preserved: mapset.NewSet(),
		nums:      make(map[string]*big.Float),
		prec:      64,
	}
	for _, opt := range opts {
		opt.calcOption(c)
	}
	pi := bigfloat.Pi(new(big.Float).SetPrec(c.prec))
	one := new(big.Float).SetPrec(c.prec).SetInt64(1)
	e := bigfloat.Exp(new(big.Float).SetPrec(c.prec), one)
	half := new(big.Float).SetPrec(c.prec).SetInt64(180)
	c.Assign("pi", pi)
	c.Assign("e", e)
	c.Assign("deg2rad", new(big.Float).SetPrec(c.prec).Quo(pi, half))
	c.Assign("rad2deg", new(big.Float).SetPrec(c.prec).Quo(half, pi))
	for _, name := range []string{"pi", "e", "deg2rad", "rad2deg"} {
		c.AddPreserved(name)
	}
	return c
}

// Evaluate computes the value of an expression against the calculator's
// variables. Evaluation never mutates the environment; on error the result
// is nil and the variables are untouched.
func (c *Calculator) Evaluate(e *Expr) (*big.Float, error) {
	return e.n.eval(c)
}

// Assign inserts or overwrites a variable, installing both its value and
// its cached reference expression.
func (c *Calculator) Assign(name string, value *big.Float) {
	c.values[name] = new(big.Float).SetPrec(c.prec).Set(value)
	c.varNodes[name] = &Expr{
		n:     &node{kind: nodeName, name: name},
		names: []string{name},
	}
}

// GetVariable returns an owned copy of the cached reference expression for
// a variable, independent of the stored original. The result is a
// *LookupError if the name was never assigned.
func (c *Calculator) GetVariable(name string) (*Expr, error) {
	ref := c.varNodes[name]
	if ref == nil {
		return nil, &LookupError{Name: name}
	}
	return ref.Clone(), nil
}

// SetVariable overwrites the value of an already-assigned variable. Unlike
// Assign it refuses names that were never assigned, keeping the value and
// reference-node maps on identical key sets.
func (c *Calculator) SetVariable(name string, value *big.Float) error {
	if _, ok := c.values[name]; !ok {
		return &NameError{Name: name}
	}
	c.values[name] = new(big.Float).SetPrec(c.prec).Set(value)
	return nil
}

// Lookup returns a copy of the value of a variable, or nil if there is no
// such variable.
func (c *Calculator) Lookup(name string) *big.Float {
	v := c.values[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Clear removes every variable whose name is not preserved. Preserved
// variables are re-assigned, so both maps stay consistent. Clearing twice
// leaves the same surviving set as clearing once.
func (c *Calculator) Clear() {
	keep := make(map[string]*big.Float)
	c.preserved.Each(func(v interface{}) bool {
		name := v.(string)
		if val, ok := c.values[name]; ok {
			keep[name] = val
		}
		return false
	})
	c.values = make(map[string]*big.Float)
	c.varNodes = make(map[string]*Expr)
	for name, val := range keep {
		c.Assign(name, val)
	}
}

// AddPreserved marks an existing variable as surviving Clear. The name must
// currently be assigned.
func (c *Calculator) AddPreserved(name string) error {
	if _, ok := c.values[name]; !ok {
		return &NameError{Name: name}
	}
	c.preserved.Add(name)
	return nil
}

// RemovePreserved unmarks a preserved name. Removing a name that is not
// preserved is a no-op.
func (c *Calculator) RemovePreserved(name string) {
	c.preserved.Remove(name)
}

// Preserved returns the sorted preserved variable names.
func (c *Calculator) Preserved() []string {
	names := make([]string, 0, c.preserved.Cardinality())
	c.preserved.Each(func(v interface{}) bool {
		names = append(names, v.(string))
		return false
	})
	sortstrs(names)
	return names
}

// Vars returns a copy of the current variable bindings.
func (c *Calculator) Vars() map[string]*big.Float {
	m := make(map[string]*big.Float, len(c.values))
	for name, v := range c.values {
		m[name] = new(big.Float).Copy(v)
	}
	return m
}

// Prec returns the precision to which values are computed.
func (c *Calculator) Prec() uint {
	return c.prec
}

// num gets a possibly cached number from its literal text. The parser
// validates literals, so a malformed text here means a hand-built tree.
func (c *Calculator) num(s string) *big.Float {
	if r := c.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(c.prec).Parse(s, 10)
	if err != nil {
		panic("calc: invalid number: " + s + " (" + err.Error() + ")")
	}
	c.nums[s] = r
	return r
}

// eval computes the value of the subtree rooted at n. It is a pure function
// of the calculator's variable values; every node returns a freshly owned
// result.
func (n *node) eval(c *Calculator) (*big.Float, error) {
	switch n.kind {
	case nodeNum:
		return new(big.Float).SetPrec(c.prec).Set(c.num(n.name)), nil
	case nodeName:
		v := c.values[n.name]
		if v == nil {
			return nil, &NameError{Name: n.name}
		}
		return new(big.Float).SetPrec(c.prec).Set(v), nil
	case nodeNeg:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		return v.Neg(v), nil
	case nodeNop:
		return n.left.eval(c)
	case nodeAbs:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		return v.Abs(v), nil
	case nodeFact:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		return factorial(v, c.prec)
	case nodeAdd:
		l, r, err := n.eval2(c)
		if err != nil {
			return nil, err
		}
		return l.Add(l, r), nil
	case nodeSub:
		l, r, err := n.eval2(c)
		if err != nil {
			return nil, err
		}
		return l.Sub(l, r), nil
	case nodeMul:
		l, r, err := n.eval2(c)
		if err != nil {
			return nil, err
		}
		return l.Mul(l, r), nil
	case nodeDiv:
		l, r, err := n.eval2(c)
		if err != nil {
			return nil, err
		}
		if r.Sign() == 0 {
			return nil, &DomainError{X: r, Func: "/", Reason: "division by zero"}
		}
		return l.Quo(l, r), nil
	case nodePow:
		l, r, err := n.eval2(c)
		if err != nil {
			return nil, err
		}
		return power(l, r, c.prec)
	case nodeSin, nodeCos, nodeTan, nodeAsin, nodeAcos, nodeAtan:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		return circular(n.kind, v, c.prec)
	case nodeExp:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		return bigfloat.Exp(new(big.Float).SetPrec(c.prec), v), nil
	case nodeLn:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		if v.Sign() <= 0 {
			return nil, &DomainError{X: v, Func: "ln", Reason: "logarithm of non-positive value"}
		}
		return bigfloat.Log(new(big.Float).SetPrec(c.prec), v), nil
	case nodeLog10:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		if v.Sign() <= 0 {
			return nil, &DomainError{X: v, Func: "log10", Reason: "logarithm of non-positive value"}
		}
		ten := new(big.Float).SetPrec(c.prec).SetInt64(10)
		return logBase(v, ten, c.prec), nil
	case nodeLog:
		v, base, err := n.eval2(c)
		if err != nil {
			return nil, err
		}
		one := new(big.Float).SetInt64(1)
		if base.Cmp(one) == 0 {
			return nil, &DomainError{X: base, Func: "log", Reason: "logarithm base of 1"}
		}
		if base.Sign() <= 0 || v.Sign() <= 0 {
			return nil, &DomainError{X: v, Func: "log", Reason: "logarithm of non-positive value"}
		}
		return logBase(v, base, c.prec), nil
	case nodeSqrt:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		if v.Sign() < 0 {
			return nil, &DomainError{X: v, Func: "sqrt", Reason: "square root of negative value"}
		}
		return v.Sqrt(v), nil
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// eval2 evaluates both children of a binary node.
func (n *node) eval2(c *Calculator) (l, r *big.Float, err error) {
	l, err = n.left.eval(c)
	if err != nil {
		return nil, nil, err
	}
	r, err = n.right.eval(c)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// EvalString is a shortcut to parse and evaluate an expression against a
// fresh calculator containing only the predefined constants.
func EvalString(src string, opts ...Option) (*big.Float, error) {
	e, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	return NewCalculator(opts...).Evaluate(e)
}

// NameError is an error from evaluating a variable that is missing from
// the environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + err.Name
}

// LookupError is an error from asking for the reference expression of a
// variable that was never assigned.
type LookupError struct {
	// Name is the name that was missing.
	Name string
}

func (err *LookupError) Error() string {
	return "variable not found: " + err.Name
}
