package calc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// power computes x^y. A negative base demands an integer exponent; the sign
// of the result follows the exponent's parity.
func power(x, y *big.Float, prec uint) (*big.Float, error) {
	if x.Sign() == 0 {
		switch y.Sign() {
		case 0:
			return new(big.Float).SetPrec(prec).SetInt64(1), nil
		case -1:
			return new(big.Float).SetPrec(prec).SetInf(false), nil
		default:
			return new(big.Float).SetPrec(prec), nil
		}
	}
	if x.Sign() > 0 {
		return bigfloat.Pow(new(big.Float).SetPrec(prec), x, y), nil
	}
	if !y.IsInt() {
		return nil, &DomainError{X: x, Func: "^", Reason: "negative base with non-integer exponent"}
	}
	ax := new(big.Float).SetPrec(prec).Abs(x)
	r := bigfloat.Pow(new(big.Float).SetPrec(prec), ax, y)
	yi, _ := y.Int(nil)
	if yi.Bit(0) == 1 {
		r.Neg(r)
	}
	return r, nil
}

// factorial truncates x toward zero and takes the iterative product 1..n.
// Non-integer operands are truncated, not rejected; 0! is 1.
func factorial(x *big.Float, prec uint) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, &DomainError{X: x, Func: "!", Reason: "factorial of negative value"}
	}
	n, _ := x.Int64()
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	f := new(big.Float).SetPrec(prec)
	for i := int64(2); i <= n; i++ {
		r.Mul(r, f.SetInt64(i))
	}
	return r, nil
}

// logBase computes log base `base` of x as ln(x)/ln(base). Callers check
// domains first.
func logBase(x, base *big.Float, prec uint) *big.Float {
	lx := bigfloat.Log(new(big.Float).SetPrec(prec), x)
	lb := bigfloat.Log(new(big.Float).SetPrec(prec), base)
	return lx.Quo(lx, lb)
}

// circularFuncs maps the trigonometric node kinds to their float64 kernels.
var circularFuncs = map[nodeKind]struct {
	name string
	f    func(float64) float64
}{
	nodeSin:  {"sin", math.Sin},
	nodeCos:  {"cos", math.Cos},
	nodeTan:  {"tan", math.Tan},
	nodeAsin: {"asin", math.Asin},
	nodeAcos: {"acos", math.Acos},
	nodeAtan: {"atan", math.Atan},
}

// circular computes a trigonometric function of x in radians. There is no
// arbitrary-precision implementation of the circular functions in the
// numeric stack, so these round-trip through float64. big.Float has no NaN,
// so an argument the kernel maps to NaN (asin or acos outside [-1, 1])
// reports a DomainError.
func circular(kind nodeKind, x *big.Float, prec uint) (*big.Float, error) {
	k, ok := circularFuncs[kind]
	if !ok {
		panic("calc: not a circular function: " + kind.String())
	}
	v, _ := x.Float64()
	r := k.f(v)
	if math.IsNaN(r) {
		return nil, &DomainError{X: x, Func: k.name}
	}
	return new(big.Float).SetPrec(prec).SetFloat64(r), nil
}

// DomainError is an error returned when an operation is applied to an
// operand outside its domain.
type DomainError struct {
	// X is the out-of-domain operand.
	X *big.Float
	// Func is a name identifying the operation.
	Func string
	// Reason, if set, is the exact message reported to the user.
	Reason string
}

func (err *DomainError) Error() string {
	if err.Reason != "" {
		return err.Reason
	}
	return err.X.String() + " outside domain of " + err.Func
}
