package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. The kind
// selects the variant; name holds a number literal or variable name; left
// and right are the exclusively owned children. The tree has strict single
// ownership and no cycles, so eval and clone recurse freely.
type node struct {
	kind nodeKind

	name string

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // name is the literal text
	nodeName // name is the variable name

	nodeNeg  // -left
	nodeNop  // unary plus, evaluate left
	nodeAbs  // |left|
	nodeFact // left!

	nodeAdd
	nodeSub
	nodeMul
	nodeDiv
	nodePow

	nodeSin
	nodeCos
	nodeTan
	nodeAsin
	nodeAcos
	nodeAtan
	nodeExp
	nodeLn
	nodeLog10
	nodeLog // log(left, right), right is the base
	nodeSqrt
)

var nodeKindNames = [...]string{
	nodeNone:  "None",
	nodeNum:   "Num",
	nodeName:  "Name",
	nodeNeg:   "Neg",
	nodeNop:   "Nop",
	nodeAbs:   "Abs",
	nodeFact:  "Fact",
	nodeAdd:   "Add",
	nodeSub:   "Sub",
	nodeMul:   "Mul",
	nodeDiv:   "Div",
	nodePow:   "Pow",
	nodeSin:   "Sin",
	nodeCos:   "Cos",
	nodeTan:   "Tan",
	nodeAsin:  "Asin",
	nodeAcos:  "Acos",
	nodeAtan:  "Atan",
	nodeExp:   "Exp",
	nodeLn:    "Ln",
	nodeLog10: "Log10",
	nodeLog:   "Log",
	nodeSqrt:  "Sqrt",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// funcKinds maps one-argument function names to their node kinds. log and
// pow are absent because they build two-child nodes.
var funcKinds = map[string]nodeKind{
	"sin":    nodeSin,
	"cos":    nodeCos,
	"tan":    nodeTan,
	"asin":   nodeAsin,
	"acos":   nodeAcos,
	"atan":   nodeAtan,
	"exp":    nodeExp,
	"ln":     nodeLn,
	"log10":  nodeLog10,
	"logten": nodeLog10,
	"sqrt":   nodeSqrt,
	"abs":    nodeAbs,
	"fact":   nodeFact,
}

// funcName is the display name used when formatting a function node.
var funcName = map[nodeKind]string{
	nodeSin:   "sin",
	nodeCos:   "cos",
	nodeTan:   "tan",
	nodeAsin:  "asin",
	nodeAcos:  "acos",
	nodeAtan:  "atan",
	nodeExp:   "exp",
	nodeLn:    "ln",
	nodeLog10: "log10",
	nodeSqrt:  "sqrt",
}

// clone produces a fully independent deep copy of the subtree rooted at n.
func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	return &node{
		kind:  n.kind,
		name:  n.name,
		left:  n.left.clone(),
		right: n.right.clone(),
	}
}

// Expr is a parsed expression that can be evaluated by a Calculator. Each
// Expr is independent: evaluating or cloning one never aliases another.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names used in the expression.
	names []string
}

// Clone creates a deep copy of the expression.
func (e *Expr) Clone() *Expr {
	return &Expr{
		n:     e.n.clone(),
		names: append(([]string)(nil), e.names...),
	}
}

// Vars returns the variable names the expression reads when evaluated. The
// result is non-nil even for an expression with no variables.
func (e *Expr) Vars() []string {
	v := make([]string, len(e.names))
	copy(v, e.names)
	return v
}

// String creates a fully parenthesized representation of the expression.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeNeg:
		b.WriteString("(-")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNop:
		b.WriteString("(+")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAbs:
		b.WriteByte('|')
		n.left.fmt(b)
		b.WriteByte('|')
	case nodeFact:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString("!)")
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(binopText(n.kind))
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeLog:
		b.WriteString("log(")
		n.left.fmt(b)
		b.WriteString(", ")
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		name := funcName[n.kind]
		if name == "" {
			panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
		}
		b.WriteString(name)
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	}
}

func binopText(k nodeKind) string {
	switch k {
	case nodeAdd:
		return " + "
	case nodeSub:
		return " - "
	case nodeMul:
		return " * "
	case nodeDiv:
		return " / "
	case nodePow:
		return " ^ "
	default:
		panic("calc: not a binary operator: " + k.String())
	}
}
