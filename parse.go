package calc

import (
	"math/big"
)

// Expression = Assignment
// Assignment = [VARIABLE '='] Addition
// Addition   = Multiplication { ('+' | '-') Multiplication }
// Multiplication = Power { ('*' | '/') Power }
// Power      = Unary ['^' Power]
// Unary      = '+' Unary | '-' Unary | Primary { '!' }
// Primary    = NUMBER | VARIABLE | '|' Addition '|' | '(' Addition ')'
//            | FUNCTION '(' Addition [',' Addition] ')'
//
// The bare commands 'preserve VARIABLE' and 'remove VARIABLE' are not
// expressions; ParsePreserve and ParseRemove handle them and callers check
// them before Parse.

// Parser consumes one token sequence and builds one expression tree.
type Parser struct {
	tokens []Token
	pos    int

	assigned  bool
	assignVar string
	names     map[string]bool
}

// NewParser creates a parser over a token sequence, normally the output of
// Tokenize.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != END {
		tokens = append(tokens, Token{Kind: END, Pos: lastPos(tokens)})
	}
	return &Parser{
		tokens: tokens,
		names:  make(map[string]bool),
	}
}

func lastPos(tokens []Token) int {
	if len(tokens) == 0 {
		return 1
	}
	return tokens[len(tokens)-1].Pos + 1
}

// curr returns the token at the cursor. The cursor never points past the
// final END token.
func (p *Parser) curr() Token {
	return p.tokens[p.pos]
}

// advance moves the cursor forward, saturating at the END token, and
// returns the new current token.
func (p *Parser) advance() Token {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return p.tokens[p.pos]
}

// checkType reports whether the current token has the given kind.
func (p *Parser) checkType(kind TokenKind) bool {
	return p.curr().Kind == kind
}

// Parse builds the expression tree for the token sequence. If the sequence
// is an assignment, the '=' prefix is consumed and recorded; IsAssignment
// and AssignVar expose it afterward. Malformed input produces an InputError
// describing the offending construct.
func (p *Parser) Parse() (*Expr, error) {
	for _, tok := range p.tokens {
		switch tok.Kind {
		case PRESERVE:
			return nil, &CommandError{Col: tok.Pos, Command: "preserve"}
		case REMOVE:
			return nil, &CommandError{Col: tok.Pos, Command: "remove"}
		}
	}
	if err := p.parseAssignment(); err != nil {
		return nil, err
	}
	n, err := p.parseAddition()
	if err != nil {
		return nil, err
	}
	if !p.checkType(END) {
		tok := p.curr()
		return nil, &UnexpectedError{Col: tok.Pos, Token: tok.Text}
	}
	e := &Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		e.names = append(e.names, k)
	}
	sortstrs(e.names)
	return e, nil
}

// IsAssignment reports whether the parsed line was an assignment.
func (p *Parser) IsAssignment() bool {
	return p.assigned
}

// AssignVar returns the assignment target variable name, or the empty
// string if the line was not an assignment.
func (p *Parser) AssignVar() string {
	return p.assignVar
}

// ParsePreserve recognizes the exact command form 'preserve VARIABLE'. The
// second result is true with the variable name when the sequence matches.
// A PRESERVE token in any other position is an error rather than an
// expression.
func (p *Parser) ParsePreserve() (string, bool, error) {
	return p.parseCommand(PRESERVE, "preserve")
}

// ParseRemove recognizes the exact command form 'remove VARIABLE',
// symmetric to ParsePreserve.
func (p *Parser) ParseRemove() (string, bool, error) {
	return p.parseCommand(REMOVE, "remove")
}

func (p *Parser) parseCommand(kind TokenKind, word string) (string, bool, error) {
	if len(p.tokens) == 3 && p.tokens[0].Kind == kind && p.tokens[1].Kind == VARIABLE && p.tokens[2].Kind == END {
		return p.tokens[1].Text, true, nil
	}
	for _, tok := range p.tokens {
		if tok.Kind == kind {
			return "", false, &CommandError{Col: tok.Pos, Command: word}
		}
	}
	return "", false, nil
}

// parseAssignment validates and consumes the assignment prefix. Assignment
// is exactly one level deep: the only legal shape is a VARIABLE ASSIGN
// prefix, and an ASSIGN token anywhere else is an error.
func (p *Parser) parseAssignment() error {
	for i, tok := range p.tokens {
		if tok.Kind != ASSIGN {
			continue
		}
		if i != 1 || p.tokens[0].Kind != VARIABLE || p.assigned {
			return &AssignError{Col: tok.Pos}
		}
		p.assigned = true
		p.assignVar = p.tokens[0].Text
		p.pos = 2
	}
	return nil
}

func (p *Parser) parseAddition() (*node, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}
	for p.checkType(PLUS) || p.checkType(MINUS) {
		op := p.curr().Kind
		p.advance()
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		kind := nodeAdd
		if op == MINUS {
			kind = nodeSub
		}
		left = &node{kind: kind, left: left, right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplication() (*node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.checkType(MULTIPLY) || p.checkType(DIVIDE) {
		op := p.curr().Kind
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		kind := nodeMul
		if op == DIVIDE {
			kind = nodeDiv
		}
		left = &node{kind: kind, left: left, right: right}
	}
	return left, nil
}

// parsePower recurses into itself on the right operand, so a^b^c parses as
// a^(b^c).
func (p *Parser) parsePower() (*node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.checkType(POWER) {
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodePow, left: left, right: right}, nil
	}
	return left, nil
}

// parseUnary handles prefix signs, recursing so --x nests two negations,
// then consumes trailing factorials left to right, so 3!! is (3!)!.
func (p *Parser) parseUnary() (*node, error) {
	switch {
	case p.checkType(PLUS):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNop, left: operand}, nil
	case p.checkType(MINUS):
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNeg, left: operand}, nil
	}
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.checkType(FACTORIAL) {
		p.advance()
		n = &node{kind: nodeFact, left: n}
	}
	return n, nil
}

func (p *Parser) parsePrimary() (*node, error) {
	tok := p.curr()
	switch tok.Kind {
	case NUMBER:
		if _, _, err := big.ParseFloat(tok.Text, 10, 64, big.ToNearestEven); err != nil {
			return nil, &NumberError{Col: tok.Pos, Text: tok.Text}
		}
		p.advance()
		return &node{kind: nodeNum, name: tok.Text}, nil
	case VARIABLE:
		p.advance()
		p.names[tok.Text] = true
		return &node{kind: nodeName, name: tok.Text}, nil
	case ABS:
		p.advance()
		inner, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		if !p.checkType(ABS) {
			end := p.curr()
			return nil, &BracketError{Col: end.Pos, Left: "|", Right: end.Text}
		}
		p.advance()
		return &node{kind: nodeAbs, left: inner}, nil
	case FUNCTION:
		return p.parseFunc(tok)
	case LEFTPAREN:
		p.advance()
		inner, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		if !p.checkType(RIGHTPAREN) {
			end := p.curr()
			return nil, &BracketError{Col: end.Pos, Left: "(", Right: end.Text}
		}
		p.advance()
		return inner, nil
	default:
		return nil, &UnexpectedError{Col: tok.Pos, Token: tok.Text}
	}
}

// parseFunc parses a function call. log and pow take two comma-separated
// arguments; every other function takes exactly one.
func (p *Parser) parseFunc(fn Token) (*node, error) {
	p.advance()
	if !p.checkType(LEFTPAREN) {
		return nil, &CallError{Col: p.curr().Pos, Func: fn.Text}
	}
	p.advance()
	arg, err := p.parseAddition()
	if err != nil {
		return nil, err
	}
	if fn.Text == "log" || fn.Text == "pow" {
		if !p.checkType(COMMA) {
			return nil, &SeparatorError{Col: p.curr().Pos, Func: fn.Text}
		}
		p.advance()
		base, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		if err := p.closeCall(); err != nil {
			return nil, err
		}
		kind := nodeLog
		if fn.Text == "pow" {
			kind = nodePow
		}
		return &node{kind: kind, left: arg, right: base}, nil
	}
	if err := p.closeCall(); err != nil {
		return nil, err
	}
	kind, ok := funcKinds[fn.Text]
	if !ok {
		return nil, &FuncError{Col: fn.Pos, Func: fn.Text}
	}
	return &node{kind: kind, left: arg}, nil
}

func (p *Parser) closeCall() error {
	if !p.checkType(RIGHTPAREN) {
		end := p.curr()
		return &BracketError{Col: end.Pos, Left: "(", Right: end.Text}
	}
	p.advance()
	return nil
}

// ParseString is a shortcut to tokenize and parse a single expression. Any
// assignment metadata is discarded; use NewParser directly to observe it.
func ParseString(src string) (*Expr, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
