package calc

import "strconv"

// BracketError is an error indicating a missing or mismatched closing
// delimiter. It implements InputError.
type BracketError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// Left is the opening delimiter, "(" or "|".
	Left string
	// Right is the mismatched token text, or empty if input ended.
	Right string
}

func (err *BracketError) Error() string {
	if err.Right == "" {
		return errpos(err.Col, "open "+err.Left+" with no closing "+closing(err.Left))
	}
	return errpos(err.Col, "expected closing "+closing(err.Left)+" but found "+strconv.Quote(err.Right))
}

func (err *BracketError) Pos() int {
	return err.Col
}

func closing(left string) string {
	if left == "(" {
		return ")"
	}
	return left
}

// SeparatorError is an error indicating a missing comma between the
// arguments of a two-argument function. It implements InputError.
type SeparatorError struct {
	// Col is the position at which the comma was expected.
	Col int
	// Func is the function being called.
	Func string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "expected ',' between arguments of "+err.Func)
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function name not followed by an
// opening parenthesis. It implements InputError.
type CallError struct {
	// Col is the position of the token following the function name.
	Col int
	// Func is the function name.
	Func string
}

func (err *CallError) Error() string {
	return errpos(err.Col, "expected '(' after function name "+err.Func)
}

func (err *CallError) Pos() int {
	return err.Col
}

// FuncError is an error indicating a function name the parser cannot
// dispatch. It implements InputError.
type FuncError struct {
	// Col is the position of the function name.
	Col int
	// Func is the unknown function name.
	Func string
}

func (err *FuncError) Error() string {
	return errpos(err.Col, "unknown function: "+err.Func)
}

func (err *FuncError) Pos() int {
	return err.Col
}

// NumberError is an error indicating a numeric literal that cannot be
// interpreted, e.g. one with several decimal points. It implements
// InputError.
type NumberError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal text.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

// AssignError is an error indicating an ASSIGN token anywhere other than in
// the two-token prefix "variable =". It implements InputError.
type AssignError struct {
	// Col is the position of the offending token.
	Col int
}

func (err *AssignError) Error() string {
	return errpos(err.Col, "use [variable] = [expression] for assignment")
}

func (err *AssignError) Pos() int {
	return err.Col
}

// CommandError is an error indicating a malformed preserve or remove
// command. It implements InputError.
type CommandError struct {
	// Col is the position of the command keyword.
	Col int
	// Command is "preserve" or "remove".
	Command string
}

func (err *CommandError) Error() string {
	return errpos(err.Col, "use '"+err.Command+" [variable]'")
}

func (err *CommandError) Pos() int {
	return err.Col
}

// UnexpectedError is an error indicating a token that cannot begin a
// primary expression. It implements InputError.
type UnexpectedError struct {
	// Col is the position of the token.
	Col int
	// Token is the token text, or empty at end of input.
	Token string
}

func (err *UnexpectedError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, "unexpected end of expression")
	}
	return errpos(err.Col, "unexpected element in expression: "+strconv.Quote(err.Token))
}

func (err *UnexpectedError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every tokenizing or
// parsing error implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*FuncError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*AssignError)(nil)
	_ InputError = (*CommandError)(nil)
	_ InputError = (*UnexpectedError)(nil)
)
