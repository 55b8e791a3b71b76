package calc

import (
	"strconv"
	"unicode"
)

// Token is a classified lexical unit produced by Tokenize. Tokens are
// immutable once produced.
type Token struct {
	// Kind classifies the token.
	Kind TokenKind
	// Text is the verbatim source text of the token.
	Text string
	// Pos is the 1-based rune column at which the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the closed set of token classifications.
type TokenKind int8

const (
	NONE TokenKind = iota
	// NUMBER is a run of digits and decimal points.
	NUMBER
	// VARIABLE is a name that is not a reserved function or command word.
	VARIABLE
	// FUNCTION is a reserved function name like sin or log10.
	FUNCTION
	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	POWER
	LEFTPAREN
	RIGHTPAREN
	ASSIGN
	COMMA
	// ABS is the absolute value bar |.
	ABS
	// FACTORIAL is the postfix ! operator.
	FACTORIAL
	// PRESERVE and REMOVE are the bare command keywords.
	PRESERVE
	REMOVE
	// END terminates every token sequence exactly once.
	END
)

var tokenKindNames = [...]string{
	NONE:       "NONE",
	NUMBER:     "NUMBER",
	VARIABLE:   "VARIABLE",
	FUNCTION:   "FUNCTION",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	MULTIPLY:   "MULTIPLY",
	DIVIDE:     "DIVIDE",
	POWER:      "POWER",
	LEFTPAREN:  "LEFTPAREN",
	RIGHTPAREN: "RIGHTPAREN",
	ASSIGN:     "ASSIGN",
	COMMA:      "COMMA",
	ABS:        "ABS",
	FACTORIAL:  "FACTORIAL",
	PRESERVE:   "PRESERVE",
	REMOVE:     "REMOVE",
	END:        "END",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// funcNames is the reserved set of function words. A scanned word matching
// one of these becomes a FUNCTION token.
var funcNames = map[string]bool{
	"sin":    true,
	"cos":    true,
	"tan":    true,
	"asin":   true,
	"acos":   true,
	"atan":   true,
	"exp":    true,
	"ln":     true,
	"log":    true,
	"log10":  true,
	"logten": true,
	"sqrt":   true,
	"abs":    true,
	"pow":    true,
	"fact":   true,
}

// punct maps single-rune tokens to their kinds.
var punct = map[rune]TokenKind{
	'+': PLUS,
	'-': MINUS,
	'*': MULTIPLY,
	'/': DIVIDE,
	'^': POWER,
	'(': LEFTPAREN,
	')': RIGHTPAREN,
	'=': ASSIGN,
	',': COMMA,
	'|': ABS,
	'!': FACTORIAL,
}

// Tokenize scans src left to right into a token sequence terminated by a
// single END token. Whitespace separates tokens and is otherwise skipped.
// Digit and decimal point runs become NUMBER tokens verbatim; the literal
// is not validated until parse time. An unrecognized rune produces a
// *LexError with no tokens.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case '0' <= r && r <= '9', r == '.':
			start := i
			for i < len(runes) && ('0' <= runes[i] && runes[i] <= '9' || runes[i] == '.') {
				i++
			}
			tokens = append(tokens, Token{Kind: NUMBER, Text: string(runes[start:i]), Pos: start + 1})
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && wordRune(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			tokens = append(tokens, Token{Kind: classify(word), Text: word, Pos: start + 1})
		default:
			kind, ok := punct[r]
			if !ok {
				return nil, &LexError{Text: string(r), Col: i + 1}
			}
			tokens = append(tokens, Token{Kind: kind, Text: string(r), Pos: i + 1})
			i++
		}
	}
	tokens = append(tokens, Token{Kind: END, Pos: len(runes) + 1})
	return tokens, nil
}

func wordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// classify decides the kind of a scanned word.
func classify(word string) TokenKind {
	switch {
	case funcNames[word]:
		return FUNCTION
	case word == "preserve":
		return PRESERVE
	case word == "remove":
		return REMOVE
	default:
		return VARIABLE
	}
}

// LexError indicates a rune that is not recognized as part of any token.
// It implements InputError.
type LexError struct {
	// Text is the offending rune.
	Text string
	// Col is the 1-based rune column of the offending rune.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Text)+" is not recognized as a variable, function, or operation")
}

func (err *LexError) Pos() int {
	return err.Col
}
