package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"

	"github.com/calc-shell/calc"
)

const helpMessage = `=== Calculator Help ===

BASIC OPERATIONS:
  +, -, *, /          Basic arithmetic
  ^                   Exponentiation (2^3 = 8)
  ( )                 Parentheses for grouping
  | |                 Absolute value
  !                   Factorial (postfix)

VARIABLES:
  x = 5               Assign value to variable
  y = x * 2 + 3       Use variables in expressions
  vars                Show all variables
  preserve x          Keep x across 'clear'
  remove x            Stop keeping x across 'clear'

FUNCTIONS:
  sin(x), cos(x), tan(x)     Trigonometric functions
  asin(x), acos(x), atan(x)  Inverse trig functions
  exp(x)              e^x
  ln(x)               Natural logarithm
  log10(x)            Base-10 logarithm
  log(x,y)            Logarithm base y of x
  pow(x,y)            x raised to y
  sqrt(x)             Square root
  abs(x)              Absolute value
  fact(x)             Factorial

EXAMPLES:
  > 2 + 3 * 4
  2 + 3 * 4 = 14
  > x = 5
  x = 5
  > sin(pi/2)
  sin(pi/2) = 1

COMMANDS:
  help                Show this help message
  vars                Display all variables
  clear               Clear all non-preserved variables
  exit                Quit calculator

PREDEFINED VARIABLES:
  pi                  The ratio of circumference to diameter
  e                   The base of natural logarithms
  deg2rad             Degrees to radians conversion factor
  rad2deg             Radians to degrees conversion factor
NOTE: Angles for trig functions are in radians.
      Use deg2rad to convert degrees to radians.`

// completions are the words offered in addition to variable names.
var completions = []string{
	"sin(", "cos(", "tan(", "asin(", "acos(", "atan(",
	"exp(", "ln(", "log(", "log10(", "sqrt(", "abs(", "pow(", "fact(",
	"preserve ", "remove ",
	"help", "vars", "clear", "exit",
}

func main() {
	log.SetFlags(0)
	var (
		prec     int
		histfile string
		digits   int
	)
	flag.IntVar(&prec, "p", 64, "precision of calculations in bits")
	flag.IntVar(&digits, "d", 10, "significant digits to display")
	flag.StringVar(&histfile, "hist", "", "command history file")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	c := calc.NewCalculator(calc.Prec(uint(prec)))
	sh := &shell{c: c, digits: digits, errc: color.New(color.FgRed)}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(sh.complete)
	if histfile != "" {
		if f, err := os.Open(histfile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println("Calculator")
	fmt.Println("Type 'help' for assistance.")
	for {
		input, err := line.Prompt("> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				break
			}
			log.Fatal(err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if !sh.dispatch(input) {
			break
		}
	}
	if histfile != "" {
		f, err := os.Create(histfile)
		if err != nil {
			log.Fatal(err)
		}
		line.WriteHistory(f)
		f.Close()
	}
}

type shell struct {
	c      *calc.Calculator
	digits int
	errc   *color.Color
}

// dispatch handles one input line. The result is false when the session
// should end.
func (sh *shell) dispatch(input string) bool {
	switch input {
	case "exit", "quit":
		return false
	case "help":
		fmt.Println(helpMessage)
	case "vars":
		sh.printVars()
	case "clear":
		sh.c.Clear()
		fmt.Println("Variables cleared.")
	default:
		if err := sh.interpret(input); err != nil {
			sh.errc.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return true
}

// interpret runs one line through the calculator core. Assignment commits
// only after evaluation succeeds, so a failing line leaves the environment
// unchanged.
func (sh *shell) interpret(input string) error {
	tokens, err := calc.Tokenize(input)
	if err != nil {
		return err
	}
	p := calc.NewParser(tokens)
	if name, ok, err := p.ParsePreserve(); err != nil {
		return err
	} else if ok {
		if err := sh.c.AddPreserved(name); err != nil {
			return err
		}
		fmt.Printf("%s preserved\n", name)
		return nil
	}
	if name, ok, err := p.ParseRemove(); err != nil {
		return err
	} else if ok {
		sh.c.RemovePreserved(name)
		fmt.Printf("%s no longer preserved\n", name)
		return nil
	}
	e, err := p.Parse()
	if err != nil {
		return err
	}
	r, err := sh.c.Evaluate(e)
	if err != nil {
		return err
	}
	if p.IsAssignment() {
		sh.c.Assign(p.AssignVar(), r)
		fmt.Printf("%s = %s\n", p.AssignVar(), sh.format(r))
		return nil
	}
	fmt.Printf("%s = %s\n", input, sh.format(r))
	return nil
}

func (sh *shell) format(v *big.Float) string {
	return v.Text('g', sh.digits)
}

func (sh *shell) printVars() {
	vars := sh.c.Vars()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	preserved := make(map[string]bool)
	for _, name := range sh.c.Preserved() {
		preserved[name] = true
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Value", "Preserved"})
	for _, name := range names {
		mark := ""
		if preserved[name] {
			mark = "yes"
		}
		table.Append([]string{name, sh.format(vars[name]), mark})
	}
	table.Render()
}

// complete offers completions for the word under the cursor: variable
// names, function names, and shell commands.
func (sh *shell) complete(line string) []string {
	cut := strings.LastIndexAny(line, " +-*/^(|,=!") + 1
	head, word := line[:cut], line[cut:]
	if word == "" {
		return nil
	}
	var words []string
	for name := range sh.c.Vars() {
		words = append(words, name)
	}
	words = append(words, completions...)
	sort.Strings(words)
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, word) {
			out = append(out, head+w)
		}
	}
	return out
}
