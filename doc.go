// Package calc implements the core of an interactive arithmetic
// calculator: a tokenizer, a recursive-descent parser, and an
// extended-precision evaluator over a mutable variable environment.
//
// One line of input flows through Tokenize, then a Parser, then a
// Calculator. The grammar covers the operators + - * / ^, grouping with
// parentheses, absolute value with | |, postfix ! factorial, the usual
// one-argument functions plus two-argument log and pow, assignment with
// name = expression, and the bare commands "preserve name" and
// "remove name" that control which variables survive Clear.
//
// Values are big.Float at a configurable precision, 64 significand bits by
// default. Errors never outlive the line that caused them: the environment
// is only mutated after a line evaluates successfully.
package calc
