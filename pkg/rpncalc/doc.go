/*
Package rpncalc evaluates arithmetic expressions by converting infix token
sequences to Reverse Polish Notation.

# Overview

A calculation runs three stages over an already tokenized input:

  - convert: infix tokens to postfix (package postfix)
  - evaluate: postfix tokens to a float64 (package postfix)
  - format: round to a fixed number of fractional digits (package format)

Tokens are strings. A token is a number if strconv.ParseFloat accepts it and
an operator otherwise. The supported operators are + - * / with * and /
binding tighter than + and -. Parentheses and unary operators are not
supported.

# Basic Usage

	v, err := rpncalc.Calculate([]string{"2", "+", "3", "*", "4"})
	// v == 14

For raw text, split it first with the token package:

	tokens, err := token.Lex("1/3")
	v, err := rpncalc.Calculate(tokens) // 0.33333

# Configuration

New accepts functional options:

	calc := rpncalc.New(
	    rpncalc.WithPrecision(3),
	    rpncalc.WithStrictOperators(true),
	    rpncalc.WithLogger(logger),
	    rpncalc.WithMetrics(true),
	    rpncalc.WithTracing(true),
	    rpncalc.WithJournal(journal.NewMemoryStore()),
	)

	res, err := calc.Evaluate(ctx, tokens)
	fmt.Println(res.Postfix, res.Value)

Settings loaded by package config are applied with WithSettings.

# Errors

Every failure is an *Error with a Kind:

	_, err := rpncalc.Calculate([]string{"5", "/", "0"})
	rpncalc.IsDividedByZero(err) // true

WithCollapsedErrors(true) reports every failure as KindUnknown while keeping
the cause available to errors.Is.

A panic raised during a calculation is recovered and returned as a
KindUnknown error wrapping ErrInternal.

# Concurrency

A Calculator keeps no per-calculation state. One instance can serve
concurrent callers.
*/
package rpncalc
