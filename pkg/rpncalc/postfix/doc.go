/*
Package postfix converts infix token sequences to Reverse Polish Notation and
evaluates them.

# Conversion

Convert scans the tokens left to right. Numbers go straight to the output.
An operator is compared with the operator on top of the pending stack: if
the top's priority is greater than or equal to the incoming one, the top is
popped once and emitted, then the incoming operator is pushed. Leftover
operators are emitted in LIFO order at the end.

Only one operator is popped per incoming operator. Expressions that mix a
low-priority operator, a high-priority run and another low-priority operator
therefore group differently than textbook shunting-yard:

	8 - 2 * 3 - 1   =>   8 2 3 * 1 - -   =>   3

# Evaluation

Evaluate keeps a stack of float64 values. An operator pops first (the most
recent value) and second, then pushes second op first:

	postfix.Evaluate([]string{"8", "3", "-"})   // 5, nil
	postfix.Evaluate([]string{"5", "0", "/"})   // error wrapping operator.ErrDivideByZero

Unknown operator symbols consume their two operands and push nothing unless
WithStrictOperators is given, in which case evaluation stops with
operator.ErrUnknownOperator.
*/
package postfix
