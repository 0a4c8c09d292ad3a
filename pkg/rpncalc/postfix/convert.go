package postfix

import (
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/operator"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/stack"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/token"
)

// Convert returns the postfix form of an infix token sequence.
// It never fails; operator symbols are not validated until evaluation.
func Convert(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	pending := stack.New[string](len(tokens) / 2)

	for _, tok := range tokens {
		if token.IsNumber(tok) {
			out = append(out, tok)
			continue
		}

		// Single conditional pop: at most one pending operator is emitted
		// per incoming operator.
		if top, ok := pending.Peek(); ok && operator.PriorityOf(top) >= operator.PriorityOf(tok) {
			pending.Pop()
			out = append(out, top)
		}
		pending.Push(tok)
	}

	pending.Drain(func(op string) {
		out = append(out, op)
	})
	return out
}
