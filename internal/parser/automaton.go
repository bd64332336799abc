package parser

import (
	"fmt"
	"io"
)

type stackEntry struct {
	state int
	sym   symbol
	value interface{}
}

// automaton is the shift/reduce machine. It is fed one token at a time and
// calls the rule builders on each reduction. There is no error recovery: the
// first token without an action ends the parse.
type automaton struct {
	tables *Tables
	b      *builder
	stack  []stackEntry

	accepted bool
	failed   bool
	result   interface{}

	trace  io.Writer
	prompt string
}

func newAutomaton(tables *Tables, b *builder) *automaton {
	return &automaton{
		tables: tables,
		b:      b,
		stack:  []stackEntry{{state: 0}},
	}
}

// setTrace directs a line per shift, reduce, accept and error to w, each
// prefixed with prompt. A nil w disables tracing.
func (a *automaton) setTrace(w io.Writer, prompt string) {
	a.trace = w
	a.prompt = prompt
}

func (a *automaton) tracef(format string, args ...interface{}) {
	if a.trace == nil {
		return
	}
	fmt.Fprintf(a.trace, "%s"+format+"\n", append([]interface{}{a.prompt}, args...)...)
}

// Feed advances the automaton by one token. Reductions triggered by the token
// are performed before it is shifted. Feed returns an error on a syntax error
// or when a builder fails; the automaton is then dead.
func (a *automaton) Feed(tok Token) error {
	if a.failed || a.accepted {
		return &ErrSyntax{Token: tok}
	}
	for {
		top := a.stack[len(a.stack)-1]
		act := a.tables.Action[top.state][tok.Type]
		switch act.Kind {
		case ActionShift:
			a.tracef("Shift %v", tok)
			a.stack = append(a.stack, stackEntry{state: act.Operand, sym: symbol(tok.Type), value: tok})
			return nil

		case ActionReduce:
			if err := a.reduce(a.tables.Grammar.Rules[act.Operand]); err != nil {
				a.failed = true
				a.tracef("Builder Error! %v", err)
				return err
			}

		case ActionAccept:
			a.accepted = true
			a.result = top.value
			a.tracef("Accept!")
			return nil

		default:
			a.failed = true
			a.tracef("Syntax Error! unexpected %v in state %d", tok, top.state)
			return &ErrSyntax{Token: tok, Expected: a.tables.Expected(top.state)}
		}
	}
}

func (a *automaton) reduce(r *Rule) error {
	n := len(r.RHS)
	base := len(a.stack) - n
	args := make([]interface{}, n)
	for i := 0; i < n; i++ {
		args[i] = a.stack[base+i].value
	}
	a.tracef("Reduce [%v]", r)

	var value interface{}
	if r.build != nil {
		v, err := r.build(a.b, args)
		if err != nil {
			return err
		}
		value = v
	}

	// Drop references so released fragments are not kept alive by the stack.
	for i := base; i < len(a.stack); i++ {
		a.stack[i] = stackEntry{}
	}
	a.stack = a.stack[:base]

	below := a.stack[len(a.stack)-1].state
	next := a.tables.Goto[below][r.LHS-symbol(numTokenTypes)]
	if next < 0 {
		return fmt.Errorf("no goto from state %d on %v", below, r.LHS)
	}
	a.stack = append(a.stack, stackEntry{state: next, sym: r.LHS, value: value})
	return nil
}

// Accepted reports whether the automaton reached the accept action.
func (a *automaton) Accepted() bool {
	return a.accepted
}

// Result returns the value exposed on acceptance.
func (a *automaton) Result() interface{} {
	return a.result
}

// Depth returns the number of stack entries above the initial state.
func (a *automaton) Depth() int {
	return len(a.stack) - 1
}
