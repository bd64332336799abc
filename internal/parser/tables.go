package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ActionKind is the kind of a parsing table entry.
type ActionKind int

const (
	ActionError ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

func (k ActionKind) String() string {
	switch k {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table entry. Operand is the state to shift to or the
// rule to reduce by.
type Action struct {
	Kind    ActionKind
	Operand int
}

// Tables are the SLR(1) ACTION and GOTO tables of a grammar.
type Tables struct {
	Grammar *Grammar
	// Action is indexed by state and terminal.
	Action [][numTokenTypes]Action
	// Goto is indexed by state and nonterminal; -1 means no transition.
	Goto [][numNonterminals]int
}

// States returns the number of automaton states.
func (t *Tables) States() int {
	return len(t.Action)
}

// Expected lists the terminals with an action in state.
func (t *Tables) Expected(state int) []TokenType {
	var out []TokenType
	for tt, a := range t.Action[state] {
		if a.Kind != ActionError {
			out = append(out, TokenType(tt))
		}
	}
	return out
}

// ErrConflict reports a grammar that is not SLR(1).
type ErrConflict struct {
	State    int
	Terminal TokenType
	Existing Action
	New      Action
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("%v/%v conflict in state %d on %v",
		e.Existing.Kind, e.New.Kind, e.State, e.Terminal)
}

// termSet is a set of terminals.
type termSet uint64

func (s termSet) has(t TokenType) bool { return s&(1<<uint(t)) != 0 }

type lrItem struct {
	rule int
	dot  int
}

// BuildTables builds the canonical LR(0) collection of g and fills the ACTION
// table using FOLLOW sets.
func BuildTables(g *Grammar) (*Tables, error) {
	nullable, first := firstSets(g)
	follow := followSets(g, nullable, first)

	states := [][]lrItem{closure(g, []lrItem{{rule: 0, dot: 0}})}
	index := map[string]int{itemsKey(states[0]): 0}
	var trans []map[symbol]int

	for s := 0; s < len(states); s++ {
		trans = append(trans, make(map[symbol]int))
		for sym := symbol(0); sym < symbolEnd; sym++ {
			next := gotoItems(g, states[s], sym)
			if len(next) == 0 {
				continue
			}
			key := itemsKey(next)
			id, ok := index[key]
			if !ok {
				id = len(states)
				states = append(states, next)
				index[key] = id
			}
			trans[s][sym] = id
		}
	}

	t := &Tables{
		Grammar: g,
		Action:  make([][numTokenTypes]Action, len(states)),
		Goto:    make([][numNonterminals]int, len(states)),
	}
	for s, items := range states {
		for i := range t.Goto[s] {
			t.Goto[s][i] = -1
		}
		for sym, to := range trans[s] {
			if !sym.terminal() {
				t.Goto[s][sym-symbol(numTokenTypes)] = to
			}
		}
		for _, it := range items {
			r := g.Rules[it.rule]
			if it.dot < len(r.RHS) {
				sym := r.RHS[it.dot]
				if sym.terminal() {
					if err := t.set(s, TokenType(sym), Action{ActionShift, trans[s][sym]}); err != nil {
						return nil, err
					}
				}
				continue
			}
			if it.rule == 0 {
				if err := t.set(s, TokenEOF, Action{ActionAccept, 0}); err != nil {
					return nil, err
				}
				continue
			}
			for tt := TokenType(0); tt < numTokenTypes; tt++ {
				if !follow[r.LHS].has(tt) {
					continue
				}
				if err := t.set(s, tt, Action{ActionReduce, r.ID}); err != nil {
					return nil, err
				}
			}
		}
	}
	return t, nil
}

func mustBuildTables(g *Grammar) *Tables {
	t, err := BuildTables(g)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tables) set(state int, tt TokenType, a Action) error {
	cur := t.Action[state][tt]
	if cur.Kind != ActionError && cur != a {
		return &ErrConflict{State: state, Terminal: tt, Existing: cur, New: a}
	}
	t.Action[state][tt] = a
	return nil
}

// firstSets computes which nonterminals derive the empty string and the
// FIRST set of every nonterminal.
func firstSets(g *Grammar) (map[symbol]bool, map[symbol]termSet) {
	nullable := make(map[symbol]bool)
	first := make(map[symbol]termSet)
	for changed := true; changed; {
		changed = false
		for _, r := range g.Rules {
			set, null := firstOf(r.RHS, nullable, first)
			if first[r.LHS]|set != first[r.LHS] {
				first[r.LHS] |= set
				changed = true
			}
			if null && !nullable[r.LHS] {
				nullable[r.LHS] = true
				changed = true
			}
		}
	}
	return nullable, first
}

// firstOf returns FIRST of a symbol sequence and whether it is nullable.
func firstOf(seq []symbol, nullable map[symbol]bool, first map[symbol]termSet) (termSet, bool) {
	var set termSet
	for _, sym := range seq {
		if sym.terminal() {
			return set | 1<<uint(sym), false
		}
		set |= first[sym]
		if !nullable[sym] {
			return set, false
		}
	}
	return set, true
}

func followSets(g *Grammar, nullable map[symbol]bool, first map[symbol]termSet) map[symbol]termSet {
	follow := map[symbol]termSet{ntAccept: 1 << uint(TokenEOF)}
	for changed := true; changed; {
		changed = false
		for _, r := range g.Rules {
			for i, sym := range r.RHS {
				if sym.terminal() {
					continue
				}
				set, null := firstOf(r.RHS[i+1:], nullable, first)
				if null {
					set |= follow[r.LHS]
				}
				if follow[sym]|set != follow[sym] {
					follow[sym] |= set
					changed = true
				}
			}
		}
	}
	return follow
}

func closure(g *Grammar, kernel []lrItem) []lrItem {
	seen := make(map[lrItem]bool, len(kernel))
	items := append([]lrItem(nil), kernel...)
	for _, it := range items {
		seen[it] = true
	}
	for i := 0; i < len(items); i++ {
		r := g.Rules[items[i].rule]
		if items[i].dot >= len(r.RHS) {
			continue
		}
		sym := r.RHS[items[i].dot]
		if sym.terminal() {
			continue
		}
		for _, pr := range g.byLHS[sym] {
			it := lrItem{rule: pr.ID}
			if !seen[it] {
				seen[it] = true
				items = append(items, it)
			}
		}
	}
	sort.Slice(items, func(a, b int) bool {
		if items[a].rule != items[b].rule {
			return items[a].rule < items[b].rule
		}
		return items[a].dot < items[b].dot
	})
	return items
}

func gotoItems(g *Grammar, items []lrItem, sym symbol) []lrItem {
	var kernel []lrItem
	for _, it := range items {
		r := g.Rules[it.rule]
		if it.dot < len(r.RHS) && r.RHS[it.dot] == sym {
			kernel = append(kernel, lrItem{rule: it.rule, dot: it.dot + 1})
		}
	}
	if len(kernel) == 0 {
		return nil
	}
	return closure(g, kernel)
}

func itemsKey(items []lrItem) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(strconv.Itoa(it.rule))
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(it.dot))
		sb.WriteByte(' ')
	}
	return sb.String()
}

var (
	geoJSONGrammar = newGeoJSONGrammar()
	geoJSONTables  = mustBuildTables(geoJSONGrammar)
)
