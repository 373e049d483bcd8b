package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// State is a grammar state. States are numbered when the grammar tables are
// built; their names identify them in errors.
type State int

// stateNone is never entered. A Transition with Resume == stateNone keeps
// whatever state the closed construct ended in.
const stateNone State = 0

// String returns the qualified state name, e.g. "SearchRequest.filterDone".
func (s State) String() string {
	if s <= stateNone || int(s) >= len(grammar.states) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	e := grammar.states[s]
	return e.grammar + "." + e.name
}

// Action handles an element accepted by a transition. For constructed
// elements t carries the header only.
type Action func(c *container, t *ber.TLV) error

// CloseAction runs when the constructed element opened by its transition
// is closed.
type CloseAction func(c *container) error

// Transition is the outcome of accepting a tag in a state.
type Transition struct {
	Next   State
	Action Action
	// Resume is entered when the constructed element opened by this
	// transition closes.
	Resume  State
	OnClose CloseAction
	// Choice dispatches a second time on the full tag. It is used for
	// CHOICE types reached through a class wildcard.
	Choice map[byte]*Transition
}

type stateEntry struct {
	name       string
	grammar    string
	endAllowed bool
	exact      map[byte]*Transition
	byClass    map[int]*Transition
}

// grammarSet holds the states of all grammars. It is built once and only
// read afterwards.
type grammarSet struct {
	states []*stateEntry
	start  State
}

// table adds states and transitions for one message type.
type table struct {
	set  *grammarSet
	name string
}

func (g *grammarSet) table(name string) *table {
	return &table{set: g, name: name}
}

// state allocates a state. endAllowed marks states in which the enclosing
// constructed element may close.
func (t *table) state(name string, endAllowed bool) State {
	if len(t.set.states) == 0 {
		t.set.states = append(t.set.states, &stateEntry{name: "none"})
	}
	t.set.states = append(t.set.states, &stateEntry{
		name:       name,
		grammar:    t.name,
		endAllowed: endAllowed,
	})
	return State(len(t.set.states) - 1)
}

// on adds a transition for an exact tag.
func (t *table) on(from State, tag byte, tr Transition) {
	e := t.set.states[from]
	if e.exact == nil {
		e.exact = make(map[byte]*Transition)
	}
	if _, dup := e.exact[tag]; dup {
		panic(fmt.Sprintf("ldap: duplicate transition %s.%s 0x%02X", e.grammar, e.name, tag))
	}
	e.exact[tag] = &tr
}

// onClass adds a transition taken by any tag of class that has no exact
// transition.
func (t *table) onClass(from State, class int, tr Transition) {
	e := t.set.states[from]
	if e.byClass == nil {
		e.byClass = make(map[int]*Transition)
	}
	e.byClass[class] = &tr
}

// lookup finds the transition for tag in state.
func (g *grammarSet) lookup(state State, tag byte) (*Transition, error) {
	if state <= stateNone || int(state) >= len(g.states) {
		return nil, &UnexpectedTagError{State: state, Tag: tag}
	}
	e := g.states[state]
	tr := e.exact[tag]
	if tr == nil {
		tr = e.byClass[ber.TagClass(tag)]
	}
	if tr != nil && tr.Choice != nil {
		tr = tr.Choice[tag]
	}
	if tr == nil {
		return nil, &UnexpectedTagError{State: state, Tag: tag}
	}
	return tr, nil
}

func (g *grammarSet) endAllowed(state State) bool {
	if state <= stateNone || int(state) >= len(g.states) {
		return false
	}
	return g.states[state].endAllowed
}

// grammar is the complete LDAPMessage grammar.
var grammar = buildGrammar()
