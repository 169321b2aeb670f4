package hfsmx_test

import (
	"fmt"
	"testing"

	. "github.com/hfsmx/hfsmx"
)

// The tests drive the engine with a minimal world/sink pair: the world is a
// read-only snapshot struct, the sink records which behaviors ran and how
// often, so private-data resets are observable from the outside.

type world struct {
	alarm bool
}

type trace struct {
	runs []string
}

// countingBehavior records "name#visit" each tick, keeping the visit count
// in its private data.
type countingBehavior struct {
	name string
}

func (b countingBehavior) Update(data *StateData, sink *trace, _ *world) {
	count, _ := (*data).(int)
	count++
	*data = count
	sink.runs = append(sink.runs, fmt.Sprintf("%s#%d", b.name, count))
}

// fireAfter counts its invocations in private data and fires its target on
// the nth call within the same state visit.
type fireAfter struct {
	target Target
	n      int
	calls  *int
}

func (t fireAfter) Decide(data *StateData, _ *world) Target {
	if t.calls != nil {
		*t.calls++
	}
	count, _ := (*data).(int)
	count++
	*data = count
	if count >= t.n {
		return t.target
	}
	return Continue()
}

// neverTransition always continues, counting invocations.
type neverTransition struct {
	calls *int
}

func (t neverTransition) Decide(_ *StateData, _ *world) Target {
	if t.calls != nil {
		*t.calls++
	}
	return Continue()
}

// onAlarm fires while the world's alarm flag is set.
type onAlarm struct {
	target Target
}

func (t onAlarm) Decide(_ *StateData, w *world) Target {
	if w.alarm {
		return t.target
	}
	return Continue()
}

// Specs resolving to the transitions above.

type gotoAfter struct {
	state string
	n     int
	calls *int
}

func (s gotoAfter) Resolve(m *NameMapping) (Transition[*world], error) {
	target, ok := m.Goto(s.state)
	if !ok {
		return nil, fmt.Errorf("unknown state %q", s.state)
	}
	return fireAfter{target: target, n: s.n, calls: s.calls}, nil
}

type enterAfter struct {
	machine string
	n       int
	calls   *int
}

func (s enterAfter) Resolve(m *NameMapping) (Transition[*world], error) {
	target, ok := m.Enter(s.machine)
	if !ok {
		return nil, fmt.Errorf("unknown machine %q", s.machine)
	}
	return fireAfter{target: target, n: s.n, calls: s.calls}, nil
}

type endAfter struct {
	n     int
	calls *int
}

func (s endAfter) Resolve(*NameMapping) (Transition[*world], error) {
	return fireAfter{target: Complete(), n: s.n, calls: s.calls}, nil
}

type never struct {
	calls *int
}

func (s never) Resolve(*NameMapping) (Transition[*world], error) {
	return neverTransition{calls: s.calls}, nil
}

// alarmSpec resolves a serialized target for an onAlarm transition.
type alarmSpec struct {
	to TargetSpec
}

func (s alarmSpec) Resolve(m *NameMapping) (Transition[*world], error) {
	target, ok := m.Target(s.to)
	if !ok {
		return nil, fmt.Errorf("unknown target %+v", s.to)
	}
	return onAlarm{target: target}, nil
}

// specFn lets a test observe the NameMapping during Build.
type specFn func(m *NameMapping) (Transition[*world], error)

func (f specFn) Resolve(m *NameMapping) (Transition[*world], error) {
	return f(m)
}

// targetSpecAfter wraps a serialized target into a fire-on-nth-tick
// transition; the YAML tests decode into it.
type targetSpecAfter struct {
	to TargetSpec
	n  int
}

func (s targetSpecAfter) Resolve(m *NameMapping) (Transition[*world], error) {
	target, ok := m.Target(s.to)
	if !ok {
		return nil, fmt.Errorf("unknown target %+v", s.to)
	}
	return fireAfter{target: target, n: s.n}, nil
}

func state(name string, specs ...TransitionSpec[*world]) StateDef[*world, *trace] {
	return StateDef[*world, *trace]{
		Name:        name,
		Behavior:    countingBehavior{name: name},
		Transitions: specs,
	}
}

func machineDef(name string, states ...StateDef[*world, *trace]) MachineDef[*world, *trace] {
	return MachineDef[*world, *trace]{Name: name, States: states}
}

func build(t *testing.T, machines ...MachineDef[*world, *trace]) *Store[*world, *trace] {
	t.Helper()
	store, err := Definition[*world, *trace](machines).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return store
}
