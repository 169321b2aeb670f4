package hfsmx

import "fmt"

// TransitionSpec is a not-yet-resolved transition in a Definition. Resolve
// converts it into an executable Transition, using the NameMapping to turn
// state and machine names into handles. Returning an error rejects the
// whole build; a spec must never invent a handle for a name the mapping
// does not know.
type TransitionSpec[W any] interface {
	Resolve(mapping *NameMapping) (Transition[W], error)
}

// StateDef describes one named state: what it does and when it is left.
type StateDef[W, U any] struct {
	Name        string
	Behavior    Behavior[W, U]
	Transitions []TransitionSpec[W]
}

// MachineDef describes one named machine. The first state is the initial
// state.
type MachineDef[W, U any] struct {
	Name   string
	States []StateDef[W, U]
}

// Definition is the name-based description of a set of machines that may
// refer to each other, forward references included. Build compiles it into
// a Store.
type Definition[W, U any] []MachineDef[W, U]

// NameMapping resolves the names recorded during the first build pass into
// Targets. Machine names are global to the definition; state names are
// scoped to the machine whose transitions are currently being resolved, so
// the same state name may appear in several machines.
type NameMapping struct {
	machines map[string]MachineHandle
	states   []map[string]StateHandle
	current  MachineHandle
}

// Goto returns a Target moving to the named state of the current machine,
// or false if the machine declares no such state.
func (m *NameMapping) Goto(name string) (Target, bool) {
	h, ok := m.states[m.current][name]
	if !ok {
		return Target{}, false
	}
	return Target{kind: targetGoto, state: h}, true
}

// Enter returns a Target entering the named machine at its initial state,
// or false if the definition declares no such machine.
func (m *NameMapping) Enter(name string) (Target, bool) {
	h, ok := m.machines[name]
	if !ok {
		return Target{}, false
	}
	return Target{kind: targetEnter, machine: h}, true
}

// Target resolves a serialized TargetSpec.
func (m *NameMapping) Target(spec TargetSpec) (Target, bool) {
	switch {
	case spec.End:
		return Complete(), true
	case spec.Enter != "":
		return m.Enter(spec.Enter)
	case spec.Goto != "":
		return m.Goto(spec.Goto)
	}
	return Target{}, false
}

// TargetSpec is the serialized form of a transition target: exactly one of
// Goto (a state name), Enter (a machine name) or End should be set.
type TargetSpec struct {
	Goto  string
	Enter string
	End   bool
}

// Build compiles the definition into an immutable Store, replacing every
// name reference with a dense positional handle. The first pass records all
// machine and state names so forward references work; the second resolves
// every transition through the NameMapping. Any unknown or duplicate name
// fails the build, as does a machine without states: this is the single
// validation gate, and handles are assumed valid everywhere past it.
func (d Definition[W, U]) Build() (*Store[W, U], error) {
	mapping := &NameMapping{
		machines: make(map[string]MachineHandle, len(d)),
		states:   make([]map[string]StateHandle, len(d)),
	}
	store := &Store[W, U]{
		machines:     make([]machine[W, U], 0, len(d)),
		machineNames: make([]string, 0, len(d)),
		stateNames:   make([][]string, 0, len(d)),
	}

	for mi, md := range d {
		if _, dup := mapping.machines[md.Name]; dup {
			return nil, fmt.Errorf("hfsmx: duplicate machine name %q", md.Name)
		}
		if len(md.States) == 0 {
			return nil, fmt.Errorf("hfsmx: machine %q has no states", md.Name)
		}
		mapping.machines[md.Name] = MachineHandle(mi)
		store.machineNames = append(store.machineNames, md.Name)

		names := make([]string, 0, len(md.States))
		byName := make(map[string]StateHandle, len(md.States))
		for si, sd := range md.States {
			if _, dup := byName[sd.Name]; dup {
				return nil, fmt.Errorf("hfsmx: machine %q: duplicate state name %q", md.Name, sd.Name)
			}
			byName[sd.Name] = StateHandle(si)
			names = append(names, sd.Name)
		}
		mapping.states[mi] = byName
		store.stateNames = append(store.stateNames, names)
	}

	for mi, md := range d {
		mapping.current = MachineHandle(mi)
		states := make([]state[W, U], 0, len(md.States))
		for _, sd := range md.States {
			transitions := make([]Transition[W], 0, len(sd.Transitions))
			for ti, spec := range sd.Transitions {
				tr, err := spec.Resolve(mapping)
				if err != nil {
					return nil, fmt.Errorf("hfsmx: machine %q state %q transition %d: %w",
						md.Name, sd.Name, ti, err)
				}
				transitions = append(transitions, tr)
			}
			states = append(states, state[W, U]{behavior: sd.Behavior, transitions: transitions})
		}
		store.machines = append(store.machines, machine[W, U]{states: states})
	}

	return store, nil
}
