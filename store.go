package hfsmx

import "slices"

// state is one compiled state: a behavior plus its ordered transitions.
type state[W, U any] struct {
	behavior    Behavior[W, U]
	transitions []Transition[W]
}

// machine is an ordered list of states indexed by StateHandle.
type machine[W, U any] struct {
	states []state[W, U]
}

func (m *machine[W, U]) state(h StateHandle) *state[W, U] {
	if h < 0 || int(h) >= len(m.states) {
		return nil
	}
	return &m.states[h]
}

// Store is the compact, validated description of a set of machines that may
// refer to each other. It is produced by Definition.Build, is immutable
// afterwards, and can be shared read-only by any number of Stack instances,
// concurrently included. Names are retained for introspection only; the
// interpreter works on handles alone.
type Store[W, U any] struct {
	machines     []machine[W, U]
	machineNames []string
	stateNames   [][]string
}

func (s *Store[W, U]) machine(h MachineHandle) *machine[W, U] {
	if h < 0 || int(h) >= len(s.machines) {
		return nil
	}
	return &s.machines[h]
}

// MachineNames returns the names of all machines, indexed by MachineHandle.
func (s *Store[W, U]) MachineNames() []string {
	return slices.Clone(s.machineNames)
}

// StateNames returns the state names of the given machine, indexed by
// StateHandle, or false if the machine handle is not in the store.
func (s *Store[W, U]) StateNames(h MachineHandle) ([]string, bool) {
	if h < 0 || int(h) >= len(s.stateNames) {
		return nil, false
	}
	return slices.Clone(s.stateNames[h]), true
}

// MachineName returns the name of the given machine, or false if the handle
// is not in the store.
func (s *Store[W, U]) MachineName(h MachineHandle) (string, bool) {
	if h < 0 || int(h) >= len(s.machineNames) {
		return "", false
	}
	return s.machineNames[h], true
}

// StateName returns the name of the given state, or false if either handle
// is not in the store.
func (s *Store[W, U]) StateName(m MachineHandle, h StateHandle) (string, bool) {
	if m < 0 || int(m) >= len(s.stateNames) {
		return "", false
	}
	names := s.stateNames[m]
	if h < 0 || int(h) >= len(names) {
		return "", false
	}
	return names[h], true
}

// LookupMachine returns the handle of the named machine, or false if no
// machine has that name.
func (s *Store[W, U]) LookupMachine(name string) (MachineHandle, bool) {
	for i, n := range s.machineNames {
		if n == name {
			return MachineHandle(i), true
		}
	}
	return 0, false
}
