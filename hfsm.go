package hfsmx

import "errors"

// StateHandle identifies a state within a single machine. Handles are dense
// and positional: the first declared state of a machine is handle 0.
type StateHandle int

// MachineHandle identifies a machine within a Store.
type MachineHandle int

// InitialState is the state every machine starts in when entered.
const InitialState StateHandle = 0

// StateData is the opaque mutable storage owned by a running instance: one
// box per visited state and one per transition of that state. It starts nil
// on first entry and is discarded whenever the state is left.
type StateData = any

// Behavior is what a state does while it is active. Update runs once per
// tick with the state's private data, the caller's update sink and a
// read-only view of the world; it may mutate the data and the sink but has
// no say in control flow, which belongs to the transitions.
//
// Behavior values live in the Store and are shared by every running
// instance, so they must keep all per-instance state inside data.
type Behavior[W, U any] interface {
	Update(data *StateData, sink U, world W)
}

// Transition decides whether to leave the current state. The transitions of
// a state run in declaration order every tick; the first non-Continue result
// wins and the remaining transitions are not consulted.
//
// Like Behavior, Transition values are shared across instances and must
// keep per-instance state inside data.
type Transition[W any] interface {
	Decide(data *StateData, world W) Target
}

type targetKind uint8

const (
	targetContinue targetKind = iota
	targetGoto
	targetEnter
	targetComplete
)

// Target is the outcome of a Transition decision: stay in the current state,
// go to another state of the same machine, enter a nested machine, or
// complete the current machine. Goto and Enter targets carry handles and are
// only obtainable through a NameMapping during Build, which is what keeps
// every handle that reaches the engine valid.
type Target struct {
	kind    targetKind
	state   StateHandle
	machine MachineHandle
}

// Continue keeps the current state and its private data.
func Continue() Target { return Target{kind: targetContinue} }

// Complete terminates the current machine, resuming its parent if nested.
func Complete() Target { return Target{kind: targetComplete} }

// Status reports whether a stack still has an active frame after an update.
type Status int

const (
	// Running means at least one frame is active.
	Running Status = iota
	// Done means the last frame completed. Further updates report ErrEmptyStack.
	Done
)

func (s Status) String() string {
	if s == Done {
		return "done"
	}
	return "running"
}

// Errors reported by Stack.Update. ErrBadMachine and ErrBadState mean the
// stack holds a handle the supplied store cannot resolve, which can only
// happen when a stack is driven against a store it was not built for; treat
// them as defects, not as conditions to retry.
var (
	ErrEmptyStack = errors.New("hfsmx: update on empty stack")
	ErrBadMachine = errors.New("hfsmx: machine handle not in store")
	ErrBadState   = errors.New("hfsmx: state handle not in machine")
)
