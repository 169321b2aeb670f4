package hfsmx

// stateFrame is the mutable data of the active state within a frame: its
// private box plus one box per transition. The transition slots are
// allocated on the state's first update and the whole stateFrame is
// replaced, not reused, whenever the state changes.
type stateFrame struct {
	handle      StateHandle
	data        StateData
	transitions []StateData
}

func newStateFrame(h StateHandle) stateFrame {
	return stateFrame{handle: h}
}

// updateState runs one interpreter step for a state: the behavior first,
// then the transitions in declaration order until one decides to move.
func updateState[W, U any](f *stateFrame, def *state[W, U], sink U, world W) Target {
	def.behavior.Update(&f.data, sink, world)
	if f.transitions == nil {
		f.transitions = make([]StateData, len(def.transitions))
	}
	for i, tr := range def.transitions {
		if target := tr.Decide(&f.transitions[i], world); target.kind != targetContinue {
			return target
		}
	}
	return Continue()
}

// frame records one active or suspended machine on the stack.
type frame struct {
	machine MachineHandle
	state   stateFrame
}

// updateFrame steps the frame's current state and applies a Goto locally:
// moving within a machine swaps in a fresh stateFrame, discarding all
// private data, and is not a completion of the machine.
func updateFrame[W, U any](f *frame, def *machine[W, U], sink U, world W) (Target, error) {
	st := def.state(f.state.handle)
	if st == nil {
		return Target{}, ErrBadState
	}
	target := updateState(&f.state, st, sink, world)
	if target.kind == targetGoto {
		f.state = newStateFrame(target.state)
	}
	return target, nil
}

// Stack is the running state of one hierarchical machine instance: an
// ordered sequence of frames whose last element is the active machine,
// with every other frame suspended exactly as it was left.
//
// A Stack is exclusively owned by one logical caller. The Store it runs
// against may be shared freely, but concurrent Update calls on the same
// Stack must be serialized by the caller.
type Stack[W, U any] struct {
	frames []frame
}

// NewStack returns a stack with no active machine. Call Enter, or use
// NewActiveStack, before the first Update.
func NewStack[W, U any]() *Stack[W, U] {
	return &Stack[W, U]{}
}

// NewActiveStack returns a stack already running machine 0 at its initial
// state.
func NewActiveStack[W, U any]() *Stack[W, U] {
	s := &Stack[W, U]{frames: make([]frame, 0, 1)}
	s.Enter(0)
	return s
}

// Enter pushes a new frame running machine h at its initial state. Any
// previously active frame is suspended until h completes.
func (s *Stack[W, U]) Enter(h MachineHandle) {
	s.frames = append(s.frames, frame{machine: h, state: newStateFrame(InitialState)})
}

// Depth returns the number of frames on the stack; 0 means not running.
func (s *Stack[W, U]) Depth() int {
	return len(s.frames)
}

// CurrentStateName returns the name of the active frame's state, or false
// if the stack is empty or the handle is unknown to the store. For
// introspection only.
func (s *Stack[W, U]) CurrentStateName(store *Store[W, U]) (string, bool) {
	if len(s.frames) == 0 {
		return "", false
	}
	top := &s.frames[len(s.frames)-1]
	return store.StateName(top.machine, top.state.handle)
}

// CurrentMachineName returns the name of the active frame's machine, or
// false if the stack is empty or the handle is unknown to the store.
func (s *Stack[W, U]) CurrentMachineName(store *Store[W, U]) (string, bool) {
	if len(s.frames) == 0 {
		return "", false
	}
	return store.MachineName(s.frames[len(s.frames)-1].machine)
}

// Update drives one tick: it runs the active state's behavior, evaluates
// its transitions in order, and applies the outcome to the stack. Entering
// a nested machine suspends the current frame mid-step; it resumes from
// behavior execution on its own next Update after the child completes, so
// no state is skipped and the parent never runs twice in one tick.
//
// The returned Status is only meaningful when the error is nil. Calling
// Update on an empty stack is an error, not a no-op; treat a prior Done as
// terminal.
func (s *Stack[W, U]) Update(store *Store[W, U], sink U, world W) (Status, error) {
	if len(s.frames) == 0 {
		return Running, ErrEmptyStack
	}
	top := &s.frames[len(s.frames)-1]
	def := store.machine(top.machine)
	if def == nil {
		return Running, ErrBadMachine
	}
	target, err := updateFrame(top, def, sink, world)
	if err != nil {
		return Running, err
	}
	switch target.kind {
	case targetEnter:
		s.Enter(target.machine)
		return Running, nil
	case targetComplete:
		s.frames = s.frames[:len(s.frames)-1]
		if len(s.frames) == 0 {
			return Done, nil
		}
		return Running, nil
	default:
		// Continue and Goto both keep the depth unchanged.
		return Running, nil
	}
}
