// Package hfsmx is a hierarchical finite state machine engine whose machine
// descriptions are fully decoupled from the mutable state of any running
// instance.
//
// A machine set goes through three representations:
//
//   - Definition: the name-based description, authored in Go or decoded from
//     YAML. States and machines refer to each other by string name, forward
//     references included.
//   - Store: the compact, validated form produced by Definition.Build. Every
//     name reference has been replaced by a dense integer handle, so the
//     interpreter never resolves strings at run time. A Store is immutable
//     and can be shared by any number of instances.
//   - Stack: the running state of one instance. It holds a stack of frames,
//     one per active or suspended machine, and advances exactly one step per
//     Update call.
//
// Behaviors and transitions are the two extension points. A Behavior runs
// once per tick and writes its effects into a caller-supplied update sink; a
// Transition observes a read-only world snapshot and decides whether to stay,
// move to another state, enter a nested machine, or complete the current one.
// All of their mutable data lives in the frame and is handed to them by
// reference each call, which is what lets one Store drive many instances.
//
// Unresolvable names are rejected when Build runs, not when an instance
// trips over them. Goto and Enter targets can only be constructed through
// the NameMapping available during Build, so every handle reaching the
// engine is known to be valid.
//
// The engine is synchronous and single-threaded per Stack: one tick is one
// Update call, scheduled entirely by the caller. The runtime subpackage
// provides a ticker-driven host for callers who want one.
package hfsmx
