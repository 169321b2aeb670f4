// Package preset is a small, data-driven behavior and transition vocabulary
// for hfsmx, so that machine definitions authored as YAML (or any other
// format that decodes to plain maps) are runnable without writing Go.
//
// The vocabulary binds the engine's type parameters to a concrete pair: the
// world is a *hfsmx.Blackboard observed read-only, and the sink is *Effects,
// which collects emitted trace lines and queued blackboard writes for the
// host to apply between ticks.
package preset

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/hfsmx/hfsmx"
)

// World is the read-only view preset behaviors and transitions observe.
type World = *hfsmx.Blackboard

// Behavior and Transition bind the vocabulary's world and sink types.
type (
	Behavior   = hfsmx.Behavior[World, *Effects]
	Transition = hfsmx.Transition[World]
)

type write struct {
	key   string
	value any
}

// Effects is the update sink: an ordered trace of emitted messages plus
// blackboard writes queued during the tick. The host drains the trace and
// calls Apply between ticks, keeping the world stable for the duration of
// one update.
type Effects struct {
	Trace []string

	writes []write
}

// Emit appends a message to the trace.
func (e *Effects) Emit(msg string) {
	e.Trace = append(e.Trace, msg)
}

// Set queues a blackboard write.
func (e *Effects) Set(key string, value any) {
	e.writes = append(e.writes, write{key: key, value: value})
}

// Apply flushes queued writes into the blackboard, in order, and clears
// them. The trace is left for the host to drain.
func (e *Effects) Apply(bb *hfsmx.Blackboard) {
	for _, w := range e.writes {
		bb.Set(w.key, w.value)
	}
	e.writes = e.writes[:0]
}

// Idle does nothing while the state waits for a transition.
type Idle struct{}

func (Idle) Update(_ *hfsmx.StateData, _ *Effects, _ World) {}

// Emit appends Msg to the trace on every tick the state is active.
type Emit struct {
	Msg string
}

func (b Emit) Update(_ *hfsmx.StateData, sink *Effects, _ World) {
	sink.Emit(b.Msg)
}

// Set queues a blackboard write on every tick the state is active.
type Set struct {
	Key   string
	Value any
}

func (b Set) Update(_ *hfsmx.StateData, sink *Effects, _ World) {
	sink.Set(b.Key, b.Value)
}

// after fires its target once the state has been updated n times. The count
// lives in the per-transition private data, so leaving and re-entering the
// state restarts it.
type after struct {
	n      int
	target hfsmx.Target
}

func (t after) Decide(data *hfsmx.StateData, _ World) hfsmx.Target {
	count, _ := (*data).(int)
	count++
	*data = count
	if count >= t.n {
		return t.target
	}
	return hfsmx.Continue()
}

// when fires its target while the blackboard key holds the expected scalar.
type when struct {
	key    string
	equals any
	target hfsmx.Target
}

func (t when) Decide(_ *hfsmx.StateData, world World) hfsmx.Target {
	if world.Get(t.key) == t.equals {
		return t.target
	}
	return hfsmx.Continue()
}

// TransitionSpec is the serialized preset transition: a trigger (After, or
// When/Equals) plus a target (Goto, Enter or End).
type TransitionSpec struct {
	After  int    `mapstructure:"after"`
	When   string `mapstructure:"when"`
	Equals any    `mapstructure:"equals"`
	Goto   string `mapstructure:"goto"`
	Enter  string `mapstructure:"enter"`
	End    bool   `mapstructure:"end"`
}

// Resolve implements hfsmx.TransitionSpec.
func (s TransitionSpec) Resolve(mapping *hfsmx.NameMapping) (Transition, error) {
	target, ok := mapping.Target(hfsmx.TargetSpec{Goto: s.Goto, Enter: s.Enter, End: s.End})
	if !ok {
		return nil, fmt.Errorf("preset: unknown transition target (goto=%q enter=%q)", s.Goto, s.Enter)
	}
	switch {
	case s.After > 0:
		return after{n: s.After, target: target}, nil
	case s.When != "":
		return when{key: s.When, equals: s.Equals, target: target}, nil
	}
	return nil, fmt.Errorf("preset: transition needs an after or when trigger")
}

type behaviorSpec struct {
	Emit string `mapstructure:"emit"`
	Set  *struct {
		Key   string `mapstructure:"key"`
		Value any    `mapstructure:"value"`
	} `mapstructure:"set"`
}

// DecodeBehavior converts a raw behavior spec into a preset behavior.
// Accepted shapes: "idle", {emit: msg}, {set: {key: k, value: v}}.
func DecodeBehavior(raw any) (Behavior, error) {
	if s, ok := raw.(string); ok {
		if s == "idle" {
			return Idle{}, nil
		}
		return nil, fmt.Errorf("preset: unknown behavior %q", s)
	}
	var spec behaviorSpec
	if err := mapstructure.Decode(raw, &spec); err != nil {
		return nil, fmt.Errorf("preset: decode behavior: %w", err)
	}
	switch {
	case spec.Emit != "":
		return Emit{Msg: spec.Emit}, nil
	case spec.Set != nil:
		return Set{Key: spec.Set.Key, Value: spec.Set.Value}, nil
	}
	return nil, fmt.Errorf("preset: behavior must be \"idle\", emit or set")
}

// DecodeTransition converts a raw transition spec into a TransitionSpec
// ready for Build.
func DecodeTransition(raw any) (TransitionSpec, error) {
	var spec TransitionSpec
	if err := mapstructure.Decode(raw, &spec); err != nil {
		return TransitionSpec{}, fmt.Errorf("preset: decode transition: %w", err)
	}
	return spec, nil
}

// NewDecoder wires the vocabulary into the YAML definition decoder.
func NewDecoder() *hfsmx.Decoder[World, *Effects] {
	return &hfsmx.Decoder[World, *Effects]{
		DecodeBehavior: func(node *yaml.Node) (Behavior, error) {
			var raw any
			if err := node.Decode(&raw); err != nil {
				return nil, err
			}
			return DecodeBehavior(raw)
		},
		DecodeTransition: func(node *yaml.Node) (hfsmx.TransitionSpec[World], error) {
			var raw any
			if err := node.Decode(&raw); err != nil {
				return nil, err
			}
			return DecodeTransition(raw)
		},
	}
}
