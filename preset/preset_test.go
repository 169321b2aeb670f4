package preset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfsmx/hfsmx"
	"github.com/hfsmx/hfsmx/preset"
)

func TestDecodeBehavior(t *testing.T) {
	b, err := preset.DecodeBehavior("idle")
	require.NoError(t, err)
	assert.Equal(t, preset.Idle{}, b)

	b, err = preset.DecodeBehavior(map[string]any{"emit": "hello"})
	require.NoError(t, err)
	assert.Equal(t, preset.Emit{Msg: "hello"}, b)

	b, err = preset.DecodeBehavior(map[string]any{"set": map[string]any{"key": "k", "value": 1}})
	require.NoError(t, err)
	assert.Equal(t, preset.Set{Key: "k", Value: 1}, b)

	_, err = preset.DecodeBehavior("bogus")
	assert.Error(t, err)

	_, err = preset.DecodeBehavior(map[string]any{})
	assert.Error(t, err)
}

func TestDecodeTransition(t *testing.T) {
	spec, err := preset.DecodeTransition(map[string]any{"after": 3, "goto": "x"})
	require.NoError(t, err)
	assert.Equal(t, preset.TransitionSpec{After: 3, Goto: "x"}, spec)

	spec, err = preset.DecodeTransition(map[string]any{"when": "alarm", "equals": true, "enter": "combat"})
	require.NoError(t, err)
	assert.Equal(t, preset.TransitionSpec{When: "alarm", Equals: true, Enter: "combat"}, spec)
}

func TestEffects(t *testing.T) {
	bb := hfsmx.NewBlackboard()
	e := &preset.Effects{}

	e.Emit("one")
	e.Set("k", 42)
	assert.Nil(t, bb.Get("k"), "writes must stay queued until Apply")

	e.Apply(bb)
	assert.Equal(t, 42, bb.Get("k"))
	assert.Equal(t, []string{"one"}, e.Trace)

	// Apply drained the queue; a second Apply is a no-op.
	bb.Set("k", 0)
	e.Apply(bb)
	assert.Equal(t, 0, bb.Get("k"))
}

const signalDoc = `
- [signal,
    [red,    {emit: red},    {after: 1, goto: green}],
    [green,  {emit: green},  {after: 1, goto: yellow}],
    [yellow, {emit: yellow}, {after: 1, goto: red}]]
`

func TestYAMLPipeline(t *testing.T) {
	def, err := preset.NewDecoder().DecodeDefinition([]byte(signalDoc))
	require.NoError(t, err)
	store, err := def.Build()
	require.NoError(t, err)

	stack := hfsmx.NewActiveStack[preset.World, *preset.Effects]()
	bb := hfsmx.NewBlackboard()
	sink := &preset.Effects{}
	for i := 0; i < 3; i++ {
		status, err := stack.Update(store, sink, bb)
		require.NoError(t, err)
		assert.Equal(t, hfsmx.Running, status)
		sink.Apply(bb)
	}
	assert.Equal(t, []string{"red", "green", "yellow"}, sink.Trace)
}

const watcherDoc = `
- [watcher,
    [watch, idle, {when: alarm, equals: true, goto: alert}],
    [alert, {emit: "alert!"}, {after: 2, end: true}]]
`

func TestWhenTransition(t *testing.T) {
	def, err := preset.NewDecoder().DecodeDefinition([]byte(watcherDoc))
	require.NoError(t, err)
	store, err := def.Build()
	require.NoError(t, err)

	stack := hfsmx.NewActiveStack[preset.World, *preset.Effects]()
	bb := hfsmx.NewBlackboard()
	sink := &preset.Effects{}

	for i := 0; i < 2; i++ {
		_, err := stack.Update(store, sink, bb)
		require.NoError(t, err)
	}
	name, _ := stack.CurrentStateName(store)
	assert.Equal(t, "watch", name, "must hold until the alarm is raised")

	bb.Set("alarm", true)
	_, err = stack.Update(store, sink, bb)
	require.NoError(t, err)
	name, _ = stack.CurrentStateName(store)
	assert.Equal(t, "alert", name)

	// Two alert ticks, then the machine completes.
	_, err = stack.Update(store, sink, bb)
	require.NoError(t, err)
	status, err := stack.Update(store, sink, bb)
	require.NoError(t, err)
	assert.Equal(t, hfsmx.Done, status)
	assert.Equal(t, []string{"alert!", "alert!"}, sink.Trace)
}

func TestResolveErrors(t *testing.T) {
	states := func(specs ...hfsmx.TransitionSpec[preset.World]) []hfsmx.StateDef[preset.World, *preset.Effects] {
		return []hfsmx.StateDef[preset.World, *preset.Effects]{
			{Name: "a", Behavior: preset.Idle{}, Transitions: specs},
		}
	}

	// A trigger without a target.
	def := hfsmx.Definition[preset.World, *preset.Effects]{
		{Name: "m", States: states(preset.TransitionSpec{After: 1})},
	}
	_, err := def.Build()
	assert.ErrorContains(t, err, "target")

	// A target without a trigger.
	def = hfsmx.Definition[preset.World, *preset.Effects]{
		{Name: "m", States: states(preset.TransitionSpec{Goto: "a"})},
	}
	_, err = def.Build()
	assert.ErrorContains(t, err, "trigger")

	// A target naming an undeclared state.
	def = hfsmx.Definition[preset.World, *preset.Effects]{
		{Name: "m", States: states(preset.TransitionSpec{After: 1, Goto: "ghost"})},
	}
	_, err = def.Build()
	assert.ErrorContains(t, err, "ghost")
}
