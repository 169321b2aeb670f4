package hfsmx

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Decoder decodes YAML machine definitions. The wire shape mirrors the
// logical description grammar: a document is a sequence of machines, a
// machine is the sequence [name, state...], and a state is the sequence
// [name, behavior, transition...].
//
// Behavior and transition nodes are consumer-defined, so decoding them is
// delegated to the two hooks; both must be set.
type Decoder[W, U any] struct {
	DecodeBehavior   func(node *yaml.Node) (Behavior[W, U], error)
	DecodeTransition func(node *yaml.Node) (TransitionSpec[W], error)
}

// DecodeDefinition parses a whole definition document.
func (d *Decoder[W, U]) DecodeDefinition(data []byte) (Definition[W, U], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("hfsmx: parse definition: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, fmt.Errorf("hfsmx: empty definition document")
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("hfsmx: line %d: definition must be a sequence of machines", root.Line)
	}

	def := make(Definition[W, U], 0, len(root.Content))
	for _, node := range root.Content {
		md, err := d.decodeMachine(node)
		if err != nil {
			return nil, err
		}
		def = append(def, md)
	}
	return def, nil
}

// LoadDefinition reads and decodes a definition file.
func (d *Decoder[W, U]) LoadDefinition(path string) (Definition[W, U], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hfsmx: read definition: %w", err)
	}
	return d.DecodeDefinition(data)
}

func (d *Decoder[W, U]) decodeMachine(node *yaml.Node) (MachineDef[W, U], error) {
	var md MachineDef[W, U]
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return md, fmt.Errorf("hfsmx: line %d: machine must be [name, state...]", node.Line)
	}
	if err := node.Content[0].Decode(&md.Name); err != nil {
		return md, fmt.Errorf("hfsmx: line %d: machine name: %w", node.Content[0].Line, err)
	}
	md.States = make([]StateDef[W, U], 0, len(node.Content)-1)
	for _, sn := range node.Content[1:] {
		sd, err := d.decodeState(md.Name, sn)
		if err != nil {
			return md, err
		}
		md.States = append(md.States, sd)
	}
	return md, nil
}

func (d *Decoder[W, U]) decodeState(machineName string, node *yaml.Node) (StateDef[W, U], error) {
	var sd StateDef[W, U]
	if node.Kind != yaml.SequenceNode || len(node.Content) < 2 {
		return sd, fmt.Errorf("hfsmx: line %d: machine %q: state must be [name, behavior, transition...]",
			node.Line, machineName)
	}
	if err := node.Content[0].Decode(&sd.Name); err != nil {
		return sd, fmt.Errorf("hfsmx: line %d: state name: %w", node.Content[0].Line, err)
	}
	behavior, err := d.DecodeBehavior(node.Content[1])
	if err != nil {
		return sd, fmt.Errorf("hfsmx: line %d: machine %q state %q behavior: %w",
			node.Content[1].Line, machineName, sd.Name, err)
	}
	sd.Behavior = behavior
	sd.Transitions = make([]TransitionSpec[W], 0, len(node.Content)-2)
	for _, tn := range node.Content[2:] {
		spec, err := d.DecodeTransition(tn)
		if err != nil {
			return sd, fmt.Errorf("hfsmx: line %d: machine %q state %q transition: %w",
				tn.Line, machineName, sd.Name, err)
		}
		sd.Transitions = append(sd.Transitions, spec)
	}
	return sd, nil
}

// UnmarshalYAML decodes a TargetSpec from either the scalar "end" or a
// mapping with a goto, enter or end key.
func (t *TargetSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "end" {
			*t = TargetSpec{End: true}
			return nil
		}
		return fmt.Errorf("line %d: unknown target %q, want \"end\"", node.Line, node.Value)
	case yaml.MappingNode:
		var raw struct {
			Goto  string `yaml:"goto"`
			Enter string `yaml:"enter"`
			End   bool   `yaml:"end"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*t = TargetSpec{Goto: raw.Goto, Enter: raw.Enter, End: raw.End}
		return nil
	default:
		return fmt.Errorf("line %d: target must be a scalar or a mapping", node.Line)
	}
}
