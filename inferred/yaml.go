package inferred

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Types are written in YAML as a scalar naming a type without children
// ("u32", "string", "unknown"), or as a mapping with a single key:
//
//	list: T
//	option: T
//	tuple: [T, ...]
//	sequence: [T, ...]
//	one-of: [T, ...]
//	all-of: [T, ...]
//	record: {name: T, ...}
//	variant: {case: T, other: null}
//	flags: [name, ...]
//	enum: [case, ...]
//	result: {ok: T, err: T}
//	resource: {id: 1, mode: borrowed}
//
// Decoding keeps one-of and all-of as written, without normalising them.

var _ yaml.Unmarshaler = (*Type)(nil)
var _ yaml.Marshaler = (*Type)(nil)

var scalarsByName = map[string]Kind{
	"chr": ChrKind,
	"str": StrKind,
}

func init() {
	for k := UnknownKind; k <= StrKind; k++ {
		scalarsByName[k.String()] = k
	}
}

func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := decodeNode(node)
	if err != nil {
		return err
	}
	*t = *decoded
	return nil
}

func (t *Type) MarshalYAML() (any, error) {
	return encodeNode(t), nil
}

func decodeNode(node *yaml.Node) (*Type, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.ScalarNode:
		kind, ok := scalarsByName[node.Value]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown type %q", node.Line, node.Value)
		}
		return &Type{Kind: kind}, nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("line %d: expected a type", node.Line)
	}
	if len(node.Content) != 2 {
		return nil, fmt.Errorf("line %d: expected a mapping with a single key", node.Line)
	}
	key, value := node.Content[0].Value, node.Content[1]

	switch key {
	case "list", "option":
		elem, err := decodeNode(value)
		if err != nil {
			return nil, err
		}
		if key == "list" {
			return List(elem), nil
		}
		return Option(elem), nil
	case "tuple", "sequence", "one-of", "all-of":
		if value.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: %s expects a list of types", value.Line, key)
		}
		elems := make([]*Type, len(value.Content))
		for i, item := range value.Content {
			elem, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		kinds := map[string]Kind{"tuple": TupleKind, "sequence": SequenceKind, "one-of": OneOfKind, "all-of": AllOfKind}
		return &Type{Kind: kinds[key], Elems: elems}, nil
	case "record", "variant":
		if value.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: %s expects a mapping", value.Line, key)
		}
		fields := make([]Field, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			f := Field{Name: value.Content[i].Value}
			if payload := value.Content[i+1]; key == "record" || payload.ShortTag() != "!!null" {
				t, err := decodeNode(payload)
				if err != nil {
					return nil, err
				}
				f.T = t
			}
			fields = append(fields, f)
		}
		if key == "record" {
			return Record(fields...), nil
		}
		return Variant(fields...), nil
	case "flags", "enum":
		var names []string
		if err := value.Decode(&names); err != nil {
			return nil, fmt.Errorf("line %d: %s expects a list of names: %w", value.Line, key, err)
		}
		if key == "flags" {
			return Flags(names...), nil
		}
		return Enum(names...), nil
	case "result":
		var arms struct {
			Ok  *yaml.Node `yaml:"ok"`
			Err *yaml.Node `yaml:"err"`
		}
		if err := value.Decode(&arms); err != nil {
			return nil, fmt.Errorf("line %d: %w", value.Line, err)
		}
		ok, err := decodeArm(arms.Ok)
		if err != nil {
			return nil, err
		}
		errType, err := decodeArm(arms.Err)
		if err != nil {
			return nil, err
		}
		return Result(ok, errType), nil
	case "resource":
		var handle struct {
			ID   uint64 `yaml:"id"`
			Mode string `yaml:"mode"`
		}
		if err := value.Decode(&handle); err != nil {
			return nil, fmt.Errorf("line %d: %w", value.Line, err)
		}
		switch handle.Mode {
		case "", Owned.String():
			return Resource(ResourceID(handle.ID), Owned), nil
		case Borrowed.String():
			return Resource(ResourceID(handle.ID), Borrowed), nil
		}
		return nil, fmt.Errorf("line %d: unknown resource mode %q", value.Line, handle.Mode)
	}
	return nil, fmt.Errorf("line %d: unknown type %q", node.Line, key)
}

func decodeArm(node *yaml.Node) (*Type, error) {
	if node == nil || node.ShortTag() == "!!null" {
		return nil, nil
	}
	return decodeNode(node)
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

// nameNode is quoted when needed, so that names such as "yes" stay strings.
func nameNode(name string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func mappingNode(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: kv}
}

func encodeNode(t *Type) *yaml.Node {
	if t == nil {
		return nullNode()
	}
	var value *yaml.Node
	key := t.Kind.String()
	switch t.Kind {
	case ListKind, OptionKind:
		value = encodeNode(t.Elem)
	case TupleKind, SequenceKind, OneOfKind, AllOfKind:
		value = &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, e := range t.Elems {
			value.Content = append(value.Content, encodeNode(e))
		}
	case RecordKind, VariantKind:
		value = mappingNode()
		for _, f := range t.Fields {
			value.Content = append(value.Content, nameNode(f.Name), encodeNode(f.T))
		}
	case FlagsKind, EnumKind:
		value = &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, n := range t.Names {
			value.Content = append(value.Content, nameNode(n))
		}
	case ResultKind:
		value = mappingNode(scalarNode("ok"), encodeNode(t.Ok), scalarNode("err"), encodeNode(t.Err))
	case ResourceKind:
		key = "resource"
		value = mappingNode(
			scalarNode("id"), scalarNode(strconv.FormatUint(uint64(t.Resource), 10)),
			scalarNode("mode"), scalarNode(t.Mode.String()),
		)
	default:
		return scalarNode(key)
	}
	return mappingNode(scalarNode(key), value)
}
