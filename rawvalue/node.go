package rawvalue

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromNode converts a decoded YAML node into a Value, keeping mapping
// entries in document order. Aliases are followed; document nodes are
// unwrapped. Scalars tagged with anything other than bool, int, float or
// null are kept as strings.
func FromNode(n *yaml.Node) (Value, error) {
	if n == nil {
		return Null(), nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return FromNode(n.Content[0])

	case yaml.AliasNode:
		return FromNode(n.Alias)

	case yaml.ScalarNode:
		return fromScalar(n)

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := FromNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Sequence(items...), nil

	case yaml.MappingNode:
		pairs := make([]Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
			}
			v, err := FromNode(vn)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: k.Value, Value: v})
		}
		return Mapping(pairs...), nil

	default:
		return Value{}, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func fromScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range: keep the digits.
			return BigInt(n.Value), nil
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Value{kind: KindFloat, f: f, str: n.Value}, nil
	default:
		return String(n.Value), nil
	}
}

// Parse decodes a YAML (or JSON) document into a Value.
func Parse(data []byte) (Value, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return Value{}, err
	}
	return FromNode(&n)
}
