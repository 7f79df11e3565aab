package yml

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	Node yaml.Node
)

// Root returns the first document child, or the node itself
func (n *Node) Root() *Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return (*Node)(n.Content[0])
	}
	return n
}

// Lookup returns the value of a mapping key, matched case-insensitively
func (n *Node) Lookup(name string) *Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if strings.EqualFold(n.Content[i].Value, name) {
			return (*Node)(n.Content[i+1])
		}
	}
	return nil
}

func (n *Node) Items(callback func(index int, node *Node) error) error {
	for i := 0; i < len(n.Content); i++ {
		if err := callback(i, (*Node)(n.Content[i])); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := callback(n.Content[i].Value, (*Node)(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// Position returns line:column of the node
func (n *Node) Position() string {
	return fmt.Sprintf("%d:%d", n.Line, n.Column)
}

// Text returns a scalar value as text
func (n *Node) Text() (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%v: expected scalar", n.Position())
	}
	if n.Tag == "!!null" {
		return "", nil
	}
	return n.Value, nil
}

// Bool returns a scalar value as bool
func (n *Node) Bool() (bool, error) {
	if n.Kind != yaml.ScalarNode {
		return false, fmt.Errorf("%v: expected boolean", n.Position())
	}
	ret, err := strconv.ParseBool(n.Value)
	if err != nil {
		return false, fmt.Errorf("%v: expected boolean, but had %q", n.Position(), n.Value)
	}
	return ret, nil
}

// Strings returns a scalar or a sequence of scalars as a slice
func (n *Node) Strings() ([]string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		text, err := n.Text()
		if err != nil || text == "" {
			return nil, err
		}
		return []string{text}, nil
	case yaml.SequenceNode:
		ret := make([]string, 0, len(n.Content))
		err := n.Items(func(_ int, item *Node) error {
			text, err := item.Text()
			if err != nil {
				return err
			}
			ret = append(ret, text)
			return nil
		})
		return ret, err
	}
	return nil, fmt.Errorf("%v: expected string or sequence of strings", n.Position())
}

func (n *Node) Interface() interface{} {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			value, _ := strconv.ParseBool(n.Value)
			return value
		case "!!null":
			return nil
		case "!!float":
			value, _ := strconv.ParseFloat(n.Value, 64)
			return value
		case "!!int":
			value, _ := strconv.Atoi(n.Value)
			return value
		default:
			return n.Value
		}
	case yaml.MappingNode:
		var aMap = make(map[string]interface{})
		for i := 0; i+1 < len(n.Content); i += 2 {
			aMap[n.Content[i].Value] = (*Node)(n.Content[i+1]).Interface()
		}
		return aMap
	case yaml.SequenceNode:
		var aSlice = make([]interface{}, 0, len(n.Content))
		for i := 0; i < len(n.Content); i++ {
			aSlice = append(aSlice, (*Node)(n.Content[i]).Interface())
		}
		return aSlice
	}
	return nil
}
