package json

import (
	"encoding/json"
	"fmt"

	"github.com/mrcluk/sprig/feature"
	"github.com/mrcluk/sprig/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Node
	// and returns a slice of bytes with the subtree
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct{}

type node struct {
	Feature   string         `json:"feature,omitempty"`
	Threshold *feature.Value `json:"threshold,omitempty"`
	Left      *node          `json:"left,omitempty"`
	Right     *node          `json:"right,omitempty"`
	Value     *feature.Value `json:"value,omitempty"`
	Weight    int            `json:"weight,omitempty"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that encodes a node and
its whole subtree as nested JSON objects:
  - decision nodes have "feature", "threshold", "left" and "right" properties
  - leaves have a "value" property (null when absent) and a "weight"
*/
func NewNodeEncodeDecoder() NodeEncodeDecoder {
	return nodeEncodeDecoder{}
}

func (nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	jn, err := toJSONNode(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jn)
}

func (nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decoding node: no data: %w", tree.ErrMalformedTree)
	}
	var jn *node
	err := json.Unmarshal(data, &jn)
	if err != nil {
		return nil, err
	}
	return jn.toNode()
}

func toJSONNode(n *tree.Node) (*node, error) {
	if n == nil {
		return nil, fmt.Errorf("encoding node: nil node: %w", tree.ErrMalformedTree)
	}
	if n.IsLeaf() {
		v := n.Value()
		return &node{Value: &v, Weight: n.Weight()}, nil
	}
	left, err := toJSONNode(n.Left())
	if err != nil {
		return nil, err
	}
	right, err := toJSONNode(n.Right())
	if err != nil {
		return nil, err
	}
	th := n.Threshold()
	return &node{Feature: n.Feature(), Threshold: &th, Left: left, Right: right}, nil
}

func (jn *node) toNode() (*tree.Node, error) {
	if jn == nil {
		return nil, fmt.Errorf("decoding node: missing node: %w", tree.ErrMalformedTree)
	}
	if jn.Feature == "" {
		var v feature.Value
		if jn.Value != nil {
			v = *jn.Value
		}
		return tree.NewLeaf(v, jn.Weight), nil
	}
	if jn.Threshold == nil {
		return nil, fmt.Errorf("decoding decision node on %s: missing threshold: %w", jn.Feature, tree.ErrMalformedTree)
	}
	left, err := jn.Left.toNode()
	if err != nil {
		return nil, err
	}
	right, err := jn.Right.toNode()
	if err != nil {
		return nil, err
	}
	return tree.NewDecision(jn.Feature, *jn.Threshold, left, right)
}
