package tree

import (
	"fmt"

	"github.com/mrcluk/sprig/feature"
)

/*
Node is a node of the tree: either a decision node, carrying the name of a
feature, a threshold and exactly two children, or a leaf, carrying the
predicted outcome and the number of training events it was built from.

Nodes are built in a single step with NewDecision or NewLeaf and never
modified afterwards.
*/
type Node struct {
	leaf bool
	// Decision nodes only.
	feature     string
	threshold   feature.Value
	left, right *Node
	// Leaves only.
	value  feature.Value
	weight int
}

// NewLeaf returns a leaf predicting the given value, built from weight events.
func NewLeaf(value feature.Value, weight int) *Node {
	return &Node{leaf: true, value: value, weight: weight}
}

/*
NewDecision returns a decision node that sends events satisfying the
threshold on the named feature to left and the rest to right. It returns
ErrMalformedTree if the feature name is empty or a child is missing.
*/
func NewDecision(featureName string, threshold feature.Value, left, right *Node) (*Node, error) {
	if featureName == "" {
		return nil, fmt.Errorf("building decision node: no feature: %w", ErrMalformedTree)
	}
	if left == nil || right == nil {
		return nil, fmt.Errorf("building decision node on %s: missing child: %w", featureName, ErrMalformedTree)
	}
	return &Node{feature: featureName, threshold: threshold, left: left, right: right}, nil
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Feature returns the feature name of a decision node, empty for leaves.
func (n *Node) Feature() string {
	return n.feature
}

// Threshold returns the threshold of a decision node, absent for leaves.
func (n *Node) Threshold() feature.Value {
	return n.threshold
}

// Left returns the child for events satisfying the threshold, nil for leaves.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the child for events not satisfying the threshold, nil for leaves.
func (n *Node) Right() *Node {
	return n.right
}

// Value returns the outcome predicted by a leaf, absent for decision nodes.
func (n *Node) Value() feature.Value {
	return n.value
}

// Weight returns the number of training events a leaf was built from.
func (n *Node) Weight() int {
	return n.weight
}

func (n *Node) String() string {
	if n.leaf {
		return fmt.Sprintf("%v (%d)", n.value, n.weight)
	}
	return fmt.Sprintf("%s ? %v", n.feature, n.threshold)
}
