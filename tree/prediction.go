package tree

import (
	"fmt"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
)

// TreeError represents an error related with the structure of trees
type TreeError string

/*
ErrMalformedTree is returned when a tree does not hold the shape of a
decision tree: a decision node without a feature or without both
children.
*/
const ErrMalformedTree = TreeError("malformed tree")

/*
ErrUnknownFeature is returned when a decision node refers to a feature
that is not part of the schema used to classify an event.
*/
const ErrUnknownFeature = TreeError("malformed tree: unknown feature")

// ErrNotFound is returned by stores when no tree exists for an ID.
const ErrNotFound = TreeError("tree not found")

func (te TreeError) Error() string {
	return string(te)
}

// Is makes ErrUnknownFeature match ErrMalformedTree.
func (te TreeError) Is(target error) bool {
	t, ok := target.(TreeError)
	return ok && t == ErrMalformedTree && te == ErrUnknownFeature
}

/*
Classify takes a schema, an event and the root of a tree and descends
the tree until a leaf is reached, returning its value. At every decision
node the event's feature at the schema position of the node's feature
is checked against the node's threshold: the left child is taken when it
is satisfied, the right one otherwise.

It returns ErrUnknownFeature if a node refers to a feature outside the
schema and ErrMalformedTree if a node or child is missing.
*/
func Classify(s *feature.Schema, e dataset.Event, n *Node) (feature.Value, error) {
	if n == nil {
		return feature.Value{}, fmt.Errorf("classifying event: nil node: %w", ErrMalformedTree)
	}
	if n.leaf {
		return n.value, nil
	}
	i, ok := s.Index(n.feature)
	if !ok {
		return feature.Value{}, fmt.Errorf("classifying event: feature %q: %w", n.feature, ErrUnknownFeature)
	}
	if n.left == nil || n.right == nil {
		return feature.Value{}, fmt.Errorf("classifying event: decision on %s has a missing child: %w", n.feature, ErrMalformedTree)
	}
	if i >= e.Len() {
		return feature.Value{}, fmt.Errorf("classifying event: event has %d features, %q is at %d: %w", e.Len(), n.feature, i, feature.ErrInvalidData)
	}
	if e.Feature(i).Condition(n.threshold) {
		return Classify(s, e, n.left)
	}
	return Classify(s, e, n.right)
}
