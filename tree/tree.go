package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
)

// Tree represents a decision tree classifier. It is composed of the
// root node of the tree and the schema of the events it classifies.
type Tree struct {
	Root   *Node
	Schema *feature.Schema
}

// New takes the root Node and the schema of the events and returns a tree.
func New(root *Node, s *feature.Schema) *Tree {
	return &Tree{root, s}
}

// Classify takes an event and returns the outcome predicted by the tree
// and an error if the prediction could not be made.
func (t *Tree) Classify(e dataset.Event) (feature.Value, error) {
	if t == nil {
		return feature.Value{}, fmt.Errorf("nil tree cannot classify events")
	}
	return Classify(t.Schema, e, t.Root)
}

/*
Test takes a context.Context and a slice of events and returns three values:
  - the prediction success rate of the tree over the given events
  - the number of events for which no prediction was available
  - an error if a prediction could not be made for reasons other than the tree not
    being able to do so. If this is not nil, the other values will be 0.0 and 0
    respectively
*/
func (t *Tree) Test(ctx context.Context, events []dataset.Event) (float64, int, error) {
	if t == nil || len(events) == 0 {
		return 0.0, 0, nil
	}
	var result float64
	var errCount int
	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return 0.0, 0, err
		}
		v, err := t.Classify(e)
		if err != nil {
			return 0.0, 0, err
		}
		if v.IsAbsent() {
			errCount++
			continue
		}
		if v.Equal(e.Outcome()) {
			result += 1.0
		}
	}
	result = result / float64(len(events))
	return result, errCount, nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context, a node
// and its depth as parameters, and goes through the tree
// running the function with every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. Left
// children are always visited before right ones.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node, int) error) error {
	if t.Root == nil {
		return nil
	}
	return traverse(ctx, t.Root, 0, bottomup, f)
}

func traverse(ctx context.Context, n *Node, depth int, bottomup bool, f func(context.Context, *Node, int) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		if err = f(ctx, n, depth); err != nil {
			return err
		}
	}
	for _, c := range []*Node{n.left, n.right} {
		if c == nil {
			continue
		}
		if err = traverse(ctx, c, depth+1, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		err = f(ctx, n, depth)
	}
	return err
}

// Depth returns the number of decision nodes on the longest path from
// the root to a leaf.
func (t *Tree) Depth() int {
	var max int
	t.Traverse(context.Background(), false, func(_ context.Context, n *Node, d int) error {
		if d > max {
			max = d
		}
		return nil
	})
	return max
}

// Leaves returns the number of leaves in the tree.
func (t *Tree) Leaves() int {
	var count int
	t.Traverse(context.Background(), false, func(_ context.Context, n *Node, _ int) error {
		if n.leaf {
			count++
		}
		return nil
	})
	return count
}

func (t *Tree) String() string {
	if t.Root == nil {
		return "<empty tree>\n"
	}
	return subtreeString(t.Root, "")
}

func subtreeString(n *Node, label string) string {
	result := fmt.Sprintf("%s{ %v }\n", label, n)
	if n.leaf {
		return result
	}
	result = fmt.Sprintf("%s|\n", result)
	children := []struct {
		n     *Node
		label string
	}{
		{n.left, fmt.Sprintf("[%s %s %v] ", n.feature, conditionSymbol(n.threshold, true), n.threshold)},
		{n.right, fmt.Sprintf("[%s %s %v] ", n.feature, conditionSymbol(n.threshold, false), n.threshold)},
	}
	for i, c := range children {
		if c.n == nil {
			continue
		}
		for j, line := range strings.Split(subtreeString(c.n, c.label), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else if i == len(children)-1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}

func conditionSymbol(threshold feature.Value, satisfied bool) string {
	if threshold.IsNumber() {
		if satisfied {
			return "<="
		}
		return ">"
	}
	if satisfied {
		return "is"
	}
	return "is not"
}
