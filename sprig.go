/*
Package sprig grows binary decision trees that classify events by their
outcome, choosing at every node the split with the highest Shannon
entropy information gain.
*/
package sprig

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
	"github.com/mrcluk/sprig/tree"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Config holds the parameters for growing a tree.
type Config struct {
	// MinSamples is the number of events below which
	// a node becomes a leaf.
	MinSamples int
	// MaxDepth is the depth at which nodes become leaves.
	MaxDepth int
	// Parallel grows the two subtrees of every decision
	// node in their own goroutines.
	Parallel bool
	// StopRule decides when a node becomes a leaf. When nil,
	// DefaultStopRule(MinSamples, MaxDepth) is used.
	StopRule StopRule
	// Logger receives a debug entry for every node grown.
	// Nothing is logged when nil.
	Logger logrus.FieldLogger
}

// DefaultConfig returns a Config with MinSamples 3 and MaxDepth 10.
func DefaultConfig() Config {
	return Config{MinSamples: 3, MaxDepth: 10}
}

// Validate returns an error if the config cannot be used to grow trees.
func (c Config) Validate() error {
	if c.MinSamples < 0 {
		return fmt.Errorf("min samples must be a non-negative number, got %d", c.MinSamples)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be a non-negative number, got %d", c.MaxDepth)
	}
	return nil
}

func (c Config) stopRule() StopRule {
	if c.StopRule != nil {
		return c.StopRule
	}
	return DefaultStopRule(c.MinSamples, c.MaxDepth)
}

var discard = &logrus.Logger{Out: io.Discard, Formatter: new(logrus.TextFormatter), Hooks: make(logrus.LevelHooks), Level: logrus.PanicLevel}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return discard
}

/*
Train takes a context, a schema, a slice of events following the schema
and a config and returns the tree grown from the events. It returns an
error if the config is not valid, the events do not follow the schema or
the context is done before the tree is complete.
*/
func Train(ctx context.Context, s *feature.Schema, events []dataset.Event, c Config) (*tree.Tree, error) {
	if s == nil {
		return nil, fmt.Errorf("training tree: no schema")
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("training tree: %v", err)
	}
	c.Logger = c.logger()
	c.StopRule = c.stopRule()
	root, err := Grow(ctx, s, events, 0, c)
	if err != nil {
		return nil, err
	}
	return tree.New(root, s), nil
}

/*
Grow takes a context, a schema, a slice of events, the depth of the node
to grow and a config and returns the node with its subtree. The node is a
leaf when the stop rule says so or no split exists; otherwise it is a
decision node on the best split whose children are grown from each side
of the split at depth+1.
*/
func Grow(ctx context.Context, s *feature.Schema, events []dataset.Event, depth int, c Config) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := c.logger().WithFields(logrus.Fields{"depth": depth, "events": len(events)})
	stop, err := c.stopRule().Stop(ctx, events, depth)
	if err != nil {
		return nil, err
	}
	if stop {
		return leaf(log, events), nil
	}
	split, err := BestSplit(s, events)
	if errors.Is(err, ErrNoSplit) {
		return leaf(log, events), nil
	}
	if err != nil {
		return nil, fmt.Errorf("growing node at depth %d: %w", depth, err)
	}
	log.WithFields(logrus.Fields{
		"feature":   split.Feature,
		"threshold": split.Threshold,
		"gain":      split.Gain,
	}).Debug("splitting")
	left, right := dataset.Split(split.Index, split.Threshold, events)
	var leftNode, rightNode *tree.Node
	if c.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			leftNode, err = Grow(gctx, s, left, depth+1, c)
			return err
		})
		g.Go(func() error {
			var err error
			rightNode, err = Grow(gctx, s, right, depth+1, c)
			return err
		})
		if err = g.Wait(); err != nil {
			return nil, err
		}
	} else {
		leftNode, err = Grow(ctx, s, left, depth+1, c)
		if err != nil {
			return nil, err
		}
		rightNode, err = Grow(ctx, s, right, depth+1, c)
		if err != nil {
			return nil, err
		}
	}
	return tree.NewDecision(split.Feature, split.Threshold, leftNode, rightNode)
}

func leaf(log logrus.FieldLogger, events []dataset.Event) *tree.Node {
	n := CalculateLeaf(events)
	log.WithField("value", n.Value()).Debug("leaf")
	return n
}
