package sprig

import (
	"context"

	"github.com/mrcluk/sprig/dataset"
)

/*
StopRule is an interface wrapping the Stop method, that can be used to
decide whether a node must become a leaf instead of being split.

The Stop method takes a context, the events that reach the node and the
depth of the node and returns true when the node must be a leaf.
*/
type StopRule interface {
	Stop(ctx context.Context, events []dataset.Event, depth int) (bool, error)
}

/*
StopRuleFunc wraps a function with the Stop method signature to implement
the StopRule interface
*/
type StopRuleFunc func(ctx context.Context, events []dataset.Event, depth int) (bool, error)

// Stop invokes the StopRuleFunc with the given parameters to return its result.
func (srf StopRuleFunc) Stop(ctx context.Context, events []dataset.Event, depth int) (bool, error) {
	return srf(ctx, events, depth)
}

/*
DefaultStopRule returns a StopRule that stops when:
  - there are fewer than minSamples events
  - depth has reached maxDepth
  - all events share the same outcome
*/
func DefaultStopRule(minSamples, maxDepth int) StopRule {
	return StopRuleFunc(func(ctx context.Context, events []dataset.Event, depth int) (bool, error) {
		return len(events) < minSamples || depth >= maxDepth || dataset.IsPure(events), nil
	})
}
