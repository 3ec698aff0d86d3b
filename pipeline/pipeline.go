package pipeline

import (
	"errors"
	"fmt"
)

// ErrStage wraps any error returned by a processor. The whole run fails;
// no partial output is returned.
var ErrStage = errors.New("pipeline: stage failed")

// Processor is one stage of a pipeline. ProcessNode is offered every input
// node in its original form, together with its index and the full input.
type Processor[T any] interface {
	ProcessNode(node T, index int, nodes []T) (Outcome[T], error)
}

// Starter is implemented by processors that need to see the whole input
// before any node is processed.
type Starter[T any] interface {
	Start(nodes []T) error
}

// Ender is implemented by processors that buffer nodes and must flush them
// once the input is exhausted. End receives the output produced so far.
type Ender[T any] interface {
	End(output []T) (Outcome[T], error)
}

// Run applies processors to nodes in order and returns the produced output.
//
// For each input node the processors run in declared order. Every handled
// outcome appends its nodes to the output; an outcome that does not
// continue stops the chain for that node. After the last node every Ender
// gets one End call and its nodes are appended.
func Run[T any](nodes []T, processors ...Processor[T]) ([]T, error) {
	for _, p := range processors {
		if s, ok := p.(Starter[T]); ok {
			if err := s.Start(nodes); err != nil {
				return nil, stageError(p, "start", -1, err)
			}
		}
	}

	output := make([]T, 0, len(nodes))

	for i, node := range nodes {
		for _, p := range processors {
			outcome, err := p.ProcessNode(node, i, nodes)
			if err != nil {
				return nil, stageError(p, "process", i, err)
			}
			if !outcome.Handled() {
				continue
			}
			output = append(output, outcome.Nodes()...)
			if !outcome.Continue() {
				break
			}
		}
	}

	for _, p := range processors {
		e, ok := p.(Ender[T])
		if !ok {
			continue
		}
		outcome, err := e.End(output)
		if err != nil {
			return nil, stageError(p, "end", -1, err)
		}
		if outcome.Handled() {
			output = append(output, outcome.Nodes()...)
		}
	}

	return output, nil
}

func stageError(p any, phase string, index int, err error) error {
	if index >= 0 {
		return fmt.Errorf("%w: %T %s node %d: %w", ErrStage, p, phase, index, err)
	}
	return fmt.Errorf("%w: %T %s: %w", ErrStage, p, phase, err)
}
