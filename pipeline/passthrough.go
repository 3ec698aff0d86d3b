package pipeline

// Passthrough emits every node unchanged and stops processing it. Place it
// last so nodes no earlier stage claimed are preserved.
type Passthrough[T any] struct{}

// ProcessNode implements Processor.
func (Passthrough[T]) ProcessNode(node T, _ int, _ []T) (Outcome[T], error) {
	return Emit(false, node), nil
}
