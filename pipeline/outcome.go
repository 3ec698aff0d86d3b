package pipeline

// Outcome is what a processor reports for one node. It keeps the two
// independent axes apart: which nodes to emit, and whether later processors
// should still see the current node.
//
// The zero value is "no opinion".
type Outcome[T any] struct {
	nodes   []T
	cont    bool
	handled bool
}

// Pass returns the "no opinion" outcome: nothing is emitted and the node is
// offered to the next processor.
func Pass[T any]() Outcome[T] {
	return Outcome[T]{}
}

// Emit returns an outcome that appends nodes to the output. When cont is
// true later processors still receive the same input node.
func Emit[T any](cont bool, nodes ...T) Outcome[T] {
	return Outcome[T]{nodes: nodes, cont: cont, handled: true}
}

// Consume returns an outcome that emits nothing and stops processing of the
// current node, used by processors that buffer it.
func Consume[T any]() Outcome[T] {
	return Outcome[T]{handled: true}
}

// Handled reports whether the processor expressed an opinion.
func (o Outcome[T]) Handled() bool { return o.handled }

// Nodes returns the nodes to append to the output.
func (o Outcome[T]) Nodes() []T { return o.nodes }

// Continue reports whether later processors should still see the node.
// It is true for "no opinion".
func (o Outcome[T]) Continue() bool { return !o.handled || o.cont }
