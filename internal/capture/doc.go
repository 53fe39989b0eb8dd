// Package capture records a value's calls into the ser protocol as an
// ast.Node tree.
//
// Capture hands the value a Serializer. Scalar calls become leaf nodes
// straight away. Aggregate calls return an accumulator that buffers
// sub-operations; every nested value is captured recursively before it is
// buffered, so trees are built bottom-up. End turns the buffer into the
// finished aggregate node.
//
// Capture never commits partially. If any nested value fails, the enclosing
// accumulators are dropped and the error reaches the caller of Capture
// unchanged. Protocol misuse (no top-level call, a second top-level call, an
// aggregate left open, a call after End) fails with a *ser.Error.
package capture
