// Package ast provides the intermediate tree that records a value's calls into
// the ser protocol.
//
// Node is a sealed interface: only the shapes declared in this package
// implement it, and each shape must provide Kind, equality, rendering and
// replay. A Node is immutable once built. Editing means building a
// replacement subtree, see Transform.
//
// Every Node is itself ser.Serializable. Serializing a Node replays the
// recorded calls against the target, so replaying a captured tree is
// indistinguishable from serializing the original value.
//
// Key design constraints:
//   - Sub-operation order is significant and preserved exactly.
//   - Length hints are stored and replayed untouched; they need not match the
//     number of sub-operations.
//   - Duplicate field keys and unpaired map keys are representable and are
//     replayed as stored.
//   - No sharing, no back references, no cycles.
package ast
