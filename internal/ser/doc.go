// Package ser defines the push-based serialization protocol shared by the
// capture and replay halves of sertree.
//
// A value describes itself by implementing Serializable and making exactly one
// top-level call on the Serializer it is handed. Scalars are a single call.
// Aggregates open a sub-serializer, feed it zero or more sub-calls and close it
// with End.
//
// Targets keep their own result: the capture adapter holds the finished tree,
// an encoder holds its output bytes. This package has no notion of format.
//
// Key design constraints:
//   - Exactly one failure kind (*Error) is defined; targets and values may
//     return any error and it is propagated unchanged.
//   - Length hints are hints only. Targets must not assume they match the
//     number of sub-calls that follow.
//   - Names, variants and field keys are identifiers; no uniqueness is implied.
package ser
