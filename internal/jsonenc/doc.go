// Package jsonenc is a JSON target for the ser protocol.
//
// The mapping follows the usual conventions for push-based serializers:
//   - None, Unit and UnitStruct encode as null; Some and NewtypeStruct encode
//     their inner value.
//   - UnitVariant encodes as its variant name; the other variants encode as
//     a one-entry object keyed by the variant name.
//   - Seq, Tuple and TupleStruct encode as arrays; Map, Struct and
//     StructVariant as objects. Skipped fields are omitted.
//   - Bytes encode as an array of numbers. NaN and infinities encode as null.
//   - Map keys must be strings, chars, booleans or integers; non-string keys
//     are quoted.
//
// The Canonical option produces RFC 8785 style output: strings are NFC
// normalized and object members are ordered by UTF-16 code units.
package jsonenc
