package ser

import "strconv"

// Serializable is implemented by any value that can describe itself through
// the protocol. Serialize must make exactly one top-level call on s.
type Serializable interface {
	Serialize(s Serializer) error
}

// Func adapts a plain function to Serializable.
type Func func(s Serializer) error

// Serialize calls f(s).
func (f Func) Serialize(s Serializer) error {
	return f(s)
}

// Serializer is the receiving side of the protocol.
type Serializer interface {
	Bool(v bool) error

	I8(v int8) error
	I16(v int16) error
	I32(v int32) error
	I64(v int64) error

	U8(v uint8) error
	U16(v uint16) error
	U32(v uint32) error
	U64(v uint64) error

	F32(v float32) error
	F64(v float64) error

	Char(v rune) error
	Str(v string) error
	Bytes(v []byte) error

	None() error
	Some(v Serializable) error

	Unit() error
	UnitStruct(name string) error
	UnitVariant(name string, index uint32, variant string) error

	NewtypeStruct(name string, v Serializable) error
	NewtypeVariant(name string, index uint32, variant string, v Serializable) error

	Seq(n Len) (SeqSerializer, error)
	Tuple(n int) (TupleSerializer, error)
	TupleStruct(name string, n int) (TupleStructSerializer, error)
	TupleVariant(name string, index uint32, variant string, n int) (TupleVariantSerializer, error)
	Map(n Len) (MapSerializer, error)
	Struct(name string, n int) (StructSerializer, error)
	StructVariant(name string, index uint32, variant string, n int) (StructVariantSerializer, error)
}

// SeqSerializer accumulates the elements of a sequence.
type SeqSerializer interface {
	Element(v Serializable) error
	End() error
}

// TupleSerializer accumulates the elements of a fixed-arity tuple.
type TupleSerializer interface {
	Element(v Serializable) error
	End() error
}

// TupleStructSerializer accumulates the unnamed fields of a tuple struct.
type TupleStructSerializer interface {
	Field(v Serializable) error
	End() error
}

// TupleVariantSerializer accumulates the unnamed fields of a tuple variant.
type TupleVariantSerializer interface {
	Field(v Serializable) error
	End() error
}

// MapSerializer accumulates keys and values. Nothing enforces that Key and
// Value calls alternate; that is the caller's responsibility.
type MapSerializer interface {
	Key(k Serializable) error
	Value(v Serializable) error
	End() error
}

// StructSerializer accumulates named fields. Skip records a declared field
// that is intentionally left out of the output.
type StructSerializer interface {
	Field(key string, v Serializable) error
	Skip(key string) error
	End() error
}

// StructVariantSerializer accumulates the named fields of a struct variant.
type StructVariantSerializer interface {
	Field(key string, v Serializable) error
	Skip(key string) error
	End() error
}

// Entry serializes one key followed by its value.
func Entry(m MapSerializer, k, v Serializable) error {
	if err := m.Key(k); err != nil {
		return err
	}
	return m.Value(v)
}

// Len is an optional length hint for sequences and maps.
type Len struct {
	N     int
	Known bool
}

// NoLen is the hint for a collection of unknown length.
var NoLen = Len{}

// LenOf returns a known length hint.
func LenOf(n int) Len {
	return Len{N: n, Known: true}
}

// Get returns the hint and whether it is known.
func (l Len) Get() (int, bool) {
	return l.N, l.Known
}

func (l Len) String() string {
	if !l.Known {
		return "?"
	}
	return strconv.Itoa(l.N)
}
