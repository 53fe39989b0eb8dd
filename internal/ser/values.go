package ser

// Ready-made Serializable values for Go scalars and simple collections.
// They mirror what a value would emit for the equivalent built-in type.

type (
	Bool  bool
	I8    int8
	I16   int16
	I32   int32
	I64   int64
	U8    uint8
	U16   uint16
	U32   uint32
	U64   uint64
	F32   float32
	F64   float64
	Char  rune
	Str   string
	Bytes []byte
)

func (v Bool) Serialize(s Serializer) error  { return s.Bool(bool(v)) }
func (v I8) Serialize(s Serializer) error    { return s.I8(int8(v)) }
func (v I16) Serialize(s Serializer) error   { return s.I16(int16(v)) }
func (v I32) Serialize(s Serializer) error   { return s.I32(int32(v)) }
func (v I64) Serialize(s Serializer) error   { return s.I64(int64(v)) }
func (v U8) Serialize(s Serializer) error    { return s.U8(uint8(v)) }
func (v U16) Serialize(s Serializer) error   { return s.U16(uint16(v)) }
func (v U32) Serialize(s Serializer) error   { return s.U32(uint32(v)) }
func (v U64) Serialize(s Serializer) error   { return s.U64(uint64(v)) }
func (v F32) Serialize(s Serializer) error   { return s.F32(float32(v)) }
func (v F64) Serialize(s Serializer) error   { return s.F64(float64(v)) }
func (v Char) Serialize(s Serializer) error  { return s.Char(rune(v)) }
func (v Str) Serialize(s Serializer) error   { return s.Str(string(v)) }
func (v Bytes) Serialize(s Serializer) error { return s.Bytes([]byte(v)) }

// Unit serializes as the valueless marker.
type Unit struct{}

func (Unit) Serialize(s Serializer) error { return s.Unit() }

// Option serializes as None unless Valid, in which case it wraps Value in Some.
type Option[T Serializable] struct {
	Value T
	Valid bool
}

// Some returns a present Option.
func Some[T Serializable](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

func (o Option[T]) Serialize(s Serializer) error {
	if !o.Valid {
		return s.None()
	}
	return s.Some(o.Value)
}

// Slice serializes as a sequence with a known length.
type Slice[T Serializable] []T

func (v Slice[T]) Serialize(s Serializer) error {
	seq, err := s.Seq(LenOf(len(v)))
	if err != nil {
		return err
	}
	for _, e := range v {
		if err := seq.Element(e); err != nil {
			return err
		}
	}
	return seq.End()
}

// Array serializes as a tuple, the way fixed-size arrays are emitted.
type Array[T Serializable] []T

func (v Array[T]) Serialize(s Serializer) error {
	tup, err := s.Tuple(len(v))
	if err != nil {
		return err
	}
	for _, e := range v {
		if err := tup.Element(e); err != nil {
			return err
		}
	}
	return tup.End()
}

// Pair is one entry of Pairs.
type Pair[K, V Serializable] struct {
	Key   K
	Value V
}

// Pairs serializes as a map whose entries keep their slice order.
// Go maps iterate in random order; use Pairs when output must be stable.
type Pairs[K, V Serializable] []Pair[K, V]

func (p Pairs[K, V]) Serialize(s Serializer) error {
	m, err := s.Map(LenOf(len(p)))
	if err != nil {
		return err
	}
	for _, e := range p {
		if err := Entry(m, e.Key, e.Value); err != nil {
			return err
		}
	}
	return m.End()
}
