// Package testutil provides hand-written Serializable values shared by the
// package tests.
//
// Each fixture emits the same calls a derived implementation would for the
// equivalent record or union, so tests can exercise every protocol shape
// without a code generator.
package testutil

import (
	"strconv"

	"github.com/roach88/sertree/internal/ser"
)

// Hello is a one-field record. Its JSON form is {"hello":"World"} when
// Hello is "World".
type Hello struct {
	Hello string
}

func (h Hello) Serialize(s ser.Serializer) error {
	st, err := s.Struct("Example", 1)
	if err != nil {
		return err
	}
	if err := st.Field("hello", ser.Str(h.Hello)); err != nil {
		return err
	}
	return st.End()
}

// Nested is a plain two-field record.
type Nested struct {
	A uint32
	B uint64
}

func (n Nested) Serialize(s ser.Serializer) error {
	st, err := s.Struct("Nested", 2)
	if err != nil {
		return err
	}
	if err := st.Field("a", ser.U32(n.A)); err != nil {
		return err
	}
	if err := st.Field("b", ser.U64(n.B)); err != nil {
		return err
	}
	return st.End()
}

// Example covers nested records, fixed-size arrays and sequences, including
// an empty one.
type Example struct {
	Hello  string
	Nested Nested
	Array  [3]uint64
	Vec    []string
	Vec2   []int64
}

// NewExample returns the reference Example value.
func NewExample() Example {
	return Example{
		Hello:  "World",
		Nested: Nested{A: 100, B: 42},
		Array:  [3]uint64{1, 2, 3},
		Vec:    []string{"hello", "world"},
		Vec2:   []int64{},
	}
}

func (e Example) Serialize(s ser.Serializer) error {
	st, err := s.Struct("Example", 5)
	if err != nil {
		return err
	}
	array := make(ser.Array[ser.U64], len(e.Array))
	for i, v := range e.Array {
		array[i] = ser.U64(v)
	}
	vec := make(ser.Slice[ser.Str], len(e.Vec))
	for i, v := range e.Vec {
		vec[i] = ser.Str(v)
	}
	vec2 := make(ser.Slice[ser.I64], len(e.Vec2))
	for i, v := range e.Vec2 {
		vec2[i] = ser.I64(v)
	}
	for _, f := range []struct {
		key string
		v   ser.Serializable
	}{
		{"hello", ser.Str(e.Hello)},
		{"nested", e.Nested},
		{"array", array},
		{"vec", vec},
		{"vec2", vec2},
	} {
		if err := st.Field(f.key, f.v); err != nil {
			return err
		}
	}
	return st.End()
}

// Meters is a newtype struct around a float.
type Meters float64

func (m Meters) Serialize(s ser.Serializer) error {
	return s.NewtypeStruct("Meters", ser.F64(m))
}

// Marker is a unit struct.
type Marker struct{}

func (Marker) Serialize(s ser.Serializer) error {
	return s.UnitStruct("Marker")
}

// Point is a tuple struct.
type Point struct {
	X, Y int32
}

func (p Point) Serialize(s ser.Serializer) error {
	ts, err := s.TupleStruct("Point", 2)
	if err != nil {
		return err
	}
	if err := ts.Field(ser.I32(p.X)); err != nil {
		return err
	}
	if err := ts.Field(ser.I32(p.Y)); err != nil {
		return err
	}
	return ts.End()
}

// Shape is a tagged union with one case of each variant shape. The Polygon
// case skips its Label field when it is empty.
type Shape struct {
	Case   ShapeCase
	Radius float64
	W, H   uint16
	Sides  uint8
	Label  string
}

// ShapeCase selects the active case of a Shape.
type ShapeCase uint32

const (
	Empty ShapeCase = iota
	Circle
	Rect
	Polygon
)

var shapeCases = [...]string{"Empty", "Circle", "Rect", "Polygon"}

func (c ShapeCase) String() string {
	if int(c) < len(shapeCases) {
		return shapeCases[c]
	}
	return "ShapeCase(" + strconv.FormatUint(uint64(c), 10) + ")"
}

func (sh Shape) Serialize(s ser.Serializer) error {
	idx, name := uint32(sh.Case), sh.Case.String()
	switch sh.Case {
	case Empty:
		return s.UnitVariant("Shape", idx, name)
	case Circle:
		return s.NewtypeVariant("Shape", idx, name, ser.F64(sh.Radius))
	case Rect:
		tv, err := s.TupleVariant("Shape", idx, name, 2)
		if err != nil {
			return err
		}
		if err := tv.Field(ser.U16(sh.W)); err != nil {
			return err
		}
		if err := tv.Field(ser.U16(sh.H)); err != nil {
			return err
		}
		return tv.End()
	case Polygon:
		sv, err := s.StructVariant("Shape", idx, name, 2)
		if err != nil {
			return err
		}
		if err := sv.Field("sides", ser.U8(sh.Sides)); err != nil {
			return err
		}
		if sh.Label == "" {
			err = sv.Skip("label")
		} else {
			err = sv.Field("label", ser.Str(sh.Label))
		}
		if err != nil {
			return err
		}
		return sv.End()
	}
	return ser.Customf("unknown shape case %d", sh.Case)
}

// AllShapes returns one Shape per case, the Polygon without a label.
func AllShapes() ser.Slice[Shape] {
	return ser.Slice[Shape]{
		{Case: Empty},
		{Case: Circle, Radius: 1.5},
		{Case: Rect, W: 3, H: 4},
		{Case: Polygon, Sides: 6},
	}
}

// Kitchen touches every scalar and wrapper shape at least once.
type Kitchen struct{}

func (Kitchen) Serialize(s ser.Serializer) error {
	st, err := s.Struct("Kitchen", 20)
	if err != nil {
		return err
	}
	for _, f := range []struct {
		key string
		v   ser.Serializable
	}{
		{"bool", ser.Bool(true)},
		{"i8", ser.I8(-8)},
		{"i16", ser.I16(-16)},
		{"i32", ser.I32(-32)},
		{"i64", ser.I64(-64)},
		{"u8", ser.U8(8)},
		{"u16", ser.U16(16)},
		{"u32", ser.U32(32)},
		{"u64", ser.U64(64)},
		{"f32", ser.F32(0.5)},
		{"f64", ser.F64(-2.25)},
		{"char", ser.Char('x')},
		{"str", ser.Str("text")},
		{"bytes", ser.Bytes{0xde, 0xad}},
		{"none", ser.Option[ser.U8]{}},
		{"some", ser.Some(ser.Str("here"))},
		{"unit", ser.Unit{}},
		{"marker", Marker{}},
		{"meters", Meters(3.5)},
		{"point", Point{X: -1, Y: 2}},
	} {
		if err := st.Field(f.key, f.v); err != nil {
			return err
		}
	}
	return st.End()
}

// Fail is a value whose serialization reports a custom error.
type Fail struct {
	Msg string
}

func (f Fail) Serialize(ser.Serializer) error {
	return ser.Custom(f.Msg)
}

// Stubborn emits a sequence and keeps going after an element fails,
// ignoring every error it is handed. A well-behaved target still reports the
// first failure.
type Stubborn struct {
	Elements []ser.Serializable
}

func (v Stubborn) Serialize(s ser.Serializer) error {
	seq, err := s.Seq(ser.LenOf(len(v.Elements)))
	if err != nil {
		return err
	}
	for _, e := range v.Elements {
		_ = seq.Element(e)
	}
	_ = seq.End()
	return nil
}

// Nest wraps v in depth levels of Some.
func Nest(v ser.Serializable, depth int) ser.Serializable {
	for range depth {
		v = ser.Some(v)
	}
	return v
}
