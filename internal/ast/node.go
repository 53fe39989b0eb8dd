package ast

import (
	"bytes"
	"math"

	"github.com/roach88/sertree/internal/ser"
)

// Node is a sealed interface over every shape the protocol can emit.
type Node interface {
	ser.Serializable

	// Kind identifies the shape.
	Kind() Kind

	equal(o Node) bool
	render(p *printer)
}

// Kind enumerates node shapes.
type Kind uint8

const (
	KindBool Kind = iota
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindChar
	KindStr
	KindBytes
	KindNone
	KindSome
	KindUnit
	KindUnitStruct
	KindUnitVariant
	KindNewtypeStruct
	KindNewtypeVariant
	KindSeq
	KindTuple
	KindTupleStruct
	KindTupleVariant
	KindMap
	KindStruct
	KindStructVariant
	KindExt
)

var kindNames = [...]string{
	KindBool:           "Bool",
	KindI8:             "I8",
	KindI16:            "I16",
	KindI32:            "I32",
	KindI64:            "I64",
	KindU8:             "U8",
	KindU16:            "U16",
	KindU32:            "U32",
	KindU64:            "U64",
	KindF32:            "F32",
	KindF64:            "F64",
	KindChar:           "Char",
	KindStr:            "Str",
	KindBytes:          "Bytes",
	KindNone:           "None",
	KindSome:           "Some",
	KindUnit:           "Unit",
	KindUnitStruct:     "UnitStruct",
	KindUnitVariant:    "UnitVariant",
	KindNewtypeStruct:  "NewtypeStruct",
	KindNewtypeVariant: "NewtypeVariant",
	KindSeq:            "Seq",
	KindTuple:          "Tuple",
	KindTupleStruct:    "TupleStruct",
	KindTupleVariant:   "TupleVariant",
	KindMap:            "Map",
	KindStruct:         "Struct",
	KindStructVariant:  "StructVariant",
	KindExt:            "Ext",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Scalars.
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

// None is an absent optional.
type None struct{}

// Some is a present optional.
type Some struct {
	Value Node
}

// Unit is a valueless marker.
type Unit struct{}

// UnitStruct is a named valueless marker.
type UnitStruct struct {
	Name string
}

// UnitVariant is a valueless case of a tagged union.
type UnitVariant struct {
	Name         string
	VariantIndex uint32
	Variant      string
}

// NewtypeStruct is a named single-field wrapper.
type NewtypeStruct struct {
	Name  string
	Value Node
}

// NewtypeVariant is a single-field case of a tagged union.
type NewtypeVariant struct {
	Name         string
	VariantIndex uint32
	Variant      string
	Value        Node
}

// Seq is an ordered collection with an optional length hint.
type Seq struct {
	Len ser.Len
	Ops []Element
}

// Tuple is a fixed-arity ordered collection.
type Tuple struct {
	Len int
	Ops []Element
}

// TupleStruct is a named aggregate with unnamed fields.
type TupleStruct struct {
	Name string
	Len  int
	Ops  []TupleField
}

// TupleVariant is a tagged-union case shaped as a tuple struct.
type TupleVariant struct {
	Name         string
	VariantIndex uint32
	Variant      string
	Len          int
	Ops          []TupleField
}

// Map is an association collection. Ops is a flat run of MapKey and MapValue
// entries in the order they were emitted.
type Map struct {
	Len ser.Len
	Ops []MapOp
}

// Struct is a named aggregate with named fields.
type Struct struct {
	Name string
	Len  int
	Ops  []StructOp
}

// StructVariant is a tagged-union case shaped as a struct.
type StructVariant struct {
	Name         string
	VariantIndex uint32
	Variant      string
	Len          int
	Ops          []StructOp
}

func (Bool) Kind() Kind           { return KindBool }
func (I8) Kind() Kind             { return KindI8 }
func (I16) Kind() Kind            { return KindI16 }
func (I32) Kind() Kind            { return KindI32 }
func (I64) Kind() Kind            { return KindI64 }
func (U8) Kind() Kind             { return KindU8 }
func (U16) Kind() Kind            { return KindU16 }
func (U32) Kind() Kind            { return KindU32 }
func (U64) Kind() Kind            { return KindU64 }
func (F32) Kind() Kind            { return KindF32 }
func (F64) Kind() Kind            { return KindF64 }
func (Char) Kind() Kind           { return KindChar }
func (Str) Kind() Kind            { return KindStr }
func (Bytes) Kind() Kind          { return KindBytes }
func (None) Kind() Kind           { return KindNone }
func (Some) Kind() Kind           { return KindSome }
func (Unit) Kind() Kind           { return KindUnit }
func (UnitStruct) Kind() Kind     { return KindUnitStruct }
func (UnitVariant) Kind() Kind    { return KindUnitVariant }
func (NewtypeStruct) Kind() Kind  { return KindNewtypeStruct }
func (NewtypeVariant) Kind() Kind { return KindNewtypeVariant }
func (Seq) Kind() Kind            { return KindSeq }
func (Tuple) Kind() Kind          { return KindTuple }
func (TupleStruct) Kind() Kind    { return KindTupleStruct }
func (TupleVariant) Kind() Kind   { return KindTupleVariant }
func (Map) Kind() Kind            { return KindMap }
func (Struct) Kind() Kind         { return KindStruct }
func (StructVariant) Kind() Kind  { return KindStructVariant }

// Equal reports whether a and b have the same shape and, recursively, the
// same payload and sub-operations in the same order. Floats compare by bit
// pattern.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equal(b)
}

func (n Bool) equal(o Node) bool { v, ok := o.(Bool); return ok && v == n }
func (n I8) equal(o Node) bool   { v, ok := o.(I8); return ok && v == n }
func (n I16) equal(o Node) bool  { v, ok := o.(I16); return ok && v == n }
func (n I32) equal(o Node) bool  { v, ok := o.(I32); return ok && v == n }
func (n I64) equal(o Node) bool  { v, ok := o.(I64); return ok && v == n }
func (n U8) equal(o Node) bool   { v, ok := o.(U8); return ok && v == n }
func (n U16) equal(o Node) bool  { v, ok := o.(U16); return ok && v == n }
func (n U32) equal(o Node) bool  { v, ok := o.(U32); return ok && v == n }
func (n U64) equal(o Node) bool  { v, ok := o.(U64); return ok && v == n }
func (n Char) equal(o Node) bool { v, ok := o.(Char); return ok && v == n }
func (n Str) equal(o Node) bool  { v, ok := o.(Str); return ok && v == n }

func (n F32) equal(o Node) bool {
	v, ok := o.(F32)
	return ok && math.Float32bits(float32(v)) == math.Float32bits(float32(n))
}

func (n F64) equal(o Node) bool {
	v, ok := o.(F64)
	return ok && math.Float64bits(float64(v)) == math.Float64bits(float64(n))
}

func (n Bytes) equal(o Node) bool {
	v, ok := o.(Bytes)
	return ok && bytes.Equal(v, n)
}

func (None) equal(o Node) bool { _, ok := o.(None); return ok }
func (Unit) equal(o Node) bool { _, ok := o.(Unit); return ok }

func (n Some) equal(o Node) bool {
	v, ok := o.(Some)
	return ok && Equal(n.Value, v.Value)
}

func (n UnitStruct) equal(o Node) bool {
	v, ok := o.(UnitStruct)
	return ok && v.Name == n.Name
}

func (n UnitVariant) equal(o Node) bool {
	v, ok := o.(UnitVariant)
	return ok && v == n
}

func (n NewtypeStruct) equal(o Node) bool {
	v, ok := o.(NewtypeStruct)
	return ok && v.Name == n.Name && Equal(n.Value, v.Value)
}

func (n NewtypeVariant) equal(o Node) bool {
	v, ok := o.(NewtypeVariant)
	return ok && v.Name == n.Name && v.VariantIndex == n.VariantIndex &&
		v.Variant == n.Variant && Equal(n.Value, v.Value)
}

// sameLen compares length hints. Unknown hints are equal whatever N holds.
func sameLen(a, b ser.Len) bool {
	if !a.Known || !b.Known {
		return a.Known == b.Known
	}
	return a.N == b.N
}

func (n Seq) equal(o Node) bool {
	v, ok := o.(Seq)
	return ok && sameLen(v.Len, n.Len) && equalElements(n.Ops, v.Ops)
}

func (n Tuple) equal(o Node) bool {
	v, ok := o.(Tuple)
	return ok && v.Len == n.Len && equalElements(n.Ops, v.Ops)
}

func (n TupleStruct) equal(o Node) bool {
	v, ok := o.(TupleStruct)
	return ok && v.Name == n.Name && v.Len == n.Len && equalTupleFields(n.Ops, v.Ops)
}

func (n TupleVariant) equal(o Node) bool {
	v, ok := o.(TupleVariant)
	return ok && v.Name == n.Name && v.VariantIndex == n.VariantIndex &&
		v.Variant == n.Variant && v.Len == n.Len && equalTupleFields(n.Ops, v.Ops)
}

func (n Map) equal(o Node) bool {
	v, ok := o.(Map)
	return ok && sameLen(v.Len, n.Len) && equalMapOps(n.Ops, v.Ops)
}

func (n Struct) equal(o Node) bool {
	v, ok := o.(Struct)
	return ok && v.Name == n.Name && v.Len == n.Len && equalStructOps(n.Ops, v.Ops)
}

func (n StructVariant) equal(o Node) bool {
	v, ok := o.(StructVariant)
	return ok && v.Name == n.Name && v.VariantIndex == n.VariantIndex &&
		v.Variant == n.Variant && v.Len == n.Len && equalStructOps(n.Ops, v.Ops)
}
