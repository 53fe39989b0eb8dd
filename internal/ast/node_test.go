package ast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/sertree/internal/ser"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "U32", KindU32.String())
	assert.Equal(t, "StructVariant", KindStructVariant.String())
	assert.Equal(t, "Ext", KindExt.String())
	assert.Equal(t, "Kind(?)", Kind(200).String())
}

func TestKindOfEveryShape(t *testing.T) {
	tests := []struct {
		node Node
		kind Kind
	}{
		{Bool(true), KindBool},
		{I8(1), KindI8},
		{I16(1), KindI16},
		{I32(1), KindI32},
		{I64(1), KindI64},
		{U8(1), KindU8},
		{U16(1), KindU16},
		{U32(1), KindU32},
		{U64(1), KindU64},
		{F32(1), KindF32},
		{F64(1), KindF64},
		{Char('a'), KindChar},
		{Str("a"), KindStr},
		{Bytes{1}, KindBytes},
		{None{}, KindNone},
		{Some{Value: Unit{}}, KindSome},
		{Unit{}, KindUnit},
		{UnitStruct{Name: "M"}, KindUnitStruct},
		{UnitVariant{Name: "E", Variant: "A"}, KindUnitVariant},
		{NewtypeStruct{Name: "N", Value: U8(1)}, KindNewtypeStruct},
		{NewtypeVariant{Name: "E", Variant: "B", Value: U8(1)}, KindNewtypeVariant},
		{Seq{}, KindSeq},
		{Tuple{}, KindTuple},
		{TupleStruct{}, KindTupleStruct},
		{TupleVariant{}, KindTupleVariant},
		{Map{}, KindMap},
		{Struct{}, KindStruct},
		{StructVariant{}, KindStructVariant},
	}

	seen := make(map[Kind]bool)
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.node.Kind())
		})
		seen[tt.kind] = true
	}
	// Every closed shape is covered; Ext is the only open one.
	assert.Len(t, seen, int(KindExt))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"same scalar", U32(10), U32(10), true},
		{"different value", U32(10), U32(11), false},
		{"same value different width", U32(10), U64(10), false},
		{"signed vs unsigned", I8(1), U8(1), false},
		{"char vs str", Char('a'), Str("a"), false},
		{"nan equals itself", F64(math.NaN()), F64(math.NaN()), true},
		{"zero sign matters", F64(0), F64(math.Copysign(0, -1)), false},
		{"f32 vs f64", F32(1.5), F64(1.5), false},
		{"bytes", Bytes{1, 2}, Bytes{1, 2}, true},
		{"bytes differ", Bytes{1, 2}, Bytes{2, 1}, false},
		{"none vs unit", None{}, Unit{}, false},
		{"some", Some{Value: Str("x")}, Some{Value: Str("x")}, true},
		{"some vs inner", Some{Value: Str("x")}, Str("x"), false},
		{"unit struct name", UnitStruct{Name: "A"}, UnitStruct{Name: "B"}, false},
		{
			"variant index",
			UnitVariant{Name: "E", VariantIndex: 0, Variant: "A"},
			UnitVariant{Name: "E", VariantIndex: 1, Variant: "A"},
			false,
		},
		{
			"newtype struct",
			NewtypeStruct{Name: "M", Value: F64(1)},
			NewtypeStruct{Name: "M", Value: F64(1)},
			true,
		},
		{
			"seq hint",
			Seq{Len: ser.LenOf(1), Ops: []Element{{Value: U8(1)}}},
			Seq{Len: ser.NoLen, Ops: []Element{{Value: U8(1)}}},
			false,
		},
		{
			"unknown seq hints ignore n",
			Seq{Len: ser.Len{N: 5}},
			Seq{Len: ser.NoLen},
			true,
		},
		{"unknown vs known zero", Map{Len: ser.NoLen}, Map{Len: ser.LenOf(0)}, false},
		{"unknown map hints ignore n", Map{Len: ser.Len{N: 3}}, Map{Len: ser.Len{N: 4}}, true},
		{
			"seq element order",
			Seq{Ops: []Element{{Value: U8(1)}, {Value: U8(2)}}},
			Seq{Ops: []Element{{Value: U8(2)}, {Value: U8(1)}}},
			false,
		},
		{"empty ops nil vs empty", Seq{Ops: nil}, Seq{Ops: []Element{}}, true},
		{"seq vs tuple", Seq{Len: ser.LenOf(0)}, Tuple{Len: 0}, false},
		{
			"struct field order",
			Struct{Name: "S", Len: 2, Ops: []StructOp{Field{Key: "a", Value: U8(1)}, Field{Key: "b", Value: U8(2)}}},
			Struct{Name: "S", Len: 2, Ops: []StructOp{Field{Key: "b", Value: U8(2)}, Field{Key: "a", Value: U8(1)}}},
			false,
		},
		{
			"skip vs field",
			Struct{Name: "S", Len: 1, Ops: []StructOp{Skip{Key: "a"}}},
			Struct{Name: "S", Len: 1, Ops: []StructOp{Field{Key: "a", Value: Unit{}}}},
			false,
		},
		{
			"struct vs struct variant",
			Struct{Name: "S"},
			StructVariant{Name: "S"},
			false,
		},
		{
			"map entry order",
			Map{Ops: []MapOp{MapKey{Key: Str("a")}, MapValue{Value: U8(1)}}},
			Map{Ops: []MapOp{MapValue{Value: U8(1)}, MapKey{Key: Str("a")}}},
			false,
		},
		{
			"tuple variant",
			TupleVariant{Name: "E", VariantIndex: 2, Variant: "R", Len: 1, Ops: []TupleField{{Value: U16(3)}}},
			TupleVariant{Name: "E", VariantIndex: 2, Variant: "R", Len: 1, Ops: []TupleField{{Value: U16(3)}}},
			true,
		},
		{"nil nil", nil, nil, true},
		{"nil vs node", nil, Unit{}, false},
		{"nil child", Some{}, Some{}, true},
		{"nil child vs child", Some{}, Some{Value: Unit{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "equality must be symmetric")
		})
	}
}

func TestKeys(t *testing.T) {
	ops := []StructOp{
		Field{Key: "a", Value: U8(1)},
		Skip{Key: "b"},
		Field{Key: "a", Value: U8(2)},
	}
	assert.Equal(t, []string{"a", "b", "a"}, Keys(ops))
	assert.Empty(t, Keys(nil))
}

func TestEqualExtWithInterfacePayload(t *testing.T) {
	type payload = Ext[ser.Serializable]

	tests := []struct {
		name string
		a, b payload
		want bool
	}{
		{"comparable", payload{Value: ser.U8(1)}, payload{Value: ser.U8(1)}, true},
		{"comparable differ", payload{Value: ser.U8(1)}, payload{Value: ser.U8(2)}, false},
		{"slice", payload{Value: ser.Slice[ser.U8]{1}}, payload{Value: ser.Slice[ser.U8]{1}}, true},
		{"slice differ", payload{Value: ser.Slice[ser.U8]{1}}, payload{Value: ser.Slice[ser.U8]{2}}, false},
		{"bytes", payload{Value: ser.Bytes{1, 2}}, payload{Value: ser.Bytes{1, 2}}, true},
		{"different types", payload{Value: ser.Slice[ser.U8]{1}}, payload{Value: ser.U8(1)}, false},
		{"nil payloads", payload{}, payload{}, true},
		{"nil vs set", payload{}, payload{Value: ser.Bytes{1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, Equal(tt.a, tt.b))
				assert.Equal(t, tt.want, Equal(tt.b, tt.a))
			})
		})
	}
}
