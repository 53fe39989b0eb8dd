package capture

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sertree/internal/ast"
	"github.com/roach88/sertree/internal/ser"
	"github.com/roach88/sertree/internal/testutil"
	"github.com/roach88/sertree/internal/trace"
)

// assertTree fails with a rendered diff when got and want differ.
func assertTree(t *testing.T, want, got ast.Node) {
	t.Helper()
	if !ast.Equal(want, got) {
		t.Fatalf("tree mismatch (-want +got):\n%s", ast.Diff(want, got))
	}
}

func TestCaptureUnsignedScalar(t *testing.T) {
	n, err := Capture(ser.U32(10))
	require.NoError(t, err)
	assertTree(t, ast.U32(10), n)
}

func TestCaptureNamedAggregate(t *testing.T) {
	n, err := Capture(testutil.Hello{Hello: "World"})
	require.NoError(t, err)

	want := ast.Struct{Name: "Example", Len: 1, Ops: []ast.StructOp{
		ast.Field{Key: "hello", Value: ast.Str("World")},
	}}
	assertTree(t, want, n)
}

func TestCaptureFixedArrayAsTuple(t *testing.T) {
	n, err := Capture(ser.Array[ser.U64]{1, 2, 3})
	require.NoError(t, err)

	want := ast.Tuple{Len: 3, Ops: []ast.Element{
		{Value: ast.U64(1)}, {Value: ast.U64(2)}, {Value: ast.U64(3)},
	}}
	assertTree(t, want, n)
}

func TestCaptureEmptySeq(t *testing.T) {
	n, err := Capture(ser.Slice[ser.I64]{})
	require.NoError(t, err)

	seq, ok := n.(ast.Seq)
	require.True(t, ok, "got %s", n.Kind())
	assert.Equal(t, ser.LenOf(0), seq.Len)
	assert.Empty(t, seq.Ops)
}

func TestCaptureMapKeepsEntryOrder(t *testing.T) {
	v := ser.Pairs[ser.Str, ser.Str]{
		{Key: "zeta", Value: "last"},
		{Key: "alpha", Value: "first"},
	}
	n, err := Capture(v)
	require.NoError(t, err)

	want := ast.Map{Len: ser.LenOf(2), Ops: []ast.MapOp{
		ast.MapKey{Key: ast.Str("zeta")},
		ast.MapValue{Value: ast.Str("last")},
		ast.MapKey{Key: ast.Str("alpha")},
		ast.MapValue{Value: ast.Str("first")},
	}}
	assertTree(t, want, n)
}

func TestCaptureNestedExample(t *testing.T) {
	n, err := Capture(testutil.NewExample())
	require.NoError(t, err)

	want := ast.Struct{Name: "Example", Len: 5, Ops: []ast.StructOp{
		ast.Field{Key: "hello", Value: ast.Str("World")},
		ast.Field{Key: "nested", Value: ast.Struct{Name: "Nested", Len: 2, Ops: []ast.StructOp{
			ast.Field{Key: "a", Value: ast.U32(100)},
			ast.Field{Key: "b", Value: ast.U64(42)},
		}}},
		ast.Field{Key: "array", Value: ast.Tuple{Len: 3, Ops: []ast.Element{
			{Value: ast.U64(1)}, {Value: ast.U64(2)}, {Value: ast.U64(3)},
		}}},
		ast.Field{Key: "vec", Value: ast.Seq{Len: ser.LenOf(2), Ops: []ast.Element{
			{Value: ast.Str("hello")}, {Value: ast.Str("world")},
		}}},
		ast.Field{Key: "vec2", Value: ast.Seq{Len: ser.LenOf(0)}},
	}}
	assertTree(t, want, n)
}

func TestCaptureEveryVariantShape(t *testing.T) {
	n, err := Capture(testutil.AllShapes())
	require.NoError(t, err)

	want := ast.Seq{Len: ser.LenOf(4), Ops: []ast.Element{
		{Value: ast.UnitVariant{Name: "Shape", VariantIndex: 0, Variant: "Empty"}},
		{Value: ast.NewtypeVariant{Name: "Shape", VariantIndex: 1, Variant: "Circle", Value: ast.F64(1.5)}},
		{Value: ast.TupleVariant{Name: "Shape", VariantIndex: 2, Variant: "Rect", Len: 2, Ops: []ast.TupleField{
			{Value: ast.U16(3)}, {Value: ast.U16(4)},
		}}},
		{Value: ast.StructVariant{Name: "Shape", VariantIndex: 3, Variant: "Polygon", Len: 2, Ops: []ast.StructOp{
			ast.Field{Key: "sides", Value: ast.U8(6)},
			ast.Skip{Key: "label"},
		}}},
	}}
	assertTree(t, want, n)
}

func TestCaptureKitchenSink(t *testing.T) {
	n, err := Capture(testutil.Kitchen{})
	require.NoError(t, err)

	kinds := make(map[ast.Kind]bool)
	ast.Walk(n, func(n ast.Node) bool {
		kinds[n.Kind()] = true
		return true
	})
	for _, k := range []ast.Kind{
		ast.KindBool, ast.KindI8, ast.KindI16, ast.KindI32, ast.KindI64,
		ast.KindU8, ast.KindU16, ast.KindU32, ast.KindU64, ast.KindF32, ast.KindF64,
		ast.KindChar, ast.KindStr, ast.KindBytes, ast.KindNone, ast.KindSome,
		ast.KindUnit, ast.KindUnitStruct, ast.KindNewtypeStruct, ast.KindTupleStruct,
		ast.KindStruct,
	} {
		assert.True(t, kinds[k], "missing %s", k)
	}
}

func TestCaptureSkipIsRecorded(t *testing.T) {
	n, err := Capture(testutil.Shape{Case: testutil.Polygon, Sides: 3})
	require.NoError(t, err)

	sv := n.(ast.StructVariant)
	assert.Equal(t, []string{"sides", "label"}, ast.Keys(sv.Ops))
	assert.IsType(t, ast.Skip{}, sv.Ops[1])
}

func TestCaptureCopiesBytes(t *testing.T) {
	b := []byte{1, 2, 3}
	n, err := Capture(ser.Bytes(b))
	require.NoError(t, err)

	b[0] = 9
	assertTree(t, ast.Bytes{1, 2, 3}, n)
}

func TestCaptureLengthHintIsNotChecked(t *testing.T) {
	v := ser.Func(func(s ser.Serializer) error {
		seq, err := s.Seq(ser.LenOf(10))
		if err != nil {
			return err
		}
		if err := seq.Element(ser.U8(1)); err != nil {
			return err
		}
		return seq.End()
	})
	n, err := Capture(v)
	require.NoError(t, err)

	seq := n.(ast.Seq)
	assert.Equal(t, ser.LenOf(10), seq.Len)
	assert.Len(t, seq.Ops, 1)
}

func TestCaptureDuplicateKeys(t *testing.T) {
	v := ser.Func(func(s ser.Serializer) error {
		st, err := s.Struct("Dup", 2)
		if err != nil {
			return err
		}
		if err := st.Field("a", ser.U8(1)); err != nil {
			return err
		}
		if err := st.Field("a", ser.U8(2)); err != nil {
			return err
		}
		return st.End()
	})
	n, err := Capture(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, ast.Keys(n.(ast.Struct).Ops))
}

func TestCaptureReplayMatchesOriginalCalls(t *testing.T) {
	values := map[string]ser.Serializable{
		"u32":     ser.U32(10),
		"hello":   testutil.Hello{Hello: "World"},
		"example": testutil.NewExample(),
		"shapes":  testutil.AllShapes(),
		"kitchen": testutil.Kitchen{},
		"pairs":   ser.Pairs[ser.U8, ser.Option[ser.Str]]{{Key: 1, Value: ser.Some(ser.Str("x"))}, {Key: 2}},
		"nested":  testutil.Nest(ser.Unit{}, 5),
	}

	for name, v := range values {
		t.Run(name, func(t *testing.T) {
			want, err := trace.Record(v)
			require.NoError(t, err)

			n, err := Capture(v)
			require.NoError(t, err)
			got, err := trace.Record(n)
			require.NoError(t, err)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("replayed calls differ (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCaptureIsDeterministic(t *testing.T) {
	a, err := Capture(testutil.NewExample())
	require.NoError(t, err)
	b, err := Capture(testutil.NewExample())
	require.NoError(t, err)
	assertTree(t, a, b)
}

func TestCaptureRecaptureIsStable(t *testing.T) {
	first, err := Capture(testutil.AllShapes())
	require.NoError(t, err)
	second, err := Capture(first)
	require.NoError(t, err)
	assertTree(t, first, second)
}

func TestCaptureLogsAggregates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Capture(testutil.Hello{Hello: "World"}, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "captured aggregate")
	assert.Contains(t, buf.String(), "kind=Struct")
}

func TestWithLoggerNilKeepsDefault(t *testing.T) {
	_, err := Capture(ser.U8(1), WithLogger(nil))
	require.NoError(t, err)
}

func TestCaptureMaxDepth(t *testing.T) {
	_, err := Capture(testutil.Nest(ser.U8(1), 3), WithMaxDepth(3))
	require.NoError(t, err)

	_, err = Capture(testutil.Nest(ser.U8(1), 4), WithMaxDepth(3))
	require.Error(t, err)
	assert.True(t, ser.IsCustom(err))
	assert.Contains(t, err.Error(), "max depth 3")

	_, err = Capture(testutil.Nest(ser.U8(1), DefaultMaxDepth+1), WithMaxDepth(0))
	require.NoError(t, err, "zero disables the limit")
}
