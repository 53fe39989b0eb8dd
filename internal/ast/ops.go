package ast

import "slices"

// Element is one element of a Seq or Tuple.
type Element struct {
	Value Node
}

// TupleField is one unnamed field of a TupleStruct or TupleVariant.
type TupleField struct {
	Value Node
}

// MapOp is a sealed interface over the sub-operations of a Map.
// Only MapKey and MapValue implement it.
type MapOp interface {
	mapOp()
}

// MapKey records one Key call.
type MapKey struct {
	Key Node
}

// MapValue records one Value call.
type MapValue struct {
	Value Node
}

func (MapKey) mapOp()   {}
func (MapValue) mapOp() {}

// StructOp is a sealed interface over the sub-operations of a Struct or
// StructVariant. Only Field and Skip implement it.
type StructOp interface {
	structOp()
	key() string
}

// Field records one named field and its value.
type Field struct {
	Key   string
	Value Node
}

// Skip records a declared field that was intentionally omitted.
type Skip struct {
	Key string
}

func (Field) structOp() {}
func (Skip) structOp()  {}

func (f Field) key() string { return f.Key }
func (s Skip) key() string  { return s.Key }

// Keys returns the field keys of ops in order, skipped fields included.
func Keys(ops []StructOp) []string {
	keys := make([]string, len(ops))
	for i, op := range ops {
		keys[i] = op.key()
	}
	return keys
}

func equalElements(a, b []Element) bool {
	return slices.EqualFunc(a, b, func(x, y Element) bool {
		return Equal(x.Value, y.Value)
	})
}

func equalTupleFields(a, b []TupleField) bool {
	return slices.EqualFunc(a, b, func(x, y TupleField) bool {
		return Equal(x.Value, y.Value)
	})
}

func equalMapOps(a, b []MapOp) bool {
	return slices.EqualFunc(a, b, func(x, y MapOp) bool {
		switch x := x.(type) {
		case MapKey:
			y, ok := y.(MapKey)
			return ok && Equal(x.Key, y.Key)
		case MapValue:
			y, ok := y.(MapValue)
			return ok && Equal(x.Value, y.Value)
		default:
			return false
		}
	})
}

func equalStructOps(a, b []StructOp) bool {
	return slices.EqualFunc(a, b, func(x, y StructOp) bool {
		switch x := x.(type) {
		case Field:
			y, ok := y.(Field)
			return ok && x.Key == y.Key && Equal(x.Value, y.Value)
		case Skip:
			y, ok := y.(Skip)
			return ok && x.Key == y.Key
		default:
			return false
		}
	})
}
