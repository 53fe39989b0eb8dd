package ast

import "github.com/roach88/sertree/internal/ser"

// Replay re-issues the calls recorded in n against target, in order, passing
// every stored hint through unchanged. Errors come from the target and are
// returned as is.
func Replay(n Node, target ser.Serializer) error {
	return child(n).Serialize(target)
}

// nilNode stands in for a missing child in a hand-built tree.
type nilNode struct{}

func (nilNode) Serialize(ser.Serializer) error {
	return ser.Custom("ast: cannot replay a nil node")
}

func child(n Node) ser.Serializable {
	if n == nil {
		return nilNode{}
	}
	return n
}

func (n Bool) Serialize(s ser.Serializer) error  { return s.Bool(bool(n)) }
func (n I8) Serialize(s ser.Serializer) error    { return s.I8(int8(n)) }
func (n I16) Serialize(s ser.Serializer) error   { return s.I16(int16(n)) }
func (n I32) Serialize(s ser.Serializer) error   { return s.I32(int32(n)) }
func (n I64) Serialize(s ser.Serializer) error   { return s.I64(int64(n)) }
func (n U8) Serialize(s ser.Serializer) error    { return s.U8(uint8(n)) }
func (n U16) Serialize(s ser.Serializer) error   { return s.U16(uint16(n)) }
func (n U32) Serialize(s ser.Serializer) error   { return s.U32(uint32(n)) }
func (n U64) Serialize(s ser.Serializer) error   { return s.U64(uint64(n)) }
func (n F32) Serialize(s ser.Serializer) error   { return s.F32(float32(n)) }
func (n F64) Serialize(s ser.Serializer) error   { return s.F64(float64(n)) }
func (n Char) Serialize(s ser.Serializer) error  { return s.Char(rune(n)) }
func (n Str) Serialize(s ser.Serializer) error   { return s.Str(string(n)) }
func (n Bytes) Serialize(s ser.Serializer) error { return s.Bytes([]byte(n)) }

func (None) Serialize(s ser.Serializer) error { return s.None() }
func (Unit) Serialize(s ser.Serializer) error { return s.Unit() }

func (n Some) Serialize(s ser.Serializer) error {
	return s.Some(child(n.Value))
}

func (n UnitStruct) Serialize(s ser.Serializer) error {
	return s.UnitStruct(n.Name)
}

func (n UnitVariant) Serialize(s ser.Serializer) error {
	return s.UnitVariant(n.Name, n.VariantIndex, n.Variant)
}

func (n NewtypeStruct) Serialize(s ser.Serializer) error {
	return s.NewtypeStruct(n.Name, child(n.Value))
}

func (n NewtypeVariant) Serialize(s ser.Serializer) error {
	return s.NewtypeVariant(n.Name, n.VariantIndex, n.Variant, child(n.Value))
}

func (n Seq) Serialize(s ser.Serializer) error {
	seq, err := s.Seq(n.Len)
	if err != nil {
		return err
	}
	for _, op := range n.Ops {
		if err := seq.Element(child(op.Value)); err != nil {
			return err
		}
	}
	return seq.End()
}

func (n Tuple) Serialize(s ser.Serializer) error {
	tup, err := s.Tuple(n.Len)
	if err != nil {
		return err
	}
	for _, op := range n.Ops {
		if err := tup.Element(child(op.Value)); err != nil {
			return err
		}
	}
	return tup.End()
}

func (n TupleStruct) Serialize(s ser.Serializer) error {
	ts, err := s.TupleStruct(n.Name, n.Len)
	if err != nil {
		return err
	}
	for _, op := range n.Ops {
		if err := ts.Field(child(op.Value)); err != nil {
			return err
		}
	}
	return ts.End()
}

func (n TupleVariant) Serialize(s ser.Serializer) error {
	tv, err := s.TupleVariant(n.Name, n.VariantIndex, n.Variant, n.Len)
	if err != nil {
		return err
	}
	for _, op := range n.Ops {
		if err := tv.Field(child(op.Value)); err != nil {
			return err
		}
	}
	return tv.End()
}

func (n Map) Serialize(s ser.Serializer) error {
	m, err := s.Map(n.Len)
	if err != nil {
		return err
	}
	for _, op := range n.Ops {
		switch op := op.(type) {
		case MapKey:
			err = m.Key(child(op.Key))
		case MapValue:
			err = m.Value(child(op.Value))
		default:
			err = ser.Customf("ast: unknown map op %T", op)
		}
		if err != nil {
			return err
		}
	}
	return m.End()
}

func (n Struct) Serialize(s ser.Serializer) error {
	st, err := s.Struct(n.Name, n.Len)
	if err != nil {
		return err
	}
	if err := replayStructOps(st, n.Ops); err != nil {
		return err
	}
	return st.End()
}

func (n StructVariant) Serialize(s ser.Serializer) error {
	sv, err := s.StructVariant(n.Name, n.VariantIndex, n.Variant, n.Len)
	if err != nil {
		return err
	}
	if err := replayStructOps(sv, n.Ops); err != nil {
		return err
	}
	return sv.End()
}

// fieldSink is the common method set of StructSerializer and
// StructVariantSerializer.
type fieldSink interface {
	Field(key string, v ser.Serializable) error
	Skip(key string) error
}

func replayStructOps(dst fieldSink, ops []StructOp) error {
	for _, op := range ops {
		var err error
		switch op := op.(type) {
		case Field:
			err = dst.Field(op.Key, child(op.Value))
		case Skip:
			err = dst.Skip(op.Key)
		default:
			err = ser.Customf("ast: unknown struct op %T", op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
