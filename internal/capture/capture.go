package capture

import (
	"bytes"

	"github.com/roach88/sertree/internal/ast"
	"github.com/roach88/sertree/internal/ser"
)

// Capture serializes v into an ast.Node. It returns exactly one node
// describing v in full, or the first error raised while capturing it.
func Capture(v ser.Serializable, opts ...Option) (ast.Node, error) {
	return newConfig(opts).capture(v, 0)
}

func (c *config) capture(v ser.Serializable, depth int) (ast.Node, error) {
	if v == nil {
		return nil, ser.Custom("capture: nil value")
	}
	if c.maxDepth > 0 && depth > c.maxDepth {
		return nil, ser.Customf("capture: nesting exceeds max depth %d", c.maxDepth)
	}

	s := &Serializer{cfg: c, depth: depth}
	if err := v.Serialize(s); err != nil {
		c.logger.Debug("capture failed", "depth", depth, "error", err)
		return nil, err
	}
	return s.result()
}

// Serializer is the receiving side used by Capture. It accepts exactly one
// top-level call and holds the resulting node.
type Serializer struct {
	cfg   *config
	depth int

	node ast.Node
	used bool
	open bool
	err  error // first failure; poisons everything after it
}

var _ ser.Serializer = (*Serializer)(nil)

func (s *Serializer) result() (ast.Node, error) {
	switch {
	case s.err != nil:
		return nil, s.err
	case s.open:
		return nil, ser.Custom("capture: aggregate was not ended")
	case s.node == nil:
		return nil, ser.Custom("capture: value made no serialization call")
	}
	return s.node, nil
}

// fail records err as the capture's outcome unless an earlier failure
// already did, and returns the recorded error.
func (s *Serializer) fail(err error) error {
	if s.err == nil {
		s.err = err
	}
	return s.err
}

func (s *Serializer) begin() error {
	if s.err != nil {
		return s.err
	}
	if s.used {
		return s.fail(ser.Custom("capture: value made more than one top-level call"))
	}
	s.used = true
	return nil
}

func (s *Serializer) leaf(n ast.Node) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.node = n
	return nil
}

func (s *Serializer) nested(v ser.Serializable) (ast.Node, error) {
	if s.err != nil {
		return nil, s.err
	}
	n, err := s.cfg.capture(v, s.depth+1)
	if err != nil {
		return nil, s.fail(err)
	}
	return n, nil
}

func (s *Serializer) Bool(v bool) error    { return s.leaf(ast.Bool(v)) }
func (s *Serializer) I8(v int8) error      { return s.leaf(ast.I8(v)) }
func (s *Serializer) I16(v int16) error    { return s.leaf(ast.I16(v)) }
func (s *Serializer) I32(v int32) error    { return s.leaf(ast.I32(v)) }
func (s *Serializer) I64(v int64) error    { return s.leaf(ast.I64(v)) }
func (s *Serializer) U8(v uint8) error     { return s.leaf(ast.U8(v)) }
func (s *Serializer) U16(v uint16) error   { return s.leaf(ast.U16(v)) }
func (s *Serializer) U32(v uint32) error   { return s.leaf(ast.U32(v)) }
func (s *Serializer) U64(v uint64) error   { return s.leaf(ast.U64(v)) }
func (s *Serializer) F32(v float32) error  { return s.leaf(ast.F32(v)) }
func (s *Serializer) F64(v float64) error  { return s.leaf(ast.F64(v)) }
func (s *Serializer) Char(v rune) error    { return s.leaf(ast.Char(v)) }
func (s *Serializer) Str(v string) error   { return s.leaf(ast.Str(v)) }
func (s *Serializer) Bytes(v []byte) error { return s.leaf(ast.Bytes(bytes.Clone(v))) }
func (s *Serializer) None() error          { return s.leaf(ast.None{}) }
func (s *Serializer) Unit() error          { return s.leaf(ast.Unit{}) }

func (s *Serializer) UnitStruct(name string) error {
	return s.leaf(ast.UnitStruct{Name: name})
}

func (s *Serializer) UnitVariant(name string, index uint32, variant string) error {
	return s.leaf(ast.UnitVariant{Name: name, VariantIndex: index, Variant: variant})
}

func (s *Serializer) Some(v ser.Serializable) error {
	if err := s.begin(); err != nil {
		return err
	}
	n, err := s.nested(v)
	if err != nil {
		return err
	}
	s.node = ast.Some{Value: n}
	return nil
}

func (s *Serializer) NewtypeStruct(name string, v ser.Serializable) error {
	if err := s.begin(); err != nil {
		return err
	}
	n, err := s.nested(v)
	if err != nil {
		return err
	}
	s.node = ast.NewtypeStruct{Name: name, Value: n}
	return nil
}

func (s *Serializer) NewtypeVariant(name string, index uint32, variant string, v ser.Serializable) error {
	if err := s.begin(); err != nil {
		return err
	}
	n, err := s.nested(v)
	if err != nil {
		return err
	}
	s.node = ast.NewtypeVariant{Name: name, VariantIndex: index, Variant: variant, Value: n}
	return nil
}

func (s *Serializer) openAcc(kind ast.Kind) (acc, error) {
	if err := s.begin(); err != nil {
		return acc{}, err
	}
	s.open = true
	return acc{s: s, kind: kind}, nil
}

func (s *Serializer) Seq(n ser.Len) (ser.SeqSerializer, error) {
	a, err := s.openAcc(ast.KindSeq)
	if err != nil {
		return nil, err
	}
	return &seqAcc{acc: a, len: n}, nil
}

func (s *Serializer) Tuple(n int) (ser.TupleSerializer, error) {
	a, err := s.openAcc(ast.KindTuple)
	if err != nil {
		return nil, err
	}
	return &tupleAcc{acc: a, len: n}, nil
}

func (s *Serializer) TupleStruct(name string, n int) (ser.TupleStructSerializer, error) {
	a, err := s.openAcc(ast.KindTupleStruct)
	if err != nil {
		return nil, err
	}
	return &tupleStructAcc{acc: a, name: name, len: n}, nil
}

func (s *Serializer) TupleVariant(name string, index uint32, variant string, n int) (ser.TupleVariantSerializer, error) {
	a, err := s.openAcc(ast.KindTupleVariant)
	if err != nil {
		return nil, err
	}
	return &tupleVariantAcc{acc: a, name: name, index: index, variant: variant, len: n}, nil
}

func (s *Serializer) Map(n ser.Len) (ser.MapSerializer, error) {
	a, err := s.openAcc(ast.KindMap)
	if err != nil {
		return nil, err
	}
	return &mapAcc{acc: a, len: n}, nil
}

func (s *Serializer) Struct(name string, n int) (ser.StructSerializer, error) {
	a, err := s.openAcc(ast.KindStruct)
	if err != nil {
		return nil, err
	}
	return &structAcc{fields: fields{acc: a}, name: name, len: n}, nil
}

func (s *Serializer) StructVariant(name string, index uint32, variant string, n int) (ser.StructVariantSerializer, error) {
	a, err := s.openAcc(ast.KindStructVariant)
	if err != nil {
		return nil, err
	}
	return &structVariantAcc{fields: fields{acc: a}, name: name, index: index, variant: variant, len: n}, nil
}
