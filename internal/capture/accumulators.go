package capture

import (
	"github.com/roach88/sertree/internal/ast"
	"github.com/roach88/sertree/internal/ser"
)

// acc is the state shared by every accumulator: the owning Serializer and
// whether End has been called.
type acc struct {
	s     *Serializer
	kind  ast.Kind
	ended bool
}

func (a *acc) check() error {
	if a.s.err != nil {
		return a.s.err
	}
	if a.ended {
		return a.s.fail(ser.Customf("capture: %s used after End", a.kind))
	}
	return nil
}

func (a *acc) nested(v ser.Serializable) (ast.Node, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	return a.s.nested(v)
}

func (a *acc) finish(n ast.Node, ops int) error {
	if err := a.check(); err != nil {
		return err
	}
	a.ended = true
	a.s.open = false
	a.s.node = n
	a.s.cfg.logger.Debug("captured aggregate",
		"kind", a.kind.String(),
		"ops", ops,
		"depth", a.s.depth,
	)
	return nil
}

type seqAcc struct {
	acc
	len ser.Len
	ops []ast.Element
}

func (a *seqAcc) Element(v ser.Serializable) error {
	n, err := a.nested(v)
	if err != nil {
		return err
	}
	a.ops = append(a.ops, ast.Element{Value: n})
	return nil
}

func (a *seqAcc) End() error {
	return a.finish(ast.Seq{Len: a.len, Ops: a.ops}, len(a.ops))
}

type tupleAcc struct {
	acc
	len int
	ops []ast.Element
}

func (a *tupleAcc) Element(v ser.Serializable) error {
	n, err := a.nested(v)
	if err != nil {
		return err
	}
	a.ops = append(a.ops, ast.Element{Value: n})
	return nil
}

func (a *tupleAcc) End() error {
	return a.finish(ast.Tuple{Len: a.len, Ops: a.ops}, len(a.ops))
}

type tupleStructAcc struct {
	acc
	name string
	len  int
	ops  []ast.TupleField
}

func (a *tupleStructAcc) Field(v ser.Serializable) error {
	n, err := a.nested(v)
	if err != nil {
		return err
	}
	a.ops = append(a.ops, ast.TupleField{Value: n})
	return nil
}

func (a *tupleStructAcc) End() error {
	return a.finish(ast.TupleStruct{Name: a.name, Len: a.len, Ops: a.ops}, len(a.ops))
}

type tupleVariantAcc struct {
	acc
	name    string
	index   uint32
	variant string
	len     int
	ops     []ast.TupleField
}

func (a *tupleVariantAcc) Field(v ser.Serializable) error {
	n, err := a.nested(v)
	if err != nil {
		return err
	}
	a.ops = append(a.ops, ast.TupleField{Value: n})
	return nil
}

func (a *tupleVariantAcc) End() error {
	return a.finish(ast.TupleVariant{
		Name:         a.name,
		VariantIndex: a.index,
		Variant:      a.variant,
		Len:          a.len,
		Ops:          a.ops,
	}, len(a.ops))
}

type mapAcc struct {
	acc
	len ser.Len
	ops []ast.MapOp
}

func (a *mapAcc) Key(k ser.Serializable) error {
	n, err := a.nested(k)
	if err != nil {
		return err
	}
	a.ops = append(a.ops, ast.MapKey{Key: n})
	return nil
}

func (a *mapAcc) Value(v ser.Serializable) error {
	n, err := a.nested(v)
	if err != nil {
		return err
	}
	a.ops = append(a.ops, ast.MapValue{Value: n})
	return nil
}

func (a *mapAcc) End() error {
	return a.finish(ast.Map{Len: a.len, Ops: a.ops}, len(a.ops))
}

// fields buffers the sub-operations shared by structs and struct variants.
type fields struct {
	acc
	ops []ast.StructOp
}

func (a *fields) Field(key string, v ser.Serializable) error {
	n, err := a.nested(v)
	if err != nil {
		return err
	}
	a.ops = append(a.ops, ast.Field{Key: key, Value: n})
	return nil
}

func (a *fields) Skip(key string) error {
	if err := a.check(); err != nil {
		return err
	}
	a.ops = append(a.ops, ast.Skip{Key: key})
	return nil
}

type structAcc struct {
	fields
	name string
	len  int
}

func (a *structAcc) End() error {
	return a.finish(ast.Struct{Name: a.name, Len: a.len, Ops: a.ops}, len(a.ops))
}

type structVariantAcc struct {
	fields
	name    string
	index   uint32
	variant string
	len     int
}

func (a *structVariantAcc) End() error {
	return a.finish(ast.StructVariant{
		Name:         a.name,
		VariantIndex: a.index,
		Variant:      a.variant,
		Len:          a.len,
		Ops:          a.ops,
	}, len(a.ops))
}
