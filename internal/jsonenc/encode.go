package jsonenc

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/roach88/sertree/internal/ser"
)

// Option configures an encoder.
type Option func(*encoder)

// Canonical enables NFC string normalization and UTF-16 ordering of object
// members.
func Canonical() Option {
	return func(e *encoder) { e.canonical = true }
}

// Marshal encodes v as compact JSON.
func Marshal(v ser.Serializable, opts ...Option) ([]byte, error) {
	e := &encoder{buf: new(bytes.Buffer)}
	for _, opt := range opts {
		opt(e)
	}
	if err := serialize(v, e); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// serialize hands v to s, rejecting a nil value.
func serialize(v ser.Serializable, s ser.Serializer) error {
	if v == nil {
		return ser.Custom("jsonenc: nil value")
	}
	return v.Serialize(s)
}

// Encoder writes JSON values to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the JSON encoding of v followed by nothing else. Nothing is
// written if encoding fails.
func (enc *Encoder) Encode(v ser.Serializable) error {
	data, err := Marshal(v, enc.opts...)
	if err != nil {
		return err
	}
	if _, err := enc.w.Write(data); err != nil {
		return fmt.Errorf("jsonenc: write: %w", err)
	}
	return nil
}

// encoder is the ser.Serializer that writes JSON into buf. Compound values
// write through e.buf at call time, so swapping buf redirects a subtree.
type encoder struct {
	buf       *bytes.Buffer
	canonical bool
}

var _ ser.Serializer = (*encoder)(nil)

func (e *encoder) str(s string) {
	writeString(e.buf, e.normalize(s))
}

func (e *encoder) writeInt(v int64) error {
	e.buf.Write(strconv.AppendInt(e.buf.AvailableBuffer(), v, 10))
	return nil
}

func (e *encoder) writeUint(v uint64) error {
	e.buf.Write(strconv.AppendUint(e.buf.AvailableBuffer(), v, 10))
	return nil
}

func (e *encoder) writeFloat(f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.buf.WriteString("null")
		return nil
	}
	e.buf.Write(appendFloat(e.buf.AvailableBuffer(), f, bits))
	return nil
}

// appendFloat formats like encoding/json: plain decimal notation for ordinary
// magnitudes, exponent notation for very small or very large ones.
func appendFloat(b []byte, f float64, bits int) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b = strconv.AppendFloat(b, f, format, -1, bits)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}

func (e *encoder) Bool(v bool) error {
	e.buf.WriteString(strconv.FormatBool(v))
	return nil
}

func (e *encoder) I8(v int8) error         { return e.writeInt(int64(v)) }
func (e *encoder) I16(v int16) error       { return e.writeInt(int64(v)) }
func (e *encoder) I32(v int32) error       { return e.writeInt(int64(v)) }
func (e *encoder) I64(v int64) error       { return e.writeInt(v) }
func (e *encoder) U8(v uint8) error        { return e.writeUint(uint64(v)) }
func (e *encoder) U16(v uint16) error      { return e.writeUint(uint64(v)) }
func (e *encoder) U32(v uint32) error      { return e.writeUint(uint64(v)) }
func (e *encoder) U64(v uint64) error      { return e.writeUint(v) }
func (e *encoder) F32(v float32) error     { return e.writeFloat(float64(v), 32) }
func (e *encoder) F64(v float64) error     { return e.writeFloat(v, 64) }
func (e *encoder) Char(v rune) error       { e.str(string(v)); return nil }
func (e *encoder) Str(v string) error      { e.str(v); return nil }
func (e *encoder) None() error             { e.buf.WriteString("null"); return nil }
func (e *encoder) Unit() error             { e.buf.WriteString("null"); return nil }
func (e *encoder) UnitStruct(string) error { e.buf.WriteString("null"); return nil }

func (e *encoder) Bytes(v []byte) error {
	e.buf.WriteByte('[')
	for i, b := range v {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.writeUint(uint64(b))
	}
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) Some(v ser.Serializable) error {
	return serialize(v, e)
}

func (e *encoder) UnitVariant(_ string, _ uint32, variant string) error {
	e.str(variant)
	return nil
}

func (e *encoder) NewtypeStruct(_ string, v ser.Serializable) error {
	return serialize(v, e)
}

// openVariant writes the opening of the one-entry object wrapping a variant.
func (e *encoder) openVariant(variant string) {
	e.buf.WriteByte('{')
	e.str(variant)
	e.buf.WriteByte(':')
}

func (e *encoder) NewtypeVariant(_ string, _ uint32, variant string, v ser.Serializable) error {
	e.openVariant(variant)
	if err := serialize(v, e); err != nil {
		return err
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) array(suffix string) *array {
	e.buf.WriteByte('[')
	return &array{e: e, suffix: suffix}
}

func (e *encoder) object(suffix string) *object {
	e.buf.WriteByte('{')
	return &object{e: e, suffix: suffix}
}

func (e *encoder) Seq(ser.Len) (ser.SeqSerializer, error) {
	return e.array(""), nil
}

func (e *encoder) Tuple(int) (ser.TupleSerializer, error) {
	return e.array(""), nil
}

func (e *encoder) TupleStruct(string, int) (ser.TupleStructSerializer, error) {
	return e.array(""), nil
}

func (e *encoder) TupleVariant(_ string, _ uint32, variant string, _ int) (ser.TupleVariantSerializer, error) {
	e.openVariant(variant)
	return e.array("}"), nil
}

func (e *encoder) Map(ser.Len) (ser.MapSerializer, error) {
	return e.object(""), nil
}

func (e *encoder) Struct(string, int) (ser.StructSerializer, error) {
	return e.object(""), nil
}

func (e *encoder) StructVariant(_ string, _ uint32, variant string, _ int) (ser.StructVariantSerializer, error) {
	e.openVariant(variant)
	return e.object("}"), nil
}

// render encodes v into a fresh buffer and returns its bytes.
func (e *encoder) render(v ser.Serializable) ([]byte, error) {
	saved := e.buf
	e.buf = new(bytes.Buffer)
	defer func() { e.buf = saved }()
	if err := serialize(v, e); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}
