package jsonenc

import (
	"slices"
	"strconv"

	"github.com/roach88/sertree/internal/ser"
)

// array serves sequences, tuples, tuple structs and tuple variants.
type array struct {
	e      *encoder
	n      int
	suffix string
}

func (a *array) Element(v ser.Serializable) error {
	if a.n > 0 {
		a.e.buf.WriteByte(',')
	}
	a.n++
	return serialize(v, a.e)
}

func (a *array) Field(v ser.Serializable) error {
	return a.Element(v)
}

func (a *array) End() error {
	a.e.buf.WriteByte(']')
	a.e.buf.WriteString(a.suffix)
	return nil
}

// object serves maps, structs and struct variants. In canonical mode members
// are buffered and written sorted at End.
type object struct {
	e      *encoder
	n      int
	suffix string

	key     string
	pending bool

	members []member
}

type member struct {
	key   string
	value []byte
}

func (o *object) Key(k ser.Serializable) error {
	if o.pending {
		return ser.Custom("jsonenc: map key without value")
	}
	key, err := mapKey(k)
	if err != nil {
		return err
	}
	o.key, o.pending = key, true
	return nil
}

func (o *object) Value(v ser.Serializable) error {
	if !o.pending {
		return ser.Custom("jsonenc: map value without key")
	}
	o.pending = false
	return o.member(o.key, v)
}

func (o *object) Field(key string, v ser.Serializable) error {
	return o.member(key, v)
}

// Skip omits the field.
func (o *object) Skip(string) error {
	return nil
}

func (o *object) member(key string, v ser.Serializable) error {
	if o.e.canonical {
		value, err := o.e.render(v)
		if err != nil {
			return err
		}
		o.members = append(o.members, member{key: o.e.normalize(key), value: value})
		return nil
	}
	if o.n > 0 {
		o.e.buf.WriteByte(',')
	}
	o.n++
	o.e.str(key)
	o.e.buf.WriteByte(':')
	return serialize(v, o.e)
}

func (o *object) End() error {
	if o.pending {
		return ser.Custom("jsonenc: map key without value")
	}
	if o.e.canonical {
		slices.SortStableFunc(o.members, func(a, b member) int {
			return compareKeysUTF16(a.key, b.key)
		})
		for i, m := range o.members {
			if i > 0 {
				o.e.buf.WriteByte(',')
			}
			writeString(o.e.buf, m.key)
			o.e.buf.WriteByte(':')
			o.e.buf.Write(m.value)
		}
	}
	o.e.buf.WriteByte('}')
	o.e.buf.WriteString(o.suffix)
	return nil
}

// mapKey renders a map key as the text of a JSON object member name.
func mapKey(k ser.Serializable) (string, error) {
	ke := &keyEncoder{}
	if err := serialize(k, ke); err != nil {
		return "", err
	}
	if !ke.set {
		return "", errKeyMustBeString
	}
	return ke.key, nil
}

var errKeyMustBeString = ser.Custom("jsonenc: key must be a string")

// keyEncoder accepts the scalar shapes that have an obvious string form and
// rejects everything else.
type keyEncoder struct {
	key string
	set bool
}

var _ ser.Serializer = (*keyEncoder)(nil)

func (k *keyEncoder) text(s string) error {
	k.key, k.set = s, true
	return nil
}

func (k *keyEncoder) Bool(v bool) error  { return k.text(strconv.FormatBool(v)) }
func (k *keyEncoder) I8(v int8) error    { return k.text(strconv.FormatInt(int64(v), 10)) }
func (k *keyEncoder) I16(v int16) error  { return k.text(strconv.FormatInt(int64(v), 10)) }
func (k *keyEncoder) I32(v int32) error  { return k.text(strconv.FormatInt(int64(v), 10)) }
func (k *keyEncoder) I64(v int64) error  { return k.text(strconv.FormatInt(v, 10)) }
func (k *keyEncoder) U8(v uint8) error   { return k.text(strconv.FormatUint(uint64(v), 10)) }
func (k *keyEncoder) U16(v uint16) error { return k.text(strconv.FormatUint(uint64(v), 10)) }
func (k *keyEncoder) U32(v uint32) error { return k.text(strconv.FormatUint(uint64(v), 10)) }
func (k *keyEncoder) U64(v uint64) error { return k.text(strconv.FormatUint(v, 10)) }
func (k *keyEncoder) Char(v rune) error  { return k.text(string(v)) }
func (k *keyEncoder) Str(v string) error { return k.text(v) }
func (k *keyEncoder) F32(float32) error  { return errKeyMustBeString }
func (k *keyEncoder) F64(float64) error  { return errKeyMustBeString }
func (k *keyEncoder) Bytes([]byte) error { return errKeyMustBeString }
func (k *keyEncoder) None() error        { return errKeyMustBeString }
func (k *keyEncoder) Unit() error        { return errKeyMustBeString }

func (k *keyEncoder) Some(ser.Serializable) error { return errKeyMustBeString }
func (k *keyEncoder) UnitStruct(string) error     { return errKeyMustBeString }

func (k *keyEncoder) UnitVariant(_ string, _ uint32, variant string) error {
	return k.text(variant)
}

func (k *keyEncoder) NewtypeStruct(_ string, v ser.Serializable) error {
	return serialize(v, k)
}

func (k *keyEncoder) NewtypeVariant(string, uint32, string, ser.Serializable) error {
	return errKeyMustBeString
}

func (k *keyEncoder) Seq(ser.Len) (ser.SeqSerializer, error) {
	return nil, errKeyMustBeString
}

func (k *keyEncoder) Tuple(int) (ser.TupleSerializer, error) {
	return nil, errKeyMustBeString
}

func (k *keyEncoder) TupleStruct(string, int) (ser.TupleStructSerializer, error) {
	return nil, errKeyMustBeString
}

func (k *keyEncoder) TupleVariant(string, uint32, string, int) (ser.TupleVariantSerializer, error) {
	return nil, errKeyMustBeString
}

func (k *keyEncoder) Map(ser.Len) (ser.MapSerializer, error) {
	return nil, errKeyMustBeString
}

func (k *keyEncoder) Struct(string, int) (ser.StructSerializer, error) {
	return nil, errKeyMustBeString
}

func (k *keyEncoder) StructVariant(string, uint32, string, int) (ser.StructVariantSerializer, error) {
	return nil, errKeyMustBeString
}
