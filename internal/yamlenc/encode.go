// Package yamlenc is a YAML target for the ser protocol. It builds a
// yaml.v3 node tree from the calls it receives and marshals that tree.
//
// The mapping mirrors jsonenc: optionals and newtype structs are transparent,
// unit shapes are null, unit variants are their variant name, other variants
// are a one-entry mapping keyed by the variant name, and skipped fields are
// omitted. Map keys may be any node.
package yamlenc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sertree/internal/ser"
)

const indent = 2

// Marshal encodes v as a YAML document.
func Marshal(v ser.Serializable) ([]byte, error) {
	n, err := Encode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("yamlenc: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamlenc: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode builds the YAML node for v.
func Encode(v ser.Serializable) (*yaml.Node, error) {
	if v == nil {
		return nil, ser.Custom("yamlenc: nil value")
	}
	b := &builder{}
	if err := v.Serialize(b); err != nil {
		return nil, err
	}
	if b.node == nil {
		return nil, ser.Custom("yamlenc: value made no serialization call")
	}
	return b.node, nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func str(s string) *yaml.Node { return scalar("!!str", s) }

func null() *yaml.Node { return scalar("!!null", "null") }

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// variant wraps n in a one-entry mapping keyed by the variant name.
func variant(name string, n *yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{str(name), n}}
}

// builder is the ser.Serializer that produces one yaml.Node.
type builder struct {
	node *yaml.Node
}

var _ ser.Serializer = (*builder)(nil)

func (b *builder) set(n *yaml.Node) error {
	if b.node != nil {
		return ser.Custom("yamlenc: value made more than one top-level call")
	}
	b.node = n
	return nil
}

func (b *builder) Bool(v bool) error {
	return b.set(scalar("!!bool", strconv.FormatBool(v)))
}

func (b *builder) I8(v int8) error {
	return b.set(scalar("!!int", strconv.FormatInt(int64(v), 10)))
}

func (b *builder) I16(v int16) error {
	return b.set(scalar("!!int", strconv.FormatInt(int64(v), 10)))
}

func (b *builder) I32(v int32) error {
	return b.set(scalar("!!int", strconv.FormatInt(int64(v), 10)))
}

func (b *builder) I64(v int64) error {
	return b.set(scalar("!!int", strconv.FormatInt(v, 10)))
}

func (b *builder) U8(v uint8) error {
	return b.set(scalar("!!int", strconv.FormatUint(uint64(v), 10)))
}

func (b *builder) U16(v uint16) error {
	return b.set(scalar("!!int", strconv.FormatUint(uint64(v), 10)))
}

func (b *builder) U32(v uint32) error {
	return b.set(scalar("!!int", strconv.FormatUint(uint64(v), 10)))
}

func (b *builder) U64(v uint64) error {
	return b.set(scalar("!!int", strconv.FormatUint(v, 10)))
}

func (b *builder) F32(v float32) error {
	return b.set(scalar("!!float", formatFloat(float64(v), 32)))
}

func (b *builder) F64(v float64) error {
	return b.set(scalar("!!float", formatFloat(v, 64)))
}

func (b *builder) Char(v rune) error {
	return b.set(str(string(v)))
}

func (b *builder) Str(v string) error {
	return b.set(str(v))
}

func (b *builder) None() error {
	return b.set(null())
}

func (b *builder) Unit() error {
	return b.set(null())
}

func (b *builder) Bytes(v []byte) error {
	return b.set(scalar("!!binary", base64.StdEncoding.EncodeToString(v)))
}

func (b *builder) Some(v ser.Serializable) error {
	n, err := Encode(v)
	if err != nil {
		return err
	}
	return b.set(n)
}

func (b *builder) UnitStruct(string) error {
	return b.set(null())
}

func (b *builder) UnitVariant(_ string, _ uint32, name string) error {
	return b.set(str(name))
}

func (b *builder) NewtypeStruct(_ string, v ser.Serializable) error {
	return b.Some(v)
}

func (b *builder) NewtypeVariant(_ string, _ uint32, name string, v ser.Serializable) error {
	n, err := Encode(v)
	if err != nil {
		return err
	}
	return b.set(variant(name, n))
}

func (b *builder) Seq(ser.Len) (ser.SeqSerializer, error) {
	return b.sequence(nil), nil
}

func (b *builder) Tuple(int) (ser.TupleSerializer, error) {
	return b.sequence(nil), nil
}

func (b *builder) TupleStruct(string, int) (ser.TupleStructSerializer, error) {
	return b.sequence(nil), nil
}

func (b *builder) TupleVariant(_ string, _ uint32, name string, _ int) (ser.TupleVariantSerializer, error) {
	return b.sequence(&name), nil
}

func (b *builder) Map(ser.Len) (ser.MapSerializer, error) {
	return b.mapping(nil), nil
}

func (b *builder) Struct(string, int) (ser.StructSerializer, error) {
	return b.mapping(nil), nil
}

func (b *builder) StructVariant(_ string, _ uint32, name string, _ int) (ser.StructVariantSerializer, error) {
	return b.mapping(&name), nil
}

func (b *builder) sequence(variantName *string) *sequence {
	return &sequence{
		b:       b,
		variant: variantName,
		node:    &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"},
	}
}

func (b *builder) mapping(variantName *string) *mapping {
	return &mapping{
		b:       b,
		variant: variantName,
		node:    &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"},
	}
}

// finish hands a completed collection to its builder, wrapped in a variant
// mapping when it belongs to a tagged-union case.
func (b *builder) finish(n *yaml.Node, variantName *string) error {
	if variantName != nil {
		n = variant(*variantName, n)
	}
	return b.set(n)
}

type sequence struct {
	b       *builder
	variant *string
	node    *yaml.Node
}

func (s *sequence) Element(v ser.Serializable) error {
	n, err := Encode(v)
	if err != nil {
		return err
	}
	s.node.Content = append(s.node.Content, n)
	return nil
}

func (s *sequence) Field(v ser.Serializable) error {
	return s.Element(v)
}

func (s *sequence) End() error {
	return s.b.finish(s.node, s.variant)
}

type mapping struct {
	b       *builder
	variant *string
	node    *yaml.Node
	pending bool
}

func (m *mapping) Key(k ser.Serializable) error {
	if m.pending {
		return ser.Custom("yamlenc: map key without value")
	}
	n, err := Encode(k)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, n)
	m.pending = true
	return nil
}

func (m *mapping) Value(v ser.Serializable) error {
	if !m.pending {
		return ser.Custom("yamlenc: map value without key")
	}
	n, err := Encode(v)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, n)
	m.pending = false
	return nil
}

func (m *mapping) Field(key string, v ser.Serializable) error {
	n, err := Encode(v)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, str(key), n)
	return nil
}

// Skip omits the field.
func (m *mapping) Skip(string) error {
	return nil
}

func (m *mapping) End() error {
	if m.pending {
		return ser.Custom("yamlenc: map key without value")
	}
	return m.b.finish(m.node, m.variant)
}
