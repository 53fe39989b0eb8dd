// Package trace provides a ser target that records the calls it receives as a
// flat, indented event list.
//
// Two values that produce the same event list are indistinguishable to every
// target, which makes a Recorder the reference for checking that replaying a
// captured tree re-issues the original call sequence.
package trace

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/roach88/sertree/internal/ser"
)

// Event is one received call. Depth is the nesting level of the call.
type Event struct {
	Depth int
	Call  string
	Args  string
}

func (e Event) String() string {
	s := strings.Repeat("  ", e.Depth) + e.Call
	if e.Args != "" {
		s += " " + e.Args
	}
	return s
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger logs every recorded event at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// Recorder is a ser.Serializer that records calls instead of encoding them.
// A Recorder may be reused; events accumulate until Reset.
type Recorder struct {
	events []Event
	depth  int
	logger *slog.Logger
}

var _ ser.Serializer = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record serializes v into a fresh Recorder and returns its events.
func Record(v ser.Serializable, opts ...Option) ([]Event, error) {
	r := NewRecorder(opts...)
	if err := r.serialize(v); err != nil {
		return nil, err
	}
	return r.Events(), nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	return append([]Event(nil), r.events...)
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
	r.depth = 0
}

// String renders the events one per line.
func (r *Recorder) String() string {
	return Format(r.events)
}

// Format renders events one per line, indented by depth.
func Format(events []Event) string {
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

func (r *Recorder) rec(call, args string) {
	e := Event{Depth: r.depth, Call: call, Args: args}
	r.events = append(r.events, e)
	r.logger.Debug("serializer call", "depth", e.Depth, "call", call, "args", args)
}

// nest records call and serializes v one level deeper.
func (r *Recorder) nest(call, args string, v ser.Serializable) error {
	r.rec(call, args)
	r.depth++
	defer func() { r.depth-- }()
	return r.serialize(v)
}

func (r *Recorder) serialize(v ser.Serializable) error {
	if v == nil {
		return ser.Custom("trace: nil value")
	}
	return v.Serialize(r)
}

func (r *Recorder) open(call, args string) {
	r.rec(call, args)
	r.depth++
}

func (r *Recorder) end() error {
	r.depth--
	r.rec("end", "")
	return nil
}

func variantArgs(name string, index uint32, variant string) string {
	return fmt.Sprintf("%s::%s[%d]", name, variant, index)
}

func (r *Recorder) Bool(v bool) error {
	r.rec("bool", strconv.FormatBool(v))
	return nil
}

func (r *Recorder) I8(v int8) error {
	r.rec("i8", strconv.FormatInt(int64(v), 10))
	return nil
}

func (r *Recorder) I16(v int16) error {
	r.rec("i16", strconv.FormatInt(int64(v), 10))
	return nil
}

func (r *Recorder) I32(v int32) error {
	r.rec("i32", strconv.FormatInt(int64(v), 10))
	return nil
}

func (r *Recorder) I64(v int64) error {
	r.rec("i64", strconv.FormatInt(v, 10))
	return nil
}

func (r *Recorder) U8(v uint8) error {
	r.rec("u8", strconv.FormatUint(uint64(v), 10))
	return nil
}

func (r *Recorder) U16(v uint16) error {
	r.rec("u16", strconv.FormatUint(uint64(v), 10))
	return nil
}

func (r *Recorder) U32(v uint32) error {
	r.rec("u32", strconv.FormatUint(uint64(v), 10))
	return nil
}

func (r *Recorder) U64(v uint64) error {
	r.rec("u64", strconv.FormatUint(v, 10))
	return nil
}

func (r *Recorder) Char(v rune) error {
	r.rec("char", strconv.QuoteRune(v))
	return nil
}

func (r *Recorder) Str(v string) error {
	r.rec("str", strconv.Quote(v))
	return nil
}

func (r *Recorder) None() error {
	r.rec("none", "")
	return nil
}

func (r *Recorder) Unit() error {
	r.rec("unit", "")
	return nil
}

func (r *Recorder) F32(v float32) error {
	r.rec("f32", strconv.FormatFloat(float64(v), 'g', -1, 32))
	return nil
}

func (r *Recorder) F64(v float64) error {
	r.rec("f64", strconv.FormatFloat(v, 'g', -1, 64))
	return nil
}

func (r *Recorder) Bytes(v []byte) error {
	r.rec("bytes", hex.EncodeToString(v))
	return nil
}

func (r *Recorder) Some(v ser.Serializable) error {
	return r.nest("some", "", v)
}

func (r *Recorder) UnitStruct(name string) error {
	r.rec("unit_struct", name)
	return nil
}

func (r *Recorder) UnitVariant(name string, index uint32, variant string) error {
	r.rec("unit_variant", variantArgs(name, index, variant))
	return nil
}

func (r *Recorder) NewtypeStruct(name string, v ser.Serializable) error {
	return r.nest("newtype_struct", name, v)
}

func (r *Recorder) NewtypeVariant(name string, index uint32, variant string, v ser.Serializable) error {
	return r.nest("newtype_variant", variantArgs(name, index, variant), v)
}

func (r *Recorder) Seq(n ser.Len) (ser.SeqSerializer, error) {
	r.open("seq", "len="+n.String())
	return elements{r}, nil
}

func (r *Recorder) Tuple(n int) (ser.TupleSerializer, error) {
	r.open("tuple", fmt.Sprintf("len=%d", n))
	return elements{r}, nil
}

func (r *Recorder) TupleStruct(name string, n int) (ser.TupleStructSerializer, error) {
	r.open("tuple_struct", fmt.Sprintf("%s len=%d", name, n))
	return tupleFields{r}, nil
}

func (r *Recorder) TupleVariant(name string, index uint32, variant string, n int) (ser.TupleVariantSerializer, error) {
	r.open("tuple_variant", fmt.Sprintf("%s len=%d", variantArgs(name, index, variant), n))
	return tupleFields{r}, nil
}

func (r *Recorder) Map(n ser.Len) (ser.MapSerializer, error) {
	r.open("map", "len="+n.String())
	return entries{r}, nil
}

func (r *Recorder) Struct(name string, n int) (ser.StructSerializer, error) {
	r.open("struct", fmt.Sprintf("%s len=%d", name, n))
	return fields{r}, nil
}

func (r *Recorder) StructVariant(name string, index uint32, variant string, n int) (ser.StructVariantSerializer, error) {
	r.open("struct_variant", fmt.Sprintf("%s len=%d", variantArgs(name, index, variant), n))
	return fields{r}, nil
}

type elements struct{ r *Recorder }

func (e elements) Element(v ser.Serializable) error { return e.r.nest("element", "", v) }
func (e elements) End() error                       { return e.r.end() }

type tupleFields struct{ r *Recorder }

func (f tupleFields) Field(v ser.Serializable) error { return f.r.nest("field", "", v) }
func (f tupleFields) End() error                     { return f.r.end() }

type entries struct{ r *Recorder }

func (m entries) Key(k ser.Serializable) error   { return m.r.nest("key", "", k) }
func (m entries) Value(v ser.Serializable) error { return m.r.nest("value", "", v) }
func (m entries) End() error                     { return m.r.end() }

type fields struct{ r *Recorder }

func (f fields) Field(key string, v ser.Serializable) error { return f.r.nest("field", key, v) }
func (f fields) End() error                                 { return f.r.end() }

func (f fields) Skip(key string) error {
	f.r.rec("skip", key)
	return nil
}
