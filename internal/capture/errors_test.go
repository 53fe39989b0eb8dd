package capture

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sertree/internal/ser"
	"github.com/roach88/sertree/internal/testutil"
)

func TestCaptureProtocolMisuse(t *testing.T) {
	tests := []struct {
		name string
		v    ser.Serializable
		msg  string
	}{
		{
			name: "nil value",
			v:    nil,
			msg:  "capture: nil value",
		},
		{
			name: "no call",
			v:    ser.Func(func(ser.Serializer) error { return nil }),
			msg:  "capture: value made no serialization call",
		},
		{
			name: "two scalar calls",
			v: ser.Func(func(s ser.Serializer) error {
				if err := s.U8(1); err != nil {
					return err
				}
				return s.U8(2)
			}),
			msg: "capture: value made more than one top-level call",
		},
		{
			name: "aggregate never ended",
			v: ser.Func(func(s ser.Serializer) error {
				seq, err := s.Seq(ser.NoLen)
				if err != nil {
					return err
				}
				return seq.Element(ser.U8(1))
			}),
			msg: "capture: aggregate was not ended",
		},
		{
			name: "element after end",
			v: ser.Func(func(s ser.Serializer) error {
				seq, err := s.Seq(ser.NoLen)
				if err != nil {
					return err
				}
				if err := seq.End(); err != nil {
					return err
				}
				return seq.Element(ser.U8(1))
			}),
			msg: "capture: Seq used after End",
		},
		{
			name: "skip after end",
			v: ser.Func(func(s ser.Serializer) error {
				st, err := s.Struct("S", 0)
				if err != nil {
					return err
				}
				if err := st.End(); err != nil {
					return err
				}
				return st.Skip("x")
			}),
			msg: "capture: Struct used after End",
		},
		{
			name: "second end",
			v: ser.Func(func(s ser.Serializer) error {
				m, err := s.Map(ser.NoLen)
				if err != nil {
					return err
				}
				if err := m.End(); err != nil {
					return err
				}
				return m.End()
			}),
			msg: "capture: Map used after End",
		},
		{
			name: "ignored second call",
			v: ser.Func(func(s ser.Serializer) error {
				_ = s.U8(1)
				_ = s.U8(2)
				return nil
			}),
			msg: "capture: value made more than one top-level call",
		},
		{
			name: "ignored second aggregate",
			v: ser.Func(func(s ser.Serializer) error {
				_ = s.Unit()
				if seq, err := s.Seq(ser.NoLen); err == nil {
					_ = seq.End()
				}
				return nil
			}),
			msg: "capture: value made more than one top-level call",
		},
		{
			name: "ignored element after end",
			v: ser.Func(func(s ser.Serializer) error {
				seq, err := s.Seq(ser.NoLen)
				if err != nil {
					return err
				}
				_ = seq.Element(ser.U8(1))
				_ = seq.End()
				_ = seq.Element(ser.U8(2))
				return nil
			}),
			msg: "capture: Seq used after End",
		},
		{
			name: "ignored field after end",
			v: ser.Func(func(s ser.Serializer) error {
				st, err := s.StructVariant("E", 0, "V", 1)
				if err != nil {
					return err
				}
				_ = st.End()
				_ = st.Field("late", ser.U8(1))
				_ = st.End()
				return nil
			}),
			msg: "capture: StructVariant used after End",
		},
		{
			name: "nested value makes no call",
			v:    ser.Some(ser.Serializable(ser.Func(func(ser.Serializer) error { return nil }))),
			msg:  "capture: value made no serialization call",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Capture(tt.v)
			require.Error(t, err)
			assert.Nil(t, n)
			assert.True(t, ser.IsCustom(err))
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestCapturePropagatesCustomError(t *testing.T) {
	v := ser.Slice[ser.Serializable]{ser.U8(1), testutil.Fail{Msg: "bad element"}, ser.U8(3)}
	n, err := Capture(v)
	require.Error(t, err)
	assert.Nil(t, n)
	assert.Equal(t, "bad element", err.Error())
}

func TestCapturePropagatesForeignErrorUnchanged(t *testing.T) {
	v := ser.Some(ser.Serializable(ser.Func(func(ser.Serializer) error { return io.ErrUnexpectedEOF })))
	_, err := Capture(v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, ser.IsCustom(err))
}

func TestCaptureFailureIsSticky(t *testing.T) {
	// The value ignores the failure and carries on; capture still reports it
	// and nothing after the failure is accepted.
	v := testutil.Stubborn{Elements: []ser.Serializable{
		ser.U8(1),
		testutil.Fail{Msg: "first"},
		testutil.Fail{Msg: "second"},
		ser.U8(4),
	}}
	n, err := Capture(v)
	require.Error(t, err)
	assert.Nil(t, n)
	assert.Equal(t, "first", err.Error())
}

func TestCaptureFailureInsideStruct(t *testing.T) {
	v := ser.Func(func(s ser.Serializer) error {
		st, err := s.Struct("S", 2)
		if err != nil {
			return err
		}
		if err := st.Field("ok", ser.U8(1)); err != nil {
			return err
		}
		if err := st.Field("bad", testutil.Fail{Msg: "field failed"}); err != nil {
			return err
		}
		return st.End()
	})
	_, err := Capture(v)
	require.Error(t, err)
	assert.Equal(t, "field failed", err.Error())
}
