package ast

import (
	"reflect"

	"github.com/roach88/sertree/internal/ser"
)

// Extension is the constraint on payloads carried by Ext.
type Extension interface {
	ser.Serializable
	comparable
}

// Ext is an integrator-defined shape outside the closed set. Capture never
// builds one; a tree holds Ext nodes only if a caller put them there, for
// example through Transform. Replay hands the payload to the target as a
// plain value.
//
// Equal compares payloads with ==. When E is an interface type and a
// payload's dynamic value is not comparable, such as a slice, the payloads
// are compared with reflect.DeepEqual instead.
type Ext[E Extension] struct {
	Value E
}

func (Ext[E]) Kind() Kind { return KindExt }

func (n Ext[E]) Serialize(s ser.Serializer) error {
	return n.Value.Serialize(s)
}

func (n Ext[E]) equal(o Node) bool {
	v, ok := o.(Ext[E])
	if !ok {
		return false
	}
	a, b := any(n.Value), any(v.Value)
	if a == nil || b == nil {
		return a == b
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

func (n Ext[E]) render(p *printer) {
	p.printf("Ext(%v)", n.Value)
}
