package ast

import (
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Walk visits n and its descendants depth-first, parents before children.
// If fn returns false the children of that node are not visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case Some:
		Walk(n.Value, fn)
	case NewtypeStruct:
		Walk(n.Value, fn)
	case NewtypeVariant:
		Walk(n.Value, fn)
	case Seq:
		for _, op := range n.Ops {
			Walk(op.Value, fn)
		}
	case Tuple:
		for _, op := range n.Ops {
			Walk(op.Value, fn)
		}
	case TupleStruct:
		for _, op := range n.Ops {
			Walk(op.Value, fn)
		}
	case TupleVariant:
		for _, op := range n.Ops {
			Walk(op.Value, fn)
		}
	case Map:
		for _, op := range n.Ops {
			switch op := op.(type) {
			case MapKey:
				Walk(op.Key, fn)
			case MapValue:
				Walk(op.Value, fn)
			}
		}
	case Struct:
		walkStructOps(n.Ops, fn)
	case StructVariant:
		walkStructOps(n.Ops, fn)
	}
}

func walkStructOps(ops []StructOp, fn func(Node) bool) {
	for _, op := range ops {
		if f, ok := op.(Field); ok {
			Walk(f.Value, fn)
		}
	}
}

// Transform rebuilds n bottom-up. Children are transformed first, then fn is
// called on the rebuilt parent and its result takes the parent's place.
// The input tree is never modified.
func Transform(n Node, fn func(Node) Node) Node {
	if n == nil {
		return nil
	}
	switch n := n.(type) {
	case Some:
		n.Value = Transform(n.Value, fn)
		return fn(n)
	case NewtypeStruct:
		n.Value = Transform(n.Value, fn)
		return fn(n)
	case NewtypeVariant:
		n.Value = Transform(n.Value, fn)
		return fn(n)
	case Seq:
		n.Ops = transformElements(n.Ops, fn)
		return fn(n)
	case Tuple:
		n.Ops = transformElements(n.Ops, fn)
		return fn(n)
	case TupleStruct:
		n.Ops = transformTupleFields(n.Ops, fn)
		return fn(n)
	case TupleVariant:
		n.Ops = transformTupleFields(n.Ops, fn)
		return fn(n)
	case Map:
		ops := make([]MapOp, len(n.Ops))
		for i, op := range n.Ops {
			switch op := op.(type) {
			case MapKey:
				ops[i] = MapKey{Key: Transform(op.Key, fn)}
			case MapValue:
				ops[i] = MapValue{Value: Transform(op.Value, fn)}
			default:
				ops[i] = op
			}
		}
		n.Ops = ops
		return fn(n)
	case Struct:
		n.Ops = transformStructOps(n.Ops, fn)
		return fn(n)
	case StructVariant:
		n.Ops = transformStructOps(n.Ops, fn)
		return fn(n)
	case Bytes:
		return fn(slices.Clone(n))
	default:
		return fn(n)
	}
}

func transformElements(ops []Element, fn func(Node) Node) []Element {
	out := make([]Element, len(ops))
	for i, op := range ops {
		out[i] = Element{Value: Transform(op.Value, fn)}
	}
	return out
}

func transformTupleFields(ops []TupleField, fn func(Node) Node) []TupleField {
	out := make([]TupleField, len(ops))
	for i, op := range ops {
		out[i] = TupleField{Value: Transform(op.Value, fn)}
	}
	return out
}

func transformStructOps(ops []StructOp, fn func(Node) Node) []StructOp {
	out := make([]StructOp, len(ops))
	for i, op := range ops {
		if f, ok := op.(Field); ok {
			out[i] = Field{Key: f.Key, Value: Transform(f.Value, fn)}
			continue
		}
		out[i] = op
	}
	return out
}

// Diff returns a line diff of the renderings of a and b, one line per
// rendered line prefixed with "  ", "- " or "+ ". It returns "" when a and b
// are equal.
func Diff(a, b Node) string {
	if Equal(a, b) {
		return ""
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(Render(a)+"\n", Render(b)+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
