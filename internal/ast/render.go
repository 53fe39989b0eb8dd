package ast

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Render returns a deterministic, human-readable rendering of n.
// It is meant for diagnostics and golden files, not for data exchange.
//
// Aggregates render one sub-operation per line, indented by two spaces:
//
//	Struct(Example, len=2) {
//	  hello: Str("World")
//	  skip secret
//	}
func Render(n Node) string {
	if n == nil {
		return "<nil>"
	}
	var p printer
	n.render(&p)
	return p.b.String()
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(&p.b, format, args...)
}

func (p *printer) newline() {
	p.b.WriteByte('\n')
	for i := 0; i < p.indent; i++ {
		p.b.WriteString("  ")
	}
}

func (p *printer) node(n Node) {
	if n == nil {
		p.b.WriteString("<nil>")
		return
	}
	n.render(p)
}

// block writes header followed by n items between lbrack and rbrack.
func (p *printer) block(header, lbrack, rbrack string, n int, item func(i int)) {
	p.b.WriteString(header)
	p.b.WriteByte(' ')
	p.b.WriteString(lbrack)
	if n == 0 {
		p.b.WriteString(rbrack)
		return
	}
	p.indent++
	for i := 0; i < n; i++ {
		p.newline()
		item(i)
	}
	p.indent--
	p.newline()
	p.b.WriteString(rbrack)
}

func variantName(name string, index uint32, variant string) string {
	return fmt.Sprintf("%s::%s[%d]", name, variant, index)
}

func (n Bool) render(p *printer) { p.printf("Bool(%t)", bool(n)) }
func (n I8) render(p *printer)   { p.printf("I8(%d)", n) }
func (n I16) render(p *printer)  { p.printf("I16(%d)", n) }
func (n I32) render(p *printer)  { p.printf("I32(%d)", n) }
func (n I64) render(p *printer)  { p.printf("I64(%d)", n) }
func (n U8) render(p *printer)   { p.printf("U8(%d)", n) }
func (n U16) render(p *printer)  { p.printf("U16(%d)", n) }
func (n U32) render(p *printer)  { p.printf("U32(%d)", n) }
func (n U64) render(p *printer)  { p.printf("U64(%d)", n) }

func (n F32) render(p *printer) {
	p.printf("F32(%s)", strconv.FormatFloat(float64(n), 'g', -1, 32))
}

func (n F64) render(p *printer) {
	p.printf("F64(%s)", strconv.FormatFloat(float64(n), 'g', -1, 64))
}

func (n Char) render(p *printer)  { p.printf("Char(%s)", strconv.QuoteRune(rune(n))) }
func (n Str) render(p *printer)   { p.printf("Str(%s)", strconv.Quote(string(n))) }
func (n Bytes) render(p *printer) { p.printf("Bytes(%s)", hex.EncodeToString(n)) }

func (None) render(p *printer) { p.b.WriteString("None") }
func (Unit) render(p *printer) { p.b.WriteString("Unit") }

func (n Some) render(p *printer) {
	p.b.WriteString("Some ")
	p.node(n.Value)
}

func (n UnitStruct) render(p *printer) { p.printf("UnitStruct(%s)", n.Name) }

func (n UnitVariant) render(p *printer) {
	p.printf("UnitVariant(%s)", variantName(n.Name, n.VariantIndex, n.Variant))
}

func (n NewtypeStruct) render(p *printer) {
	p.printf("NewtypeStruct(%s) ", n.Name)
	p.node(n.Value)
}

func (n NewtypeVariant) render(p *printer) {
	p.printf("NewtypeVariant(%s) ", variantName(n.Name, n.VariantIndex, n.Variant))
	p.node(n.Value)
}

func (n Seq) render(p *printer) {
	p.block(fmt.Sprintf("Seq(len=%s)", n.Len), "[", "]", len(n.Ops), func(i int) {
		p.node(n.Ops[i].Value)
	})
}

func (n Tuple) render(p *printer) {
	p.block(fmt.Sprintf("Tuple(len=%d)", n.Len), "[", "]", len(n.Ops), func(i int) {
		p.node(n.Ops[i].Value)
	})
}

func (n TupleStruct) render(p *printer) {
	header := fmt.Sprintf("TupleStruct(%s, len=%d)", n.Name, n.Len)
	p.block(header, "[", "]", len(n.Ops), func(i int) {
		p.node(n.Ops[i].Value)
	})
}

func (n TupleVariant) render(p *printer) {
	header := fmt.Sprintf("TupleVariant(%s, len=%d)", variantName(n.Name, n.VariantIndex, n.Variant), n.Len)
	p.block(header, "[", "]", len(n.Ops), func(i int) {
		p.node(n.Ops[i].Value)
	})
}

func (n Map) render(p *printer) {
	p.block(fmt.Sprintf("Map(len=%s)", n.Len), "{", "}", len(n.Ops), func(i int) {
		switch op := n.Ops[i].(type) {
		case MapKey:
			p.b.WriteString("key ")
			p.node(op.Key)
		case MapValue:
			p.b.WriteString("value ")
			p.node(op.Value)
		default:
			p.b.WriteString("<nil>")
		}
	})
}

func (n Struct) render(p *printer) {
	header := fmt.Sprintf("Struct(%s, len=%d)", n.Name, n.Len)
	p.block(header, "{", "}", len(n.Ops), func(i int) {
		renderStructOp(p, n.Ops[i])
	})
}

func (n StructVariant) render(p *printer) {
	header := fmt.Sprintf("StructVariant(%s, len=%d)", variantName(n.Name, n.VariantIndex, n.Variant), n.Len)
	p.block(header, "{", "}", len(n.Ops), func(i int) {
		renderStructOp(p, n.Ops[i])
	})
}

func renderStructOp(p *printer, op StructOp) {
	switch op := op.(type) {
	case Field:
		p.printf("%s: ", op.Key)
		p.node(op.Value)
	case Skip:
		p.printf("skip %s", op.Key)
	default:
		p.b.WriteString("<nil>")
	}
}
