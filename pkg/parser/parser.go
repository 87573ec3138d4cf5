/*
Package parser provides a parser for norn source text.

	program := <stmt>*
	stmt    := <decl> | <expr> ';'?
	decl    := ('var'|'let'|'const') <ident> ('=' <expr>)?
	expr    := 'delete' <expr> | 'typeof' <expr> | <assign>
	assign  := <postfix> ('=' <expr>)?
	postfix := <primary> ('.' <ident> | '[' <expr> ']')*
	primary := <number> | <string> | 'true' | 'false' | 'null'
	        | <object> | '(' <expr> ')' | <ident>
	object  := '{' (<entry> (',' <entry>)*)? '}'
	entry   := (<ident> | <string>) ':' <expr>
*/
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/norn-lang/norn/pkg/ast"
	"github.com/norn-lang/norn/pkg/environ"
	parsec "github.com/prataprc/goparsec"
)

// Parse parses a norn program.
func Parse(text []byte) (*ast.Program, error) {
	p := newParser()
	s := parsec.NewScanner(text)
	root, s := p.program(s)
	if p.err != nil {
		return nil, p.err
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return nil, fmt.Errorf("syntax error at offset %d", s.GetCursor())
	}
	return buildProgram(root), nil
}

type parser struct {
	program parsec.Parser
	err     error
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf(format, args...)
	}
}

type suffix struct {
	name  string
	index ast.Expr
}

// skipNode marks productions dropped from the tree (comments).
type skipNode struct{}

func newParser() *parser {
	p := &parser{}

	assign := parsec.Atom("=", "ASSIGN")
	dot := parsec.Atom(".", "DOT")
	openB := parsec.Atom("[", "OPENB")
	closeB := parsec.Atom("]", "CLOSEB")
	openC := parsec.Atom("{", "OPENC")
	closeC := parsec.Atom("}", "CLOSEC")
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	colon := parsec.Atom(":", "COLON")
	comma := parsec.Atom(",", "COMMA")
	semi := parsec.Atom(";", "SEMI")

	comment := parsec.Token(`//([^\n]*[^\s])?`, "COMMENT")
	declKind := parsec.Token(`(var|let|const)\b`, "DECLKIND")
	deleteKw := parsec.Token(`delete\b`, "DELETE")
	typeofKw := parsec.Token(`typeof\b`, "TYPEOF")
	boolean := parsec.Token(`(true|false)\b`, "BOOLEAN")
	null := parsec.Token(`null\b`, "NULL")
	number := parsec.Token(`[0-9]+([.][0-9]+)?([eE][+-]?[0-9]+)?`, "NUMBER")
	dstring := parsec.Token(`"(?:[^"\\\n]|\\.)*"`, "DSTRING")
	sstring := parsec.Token(`'(?:[^'\\\n]|\\.)*'`, "SSTRING")
	ident := parsec.Token(`[_$\pL][_$\pL0-9]*`, "IDENT")

	var expr parsec.Parser // forward declaration allows for recursive parsing

	entry := parsec.And(p.entryNode,
		parsec.OrdChoice(nil, ident, dstring, sstring), colon, &expr)
	objectLit := parsec.And(p.objectNode,
		openC, parsec.Kleene(nil, entry, comma), closeC)
	paren := parsec.And(p.parenNode, openP, &expr, closeP)
	primary := parsec.OrdChoice(p.primaryNode,
		boolean,
		null,
		number,
		dstring,
		sstring,
		objectLit,
		paren,
		ident, // ident comes last because it swallows keywords
	)

	dotSuffix := parsec.And(p.dotSuffixNode, dot, ident)
	indexSuffix := parsec.And(p.indexSuffixNode, openB, &expr, closeB)
	postfix := parsec.And(p.postfixNode,
		primary, parsec.Kleene(nil, parsec.OrdChoice(nil, dotSuffix, indexSuffix)))

	assignExpr := parsec.And(p.assignNode,
		postfix, parsec.Maybe(nil, parsec.And(nil, assign, &expr)))
	deleteExpr := parsec.And(p.deleteNode, deleteKw, &expr)
	typeofExpr := parsec.And(p.typeofNode, typeofKw, &expr)
	expr = parsec.OrdChoice(nil, deleteExpr, typeofExpr, assignExpr)

	decl := parsec.And(p.declNode,
		declKind, ident, parsec.Maybe(nil, parsec.And(nil, assign, &expr)))
	stmt := parsec.And(p.stmtNode,
		parsec.OrdChoice(nil, comment, decl, &expr), parsec.Maybe(nil, semi))
	p.program = parsec.Kleene(nil, stmt)
	return p
}

// unwrap strips the []ParsecNode layers that combinators built with nil
// callbacks leave around their productions.
func unwrap(n parsec.ParsecNode) parsec.ParsecNode {
	for {
		ns, ok := n.([]parsec.ParsecNode)
		if !ok {
			return n
		}
		if len(ns) == 0 {
			return nil
		}
		n = ns[0]
	}
}

func nodeList(n parsec.ParsecNode) []parsec.ParsecNode {
	ns, _ := n.([]parsec.ParsecNode)
	return ns
}

// maybeAnd returns the children of an And production wrapped by Maybe,
// which arrives as a single-element list around the And's node list.
func maybeAnd(n parsec.ParsecNode) []parsec.ParsecNode {
	ns := nodeList(n)
	if len(ns) == 1 {
		if inner, ok := ns[0].([]parsec.ParsecNode); ok {
			return inner
		}
	}
	return ns
}

func missing(n parsec.ParsecNode) bool {
	_, ok := n.(parsec.MaybeNone)
	return ok
}

func terminalValue(n parsec.ParsecNode) string {
	if t, ok := unwrap(n).(*parsec.Terminal); ok {
		return t.GetValue()
	}
	return ""
}

func (p *parser) expr(n parsec.ParsecNode) ast.Expr {
	e, ok := unwrap(n).(ast.Expr)
	if !ok {
		p.fail("syntax error: expected an expression")
		return &ast.UndefinedLit{}
	}
	return e
}

func (p *parser) primaryNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	switch n := unwrap(nodes[0]).(type) {
	case ast.Expr:
		return n
	case *parsec.Terminal:
		switch n.GetName() {
		case "BOOLEAN":
			return &ast.BoolLit{Value: n.GetValue() == "true"}
		case "NULL":
			return &ast.NullLit{}
		case "NUMBER":
			f, err := strconv.ParseFloat(n.GetValue(), 64)
			if err != nil {
				p.fail("bad number: %v (%s)", err, n.GetValue())
				return &ast.NumberLit{}
			}
			return &ast.NumberLit{Value: f}
		case "DSTRING", "SSTRING":
			return &ast.StringLit{Value: unquoteString(n.GetValue())}
		case "IDENT":
			return &ast.Ident{Name: n.GetValue()}
		}
	}
	p.fail("syntax error: unexpected term")
	return &ast.UndefinedLit{}
}

func (p *parser) parenNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return p.expr(nodes[1])
}

func (p *parser) entryNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	t, ok := unwrap(nodes[0]).(*parsec.Terminal)
	if !ok {
		p.fail("syntax error: bad object literal key")
		return &ast.Entry{}
	}
	name := t.GetValue()
	if t.GetName() != "IDENT" {
		name = unquoteString(name)
	}
	return &ast.Entry{Name: name, Value: p.expr(nodes[2])}
}

func (p *parser) objectNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	lit := &ast.ObjectLit{}
	for _, n := range nodeList(nodes[1]) {
		if e, ok := unwrap(n).(*ast.Entry); ok {
			lit.Entries = append(lit.Entries, *e)
		}
	}
	return lit
}

func (p *parser) dotSuffixNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return &suffix{name: terminalValue(nodes[1])}
}

func (p *parser) indexSuffixNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return &suffix{index: p.expr(nodes[1])}
}

func (p *parser) postfixNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	x := p.expr(nodes[0])
	for _, n := range nodeList(nodes[1]) {
		s, ok := unwrap(n).(*suffix)
		if !ok {
			continue
		}
		if s.index != nil {
			x = &ast.Member{X: x, Index: s.index, Computed: true}
		} else {
			x = &ast.Member{X: x, Name: s.name}
		}
	}
	return x
}

func (p *parser) assignNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	target := p.expr(nodes[0])
	if missing(nodes[1]) {
		return target
	}
	rhs := maybeAnd(nodes[1])
	if len(rhs) < 2 {
		p.fail("syntax error: missing assignment value")
		return target
	}
	return &ast.Assign{Target: target, Value: p.expr(rhs[1])}
}

func (p *parser) deleteNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return &ast.Delete{X: p.expr(nodes[1])}
}

func (p *parser) typeofNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return &ast.TypeOf{X: p.expr(nodes[1])}
}

func (p *parser) declNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	var kind environ.Kind
	switch terminalValue(nodes[0]) {
	case "var":
		kind = environ.KindVar
	case "let":
		kind = environ.KindLet
	case "const":
		kind = environ.KindConst
	}
	d := &ast.Decl{Kind: kind, Name: terminalValue(nodes[1])}
	if !missing(nodes[2]) {
		rhs := maybeAnd(nodes[2])
		if len(rhs) < 2 {
			p.fail("syntax error: missing initializer for %q", d.Name)
			return d
		}
		d.Init = p.expr(rhs[1])
	}
	if d.Kind == environ.KindConst && d.Init == nil {
		p.fail("missing initializer in const declaration of %q", d.Name)
	}
	return d
}

func (p *parser) stmtNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	switch n := unwrap(nodes[0]).(type) {
	case *parsec.Terminal:
		return skipNode{}
	case ast.Stmt:
		return n
	case ast.Expr:
		return &ast.ExprStmt{X: n}
	default:
		p.fail("syntax error: unexpected statement %T", n)
		return skipNode{}
	}
}

func buildProgram(root parsec.ParsecNode) *ast.Program {
	prog := &ast.Program{}
	for _, n := range nodeList(root) {
		stmt, ok := unwrap(n).(ast.Stmt)
		if !ok {
			continue
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	// a 'use strict' directive prologue makes the whole program strict
	if len(prog.Stmts) > 0 {
		if es, ok := prog.Stmts[0].(*ast.ExprStmt); ok {
			if lit, ok := es.X.(*ast.StringLit); ok && lit.Value == "use strict" {
				prog.Strict = true
			}
		}
	}
	return prog
}

func unquoteString(s string) string {
	body := s[1 : len(s)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

// Incomplete reports whether text looks like the prefix of a longer
// program, with an open bracket still unclosed.  The repl uses it to decide
// between reporting a syntax error and prompting for a continuation line.
func Incomplete(text []byte) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '/':
			if i+1 < len(text) && text[i+1] == '/' {
				for i < len(text) && text[i] != '\n' {
					i++
				}
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth > 0
}
