/*
Package ast defines the syntax tree the norn evaluator consumes.  The tree
is deliberately small: literals, identifiers, member access, assignment, the
delete and typeof operators, and declarations.
*/
package ast

import "github.com/norn-lang/norn/pkg/environ"

// Node is implemented by every syntax node.
type Node interface {
	node()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is a parsed source text.  Strict is set by a 'use strict'
// directive prologue.
type Program struct {
	Strict bool
	Stmts  []Stmt
}

// ExprStmt is an expression evaluated for its value.
type ExprStmt struct {
	X Expr
}

// Decl declares a binding with an optional initializer.
type Decl struct {
	Kind environ.Kind
	Name string
	Init Expr
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// StringLit is a string literal.
type StringLit struct {
	Value string
}

// BoolLit is true or false.
type BoolLit struct {
	Value bool
}

// NullLit is the null literal.
type NullLit struct{}

// UndefinedLit is the undefined literal.
type UndefinedLit struct{}

// Ident is an identifier expression.
type Ident struct {
	Name string
}

// Member is a property access.  Name is set for dotted access; Index is
// the key expression for computed access.
type Member struct {
	X        Expr
	Name     string
	Index    Expr
	Computed bool
}

// Entry is one property of an object literal.
type Entry struct {
	Name  string
	Value Expr
}

// ObjectLit is an object literal.
type ObjectLit struct {
	Entries []Entry
}

// Assign assigns Value to the place Target denotes.
type Assign struct {
	Target Expr
	Value  Expr
}

// Delete is the delete operator.
type Delete struct {
	X Expr
}

// TypeOf is the typeof operator.
type TypeOf struct {
	X Expr
}

func (*Program) node()      {}
func (*ExprStmt) node()     {}
func (*Decl) node()         {}
func (*NumberLit) node()    {}
func (*StringLit) node()    {}
func (*BoolLit) node()      {}
func (*NullLit) node()      {}
func (*UndefinedLit) node() {}
func (*Ident) node()        {}
func (*Member) node()       {}
func (*ObjectLit) node()    {}
func (*Assign) node()       {}
func (*Delete) node()       {}
func (*TypeOf) node()       {}

func (*ExprStmt) stmtNode() {}
func (*Decl) stmtNode()     {}

func (*NumberLit) exprNode()    {}
func (*StringLit) exprNode()    {}
func (*BoolLit) exprNode()      {}
func (*NullLit) exprNode()      {}
func (*UndefinedLit) exprNode() {}
func (*Ident) exprNode()        {}
func (*Member) exprNode()       {}
func (*ObjectLit) exprNode()    {}
func (*Assign) exprNode()       {}
func (*Delete) exprNode()       {}
func (*TypeOf) exprNode()       {}
