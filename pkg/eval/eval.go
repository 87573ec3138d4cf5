package eval

import (
	"fmt"

	"github.com/norn-lang/norn/pkg/ast"
	"github.com/norn-lang/norn/pkg/parser"
	"github.com/norn-lang/norn/pkg/reference"
	"github.com/norn-lang/norn/pkg/value"
)

// EvalString parses and evaluates src, returning the value of the last
// statement.
func (r *Realm) EvalString(src string) (value.V, error) {
	prog, err := parser.Parse([]byte(src))
	if err != nil {
		return value.V{}, err
	}
	return r.EvalProgram(prog)
}

// EvalProgram evaluates prog and returns the value of its last statement,
// or the empty value for an empty program.
func (r *Realm) EvalProgram(prog *ast.Program) (value.V, error) {
	strict := r.strict || prog.Strict
	var last value.V
	for _, stmt := range prog.Stmts {
		v, err := r.evalStmt(stmt, strict)
		if err != nil {
			return value.V{}, err
		}
		last = v
	}
	return last, nil
}

func (r *Realm) evalStmt(stmt ast.Stmt, strict bool) (value.V, error) {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		return r.evalExpr(stmt.X, strict)
	case *ast.Decl:
		v := value.Undefined()
		if stmt.Init != nil {
			var err error
			v, err = r.evalExpr(stmt.Init, strict)
			if err != nil {
				return value.V{}, err
			}
		}
		r.global.Define(stmt.Name, v, stmt.Kind)
		return value.Undefined(), nil
	default:
		return value.V{}, fmt.Errorf("eval: unexpected statement %T", stmt)
	}
}

func (r *Realm) evalExpr(e ast.Expr, strict bool) (value.V, error) {
	switch e := e.(type) {
	case *ast.NumberLit:
		return value.Number(e.Value), nil
	case *ast.StringLit:
		return value.String(e.Value), nil
	case *ast.BoolLit:
		return value.Boolean(e.Value), nil
	case *ast.NullLit:
		return value.Null(), nil
	case *ast.UndefinedLit:
		return value.Undefined(), nil
	case *ast.ObjectLit:
		obj := r.store.NewObject()
		for _, entry := range e.Entries {
			v, err := r.evalExpr(entry.Value, strict)
			if err != nil {
				return value.V{}, err
			}
			obj.Set(value.StringKey(entry.Name), v)
		}
		return value.Object(obj), nil
	case *ast.Ident, *ast.Member:
		ref, err := r.evalRef(e, strict)
		if err != nil {
			return value.V{}, err
		}
		return ref.Read(r, reference.RequireBound)
	case *ast.Assign:
		return r.evalAssign(e, strict)
	case *ast.Delete:
		return r.evalDelete(e, strict)
	case *ast.TypeOf:
		return r.evalTypeOf(e, strict)
	default:
		return value.V{}, fmt.Errorf("eval: unexpected expression %T", e)
	}
}

// evalRef evaluates an addressable expression to a reference.  Expressions
// that denote no place yield an unresolvable reference with no name.
func (r *Realm) evalRef(e ast.Expr, strict bool) (reference.T, error) {
	switch e := e.(type) {
	case *ast.Ident:
		return r.resolveIdent(e.Name, strict), nil
	case *ast.Member:
		base, err := r.evalExpr(e.X, strict)
		if err != nil {
			return reference.T{}, err
		}
		key := value.StringKey(e.Name)
		if e.Computed {
			kv, err := r.evalExpr(e.Index, strict)
			if err != nil {
				return reference.T{}, err
			}
			key = propertyKey(kv)
		}
		return reference.Property(base, key, strict), nil
	default:
		return reference.Unresolvable(value.Key{}, strict), nil
	}
}

// resolveIdent walks the scope chain for name.
func (r *Realm) resolveIdent(name string, strict bool) reference.T {
	rec := r.global.Resolve(name)
	if rec == nil {
		return reference.Unresolvable(value.StringKey(name), strict)
	}
	return reference.Environment(rec, name, strict)
}

// propertyKey converts a computed index value to a property key.  Symbols
// key by identity and every other value keys by its string form.
func propertyKey(v value.V) value.Key {
	if sym, ok := value.GetSymbol(v); ok {
		return value.SymbolKey(sym)
	}
	return value.StringKey(value.DisplayString(v))
}

func (r *Realm) evalAssign(e *ast.Assign, strict bool) (value.V, error) {
	ref, err := r.evalRef(e.Target, strict)
	if err != nil {
		return value.V{}, err
	}
	v, err := r.evalExpr(e.Value, strict)
	if err != nil {
		return value.V{}, err
	}
	if err := ref.Write(r, v); err != nil {
		return value.V{}, err
	}
	return v, nil
}

func (r *Realm) evalDelete(e *ast.Delete, strict bool) (value.V, error) {
	switch x := e.X.(type) {
	case *ast.Ident:
		// an unresolved name deletes trivially without constructing a
		// reference; a strict unresolvable delete is banned by the engine's
		// contract
		rec := r.global.Resolve(x.Name)
		if rec == nil {
			return value.Boolean(true), nil
		}
		ref := reference.Environment(rec, x.Name, strict)
		ok, err := ref.Delete(r)
		if err != nil {
			return value.V{}, err
		}
		return value.Boolean(ok), nil
	case *ast.Member:
		ref, err := r.evalRef(x, strict)
		if err != nil {
			return value.V{}, err
		}
		ok, err := ref.Delete(r)
		if err != nil {
			return value.V{}, err
		}
		return value.Boolean(ok), nil
	default:
		// deleting a non-reference operand evaluates it and succeeds
		if _, err := r.evalExpr(x, strict); err != nil {
			return value.V{}, err
		}
		return value.Boolean(true), nil
	}
}

func (r *Realm) evalTypeOf(e *ast.TypeOf, strict bool) (value.V, error) {
	var v value.V
	var err error
	if id, ok := e.X.(*ast.Ident); ok {
		// typeof tolerates undeclared names; the reference is anchored at
		// the global record so the tolerant lookup path applies
		rec := r.global.Resolve(id.Name)
		if rec == nil {
			rec = r.global
		}
		ref := reference.Environment(rec, id.Name, strict)
		v, err = ref.Read(r, reference.TolerateUnbound)
	} else {
		v, err = r.evalExpr(e.X, strict)
	}
	if err != nil {
		return value.V{}, err
	}
	return value.String(value.TypeOf(v)), nil
}
