package evaluator

import (
	"context"
	"fmt"

	"github.com/sandrolain/golox/pkg/types"
)

// outcome reports how a statement finished. returned is set when a return
// statement ran; value then holds the returned value. Returns travel up as
// ordinary results until the enclosing call consumes them.
type outcome struct {
	returned bool
	value    types.Value
}

var normal = outcome{}

func (i *Interpreter) execute(ctx context.Context, id types.NodeID) (outcome, error) {
	n := i.prog.Node(id)
	if n == nil {
		return normal, nil
	}

	switch n.Kind {
	case types.NodeExprStmt:
		_, err := i.evaluate(ctx, n.Left)
		return normal, err

	case types.NodePrint:
		v, err := i.evaluate(ctx, n.Left)
		if err != nil {
			return normal, err
		}
		if _, err := fmt.Fprintln(i.opts.Stdout, types.Stringify(v)); err != nil {
			return normal, err
		}
		return normal, nil

	case types.NodeVar:
		var value types.Value = types.NilValue
		if n.Left != types.NoNode {
			v, err := i.evaluate(ctx, n.Left)
			if err != nil {
				return normal, err
			}
			value = v
		}
		i.environment.Define(n.Token.Lexeme, value)
		return normal, nil

	case types.NodeBlock:
		return i.executeBlock(ctx, n.List, NewEnvironment(i.environment))

	case types.NodeIf:
		cond, err := i.evaluate(ctx, n.Cond)
		if err != nil {
			return normal, err
		}
		if types.Truthy(cond) {
			return i.execute(ctx, n.Left)
		}
		return i.execute(ctx, n.Right)

	case types.NodeWhile:
		return i.executeWhile(ctx, n)

	case types.NodeFunction:
		fn := NewFunction(i.prog, id, i.environment, false)
		i.environment.Define(n.Token.Lexeme, fn)
		return normal, nil

	case types.NodeReturn:
		var value types.Value = types.NilValue
		if n.Left != types.NoNode {
			v, err := i.evaluate(ctx, n.Left)
			if err != nil {
				return normal, err
			}
			value = v
		}
		return outcome{returned: true, value: value}, nil

	case types.NodeClass:
		return normal, i.executeClass(n)
	}

	return normal, fmt.Errorf("cannot execute %s node", n.Kind)
}

func (i *Interpreter) executeWhile(ctx context.Context, n *types.Node) (outcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return normal, err
		}
		cond, err := i.evaluate(ctx, n.Cond)
		if err != nil {
			return normal, err
		}
		if !types.Truthy(cond) {
			return normal, nil
		}
		out, err := i.execute(ctx, n.Left)
		if err != nil || out.returned {
			return out, err
		}
	}
}

// executeBlock runs stmts with env as the current environment and restores
// the previous one on every exit path.
func (i *Interpreter) executeBlock(ctx context.Context, stmts []types.NodeID, env *Environment) (outcome, error) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		out, err := i.execute(ctx, stmt)
		if err != nil || out.returned {
			return out, err
		}
	}
	return normal, nil
}

func (i *Interpreter) executeClass(n *types.Node) error {
	var superclass *Class
	if n.Left != types.NoNode {
		v, err := i.lookUpVariable(n.Left, i.prog.Node(n.Left).Token)
		if err != nil {
			return err
		}
		class, ok := v.(*Class)
		if !ok {
			return newRuntimeError(types.ErrSuperclassType, i.prog.Node(n.Left).Token,
				"Superclass must be a class.")
		}
		superclass = class
	}

	i.environment.Define(n.Token.Lexeme, types.NilValue)

	closure := i.environment
	if superclass != nil {
		closure = NewEnvironment(i.environment)
		closure.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(n.List))
	for _, id := range n.List {
		method := i.prog.Node(id)
		name := method.Token.Lexeme
		methods[name] = NewFunction(i.prog, id, closure, name == "init")
	}

	class := NewClass(n.Token.Lexeme, superclass, methods)
	if i.opts.Debug {
		parent := ""
		if superclass != nil {
			parent = superclass.Name()
		}
		i.logger.Debug("class declared",
			"name", class.Name(),
			"superclass", parent,
			"methods", len(methods))
	}
	return i.environment.Assign(n.Token, class)
}

func (i *Interpreter) evaluate(ctx context.Context, id types.NodeID) (types.Value, error) {
	n := i.prog.Node(id)
	if n == nil {
		return types.NilValue, nil
	}

	switch n.Kind {
	case types.NodeLiteral:
		if n.Value == nil {
			return types.NilValue, nil
		}
		return n.Value, nil

	case types.NodeGrouping:
		return i.evaluate(ctx, n.Left)

	case types.NodeVariable:
		return i.lookUpVariable(id, n.Token)

	case types.NodeAssign:
		value, err := i.evaluate(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		if distance, ok := i.prog.Locals().Depth(id); ok {
			i.environment.AssignAt(distance, n.Token, value)
		} else if err := i.globals.Assign(n.Token, value); err != nil {
			return nil, err
		}
		return value, nil

	case types.NodeUnary:
		return i.evalUnary(ctx, n)

	case types.NodeBinary:
		return i.evalBinary(ctx, n)

	case types.NodeLogical:
		return i.evalLogical(ctx, n)

	case types.NodeCall:
		return i.evalCall(ctx, n)

	case types.NodeGet:
		object, err := i.evaluate(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, newRuntimeError(types.ErrNotInstance, n.Token, "Only instances have properties.")
		}
		return instance.Get(n.Token)

	case types.NodeSet:
		object, err := i.evaluate(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, newRuntimeError(types.ErrNotInstance, n.Token, "Only instances have fields.")
		}
		value, err := i.evaluate(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		instance.Set(n.Token, value)
		return value, nil

	case types.NodeThis:
		return i.lookUpVariable(id, n.Token)

	case types.NodeSuper:
		return i.evalSuper(id, n)
	}

	return nil, fmt.Errorf("cannot evaluate %s node", n.Kind)
}

// evalSuper finds the method on the superclass and binds it to the current
// "this", which lives one scope inside the "super" scope.
func (i *Interpreter) evalSuper(id types.NodeID, n *types.Node) (types.Value, error) {
	distance, ok := i.prog.Locals().Depth(id)
	if !ok {
		return nil, undefinedVariable(n.Token)
	}
	superclass, _ := i.environment.GetAt(distance, "super").(*Class)
	instance, _ := i.environment.GetAt(distance-1, "this").(*Instance)
	if superclass == nil || instance == nil {
		return nil, undefinedVariable(n.Token)
	}

	method, ok := superclass.FindMethod(n.Name.Lexeme)
	if !ok {
		return nil, newRuntimeError(types.ErrUndefinedProperty, n.Name,
			fmt.Sprintf("Undefined property '%s'.", n.Name.Lexeme))
	}
	return method.Bind(instance), nil
}

// lookUpVariable reads a local at its resolved distance or falls back to the
// globals.
func (i *Interpreter) lookUpVariable(id types.NodeID, name types.Token) (types.Value, error) {
	if distance, ok := i.prog.Locals().Depth(id); ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}
	return i.globals.Get(name)
}
