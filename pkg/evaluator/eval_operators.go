package evaluator

import (
	"context"
	"fmt"

	"github.com/sandrolain/golox/pkg/types"
)

func (i *Interpreter) evalUnary(ctx context.Context, n *types.Node) (types.Value, error) {
	right, err := i.evaluate(ctx, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Token.Kind {
	case types.TokenBang:
		return types.Bool(!types.Truthy(right)), nil
	case types.TokenMinus:
		num, ok := right.(types.Number)
		if !ok {
			return nil, newRuntimeError(types.ErrOperandNumber, n.Token, "Operand must be a number.")
		}
		return -num, nil
	}
	return nil, fmt.Errorf("unknown unary operator %q", n.Token.Lexeme)
}

// evalLogical short-circuits and yields the operand that decided the result,
// not a boolean.
func (i *Interpreter) evalLogical(ctx context.Context, n *types.Node) (types.Value, error) {
	left, err := i.evaluate(ctx, n.Left)
	if err != nil {
		return nil, err
	}

	if n.Token.Kind == types.TokenOr {
		if types.Truthy(left) {
			return left, nil
		}
	} else if !types.Truthy(left) {
		return left, nil
	}
	return i.evaluate(ctx, n.Right)
}

// evalBinary evaluates both operands left to right before applying the
// operator.
func (i *Interpreter) evalBinary(ctx context.Context, n *types.Node) (types.Value, error) {
	left, err := i.evaluate(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(ctx, n.Right)
	if err != nil {
		return nil, err
	}

	op := n.Token
	switch op.Kind {
	case types.TokenEqualEqual:
		return types.Bool(types.Equal(left, right)), nil
	case types.TokenBangEqual:
		return types.Bool(!types.Equal(left, right)), nil

	case types.TokenPlus:
		if l, ok := left.(types.Number); ok {
			if r, ok := right.(types.Number); ok {
				return l + r, nil
			}
		}
		if l, ok := left.(types.String); ok {
			if r, ok := right.(types.String); ok {
				return l + r, nil
			}
		}
		return nil, newRuntimeError(types.ErrOperandsAdd, op, "Operands must be two numbers or two strings.")
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}

	switch op.Kind {
	case types.TokenMinus:
		return l - r, nil
	case types.TokenStar:
		return l * r, nil
	case types.TokenSlash:
		return l / r, nil
	case types.TokenGreater:
		return types.Bool(l > r), nil
	case types.TokenGreaterEqual:
		return types.Bool(l >= r), nil
	case types.TokenLess:
		return types.Bool(l < r), nil
	case types.TokenLessEqual:
		return types.Bool(l <= r), nil
	}
	return nil, fmt.Errorf("unknown binary operator %q", op.Lexeme)
}

func numberOperands(op types.Token, left, right types.Value) (types.Number, types.Number, error) {
	l, lok := left.(types.Number)
	r, rok := right.(types.Number)
	if !lok || !rok {
		return 0, 0, newRuntimeError(types.ErrOperandsNumbers, op, "Operands must be numbers.")
	}
	return l, r, nil
}

// evalCall evaluates the callee, then the arguments left to right, checks
// arity and invokes the callable.
func (i *Interpreter) evalCall(ctx context.Context, n *types.Node) (types.Value, error) {
	callee, err := i.evaluate(ctx, n.Left)
	if err != nil {
		return nil, err
	}

	args := make([]types.Value, 0, len(n.List))
	for _, id := range n.List {
		arg, err := i.evaluate(ctx, id)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(types.ErrInvokeNonFunction, n.Token, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(types.ErrArity, n.Token,
			fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}

	return i.call(ctx, n.Token, fn, args)
}

func (i *Interpreter) call(ctx context.Context, paren types.Token, fn Callable, args []types.Value) (types.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if i.opts.MaxCallDepth > 0 && i.depth >= i.opts.MaxCallDepth {
		return nil, newRuntimeError(types.ErrStackOverflow, paren, "Stack overflow.")
	}

	i.depth++
	defer func() { i.depth-- }()

	if i.opts.Debug {
		i.logger.Debug("call", "callee", fn.String(), "args", len(args), "depth", i.depth, "line", paren.Line)
	}

	result, err := fn.Call(ctx, i, args)
	if err != nil {
		if _, native := fn.(*NativeFunction); native {
			if _, ok := err.(*RuntimeError); !ok && ctx.Err() == nil {
				return nil, newRuntimeError(types.ErrNativeCall, paren, err.Error())
			}
		}
		return nil, err
	}
	return result, nil
}
