package translator

import (
	"github.com/mongolift/mongolift/internal/core/command"
	"github.com/mongolift/mongolift/internal/core/exchange"
	"github.com/mongolift/mongolift/internal/core/feature"
	"github.com/mongolift/mongolift/internal/core/statement"
)

// visitPredicate serves a filter request. The supported predicate kinds are
// a closed set; everything else fails closed.
func (t *Translator) visitPredicate(p statement.Predicate) {
	switch x := p.(type) {
	case *statement.Comparison:
		t.visitComparison(x)

	case *statement.Junction:
		t.visitJunction(x)

	case *statement.Negation:
		// There is no direct "not" filter operator; a single-element $nor
		// is the equivalence.
		sub := exchange.Execute(&t.slot, filterRequest, func() { t.visitPredicate(x.Predicate) })
		if t.err != nil {
			exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
			return
		}
		exchange.Yield(&t.slot, filterRequest, command.Filter(command.Logical{
			Kind: command.LogicalNor,
			Subs: []command.Filter{sub},
		}))

	case *statement.Grouped:
		// Parentheses carry no semantics once structure is explicit.
		t.visitPredicate(x.Predicate)

	case *statement.BooleanExpr:
		t.visitBooleanExpr(x)

	default:
		t.fail(feature.Errorf("predicate", "predicates of type %T are not supported by the MongoDB dialect", p))
		exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
	}
}

func (t *Translator) visitComparison(c *statement.Comparison) {
	if !comparesFieldPathWithValue(c) {
		t.fail(feature.Errorf("comparison shape",
			"only comparisons between a field path and a value are supported by the MongoDB dialect"))
		exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
		return
	}

	left, op, right := c.Left, c.Op, c.Right
	if !isFieldPath(left) {
		// Normalize "value OP field" so the rendered filter always reads
		// {field: {operator: value}}.
		left, right = right, left
		op = invertOp(op)
	}

	mop, err := operatorFor(op)
	if err != nil {
		t.fail(err)
		exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
		return
	}

	path := exchange.Execute(&t.slot, fieldPathRequest, func() { t.visitFieldPath(left) })
	if t.err != nil {
		exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
		return
	}
	val := exchange.Execute(&t.slot, valueRequest, func() { t.visitValueExpr(right) })
	if t.err != nil {
		exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
		return
	}

	exchange.Yield(&t.slot, filterRequest, command.Filter(command.FieldComparison{
		Path:  path,
		Op:    mop,
		Value: val,
	}))
}

func (t *Translator) visitJunction(j *statement.Junction) {
	var kind command.LogicalKind
	switch j.Kind {
	case statement.JunctionAnd:
		kind = command.LogicalAnd
	case statement.JunctionOr:
		kind = command.LogicalOr
	default:
		t.fail(feature.Errorf("junction", "junctions of kind %q are not supported by the MongoDB dialect", j.Kind))
		exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
		return
	}

	subs := make([]command.Filter, 0, len(j.Predicates))
	for _, p := range j.Predicates {
		sub := exchange.Execute(&t.slot, filterRequest, func() { t.visitPredicate(p) })
		if t.err != nil {
			exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
			return
		}
		subs = append(subs, sub)
	}
	exchange.Yield(&t.slot, filterRequest, command.Filter(command.Logical{Kind: kind, Subs: subs}))
}

func (t *Translator) visitBooleanExpr(b *statement.BooleanExpr) {
	if !isFieldPath(b.Expr) {
		t.fail(feature.Errorf("boolean expression",
			"only a field path can be used as a bare boolean condition; got %T", b.Expr))
		exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
		return
	}
	path := exchange.Execute(&t.slot, fieldPathRequest, func() { t.visitFieldPath(b.Expr) })
	if t.err != nil {
		exchange.Yield(&t.slot, filterRequest, command.Filter(nil))
		return
	}
	exchange.Yield(&t.slot, filterRequest, command.Filter(command.FieldComparison{
		Path:  path,
		Op:    command.OpEq,
		Value: command.Literal{Value: !b.Negated},
	}))
}

// invertOp flips a comparison so the field path moves to the left side:
// "5 > x" becomes "x < 5".
func invertOp(op statement.CompareOp) statement.CompareOp {
	switch op {
	case statement.OpLt:
		return statement.OpGt
	case statement.OpLte:
		return statement.OpGte
	case statement.OpGt:
		return statement.OpLt
	case statement.OpGte:
		return statement.OpLte
	default:
		// Equality and inequality are symmetric.
		return op
	}
}

// operatorFor maps the source operator onto the closed filter operator set.
func operatorFor(op statement.CompareOp) (command.Operator, error) {
	switch op {
	case statement.OpEq:
		return command.OpEq, nil
	case statement.OpNe:
		return command.OpNe, nil
	case statement.OpLt:
		return command.OpLt, nil
	case statement.OpLte:
		return command.OpLte, nil
	case statement.OpGt:
		return command.OpGt, nil
	case statement.OpGte:
		return command.OpGte, nil
	default:
		return "", feature.Errorf("comparison operator", "comparison operator %q is not supported by the MongoDB dialect", op)
	}
}
