package translator

import (
	"strconv"

	"github.com/mongolift/mongolift/internal/core/command"
	"github.com/mongolift/mongolift/internal/core/exchange"
	"github.com/mongolift/mongolift/internal/core/feature"
	"github.com/mongolift/mongolift/internal/core/statement"
)

// The walk dispatches through void visit methods; typed results come back
// through the exchange slot. Each descriptor names the shape of data a
// request expects, so a visit method cannot answer a filter request with a
// field path.
var (
	valueRequest     = exchange.NewDescriptor[command.Value]("native value")
	filterRequest    = exchange.NewDescriptor[command.Filter]("filter")
	fieldPathRequest = exchange.NewDescriptor[string]("field path")
)

// renderValue visits a value expression and returns its native rendering.
func (t *Translator) renderValue(e statement.Expr) (command.Value, error) {
	v := exchange.Execute(&t.slot, valueRequest, func() { t.visitValueExpr(e) })
	if t.err != nil {
		return nil, t.err
	}
	return v, nil
}

// renderFilter visits a predicate and returns its filter rendering.
func (t *Translator) renderFilter(p statement.Predicate) (command.Filter, error) {
	f := exchange.Execute(&t.slot, filterRequest, func() { t.visitPredicate(p) })
	if t.err != nil {
		return nil, t.err
	}
	return f, nil
}

// visitValueExpr serves a native-value request. On failure it records the
// error and yields a nil value so the open request still drains.
func (t *Translator) visitValueExpr(e statement.Expr) {
	switch x := e.(type) {
	case *statement.Literal:
		v, err := command.ToNative(x.Value)
		if err != nil {
			t.fail(err)
			exchange.Yield(&t.slot, valueRequest, command.Value(nil))
			return
		}
		exchange.Yield(&t.slot, valueRequest, command.Value(command.Literal{Value: v}))

	case *statement.NumericLiteral:
		if i, err := strconv.ParseInt(x.Text, 10, 64); err == nil {
			exchange.Yield(&t.slot, valueRequest, command.Value(command.Literal{Value: i}))
			return
		}
		f, err := strconv.ParseFloat(x.Text, 64)
		if err != nil {
			t.fail(feature.Errorf("numeric literal", "numeric literal %q has no MongoDB representation", x.Text))
			exchange.Yield(&t.slot, valueRequest, command.Value(nil))
			return
		}
		exchange.Yield(&t.slot, valueRequest, command.Value(command.Literal{Value: f}))

	case *statement.Parameter:
		t.binders = append(t.binders, Binder{
			Source:  BindParameter,
			Name:    x.Name,
			Ordinal: x.Ordinal,
		})
		exchange.Yield(&t.slot, valueRequest, command.Value(command.Marker{}))

	default:
		t.fail(feature.Errorf("expression", "expressions of type %T cannot be rendered as a value by the MongoDB dialect", e))
		exchange.Yield(&t.slot, valueRequest, command.Value(nil))
	}
}

// visitFieldPath serves a field-path request.
func (t *Translator) visitFieldPath(e statement.Expr) {
	switch x := e.(type) {
	case *statement.ColumnRef:
		exchange.Yield(&t.slot, fieldPathRequest, x.Column)
	default:
		t.fail(feature.Errorf("field path", "expressions of type %T cannot be resolved to a field path", e))
		exchange.Yield(&t.slot, fieldPathRequest, "")
	}
}
