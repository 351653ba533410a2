package schema

import (
	"fmt"

	"go.starlark.net/syntax"
)

// typeIdents are bare identifiers accepted as type references.
var typeIdents = map[string]bool{
	"str":   true,
	"int":   true,
	"float": true,
	"bool":  true,
}

// parseLegacy reads a literal dictionary expression. The text is only
// parsed into a syntax tree, never evaluated.
func parseLegacy(path string, data []byte) ([]entry, error) {
	name := path
	if name == "" {
		name = "<schema>"
	}

	opts := syntax.FileOptions{}

	expr, err := opts.ParseExpr(name, data, 0)
	if err != nil {
		return nil, &SchemaParseError{Kind: ErrSyntax, Err: fmt.Errorf("literal: %w", err)}
	}

	dict, ok := unparen(expr).(*syntax.DictExpr)
	if !ok {
		return nil, &SchemaParseError{Kind: ErrShape, Err: fmt.Errorf("expected a dictionary literal at line %d", line(expr))}
	}

	return dictEntries(dict)
}

func dictEntries(dict *syntax.DictExpr) ([]entry, error) {
	entries := make([]entry, 0, len(dict.List))

	for _, item := range dict.List {
		de, ok := item.(*syntax.DictEntry)
		if !ok {
			return nil, &SchemaParseError{Kind: ErrShape, Err: fmt.Errorf("unexpected element at line %d", line(item))}
		}

		key, ok := unparen(de.Key).(*syntax.Literal)
		if !ok || key.Token != syntax.STRING {
			return nil, &SchemaParseError{Kind: ErrShape, Err: fmt.Errorf("keys must be strings (line %d)", line(de.Key))}
		}

		value, err := literalValue(de.Value)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry{key: key.Value.(string), value: value, line: line(de.Key)})
	}

	return entries, nil
}

func literalValue(expr syntax.Expr) (any, error) {
	switch e := unparen(expr).(type) {
	case *syntax.DictExpr:
		return dictEntries(e)
	case *syntax.Literal:
		if e.Token == syntax.STRING {
			return e.Value.(string), nil
		}

		return literal{raw: e.Raw}, nil
	case *syntax.Ident:
		if typeIdents[e.Name] {
			return e.Name, nil
		}

		// True, False, None and any other name are values, not types.
		return literal{raw: e.Name}, nil
	default:
		return nil, &SchemaParseError{Kind: ErrShape, Err: fmt.Errorf("unsupported expression %T at line %d", e, line(expr))}
	}
}

func unparen(expr syntax.Expr) syntax.Expr {
	for {
		p, ok := expr.(*syntax.ParenExpr)
		if !ok {
			return expr
		}

		expr = p.X
	}
}

func line(n syntax.Node) int {
	start, _ := n.Span()
	return int(start.Line)
}
