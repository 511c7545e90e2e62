package graph

import (
	_ "embed"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var Schema string

// LintSchema прогоняет схему через gqlparser и возвращает корневые поля
// в виде "Query.hello"
func LintSchema() ([]string, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: Schema})
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	var fields []string
	for _, def := range []*ast.Definition{schema.Query, schema.Mutation, schema.Subscription} {
		if def == nil {
			continue
		}
		for _, f := range def.Fields {
			// служебные __schema и __type не считаем
			if len(f.Name) > 1 && f.Name[:2] == "__" {
				continue
			}
			fields = append(fields, def.Name+"."+f.Name)
		}
	}
	return fields, nil
}
