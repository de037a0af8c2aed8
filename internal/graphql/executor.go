// Package graphql executes GraphQL query documents against the entity
// declarations without a generated schema: root fields map to collections
// and search operations, nested fields map to declared entity fields.
package graphql

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/theographic/theodb/internal/query"
	"github.com/theographic/theodb/internal/schema"
	"github.com/theographic/theodb/internal/telemetry"
	"github.com/theographic/theodb/pkg"
)

const queryTypeName = "Query"

type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Response has no data when the document could not be executed at all.
type Response struct {
	Data   *pkg.Object   `json:"data,omitempty"`
	Errors gqlerror.List `json:"errors,omitempty"`
}

func requestError(err *gqlerror.Error) *Response {
	return &Response{Errors: gqlerror.List{err}}
}

type Executor struct {
	engine *query.Engine
}

func NewExecutor(engine *query.Engine) *Executor {
	return &Executor{engine: engine}
}

type execution struct {
	ctx    context.Context
	engine *query.Engine
	doc    *ast.QueryDocument
	vars   map[string]any
	errors gqlerror.List
}

func (x *Executor) Execute(ctx context.Context, req Request) *Response {
	start := time.Now()
	ctx, span := telemetry.Tracer().Start(ctx, "graphql.execute",
		trace.WithAttributes(attribute.String("graphql.operation.name", req.OperationName)))
	defer span.End()

	resp := x.execute(ctx, req)

	outcome := "ok"
	switch {
	case resp.Data == nil:
		outcome = "rejected"
	case len(resp.Errors) > 0:
		outcome = "partial"
	}
	if len(resp.Errors) > 0 {
		telemetry.TraceError(span, resp.Errors)
		pkg.DebugLog("graphql:", outcome, resp.Errors.Error())
	}
	operationDurationHistogram.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return resp
}

func (x *Executor) execute(ctx context.Context, req Request) *Response {
	if len(strings.TrimSpace(req.Query)) == 0 {
		return requestError(gqlerror.Errorf("Must provide query string."))
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: "request", Input: req.Query})
	if err != nil {
		return requestError(toGQLError(err, nil))
	}

	if gqlErr := checkFragmentCycles(doc); gqlErr != nil {
		return requestError(gqlErr)
	}

	op, gqlErr := selectOperation(doc, req.OperationName)
	if gqlErr != nil {
		return requestError(gqlErr)
	}
	if op.Operation != ast.Query {
		return requestError(errorAt(op.Position, "%s operations are not supported", op.Operation))
	}

	vars, gqlErr := coerceVariables(op, req.Variables)
	if gqlErr != nil {
		return requestError(gqlErr)
	}

	ex := &execution{ctx: ctx, engine: x.engine, doc: doc, vars: vars}
	groups, err := ex.collectFields(queryTypeName, op.SelectionSet)
	if err != nil {
		return requestError(toGQLError(err, op.Position))
	}

	data := pkg.NewObject()
	for _, g := range groups {
		data.Set(g.key, ex.resolveRoot(g))
	}
	return &Response{Data: data, Errors: ex.errors}
}

func selectOperation(doc *ast.QueryDocument, name string) (*ast.OperationDefinition, *gqlerror.Error) {
	if len(name) > 0 {
		op := doc.Operations.ForName(name)
		if op == nil {
			return nil, gqlerror.Errorf("Unknown operation named %q.", name)
		}
		return op, nil
	}
	switch len(doc.Operations) {
	case 0:
		return nil, gqlerror.Errorf("Must provide an operation.")
	case 1:
		return doc.Operations[0], nil
	}
	return nil, gqlerror.Errorf("Must provide operation name if query contains multiple operations.")
}

func coerceVariables(op *ast.OperationDefinition, input map[string]any) (map[string]any, *gqlerror.Error) {
	vars := map[string]any{}
	for _, def := range op.VariableDefinitions {
		if v, ok := input[def.Variable]; ok {
			if v == nil && def.Type.NonNull {
				return nil, errorAt(def.Position, "Variable \"$%s\" of non-null type %q must not be null.", def.Variable, def.Type.String())
			}
			vars[def.Variable] = v
			continue
		}
		if def.DefaultValue != nil {
			v, err := def.DefaultValue.Value(nil)
			if err != nil {
				return nil, errorAt(def.Position, "Variable \"$%s\" has an invalid default value: %s", def.Variable, err)
			}
			vars[def.Variable] = v
			continue
		}
		if def.Type.NonNull {
			return nil, errorAt(def.Position, "Variable \"$%s\" of required type %q was not provided.", def.Variable, def.Type.String())
		}
	}
	return vars, nil
}

func (ex *execution) resolveRoot(g *fieldGroup) any {
	f := g.first()
	_, span := telemetry.Tracer().Start(ex.ctx, "graphql.resolve", trace.WithAttributes(
		attribute.String("graphql.field.name", f.Name),
		attribute.String("graphql.field.path", g.key),
	))
	defer span.End()

	value, err := ex.rootField(g)
	if err != nil {
		telemetry.TraceError(span, err)
		gqlErr := toGQLError(err, f.Position)
		gqlErr.Path = ast.Path{ast.PathName(g.key)}
		ex.errors = append(ex.errors, gqlErr)
		return nil
	}
	return value
}

func (ex *execution) rootField(g *fieldGroup) (any, error) {
	f := g.first()
	switch f.Name {
	case query.TypenameField:
		return queryTypeName, nil
	case "__schema", "__type":
		return nil, query.NewQueryError(http.StatusBadRequest, "Introspection is not supported")
	}

	if entity, ok := ex.engine.Schema.ByCollection(f.Name); ok {
		return ex.findMany(entity, g)
	}
	if entity, ok := ex.engine.Schema.BySearch(f.Name); ok {
		return ex.search(entity, g)
	}
	return nil, query.NewQueryError(http.StatusBadRequest, fmt.Sprintf("Cannot query field %q on type %q.", f.Name, queryTypeName))
}

func (ex *execution) findMany(entity *schema.Entity, g *fieldGroup) (any, error) {
	f := g.first()
	args, err := ex.arguments(f, "where", "limit", "offset")
	if err != nil {
		return nil, err
	}

	var where map[string]any
	if raw := args["where"]; raw != nil {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, errorAt(f.Position, "Argument \"where\" on field %q must be an object.", f.Name)
		}
		where = obj
	}
	limit, err := intArgument(f, args, "limit")
	if err != nil {
		return nil, err
	}
	offset, err := intArgument(f, args, "offset")
	if err != nil {
		return nil, err
	}

	sel, err := ex.selection(entity, f, g.subSelections())
	if err != nil {
		return nil, err
	}

	records, err := ex.engine.FindMany(entity, where, limit, offset)
	if err != nil {
		return nil, err
	}
	return ex.engine.ProjectAll(entity, records, sel)
}

func (ex *execution) search(entity *schema.Entity, g *fieldGroup) (any, error) {
	f := g.first()
	args, err := ex.arguments(f, "input")
	if err != nil {
		return nil, err
	}

	input, ok := args["input"].(string)
	if !ok {
		if args["input"] == nil {
			return nil, errorAt(f.Position, "Field %q argument \"input\" of type \"String!\" is required.", f.Name)
		}
		return nil, errorAt(f.Position, "Argument \"input\" on field %q must be a String.", f.Name)
	}

	sel, err := ex.selection(entity, f, g.subSelections())
	if err != nil {
		return nil, err
	}

	records, err := ex.engine.Search(entity, input)
	if err != nil {
		return nil, err
	}
	return ex.engine.ProjectAll(entity, records, sel)
}

// arguments evaluates the field's arguments, rejecting names not in allowed.
func (ex *execution) arguments(f *ast.Field, allowed ...string) (map[string]any, error) {
	args := map[string]any{}
	for _, arg := range f.Arguments {
		known := false
		for _, name := range allowed {
			if arg.Name == name {
				known = true
				break
			}
		}
		if !known {
			return nil, errorAt(arg.Position, "Unknown argument %q on field \"%s.%s\".", arg.Name, queryTypeName, f.Name)
		}

		v, err := arg.Value.Value(ex.vars)
		if err != nil {
			return nil, errorAt(arg.Position, "%s", err)
		}
		args[arg.Name] = v
	}
	return args, nil
}

func intArgument(f *ast.Field, args map[string]any, name string) (int, error) {
	v := args[name]
	if v == nil {
		return 0, nil
	}
	if !pkg.IsIntegral(v) {
		return 0, errorAt(f.Position, "Argument %q on field %q must be an Int.", name, f.Name)
	}
	return pkg.NumToInt(v), nil
}

// selection converts a GraphQL selection set on entity into a projection.
func (ex *execution) selection(entity *schema.Entity, field *ast.Field, set ast.SelectionSet) (query.Selection, error) {
	if len(set) == 0 {
		return nil, errorAt(field.Position, "Field %q of type \"[%s]\" must have a selection of subfields.", field.Name, entity.Name)
	}

	groups, err := ex.collectFields(entity.Name, set)
	if err != nil {
		return nil, err
	}

	sel := make(query.Selection, 0, len(groups))
	for _, g := range groups {
		f := g.first()
		if len(f.Arguments) > 0 {
			return nil, errorAt(f.Arguments[0].Position, "Unknown argument %q on field \"%s.%s\".", f.Arguments[0].Name, entity.Name, f.Name)
		}

		sub := g.subSelections()
		if f.Name == query.TypenameField {
			if len(sub) > 0 {
				return nil, errorAt(f.Position, "Field %q must not have a selection since type \"String!\" has no subfields.", f.Name)
			}
			sel = append(sel, &query.SelectedField{Alias: g.key, Name: f.Name})
			continue
		}

		decl, ok := entity.Field(f.Name)
		if !ok {
			return nil, errorAt(f.Position, "Cannot query field %q on type %q.", f.Name, entity.Name)
		}

		if !decl.IsRelation() {
			if len(sub) > 0 {
				return nil, errorAt(f.Position, "Field %q must not have a selection since type %q has no subfields.", f.Name, decl.BuiltinType)
			}
			sel = append(sel, &query.SelectedField{Alias: g.key, Name: f.Name})
			continue
		}

		target, ok := ex.engine.Schema.Target(decl.Relation)
		if !ok {
			return nil, errorAt(f.Position, "Unknown relation target %s.", decl.Relation.Target)
		}
		nested, err := ex.selection(target, f, sub)
		if err != nil {
			return nil, err
		}
		sel = append(sel, &query.SelectedField{Alias: g.key, Name: f.Name, Selection: nested})
	}
	return sel, nil
}
