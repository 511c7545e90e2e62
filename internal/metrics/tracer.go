package metrics

import (
	"context"

	"github.com/VitaminP8/gqltour/internal/gqlerr"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/graph-gophers/graphql-go/introspection"
	"github.com/graph-gophers/graphql-go/trace/tracer"
)

const anonymousOperation = "anonymous"

// Tracer считает операции и ошибки полей graphql-go
type Tracer struct {
	m *Metrics
}

var (
	_ tracer.Tracer           = Tracer{}
	_ tracer.ValidationTracer = Tracer{}
)

func (m *Metrics) Tracer() Tracer {
	return Tracer{m: m}
}

func (t Tracer) TraceQuery(ctx context.Context, queryString, operationName string, variables map[string]interface{}, varTypes map[string]*introspection.Type) (context.Context, tracer.QueryFinishFunc) {
	if operationName == "" {
		operationName = anonymousOperation
	}
	return ctx, func(errs []*gqlerrors.QueryError) {
		status := "ok"
		if len(errs) > 0 {
			status = "error"
		}
		t.m.operations.WithLabelValues(operationName, status).Inc()
	}
}

func (t Tracer) TraceField(ctx context.Context, label, typeName, fieldName string, trivial bool, args map[string]interface{}) (context.Context, tracer.FieldFinishFunc) {
	return ctx, func(err *gqlerrors.QueryError) {
		if err == nil {
			return
		}
		t.m.fieldErrors.WithLabelValues(typeName, fieldName, errorCode(err)).Inc()
	}
}

// TraceValidation ловит запросы, не прошедшие валидацию схемы
func (t Tracer) TraceValidation(ctx context.Context) tracer.ValidationFinishFunc {
	return func(errs []*gqlerrors.QueryError) {
		if len(errs) > 0 {
			t.m.operations.WithLabelValues(anonymousOperation, "invalid").Inc()
		}
	}
}

func errorCode(err *gqlerrors.QueryError) string {
	if err.ResolverError == nil {
		return gqlerr.KindInternal.Code()
	}
	return gqlerr.KindOf(err.ResolverError).Code()
}
