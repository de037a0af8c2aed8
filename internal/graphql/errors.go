package graphql

import (
	"errors"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/theographic/theodb/internal/query"
)

func errorAt(pos *ast.Position, format string, args ...any) *gqlerror.Error {
	err := gqlerror.Errorf(format, args...)
	if pos != nil {
		err.Locations = []gqlerror.Location{{Line: pos.Line, Column: pos.Column}}
	}
	return err
}

// toGQLError keeps gqlparser errors as they are and wraps anything else,
// recording the query status as an extension.
func toGQLError(err error, pos *ast.Position) *gqlerror.Error {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		return gqlErr
	}
	gqlErr = errorAt(pos, "%s", err.Error())
	gqlErr.Err = err
	gqlErr.Extensions = map[string]any{"status": query.ErrorStatus(err)}
	return gqlErr
}
