package identifiable

import (
	"context"
	"fmt"
)

// Source finds a record by an exact column match.
type Source[R any] interface {
	FindBy(ctx context.Context, column, value string) (R, bool, error)
}

// Find returns the record whose identifier equals value. A miss is reported
// with ok == false and a nil error.
func Find[R any](ctx context.Context, t *Type, src Source[R], value string) (R, bool, error) {
	return src.FindBy(ctx, t.decl.column, value)
}

// MustFind is like Find but returns ErrNotFound on a miss.
func MustFind[R any](ctx context.Context, t *Type, src Source[R], value string) (R, error) {
	rec, ok, err := Find(ctx, t, src, value)
	if err != nil {
		return rec, err
	}
	if !ok {
		return rec, fmt.Errorf("%w: %s.%s = %q", ErrNotFound, t.schema.Table, t.decl.column, value)
	}
	return rec, nil
}
