package identifiable

import (
	"context"
	"fmt"
)

// Record exposes the field holding the public identifier.
type Record interface {
	IdentifierField(column string) string
	SetIdentifierField(column, value string)
}

// Checker reports whether a persisted record already holds value in column.
type Checker interface {
	Exists(ctx context.Context, column, value string) (bool, error)
}

type CheckerFunc func(ctx context.Context, column, value string) (bool, error)

func (f CheckerFunc) Exists(ctx context.Context, column, value string) (bool, error) {
	return f(ctx, column, value)
}

// Assign sets a unique identifier on rec unless it already has one.
//
// Each attempt draws one candidate and asks checker whether it is taken. The
// check is a point-in-time query, so concurrent inserts can still race; a
// unique constraint on the column is expected to catch that at insert time.
func (t *Type) Assign(ctx context.Context, rec Record, checker Checker) error {
	column := t.decl.column
	if rec.IdentifierField(column) != "" {
		return nil
	}

	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		t.observer.Attempt(t.schema.Table)

		candidate, err := t.generator.RandomID()
		if err != nil {
			return fmt.Errorf("generate %s.%s: %w", t.schema.Table, column, err)
		}

		exists, err := checker.Exists(ctx, column, candidate)
		if err != nil {
			return fmt.Errorf("check %s.%s: %w", t.schema.Table, column, err)
		}
		if exists {
			t.observer.Collision(t.schema.Table)
			t.logger.Debug("public id collision", "attempt", attempt)
			continue
		}

		rec.SetIdentifierField(column, candidate)
		t.observer.Assigned(t.schema.Table, attempt)
		return nil
	}

	t.observer.Exhausted(t.schema.Table)
	t.logger.Warn("ran out of attempts to set public id",
		"attempts", t.maxAttempts, "length", t.decl.length)
	return &ExhaustedError{Table: t.schema.Table, Column: column, Attempts: t.maxAttempts}
}

// Assigner binds a Type to the storage it checks against.
type Assigner struct {
	typ     *Type
	checker Checker
}

func (t *Type) Bind(checker Checker) *Assigner {
	return &Assigner{typ: t, checker: checker}
}

// Ensure assigns rec's identifier if it has none. It is safe to call any
// number of times, which makes it suitable for before-insert hooks.
func (a *Assigner) Ensure(ctx context.Context, rec Record) error {
	return a.typ.Assign(ctx, rec, a.checker)
}

func (a *Assigner) Type() *Type { return a.typ }
