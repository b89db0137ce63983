package identifiable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DillonStreator/identifiable/stylist"
)

// Registration errors. Each is fatal and surfaced once, when a record type is
// registered.
var (
	ErrColumnMustBeASymbol          = errors.New("identifiable: column must be a symbol")
	ErrColumnCannotBeID             = errors.New("identifiable: column cannot be the primary key")
	ErrColumnMustExistInTable       = errors.New("identifiable: column must exist in the table")
	ErrStyleMustBeAValidStyle       = errors.New("identifiable: style must be a valid style")
	ErrLengthMustBeAnInteger        = errors.New("identifiable: length must be an integer")
	ErrLengthIsTooShort             = fmt.Errorf("identifiable: length must be at least %d", MinLength)
	ErrLengthIsTooLong              = fmt.Errorf("identifiable: length cannot be more than %d", MaxLength)
	ErrLengthMustBeNilIfStyleIsUUID = errors.New("identifiable: length cannot be set with the uuid style, uuids have a fixed length")
)

// ErrRanOutOfAttemptsToSetPublicID is returned when every attempt collided
// with a persisted record. The declared length is too short for the table.
var ErrRanOutOfAttemptsToSetPublicID = errors.New("identifiable: ran out of attempts to set public id")

// ErrNotFound is returned by MustFind when no record holds the identifier.
var ErrNotFound = errors.New("identifiable: not found")

type ColumnError struct {
	Value any
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: got %v (%T)", ErrColumnMustBeASymbol, e.Value, e.Value)
}

func (e *ColumnError) Unwrap() error { return ErrColumnMustBeASymbol }

type ColumnNotInTableError struct {
	Column       string
	ValidColumns []string
}

func (e *ColumnNotInTableError) Error() string {
	return fmt.Sprintf("%s: got %q, valid columns are [%s]",
		ErrColumnMustExistInTable, e.Column, strings.Join(e.ValidColumns, ", "))
}

func (e *ColumnNotInTableError) Unwrap() error { return ErrColumnMustExistInTable }

type StyleError struct {
	Style       any
	ValidStyles []stylist.Style
}

func (e *StyleError) Error() string {
	valid := make([]string, len(e.ValidStyles))
	for i, s := range e.ValidStyles {
		valid[i] = s.String()
	}
	return fmt.Sprintf("%s: got %v, valid options are [%s]",
		ErrStyleMustBeAValidStyle, e.Style, strings.Join(valid, ", "))
}

func (e *StyleError) Unwrap() error { return ErrStyleMustBeAValidStyle }

// ExhaustedError reports which table and column could not be assigned.
type ExhaustedError struct {
	Table    string
	Column   string
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: tried %d times on %s.%s, increase the length",
		ErrRanOutOfAttemptsToSetPublicID, e.Attempts, e.Table, e.Column)
}

func (e *ExhaustedError) Unwrap() error { return ErrRanOutOfAttemptsToSetPublicID }
