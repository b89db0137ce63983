// Package stylist produces random public identifiers of a given shape.
//
// The set of styles is closed: Numeric, Alphanumeric and UUID. Every Stylist
// is stateless after construction and safe for concurrent use.
package stylist

import (
	"errors"
	"fmt"
)

type Style string

const (
	Numeric      Style = "numeric"
	Alphanumeric Style = "alphanumeric"
	UUID         Style = "uuid"
)

var ErrUnknownStyle = errors.New("stylist: unknown style")

// Styles returns the recognized styles.
func Styles() []Style {
	return []Style{Numeric, Alphanumeric, UUID}
}

func (s Style) Valid() bool {
	switch s {
	case Numeric, Alphanumeric, UUID:
		return true
	}
	return false
}

func (s Style) String() string {
	return string(s)
}

// Stylist generates one random candidate per call.
type Stylist interface {
	RandomID() (string, error)
	Style() Style

	stylist()
}

// New returns the Stylist for style. length is ignored for UUID.
func New(style Style, length int) (Stylist, error) {
	switch style {
	case Numeric:
		return newNumeric(length), nil
	case Alphanumeric:
		return newAlphanumeric(length), nil
	case UUID:
		return uuidStylist{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, string(style))
	}
}
