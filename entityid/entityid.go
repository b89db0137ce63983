// Package entityid generates the internal primary keys of entities. Primary
// keys never leave the service unless public identifiers are switched off.
package entityid

import (
	"fmt"

	"github.com/google/uuid"
)

type ID string

func (i ID) String() string {
	return string(i)
}

type idGenerator struct{}

func newIDGenerator() *idGenerator {
	return &idGenerator{}
}

func (idg idGenerator) Generate() ID {
	return ID(uuid.NewString())
}

var Generator = newIDGenerator()

// Parse validates s as a primary key.
func Parse(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("entityid: %w", err)
	}
	return ID(id.String()), nil
}
