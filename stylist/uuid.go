package stylist

import (
	"fmt"

	"github.com/google/uuid"
)

type uuidStylist struct{}

func (uuidStylist) RandomID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("uuid id: %w", err)
	}
	return id.String(), nil
}

func (uuidStylist) Style() Style { return UUID }

func (uuidStylist) stylist() {}
