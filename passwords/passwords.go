package passwords

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("password does not match")

func Hash(unhashedPassword []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(unhashedPassword, bcrypt.DefaultCost)
}

// Compare returns ErrMismatch when unhashedPassword is not the password
// behind hashedPassword.
func Compare(hashedPassword, unhashedPassword []byte) error {
	err := bcrypt.CompareHashAndPassword(hashedPassword, unhashedPassword)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
