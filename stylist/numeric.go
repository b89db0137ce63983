package stylist

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var ten = big.NewInt(10)

// numeric yields decimal strings of exactly length digits with no leading zero.
type numeric struct {
	min  *big.Int
	span *big.Int
}

func newNumeric(length int) numeric {
	if length < 1 {
		length = 1
	}
	lowest := new(big.Int).Exp(ten, big.NewInt(int64(length-1)), nil)
	limit := new(big.Int).Mul(lowest, ten)
	return numeric{
		min: lowest,
		// limit is exclusive, so offsets cover [lowest, 10^length - 1].
		span: new(big.Int).Sub(limit, lowest),
	}
}

func (n numeric) RandomID() (string, error) {
	offset, err := rand.Int(rand.Reader, n.span)
	if err != nil {
		return "", fmt.Errorf("numeric id: %w", err)
	}
	return offset.Add(offset, n.min).String(), nil
}

func (numeric) Style() Style { return Numeric }

func (numeric) stylist() {}
