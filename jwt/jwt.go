package jwt

import (
	"errors"
	"os"
	"time"

	jwtgo "github.com/dgrijalva/jwt-go"
)

const ttl = 15 * time.Minute

var ErrExpired = errors.New("jwt is expired")

// Input identifies the session owner. Key is the user's key as surfaced by
// the identifiable configuration: the public id, or the primary key when
// overwrite_to_key is off.
type Input struct {
	Key   string
	Email string
}

type claim struct {
	Email string `json:"email"`
	jwtgo.StandardClaims
}

func getJWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

func SignJWT(input Input) (string, error) {
	c := claim{
		Email: input.Email,
		StandardClaims: jwtgo.StandardClaims{
			Subject:   input.Key,
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, c)
	return token.SignedString([]byte(getJWTSecret()))
}

func Verify(jwt string) (claim, error) {
	token, err := jwtgo.ParseWithClaims(
		jwt,
		&claim{},
		func(token *jwtgo.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(getJWTSecret()), nil
		},
	)
	if err != nil {
		var validation *jwtgo.ValidationError
		if errors.As(err, &validation) && validation.Errors&jwtgo.ValidationErrorExpired != 0 {
			return claim{}, ErrExpired
		}
		return claim{}, err
	}

	claims, ok := token.Claims.(*claim)
	if !ok {
		return claim{}, errors.New("failed to parse claim")
	}

	if claims.ExpiresAt < time.Now().UTC().Unix() {
		return claim{}, ErrExpired
	}

	return *claims, nil
}
