package identity

import (
	"errors"
	"strings"
)

// ErrMissingToken is returned when a request carries no usable bearer token
var ErrMissingToken = errors.New("no access token provided")

// ExtractToken pulls the bearer token out of an Authorization header
// value. Both a bare token and the "Bearer <token>" form are accepted;
// the last whitespace-delimited segment wins.
func ExtractToken(headerValue string) (string, error) {
	fields := strings.Fields(headerValue)
	if len(fields) == 0 {
		return "", ErrMissingToken
	}
	return fields[len(fields)-1], nil
}
