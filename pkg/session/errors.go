package session

import (
	"errors"

	"github.com/aretw0/turing/pkg/domain"
)

// ErrTooManySessions is returned by Start when the session cap is reached.
var ErrTooManySessions = errors.New("too many sessions")

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound)
}
