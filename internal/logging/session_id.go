package logging

import (
	"github.com/google/uuid"
)

// GenerateSessionID returns a random identifier for one decode session.
func GenerateSessionID() string {
	return uuid.NewString()
}
