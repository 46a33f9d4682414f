package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionID returns a fresh opaque identifier. Used for auth
// sessions, worksheet editor sessions, game sessions and OAuth state
// tokens, all of which travel in cookies or JSON and must be
// unguessable.
func GenerateSessionID() string {
	return uuid.New().String()
}
