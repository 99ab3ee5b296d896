package pkg

import (
	"strings"

	"github.com/google/uuid"
)

// matchIDLength keeps match ids short enough to share by hand.
const matchIDLength = 6

// GenerateMatchID - short upper-case code used to join private matches.
func GenerateMatchID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	return strings.ToUpper(id[:matchIDLength])
}

// GenerateNewSessionID - identifies a player across reconnects.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
