package usecase

import (
	"strings"

	"github.com/google/uuid"
)

const codeLength = 10

// generateActivationCode derives a short human-pasteable activation code from
// a random 128-bit identifier: separators stripped, uppercased, truncated.
func generateActivationCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id)[:codeLength]
}
