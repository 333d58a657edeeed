package registration

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// ConfirmationNumberPrefix prefixes every confirmation number
const ConfirmationNumberPrefix = "EA-"

// confirmationAlphabet omits the ambiguous characters I, O, and 0 so numbers
// survive being read over the phone. 33 symbols.
const confirmationAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ123456789"

// confirmationLength is the number of random symbols after the prefix
const confirmationLength = 6

// GenerateConfirmationNumber returns a new confirmation number of the form
// EA-XXXXXX using a cryptographic random source.
func GenerateConfirmationNumber() (string, error) {
	var sb strings.Builder
	sb.WriteString(ConfirmationNumberPrefix)

	max := big.NewInt(int64(len(confirmationAlphabet)))
	for i := 0; i < confirmationLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating confirmation number: %w", err)
		}
		sb.WriteByte(confirmationAlphabet[n.Int64()])
	}

	return sb.String(), nil
}

// IsValidConfirmationNumber reports whether the string has the expected
// shape: the EA- prefix followed by exactly six alphabet symbols.
func IsValidConfirmationNumber(s string) bool {
	if !strings.HasPrefix(s, ConfirmationNumberPrefix) {
		return false
	}
	body := strings.TrimPrefix(s, ConfirmationNumberPrefix)
	if len(body) != confirmationLength {
		return false
	}
	for i := 0; i < len(body); i++ {
		if !strings.ContainsRune(confirmationAlphabet, rune(body[i])) {
			return false
		}
	}
	return true
}
