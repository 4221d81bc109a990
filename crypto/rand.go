package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// ActionTokenBytes is the entropy of an action token. Hex encoding yields
// 40 characters on the wire.
const ActionTokenBytes = 20

// AlphanumericAlphabet is used for secrets and OAuth2 state values.
const AlphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// The OAuth2 specification (RFC 6749) does not mandate a state length, only
// a random unguessable string. 32 characters is common practice.
const Oauth2StateLength = 32

// NewActionToken creates a cryptographically secure random action token,
// hex encoded.
func NewActionToken() (string, error) {
	b := make([]byte, ActionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RandomString returns a random string of the given length built from the
// given alphabet. It panics if the system source of randomness fails, which
// is not a recoverable condition.
func RandomString(length int, alphabet string) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

// Oauth2State returns a state parameter for the OAuth2 authorization
// redirect. The state links the authorization request to its callback and
// prevents CSRF.
func Oauth2State() string {
	return RandomString(Oauth2StateLength, AlphanumericAlphabet)
}
