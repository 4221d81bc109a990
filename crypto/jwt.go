package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/caasmo/tablebook/db"
)

const (
	// MinSecretLength is the minimum length for the JWT signing secret.
	// 32 bytes (256 bits) is the recommended minimum for HMAC-SHA256 keys.
	MinSecretLength = 32
)

var (
	// ErrTokenExpired is returned when the credential is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidToken is returned for malformed payloads and bad signatures.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidSigningMethod is returned when the signing method is not HS256.
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	// ErrInvalidSecretLength is returned for too short signing secrets.
	ErrInvalidSecretLength = errors.New("invalid secret length")
)

// SessionClaims is the payload of a session credential: the user record at
// issuance time, minus the password hash. Validity is purely cryptographic;
// the claims are trusted for the full token lifetime even if the underlying
// user row changes afterwards.
type SessionClaims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	Verified  bool   `json:"verified"`
	jwt.RegisteredClaims
}

// Validate implements jwt.ClaimsValidator. The parser checks the standard
// claims (exp, iat) before calling this; here we enforce presence of our
// custom claims, which the parser does not do.
func (c *SessionClaims) Validate() error {
	if c.UserID == 0 {
		return fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	if c.Role == "" {
		return fmt.Errorf("%w: missing role claim", ErrInvalidToken)
	}
	if c.IssuedAt == nil {
		return fmt.Errorf("%w: missing iat claim", ErrInvalidToken)
	}
	return nil
}

// User rebuilds the user snapshot embedded in the claims.
func (c *SessionClaims) User() db.User {
	return db.User{
		ID:        c.UserID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Role:      c.Role,
		Verified:  c.Verified,
	}
}

// NewSessionToken signs a session credential for the given user with an
// absolute expiry of now+duration.
func NewSessionToken(user db.User, secret []byte, duration time.Duration) (string, time.Time, error) {
	if len(secret) < MinSecretLength {
		return "", time.Time{}, ErrInvalidSecretLength
	}

	now := time.Now()
	expiry := now.Add(duration)
	claims := &SessionClaims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Role:      user.Role,
		Verified:  user.Verified,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiry, nil
}

// ParseSessionToken verifies signature and expiry and returns the decoded
// claims. Only HS256 is accepted.
func ParseSessionToken(token string, secret []byte) (*SessionClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	claims := &SessionClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
		default:
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
