package crypto

import "golang.org/x/crypto/bcrypt"

// PasswordHashCost is the bcrypt cost factor used for all stored hashes.
const PasswordHashCost = 10

// CheckPassword compares a bcrypt hashed password with its possible plaintext
// equivalent. bcrypt's comparison is constant time.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateHash creates a bcrypt hash from a password.
func GenerateHash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(hashedBytes), err
}
