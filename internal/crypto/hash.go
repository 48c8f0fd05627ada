package crypto

import (
	"errors"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidHashFormat = errors.New("invalid encoded hash format")

// DefaultHashParams returns recommended Argon2id parameters for password hashing.
func DefaultHashParams() *argon2id.Params {
	return &argon2id.Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// PasswordHasher hashes new passwords with Argon2id and verifies both Argon2id
// and legacy bcrypt hashes.
type PasswordHasher struct {
	params *argon2id.Params
}

// NewPasswordHasher creates a PasswordHasher. A nil params uses DefaultHashParams.
func NewPasswordHasher(params *argon2id.Params) *PasswordHasher {
	if params == nil {
		params = DefaultHashParams()
	}
	return &PasswordHasher{params: params}
}

// Hash returns the PHC encoded Argon2id hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, h.params)
}

// Verify checks password against encodedHash in constant time. needsRehash is
// true when the stored hash is a legacy bcrypt hash that should be replaced.
func (h *PasswordHasher) Verify(password, encodedHash string) (match, needsRehash bool, err error) {
	if isBcrypt(encodedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		switch {
		case err == nil:
			return true, true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, false, nil
		default:
			return false, false, ErrInvalidHashFormat
		}
	}

	match, err = argon2id.ComparePasswordAndHash(password, encodedHash)
	if err != nil {
		return false, false, ErrInvalidHashFormat
	}

	return match, false, nil
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
