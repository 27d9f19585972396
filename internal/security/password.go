package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the fixed work factor for stored credentials.
const bcryptCost = 10

// HashPassword computes a salted bcrypt digest of the plaintext.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored digest.
// It fails closed: any mismatch or malformed digest yields false.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
