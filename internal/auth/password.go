package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a registry credential at the given cost.
// Credentials are hashed even though the registry is an in-memory mock.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a login attempt against the stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
