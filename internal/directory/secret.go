package directory

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// newSecret генерирует 32 случайных байта и возвращает пару
// (plain base64url, SHA-256 хэш base64url).
func newSecret() (plain, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("directory.newSecret: %w", err)
	}

	plain = base64.RawURLEncoding.EncodeToString(b)
	return plain, hashSecret(plain), nil
}

// hashSecret — SHA-256 -> base64url; в таком виде секреты хранятся в БД.
func hashSecret(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
