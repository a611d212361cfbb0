// internal/app/system/authutil/authutil.go
package authutil

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// HashPassword hashes a plaintext password with bcrypt at default cost.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidatePassword enforces the local password rules. These checks run
// before any remote call is attempted.
func ValidatePassword(plain string) error {
	if strings.TrimSpace(plain) == "" {
		return errors.New("password is required")
	}
	if len(plain) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// PasswordRules describes the password requirements for display.
func PasswordRules() string {
	return "At least 8 characters."
}

// ValidateEmail performs a light shape check; real verification happens by
// sending mail to the address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return errors.New("email address is not valid")
	}
	return nil
}
