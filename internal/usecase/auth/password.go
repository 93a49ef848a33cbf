package auth

import (
	"net/mail"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail accepts a bare address only; display names are rejected.
func IsValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

func IsValidPassword(pw string) bool {
	return len(pw) >= MinPasswordLength
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func ComparePassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// dummyHash has the same cost as real hashes so a lookup miss spends the
// same time in bcrypt as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, err := HashPassword("skillhire-no-such-account")
	if err != nil {
		panic(err)
	}
	return h
})

// DummyHash is compared against when no account matches the email.
func DummyHash() string {
	return dummyHash()
}
