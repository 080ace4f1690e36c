// Package password enforces the password policy for new accounts.
package password

import (
	"errors"
	"regexp"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

const (
	minimumLength      = 10
	minimumEntropyBits = 60
)

var (
	ErrTooShort    = errors.New("password must be at least 10 characters long")
	ErrNoUppercase = errors.New("password must contain at least one uppercase letter")
	ErrNoLowercase = errors.New("password must contain at least one lowercase letter")
	ErrNoDigit     = errors.New("password must contain at least one digit")
	ErrNoSpecial   = errors.New("password must contain at least one special character")
	ErrTooWeak     = errors.New("password is too weak")
)

var characterClasses = []struct {
	re  *regexp.Regexp
	err error
}{
	{regexp.MustCompile(`[A-Z]`), ErrNoUppercase},
	{regexp.MustCompile(`[a-z]`), ErrNoLowercase},
	{regexp.MustCompile(`[0-9]`), ErrNoDigit},
	{regexp.MustCompile(`[!@#$%^&*()\-_=+{};:,.<>/?\\|"']`), ErrNoSpecial},
}

// ValidatePassword checks length, character classes and an entropy
// floor. The first failed rule is returned.
func ValidatePassword(password string) error {
	if len(password) < minimumLength {
		return ErrTooShort
	}
	for _, class := range characterClasses {
		if !class.re.MatchString(password) {
			return class.err
		}
	}
	if err := passwordvalidator.Validate(password, minimumEntropyBits); err != nil {
		return errors.Join(ErrTooWeak, err)
	}
	return nil
}
