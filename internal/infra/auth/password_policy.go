package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"taskmanager/config"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/service"
)

type passwordPolicy struct {
	cfg config.PasswordStrengthConfig
}

// NewPasswordPolicy creates the password strength validator from passwordStrength config.
func NewPasswordPolicy(cfg *config.Config) service.PasswordPolicy {
	strength := config.DefaultPasswordStrength()
	if cfg.PasswordStrength != nil {
		strength = cfg.PasswordStrength
	}

	return &passwordPolicy{cfg: *strength}
}

// Validate applies the rules in order and reports the first failure.
func (p *passwordPolicy) Validate(password string) error {
	if strings.TrimSpace(password) == "" {
		return reject("Password is required")
	}

	length := utf8.RuneCountInString(password)
	if length < p.cfg.MinLength {
		return reject(fmt.Sprintf("Password must be at least %d characters", p.cfg.MinLength))
	}
	if p.cfg.MaxLength > 0 && length > p.cfg.MaxLength {
		return reject(fmt.Sprintf("Password cannot exceed %d characters", p.cfg.MaxLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSpecial = true
		}
	}

	switch {
	case p.cfg.RequireUppercase && !hasUpper:
		return reject("Password must contain at least one uppercase letter")
	case p.cfg.RequireLowercase && !hasLower:
		return reject("Password must contain at least one lowercase letter")
	case p.cfg.RequireNumbers && !hasDigit:
		return reject("Password must contain at least one digit")
	case p.cfg.RequireSpecial && !hasSpecial:
		return reject("Password must contain at least one special character")
	}

	return nil
}

func reject(reason string) error {
	return domainerrors.ErrPasswordStrength.WithMessage(reason)
}
