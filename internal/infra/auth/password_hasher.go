package auth

import (
	"log/slog"
	"strings"

	"taskmanager/config"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/errors"
)

// schemeHasher hashes with the configured scheme and verifies by digest format,
// so switching schemes does not lock out existing accounts.
type schemeHasher struct {
	primary      service.PasswordHasher
	bcrypt       service.PasswordHasher
	legacy       service.PasswordHasher
	acceptLegacy bool
}

// NewPasswordHasher builds the PasswordHasher selected by auth.passwordScheme.
func NewPasswordHasher(cfg *config.Config, logger *slog.Logger) (service.PasswordHasher, error) {
	authCfg := cfg.Auth
	if authCfg == nil {
		authCfg = &config.AuthConfig{PasswordScheme: config.PasswordSchemeBcrypt, AcceptLegacyHashes: true}
	}

	h := &schemeHasher{
		bcrypt:       NewBcryptHasher(authCfg.BcryptCost),
		legacy:       NewSHA256Hasher(),
		acceptLegacy: authCfg.AcceptLegacyHashes,
	}

	switch strings.ToLower(strings.TrimSpace(authCfg.PasswordScheme)) {
	case "", config.PasswordSchemeBcrypt:
		h.primary = h.bcrypt
	case config.PasswordSchemeSHA256:
		h.primary = h.legacy
		h.acceptLegacy = true
		logger.Warn("Password hashing uses unsalted SHA-256; prefer bcrypt for new deployments")
	default:
		return nil, errors.Errorf("unknown password scheme %q", authCfg.PasswordScheme)
	}

	return h, nil
}

func (h *schemeHasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *schemeHasher) Check(password, hash string) bool {
	if isBcryptDigest(hash) {
		return h.bcrypt.Check(password, hash)
	}
	if !h.acceptLegacy {
		return false
	}

	return h.legacy.Check(password, hash)
}
