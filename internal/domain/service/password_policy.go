package service

// PasswordPolicy validates candidate passwords before they are hashed.
type PasswordPolicy interface {
	// Validate returns nil when the password is acceptable, otherwise an error
	// whose message is the human-readable reason.
	Validate(password string) error
}
