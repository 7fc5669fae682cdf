package security

import "crypto/subtle"

// SecretValidator gates the request endpoint with a single shared secret.
type SecretValidator struct {
	secret []byte
}

func NewSecretValidator(secret string) *SecretValidator {
	return &SecretValidator{secret: []byte(secret)}
}

// Validate reports whether supplied was present and equals the configured secret byte for byte.
// An unset secret never validates.
func (v *SecretValidator) Validate(supplied string, present bool) bool {
	if !present || len(v.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), v.secret) == 1
}

func (v *SecretValidator) Configured() bool { return len(v.secret) > 0 }
