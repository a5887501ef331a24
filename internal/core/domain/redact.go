package domain

import "strings"

// sensitiveKeys are matched as substrings, case-insensitive, so variants like
// card_token or mp_access_token are caught too.
var sensitiveKeys = []string{
	"card_number", "cvv", "cvc", "security_code", "password", "secret",
	"token", "access_token", "api_key", "private_key", "authorization",
}

const maskedValue = "******"

// RedactSensitive returns a copy of data with values of sensitive keys masked.
// Applied before any payload reaches a stored log or a display read path.
func RedactSensitive(data map[string]string) map[string]string {
	if data == nil {
		return nil
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		if IsSensitiveKey(k) {
			out[k] = maskedValue
		} else {
			out[k] = v
		}
	}
	return out
}

// IsSensitiveKey reports whether a key must never be displayed or stored in
// clear text.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
