package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// signHMAC computes HMAC-SHA256 of payload with secret, lowercase hex.
func signHMAC(secret string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// verifyHMAC checks signature against HMAC-SHA256(secret, payload) in
// constant time.
func verifyHMAC(secret string, payload string, signature string) bool {
	expected := signHMAC(secret, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// flattenJSON decodes a JSON object into a flat string map with dotted keys
// (e.g. "data.id"). Arrays are indexed ("items.0.title"). Scalars are
// stringified. Used to build redactable payload snapshots.
func flattenJSON(raw []byte) (map[string]string, error) {
	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	out := make(map[string]string)
	flattenValue("", root, out)
	return out, nil
}

func flattenValue(prefix string, v any, out map[string]string) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenValue(key, child, out)
		}
	case []any:
		for i, child := range val {
			key := strconv.Itoa(i)
			if prefix != "" {
				key = prefix + "." + key
			}
			flattenValue(key, child, out)
		}
	case string:
		out[prefix] = val
	case float64:
		out[prefix] = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		out[prefix] = strconv.FormatBool(val)
	case nil:
		out[prefix] = ""
	}
}
