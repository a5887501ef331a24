package domain

import "time"

// GatewaySettings is the operator-mutable part of a gateway's configuration.
// Credentials are static service config; these flags are toggled at runtime
// from the admin panel and persisted.
type GatewaySettings struct {
	Gateway     string    `json:"gateway"`
	DisplayName string    `json:"display_name"`
	Active      bool      `json:"active"`
	Sandbox     bool      `json:"sandbox"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
