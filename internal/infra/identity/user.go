package identity

import "strings"

// User is the profile the identity provider holds for an authenticated
// subject. Read-only from this system's perspective except for the linked
// TradingView handle, which lives in the open metadata bag.
type User struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Metadata  map[string]string `json:"metadata"`
}

// DisplayName derives a human name, falling back to the email address.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	return u.Email
}

// TradingViewUsername returns the operator-set linked account handle, if any.
func (u *User) TradingViewUsername() string {
	if u.Metadata == nil {
		return ""
	}
	return u.Metadata["tradingViewUsername"]
}
