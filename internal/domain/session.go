package domain

import "time"

// Session is the persisted per-visitor state: the server-side counterpart of browser storage.
type Session struct {
	ID                     string      `json:"id"`
	Items                  []CartItem  `json:"items"`
	RemoteCart             *RemoteCart `json:"remoteCart,omitempty"`
	CartDirty              bool        `json:"-"`
	CustomerToken          string      `json:"-"`
	CustomerTokenExpiresAt *time.Time  `json:"-"`
	Customer               *Customer   `json:"customer,omitempty"`
	Currency               string      `json:"currency"`
	Version                int64       `json:"version"`
	CreatedAt              time.Time   `json:"createdAt"`
	UpdatedAt              time.Time   `json:"updatedAt"`
}

// LoggedIn reports whether the session holds a customer access token that has not expired.
func (s Session) LoggedIn(now time.Time) bool {
	if s.CustomerToken == "" {
		return false
	}
	if s.CustomerTokenExpiresAt != nil && now.After(*s.CustomerTokenExpiresAt) {
		return false
	}
	return true
}

// ClearCart drops the local lines and the remote cart reference.
func (s *Session) ClearCart() {
	s.Items = nil
	s.RemoteCart = nil
	s.CartDirty = false
}

// ClearCustomer drops the customer token and cached profile.
func (s *Session) ClearCustomer() {
	s.CustomerToken = ""
	s.CustomerTokenExpiresAt = nil
	s.Customer = nil
}
