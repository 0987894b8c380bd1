package domain

import "time"

// Session is the password-stripped projection of an Account installed for
// an authenticated caller. One session exists per issued token; the token
// id keys the persisted copy in the session store.
type Session struct {
	TokenID   string    `json:"tokenId"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Company   string    `json:"company,omitempty"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewSession builds a session projection from an account. The password
// hash never crosses into the session.
func NewSession(tokenID string, a *Account, issuedAt time.Time, ttl time.Duration) *Session {
	return &Session{
		TokenID:   tokenID,
		UserID:    a.ID,
		Email:     a.Email,
		Name:      a.Name(),
		Role:      a.Role,
		Company:   a.Company,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}
}

// HasRole reports whether the session holds exactly the given role.
// A nil session (unauthenticated caller) never holds any role.
func (s *Session) HasRole(role Role) bool {
	return s != nil && s.Role == role
}

// HasAnyRole reports whether the session holds one of the given roles.
func (s *Session) HasAnyRole(roles ...Role) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}
