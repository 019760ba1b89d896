package rest

import "net/url"

// Scope of listing.
//
// The zero value lists resources of the user of the token.
type Scope struct {
	// All lists resources of all users. Admin only.
	All bool

	// UserID lists resources of the user. Admin only, for impersonation.
	UserID string
}

func (s Scope) query() url.Values {
	q := url.Values{}
	switch {
	case s.All:
		q.Set("all", "true")
	case s.UserID != "":
		q.Set("userId", s.UserID)
	}
	return q
}

// with appends the query of the scope to u.
func (s Scope) with(u string) string {
	q := s.query()
	if len(q) == 0 {
		return u
	}
	return u + "?" + q.Encode()
}
