package auth

import "go-blog-app/internal/data"

// Principal is the authenticated actor making a request. A nil *Principal
// means the request is anonymous.
type Principal struct {
	UserID      int64
	DisplayName string
	Role        data.Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == data.RoleAdmin
}

// CanWrite reports whether the principal may create posts.
func (p *Principal) CanWrite() bool {
	return p != nil && (p.Role == data.RoleAuthor || p.Role == data.RoleAdmin)
}

// Owns reports whether the principal is the given user.
func (p *Principal) Owns(userID int64) bool {
	return p != nil && p.UserID == userID
}
