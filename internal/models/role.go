package models

import "strings"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser   Role = "USER"
	RoleAuthor Role = "AUTHOR"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole converts a case-insensitive role name into a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAuthor:
		return RoleAuthor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

// CanWriteArticles reports whether the role may create articles.
func (r Role) CanWriteArticles() bool {
	return r == RoleAuthor || r == RoleAdmin
}

// IsAdmin reports whether the role has administrative rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanModifyArticle reports whether actor may update or delete article:
// only its author or an admin may.
func CanModifyArticle(actor *User, article *Article) bool {
	if actor == nil || article == nil {
		return false
	}
	return actor.ID == article.AuthorID || actor.Role.IsAdmin()
}
