package models

import "time"

// User represents an account of the blog.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(50);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(100);not null"`
	Password  string    `json:"-" gorm:"type:varchar(120);not null"` // bcrypt hash, never serialized
	FullName  string    `json:"fullName" gorm:"type:varchar(100);not null"`
	Bio       string    `json:"bio" gorm:"type:varchar(500)"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	IsActive  bool      `json:"active" gorm:"column:is_active;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSortColumns whitelists the sortBy values accepted for user listings.
var UserSortColumns = map[string]string{
	"id":        "id",
	"username":  "username",
	"email":     "email",
	"fullName":  "full_name",
	"createdAt": "created_at",
}
