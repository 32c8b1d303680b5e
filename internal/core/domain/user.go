package domain

import "time"

// RolePrefix is prepended to a role name to form the access-control tag
// carried by an authenticated principal ("ADMIN" -> "ROLE_ADMIN").
const RolePrefix = "ROLE_"

const (
	RoleAdmin     = "ADMIN"
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
)

// Role is a named permission group. Roles are created once at bootstrap and
// are effectively immutable afterwards.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:32;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (Role) TableName() string {
	return "roles"
}

// User models an account in the directory. The password is stored only as a
// bcrypt hash and is never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	FirstName    string    `gorm:"size:64" json:"first_name,omitempty"`
	LastName     string    `gorm:"size:64" json:"last_name,omitempty"`
	Enabled      bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	Roles        []Role    `gorm:"many2many:user_roles" json:"roles"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the plain names of the user's roles.
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}

// AuthorityTags returns the user's roles rendered as access-control tags,
// each prefixed with RolePrefix.
func (u *User) AuthorityTags() []string {
	tags := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		tags[i] = RolePrefix + r.Name
	}
	return tags
}
