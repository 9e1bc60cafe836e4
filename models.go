// models.go
package main

// Role strings an account can carry. The role row is optional; an
// account with no row reads as RoleUser.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// User represents an account joined with its role record at read time.
// The super-admin flag and the role string are stored separately and
// nothing forces them to agree.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	SuperAdmin  bool   `json:"superAdmin"`
	Role        string `json:"role"`
}

// IsAdmin reports whether the account may manage other accounts.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.SuperAdmin || u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// PasswordRecord represents a stored credential. Secret is only
// populated when the caller explicitly reveals it; list responses carry
// it empty.
type PasswordRecord struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Username   string    `json:"username,omitempty"`
	Secret     string    `json:"secret,omitempty"`
	URL        string    `json:"url,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Favorite   bool      `json:"favorite"`
	CategoryID string    `json:"categoryId,omitempty"`
	Category   *Category `json:"category,omitempty"`
	CreatedAt  string    `json:"createdAt"`
	ModifiedAt string    `json:"modifiedAt"`
}

// Accessors for the filter engine (pkg/filter.Record).
func (r PasswordRecord) RecordTitle() string    { return r.Title }
func (r PasswordRecord) RecordUsername() string { return r.Username }
func (r PasswordRecord) RecordURL() string      { return r.URL }
func (r PasswordRecord) RecordCategory() string { return r.CategoryID }

// Category groups password records. Records hold a weak reference to it:
// deleting a category never touches the records that point at it.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}
