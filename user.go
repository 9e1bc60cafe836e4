// user.go
package main

import (
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const userSelect = `
	SELECT u.id, u.username, u.display_name, u.is_super_admin, COALESCE(r.role, 'user')
	FROM users u
	LEFT JOIN user_roles r ON r.user_id = u.id
`

// authenticateUser checks username and password, returns the User on success.
func authenticateUser(username, password string) (*User, error) {
	var u User
	var hash string
	// Use COLLATE NOCASE for case-insensitive username check
	err := db.QueryRow(`
		SELECT u.id, u.username, u.display_name, u.password_hash, u.is_super_admin, COALESCE(r.role, 'user')
		FROM users u
		LEFT JOIN user_roles r ON r.user_id = u.id
		WHERE u.username = ? COLLATE NOCASE
	`, username).Scan(&u.ID, &u.Username, &u.DisplayName, &hash, &u.SuperAdmin, &u.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid password")
	}

	return &u, nil
}

// createUser creates a new account with an optional role. Admins create
// accounts through the management screen; skipAdminCheck is for public
// signup and initial seeding, which always produce plain users.
func createUser(actor *User, newUsername, displayName, newPassword, role string, skipAdminCheck bool) error {
	if !skipAdminCheck {
		if !actor.IsAdmin() {
			return fmt.Errorf("permission denied: only administrators can create accounts")
		}
		if role == RoleSuperAdmin && !actor.SuperAdmin {
			return fmt.Errorf("permission denied: only a super admin can grant super_admin")
		}
	}

	exists, err := CheckUsernameExists(newUsername)
	if err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if exists {
		return fmt.Errorf("username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := db.Exec(
		"INSERT INTO users (username, display_name, password_hash) VALUES (?, ?, ?)",
		newUsername, displayName, string(hash),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// The role row is separate and optional: plain users get none.
	if role != "" && role != RoleUser {
		userID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get new user id: %w", err)
		}
		if _, err := db.Exec("INSERT INTO user_roles (user_id, role) VALUES (?, ?)", userID, role); err != nil {
			return fmt.Errorf("failed to assign role: %w", err)
		}
	}

	return nil
}

// deleteUser removes an account (admin only, never yourself, and super
// admins are only deletable by another super admin).
func deleteUser(actor *User, usernameToDelete string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("permission denied: only administrators can delete accounts")
	}
	if strings.EqualFold(actor.Username, usernameToDelete) {
		return fmt.Errorf("cannot delete yourself")
	}

	target, err := getUserByUsername(usernameToDelete)
	if err != nil {
		return fmt.Errorf("user '%s' not found", usernameToDelete)
	}
	if (target.SuperAdmin || target.Role == RoleSuperAdmin) && !actor.SuperAdmin {
		return fmt.Errorf("permission denied: only a super admin can delete a super admin")
	}

	res, err := db.Exec("DELETE FROM users WHERE id = ?", target.ID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user '%s' not found", usernameToDelete)
	}
	return nil
}

// renameUser changes an account's username (admin only).
func renameUser(actor *User, userID int, newUsername string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("permission denied: only administrators can rename accounts")
	}

	exists, err := CheckUsernameExists(newUsername, userID)
	if err != nil {
		return fmt.Errorf("failed to check for existing new username: %w", err)
	}
	if exists {
		return fmt.Errorf("new username already exists")
	}

	if _, err := db.Exec("UPDATE users SET username = ? WHERE id = ?", newUsername, userID); err != nil {
		return fmt.Errorf("failed to rename user: %w", err)
	}
	return nil
}

// updateDisplayName changes an account's display name. Users may change
// their own; admins may change anyone's.
func updateDisplayName(actor *User, targetUserID int, displayName string) error {
	if actor.ID != targetUserID && !actor.IsAdmin() {
		return fmt.Errorf("permission denied: you can only change your own display name")
	}
	if _, err := db.Exec("UPDATE users SET display_name = ? WHERE id = ?", displayName, targetUserID); err != nil {
		return fmt.Errorf("failed to update display name: %w", err)
	}
	return nil
}

// changeRole updates the target account's role record. Setting the role
// to plain user removes the row entirely, so the account reads as a
// default user again.
func changeRole(actor *User, targetUsername, newRole string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("permission denied: only administrators can change roles")
	}
	if strings.EqualFold(actor.Username, targetUsername) {
		return fmt.Errorf("cannot change your own role")
	}

	target, err := getUserByUsername(targetUsername)
	if err != nil {
		return fmt.Errorf("user '%s' not found", targetUsername)
	}
	if (target.SuperAdmin || target.Role == RoleSuperAdmin || newRole == RoleSuperAdmin) && !actor.SuperAdmin {
		return fmt.Errorf("permission denied: only a super admin can change super admin roles")
	}

	if newRole == RoleUser {
		if _, err := db.Exec("DELETE FROM user_roles WHERE user_id = ?", target.ID); err != nil {
			return fmt.Errorf("failed to clear role: %w", err)
		}
		return nil
	}

	_, err = db.Exec(`
		INSERT INTO user_roles (user_id, role) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET role = excluded.role
	`, target.ID, newRole)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// changePassword updates an account password. Admins can set anyone's
// without the current password, except their own. Changing a password
// invalidates every session for that account.
func changePassword(currentUser *User, targetUsername, currentPassword, newPassword string) error {
	var targetUserID int
	var targetUserHash string
	err := db.QueryRow(
		"SELECT id, password_hash FROM users WHERE username = ? COLLATE NOCASE",
		targetUsername,
	).Scan(&targetUserID, &targetUserHash)
	if err != nil {
		return fmt.Errorf("target user '%s' not found", targetUsername)
	}

	if currentUser.IsAdmin() {
		if strings.EqualFold(currentUser.Username, targetUsername) && currentPassword == "" {
			return fmt.Errorf("current password is required to change your own password")
		}
		if currentPassword != "" {
			if err := bcrypt.CompareHashAndPassword([]byte(targetUserHash), []byte(currentPassword)); err != nil {
				return fmt.Errorf("incorrect current password")
			}
		}
	} else {
		if currentUser.ID != targetUserID {
			return fmt.Errorf("permission denied: you can only change your own password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(targetUserHash), []byte(currentPassword)); err != nil {
			return fmt.Errorf("incorrect current password")
		}
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if _, err := db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(newHash), targetUserID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := clearAllUserSessions(targetUserID); err != nil {
		return fmt.Errorf("failed to clear sessions after password change: %w", err)
	}

	return nil
}

// getUserByID retrieves an account with its role joined in.
func getUserByID(id int) (*User, error) {
	var u User
	err := db.QueryRow(userSelect+" WHERE u.id = ?", id).
		Scan(&u.ID, &u.Username, &u.DisplayName, &u.SuperAdmin, &u.Role)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// getUserByUsername retrieves an account by name, case-insensitively.
func getUserByUsername(username string) (*User, error) {
	var u User
	err := db.QueryRow(userSelect+" WHERE u.username = ? COLLATE NOCASE", username).
		Scan(&u.ID, &u.Username, &u.DisplayName, &u.SuperAdmin, &u.Role)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// getAllUsers retrieves all accounts for the management screen.
func getAllUsers() ([]User, error) {
	rows, err := db.Query(userSelect + " ORDER BY u.username ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.SuperAdmin, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}

	if users == nil {
		return []User{}, nil
	}
	return users, nil
}
