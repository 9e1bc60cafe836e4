// utils.go
package main

import "fmt"

// CheckUsernameExists reports whether a username is already taken,
// case-insensitively. An optional excludeUserID lets rename checks skip
// the account being renamed.
func CheckUsernameExists(username string, excludeUserID ...int) (bool, error) {
	query := "SELECT COUNT(*) FROM users WHERE username = ? COLLATE NOCASE"
	args := []interface{}{username}

	if len(excludeUserID) > 0 {
		query += " AND id != ?"
		args = append(args, excludeUserID[0])
	}

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// CheckDuplicateCategory reports whether the user already has a category
// with this name, case-insensitively. Pass excludeID to skip the
// category being edited.
func CheckDuplicateCategory(userID int, name, excludeID string) (bool, error) {
	query := "SELECT COUNT(*) FROM categories WHERE user_id = ? AND name = ? COLLATE NOCASE"
	args := []interface{}{userID, name}

	if excludeID != "" {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check for duplicate category: %w", err)
	}
	return count > 0, nil
}

// CheckDuplicateRecord reports whether the user already has a record
// with this title and username pair, case-insensitively. Pass excludeID
// to skip the record being edited.
func CheckDuplicateRecord(userID int, title, username, excludeID string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM password_records
		WHERE user_id = ? AND title = ? COLLATE NOCASE AND username = ? COLLATE NOCASE
	`
	args := []interface{}{userID, title, username}

	if excludeID != "" {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check for duplicate record: %w", err)
	}
	return count > 0, nil
}

// RecordExists reports whether a record id belongs to the user.
func RecordExists(userID int, recordID string) (bool, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM password_records WHERE id = ? AND user_id = ?",
		recordID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check record: %w", err)
	}
	return count > 0, nil
}
