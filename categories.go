// categories.go
package main

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

const defaultCategoryColor = "#6B7280"

// getCategories retrieves all categories belonging to a user.
func getCategories(userID int) ([]Category, error) {
	rows, err := db.Query(`
		SELECT id, name, COALESCE(color, ''), COALESCE(icon, '')
		FROM categories
		WHERE user_id = ?
		ORDER BY name COLLATE NOCASE ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		if c.Color == "" {
			c.Color = defaultCategoryColor
		}
		categories = append(categories, c)
	}

	if categories == nil {
		return []Category{}, nil
	}
	return categories, nil
}

// getCategoryByID retrieves one category, scoped to the owner.
func getCategoryByID(userID int, categoryID string) (*Category, error) {
	var c Category
	err := db.QueryRow(`
		SELECT id, name, COALESCE(color, ''), COALESCE(icon, '')
		FROM categories
		WHERE id = ? AND user_id = ?
	`, categoryID, userID).Scan(&c.ID, &c.Name, &c.Color, &c.Icon)
	if err != nil {
		return nil, err
	}
	if c.Color == "" {
		c.Color = defaultCategoryColor
	}
	return &c, nil
}

// createCategory creates a category for the user. Names are unique per
// user, case-insensitively.
func createCategory(userID int, name, color, icon string) (*Category, error) {
	exists, err := CheckDuplicateCategory(userID, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate category: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("category '%s' already exists", name)
	}

	if color == "" {
		color = defaultCategoryColor
	}

	c := &Category{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
		Icon:  icon,
	}

	_, err = db.Exec(
		"INSERT INTO categories (id, user_id, name, color, icon) VALUES (?, ?, ?, ?, ?)",
		c.ID, userID, c.Name, c.Color, c.Icon,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

// updateCategory edits a category's name, color, and icon.
func updateCategory(userID int, categoryID, name, color, icon string) error {
	exists, err := CheckDuplicateCategory(userID, name, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate category: %w", err)
	}
	if exists {
		return fmt.Errorf("category '%s' already exists", name)
	}

	if color == "" {
		color = defaultCategoryColor
	}

	res, err := db.Exec(
		"UPDATE categories SET name = ?, color = ?, icon = ? WHERE id = ? AND user_id = ?",
		name, color, icon, categoryID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}

// deleteCategory removes a category. Records keep their stored
// category_id; once the category is gone the reference simply stops
// resolving and those records list as uncategorized.
func deleteCategory(userID int, categoryID string) error {
	res, err := db.Exec("DELETE FROM categories WHERE id = ? AND user_id = ?", categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}

// getOrCreateCategoryID resolves a category name to its id, creating the
// category when it does not exist yet. Used by the import path, where
// records carry category names instead of ids.
func getOrCreateCategoryID(userID int, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	var id string
	err := db.QueryRow(
		"SELECT id FROM categories WHERE user_id = ? AND name = ? COLLATE NOCASE",
		userID, name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up category '%s': %w", name, err)
	}

	c, err := createCategory(userID, name, "", "")
	if err != nil {
		return "", err
	}
	return c.ID, nil
}
