// records.go
package main

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// RecordInput carries the writable fields of a password record.
type RecordInput struct {
	Title      string
	Username   string
	Secret     string
	URL        string
	Notes      string
	Favorite   bool
	CategoryID string
}

// getRecords retrieves all of a user's records, titles sorted
// case-insensitively. Secrets are never selected here; the reveal
// endpoint decrypts them one at a time. The category join is a weak
// reference: when the category no longer exists the record simply
// comes back uncategorized.
func getRecords(userID int) ([]PasswordRecord, error) {
	rows, err := db.Query(`
		SELECT pr.id, pr.title, pr.username, pr.url, pr.notes, pr.favorite,
		       COALESCE(pr.category_id, ''),
		       c.id, c.name, COALESCE(c.color, ''), COALESCE(c.icon, ''),
		       pr.created_at, pr.modified_at
		FROM password_records pr
		LEFT JOIN categories c ON c.id = pr.category_id AND c.user_id = pr.user_id
		WHERE pr.user_id = ?
		ORDER BY pr.title COLLATE NOCASE ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []PasswordRecord
	for rows.Next() {
		var r PasswordRecord
		var catID, catName, catColor, catIcon sql.NullString
		err := rows.Scan(
			&r.ID, &r.Title, &r.Username, &r.URL, &r.Notes, &r.Favorite,
			&r.CategoryID,
			&catID, &catName, &catColor, &catIcon,
			&r.CreatedAt, &r.ModifiedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		if catID.Valid {
			color := catColor.String
			if color == "" {
				color = defaultCategoryColor
			}
			r.Category = &Category{
				ID:    catID.String,
				Name:  catName.String,
				Color: color,
				Icon:  catIcon.String,
			}
		}
		records = append(records, r)
	}

	if records == nil {
		return []PasswordRecord{}, nil
	}
	return records, nil
}

// createRecord stores a new record with its secret encrypted under a
// fresh per-record salt.
func createRecord(userID int, in RecordInput) (*PasswordRecord, error) {
	exists, err := CheckDuplicateRecord(userID, in.Title, in.Username, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate record: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("a record with this title and username already exists")
	}

	if in.CategoryID != "" {
		if _, err := getCategoryByID(userID, in.CategoryID); err != nil {
			return nil, fmt.Errorf("category not found")
		}
	}

	salt, err := generateSalt()
	if err != nil {
		return nil, err
	}
	encryptedSecret, err := encrypt([]byte(in.Secret), salt)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	id := uuid.NewString()
	_, err = db.Exec(`
		INSERT INTO password_records (id, user_id, title, username, secret_encrypted, url, notes, favorite, category_id, salt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, userID, in.Title, in.Username, encryptedSecret, in.URL, in.Notes, in.Favorite, in.CategoryID, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return &PasswordRecord{
		ID:         id,
		Title:      in.Title,
		Username:   in.Username,
		URL:        in.URL,
		Notes:      in.Notes,
		Favorite:   in.Favorite,
		CategoryID: in.CategoryID,
	}, nil
}

// updateRecord edits a record. An empty secret keeps the stored one, so
// clients never need to round-trip a secret they are not showing.
func updateRecord(userID int, recordID string, in RecordInput) error {
	exists, err := CheckDuplicateRecord(userID, in.Title, in.Username, recordID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate record: %w", err)
	}
	if exists {
		return fmt.Errorf("a record with this title and username already exists")
	}

	if in.CategoryID != "" {
		if _, err := getCategoryByID(userID, in.CategoryID); err != nil {
			return fmt.Errorf("category not found")
		}
	}

	if in.Secret == "" {
		res, err := db.Exec(`
			UPDATE password_records
			SET title = ?, username = ?, url = ?, notes = ?, favorite = ?, category_id = ?,
			    modified_at = CURRENT_TIMESTAMP
			WHERE id = ? AND user_id = ?
		`, in.Title, in.Username, in.URL, in.Notes, in.Favorite, in.CategoryID, recordID, userID)
		if err != nil {
			return fmt.Errorf("failed to update record: %w", err)
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			return fmt.Errorf("record not found")
		}
		return nil
	}

	salt, err := generateSalt()
	if err != nil {
		return err
	}
	encryptedSecret, err := encrypt([]byte(in.Secret), salt)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret: %w", err)
	}

	res, err := db.Exec(`
		UPDATE password_records
		SET title = ?, username = ?, secret_encrypted = ?, url = ?, notes = ?, favorite = ?, category_id = ?,
		    salt = ?, modified_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`, in.Title, in.Username, encryptedSecret, in.URL, in.Notes, in.Favorite, in.CategoryID, salt, recordID, userID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("record not found")
	}
	return nil
}

// deleteRecord removes a record, scoped to the owner.
func deleteRecord(userID int, recordID string) error {
	res, err := db.Exec("DELETE FROM password_records WHERE id = ? AND user_id = ?", recordID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("record not found")
	}
	return nil
}

// toggleFavorite flips a record's favorite flag and returns the new value.
func toggleFavorite(userID int, recordID string) (bool, error) {
	var favorite bool
	err := db.QueryRow(
		"SELECT favorite FROM password_records WHERE id = ? AND user_id = ?",
		recordID, userID,
	).Scan(&favorite)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, fmt.Errorf("record not found")
		}
		return false, err
	}

	favorite = !favorite
	_, err = db.Exec(
		"UPDATE password_records SET favorite = ?, modified_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?",
		favorite, recordID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update favorite flag: %w", err)
	}
	return favorite, nil
}

// getDecryptedSecret fetches and decrypts one record's secret.
func getDecryptedSecret(userID int, recordID string) (string, error) {
	var encryptedSecret, salt []byte
	err := db.QueryRow(
		"SELECT secret_encrypted, salt FROM password_records WHERE id = ? AND user_id = ?",
		recordID, userID,
	).Scan(&encryptedSecret, &salt)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("record not found")
		}
		return "", err
	}

	if len(encryptedSecret) == 0 {
		return "", nil
	}

	plaintext, err := decrypt(encryptedSecret, salt)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt secret: %w", err)
	}
	return string(plaintext), nil
}

// ExportedRecord is the export/import wire shape. Categories travel by
// name so exports stay portable across accounts.
type ExportedRecord struct {
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`
	Secret   string `json:"secret,omitempty"`
	URL      string `json:"url,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Favorite bool   `json:"favorite,omitempty"`
	Category string `json:"category,omitempty"`
}

// getAllDecryptedRecords retrieves every record with its secret
// decrypted, for export.
func getAllDecryptedRecords(userID int) ([]ExportedRecord, error) {
	rows, err := db.Query(`
		SELECT pr.title, pr.username, pr.secret_encrypted, pr.salt, pr.url, pr.notes, pr.favorite,
		       COALESCE(c.name, '')
		FROM password_records pr
		LEFT JOIN categories c ON c.id = pr.category_id AND c.user_id = pr.user_id
		WHERE pr.user_id = ?
		ORDER BY pr.title COLLATE NOCASE ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records for export: %w", err)
	}
	defer rows.Close()

	var exported []ExportedRecord
	for rows.Next() {
		var rec ExportedRecord
		var encryptedSecret, salt []byte
		err := rows.Scan(&rec.Title, &rec.Username, &encryptedSecret, &salt, &rec.URL, &rec.Notes, &rec.Favorite, &rec.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		if len(encryptedSecret) > 0 {
			plaintext, err := decrypt(encryptedSecret, salt)
			if err != nil {
				return nil, fmt.Errorf("failed to decrypt secret for '%s': %w", rec.Title, err)
			}
			rec.Secret = string(plaintext)
		}
		exported = append(exported, rec)
	}

	if exported == nil {
		return []ExportedRecord{}, nil
	}
	return exported, nil
}

// importRecord stores one exported record, resolving (or creating) its
// category by name. Records that already exist are skipped, not
// overwritten.
func importRecord(userID int, rec ExportedRecord) (bool, error) {
	if rec.Title == "" {
		return false, fmt.Errorf("record is missing a title")
	}

	exists, err := CheckDuplicateRecord(userID, rec.Title, rec.Username, "")
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate record: %w", err)
	}
	if exists {
		return false, nil
	}

	categoryID, err := getOrCreateCategoryID(userID, rec.Category)
	if err != nil {
		return false, err
	}

	_, err = createRecord(userID, RecordInput{
		Title:      rec.Title,
		Username:   rec.Username,
		Secret:     rec.Secret,
		URL:        rec.URL,
		Notes:      rec.Notes,
		Favorite:   rec.Favorite,
		CategoryID: categoryID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
