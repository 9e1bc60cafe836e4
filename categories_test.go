// categories_test.go
package main

import (
	"strings"
	"testing"
)

func TestCreateCategory(t *testing.T) {
	ensureTestDB(t)
	user := createTestUser(t, "alice", RoleUser)

	c, err := createCategory(user.ID, "Work", "#FF0000", "💼")
	if err != nil {
		t.Fatalf("createCategory failed: %v", err)
	}
	if c.ID == "" {
		t.Error("Expected a generated category id")
	}
	if c.Color != "#FF0000" {
		t.Errorf("Expected color #FF0000, got %s", c.Color)
	}

	loaded, err := getCategoryByID(user.ID, c.ID)
	if err != nil {
		t.Fatalf("getCategoryByID failed: %v", err)
	}
	if loaded.Name != "Work" || loaded.Icon != "💼" {
		t.Errorf("Loaded category mismatch: %+v", loaded)
	}
}

func TestCreateCategoryDefaultColor(t *testing.T) {
	ensureTestDB(t)
	user := createTestUser(t, "alice", RoleUser)

	c, err := createCategory(user.ID, "Misc", "", "")
	if err != nil {
		t.Fatalf("createCategory failed: %v", err)
	}
	if c.Color != defaultCategoryColor {
		t.Errorf("Expected default color %s, got %s", defaultCategoryColor, c.Color)
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	ensureTestDB(t)
	user := createTestUser(t, "alice", RoleUser)
	other := createTestUser(t, "bob", RoleUser)

	if _, err := createCategory(user.ID, "Work", "", ""); err != nil {
		t.Fatalf("createCategory failed: %v", err)
	}

	// Duplicate check is case-insensitive and per user.
	_, err := createCategory(user.ID, "WORK", "", "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected duplicate error, got %v", err)
	}
	if _, err := createCategory(other.ID, "Work", "", ""); err != nil {
		t.Errorf("Same name under another account should be allowed: %v", err)
	}
}

func TestUpdateCategory(t *testing.T) {
	ensureTestDB(t)
	user := createTestUser(t, "alice", RoleUser)
	c, _ := createCategory(user.ID, "Work", "", "")
	createCategory(user.ID, "Home", "", "")

	if err := updateCategory(user.ID, c.ID, "Home", "", ""); err == nil {
		t.Error("Rename onto an existing category name should fail")
	}
	if err := updateCategory(user.ID, c.ID, "Office", "#00FF00", "🏢"); err != nil {
		t.Fatalf("updateCategory failed: %v", err)
	}

	loaded, _ := getCategoryByID(user.ID, c.ID)
	if loaded.Name != "Office" || loaded.Color != "#00FF00" || loaded.Icon != "🏢" {
		t.Errorf("Updated category mismatch: %+v", loaded)
	}
}

func TestDeleteCategoryLeavesRecords(t *testing.T) {
	ensureTestDB(t)
	user := createTestUser(t, "alice", RoleUser)
	c, _ := createCategory(user.ID, "Work", "", "")

	record, err := createRecord(user.ID, RecordInput{Title: "Gmail", Secret: "s3cret", CategoryID: c.ID})
	if err != nil {
		t.Fatalf("createRecord failed: %v", err)
	}

	if err := deleteCategory(user.ID, c.ID); err != nil {
		t.Fatalf("deleteCategory failed: %v", err)
	}

	// The record survives with its stored id dangling; it lists as
	// uncategorized because the join no longer resolves.
	records, err := getRecords(user.ID)
	if err != nil {
		t.Fatalf("getRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected record to survive category deletion, got %d records", len(records))
	}
	if records[0].ID != record.ID {
		t.Errorf("Unexpected record id %s", records[0].ID)
	}
	if records[0].Category != nil {
		t.Error("Dangling category reference should not resolve")
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	ensureTestDB(t)
	user := createTestUser(t, "alice", RoleUser)

	if err := deleteCategory(user.ID, "no-such-id"); err == nil {
		t.Error("Expected not found error")
	}
}

func TestCategoryOwnershipScoping(t *testing.T) {
	ensureTestDB(t)
	alice := createTestUser(t, "alice", RoleUser)
	bob := createTestUser(t, "bob", RoleUser)
	c, _ := createCategory(alice.ID, "Work", "", "")

	if _, err := getCategoryByID(bob.ID, c.ID); err == nil {
		t.Error("Category should not be visible to another account")
	}
	if err := deleteCategory(bob.ID, c.ID); err == nil {
		t.Error("Category should not be deletable by another account")
	}
}

func TestGetOrCreateCategoryID(t *testing.T) {
	ensureTestDB(t)
	user := createTestUser(t, "alice", RoleUser)
	c, _ := createCategory(user.ID, "Work", "", "")

	id, err := getOrCreateCategoryID(user.ID, "work")
	if err != nil {
		t.Fatalf("getOrCreateCategoryID failed: %v", err)
	}
	if id != c.ID {
		t.Errorf("Expected existing category id %s, got %s", c.ID, id)
	}

	id, err = getOrCreateCategoryID(user.ID, "Banking")
	if err != nil {
		t.Fatalf("getOrCreateCategoryID create failed: %v", err)
	}
	if id == "" || id == c.ID {
		t.Errorf("Expected a fresh category id, got %q", id)
	}

	id, err = getOrCreateCategoryID(user.ID, "")
	if err != nil || id != "" {
		t.Errorf("Empty name should resolve to no category, got %q, %v", id, err)
	}
}

func TestGetCategoriesSorted(t *testing.T) {
	ensureTestDB(t)
	user := createTestUser(t, "alice", RoleUser)
	createCategory(user.ID, "zeta", "", "")
	createCategory(user.ID, "Alpha", "", "")

	categories, err := getCategories(user.ID)
	if err != nil {
		t.Fatalf("getCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Alpha" {
		t.Errorf("Expected case-insensitive name order, got %s first", categories[0].Name)
	}
}
