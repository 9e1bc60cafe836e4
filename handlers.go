// handlers.go
package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"passbook/pkg/api"
	"passbook/pkg/auth"
	"passbook/pkg/credential"
	"passbook/pkg/filter"
	"passbook/pkg/httputil"
	"passbook/pkg/logger"
	"passbook/pkg/template"
	"passbook/pkg/validation"
)

// Revealed-secret state per client. The key is the session token (or
// bearer token for API clients), so reveals never leak across sessions
// and vanish with the session itself.
var (
	visibleMu   sync.RWMutex
	visibleSets = make(map[string]credential.VisibleSet)
)

// clientStateKey identifies the calling client for visibility tracking.
func clientStateKey(r *http.Request) string {
	if c, err := r.Cookie("session_token"); err == nil {
		return c.Value
	}
	return bearerToken(r)
}

// revealedSet returns the client's current set of revealed record ids.
func revealedSet(key string) credential.VisibleSet {
	visibleMu.RLock()
	defer visibleMu.RUnlock()
	return visibleSets[key]
}

// toggleRevealed flips one record id in the client's revealed set and
// reports whether it is now revealed. The set is replaced wholesale, so
// concurrent readers never see a half-updated map.
func toggleRevealed(key, id string) bool {
	visibleMu.Lock()
	defer visibleMu.Unlock()
	next := credential.Toggle(visibleSets[key], id)
	visibleSets[key] = next
	return next.Revealed(id)
}

// clearRevealed drops the client's visibility state, used on logout.
func clearRevealed(key string) {
	visibleMu.Lock()
	defer visibleMu.Unlock()
	delete(visibleSets, key)
}

// pruneRevealed drops visibility state whose owning credential is gone:
// session tokens without a live session row and bearer tokens that no
// longer validate. Runs from the periodic session cleanup so the map
// cannot grow without bound.
func pruneRevealed() {
	visibleMu.Lock()
	defer visibleMu.Unlock()
	for key := range visibleSets {
		var live int
		err := db.QueryRow(
			"SELECT COUNT(*) FROM sessions WHERE id = ? AND expires_at > ?",
			key, time.Now(),
		).Scan(&live)
		if err == nil && live > 0 {
			continue
		}
		if _, err := validateToken(key); err == nil {
			continue
		}
		delete(visibleSets, key)
	}
}

// currentUser extracts the authenticated account placed on the request
// by authMiddleware.
func currentUser(w http.ResponseWriter, r *http.Request) (*User, bool) {
	user, ok := auth.FromRequest[*User](r)
	if !ok {
		httputil.Unauthorized(w, "")
		return nil, false
	}
	return user, true
}

// --- Page handlers ---

// indexHandler serves the login page, or forwards straight to the
// dashboard when a valid session cookie is already present.
func indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if c, err := r.Cookie("session_token"); err == nil {
		if _, err := validateSession(c.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
	}

	data := map[string]interface{}{}
	if r.URL.Query().Get("reason") == "session_expired" {
		data["Notice"] = "Your session expired. Please sign in again."
	}
	template.RenderStandalone(w, "login.html", data)
}

// loginHandler processes the login form.
func loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data")
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	clientIP := getClientIP(r)

	limited, timeLeft, err := checkRateLimitByUsername(username)
	if err != nil {
		logger.Error("Rate limit check failed", err)
	} else if limited {
		logger.Security("Rate limited login attempt", "username", username, "ip", clientIP)
		msg := fmt.Sprintf("Too many failed attempts. Try again in %d seconds.", int(timeLeft.Seconds())+1)
		template.RenderStandalone(w, "login.html", map[string]interface{}{"Error": msg})
		return
	}

	user, err := authenticateUser(username, password)
	if err != nil {
		if recErr := recordLoginAttempt(username, clientIP, false); recErr != nil {
			logger.Error("Failed to record login attempt", recErr)
		}
		logger.Security("Failed login", "username", username, "ip", clientIP)
		template.RenderStandalone(w, "login.html", map[string]interface{}{"Error": "Invalid username or password"})
		return
	}

	if recErr := recordLoginAttempt(username, clientIP, true); recErr != nil {
		logger.Error("Failed to record login attempt", recErr)
	}

	if err := createSession(w, user); err != nil {
		httputil.InternalServerError(w, "Failed to create session", err)
		return
	}

	logger.Success("User logged in", "username", user.Username)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// signupPageHandler serves the signup form.
func signupPageHandler(w http.ResponseWriter, r *http.Request) {
	template.RenderStandalone(w, "signup.html", map[string]interface{}{})
}

// signupHandler processes public self-registration. Signups are always
// plain users; roles are granted later by an administrator.
func signupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data")
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	displayName := strings.TrimSpace(r.FormValue("display_name"))
	password := r.FormValue("password")

	v := validation.ValidateAccountCreation(validation.AccountRequest{
		Username:    username,
		DisplayName: displayName,
		Password:    password,
		Role:        validation.RoleUser,
	})
	if v.HasErrors() {
		template.RenderStandalone(w, "signup.html", map[string]interface{}{"Error": v.FirstError()})
		return
	}

	if err := createUser(nil, username, displayName, password, RoleUser, true); err != nil {
		template.RenderStandalone(w, "signup.html", map[string]interface{}{"Error": err.Error()})
		return
	}

	user, err := authenticateUser(username, password)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err := createSession(w, user); err != nil {
		httputil.InternalServerError(w, "Failed to create session", err)
		return
	}

	logger.Success("New account registered", "username", username)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// dashboardHandler serves the main records screen.
func dashboardHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	categories, err := getCategories(user.ID)
	if err != nil {
		logger.Error("Failed to load categories for dashboard", err)
		categories = []Category{}
	}

	template.RenderWithBase(w, "index.html", map[string]interface{}{
		"User":       user,
		"Categories": categories,
		"Active":     "dashboard",
	})
}

// categoriesPageHandler serves the category management screen.
func categoriesPageHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	template.RenderWithBase(w, "categories.html", map[string]interface{}{
		"User":   user,
		"Active": "categories",
	})
}

// usersPageHandler serves the account management screen (admin only,
// enforced by the route guard).
func usersPageHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	template.RenderWithBase(w, "users.html", map[string]interface{}{
		"User":   user,
		"Active": "users",
	})
}

// logoutHandler ends the session and drops its visibility state.
func logoutHandler(w http.ResponseWriter, r *http.Request) {
	clearRevealed(clientStateKey(r))
	clearSession(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

// --- Record API ---

// recordsAPIHandler is the CRUD endpoint for password records. GET
// supports ?q= (case-insensitive substring over title, username, and
// url) and ?category= (exact category id); both may be combined.
func recordsAPIHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		records, err := getRecords(user.ID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to load records", err)
			return
		}

		q := r.URL.Query().Get("q")
		categoryID := r.URL.Query().Get("category")
		records = filter.Filter(records, q, categoryID)

		// Fill in secrets the client has explicitly revealed.
		visible := revealedSet(clientStateKey(r))
		for i := range records {
			if visible.Revealed(records[i].ID) {
				secret, err := getDecryptedSecret(user.ID, records[i].ID)
				if err != nil {
					logger.Error("Failed to decrypt revealed secret", err, "record", records[i].ID)
					continue
				}
				records[i].Secret = secret
			}
		}

		httputil.WriteJSON(w, records)

	case http.MethodPost:
		var req api.CreateRecordRequest
		if !api.DecodeRequest(w, r, &req, "create record") {
			return
		}
		if v := validation.ValidateRecord(validation.RecordRequest{
			Title:      req.Title,
			Username:   req.Username,
			Secret:     req.Secret,
			URL:        req.URL,
			Notes:      req.Notes,
			CategoryID: req.CategoryID,
		}); v.HasErrors() {
			httputil.BadRequest(w, v.FirstError())
			return
		}

		record, err := createRecord(user.ID, RecordInput{
			Title:      req.Title,
			Username:   req.Username,
			Secret:     req.Secret,
			URL:        req.URL,
			Notes:      req.Notes,
			Favorite:   req.Favorite,
			CategoryID: req.CategoryID,
		})
		if err != nil {
			if strings.Contains(err.Error(), "already exists") {
				httputil.Conflict(w, err.Error())
			} else {
				httputil.BadRequest(w, err.Error())
			}
			return
		}
		api.WriteSuccessResponse(w, "Record created", record)

	case http.MethodPut:
		var req api.UpdateRecordRequest
		if !api.DecodeRequest(w, r, &req, "update record") {
			return
		}
		if req.ID == "" {
			httputil.BadRequest(w, "Record id is required")
			return
		}
		if v := validation.ValidateRecord(validation.RecordRequest{
			Title:      req.Title,
			Username:   req.Username,
			Secret:     req.Secret,
			URL:        req.URL,
			Notes:      req.Notes,
			CategoryID: req.CategoryID,
		}); v.HasErrors() {
			httputil.BadRequest(w, v.FirstError())
			return
		}

		err := updateRecord(user.ID, req.ID, RecordInput{
			Title:      req.Title,
			Username:   req.Username,
			Secret:     req.Secret,
			URL:        req.URL,
			Notes:      req.Notes,
			Favorite:   req.Favorite,
			CategoryID: req.CategoryID,
		})
		if err != nil {
			switch {
			case strings.Contains(err.Error(), "not found"):
				httputil.NotFound(w, err.Error())
			case strings.Contains(err.Error(), "already exists"):
				httputil.Conflict(w, err.Error())
			default:
				httputil.BadRequest(w, err.Error())
			}
			return
		}
		api.WriteSuccessResponse(w, "Record updated", nil)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			httputil.BadRequest(w, "Record id is required")
			return
		}
		if err := deleteRecord(user.ID, id); err != nil {
			httputil.NotFound(w, err.Error())
			return
		}
		api.WriteSuccessResponse(w, "Record deleted", nil)

	default:
		httputil.MethodNotAllowed(w)
	}
}

// favoriteHandler flips a record's favorite flag.
func favoriteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req api.ToggleRequest
	if !api.DecodeRequest(w, r, &req, "toggle favorite") {
		return
	}
	if req.ID == "" {
		httputil.BadRequest(w, "Record id is required")
		return
	}

	favorite, err := toggleFavorite(user.ID, req.ID)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.WriteJSON(w, map[string]interface{}{"id": req.ID, "favorite": favorite})
}

// revealHandler returns one record's decrypted secret without touching
// the client's visibility state.
func revealHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.BadRequest(w, "Record id is required")
		return
	}

	secret, err := getDecryptedSecret(user.ID, id)
	if err != nil {
		httputil.NotFound(w, "Record not found")
		return
	}

	logger.Security("Secret revealed", "username", user.Username, "record", id)
	httputil.WriteJSON(w, api.RevealResponse{ID: id, Secret: secret})
}

// visibilityHandler toggles whether a record's secret stays revealed in
// subsequent list responses for this client.
func visibilityHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req api.ToggleRequest
	if !api.DecodeRequest(w, r, &req, "toggle visibility") {
		return
	}
	if req.ID == "" {
		httputil.BadRequest(w, "Record id is required")
		return
	}

	exists, err := RecordExists(user.ID, req.ID)
	if err != nil {
		httputil.InternalServerError(w, "Failed to check record", err)
		return
	}
	if !exists {
		httputil.NotFound(w, "Record not found")
		return
	}

	revealed := toggleRevealed(clientStateKey(r), req.ID)
	httputil.WriteJSON(w, api.VisibilityResponse{ID: req.ID, Revealed: revealed})
}

// --- Category API ---

// categoriesAPIHandler is the CRUD endpoint for categories.
func categoriesAPIHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		categories, err := getCategories(user.ID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to load categories", err)
			return
		}
		httputil.WriteJSON(w, categories)

	case http.MethodPost:
		var req api.CreateCategoryRequest
		if !api.DecodeRequest(w, r, &req, "create category") {
			return
		}
		if v := validation.ValidateCategory(validation.CategoryRequest{
			Name:  req.Name,
			Color: req.Color,
			Icon:  req.Icon,
		}); v.HasErrors() {
			httputil.BadRequest(w, v.FirstError())
			return
		}

		category, err := createCategory(user.ID, strings.TrimSpace(req.Name), req.Color, req.Icon)
		if err != nil {
			if strings.Contains(err.Error(), "already exists") {
				httputil.Conflict(w, err.Error())
			} else {
				httputil.BadRequest(w, err.Error())
			}
			return
		}
		api.WriteSuccessResponse(w, "Category created", category)

	case http.MethodPut:
		var req api.UpdateCategoryRequest
		if !api.DecodeRequest(w, r, &req, "update category") {
			return
		}
		if req.ID == "" {
			httputil.BadRequest(w, "Category id is required")
			return
		}
		if v := validation.ValidateCategory(validation.CategoryRequest{
			Name:  req.Name,
			Color: req.Color,
			Icon:  req.Icon,
		}); v.HasErrors() {
			httputil.BadRequest(w, v.FirstError())
			return
		}

		err := updateCategory(user.ID, req.ID, strings.TrimSpace(req.Name), req.Color, req.Icon)
		if err != nil {
			switch {
			case strings.Contains(err.Error(), "not found"):
				httputil.NotFound(w, err.Error())
			case strings.Contains(err.Error(), "already exists"):
				httputil.Conflict(w, err.Error())
			default:
				httputil.BadRequest(w, err.Error())
			}
			return
		}
		api.WriteSuccessResponse(w, "Category updated", nil)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			httputil.BadRequest(w, "Category id is required")
			return
		}
		if err := deleteCategory(user.ID, id); err != nil {
			httputil.NotFound(w, err.Error())
			return
		}
		api.WriteSuccessResponse(w, "Category deleted", nil)

	default:
		httputil.MethodNotAllowed(w)
	}
}

// --- Account API ---

// usersAPIHandler is the account management endpoint. The route is
// wrapped in the admin guard; the data layer re-checks permissions for
// the super-admin fences.
func usersAPIHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		users, err := getAllUsers()
		if err != nil {
			httputil.InternalServerError(w, "Failed to load users", err)
			return
		}
		httputil.WriteJSON(w, users)

	case http.MethodPost:
		var req api.CreateAccountRequest
		if !api.DecodeRequest(w, r, &req, "create account") {
			return
		}
		if v := validation.ValidateAccountCreation(validation.AccountRequest{
			Username:    req.Username,
			DisplayName: req.DisplayName,
			Password:    req.Password,
			Role:        req.Role,
		}); v.HasErrors() {
			httputil.BadRequest(w, v.FirstError())
			return
		}

		err := createUser(actor, strings.TrimSpace(req.Username), strings.TrimSpace(req.DisplayName), req.Password, req.Role, false)
		if err != nil {
			switch {
			case strings.Contains(err.Error(), "permission denied"):
				httputil.Forbidden(w, err.Error())
			case strings.Contains(err.Error(), "already exists"):
				httputil.Conflict(w, err.Error())
			default:
				httputil.BadRequest(w, err.Error())
			}
			return
		}
		logger.Success("Account created", "by", actor.Username, "username", req.Username)
		api.WriteSuccessResponse(w, "Account created", nil)

	case http.MethodPut:
		var req api.UpdateAccountRequest
		if !api.DecodeRequest(w, r, &req, "update account") {
			return
		}
		if req.Username == "" {
			httputil.BadRequest(w, "Username is required")
			return
		}

		target, err := getUserByUsername(req.Username)
		if err != nil {
			httputil.NotFound(w, "User not found")
			return
		}

		if req.NewUsername != "" && req.NewUsername != target.Username {
			if err := renameUser(actor, target.ID, strings.TrimSpace(req.NewUsername)); err != nil {
				httputil.BadRequest(w, err.Error())
				return
			}
		}
		if req.DisplayName != nil {
			if err := updateDisplayName(actor, target.ID, strings.TrimSpace(*req.DisplayName)); err != nil {
				httputil.Forbidden(w, err.Error())
				return
			}
		}
		if req.Role != nil {
			if err := changeRole(actor, target.Username, *req.Role); err != nil {
				httputil.Forbidden(w, err.Error())
				return
			}
		}
		if req.NewPassword != "" {
			if err := changePassword(actor, target.Username, "", req.NewPassword); err != nil {
				httputil.BadRequest(w, err.Error())
				return
			}
		}
		api.WriteSuccessResponse(w, "Account updated", nil)

	case http.MethodDelete:
		username := r.URL.Query().Get("username")
		if username == "" {
			httputil.BadRequest(w, "Username is required")
			return
		}
		if err := deleteUser(actor, username); err != nil {
			if strings.Contains(err.Error(), "permission denied") {
				httputil.Forbidden(w, err.Error())
			} else {
				httputil.BadRequest(w, err.Error())
			}
			return
		}
		logger.Security("Account deleted", "by", actor.Username, "username", username)
		api.WriteSuccessResponse(w, "Account deleted", nil)

	default:
		httputil.MethodNotAllowed(w)
	}
}

// changeMyPasswordHandler lets any account change its own password. All
// of the account's sessions are invalidated afterwards.
func changeMyPasswordHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req api.ChangePasswordRequest
	if !api.DecodeRequest(w, r, &req, "change password") {
		return
	}
	if len(req.NewPassword) < 8 {
		httputil.BadRequest(w, "New password must be at least 8 characters")
		return
	}

	if err := changePassword(user, user.Username, req.CurrentPassword, req.NewPassword); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	logger.Security("Password changed", "username", user.Username)
	api.WriteSuccessResponse(w, "Password changed. Please sign in again.", nil)
}

// --- Utility API ---

// maxGeneratedLength bounds ?length= so a client cannot burn CPU on
// arbitrarily large random draws.
const maxGeneratedLength = 128

// generatePasswordHandler returns a random password. ?length= overrides
// the default of 16 characters, up to maxGeneratedLength.
func generatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	length := credential.DefaultLength
	if raw := r.URL.Query().Get("length"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.BadRequest(w, "Invalid length")
			return
		}
		length = parsed
	}
	if length > maxGeneratedLength {
		httputil.BadRequest(w, fmt.Sprintf("Length must be at most %d", maxGeneratedLength))
		return
	}

	password, err := credential.Generate(length)
	if err != nil {
		if errors.Is(err, credential.ErrInvalidLength) {
			httputil.BadRequest(w, "Length must be a positive number")
			return
		}
		httputil.InternalServerError(w, "Failed to generate password", err)
		return
	}

	httputil.WriteJSON(w, api.GenerateResponse{Password: password, Length: length})
}

// tokenHandler issues an API bearer token for the logged-in account.
func tokenHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	token, err := generateToken(user)
	if err != nil {
		httputil.InternalServerError(w, "Failed to generate token", err)
		return
	}
	httputil.WriteJSON(w, api.TokenResponse{Token: token})
}

// --- Export / import ---

// exportRecordsHandler downloads all records as JSON with secrets
// decrypted.
func exportRecordsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	records, err := getAllDecryptedRecords(user.ID)
	if err != nil {
		httputil.InternalServerError(w, "Failed to export records", err)
		return
	}

	logger.Security("Records exported", "username", user.Username, "count", fmt.Sprintf("%d", len(records)))
	w.Header().Set("Content-Disposition", `attachment; filename="passbook-records.json"`)
	httputil.WriteJSON(w, records)
}

// importRecordsHandler uploads records from a previous export. Existing
// records (same title and username) are skipped.
func importRecordsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var records []ExportedRecord
	if !api.DecodeRequest(w, r, &records, "import records") {
		return
	}

	imported, skipped := 0, 0
	for _, rec := range records {
		ok, err := importRecord(user.ID, rec)
		if err != nil {
			logger.Warning("Skipping record on import: " + err.Error())
			skipped++
			continue
		}
		if ok {
			imported++
		} else {
			skipped++
		}
	}

	logger.Info("Records imported", "username", user.Username,
		"imported", fmt.Sprintf("%d", imported), "skipped", fmt.Sprintf("%d", skipped))
	api.WriteSuccessResponse(w, fmt.Sprintf("Imported %d records, skipped %d", imported, skipped), nil)
}

// exportCategoriesHandler downloads all categories as JSON.
func exportCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	categories, err := getCategories(user.ID)
	if err != nil {
		httputil.InternalServerError(w, "Failed to export categories", err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="passbook-categories.json"`)
	httputil.WriteJSON(w, categories)
}

// importCategoriesHandler uploads categories from a previous export.
// Existing names are skipped.
func importCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var categories []Category
	if !api.DecodeRequest(w, r, &categories, "import categories") {
		return
	}

	imported, skipped := 0, 0
	for _, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			skipped++
			continue
		}
		exists, err := CheckDuplicateCategory(user.ID, c.Name, "")
		if err != nil || exists {
			skipped++
			continue
		}
		if _, err := createCategory(user.ID, strings.TrimSpace(c.Name), c.Color, c.Icon); err != nil {
			logger.Warning("Skipping category on import: " + err.Error())
			skipped++
			continue
		}
		imported++
	}

	api.WriteSuccessResponse(w, fmt.Sprintf("Imported %d categories, skipped %d", imported, skipped), nil)
}
