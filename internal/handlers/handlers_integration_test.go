package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jurnal/internal/config"
	"jurnal/internal/database"
	"jurnal/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp builds the full application on a private in-memory SQLite database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		Env:              "test",
		DatabaseDriver:   config.DriverSQLite,
		DatabaseDSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MigrationMode:    config.MigrationAuto,
		JWTSecret:        "test_jwt_secret",
		JWTExpiration:    time.Hour,
		CORSAllowOrigins: "*",
		PageDefaultSize:  10,
		PageMaxSize:      50,
	}

	db, err := database.OpenFromConfig(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, cfg.MigrationMode, zerolog.Nop()))
	t.Cleanup(func() { _ = database.Close(db) })

	return server.New(cfg, db, zerolog.Nop())
}

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func (a apiClient) do(method, path, token string, body interface{}) (int, []byte) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, data
}

func (a apiClient) json(method, path, token string, body interface{}, wantStatus int) map[string]interface{} {
	a.t.Helper()
	status, data := a.do(method, path, token, body)
	require.Equal(a.t, wantStatus, status, "%s %s: %s", method, path, data)
	out := map[string]interface{}{}
	if len(data) > 0 && data[0] == '{' {
		require.NoError(a.t, json.Unmarshal(data, &out))
	}
	return out
}

func (a apiClient) signup(username, role string) {
	a.t.Helper()
	a.json(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@x.com",
		"password": "password123",
		"fullName": username,
		"bio":      "bio",
		"role":     role,
	}, http.StatusOK)
}

func (a apiClient) signin(username string) string {
	a.t.Helper()
	body := a.json(http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": username,
		"password": "password123",
	}, http.StatusOK)
	token, _ := body["token"].(string)
	require.NotEmpty(a.t, token)
	return token
}

func TestAuthEndpoints(t *testing.T) {
	api := apiClient{t: t, app: setupApp(t)}

	api.signup("alice", "AUTHOR")

	// Duplicate username
	body := api.json(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice", "email": "other@x.com", "password": "password123", "fullName": "Alice",
	}, http.StatusConflict)
	assert.Equal(t, "CONFLICT", body["code"])

	// Validation errors are reported per JSON field
	body = api.json(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "al", "email": "not-an-email", "password": "x",
	}, http.StatusBadRequest)
	errs, _ := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "fullName")

	body = api.json(http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "alice", "password": "password123",
	}, http.StatusOK)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@x.com", body["email"])
	assert.Equal(t, "Bearer", body["type"])
	assert.Equal(t, []interface{}{"AUTHOR"}, body["roles"])

	api.json(http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "alice", "password": "wrong",
	}, http.StatusUnauthorized)
	api.json(http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "nobody", "password": "password123",
	}, http.StatusUnauthorized)
}

func TestArticleScenario(t *testing.T) {
	api := apiClient{t: t, app: setupApp(t)}

	api.signup("alice", "AUTHOR")
	api.signup("bob", "AUTHOR")
	api.signup("carol", "")
	alice := api.signin("alice")
	bob := api.signin("bob")
	carol := api.signin("carol")

	payload := map[string]interface{}{
		"title":     "Hello World",
		"excerpt":   "First post",
		"content":   "Hello from the blog",
		"category":  "Intro",
		"published": true,
	}

	// Writes need a token and a writer role
	api.json(http.MethodPost, "/api/articles", "", payload, http.StatusUnauthorized)
	api.json(http.MethodPost, "/api/articles", carol, payload, http.StatusForbidden)

	created := api.json(http.MethodPost, "/api/articles", alice, payload, http.StatusOK)
	assert.Equal(t, "hello-world", created["slug"])
	assert.Equal(t, true, created["published"])
	assert.NotNil(t, created["publishedAt"])
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	dup := api.json(http.MethodPost, "/api/articles", alice, payload, http.StatusOK)
	assert.Equal(t, "hello-world-1", dup["slug"])

	body := api.json(http.MethodPost, "/api/articles", alice, map[string]interface{}{"excerpt": "x", "content": "y"}, http.StatusBadRequest)
	assert.Contains(t, body["errors"], "title")

	// Views
	var viewed map[string]interface{}
	for i := 0; i < 3; i++ {
		viewed = api.json(http.MethodPost, "/api/articles/hello-world/view", "", nil, http.StatusOK)
	}
	assert.EqualValues(t, 3, viewed["viewCount"])
	api.json(http.MethodPost, "/api/articles/missing/view", "", nil, http.StatusNotFound)

	// A different author cannot edit alice's article
	hijack := map[string]interface{}{"title": "Owned", "excerpt": "x", "content": "y"}
	body = api.json(http.MethodPut, "/api/articles/"+id, bob, hijack, http.StatusForbidden)
	assert.Equal(t, "PERMISSION_DENIED", body["code"])
	api.json(http.MethodDelete, "/api/articles/"+id, bob, nil, http.StatusForbidden)

	stored := api.json(http.MethodGet, "/api/articles/public/hello-world", "", nil, http.StatusOK)
	assert.Equal(t, "Hello World", stored["title"])
	assert.EqualValues(t, 3, stored["viewCount"])

	// The owner can
	edited := api.json(http.MethodPut, "/api/articles/"+id, alice, map[string]interface{}{
		"title": "Hello World", "excerpt": "Edited", "content": "Body", "category": "Intro", "published": true, "featured": true,
	}, http.StatusOK)
	assert.Equal(t, "hello-world", edited["slug"])
	assert.Equal(t, true, edited["featured"])

	// Public listings
	page := api.json(http.MethodGet, "/api/articles/public?page=0&size=1&sortBy=title&sortDir=asc", "", nil, http.StatusOK)
	assert.EqualValues(t, 2, page["totalElements"])
	assert.EqualValues(t, 2, page["totalPages"])
	assert.Equal(t, true, page["first"])
	assert.Equal(t, false, page["last"])

	page = api.json(http.MethodGet, "/api/articles/featured", "", nil, http.StatusOK)
	assert.EqualValues(t, 1, page["totalElements"])

	page = api.json(http.MethodGet, "/api/articles/most-viewed", "", nil, http.StatusOK)
	content, _ := page["content"].([]interface{})
	require.NotEmpty(t, content)
	assert.Equal(t, "hello-world", content[0].(map[string]interface{})["slug"])

	page = api.json(http.MethodGet, "/api/articles/search?q=Hello", "", nil, http.StatusOK)
	assert.EqualValues(t, 2, page["totalElements"])
	page = api.json(http.MethodGet, "/api/articles/search?q=hello", "", nil, http.StatusOK)
	assert.EqualValues(t, 0, page["totalElements"])

	api.json(http.MethodGet, "/api/articles/search", "", nil, http.StatusBadRequest)
	api.json(http.MethodGet, "/api/articles/search?q=", "", nil, http.StatusBadRequest)

	page = api.json(http.MethodGet, "/api/articles/category/Intro", "", nil, http.StatusOK)
	assert.EqualValues(t, 2, page["totalElements"])

	status, raw := api.do(http.MethodGet, "/api/articles/categories", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["Intro"]`, string(raw))

	page = api.json(http.MethodGet, "/api/articles/author/alice", "", nil, http.StatusOK)
	assert.EqualValues(t, 2, page["totalElements"])

	page = api.json(http.MethodGet, "/api/articles/my-articles", bob, nil, http.StatusOK)
	assert.EqualValues(t, 0, page["totalElements"])

	// Bad paging input
	api.json(http.MethodGet, "/api/articles/public?page=-1", "", nil, http.StatusBadRequest)
	api.json(http.MethodGet, "/api/articles/public?size=0", "", nil, http.StatusBadRequest)
	api.json(http.MethodGet, "/api/articles/public?sortBy=password", "", nil, http.StatusBadRequest)
	api.json(http.MethodGet, "/api/articles/public?page=abc", "", nil, http.StatusBadRequest)

	// Delete by owner
	api.json(http.MethodDelete, "/api/articles/"+id, alice, nil, http.StatusNoContent)
	api.json(http.MethodGet, "/api/articles/public/hello-world", "", nil, http.StatusNotFound)
}

func TestProfileAndAdmin(t *testing.T) {
	api := apiClient{t: t, app: setupApp(t)}

	api.signup("root", "ADMIN")
	api.signup("alice", "AUTHOR")
	api.signup("bob", "USER")
	root := api.signin("root")
	alice := api.signin("alice")
	bob := api.signin("bob")

	me := api.json(http.MethodGet, "/api/users/me", alice, nil, http.StatusOK)
	assert.Equal(t, "alice", me["username"])
	assert.NotContains(t, me, "password")

	updated := api.json(http.MethodPut, "/api/users/me", alice, map[string]string{
		"fullName": "Alice Liddell", "email": "alice@wonder.land", "bio": "curious",
	}, http.StatusOK)
	assert.Equal(t, "Alice Liddell", updated["fullName"])
	api.json(http.MethodPut, "/api/users/me", alice, map[string]string{
		"fullName": "Alice", "email": "bob@x.com",
	}, http.StatusConflict)

	// Admin area is closed to non-admins
	api.json(http.MethodGet, "/api/admin/stats", alice, nil, http.StatusForbidden)
	api.json(http.MethodGet, "/api/admin/stats", "", nil, http.StatusUnauthorized)

	article := api.json(http.MethodPost, "/api/articles", alice, map[string]interface{}{
		"title": "Draft", "excerpt": "x", "content": "y",
	}, http.StatusOK)
	articleID := article["id"].(string)
	assert.Nil(t, article["publishedAt"])

	published := api.json(http.MethodPut, "/api/admin/articles/"+articleID+"/publish", root, nil, http.StatusOK)
	assert.Equal(t, true, published["published"])
	stamp := published["publishedAt"]
	require.NotNil(t, stamp)
	unpublished := api.json(http.MethodPut, "/api/admin/articles/"+articleID+"/unpublish", root, nil, http.StatusOK)
	assert.Equal(t, false, unpublished["published"])
	first, err := time.Parse(time.RFC3339Nano, stamp.(string))
	require.NoError(t, err)
	kept, err := time.Parse(time.RFC3339Nano, unpublished["publishedAt"].(string))
	require.NoError(t, err)
	assert.True(t, first.Equal(kept))

	trending := api.json(http.MethodPut, "/api/admin/articles/"+articleID+"/trending", root, map[string]bool{"value": true}, http.StatusOK)
	assert.Equal(t, true, trending["trending"])
	api.json(http.MethodPut, "/api/admin/articles/"+articleID+"/featured", root, map[string]string{}, http.StatusBadRequest)

	all := api.json(http.MethodGet, "/api/admin/articles", root, nil, http.StatusOK)
	assert.EqualValues(t, 1, all["totalElements"])

	stats := api.json(http.MethodGet, "/api/admin/stats", root, nil, http.StatusOK)
	assert.EqualValues(t, 3, stats["users"])
	assert.EqualValues(t, 1, stats["articles"])
	assert.EqualValues(t, 0, stats["publishedArticles"])

	users := api.json(http.MethodGet, "/api/admin/users?role=AUTHOR", root, nil, http.StatusOK)
	assert.EqualValues(t, 1, users["totalElements"])
	api.json(http.MethodGet, "/api/admin/users?role=GOD", root, nil, http.StatusBadRequest)

	// Promote bob, then disable him: his existing token stops working
	users = api.json(http.MethodGet, "/api/admin/users?q=bob", root, nil, http.StatusOK)
	bobID := users["content"].([]interface{})[0].(map[string]interface{})["id"].(string)

	promoted := api.json(http.MethodPut, "/api/admin/users/"+bobID+"/role", root, map[string]string{"role": "AUTHOR"}, http.StatusOK)
	assert.Equal(t, "AUTHOR", promoted["role"])
	api.json(http.MethodGet, "/api/articles/my-articles", bob, nil, http.StatusOK)

	api.json(http.MethodPut, "/api/admin/users/"+bobID+"/deactivate", root, nil, http.StatusOK)
	api.json(http.MethodGet, "/api/users/me", bob, nil, http.StatusUnauthorized)
	api.json(http.MethodPost, "/api/auth/signin", "", map[string]string{"username": "bob", "password": "password123"}, http.StatusUnauthorized)
	api.json(http.MethodPut, "/api/admin/users/"+bobID+"/activate", root, nil, http.StatusOK)
	api.json(http.MethodGet, "/api/users/me", bob, nil, http.StatusOK)

	// Deleting alice removes her articles too
	aliceUser := api.json(http.MethodGet, "/api/users/me", alice, nil, http.StatusOK)
	api.json(http.MethodDelete, "/api/admin/users/"+aliceUser["id"].(string), root, nil, http.StatusNoContent)
	stats = api.json(http.MethodGet, "/api/admin/stats", root, nil, http.StatusOK)
	assert.EqualValues(t, 0, stats["articles"])
	api.json(http.MethodGet, "/api/admin/users/"+aliceUser["id"].(string), root, nil, http.StatusNotFound)
}

func TestHealthAndMetrics(t *testing.T) {
	api := apiClient{t: t, app: setupApp(t)}

	body := api.json(http.MethodGet, "/health", "", nil, http.StatusOK)
	assert.Equal(t, "healthy", body["status"])

	status, raw := api.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "jurnal_http_request_duration_seconds")

	body = api.json(http.MethodGet, "/api/nowhere", "", nil, http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
