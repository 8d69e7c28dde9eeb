package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/bloglist-go/config"
	"github.com/user/bloglist-go/store/sqlite"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *sqlite.Store
}

func newTestServer(t *testing.T, env string) *testServer {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	st, err := sqlite.Open("file:server_" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := &config.AppConfig{
		Database: &config.DatabaseConfig{Driver: config.DriverSQLite},
		Auth:     &config.AuthConfig{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost},
		Server:   &config.ServerConfig{Port: "0", Env: env, LogLevel: "disabled"},
	}
	return &testServer{t: t, handler: NewRouter(cfg, st), store: st}
}

func (s *testServer) request(method, path, body, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// signup creates a user and logs in, returning the token and user id.
func (s *testServer) signup(username, password string) (string, string) {
	s.t.Helper()
	rec := s.request(http.MethodPost, "/api/users", `{"username":"`+username+`","name":"Test User","password":"`+password+`"}`, "")
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.request(http.MethodPost, "/api/login", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var login map[string]string
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(s.t, login["token"])
	return login["token"], login["id"]
}

func (s *testServer) blogCount() int {
	s.t.Helper()
	rec := s.request(http.MethodGet, "/api/blogs", "", "")
	require.Equal(s.t, http.StatusOK, rec.Code)
	var blogs []map[string]any
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &blogs))
	return len(blogs)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestBlogFlow(t *testing.T) {
	s := newTestServer(t, config.EnvTest)
	token, userID := s.signup("root", "sekret")

	rec := s.request(http.MethodPost, "/api/blogs", `{"title":"Go To Statement Considered Harmful","author":"Edsger W. Dijkstra","url":"http://example.com/goto"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	blogID, _ := created["id"].(string)
	require.NotEmpty(t, blogID)
	assert.EqualValues(t, 0, created["likes"])
	user, ok := created["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, userID, user["id"])
	assert.Equal(t, "root", user["username"])
	assert.Equal(t, 1, s.blogCount())

	rec = s.request(http.MethodPut, "/api/blogs/"+blogID, `{"likes":5}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, decode(t, rec)["likes"])

	rec = s.request(http.MethodGet, "/api/users", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "passwordHash")
	blogs, _ := users[0]["blogs"].([]any)
	assert.Len(t, blogs, 1)

	rec = s.request(http.MethodGet, "/api/blogs/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, decode(t, rec)["totalLikes"])

	rec = s.request(http.MethodDelete, "/api/blogs/"+blogID, "", token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, s.blogCount())
}

func TestCreateBlogWithoutToken(t *testing.T) {
	s := newTestServer(t, config.EnvTest)

	rec := s.request(http.MethodPost, "/api/blogs", `{"title":"t","url":"u"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token missing", decode(t, rec)["error"])

	rec = s.request(http.MethodPost, "/api/blogs", `{"title":"t","url":"u"}`, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token invalid", decode(t, rec)["error"])

	assert.Equal(t, 0, s.blogCount())
}

func TestInvalidTokenDoesNotBlockPublicRoutes(t *testing.T) {
	s := newTestServer(t, config.EnvTest)
	rec := s.request(http.MethodGet, "/api/blogs", "", "garbage")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteByNonOwner(t *testing.T) {
	s := newTestServer(t, config.EnvTest)
	ownerToken, _ := s.signup("owner", "sekret")
	otherToken, _ := s.signup("other", "sekret")

	rec := s.request(http.MethodPost, "/api/blogs", `{"title":"mine","url":"http://example.com"}`, ownerToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	blogID := decode(t, rec)["id"].(string)

	rec = s.request(http.MethodDelete, "/api/blogs/"+blogID, "", otherToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, s.blogCount())
}

func TestLoginFailure(t *testing.T) {
	s := newTestServer(t, config.EnvTest)
	s.signup("root", "sekret")

	rec := s.request(http.MethodPost, "/api/login", `{"username":"root","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid username or password", decode(t, rec)["error"])
}

func TestUnknownEndpointAndMethod(t *testing.T) {
	s := newTestServer(t, config.EnvTest)

	rec := s.request(http.MethodGet, "/api/nothing-here", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"unknown endpoint"}`, rec.Body.String())

	rec = s.request(http.MethodPatch, "/api/blogs", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTestingReset(t *testing.T) {
	s := newTestServer(t, config.EnvTest)
	token, _ := s.signup("root", "sekret")
	rec := s.request(http.MethodPost, "/api/blogs", `{"title":"t","url":"u"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.request(http.MethodPost, "/api/testing/reset", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, s.blogCount())

	rec = s.request(http.MethodGet, "/api/users", "", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTestingResetOnlyInTestEnv(t *testing.T) {
	s := newTestServer(t, config.EnvProduction)
	rec := s.request(http.MethodPost, "/api/testing/reset", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, config.EnvTest)
	rec := s.request(http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSwaggerDocument(t *testing.T) {
	s := newTestServer(t, config.EnvTest)
	rec := s.request(http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/blogs/{id}"`)
}

func TestRecovererReturnsUniformError(t *testing.T) {
	h := recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
