package server

import (
	"net/http"
	"testing"

	"pitchside/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUser(t *testing.T) {
	t.Parallel()
	s, app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/user/register", "", map[string]string{
		"username": "alice77",
		"password": "supersecret",
		"email":    "alice@example.com",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "response should wrap the user")
	assert.Equal(t, "alice77", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "password")

	var stored models.User
	require.NoError(t, s.db.Where("username = ?", "alice77").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")),
		"stored password must be a hash of the submitted one")
}

func TestRegisterUserRejectsBadInput(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestApp(t)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"short username", map[string]string{"username": "bob", "password": "supersecret", "email": "bob@example.com"}},
		{"short password", map[string]string{"username": "bobby77", "password": "short", "email": "bob@example.com"}},
		{"bad email", map[string]string{"username": "bobby77", "password": "supersecret", "email": "not-an-email"}},
		{"missing fields", map[string]string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/user/register", "", tc.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "Wrong data", body["error"])
		})
	}
}

func TestRegisterUserDuplicate(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestApp(t)

	payload := map[string]string{
		"username": "carol77",
		"password": "supersecret",
		"email":    "carol@example.com",
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/user/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/user/register", "", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Error creating a new user", body["error"])
}

func TestLoginUser(t *testing.T) {
	t.Parallel()
	s, app, _ := newTestApp(t)
	createTestUser(t, s, "dave77")

	resp, body := doJSON(t, app, http.MethodPost, "/user/login", "", map[string]string{
		"username": "dave77",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)

	// the issued token must open the protected surface
	resp, _ = doJSON(t, app, http.MethodGet, "/predictions/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginUserWrongCredentials(t *testing.T) {
	t.Parallel()
	s, app, _ := newTestApp(t)
	createTestUser(t, s, "erin77")

	// wrong password and unknown username must be indistinguishable
	for _, payload := range []map[string]string{
		{"username": "erin77", "password": "not-the-password"},
		{"username": "nobody77", "password": "password123"},
	} {
		resp, body := doJSON(t, app, http.MethodPost, "/user/login", "", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Wrong credentials", body["error"])
	}
}

func TestEditUser(t *testing.T) {
	t.Parallel()
	s, app, _ := newTestApp(t)
	user, token := createTestUser(t, s, "frank77")

	resp, body := doJSON(t, app, http.MethodPatch, "/user/update", token, map[string]string{
		"email":    "frank@new.example.com",
		"password": "a-brand-new-pass",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "frank@new.example.com", body["email"])
	assert.NotContains(t, body, "password")

	var stored models.User
	require.NoError(t, s.db.First(&stored, user.ID).Error)
	assert.Equal(t, "frank@new.example.com", stored.Email)
	assert.Equal(t, "frank77", stored.Username, "omitted fields keep their values")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("a-brand-new-pass")))
}

func TestEditUserDuplicateUsername(t *testing.T) {
	t.Parallel()
	s, app, _ := newTestApp(t)
	createTestUser(t, s, "grace77")
	_, token := createTestUser(t, s, "heidi77")

	resp, body := doJSON(t, app, http.MethodPatch, "/user/update", token, map[string]string{
		"username": "grace77",
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Error updating user", body["error"])
}

func TestEditUserRequiresAuth(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPatch, "/user/update", "", map[string]string{
		"email": "nope@example.com",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing token", body["error"])
}
