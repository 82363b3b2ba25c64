package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/roomhunt/room_rental_system/backend/controllers"
	"github.com/roomhunt/room_rental_system/backend/middleware"
	"github.com/roomhunt/room_rental_system/backend/routes"
)

// testApp wires the full /api router against the in-memory fakes.
type testApp struct {
	users    *memUsers
	rooms    *memRooms
	sessions *memSessions
	assets   *recordCleaner
	cache    *memCache
	router   *mux.Router
}

func newTestApp() *testApp {
	app := &testApp{
		users:    newMemUsers(),
		rooms:    newMemRooms(),
		sessions: newMemSessions(),
		assets:   &recordCleaner{},
		cache:    newMemCache(),
	}

	logger := zerolog.Nop()
	auth := &controllers.AuthController{Users: app.users, Sessions: app.sessions, Logger: logger}
	rooms := &controllers.RoomsController{
		Rooms:  app.rooms,
		Users:  app.users,
		Assets: app.assets,
		Cache:  app.cache,
		Logger: logger,
	}
	profile := &controllers.ProfileController{Users: app.users, Rooms: app.rooms, Logger: logger}
	guards := &middleware.Auth{Sessions: app.sessions, Logger: logger}

	app.router = mux.NewRouter()
	routes.Routes(app.router, auth, rooms, profile, guards)
	return app
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) signup(t *testing.T, email string) (userID string, token string) {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"email":      email,
		"name":       "Ada",
		"lastName":   "Lovelace",
		"password":   "Abcdefg1",
		"phone":      "600123123",
		"isLandlord": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		User struct {
			ID string `json:"_id"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.User.ID, body.AccessToken
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		ErrorMessage string `json:"errorMessage"`
	}
	decodeBody(t, rec, &body)
	return body.ErrorMessage
}
