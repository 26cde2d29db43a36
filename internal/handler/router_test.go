package handler

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/phonebook/backend/internal/config"
	"github.com/zhouzirui/phonebook/backend/internal/model/person"
	"github.com/zhouzirui/phonebook/backend/internal/service/feed"
)

func setupRouter(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":0", AllowedOrigins: []string{"*"}},
		Log:    config.LogConfig{RequestBody: true},
	}
	hub := feed.NewHub()
	store := person.NewMemoryStore(person.Seed())
	store.SetObserver(hub)
	return NewRouter(cfg, store, hub, log.New(&logs, "", 0)), &logs
}

func TestRouterPhonebookFlow(t *testing.T) {
	r, logs := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/persons", strings.NewReader(`{"name":"New Person","number":"000-000"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	var created person.Person
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Contains(t, logs.String(), `POST /api/persons 201 `)
	assert.Contains(t, logs.String(), ` ms {"name":"New Person","number":"000-000"}`)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/info", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Phonebook has info for 5 people")

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}

func TestRouterUnknownRoute(t *testing.T) {
	r, _ := setupRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
