package person

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/phonebook/backend/internal/model/person"
	"github.com/zhouzirui/phonebook/backend/internal/service/feed"
)

func setupFeedServer(t *testing.T) (*httptest.Server, *person.MemoryStore, *feed.Hub) {
	t.Helper()
	hub := feed.NewHub()
	store := person.NewMemoryStore(person.Seed())
	store.SetObserver(hub)

	r := chi.NewRouter()
	r.Route("/api", New(store, hub).RegisterRoutes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store, hub
}

func waitForSubscribers(t *testing.T, hub *feed.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Subscribers() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketReceivesChanges(t *testing.T) {
	srv, store, hub := setupFeedServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/persons/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var status statusMessage
	require.NoError(t, conn.ReadJSON(&status))
	assert.Equal(t, "status", status.Type)

	created, err := store.Create("New Person", "000-000")
	require.NoError(t, err)
	store.Delete(created.ID)

	var ev feed.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, person.EventCreated, ev.Type)
	assert.Equal(t, created, ev.Person)

	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, person.EventDeleted, ev.Type)

	conn.Close()
	waitForSubscribers(t, hub, 0)
}

func TestStreamReceivesChanges(t *testing.T) {
	srv, store, hub := setupFeedServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/persons/stream", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() (string, string) {
		var name, data string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			case line == "":
				return name, data
			}
		}
	}

	name, _ := readEvent()
	assert.Equal(t, "status", name)
	waitForSubscribers(t, hub, 1)

	_, err = store.Create("Stream Person", "123")
	require.NoError(t, err)

	name, data := readEvent()
	assert.Equal(t, "created", name)
	assert.Contains(t, data, `"name":"Stream Person"`)
}
