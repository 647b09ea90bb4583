package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

var errRedisDown = errors.New("redis down")

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewSessionManager(logger, repository.NewMemorySessionRepository(), time.Minute)

	srv := httptest.NewServer(NewRouter(logger, manager, nil))
	t.Cleanup(srv.Close)

	return srv
}

func doRequest(t *testing.T, method, url string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}

func decodeSession(t *testing.T, body []byte) SessionResponse {
	t.Helper()

	var response SessionResponse
	require.NoError(t, json.Unmarshal(body, &response))

	return response
}

func createSession(t *testing.T, baseURL string) string {
	t.Helper()

	status, body := doRequest(t, http.MethodPost, baseURL+"/api/sessions")
	require.Equal(t, http.StatusCreated, status)

	return decodeSession(t, body).SessionID
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)

	status, body := doRequest(t, http.MethodGet, srv.URL+"/ping")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", string(body))
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t)

	status, body := doRequest(t, http.MethodGet, srv.URL+"/")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(string(body), "/ws"))
}

func TestSessionAPI(t *testing.T) {
	t.Run("Create returns an empty board", func(t *testing.T) {
		srv := newTestServer(t)

		// When: creating a session
		status, body := doRequest(t, http.MethodPost, srv.URL+"/api/sessions")

		// Then: 201 with a fresh screen
		require.Equal(t, http.StatusCreated, status)

		response := decodeSession(t, body)
		assert.NotEmpty(t, response.SessionID)
		assert.Equal(t, "Next player: X", response.Screen.Status)
		assert.Empty(t, response.Screen.Moves)
	})

	t.Run("Full game with time travel", func(t *testing.T) {
		srv := newTestServer(t)
		id := createSession(t, srv.URL)
		base := srv.URL + "/api/sessions/" + id

		// Given: X wins on the top row
		var body []byte
		for _, cell := range []string{"0", "3", "1", "4", "2"} {
			var status int
			status, body = doRequest(t, http.MethodPost, base+"/cells/"+cell)
			require.Equal(t, http.StatusOK, status)
		}

		screen := decodeSession(t, body).Screen
		assert.Equal(t, "X is the winner!", screen.Status)
		assert.Equal(t, "You made 5 moves", screen.Caption)
		assert.True(t, screen.Cells[0].Highlighted)

		// When: clicking a free cell after the win
		status, body := doRequest(t, http.MethodPost, base+"/cells/8")

		// Then: the click is ignored
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decodeSession(t, body).Screen.Moves, 5)

		// When: jumping back to move 2
		status, body = doRequest(t, http.MethodPost, base+"/moves/2")

		// Then: no highlight and no caption
		require.Equal(t, http.StatusOK, status)
		screen = decodeSession(t, body).Screen
		assert.False(t, screen.Cells[0].Highlighted)
		assert.Empty(t, screen.Caption)
		assert.Equal(t, 2, screen.CurrentMove)

		// When: toggling the sort order
		status, body = doRequest(t, http.MethodPost, base+"/sort")

		// Then: moves are listed newest first
		require.Equal(t, http.StatusOK, status)
		screen = decodeSession(t, body).Screen
		assert.Equal(t, 5, screen.Moves[0].Move)
		assert.Equal(t, "Sort Ascending", screen.SortLabel)

		// When: starting a new game
		status, body = doRequest(t, http.MethodPost, base+"/new")

		// Then: the board is empty again
		require.Equal(t, http.StatusOK, status)
		screen = decodeSession(t, body).Screen
		assert.Empty(t, screen.Moves)
		assert.Equal(t, entity.EmptyCell, screen.Cells[0].Mark)

		// And: GET returns the same state
		status, body = doRequest(t, http.MethodGet, base)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, screen, decodeSession(t, body).Screen)
	})

	t.Run("Bad requests", func(t *testing.T) {
		srv := newTestServer(t)
		base := srv.URL + "/api/sessions/" + createSession(t, srv.URL)

		tests := []struct {
			name string
			path string
		}{
			{"cell out of range", "/cells/9"},
			{"negative cell", "/cells/-1"},
			{"cell not a number", "/cells/abc"},
			{"move out of range", "/moves/3"},
			{"move not a number", "/moves/x"},
		}

		for _, tt := range tests {
			status, body := doRequest(t, http.MethodPost, base+tt.path)

			assert.Equal(t, http.StatusBadRequest, status, tt.name)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(body, &response))
			assert.NotEmpty(t, response.Error, tt.name)
		}
	})

	t.Run("Unknown session", func(t *testing.T) {
		srv := newTestServer(t)

		status, _ := doRequest(t, http.MethodGet, srv.URL+"/api/sessions/missing")
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = doRequest(t, http.MethodPost, srv.URL+"/api/sessions/missing/cells/0")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Delete ends the session", func(t *testing.T) {
		srv := newTestServer(t)
		base := srv.URL + "/api/sessions/" + createSession(t, srv.URL)

		status, _ := doRequest(t, http.MethodDelete, base)
		require.Equal(t, http.StatusNoContent, status)

		status, _ = doRequest(t, http.MethodGet, base)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

type failingManager struct {
	sessionManager
}

func (that failingManager) Start(context.Context) (*entity.Game, error) {
	return nil, errRedisDown
}

func TestSessionAPI_InternalError(t *testing.T) {
	// Given: a manager whose storage is down
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(logger, failingManager{}, nil))
	t.Cleanup(srv.Close)

	// When: creating a session
	status, body := doRequest(t, http.MethodPost, srv.URL+"/api/sessions")

	// Then: 500 without leaking the cause
	assert.Equal(t, http.StatusInternalServerError, status)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "Internal Server Error", response.Error)
}
