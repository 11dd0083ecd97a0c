package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/core/services"
)

const (
	testUser     = "agent"
	testPassword = "correct-horse"
)

// testEnv is a server wired to in-memory stores.
type testEnv struct {
	t         *testing.T
	http      *httptest.Server
	server    *Server
	persist   *services.PersistenceService
	workspace *services.Workspace
	assets    *services.AssetResolver
	admin     *services.AdminGate
	property  domain.Property
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	props := memory.NewPropertyStore()
	blobs := memory.NewBlobStore()
	persist := services.NewPersistenceService(props, props, blobs, nil)
	workspace := services.NewWorkspace(persist, domain.EditorSettings{Debounce: domain.MinDebounce, Autosave: true})
	assets := services.NewAssetResolver(blobs, nil)
	admin := services.NewAdminGate(memory.NewConfigStore())
	require.NoError(t, admin.SetCredentials(testUser, testPassword))

	p, _, err := persist.Create(context.Background(), driving.NewProperty{
		Name:    "Harbour Villa",
		Address: "1 Quay Street",
		Price:   950000,
	})
	require.NoError(t, err)

	server := NewServer(domain.ServerSettings{}, Deps{
		Workspace:   workspace,
		Properties:  persist,
		Submissions: persist,
		Site:        persist,
		Assets:      assets,
		Admin:       admin,
	})
	srv := httptest.NewServer(server)
	t.Cleanup(func() {
		srv.Close()
		_ = workspace.Close(context.Background())
	})

	return &testEnv{
		t:         t,
		http:      srv,
		server:    server,
		persist:   persist,
		workspace: workspace,
		assets:    assets,
		admin:     admin,
		property:  p,
	}
}

// login returns an admin token.
func (e *testEnv) login() string {
	e.t.Helper()
	token, err := e.admin.Login(testUser, testPassword)
	require.NoError(e.t, err)
	return token
}

func (e *testEnv) request(method, path, token, contentType, body string) *http.Response {
	e.t.Helper()
	req, err := http.NewRequest(method, e.http.URL+path, strings.NewReader(body))
	require.NoError(e.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	require.NoError(e.t, err)
	e.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// wsTestClient is a helper for edit protocol testing.
type wsTestClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func (e *testEnv) dial(token string) *wsTestClient {
	e.t.Helper()
	header := http.Header{}
	if token != "" {
		header.Set("Cookie", SessionCookie+"="+token)
	}
	url := "ws" + strings.TrimPrefix(e.http.URL, "http") + "/ws/" + e.property.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(e.t, err)
	e.t.Cleanup(func() { conn.Close() })
	return &wsTestClient{t: e.t, conn: conn}
}

func (c *wsTestClient) send(frameType, id string, data any) {
	c.t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.WriteJSON(Envelope{Type: frameType, ID: id, Data: raw}))
}

// next reads frames until one of frameType arrives.
func (c *wsTestClient) next(frameType string) Envelope {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var env Envelope
		require.NoError(c.t, c.conn.ReadJSON(&env))
		if env.Type == frameType {
			return env
		}
	}
}

// property reads the next property frame.
func (c *wsTestClient) property() domain.Property {
	c.t.Helper()
	var p domain.Property
	require.NoError(c.t, json.Unmarshal(c.next(FrameProperty).Data, &p))
	return p
}
