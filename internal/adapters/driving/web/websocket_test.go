package web

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

func TestSocket_VisitorCannotEdit(t *testing.T) {
	env := setupServer(t)
	c := env.dial("")

	p := c.property()
	assert.Equal(t, env.property.ID, p.ID)

	c.send("setField", "1", map[string]any{"sectionId": p.Sections[0].SectionID(), "path": "title.text", "value": "Hi"})
	frame := c.next(FrameError)

	var e errorFrame
	require.NoError(t, json.Unmarshal(frame.Data, &e))
	assert.Equal(t, "1", frame.ID)
	assert.Equal(t, "admin_required", e.Code)
}

func TestSocket_AdminEditBroadcasts(t *testing.T) {
	env := setupServer(t)
	admin := env.dial(env.login())
	visitor := env.dial("")
	admin.property()
	visitor.property()

	heroID := env.property.Sections[0].SectionID()
	admin.send("setField", "7", map[string]any{"sectionId": heroID, "path": "title.text", "value": "Sea views"})

	var out outcomeFrame
	frame := admin.next(FrameOutcome)
	require.NoError(t, json.Unmarshal(frame.Data, &out))
	assert.Equal(t, "7", frame.ID)
	assert.True(t, out.Changed)
	assert.Equal(t, env.property.Version+1, out.Version)

	p := visitor.property()
	hero, ok := p.Sections[0].(domain.HeroSection)
	require.True(t, ok)
	assert.Equal(t, "Sea views", hero.Title.Text)
}

func TestSocket_AddSection(t *testing.T) {
	env := setupServer(t)
	c := env.dial(env.login())
	c.property()

	c.send("addSection", "a", map[string]any{"type": "banner", "title": "Open house"})
	var out outcomeFrame
	require.NoError(t, json.Unmarshal(c.next(FrameOutcome).Data, &out))
	require.NotEmpty(t, out.CreatedID)

	p := c.property()
	last := p.Sections[len(p.Sections)-1]
	assert.Equal(t, out.CreatedID, last.SectionID(), "omitted index appends")
	assert.Equal(t, domain.SectionBanner, last.Type())
}

func TestSocket_SelectReportsSelection(t *testing.T) {
	env := setupServer(t)
	c := env.dial(env.login())
	c.property()

	ref := domain.ElementRef{Kind: domain.ElementField, SectionID: env.property.Sections[0].SectionID(), Field: "title"}
	c.send("select", "s", map[string]any{"ref": ref})

	var out outcomeFrame
	require.NoError(t, json.Unmarshal(c.next(FrameOutcome).Data, &out))
	if out.Selected != nil {
		assert.Equal(t, ref.SectionID, out.Selected.SectionID)
	}
}

func TestSocket_BadRequests(t *testing.T) {
	env := setupServer(t)
	c := env.dial(env.login())
	c.property()

	tests := []struct {
		frameType string
		data      any
		code      string
	}{
		{"teleport", nil, "bad_request"},
		{"setField", "not an object", "invalid_input"},
		{"suggestLocation", nil, "not_implemented"},
	}

	for _, tt := range tests {
		t.Run(tt.frameType, func(t *testing.T) {
			c.send(tt.frameType, tt.frameType, tt.data)
			frame := c.next(FrameError)
			var e errorFrame
			require.NoError(t, json.Unmarshal(frame.Data, &e))
			assert.Equal(t, tt.frameType, frame.ID)
			assert.Equal(t, tt.code, e.Code)
		})
	}
}

func TestSocket_LogoutRevokesEditing(t *testing.T) {
	env := setupServer(t)
	token := env.login()
	c := env.dial(token)
	c.property()

	env.admin.Logout(token)
	c.send("deselect", "d", nil)

	var e errorFrame
	require.NoError(t, json.Unmarshal(c.next(FrameError).Data, &e))
	assert.Equal(t, "admin_required", e.Code)
}

func TestSocket_AdminModeFollowsConnections(t *testing.T) {
	env := setupServer(t)
	session, err := env.workspace.Open(t.Context(), env.property.ID)
	require.NoError(t, err)

	c := env.dial(env.login())
	c.property()
	assert.True(t, session.Admin())
	assert.Equal(t, 1, env.server.Hub().Connections())

	require.NoError(t, c.conn.Close())
	assert.Eventually(t, func() bool {
		return !session.Admin() && env.server.Hub().Connections() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSocket_UnknownProperty(t *testing.T) {
	env := setupServer(t)

	resp := env.request("GET", "/ws/missing", "", "", "")
	assert.Equal(t, 404, resp.StatusCode)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "permission", errorCode(domain.NewStoreError(domain.KindPermission, "save", nil)))
	assert.Equal(t, "network", errorCode(domain.NewStoreError(domain.KindNetwork, "save", nil)))
	assert.Equal(t, "invalid_input", errorCode(domain.NewStoreError(domain.KindValidation, "save", nil)))
	assert.Equal(t, "internal", errorCode(assert.AnError))
}
