package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

func galleryIDs(t *testing.T, p domain.Property) []string {
	t.Helper()
	s, ok := p.Section("g")
	require.True(t, ok)
	return ItemIDs(s)
}

func TestGallery_AddThenDelete(t *testing.T) {
	p := galleryProperty()
	require.Equal(t, []string{"A", "B"}, galleryIDs(t, p))

	p, id, err := AddItem(p, "g", Patch{"caption": "Pool", "image": "img_c"}, func() string { return "C" })
	require.NoError(t, err)
	assert.Equal(t, "C", id)
	assert.Equal(t, []string{"A", "B", "C"}, galleryIDs(t, p))

	p, err = RemoveItem(p, "g", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, galleryIDs(t, p))

	g := p.Sections[0].(domain.GallerySection)
	assert.Equal(t, "Garden", g.Images[0].Caption)
	assert.Equal(t, "Pool", g.Images[1].Caption)
	assert.Equal(t, domain.AssetRef("img_c"), g.Images[1].Image)
}

func TestAddItem_AlwaysFreshID(t *testing.T) {
	p := galleryProperty()

	got, id, err := AddItem(p, "g", Patch{"id": "A"}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, "A", id)
	assert.NotEmpty(t, id)
	assert.Equal(t, []string{"A", "B", id}, galleryIDs(t, got))

	// Deleting and re-adding never reuses the old id.
	got, err = RemoveItem(got, "g", id)
	require.NoError(t, err)
	got, id2, err := AddItem(got, "g", nil, nil)
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
}

func TestAddItem_DraggableTextTemplate(t *testing.T) {
	p := galleryProperty()
	got, id, err := AddItem(p, "h", Patch{"text": "Open house"}, func() string { return "t2" })
	require.NoError(t, err)
	assert.Equal(t, "t2", id)

	text, ok := DraggableText(got, "h", "t2")
	require.True(t, ok)
	assert.Equal(t, "Open house", text.Text)
	assert.Equal(t, domain.Position{X: 50, Y: 50}, text.Position)
	assert.Equal(t, domain.FontInter, text.FontFamily)
}

func TestAddItem_NoCollection(t *testing.T) {
	p := galleryProperty()

	got, id, err := AddItem(p, "c", Patch{}, nil)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, p, got)

	got, id, err = AddItem(p, "missing", Patch{}, nil)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, p, got)
}

func TestUpdateItem(t *testing.T) {
	p := galleryProperty()

	got, err := UpdateItem(p, "g", "B", Patch{"caption": "Back garden", "id": "Z", "bogus": 1})
	require.NoError(t, err)
	g := got.Sections[0].(domain.GallerySection)
	assert.Equal(t, "Back garden", g.Images[1].Caption)
	assert.Equal(t, "B", g.Images[1].ID)

	same, err := UpdateItem(p, "g", "missing", Patch{"caption": "x"})
	require.NoError(t, err)
	assert.Equal(t, p, same)

	same, err = UpdateItem(p, "g", "B", Patch{})
	require.NoError(t, err)
	assert.Equal(t, p, same)
}

func TestUpdateItem_PositionClamped(t *testing.T) {
	p := galleryProperty()

	got, err := UpdateItem(p, "h", "t1", Patch{"position": domain.Position{X: -15, Y: 135}})
	require.NoError(t, err)
	text, ok := DraggableText(got, "h", "t1")
	require.True(t, ok)
	assert.Equal(t, domain.Position{X: 0, Y: 100}, text.Position)
}

func TestSetItemField(t *testing.T) {
	p := galleryProperty()

	got, err := SetItemField(p, "h", "t1", "position.x", 75)
	require.NoError(t, err)
	text, _ := DraggableText(got, "h", "t1")
	assert.Equal(t, domain.Position{X: 75, Y: 10}, text.Position)

	same, err := SetItemField(p, "h", "t1", "id", "other")
	require.NoError(t, err)
	assert.Equal(t, p, same)
}

func TestRemoveItem_LastItemAllowed(t *testing.T) {
	p := galleryProperty()
	p, err := RemoveItem(p, "g", "A")
	require.NoError(t, err)
	p, err = RemoveItem(p, "g", "B")
	require.NoError(t, err)

	assert.Empty(t, galleryIDs(t, p))
	assert.NoError(t, Validate(p))

	same, err := RemoveItem(p, "g", "B")
	require.NoError(t, err)
	assert.Equal(t, p, same)
}

func TestReorderItems(t *testing.T) {
	p := galleryProperty()
	p, _, err := AddItem(p, "g", nil, func() string { return "C" })
	require.NoError(t, err)

	got, err := ReorderItems(p, "g", []string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, galleryIDs(t, got))

	same, err := ReorderItems(p, "g", []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, p.Version, same.Version)
}
