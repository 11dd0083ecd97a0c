package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

var container = Rect{Left: 100, Top: 50, Width: 400, Height: 200}

func TestDrag_Move(t *testing.T) {
	d := NewDrag(container, domain.Position{X: 10, Y: 10})

	d.Move(Point{X: 300, Y: 150})
	assert.Equal(t, domain.Position{X: 50, Y: 50}, d.Position())

	d.Move(Point{X: 200, Y: 100})
	assert.Equal(t, domain.Position{X: 25, Y: 25}, d.Position())
}

func TestDrag_Clamping(t *testing.T) {
	d := NewDrag(container, domain.Position{})

	// computed x = -15
	d.Move(Point{X: 40, Y: 150})
	assert.Equal(t, 0.0, d.Position().X)

	// computed x = 135
	d.Move(Point{X: 640, Y: 150})
	assert.Equal(t, 100.0, d.Position().X)

	d.Move(Point{X: 300, Y: -500})
	assert.Equal(t, domain.Position{X: 50, Y: 0}, d.Position())

	res := d.Result()
	require.NotNil(t, res.Position)
	assert.Nil(t, res.Size)
	assert.Equal(t, domain.Position{X: 50, Y: 0}, *res.Position)
}

func TestDrag_EmptyContainer(t *testing.T) {
	d := NewDrag(Rect{}, domain.Position{X: 30, Y: 40})
	d.Move(Point{X: 999, Y: 999})
	assert.Equal(t, domain.Position{X: 30, Y: 40}, d.Position())
}

func TestDrag_StartIsClamped(t *testing.T) {
	d := NewDrag(container, domain.Position{X: 120, Y: -1})
	assert.Equal(t, domain.Position{X: 100, Y: 0}, d.Position())
}

func TestResize_Handles(t *testing.T) {
	start := domain.Size{Width: 200, Height: 100}
	origin := Point{X: 500, Y: 500}
	move := Point{X: 520, Y: 530} // +20, +30

	tests := []struct {
		handle Handle
		want   domain.Size
	}{
		{HandleN, domain.Size{Width: 200, Height: 70}},
		{HandleS, domain.Size{Width: 200, Height: 130}},
		{HandleE, domain.Size{Width: 220, Height: 100}},
		{HandleW, domain.Size{Width: 180, Height: 100}},
		{HandleNE, domain.Size{Width: 220, Height: 70}},
		{HandleNW, domain.Size{Width: 180, Height: 70}},
		{HandleSE, domain.Size{Width: 220, Height: 130}},
		{HandleSW, domain.Size{Width: 180, Height: 130}},
	}
	require.Len(t, tests, len(AllHandles()))

	for _, tt := range tests {
		t.Run(string(tt.handle), func(t *testing.T) {
			r, err := NewResize(tt.handle, start, origin)
			require.NoError(t, err)
			r.Move(move)
			assert.Equal(t, tt.want, r.Size())
		})
	}
}

func TestResize_Floor(t *testing.T) {
	r, err := NewResize(HandleE, domain.Size{Width: 100, Height: 60}, Point{X: 0, Y: 0})
	require.NoError(t, err)

	// Requests width = 10px.
	r.Move(Point{X: -90, Y: 0})
	assert.Equal(t, 50.0, r.Size().Width)

	r2, err := NewResize(HandleN, domain.Size{Width: 100, Height: 60}, Point{})
	require.NoError(t, err)
	r2.Move(Point{Y: 100})
	assert.Equal(t, domain.Size{Width: 100, Height: 30}, r2.Size())

	res := r.Result()
	require.NotNil(t, res.Size)
	assert.Equal(t, domain.Size{Width: 50, Height: 60}, *res.Size)
}

func TestResize_InvalidHandle(t *testing.T) {
	_, err := NewResize("middle", domain.Size{}, Point{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResult_Patch(t *testing.T) {
	pos := domain.Position{X: 1, Y: 2}
	assert.Equal(t, map[string]any{"position": pos}, Result{Position: &pos}.Patch())

	size := domain.Size{Width: 60, Height: 40}
	assert.Equal(t, map[string]any{"size": size}, Result{Size: &size}.Patch())
}

func TestRect_PercentOf(t *testing.T) {
	assert.Equal(t, domain.Position{X: 100, Y: 100}, container.PercentOf(Point{X: 500, Y: 250}))
	assert.True(t, Rect{Width: 0, Height: 10}.Empty())
}
