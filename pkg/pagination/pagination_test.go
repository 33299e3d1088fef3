package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParamsValidate(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"valid values kept", 2, 25, 2, 25},
		{"zero page clamps to one", 0, 15, 1, 15},
		{"negative page clamps to one", -3, 15, 1, 15},
		{"zero per page defaults", 1, 0, 1, 15},
		{"per page capped at 100", 1, 500, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PaginationParams{Page: tt.page, PerPage: tt.perPage}
			p.Validate()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
		})
	}
}

func TestPaginationParamsOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 15, 31)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := NewPagination(3, 15, 31)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	encoded := EncodeCursor("42", createdAt)

	params := &CursorParams{Cursor: encoded, Direction: CursorDirectionNext, Limit: 15}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, "42", cursor.ID)
	assert.True(t, cursor.CreatedAt.Equal(createdAt))
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	params := &CursorParams{Cursor: "not-base64!!", Direction: CursorDirectionNext, Limit: 15}
	_, err := params.DecodeCursor()
	assert.Error(t, err)
}

func TestNewCursorPagination(t *testing.T) {
	type row struct {
		ID        string
		CreatedAt time.Time
	}

	now := time.Now().UTC()
	// One more row than the limit signals another page.
	rows := []row{
		{ID: "1", CreatedAt: now},
		{ID: "2", CreatedAt: now.Add(time.Second)},
		{ID: "3", CreatedAt: now.Add(2 * time.Second)},
	}

	pag, items := NewCursorPagination(rows, 2,
		func(r row) string { return r.ID },
		func(r row) time.Time { return r.CreatedAt },
	)

	require.Len(t, items, 2)
	assert.True(t, pag.HasNext)
	require.NotNil(t, pag.NextCursor)

	params := &CursorParams{Cursor: *pag.NextCursor, Direction: CursorDirectionNext, Limit: 2}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "2", cursor.ID)
}
