package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_Setup(t *testing.T) {
	s := NewSpec("users")
	assert.Equal(t, "users", s.Table())
	assert.False(t, s.HasFilter())
	assert.False(t, s.HasSorts())
	assert.False(t, s.HasPage())
	assert.False(t, s.HasProjection())
}

func TestSpec_SetFilter_Replaces(t *testing.T) {
	s := NewSpec("users")

	s.SetFilter(Where(Eq("status", "active")))
	require.Len(t, s.Filter(), 1)

	s.SetFilter(Where(Eq("role", "admin"), GreaterThan("age", 18)))
	assert.Len(t, s.Filter(), 2)
}

func TestSpec_AddSort_OrderIsPrecedence(t *testing.T) {
	s := NewSpec("users")

	s.AddSort("name")
	s.AddSortDesc("created_at")
	s.AddSort("id")

	assert.Equal(t, []SortField{
		{Col: "name"},
		{Col: "created_at", Desc: true},
		{Col: "id"},
	}, s.Sorts())
}

func TestSpec_SetProjection_Overwrites(t *testing.T) {
	s := NewSpec("users")

	s.SetProjection("id", "name")
	assert.Equal(t, []string{"id", "name"}, s.Projection())

	s.SetProjection("email")
	assert.Equal(t, []string{"email"}, s.Projection())

	s.SetProjection()
	assert.Nil(t, s.Projection())
	assert.False(t, s.HasProjection())
}

func TestSpec_SetPage(t *testing.T) {
	s := NewSpec("users")
	require.Nil(t, s.Page())

	s.SetPage(10, 20)
	page := s.Page()
	require.NotNil(t, page)
	assert.Equal(t, 10, page.Skip)
	assert.Equal(t, 20, page.Take)
}

func TestSpec_AccessorsReturnCopies(t *testing.T) {
	s := NewSpec("users")
	s.AddSort("name")
	s.SetProjection("id")
	s.SetPage(5, 10)

	s.Sorts()[0].Col = "mutated"
	assert.Equal(t, "name", s.Sorts()[0].Col)

	s.Projection()[0] = "mutated"
	assert.Equal(t, "id", s.Projection()[0])

	s.Page().Skip = 99
	assert.Equal(t, 5, s.Page().Skip)
}

func TestSpec_ProjectionDetachedFromInput(t *testing.T) {
	cols := []string{"id", "name"}
	s := NewSpec("users")
	s.SetProjection(cols...)

	cols[0] = "mutated"
	assert.Equal(t, "id", s.Projection()[0])
}
