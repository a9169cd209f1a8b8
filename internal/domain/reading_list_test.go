package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReadingList(t *testing.T) {
	now := time.Now()
	books := []string{"Dune", "1984"}

	list := NewReadingList("rl-1", "Classics", books, now)

	assert.Equal(t, "rl-1", list.ID)
	assert.Equal(t, "Classics", list.Name)
	assert.Equal(t, []string{"Dune", "1984"}, list.Books)
	assert.Equal(t, now, list.CreatedAt)
	assert.Equal(t, now, list.UpdatedAt)
	assert.True(t, list.Contains("Dune"))
	assert.False(t, list.Contains("Sapiens"))

	// The list owns its references.
	books[0] = "Changed"
	assert.Equal(t, "Dune", list.Books[0])
}

func TestNewReadingList_Empty(t *testing.T) {
	list := NewReadingList("rl-2", "Empty", []string{}, time.Now())
	assert.Empty(t, list.Books)
}
