package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPlayerMessages(t *testing.T) {
	p := NewPlayer(uuid.New(), "Hero")
	assert.Empty(t, p.LastMessage())

	p.Reply("one")
	p.Reply("two")
	assert.Equal(t, "two", p.LastMessage())
	assert.Equal(t, []string{"one", "two"}, p.TakeMessages())
	assert.Empty(t, p.TakeMessages())
}

func TestPlayerState(t *testing.T) {
	id := uuid.New()
	p := NewPlayer(id, "Hero")

	assert.Equal(t, id, p.ID())
	assert.Equal(t, "Hero", p.Name())
	assert.Zero(t, p.AccessLevel())

	p.SetAccessLevel(100)
	p.SetPosition(NewPoint(1, 2, 3))
	assert.Equal(t, int32(100), p.AccessLevel())
	assert.Equal(t, NewPoint(1, 2, 3), p.Position())
}
