package state

import (
	"testing"
	"time"

	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestManagerUpdateAndGet(t *testing.T) {
	m := New(time.Minute)

	assert.Equal(t, ModeNormal, m.Get("a").Mode)

	m.SetMode("a", ModeAddingBulk)
	m.Update("a", func(s *Session) { s.Selected = 4 })

	s := m.Get("a")
	assert.Equal(t, ModeAddingBulk, s.Mode)
	assert.Equal(t, int64(4), s.Selected)
	assert.Equal(t, ModeNormal, m.Get("b").Mode)

	m.Clear("a")
	assert.Equal(t, int64(0), m.Get("a").Selected)
}

func TestManagerExpiresIdleSessions(t *testing.T) {
	now := time.Now()
	m := New(10 * time.Minute)
	m.now = func() time.Time { return now }

	m.SetMode("a", ModeAddingBulk)

	now = now.Add(5 * time.Minute)
	assert.Equal(t, ModeAddingBulk, m.Get("a").Mode)

	now = now.Add(11 * time.Minute)
	assert.Equal(t, ModeNormal, m.Get("a").Mode)
}

func TestManagerSweep(t *testing.T) {
	now := time.Now()
	m := New(10 * time.Minute)
	m.now = func() time.Time { return now }

	m.SetMode("old", ModeAddingBulk)
	now = now.Add(8 * time.Minute)
	m.SetMode("fresh", ModeAddingBulk)
	assert.Equal(t, 2, m.Len())

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, ModeAddingBulk, m.Get("fresh").Mode)

	assert.Equal(t, 0, m.Sweep())
}

func TestSessionRefined(t *testing.T) {
	s := Session{
		Results: []match.Result{
			{Recipe: models.Recipe{ID: 1, Time: 60}},
			{Recipe: models.Recipe{ID: 2, Time: 10}},
		},
		Filter: match.Filter{MaxTime: 30},
	}

	got := s.Refined()
	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Recipe.ID)
	assert.Len(t, s.Results, 2)
}
