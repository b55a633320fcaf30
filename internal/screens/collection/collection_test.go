package collection

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brickmath/internal/profile"
	"github.com/abhisek/brickmath/internal/store"
)

func newTestCollection(t *testing.T) (*CollectionScreen, *profile.Manager) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "collection.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	mgr := profile.NewManager(s.SnapshotRepo())
	t.Cleanup(mgr.Close)
	if err := mgr.Login(context.Background(), "Ana"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return New(mgr), mgr
}

func TestTabsCycle(t *testing.T) {
	s, _ := newTestCollection(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.tab != tabAchievements {
		t.Errorf("tab = %v, want Achievements", s.tab)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.tab != tabBricks {
		t.Errorf("tab = %v after wrapping, want Bricks", s.tab)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.tab != tabBuilds {
		t.Errorf("tab = %v after left, want Builds", s.tab)
	}
}

func TestViews(t *testing.T) {
	s, mgr := newTestCollection(t)
	sess := mgr.Session()
	for range 3 {
		q := sess.NextQuestion()
		if _, err := sess.SubmitAnswer(strconv.Itoa(q.Answer)); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	// 3 answer bricks plus the first_correct reward.
	if view := s.View(120, 40); !strings.Contains(view, "4 bricks in total") {
		t.Error("bricks tab missing total")
	}

	s.tab = tabAchievements
	view := s.View(120, 40)
	if !strings.Contains(view, "First Success") || !strings.Contains(view, "1/1") {
		t.Error("achievements tab missing first_correct progress")
	}

	s.tab = tabBuilds
	if view := s.View(120, 40); !strings.Contains(view, "Nothing built yet") {
		t.Error("builds tab missing empty message")
	}
}
