package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-party/internal/audio"
	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store) SessionModel {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	m := NewSessionModel(SessionOptions{
		Config:   cfg,
		Runtime:  testRuntime(),
		Store:    store,
		Player:   audio.Silent{},
		User:     "guest",
		Origin:   "ssh",
		Renderer: plainRenderer(),
	})
	m.Init()
	return m
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm, cmd
}

func sessionKeys(t *testing.T, m SessionModel, keys ...string) SessionModel {
	t.Helper()
	for _, k := range keys {
		m, _ = sessionUpdate(t, m, keyMsg(k))
	}
	return m
}

func TestSessionMenuToPartyAndBack(t *testing.T) {
	store := openTestStore(t)
	m := newTestSession(t, store)

	m, cmd := sessionUpdate(t, m, keyMsg("enter"))
	if !m.InParty() {
		t.Fatal("enter did not start a party")
	}
	if cmd == nil {
		t.Fatal("party has no tick command")
	}
	if _, quit := cmd().(tea.QuitMsg); quit {
		t.Fatal("selecting a theme quit the program")
	}
	scene := m.party.Scene()
	if !scene.Snapshot().Mounted {
		t.Error("party scene not mounted")
	}

	m = sessionKeys(t, m, "s", "esc")
	if m.InParty() {
		t.Fatal("esc did not return to the menu")
	}
	if !scene.Snapshot().TornDown {
		t.Error("party not torn down on back")
	}

	sessions, err := store.RecentSessions(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("saved %d sessions, want 1", len(sessions))
	}
	if s := sessions[0]; s.User != "guest" || s.Origin != "ssh" || s.Theme != "birthday" || !s.PartyStarted {
		t.Errorf("saved session = %+v", s)
	}

	// Finish with no party on screen is a no-op.
	m.Finish()
	if sessions, _ := store.RecentSessions(5); len(sessions) != 1 {
		t.Errorf("Finish without a party saved again: %d sessions", len(sessions))
	}
}

func TestSessionResizeReachesParty(t *testing.T) {
	m := sessionKeys(t, newTestSession(t, nil), "enter")
	m, _ = sessionUpdate(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	if snap := m.party.Scene().Snapshot(); snap.Cols != 140 {
		t.Errorf("party cols = %d, want 140", snap.Cols)
	}

	// The next party starts at the new size.
	m = sessionKeys(t, m, "esc", "enter")
	if snap := m.party.Scene().Snapshot(); snap.Cols != 140 || snap.Rows != 39 {
		t.Errorf("new party size = %dx%d, want 140x39", snap.Cols, snap.Rows)
	}
}

func TestSessionFinishFromDisconnect(t *testing.T) {
	store := openTestStore(t)
	m := sessionKeys(t, newTestSession(t, store), "enter")
	scene := m.party.Scene()

	done := make(chan struct{})
	go func() {
		m.Finish()
		close(done)
	}()
	<-done

	if snap := scene.Snapshot(); !snap.TornDown || snap.Timers != 0 {
		t.Errorf("after disconnect: tornDown=%v timers=%d", snap.TornDown, snap.Timers)
	}
	if sessions, _ := store.RecentSessions(5); len(sessions) != 1 {
		t.Errorf("saved %d sessions, want 1", len(sessions))
	}
}

func TestSessionHistory(t *testing.T) {
	m := sessionKeys(t, newTestSession(t, nil), "tab")
	if !m.InHistory() {
		t.Fatal("tab did not open history")
	}
	m = sessionKeys(t, m, "esc")
	if m.InHistory() || m.InParty() {
		t.Error("esc did not return to the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{"from menu", []string{"q"}},
		{"from party", []string{"enter", "q"}},
		{"from history", []string{"tab", "q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestSession(t, nil)
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = sessionUpdate(t, m, keyMsg(k))
			}
			if cmd == nil {
				t.Fatal("no quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("last command is not tea.Quit")
			}
			if m.View() != "" {
				t.Error("view not empty after quit")
			}
		})
	}
}
