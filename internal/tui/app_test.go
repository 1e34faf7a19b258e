package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/multitimer/internal/service"
	"github.com/jask/multitimer/internal/timers"
)

func newTestApp(t *testing.T, notifier service.Notifier) (*App, *timers.Registry) {
	t.Helper()
	n := 0
	reg := timers.NewRegistry(timers.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	app := New(context.Background(), Options{
		Registry:       reg,
		Notifier:       notifier,
		TickInterval:   time.Millisecond,
		DefaultSeconds: 300,
	})
	if cmd := app.Init(); cmd == nil {
		t.Fatalf("Init should start the tick")
	}
	return app, reg
}

func send(t *testing.T, a *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := a.Update(msg)
	if next.(*App) != a {
		t.Fatalf("Update should return the same app")
	}
	return cmd
}

func typeText(t *testing.T, a *App, s string) {
	t.Helper()
	send(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

// runCmd executes cmd and any batched children, returning the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func addViaForm(t *testing.T, a *App, label, secs string) {
	t.Helper()
	send(t, a, keyRune('a'))
	if a.modal != modalAdd {
		t.Fatalf("expected add modal, got %q", a.modal)
	}
	send(t, a, tea.KeyMsg{Type: tea.KeyCtrlU})
	typeText(t, a, label)
	send(t, a, tea.KeyMsg{Type: tea.KeyTab})
	send(t, a, tea.KeyMsg{Type: tea.KeyCtrlU})
	typeText(t, a, secs)
	send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestAddTimerThroughForm(t *testing.T) {
	a, reg := newTestApp(t, nil)

	addViaForm(t, a, "Tea", "3")

	if a.modal != modalNone {
		t.Fatalf("modal should close after submit")
	}
	list := reg.Timers()
	if len(list) != 1 {
		t.Fatalf("expected 1 timer, got %d", len(list))
	}
	if list[0].Label != "Tea" || list[0].Remaining != 3 || list[0].Paused {
		t.Fatalf("unexpected timer %+v", list[0])
	}
	if len(a.timers) != 1 {
		t.Fatalf("screen snapshot not updated: %d", len(a.timers))
	}
	if !strings.Contains(a.View(), "00:00:03") {
		t.Fatalf("view should show remaining time:\n%s", a.View())
	}
}

func TestAddFormDefaults(t *testing.T) {
	a, reg := newTestApp(t, nil)

	send(t, a, keyRune('a'))
	if got := a.labelInput.Value(); got != "Timer" {
		t.Fatalf("label default = %q", got)
	}
	if got := a.secsInput.Value(); got != "300" {
		t.Fatalf("seconds default = %q", got)
	}
	send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	list := reg.Timers()
	if len(list) != 1 || list[0].Label != "Timer" || list[0].Remaining != 300 {
		t.Fatalf("unexpected timers %+v", list)
	}
}

func TestAddWithMalformedSecondsUsesDefault(t *testing.T) {
	a, reg := newTestApp(t, nil)

	addViaForm(t, a, "Eggs", "soon")
	list := reg.Timers()
	if len(list) != 1 || list[0].Remaining != 300 {
		t.Fatalf("expected default duration, got %+v", list)
	}
}

func TestAddRequiresLabel(t *testing.T) {
	a, reg := newTestApp(t, nil)

	send(t, a, keyRune('a'))
	send(t, a, tea.KeyMsg{Type: tea.KeyCtrlU})
	send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.modal != modalAdd {
		t.Fatalf("modal should stay open without a label")
	}
	if reg.Len() != 0 {
		t.Fatalf("nothing should be added")
	}
	send(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.modal != modalNone {
		t.Fatalf("esc should cancel")
	}
}

func TestTickAdvancesAndRearms(t *testing.T) {
	a, reg := newTestApp(t, nil)
	reg.Add("Tea", 3)

	cmd := send(t, a, tickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("tick should re-arm")
	}
	if got := reg.Timers()[0].Remaining; got != 2 {
		t.Fatalf("remaining = %d, want 2", got)
	}
	if a.timers[0].Remaining != 2 {
		t.Fatalf("screen snapshot should follow the registry")
	}
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one tick message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(tickMsg); !ok {
		t.Fatalf("expected tickMsg, got %T", msgs[0])
	}
}

func TestTeaScenarioNotifiesOnce(t *testing.T) {
	var got []timers.Expiry
	notifier := service.NotifierFunc(func(_ context.Context, e timers.Expiry) error {
		got = append(got, e)
		return nil
	})
	a, reg := newTestApp(t, notifier)
	addViaForm(t, a, "Tea", "3")

	var cmds []tea.Cmd
	for i := 0; i < 3; i++ {
		cmds = append(cmds, send(t, a, tickMsg(time.Now())))
		if reg.Len() != 1 {
			t.Fatalf("registry length changed")
		}
	}
	tm := reg.Timers()[0]
	if tm.Remaining != 0 || tm.Paused {
		t.Fatalf("expected Tea running at zero, got %+v", tm)
	}
	if a.pending != nil || strings.Contains(a.status, "finished") {
		t.Fatalf("Tea should not have finished yet, status %q", a.status)
	}

	cmds = append(cmds, send(t, a, tickMsg(time.Now())))
	tm = reg.Timers()[0]
	if reg.Len() != 1 || tm.Remaining != 0 || !tm.Paused {
		t.Fatalf("expected expired Tea, got %+v", tm)
	}
	for _, c := range cmds {
		runCmd(c)
	}
	if len(got) != 1 || got[0].Label != "Tea" {
		t.Fatalf("expected one Tea expiry, got %+v", got)
	}
	if !strings.Contains(a.status, "Tea finished") {
		t.Fatalf("status = %q", a.status)
	}

	send(t, a, tickMsg(time.Now()))
	if len(got) != 1 {
		t.Fatalf("expired timer should not notify again")
	}
}

func TestNotifierErrorBecomesStatus(t *testing.T) {
	boom := errors.New("journal offline")
	a, reg := newTestApp(t, service.NotifierFunc(func(context.Context, timers.Expiry) error { return boom }))
	reg.Add("Tea", 0)

	cmd := send(t, a, tickMsg(time.Now()))
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(tickMsg); ok {
			continue
		}
		send(t, a, msg)
	}
	if a.status != "error: journal offline" {
		t.Fatalf("status = %q", a.status)
	}
}

func TestPauseResetDeleteKeys(t *testing.T) {
	a, reg := newTestApp(t, nil)
	first := reg.Add("first", 10)
	second := reg.Add("second", 20)
	third := reg.Add("third", 30)

	send(t, a, keyRune('j'))
	send(t, a, tea.KeyMsg{Type: tea.KeySpace})
	if tm, _ := reg.Get(second.ID); !tm.Paused {
		t.Fatalf("space should pause the selected timer")
	}
	send(t, a, keyRune('p'))
	if tm, _ := reg.Get(second.ID); tm.Paused {
		t.Fatalf("p should resume the selected timer")
	}

	send(t, a, keyRune('j'))
	send(t, a, keyRune('r'))
	if tm, _ := reg.Get(third.ID); tm.Remaining != 300 || !tm.Paused {
		t.Fatalf("reset should give 300/paused, got %+v", tm)
	}

	send(t, a, keyRune('k'))
	send(t, a, keyRune('x'))
	list := reg.Timers()
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != third.ID {
		t.Fatalf("unexpected timers after delete %+v", list)
	}
	if a.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.cursor)
	}

	send(t, a, tea.KeyMsg{Type: tea.KeyDelete})
	send(t, a, tea.KeyMsg{Type: tea.KeyDelete})
	send(t, a, tea.KeyMsg{Type: tea.KeyDelete})
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", reg.Len())
	}
	if !strings.Contains(a.View(), "Add your first timer") {
		t.Fatalf("empty view expected:\n%s", a.View())
	}
}

func TestFindJumpsToClosestLabel(t *testing.T) {
	a, reg := newTestApp(t, nil)
	reg.Add("Green tea", 60)
	reg.Add("Pasta", 600)
	reg.Add("Soft eggs", 360)

	send(t, a, keyRune('/'))
	if a.modal != modalFind {
		t.Fatalf("expected find modal")
	}
	typeText(t, a, "pastta")
	send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.cursor)
	}

	send(t, a, keyRune('/'))
	typeText(t, a, "laundry")
	send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.cursor != 1 || !strings.Contains(a.status, "no timer matches") {
		t.Fatalf("miss should keep cursor and report, cursor=%d status=%q", a.cursor, a.status)
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	a, reg := newTestApp(t, nil)
	for i := 0; i < 10; i++ {
		reg.Add(fmt.Sprintf("timer-%02d", i), int64(i+1))
	}
	send(t, a, tea.WindowSizeMsg{Width: 80, Height: 8})
	// 8 lines less 5 of chrome, less one for the scroll hint
	if rows := a.visibleRows(); rows != 2 {
		t.Fatalf("visible rows = %d, want 2", rows)
	}
	for i := 0; i < 9; i++ {
		send(t, a, keyRune('j'))
	}
	if a.cursor != 9 || a.offset != 8 {
		t.Fatalf("cursor=%d offset=%d", a.cursor, a.offset)
	}
	view := a.View()
	if !strings.Contains(view, "timer-09") || strings.Contains(view, "timer-00") {
		t.Fatalf("scroll window wrong:\n%s", view)
	}

	send(t, a, keyRune('k'))
	send(t, a, keyRune('k'))
	send(t, a, keyRune('k'))
	if a.offset != 6 {
		t.Fatalf("offset = %d, want 6", a.offset)
	}
}

func TestScrolledViewFitsWindow(t *testing.T) {
	a, reg := newTestApp(t, nil)
	for i := 0; i < 10; i++ {
		reg.Add(fmt.Sprintf("timer-%02d", i), int64(i+1))
	}
	send(t, a, tea.WindowSizeMsg{Width: 80, Height: 8})
	a.status = "timer-00 reset"

	for _, pos := range []int{0, 4, 9} {
		a.cursor = pos
		a.clampCursor()
		view := a.View()
		if lines := strings.Count(view, "\n") + 1; lines > 8 {
			t.Fatalf("cursor %d: view has %d lines, window is 8:\n%s", pos, lines, view)
		}
		if !strings.HasPrefix(view, titleStyle.Render("MultiCountdown Timer")) {
			t.Fatalf("cursor %d: title missing:\n%s", pos, view)
		}
		if !strings.Contains(view, fmt.Sprintf("timer-%02d", pos)) {
			t.Fatalf("cursor %d: selected row not visible:\n%s", pos, view)
		}
	}
}

func TestCtrlCQuitsFromModal(t *testing.T) {
	for _, open := range []rune{'a', '/'} {
		a, reg := newTestApp(t, nil)
		reg.Add("Tea", 5)

		send(t, a, keyRune(open))
		if a.modal == modalNone {
			t.Fatalf("%q should open a modal", open)
		}
		cmd := send(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatalf("%q modal: expected quit command", open)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%q modal: expected tea.QuitMsg", open)
		}
		if next := send(t, a, tickMsg(time.Now())); next != nil {
			t.Fatalf("%q modal: tick must not re-arm after quit", open)
		}
	}
}

func TestQuitTearsDown(t *testing.T) {
	a, reg := newTestApp(t, nil)
	reg.Add("Tea", 5)

	cmd := send(t, a, keyRune('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	if next := send(t, a, tickMsg(time.Now())); next != nil {
		t.Fatalf("tick must not re-arm after teardown")
	}
	if got := reg.Timers()[0].Remaining; got != 5 {
		t.Fatalf("registry ticked after teardown: %d", got)
	}

	reg.Add("Eggs", 5)
	if len(a.timers) != 1 {
		t.Fatalf("screen should stop observing after teardown")
	}
}
