package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/multitimer/internal/service"
	"github.com/jask/multitimer/internal/timers"
)

// App is the countdown screen. It owns the registry for as long as it is
// mounted: Init subscribes and starts the tick, quitting tears both down.
type App struct {
	ctx            context.Context
	registry       *timers.Registry
	notifier       service.Notifier
	interval       time.Duration
	defaultSeconds int64

	keys keyMap
	help help.Model

	timers  []timers.Timer // latest snapshot pushed by the registry
	pending []timers.Expiry
	cursor  int
	offset  int
	width   int
	height  int
	status  string

	modal      modalState
	labelInput textinput.Model
	secsInput  textinput.Model
	findInput  textinput.Model

	unsubscribe func()
	unhook      func()
	stopped     bool
}

// Options configures New.
type Options struct {
	Registry       *timers.Registry
	Notifier       service.Notifier
	TickInterval   time.Duration
	DefaultSeconds int64
}

type modalState string

const (
	modalNone modalState = ""
	modalAdd  modalState = "add"
	modalFind modalState = "find"
)

const defaultLabel = "Timer"

func New(ctx context.Context, opts Options) *App {
	if opts.Registry == nil {
		opts.Registry = timers.NewRegistry()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.DefaultSeconds <= 0 {
		opts.DefaultSeconds = timers.DefaultSeconds
	}

	label := textinput.New()
	label.Prompt = "Label:   "
	label.CharLimit = 64
	secs := textinput.New()
	secs.Prompt = "Seconds: "
	secs.CharLimit = 9
	find := textinput.New()
	find.Prompt = "/"
	find.Placeholder = "label"

	return &App{
		ctx:            ctx,
		registry:       opts.Registry,
		notifier:       opts.Notifier,
		interval:       opts.TickInterval,
		defaultSeconds: opts.DefaultSeconds,
		keys:           newKeyMap(),
		help:           help.New(),
		labelInput:     label,
		secsInput:      secs,
		findInput:      find,
	}
}

func (a *App) Init() tea.Cmd {
	a.mount()
	return a.tickCmd()
}

func (a *App) mount() {
	if a.unsubscribe != nil {
		return
	}
	a.stopped = false
	a.unsubscribe = a.registry.Subscribe(func(list []timers.Timer) {
		a.timers = list
		a.clampCursor()
	})
	a.unhook = a.registry.OnExpire(func(e timers.Expiry) {
		a.pending = append(a.pending, e)
	})
}

// teardown detaches from the registry and stops re-arming the tick.
func (a *App) teardown() {
	a.stopped = true
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.unhook != nil {
		a.unhook()
		a.unhook = nil
	}
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.clampCursor()
	case tickMsg:
		if a.stopped {
			return a, nil
		}
		a.registry.Tick()
		return a, tea.Batch(append(a.drainExpiries(), a.tickCmd())...)
	case tea.KeyMsg:
		if key.Matches(m, a.keys.ForceQuit) {
			a.teardown()
			return a, tea.Quit
		}
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleListKey(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.teardown()
		return a, tea.Quit
	case key.Matches(m, a.keys.Add):
		a.openAdd()
		return a, textinput.Blink
	case key.Matches(m, a.keys.Find):
		if len(a.timers) == 0 {
			a.status = "no timers"
			return a, nil
		}
		a.modal = modalFind
		a.findInput.SetValue("")
		a.findInput.Focus()
		return a, textinput.Blink
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		a.clampCursor()
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.timers)-1 {
			a.cursor++
		}
		a.clampCursor()
	case key.Matches(m, a.keys.Pause):
		if t, ok := a.selected(); ok {
			a.registry.Pause(t.ID)
		}
	case key.Matches(m, a.keys.Reset):
		if t, ok := a.selected(); ok {
			a.registry.Reset(t.ID)
			a.status = fmt.Sprintf("%s reset", t.Label)
		}
	case key.Matches(m, a.keys.Delete):
		if t, ok := a.selected(); ok {
			a.registry.Delete(t.ID)
			a.status = fmt.Sprintf("%s deleted", t.Label)
		}
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.Cancel) {
		a.closeModal()
		return a, nil
	}
	switch a.modal {
	case modalAdd:
		switch {
		case key.Matches(m, a.keys.NextField):
			if a.labelInput.Focused() {
				a.labelInput.Blur()
				a.secsInput.Focus()
			} else {
				a.secsInput.Blur()
				a.labelInput.Focus()
			}
			return a, textinput.Blink
		case key.Matches(m, a.keys.Submit):
			label := strings.TrimSpace(a.labelInput.Value())
			if label == "" {
				a.status = "enter a label"
				return a, nil
			}
			secs := timers.ParseSecondsOr(a.secsInput.Value(), a.defaultSeconds)
			a.closeModal()
			a.registry.Add(label, secs)
			a.cursor = len(a.timers) - 1
			a.clampCursor()
			a.status = fmt.Sprintf("added %s (%s)", label, timers.FormatRemaining(secs))
			return a, nil
		}
		var cmd tea.Cmd
		if a.labelInput.Focused() {
			a.labelInput, cmd = a.labelInput.Update(m)
		} else {
			a.secsInput, cmd = a.secsInput.Update(m)
		}
		return a, cmd
	case modalFind:
		if key.Matches(m, a.keys.Submit) {
			query := a.findInput.Value()
			a.closeModal()
			t, ok := service.FindTimer(a.timers, query)
			if !ok {
				a.status = fmt.Sprintf("no timer matches %q", query)
				return a, nil
			}
			a.selectID(t.ID)
			a.status = ""
			return a, nil
		}
		var cmd tea.Cmd
		a.findInput, cmd = a.findInput.Update(m)
		return a, cmd
	}
	return a, nil
}

func (a *App) openAdd() {
	a.modal = modalAdd
	a.status = ""
	a.labelInput.SetValue(defaultLabel)
	a.secsInput.SetValue(fmt.Sprint(a.defaultSeconds))
	a.secsInput.CursorEnd()
	a.secsInput.Blur()
	a.labelInput.Focus()
	a.labelInput.CursorEnd()
}

func (a *App) closeModal() {
	a.modal = modalNone
	a.labelInput.Blur()
	a.secsInput.Blur()
	a.findInput.Blur()
}

// drainExpiries turns expiries queued by the registry hook into status text
// and notifier commands.
func (a *App) drainExpiries() []tea.Cmd {
	if len(a.pending) == 0 {
		return nil
	}
	var labels []string
	cmds := make([]tea.Cmd, 0, len(a.pending))
	for _, e := range a.pending {
		labels = append(labels, e.Label)
		log.Printf("timer expired: %s (%s)", e.Label, e.TimerID)
		if cmd := a.notifyCmd(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	a.pending = nil
	a.status = strings.Join(labels, ", ") + " finished"
	return cmds
}

func (a *App) notifyCmd(e timers.Expiry) tea.Cmd {
	if a.notifier == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.notifier.Notify(a.ctx, e); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (a *App) selected() (timers.Timer, bool) {
	if a.cursor < 0 || a.cursor >= len(a.timers) {
		return timers.Timer{}, false
	}
	return a.timers[a.cursor], true
}

func (a *App) selectID(id string) {
	for i, t := range a.timers {
		if t.ID == id {
			a.cursor = i
			break
		}
	}
	a.clampCursor()
}

// clampCursor keeps the cursor on a row and the row inside the scroll window.
func (a *App) clampCursor() {
	if a.cursor >= len(a.timers) {
		a.cursor = len(a.timers) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	rows := a.visibleRows()
	if rows <= 0 {
		a.offset = 0
		return
	}
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+rows {
		a.offset = a.cursor - rows + 1
	}
	if maxOffset := max(len(a.timers)-rows, 0); a.offset > maxOffset {
		a.offset = maxOffset
	}
}

// visibleRows is how many timer rows fit; 0 means unknown height (show all).
// When the list does not fit, one line goes to the scroll hint.
func (a *App) visibleRows() int {
	if a.height <= 0 {
		return 0
	}
	rows := max(a.height-chromeLines-a.modalLines(), 1)
	if len(a.timers) > rows {
		rows = max(rows-1, 1)
	}
	return rows
}

// messages
type tickMsg time.Time

type errMsg struct{ error }
