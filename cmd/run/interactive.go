package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coroengine "github.com/wippyai/coro-engine"
	"github.com/wippyai/coro-engine/api"
	"github.com/wippyai/coro-engine/arena"
	"github.com/wippyai/coro-engine/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	workerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	maskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type cmdKind int

const (
	cmdRefresh cmdKind = iota
	cmdStep
	cmdSpawn
	cmdToggleTopic
)

type driverCmd struct {
	name string
	kind cmdKind
}

type workerStat struct {
	lastTopic any
	name      string
	visits    int
	mask      coroengine.SaveMask
}

type snapshot struct {
	current string
	workers []workerStat
	nready  int
	steps   int
}

// driver runs the coroutine world on its own goroutine; the TUI
// talks to it exclusively through the command and snapshot channels,
// so all scheduler calls happen inside the bootstrap coroutine.
type driver struct {
	sched   *engine.Scheduler
	coros   *arena.Arena
	table   *api.Table
	cmds    chan driverCmd
	snaps   chan snapshot
	stats   []*workerStat
	handles []*arena.Coro
	mask    coroengine.SaveMask
	steps   int
}

func newDriver() (*driver, error) {
	sched := engine.New()
	api.Publish(api.APIName, api.Export(sched))
	table, err := api.Acquire(api.APIName, "coro-run-tui", api.APIVersion)
	if err != nil {
		return nil, err
	}
	return &driver{
		sched: sched,
		coros: arena.New(sched),
		table: table,
		cmds:  make(chan driverCmd),
		snaps: make(chan snapshot),
		mask:  coroengine.SaveAll,
	}, nil
}

func (d *driver) start() {
	go d.sched.Run(func() {
		for cmd := range d.cmds {
			switch cmd.kind {
			case cmdStep:
				d.steps++
				d.table.Cede()
			case cmdSpawn:
				d.spawn(cmd.name)
			case cmdToggleTopic:
				d.mask ^= coroengine.SaveTopic
				for i, c := range d.handles {
					d.table.Save(c, d.mask)
					d.stats[i].mask = d.mask
				}
			}
			d.snaps <- d.snapshot()
		}
	})
}

// spawn creates a worker that rotates forever: it records the topic
// it wakes up with, stamps its own name as the topic, and cedes. With
// the topic bit cleared from the mask, the stamped value leaks to
// whichever coroutine runs next.
func (d *driver) spawn(name string) {
	st := &workerStat{name: name, mask: d.mask}
	var c *arena.Coro
	_, c = d.coros.Spawn(name, func() {
		for {
			st.visits++
			st.lastTopic = d.sched.Live().Topic
			d.sched.Live().Topic = name
			d.table.Cede()
		}
	})
	d.table.Save(c, d.mask)
	d.table.Ready(c)
	d.stats = append(d.stats, st)
	d.handles = append(d.handles, c)
}

func (d *driver) snapshot() snapshot {
	s := snapshot{
		nready: d.table.NReady(),
		steps:  d.steps,
	}
	if cur := d.table.Current(); cur != nil {
		if n, ok := cur.(interface{ Name() string }); ok {
			s.current = n.Name()
		}
	}
	for _, st := range d.stats {
		s.workers = append(s.workers, *st)
	}
	return s
}

type snapMsg struct {
	snap snapshot
}

type uiState int

const (
	stateView uiState = iota
	stateNaming
)

type interactiveModel struct {
	d     *driver
	input textinput.Model
	snap  snapshot
	state uiState
}

func newInteractiveModel(d *driver) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "worker name"
	ti.CharLimit = 24
	ti.Width = 24
	return &interactiveModel{d: d, input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.send(driverCmd{kind: cmdRefresh})
}

func (m *interactiveModel) send(cmd driverCmd) tea.Cmd {
	return func() tea.Msg {
		m.d.cmds <- cmd
		return snapMsg{snap: <-m.d.snaps}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapMsg:
		m.snap = msg.snap
		return m, nil

	case tea.KeyMsg:
		if m.state == stateNaming {
			switch msg.String() {
			case "enter":
				name := m.input.Value()
				if name == "" {
					name = fmt.Sprintf("worker-%d", len(m.snap.workers)+1)
				}
				m.input.Reset()
				m.input.Blur()
				m.state = stateView
				return m, m.send(driverCmd{kind: cmdSpawn, name: name})
			case "esc":
				m.input.Reset()
				m.input.Blur()
				m.state = stateView
				return m, nil
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			return m, m.send(driverCmd{kind: cmdStep})
		case "s":
			m.state = stateNaming
			return m, m.input.Focus()
		case "m":
			return m, m.send(driverCmd{kind: cmdToggleTopic})
		}
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	s := titleStyle.Render("coro scheduler") + "\n\n"
	s += fmt.Sprintf("step %d   nready %d   current %s\n\n",
		m.snap.steps, m.snap.nready, m.snap.current)

	if len(m.snap.workers) == 0 {
		s += helpStyle.Render("no workers yet -- press s to spawn one") + "\n"
	}
	for _, w := range m.snap.workers {
		line := fmt.Sprintf("  %-16s visits %-4d mask %s  woke with topic %v",
			w.name, w.visits, maskStyle.Render(fmt.Sprintf("%#06x", uint32(w.mask))), w.lastTopic)
		if w.name == m.snap.current {
			s += currentStyle.Render(line) + "\n"
		} else {
			s += workerStyle.Render(line) + "\n"
		}
	}

	if m.state == stateNaming {
		s += "\n" + m.input.View() + "\n"
		s += helpStyle.Render("enter: spawn  esc: cancel") + "\n"
	} else {
		s += "\n" + helpStyle.Render("space: step rotation  s: spawn  m: toggle topic save bit  q: quit") + "\n"
	}
	return s
}

func runInteractive() error {
	d, err := newDriver()
	if err != nil {
		return err
	}
	d.start()

	p := tea.NewProgram(newInteractiveModel(d))
	_, err = p.Run()
	return err
}
