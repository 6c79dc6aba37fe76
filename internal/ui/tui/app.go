package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kylepfurey/FureyLib-sub005/internal/dialogue"
)

type screen int

const (
	screenHome screen = iota
	screenScripts
	screenPlay
)

const (
	actionPlay = "play"
	actionInit = "init"
	actionQuit = "quit"
)

type menuItem struct {
	title  string
	desc   string
	action string
	path   string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type choiceItem struct {
	n    int
	text string
}

func (c choiceItem) Title() string       { return fmt.Sprintf("%d. %s", c.n+1, c.text) }
func (c choiceItem) Description() string { return "" }
func (c choiceItem) FilterValue() string { return c.text }

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger

	scr     screen
	menu    list.Model
	scripts list.Model
	choices list.Model

	workspaceFound bool
	workspaceRoot  string

	script *dialogue.Script
	runner *dialogue.Runner
	// direct is set when a single script was launched; leaving it quits.
	direct bool

	width int
	toast string
}

// Run starts the interactive home screen.
func Run(deps Deps) error {
	p := tea.NewProgram(wrapSafe(newModel(deps), deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Play runs a single script and exits when it ends.
func Play(deps Deps, s *dialogue.Script) error {
	m, err := newPlayModel(deps, s)
	if err != nil {
		return err
	}
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newModel(deps Deps) model {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	items := []list.Item{
		menuItem{title: "Play dialogue", desc: "Pick a script from the workspace dialogue dir", action: actionPlay},
		menuItem{title: "Init workspace", desc: "Scaffold fureylib.yaml and samples here", action: actionInit},
		menuItem{title: "Quit", desc: "Exit FureyLib", action: actionQuit},
	}

	menu := list.New(items, list.NewDefaultDelegate(), 60, 12)
	menu.Title = "FureyLib"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(true)
	menu.SetShowHelp(false)

	scripts := list.New(nil, list.NewDefaultDelegate(), 60, 12)
	scripts.Title = "Dialogue"
	scripts.SetShowStatusBar(false)
	scripts.SetShowHelp(false)

	cd := list.NewDefaultDelegate()
	cd.ShowDescription = false
	cd.SetSpacing(0)
	choices := list.New(nil, cd, 60, 8)
	choices.SetShowTitle(false)
	choices.SetShowStatusBar(false)
	choices.SetFilteringEnabled(false)
	choices.SetShowHelp(false)
	choices.SetShowPagination(false)

	return model{
		theme:   DefaultTheme(),
		deps:    deps,
		log:     log,
		scr:     screenHome,
		menu:    menu,
		scripts: scripts,
		choices: choices,
		width:   64,
	}
}

func newPlayModel(deps Deps, s *dialogue.Script) (model, error) {
	m := newModel(deps)
	m.direct = true
	if err := m.start(s); err != nil {
		return m, err
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	if m.direct {
		return nil
	}
	return cmdRefreshWorkspace(m.deps)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.width = w - 8
		m.menu.SetSize(w-4, h-10)
		m.scripts.SetSize(w-4, h-10)
		m.choices.SetSize(w-8, min(8, h/3))
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.log.Error("tui.init_workspace.failed", "root", msg.root, "err", msg.err)
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace ready at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case scriptsListedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		if len(msg.paths) == 0 {
			m.toast = "No dialogue scripts found"
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.paths))
		for _, p := range msg.paths {
			rel, err := filepath.Rel(msg.root, p)
			if err != nil {
				rel = p
			}
			items = append(items, menuItem{title: filepath.Base(p), desc: clampString(rel, 60), path: p})
		}
		m.scripts.SetItems(items)
		m.scripts.Select(0)
		m.scr = screenScripts
		m.toast = ""
		return m, nil

	case scriptLoadedMsg:
		if msg.err != nil {
			m.log.Warn("tui.load_script.failed", "path", msg.path, "err", msg.err)
			m.toast = userMessage(msg.err)
			return m, nil
		}
		if err := m.start(msg.script); err != nil {
			m.toast = userMessage(err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.scr {
		case screenHome:
			return m.updateHome(msg)
		case screenScripts:
			return m.updateScripts(msg)
		case screenPlay:
			return m.updatePlay(msg)
		}
	}

	return m, nil
}

func (m model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		switch it.action {
		case actionQuit:
			return m, tea.Quit
		case actionInit:
			wd, err := os.Getwd()
			if err != nil {
				m.toast = userMessage(err)
				return m, nil
			}
			return m, cmdInitWorkspaceHere(m.deps, wd)
		case actionPlay:
			if !m.workspaceFound {
				m.toast = "Workspace not found (init one first)"
				return m, nil
			}
			return m, cmdListScripts(m.workspaceRoot)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) updateScripts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "b":
		m.scr = screenHome
		return m, nil
	case "enter":
		it, ok := m.scripts.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		return m, cmdLoadScript(m.deps, it.path)
	}

	var cmd tea.Cmd
	m.scripts, cmd = m.scripts.Update(msg)
	return m, cmd
}

func (m model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "esc":
		return m.leavePlay()
	}

	if m.runner.Finished() {
		if key == "enter" || key == " " {
			return m.leavePlay()
		}
		return m, nil
	}

	if m.runner.AwaitingChoice() {
		if n, err := strconv.Atoi(key); err == nil {
			m.choose(n - 1)
			return m, nil
		}
		if key == "enter" {
			if it, ok := m.choices.SelectedItem().(choiceItem); ok {
				m.choose(it.n)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.choices, cmd = m.choices.Update(msg)
		return m, cmd
	}

	if key == "enter" || key == " " {
		m.runner.Advance()
		m.syncChoices()
	}
	return m, nil
}

func (m *model) start(s *dialogue.Script) error {
	r, err := dialogue.NewRunner(s, m.log)
	if err != nil {
		return err
	}
	for k, v := range m.deps.Vars {
		r.SetVar(k, v)
	}
	m.script = s
	m.runner = r
	m.scr = screenPlay
	m.toast = ""
	m.syncChoices()
	m.log.Info("tui.play", "script", s.ID)
	return nil
}

func (m *model) choose(i int) {
	if err := m.runner.Choose(i); err != nil {
		m.toast = userMessage(err)
		return
	}
	m.toast = ""
	m.syncChoices()
}

func (m *model) syncChoices() {
	if m.runner == nil || !m.runner.AwaitingChoice() {
		m.choices.SetItems(nil)
		return
	}
	avail := m.runner.AvailableChoices()
	items := make([]list.Item, 0, len(avail))
	for i, c := range avail {
		items = append(items, choiceItem{n: i, text: c.Text})
	}
	m.choices.SetItems(items)
	m.choices.Select(0)
}

func (m model) leavePlay() (tea.Model, tea.Cmd) {
	if m.direct {
		return m, tea.Quit
	}
	m.runner = nil
	m.script = nil
	m.scr = screenScripts
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("FureyLib") + "\n" +
		m.theme.Subtitle.Render("Gameplay snippets: dialogue, saves, netcode") + "\n"

	var toast string
	if m.toast != "" {
		toast = "\n" + m.theme.Toast.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		var banner string
		if m.workspaceFound {
			banner = m.theme.Help.Render("Workspace: " + m.workspaceRoot)
		} else {
			banner = m.theme.Card.Render("No workspace found.\n\nChoose Init workspace to create one here.")
		}
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + banner + "\n\n" + m.theme.Card.Render(m.menu.View()) + toast + "\n" + help)

	case screenScripts:
		help := m.theme.Help.Render("↑/↓ navigate • enter play • esc back")
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.scripts.View()) + toast + "\n" + help)

	case screenPlay:
		return wrap.Render(m.playView() + toast)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func (m model) playView() string {
	title := m.script.Title
	if title == "" {
		title = m.script.ID
	}

	var body string
	var help string
	switch {
	case m.runner.Finished():
		body = m.theme.End.Render("The End")
		help = "enter close"
	default:
		if sp := m.runner.Speaker(); sp != "" {
			body = m.theme.Speaker.Render(sp) + "\n\n"
		}
		body += m.theme.Line.Width(max(m.width, 20)).Render(m.runner.Text())
		if m.runner.AwaitingChoice() {
			body += "\n\n" + m.choices.View()
			help = "↑/↓ or 1-9 choose • enter confirm • esc leave"
		} else {
			help = "enter/space continue • esc leave"
		}
	}

	if m.deps.Debug {
		if flags := m.runner.Flags(); len(flags) > 0 {
			help += " • flags: " + renderFlags(flags)
		}
	}

	return m.theme.Title.Render(title) + "\n\n" + m.theme.Card.Render(body) + "\n" + m.theme.Help.Render(help)
}
