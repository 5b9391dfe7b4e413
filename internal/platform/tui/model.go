package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// helpHeight is the number of rows below the playfield.
const helpHeight = 1

// Model is the Bubble Tea model running one game.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	input    core.InputFrame
	state    core.GameState
	keys     KeyMap
	help     help.Model
	log      *log.Logger
	quitting bool
}

// NewModel creates a model for game. cfg.ScreenW and cfg.ScreenH are the
// terminal size; the bottom row is kept for the help line.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg.ScreenH = playfieldHeight(cfg.ScreenH)

	h := help.New()
	h.Width = cfg.ScreenW
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		log:    logger,
	}
}

func playfieldHeight(h int) int {
	return max(h-helpHeight, 1)
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.log.Debug("game started", "game", m.game.ID(), "size", m.screen.Bounds(), "seed", m.config.Seed)
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.Action(msg))
	case tea.MouseMsg:
		return m.handleAction(MouseAction(msg))
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	default:
		m.input.Set(a)
	}
	return m, nil
}

// handleResize rebuilds the game for the new size. The playfield is sized
// from the terminal, so a run in progress starts over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = playfieldHeight(msg.Height)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	m.game.Reset(m.config)
	m.state = m.game.State()
	m.log.Debug("resized", "width", m.config.ScreenW, "height", m.config.ScreenH)
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	prev := m.state
	m.state = m.game.Step(m.input).State
	m.input.Clear()

	if m.state.GameOver && !prev.GameOver {
		m.log.Info("run over", "game", m.game.ID(), "score", m.state.Score)
	}
	return m, tickCmd(m.config.TickInterval())
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// View renders the playfield and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts a Bubble Tea program for game on the local terminal.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(game, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
