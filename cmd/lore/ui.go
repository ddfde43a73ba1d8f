package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/thornsfall/lore-engine/internal/config"
	"github.com/thornsfall/lore-engine/internal/storage"
	"github.com/thornsfall/lore-engine/pkg/engine"
	"github.com/thornsfall/lore-engine/pkg/state"
	"github.com/thornsfall/lore-engine/pkg/textfilter"
)

const titleBanner = `
 ██╗░░░██╗░█████╗░██╗░░░██╗██╗██████╗░███████╗  ░██████╗  ██╗  ░█████╗░  ██╗░░██╗
╚██╗░██╔╝██╔══██╗██║░░░██║╚█║██╔══██╗██╔════╝  ██╔════╝  ██║  ██╔══██╗  ██║░██╔╝
░╚████╔╝░██║░░██║██║░░░██║░╚╝██████╔╝█████╗░░  ╚█████╗░  ██║  ██║░░╚═╝  █████═╝░
░░╚██╔╝░░██║░░██║██║░░░██║░░░██╔══██╗██╔══╝░░  ░╚═══██╗  ██║  ██║░░██╗  ██╔═██╗░
░░░██║░░░╚█████╔╝╚██████╔╝░░░██║░░██║███████╗  ██████╔╝  ██║  ╚█████╔╝  ██║░╚██╗
░░░╚═╝░░░░╚════╝░░╚═════╝░░░░╚═╝░░╚═╝╚══════╝  ╚═════╝░  ╚═╝  ░╚════╝░  ╚═╝░░╚═╝
                                   A   G A M E   O F   L O R E`

const helpText = `Commands you can type anytime:
  help           - show this help
  stats          - show your current stats
  save <slot>    - save to a slot (e.g., save 3)
  load <slot>    - load from a slot (e.g., load 2)
  slots          - list existing saves
  seed           - copy your playthrough seed to the clipboard
  quit           - exit the game`

const placeholderText = "Choice number or command..."

const storageTimeout = 5 * time.Second

// gameUI is the BubbleTea model that runs the session loop.
// https://github.com/charmbracelet/bubbletea
type gameUI struct {
	cfg    *config.Config
	store  storage.Storage
	log    *slog.Logger
	filter *textfilter.NameFilter

	st    *state.StoryState
	eng   *engine.Engine
	scene *engine.Scene
	ended *engine.Ending

	storyViewport viewport.Model
	metaViewport  viewport.Model
	textarea      textarea.Model
	storyLog      []string
	ready         bool
	width         int
	height        int

	// Start modal state
	showStartModal bool
	loadingSlots   bool
	slots          []storage.SlotInfo
	selectedStart  int
	startErr       error

	// New-game name entry state
	showNameModal bool
	nameInput     textinput.Model

	// Quit confirmation state
	showQuitModal bool
}

type slotsLoadedMsg struct {
	slots []storage.SlotInfo
	err   error
}

var (
	storyPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	chapterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narrationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	endingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

func newGameUI(cfg *config.Config, store storage.Storage, log *slog.Logger) gameUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	ti := textinput.New()
	ti.Placeholder = "Nameless"
	ti.CharLimit = 40
	ti.Width = 30

	storyVp := viewport.New(50, 20)
	storyVp.MouseWheelEnabled = true
	metaVp := viewport.New(20, 20)

	return gameUI{
		cfg:            cfg,
		store:          store,
		log:            log,
		filter:         textfilter.NewNameFilter(),
		textarea:       ta,
		nameInput:      ti,
		storyViewport:  storyVp,
		metaViewport:   metaVp,
		showStartModal: true,
		loadingSlots:   true,
	}
}

func (m gameUI) Init() tea.Cmd {
	return m.loadSlots()
}

func (m gameUI) loadSlots() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		slots, err := m.store.ListSlots(ctx)
		sort.Slice(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
		return slotsLoadedMsg{slots: slots, err: err}
	}
}

func (m gameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showNameModal {
		return m.updateNameModal(msg)
	}
	if m.showStartModal {
		return m.updateStartModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.writeStoryContent()
		m.writeMetadata()
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			return m.handleInput(strings.TrimPrefix(input, "/"))
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.storyViewport, vpCmd = m.storyViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *gameUI) resizePanels() {
	storyWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - storyWidth - 6

	m.storyViewport.Width = storyWidth - 2
	m.storyViewport.Height = m.height - 6
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(storyWidth - 4)
}

// beginSession starts the loop for a fresh or freshly loaded state.
func (m *gameUI) beginSession(st *state.StoryState) {
	m.st = st
	if m.eng == nil {
		m.eng = engine.New(st.Seed)
	} else {
		m.eng.Reseed(st.Seed)
	}
	m.ended = nil
	m.scene = nil
	m.storyLog = []string{
		titleStyle.Render("A GAME OF LORE"),
		promptStyle.Render("Type 'help' at any time."),
	}
	m.log.Info("Session started", "name", st.Name, "chapter", st.Chapter, "seed", st.Seed)
	m.advanceTurn()
	m.showStartModal = false
	m.showNameModal = false
	m.textarea.Focus()
}

// advanceTurn runs one iteration of the session loop: ending check first,
// then scene render.
func (m *gameUI) advanceTurn() {
	if ending := m.eng.CheckEnding(m.st); ending != nil {
		m.ended = ending
		m.scene = nil
		m.appendStory(endingStyle.Render("=== An Ending Unfolds ==="))
		m.appendStory(narrationStyle.Render(ending.Narration))
		m.appendStory(promptStyle.Render("Thanks for playing A Game Of Lore. Type 'quit' to exit."))
		m.log.Info("Ending reached", "ending", ending.Name, "chapter", m.st.Chapter)
		return
	}

	m.scene = m.eng.RenderScene(m.st)
	m.appendStory(chapterStyle.Render(fmt.Sprintf("[Chapter %d] %s", m.st.Chapter, m.st.Location)))
	m.appendStory(narrationStyle.Render(m.scene.Text))

	var choices strings.Builder
	for i, c := range m.scene.Choices {
		choices.WriteString(choiceStyle.Render(fmt.Sprintf("  %d. %s", i+1, c.Text)))
		if i < len(m.scene.Choices)-1 {
			choices.WriteString("\n")
		}
	}
	m.appendStory(choices.String())
}

func (m *gameUI) appendStory(entry string) {
	m.storyLog = append(m.storyLog, entry)
	m.writeStoryContent()
	m.writeMetadata()
}

func (m *gameUI) writeStoryContent() {
	width := m.storyViewport.Width - 4
	if width < 20 {
		width = 20
	}
	var content strings.Builder
	for _, entry := range m.storyLog {
		content.WriteString(wordwrap.String(entry, width))
		content.WriteString("\n\n")
	}
	m.storyViewport.SetContent(content.String())
	m.storyViewport.GotoBottom()
}

var titleCaser = cases.Title(language.English)

func flagLabel(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

func (m *gameUI) writeMetadata() {
	if m.st == nil {
		return
	}
	var content strings.Builder
	content.WriteString(titleStyle.Render("STATS") + "\n\n")
	content.WriteString(fmt.Sprintf("Name: %s\n", m.st.Name))
	content.WriteString(fmt.Sprintf("Chapter: %d\n", m.st.Chapter))
	content.WriteString(fmt.Sprintf("Location:\n%s\n\n", m.st.Location))
	content.WriteString(fmt.Sprintf("Health:    %d\n", m.st.Health))
	content.WriteString(fmt.Sprintf("Power:     %d\n", m.st.Power))
	content.WriteString(fmt.Sprintf("Morality:  %d\n", m.st.Morality))
	content.WriteString(fmt.Sprintf("Notoriety: %d\n", m.st.Notoriety))
	content.WriteString(fmt.Sprintf("Trust:     %d\n", m.st.TrustDemonLord))
	content.WriteString(fmt.Sprintf("Bond:      %d\n\n", m.st.BondDemonLord))

	content.WriteString("Inventory:\n")
	if len(m.st.Inventory) == 0 {
		content.WriteString("  (empty)\n")
	} else {
		for _, item := range m.st.Inventory {
			content.WriteString("  • " + item + "\n")
		}
	}

	var activeFlags []string
	for name, value := range m.st.Flags {
		if value {
			activeFlags = append(activeFlags, flagLabel(name))
		}
	}
	if len(activeFlags) > 0 {
		sort.Strings(activeFlags)
		content.WriteString("\nNotable:\n")
		for _, f := range activeFlags {
			content.WriteString("  • " + f + "\n")
		}
	}

	m.metaViewport.SetContent(content.String())
}

// handleInput dispatches one line of player input: a numbered choice or an
// out-of-band command.
func (m gameUI) handleInput(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "help":
		m.appendStory(promptStyle.Render(helpText))
		return m, nil
	case "stats":
		m.appendStory(m.statsText())
		return m, nil
	case "slots":
		m.appendStory(m.slotsText())
		return m, nil
	case "seed":
		if err := clipboard.WriteAll(strconv.FormatInt(m.st.Seed, 10)); err != nil {
			m.appendStory(errorStyle.Render("Could not reach the clipboard: " + err.Error()))
		} else {
			m.appendStory(promptStyle.Render(fmt.Sprintf("Seed %d copied to clipboard.", m.st.Seed)))
		}
		return m, nil
	case "quit":
		m.showQuitModal = true
		return m, nil
	case "save":
		return m.handleSave(parts)
	case "load":
		return m.handleLoad(parts)
	}

	// Not a command: try a numbered choice.
	if idx, err := strconv.Atoi(parts[0]); err == nil {
		return m.handleChoice(idx)
	}

	m.appendStory(promptStyle.Render("Type a choice number, or a command like 'save 1' or 'help'."))
	return m, nil
}

func (m gameUI) handleChoice(idx int) (tea.Model, tea.Cmd) {
	if m.ended != nil {
		m.appendStory(promptStyle.Render("The story has ended. Type 'quit' to exit, or 'load <slot>' to resume a save."))
		return m, nil
	}
	if m.scene == nil || idx < 1 || idx > len(m.scene.Choices) {
		m.appendStory(promptStyle.Render("Pick a listed choice number."))
		return m, nil
	}

	tag := m.scene.Choices[idx-1].Tag
	narration := m.eng.ApplyChoice(m.st, tag)
	m.eng.Drift(m.st)
	m.appendStory(narrationStyle.Render(narration))
	m.advanceTurn()
	return m, nil
}

func (m gameUI) handleSave(parts []string) (tea.Model, tea.Cmd) {
	slot, ok := parseSlot(parts)
	if !ok {
		m.appendStory(promptStyle.Render(fmt.Sprintf("Usage: save <slot number 1-%d>", m.cfg.NumSlots)))
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := m.store.SaveSlot(ctx, slot, m.st); err != nil {
		m.appendStory(errorStyle.Render("Save failed: " + err.Error()))
		return m, nil
	}
	m.appendStory(promptStyle.Render(fmt.Sprintf("Saved to slot %d.", slot)))
	return m, m.loadSlots()
}

func (m gameUI) handleLoad(parts []string) (tea.Model, tea.Cmd) {
	slot, ok := parseSlot(parts)
	if !ok {
		m.appendStory(promptStyle.Render(fmt.Sprintf("Usage: load <slot number 1-%d>", m.cfg.NumSlots)))
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	st, err := m.store.LoadSlot(ctx, slot)
	if err != nil {
		// The prior state stays active on a failed load.
		if errors.Is(err, storage.ErrSlotNotFound) || errors.Is(err, storage.ErrInvalidSlot) {
			m.appendStory(promptStyle.Render("Load failed: " + err.Error()))
		} else {
			m.appendStory(errorStyle.Render("Load failed: " + err.Error()))
		}
		return m, nil
	}

	m.beginSession(st)
	m.appendStory(promptStyle.Render(fmt.Sprintf("Loaded slot %d.", slot)))
	return m, nil
}

func parseSlot(parts []string) (int, bool) {
	if len(parts) < 2 {
		return 0, false
	}
	slot, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return slot, true
}

func (m *gameUI) statsText() string {
	var sb strings.Builder
	sb.WriteString("--- Stats ---\n")
	sb.WriteString(fmt.Sprintf("Name: %s | Chapter: %d | Location: %s\n", m.st.Name, m.st.Chapter, m.st.Location))
	sb.WriteString(fmt.Sprintf("Health: %d  Power: %d  Morality: %d  Notoriety: %d\n",
		m.st.Health, m.st.Power, m.st.Morality, m.st.Notoriety))
	sb.WriteString(fmt.Sprintf("Trust (Demon Lord): %d  Bond: %d\n", m.st.TrustDemonLord, m.st.BondDemonLord))
	if len(m.st.Inventory) > 0 {
		sb.WriteString("Inventory: " + strings.Join(m.st.Inventory, ", "))
	} else {
		sb.WriteString("Inventory: (empty)")
	}
	return promptStyle.Render(sb.String())
}

func (m *gameUI) slotsText() string {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	slots, err := m.store.ListSlots(ctx)
	if err != nil {
		return errorStyle.Render("Could not list saves: " + err.Error())
	}
	if len(slots) == 0 {
		return promptStyle.Render(fmt.Sprintf("No saves yet. Use: save <slot> (1-%d)", m.cfg.NumSlots))
	}
	var sb strings.Builder
	sb.WriteString("Existing saves:\n")
	for _, s := range slots {
		sb.WriteString(fmt.Sprintf("  Slot %d: %s — chapter %d (%s)\n",
			s.Slot, s.Name, s.Chapter, s.SavedAt.Format("2006-01-02 15:04:05")))
	}
	return promptStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m gameUI) updateStartModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()

	case slotsLoadedMsg:
		m.loadingSlots = false
		m.startErr = msg.err
		m.slots = msg.slots

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedStart > 0 {
				m.selectedStart--
			}
		case tea.KeyDown:
			if m.selectedStart < len(m.slots) {
				m.selectedStart++
			}
		case tea.KeyEnter:
			if m.loadingSlots {
				return m, nil
			}
			if m.selectedStart == 0 {
				m.showNameModal = true
				m.nameInput.Focus()
				return m, textinput.Blink
			}
			info := m.slots[m.selectedStart-1]
			ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
			defer cancel()
			st, err := m.store.LoadSlot(ctx, info.Slot)
			if err != nil {
				m.startErr = err
				return m, nil
			}
			m.beginSession(st)
			return m, textarea.Blink
		}
	}

	return m, nil
}

func (m gameUI) updateNameModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEsc:
			m.showNameModal = false
			return m, nil
		case tea.KeyEnter:
			name := m.filter.Clean(strings.TrimSpace(m.nameInput.Value()))
			st := state.New(name, state.DeriveSeed(name))
			m.beginSession(st)
			return m, textarea.Blink
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m gameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if !m.showStartModal && !m.showNameModal {
					m.textarea.Focus()
					return m, textarea.Blink
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m gameUI) renderStartModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(titleBanner))
	content.WriteString("\n\n")

	if m.loadingSlots {
		content.WriteString(promptStyle.Render("Reading saves..."))
	} else {
		items := []string{"New Game"}
		for _, s := range m.slots {
			items = append(items, fmt.Sprintf("Slot %d — %s, chapter %d", s.Slot, s.Name, s.Chapter))
		}
		for i, item := range items {
			if i == m.selectedStart {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + item))
			} else {
				content.WriteString(modalItemStyle.Render("  " + item))
			}
			content.WriteString("\n")
		}
		if m.startErr != nil {
			content.WriteString("\n" + errorStyle.Render(m.startErr.Error()) + "\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(88).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m gameUI) renderNameModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("New Game"))
	content.WriteString("\n\n")
	content.WriteString("What name shall your legend carry?\n\n")
	content.WriteString(m.nameInput.View())
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Enter to begin, Esc to go back"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m gameUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Your legend rests—for now. Unsaved progress will be lost.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m gameUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showNameModal {
		return m.renderNameModal()
	}
	if m.showStartModal {
		return m.renderStartModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	storyWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - storyWidth - 6

	storyPanel := storyPanelStyle.Width(storyWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.storyViewport.View(),
			separatorStyle.Render(strings.Repeat("─", storyWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, storyPanel, metaPanel)
}
