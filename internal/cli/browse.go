// internal/cli/browse.go
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/langchain-mcp/internal/dispatch"
	"github.com/mwiater/langchain-mcp/mcp/tools"
	"github.com/spf13/cobra"
)

// newBrowseCmd implements 'browse', an interactive catalogue browser that
// renders each tool with its default arguments.
func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the tool catalogue interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := a.newDispatcher()
			if err != nil {
				return err
			}
			p := tea.NewProgram(newBrowseModel(cmd.Context(), d),
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
}

// browseState is the screen the browser is showing.
type browseState int

const (
	// browseList shows the tool catalogue.
	browseList browseState = iota
	// browseDetail shows the output of the selected tool.
	browseDetail
)

// toolItem is a tool as a list entry.
type toolItem struct {
	def tools.Definition
}

func (i toolItem) Title() string       { return i.def.Name }
func (i toolItem) Description() string { return i.def.Description }
func (i toolItem) FilterValue() string { return i.def.Name }

type browseModel struct {
	ctx        context.Context
	dispatcher *dispatch.Dispatcher
	state      browseState
	toolList   list.Model
	viewport   viewport.Model
	selected   tools.Definition
	err        error
	width      int
	height     int
}

func newBrowseModel(ctx context.Context, d *dispatch.Dispatcher) *browseModel {
	defs := d.List()
	items := make([]list.Item, len(defs))
	for i, def := range defs {
		items[i] = toolItem{def: def}
	}
	toolList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	toolList.Title = "LangChain + Anthropic code generators"

	return &browseModel{
		ctx:        ctx,
		dispatcher: d,
		state:      browseList,
		toolList:   toolList,
		viewport:   viewport.New(100, 20),
	}
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.toolList.FilterState() != list.Filtering {
				return m, tea.Quit
			}
		case "esc", "backspace":
			if m.state == browseDetail {
				m.state = browseList
				m.err = nil
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.toolList.SetSize(msg.Width-4, msg.Height-2)
		headerHeight := 3
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight
	}

	switch m.state {
	case browseList:
		m.toolList, cmd = m.toolList.Update(msg)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.toolList.SelectedItem().(toolItem); ok {
				m.open(selected.def)
			}
		}
	case browseDetail:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// open renders def with its sample arguments into the viewport.
func (m *browseModel) open(def tools.Definition) {
	m.selected = def
	m.state = browseDetail
	resp := m.dispatcher.Call(m.ctx, dispatch.Request{ToolName: def.Name, Arguments: sampleArgs(def)})
	if resp.IsError {
		m.err = resp.Err
		if m.err == nil {
			m.err = fmt.Errorf("%s", resp.Content)
		}
		return
	}
	m.err = nil
	m.viewport.SetContent(resp.Content)
	m.viewport.GotoTop()
}

func (m *browseModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.state {
	case browseDetail:
		headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
		hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		header := headerStyle.Render(m.selected.Name) + " " + hintStyle.Render("esc: back  q: quit")
		if m.err != nil {
			errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
			return header + "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		}
		return header + "\n\n" + m.viewport.View()
	default:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.toolList.View())
	}
}
