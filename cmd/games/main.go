// Command games is a terminal browser for Games records.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/icco/gamecrm"
	"github.com/icco/gamecrm/hubspot"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

var opts struct {
	Token      string `long:"token" env:"ACCESS_TOKEN" description:"HubSpot private app access token"`
	ObjectType string `long:"object-type" env:"HUBSPOT_OBJECT_TYPE" default:"2-57074073" description:"HubSpot object type id"`
	BaseURL    string `long:"base-url" env:"HUBSPOT_BASE_URL" default:"https://api.hubapi.com" description:"HubSpot API base URL"`
}

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	infoStyle = lipgloss.NewStyle().
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginLeft(2)

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			MarginLeft(2)

	confirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			MarginLeft(2)
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	crm, err := hubspot.New(&hubspot.Config{
		Token:      opts.Token,
		ObjectType: opts.ObjectType,
		BaseURL:    opts.BaseURL,
	})
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(initialModel(crm), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	crm   hubspot.Objects
	table table.Model
	games []gamecrm.Game

	// confirming is the id waiting on a y/n before it is deleted.
	confirming string
	loading    bool
	status     string
	error      string
}

var columns = []table.Column{
	{Title: "ID", Width: 12},
	{Title: "Name", Width: 24},
	{Title: "Genre", Width: 12},
	{Title: "Platforms", Width: 24},
	{Title: "Status", Width: 16},
	{Title: "Rating", Width: 8},
}

func initialModel(crm hubspot.Objects) model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return model{crm: crm, table: t, loading: true}
}

func (m model) Init() tea.Cmd {
	return m.fetchGames()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil

	case gamesLoaded:
		m.games = msg.games
		m.table.SetRows(rows(msg.games))
		m.loading = false
		m.error = ""
		m.status = fmt.Sprintf("%d games", len(msg.games))
		return m, nil

	case gameDeleted:
		m.status = "deleted " + msg.id
		m.loading = true
		return m, m.fetchGames()

	case requestFailed:
		m.loading = false
		m.error = msg.error
		return m, nil

	case tea.KeyMsg:
		if m.confirming != "" {
			return m.updateConfirm(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.status = ""
			return m, m.fetchGames()
		case "d":
			if g, ok := m.selected(); ok {
				m.confirming = g.ID
				m.error = ""
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirming
	m.confirming = ""

	switch strings.ToLower(msg.String()) {
	case "y":
		m.loading = true
		return m, m.deleteGame(id)
	case "ctrl+c":
		return m, tea.Quit
	default:
		m.status = "delete cancelled"
		return m, nil
	}
}

func (m model) selected() (gamecrm.Game, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.games) {
		return gamecrm.Game{}, false
	}
	return m.games[i], true
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Games"))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	switch {
	case m.confirming != "":
		b.WriteString(confirmStyle.Render(fmt.Sprintf("Delete %s? (y/n)", m.confirming)))
	case m.loading:
		b.WriteString(infoStyle.Render("Loading..."))
	case m.status != "":
		b.WriteString(infoStyle.Render(m.status))
	}
	b.WriteString("\n")

	if m.error != "" {
		b.WriteString(errorStyle.Render("Error: " + m.error))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓: move | r: refresh | d: delete | q: quit"))
	b.WriteString("\n")

	return b.String()
}

func rows(games []gamecrm.Game) []table.Row {
	out := make([]table.Row, 0, len(games))
	for _, g := range games {
		out = append(out, table.Row{
			g.ID,
			g.Name,
			g.Genre,
			strings.Join(g.Platforms(), ", "),
			g.DevelopmentStatus,
			g.Rating,
		})
	}
	return out
}

// Commands
func (m model) fetchGames() tea.Cmd {
	crm := m.crm
	return func() tea.Msg {
		objs, err := crm.List(context.Background(), gamecrm.ListProperties, hubspot.MaxPageSize)
		if err != nil {
			return requestFailed{error: describe(err)}
		}
		return gamesLoaded{games: gamecrm.GamesFromObjects(objs)}
	}
}

func (m model) deleteGame(id string) tea.Cmd {
	crm := m.crm
	return func() tea.Msg {
		if err := crm.Delete(context.Background(), id); err != nil {
			return requestFailed{error: describe(err)}
		}
		return gameDeleted{id: id}
	}
}

func describe(err error) string {
	if apiErr, ok := hubspot.AsAPIError(err); ok {
		return fmt.Sprintf("HubSpot returned %d: %s", apiErr.StatusCode, apiErr.Message())
	}
	return err.Error()
}

// Messages
type gamesLoaded struct {
	games []gamecrm.Game
}

type gameDeleted struct {
	id string
}

type requestFailed struct {
	error string
}
