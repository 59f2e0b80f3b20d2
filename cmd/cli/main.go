package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const defaultAPIURL = "http://localhost:8000"

type measurement struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	WeightPounds  float64 `json:"weightPounds"`
	HeightFeet    int     `json:"heightFeet"`
	HeightInches  int     `json:"heightInches"`
	ActivityLevel string  `json:"activityLevel"`
}

type calculation struct {
	Success      bool `json:"success"`
	BMR          int  `json:"bmr"`
	TDEE         int  `json:"tdee"`
	CalorieGoals struct {
		Maintain   int `json:"maintain"`
		LoseWeight int `json:"loseWeight"`
		GainWeight int `json:"gainWeight"`
	} `json:"calorieGoals"`
	UserInfo struct {
		Age            int     `json:"age"`
		Gender         string  `json:"gender"`
		WeightPounds   float64 `json:"weightPounds"`
		Height         string  `json:"height"`
		ActivityLevel  string  `json:"activityLevel"`
		ActivityFactor float64 `json:"activityFactor"`
	} `json:"userInfo"`
	Conversions struct {
		WeightKg float64 `json:"weightKg"`
		HeightCm float64 `json:"heightCm"`
	} `json:"conversions"`
}

type apiError struct {
	Message string   `json:"message"`
	Field   string   `json:"field"`
	Choices []string `json:"choices"`
}

type model struct {
	apiURL         string         // Base URL of the calculator API
	input          measurement    // The measurement we send
	report         string         // Markdown report of the last result
	loading        bool           // Whether the request is loading
	loadingSpinner spinner.Model  // Loading spinner
	err            error          // Transport or decoding error
	width          int            // Width of the terminal
	height         int            // Height of the terminal
	viewport       viewport.Model // Viewport for the report
	keys           keyMap         // The key bindings shown in the viewport
	help           help.Model     // The help model in the viewport
}

type keyMap struct {
	Refresh key.Binding
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
}

var keys = keyMap{
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recalculate")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll down")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
}

// ShortHelp returns keybindings to be shown in the mini help view. It's part
// of the key.Map interface.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit, k.Help}
}

// FullHelp returns keybindings for the expanded help view. It's part of the
// key.Map interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Refresh, k.Quit},
		{k.Help},
	}
}

func initialModel(apiURL string, in measurement) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		apiURL:         strings.TrimRight(apiURL, "/"),
		input:          in,
		loading:        true,
		viewport:       viewport.New(0, 0),
		loadingSpinner: s,
		keys:           keys,
		help:           help.New(),
	}
}

type gotResultMsg calculation
type rejectedMsg apiError
type errMsg error
type tickMsg struct{}

func (m model) Init() tea.Cmd {
	return m.requestCalculation()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.help.Width = msg.Width
		m.render()

		return m, nil

	case gotResultMsg:
		m.loading = false
		m.report = renderReport(calculation(msg))
		m.render()
		return m, nil

	case rejectedMsg:
		m.loading = false
		m.report = renderRejection(apiError(msg))
		m.render()
		return m, nil

	case tickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
			return m, cmd
		}

		return m, nil

	case errMsg:
		m.err = msg
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.err = nil
			return m, m.requestCalculation()

		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)

		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		}
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)

	var cmd tea.Cmd
	if m.loading {
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		return m, tea.Batch(cmd, vpCmd)
	}
	return m, vpCmd
}

// render refreshes the viewport from the markdown report.
func (m *model) render() {
	if m.report == "" || m.width == 0 {
		return
	}
	wrapped := wordwrap.String(m.report, m.width)
	indented := indent.String(wrapped, 2)

	out, err := glamour.Render(indented, "dark")
	if err != nil {
		m.err = err
		return
	}
	m.viewport.SetContent(out)
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	if m.loading {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			AlignVertical(lipgloss.Center).
			Align(lipgloss.Center).
			Render(
				lipgloss.JoinHorizontal(lipgloss.Center,
					m.loadingSpinner.View(),
					"Calculating",
				),
			)
	}

	helpView := lipgloss.NewStyle().PaddingLeft(2).MarginTop(1).Render(m.help.View(m.keys))
	contentHeight := m.height - lipgloss.Height(helpView)
	if contentHeight < 0 {
		contentHeight = 0
	}
	m.viewport.Height = contentHeight

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), helpView)
}

func (m model) requestCalculation() tea.Cmd {
	return tea.Batch(
		m.loadingSpinner.Tick,
		calculateCmd(m.apiURL, m.input),
		tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
			return tickMsg{}
		}),
	)
}

func calculateCmd(apiURL string, in measurement) tea.Cmd {
	return func() tea.Msg {
		payload, err := json.Marshal(in)
		if err != nil {
			return errMsg(err)
		}

		resp, err := http.Post(apiURL+"/calculate", "application/json", bytes.NewReader(payload))
		if err != nil {
			return errMsg(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return errMsg(err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var res calculation
			if err := json.Unmarshal(body, &res); err != nil {
				return errMsg(err)
			}
			return gotResultMsg(res)
		case http.StatusBadRequest:
			var apiErr apiError
			if err := json.Unmarshal(body, &apiErr); err != nil {
				return errMsg(err)
			}
			return rejectedMsg(apiErr)
		default:
			return errMsg(fmt.Errorf("HTTP error: %s", resp.Status))
		}
	}
}

func renderReport(c calculation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# BMR & TDEE\n\n")
	fmt.Fprintf(&b, "| | kcal/day |\n|---|---|\n")
	fmt.Fprintf(&b, "| BMR | %d |\n| TDEE | %d |\n\n", c.BMR, c.TDEE)
	fmt.Fprintf(&b, "## Calorie goals\n\n")
	fmt.Fprintf(&b, "- Maintain: **%d**\n", c.CalorieGoals.Maintain)
	fmt.Fprintf(&b, "- Lose weight: **%d**\n", c.CalorieGoals.LoseWeight)
	fmt.Fprintf(&b, "- Gain weight: **%d**\n\n", c.CalorieGoals.GainWeight)
	fmt.Fprintf(&b, "## Input\n\n")
	fmt.Fprintf(&b, "- %d years, %s\n", c.UserInfo.Age, c.UserInfo.Gender)
	fmt.Fprintf(&b, "- %g lbs (%.1f kg)\n", c.UserInfo.WeightPounds, c.Conversions.WeightKg)
	fmt.Fprintf(&b, "- %s (%.1f cm)\n", c.UserInfo.Height, c.Conversions.HeightCm)
	fmt.Fprintf(&b, "- %s, x%g\n", c.UserInfo.ActivityLevel, c.UserInfo.ActivityFactor)
	return b.String()
}

func renderRejection(e apiError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Rejected\n\n%s\n", e.Message)
	if len(e.Choices) > 0 {
		fmt.Fprintf(&b, "\nValid `%s` values:\n\n", e.Field)
		for _, c := range e.Choices {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	return b.String()
}

func main() {
	var in measurement
	apiURL := flag.String("api", defaultAPIURL, "calculator API base URL")
	flag.IntVar(&in.Age, "age", 30, "age in years")
	flag.StringVar(&in.Gender, "gender", "Male", "Male or Female")
	flag.Float64Var(&in.WeightPounds, "weight", 180.5, "weight in pounds")
	flag.IntVar(&in.HeightFeet, "feet", 5, "height, feet part")
	flag.IntVar(&in.HeightInches, "inches", 10, "height, inches part")
	flag.StringVar(&in.ActivityLevel, "activity", "Moderately Active (moderate exercise 3-5 days/week)", "activity level label")
	flag.Parse()

	p := tea.NewProgram(initialModel(*apiURL, in), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
