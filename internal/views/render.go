package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Body       string
	StatusLine string
	Footer     string
	Overlay    string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Border(lipgloss.DoubleBorder()).Padding(0, 2)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dayHeadStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// tag display colors, keyed by the color names the registry stores
var tagColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("12"),
	"green":  lipgloss.Color("10"),
	"purple": lipgloss.Color("13"),
	"red":    lipgloss.Color("9"),
	"yellow": lipgloss.Color("11"),
	"gray":   lipgloss.Color("8"),
}

func TagDot(color string) string {
	c, ok := tagColors[strings.ToLower(color)]
	if !ok {
		c = tagColors["gray"]
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

func RenderApp(data AppData) string {
	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		panelStyle.Render(data.Body),
		status,
	}
	if data.Overlay != "" {
		lines = append(lines, panelStyle.Render(data.Overlay))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
