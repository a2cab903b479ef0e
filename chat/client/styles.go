package client

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the chat view.
type Styles struct {
	Header    lipgloss.Style
	Assistant lipgloss.Style
	User      lipgloss.Style
	Error     lipgloss.Style
	Hint      lipgloss.Style
	ChatBox   lipgloss.Style
	TableBox  lipgloss.Style
}

// DefaultStyles returns the color scheme of the chat client.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#5f5fd7")).Padding(0, 1),
		Assistant: lipgloss.NewStyle().Foreground(lipgloss.Color("#4477ff")),
		User:      lipgloss.NewStyle().Foreground(lipgloss.Color("#44ff77")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		ChatBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#666666")).Padding(0, 1),
		TableBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#666666")),
	}
}
