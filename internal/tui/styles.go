package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#6B8F71")
	ColorAccent  = lipgloss.Color("#AAD2BA")
	ColorMuted   = lipgloss.Color("#828997")
	ColorWarning = lipgloss.Color("#E5C07B")
	ColorDone    = lipgloss.Color("#98C379")
	ColorBorder  = lipgloss.Color("#3F4451")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			PaddingLeft(1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(1)

	FallbackStatusStyle = StatusStyle.
				Foreground(ColorWarning)

	ItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(ColorAccent).
				PaddingLeft(1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	MetaStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(1).
			PaddingTop(1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(ColorDone).
			Bold(true)
)
