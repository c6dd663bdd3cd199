package preview

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Padding(1, 2)

	CondensedHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	NavStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ActiveNavStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("43")).Bold(true).Underline(true)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	CursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true)
	ExpandedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(4)

	DrawerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("43")).
			Padding(1, 3)

	IntroStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 4)

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)
