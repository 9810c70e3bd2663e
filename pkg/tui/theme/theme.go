package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the dashboard UI.
type Theme struct {
	Table  TableTheme
	Footer FooterTheme
	Form   FormTheme
	Menu   MenuTheme
}

// TableTheme styles the record table.
type TableTheme struct {
	Header   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Pager  lipgloss.Style
}

// FormTheme styles the questionnaire overlay.
type FormTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
}

// MenuTheme styles filter dropdowns.
type MenuTheme struct {
	Frame    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Table: TableTheme{
			Header:   lipgloss.NewStyle().Bold(true).Underline(true),
			Row:      lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Reverse(true),
			Empty:    lipgloss.NewStyle().Faint(true).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Pager:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Form: FormTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Label: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Value: lipgloss.NewStyle(),
		},
		Menu: MenuTheme{
			Frame:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
			Item:     lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
	}
}
