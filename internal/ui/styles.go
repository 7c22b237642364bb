package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF5F5F")
	ColorGreen   = lipgloss.Color("#5FD787")
	ColorYellow  = lipgloss.Color("#FFD75F")
	ColorAccent  = lipgloss.Color("#5FAFFF")
	ColorGray    = lipgloss.Color("#767676")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorViolet  = lipgloss.Color("#AF87FF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorAccent).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	LabelActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StepStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StepActiveStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StepDoneStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	BarActiveStyle = lipgloss.NewStyle().
			Foreground(ColorViolet)

	BarInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorDimGray)

	ProgressFillStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	ProgressTrackStyle = lipgloss.NewStyle().
				Foreground(ColorDimGray)

	TimeStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorViolet)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)
)
