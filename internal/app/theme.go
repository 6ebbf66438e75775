package app

import "charm.land/lipgloss/v2"

var (
	headerStyle              = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusErrorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	errorStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	selectedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	menuDropStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	contextMenuHeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	confirmDialogBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	noteTitleStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	noteMetaStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	noteCardStyle            = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	noteCardSelectedStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("117")).Padding(0, 1)
	editButtonStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true).Underline(true)
	deleteButtonStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true).Underline(true)
	disabledButtonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	paneStyle                = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("237")).Padding(0, 1)
	paneFocusedStyle         = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	fieldLabelStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	submitButtonStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true).Padding(0, 1)
	submitButtonIdleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1)
)
