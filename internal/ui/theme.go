package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used across the editor.
type Theme struct {
	KeyColor       color.Color // key column
	ValueColor     color.Color // value column
	HeaderFG       color.Color // breadcrumb text
	HeaderBG       color.Color // breadcrumb background
	SelectedFG     color.Color // selected row foreground
	SelectedBG     color.Color // selected row background
	SeparatorColor color.Color // table header border
	StatusError    color.Color // error status text
	StatusSuccess  color.Color // success status text
	FooterFG       color.Color // footer hint text
	FooterBG       color.Color // footer background
}

var currentTheme Theme

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		KeyColor:       lipgloss.Color("81"),
		ValueColor:     lipgloss.Color("246"),
		HeaderFG:       lipgloss.Color("81"),
		HeaderBG:       lipgloss.Color("236"),
		SelectedFG:     lipgloss.Color("250"),
		SelectedBG:     lipgloss.Color("24"),
		SeparatorColor: lipgloss.Color("238"),
		StatusError:    lipgloss.Color("203"),
		StatusSuccess:  lipgloss.Color("114"),
		FooterFG:       lipgloss.Color("244"),
		FooterBG:       lipgloss.Color("236"),
	}
}

// SetTheme overrides the global theme.
func SetTheme(t Theme) {
	currentTheme = t
}

// CurrentTheme returns the configured theme.
func CurrentTheme() Theme {
	if currentTheme == (Theme{}) {
		currentTheme = DefaultTheme()
	}
	return currentTheme
}
