package ui

import "github.com/charmbracelet/lipgloss"

var styles = newPalette("#7D56F4", "#04B575", "#FF4D4D", "#3C9DDE", "#626262")

// palette holds the named styles used by the views.
type palette struct {
	title   lipgloss.Style
	current lipgloss.Style
	cursor  lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
}

func newPalette(title, ok, bad, info, muted string) *palette {
	return &palette{
		title:   newBold(title).MarginBottom(1),
		current: newBold(ok),
		cursor:  newBold(title),
		success: newBold(ok),
		err:     newBold(bad),
		info:    newStyle(info),
		muted:   newStyle(muted).Italic(true),
	}
}

func newStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func newBold(fg string) lipgloss.Style {
	return newStyle(fg).Bold(true)
}
