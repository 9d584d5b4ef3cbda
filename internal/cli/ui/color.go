package ui

import "github.com/fatih/color"

// paint returns a color with attrs, disabled when noColor is set.
func paint(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}
