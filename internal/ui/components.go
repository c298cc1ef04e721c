package ui

import (
	"fmt"
	"strings"
)

// Success renders a success message
func Success(format string, a ...interface{}) string {
	return StyleSuccess.Render(IconSuccess+" ") + fmt.Sprintf(format, a...)
}

// Error renders an error message
func Error(format string, a ...interface{}) string {
	return StyleError.Render(IconError+" ") + fmt.Sprintf(format, a...)
}

// Warning renders a warning message
func Warning(format string, a ...interface{}) string {
	return StyleWarning.Render(IconWarning+" ") + fmt.Sprintf(format, a...)
}

// Info renders an info message
func Info(format string, a ...interface{}) string {
	return StyleInfo.Render(IconInfo+" ") + fmt.Sprintf(format, a...)
}

// Step renders an indented progress item
func Step(format string, a ...interface{}) string {
	return StyleIndent.Render(StyleMuted.Render(IconBullet+" ") + fmt.Sprintf(format, a...))
}

// Muted renders dim text
func Muted(format string, a ...interface{}) string {
	return StyleMuted.Render(fmt.Sprintf(format, a...))
}

// Title renders a section title
func Title(text string) string {
	return StyleTitle.Render(text)
}

// Divider renders a horizontal rule
func Divider() string {
	return StyleMuted.Render(strings.Repeat(IconDash, 40))
}
