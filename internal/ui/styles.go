package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors - adaptive for light/dark terminals
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#326CE5", Dark: "#60A5FA"} // Kubernetes blue
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"} // Teal

	ColorSuccess = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"}

	ColorMuted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorText   = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	ColorBorder = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
)

// Icons for consistent output
var (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "•"
	IconBullet  = "▸"
	IconArrow   = "→"
	IconActive  = "▶"
	IconDash    = "─"
)

// Base styles
var (
	StyleBold = lipgloss.NewStyle().Bold(true)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	StyleActive = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StyleIndent = lipgloss.NewStyle().PaddingLeft(2)
)
