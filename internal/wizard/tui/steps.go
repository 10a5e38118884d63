package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Step is one entry of a step indicator. A divider renders as a connector
// between the steps around it and takes no index.
type Step struct {
	Title       string
	Description string
	Divider     bool
}

// Steps renders a horizontal progress indicator. Current is 1-based and
// counts only non-divider steps.
type Steps struct {
	Current int
	Items   []Step
}

// Count returns the number of real steps
func (s Steps) Count() int {
	n := 0
	for _, item := range s.Items {
		if !item.Divider {
			n++
		}
	}
	return n
}

// View renders the indicator
func (s Steps) View() string {
	var cols []string
	index := 0

	for _, item := range s.Items {
		if item.Divider {
			cols = append(cols, StepDividerStyle.Render(" ── "))
			continue
		}
		index++

		style := StepOtherStyle
		if index == s.Current {
			style = StepCurrentStyle
		}

		lines := []string{style.Render(strconv.Itoa(index) + ". " + item.Title)}
		if item.Description != "" {
			lines = append(lines, MutedStyle.Render(wrapWords(item.Description, 22)))
		}
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// wrapWords breaks text into lines of at most width runes at word boundaries
func wrapWords(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		wl := len([]rune(w))
		if i > 0 {
			if lineLen+1+wl > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += wl
	}
	return b.String()
}
