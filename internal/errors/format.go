package errors

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	codeStyle  = lipgloss.NewStyle().Bold(true)
	locStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	gutter     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Format renders the error for a terminal. Styles degrade to plain text when
// the output has no color support.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(errorStyle.Render("ERROR"))
	b.WriteString(" ")
	if e.Code != "" {
		b.WriteString(codeStyle.Render(e.Code + ":"))
		b.WriteString(" ")
	}
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Location != nil {
		b.WriteString("  ")
		b.WriteString(locStyle.Render(e.Location.String()))
		b.WriteString("\n\n")
	}
	for i, line := range e.Context {
		n := i + 1
		if e.Location != nil && e.Location.Line > 0 {
			n = e.Location.Line + i
		}
		fmt.Fprintf(&b, "    %4d%s%s\n", n, gutter.Render(" │ "), line)
	}
	if len(e.Context) > 0 {
		b.WriteString("\n")
	}
	if e.Detail != "" {
		b.WriteString("  ")
		b.WriteString(e.Detail)
		b.WriteString("\n\n")
	}
	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(gutter.Render("Cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n\n")
	}
	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(hintStyle.Render("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatCompact returns a single-line form.
func (e *Error) FormatCompact() string {
	return e.Error()
}

type jsonError struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Cause      string    `json:"cause,omitempty"`
}

// FormatJSON returns the error as a JSON object.
func (e *Error) FormatJSON() string {
	je := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		je.Cause = e.Wrapped.Error()
	}
	b, _ := json.Marshal(je)
	return string(b)
}
