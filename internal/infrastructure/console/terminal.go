// Package console is the line-oriented terminal the dialogue runs on.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxLineSize = 1 << 20

var (
	agentColor  = lipgloss.Color("#00D4AA")
	promptColor = lipgloss.Color("#39FF14")
	statusColor = lipgloss.Color("#aaaaaa")
)

// Terminal reads user lines from in and writes styled agent messages to out.
// Styles degrade to plain text when out is not a terminal.
type Terminal struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string

	agentStyle  lipgloss.Style
	promptStyle lipgloss.Style
	statusStyle lipgloss.Style
}

type Option func(*Terminal)

// WithPrompt prints prompt before every read.
func WithPrompt(prompt string) Option {
	return func(t *Terminal) { t.prompt = prompt }
}

func NewTerminal(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	renderer := lipgloss.NewRenderer(out)
	t := &Terminal{
		scanner:     scanner,
		out:         out,
		agentStyle:  renderer.NewStyle().Foreground(agentColor),
		promptStyle: renderer.NewStyle().Foreground(promptColor).Bold(true),
		statusStyle: renderer.NewStyle().Foreground(statusColor),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ReadLine returns the next line without its terminator, or io.EOF.
func (t *Terminal) ReadLine() (string, error) {
	if t.prompt != "" {
		fmt.Fprint(t.out, t.promptStyle.Render(t.prompt))
	}
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(t.scanner.Text(), "\r\n"), nil
}

func (t *Terminal) Display(message string) {
	fmt.Fprintln(t.out, t.agentStyle.Render(message))
}

// Status overwrites the current line with a progress report.
func (t *Terminal) Status(message string, progress, total int) {
	fmt.Fprint(t.out, "\r"+t.statusStyle.Render(FormatStatus(message, progress, total)))
}

// FormatStatus renders "message: n", or "message: n/total" when total is positive.
func FormatStatus(message string, progress, total int) string {
	if total > 0 {
		return fmt.Sprintf("%s: %d/%d", message, progress, total)
	}
	return fmt.Sprintf("%s: %d", message, progress)
}
