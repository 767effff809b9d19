// Package report writes user-facing output: one line on success or
// failure, and YAML views for the list and plan commands.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/primecycle/internal/cycle"
)

const program = "primecycle"

// Reporter writes success messages to Out and failures to Err. Lines are
// styled only when the destination is a terminal.
type Reporter struct {
	Out io.Writer
	Err io.Writer

	okStyle   lipgloss.Style
	dimStyle  lipgloss.Style
	failStyle lipgloss.Style
	outStyled bool
	errStyled bool
}

// New creates a Reporter. Terminal detection uses the Fd method of *os.File.
func New(out, errw io.Writer) *Reporter {
	return &Reporter{
		Out:       out,
		Err:       errw,
		okStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		dimStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		failStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		outStyled: isTerminal(out),
		errStyled: isTerminal(errw),
	}
}

type fder interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (r *Reporter) style(s lipgloss.Style, styled bool, text string) string {
	if !styled {
		return text
	}
	return s.Render(text)
}

// Success reports a completed rotation or a single-display no-op.
func (r *Reporter) Success(res cycle.Result) {
	target := res.Target()
	if res.Noop() {
		fmt.Fprintf(r.Out, "%s %s\n",
			r.style(r.dimStyle, r.outStyled, "unchanged:"),
			fmt.Sprintf("%s is the only display", target.ID()))
		return
	}
	fmt.Fprintf(r.Out, "%s %s\n",
		r.style(r.okStyle, r.outStyled, "primary:"),
		target.ID())
}

// Failure reports err on Err, labelled with its outcome kind when it has one.
func (r *Reporter) Failure(err error) {
	label := "error:"
	var ce *cycle.Error
	if errors.As(err, &ce) {
		label = ce.Kind.String() + ":"
	}

	fmt.Fprintf(r.Err, "%s: %s %v\n", program, r.style(r.failStyle, r.errStyled, label), err)
}

// Usagef reports a command-line error.
func (r *Reporter) Usagef(format string, args ...any) {
	fmt.Fprintf(r.Err, "%s: %s\n", program, fmt.Sprintf(format, args...))
}

// YAML writes v to Out as a YAML document.
func (r *Reporter) YAML(v any) error {
	enc := yaml.NewEncoder(r.Out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
