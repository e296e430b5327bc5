package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

// SetOutput redirects OK/Fail/PrintPanel. Used by tests.
func SetOutput(out, errOut io.Writer) {
	stdout, stderr = out, errOut
}

// Println writes s to stdout.
func Println(s string) {
	fmt.Fprintln(stdout, s)
}

func OK(msg string) {
	t := Current()
	fmt.Fprintln(stdout, t.Success.Render(t.SymDone+" "+msg))
}

func Fail(msg string) {
	t := Current()
	fmt.Fprintln(stderr, t.Error.Render(t.SymCross+" "+msg))
}

// Hint prints a muted line on stderr.
func Hint(msg string) {
	fmt.Fprintln(stderr, Current().Muted.Render(msg))
}

// Prompt writes a question on stderr and leaves the cursor on the same line.
func Prompt(msg string) {
	fmt.Fprint(stderr, Current().Accent.Render(msg)+" ")
}
