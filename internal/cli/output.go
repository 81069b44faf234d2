package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/cbout22/ghrefs/internal/refs"
)

// printer renders references for humans.
type printer struct {
	w            io.Writer
	colorEnabled bool
}

func (p *printer) kind(k refs.Kind) string {
	str := fmt.Sprintf("%-6s", k)
	if !p.colorEnabled {
		return str
	}
	switch k {
	case refs.Tag:
		return color.New(color.FgCyan).Sprint(str)
	case refs.Branch:
		return color.New(color.FgGreen).Sprint(str)
	default:
		return str
	}
}

func (p *printer) ref(r refs.Reference) {
	fmt.Fprintf(p.w, "%s %s %s\n", p.kind(r.Kind), r.Name, r.SHA)
}

func (p *printer) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.colorEnabled {
		msg = color.New(color.FgYellow).Sprint(msg)
	}
	fmt.Fprintln(p.w, msg)
}
