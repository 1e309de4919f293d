package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jonathan/panelsync/internal/dispatch"
)

const boxWidth = 60

// Printer renders dispatch results for the terminal.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary outputs one line per target attempt plus the job totals.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(s *dispatch.Summary) {
	if s == nil {
		return
	}

	ok := color.New(color.FgGreen).Sprint("✓")
	bad := color.New(color.FgRed).Sprint("✗")

	for _, a := range s.Attempts {
		icon := ok
		detail := fmt.Sprintf("%.1fs", a.Duration.Seconds())
		if !a.Success {
			icon = bad
			detail = a.Error
		}
		fmt.Fprintf(p.out, "  %s %-24s %s\n", icon, a.TargetName, detail)
	}

	totals := fmt.Sprintf("%d targets: %s succeeded, %s failed",
		s.Total,
		color.New(color.FgGreen).Sprint(s.Succeeded),
		color.New(color.FgRed).Sprint(s.Failed))
	fmt.Fprintf(p.out, "\n%s\n", totals)
}

// PrintJobHeader announces the job before dispatch begins.
func (p *Printer) PrintJobHeader(job *dispatch.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:     %s\n", job.ID))
	sb.WriteString(fmt.Sprintf("Kind:    %s\n", job.Kind))
	sb.WriteString(fmt.Sprintf("Targets: %d", len(job.TargetIDs)))

	p.printBox("DISTRIBUTION JOB", sb.String())
}
