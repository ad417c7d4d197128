package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/tui/ui"
)

// EntryRenderOptions configures how entries are rendered
type EntryRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Currently selected entry index (-1 for none)
}

// RenderEntryList renders overtime entries with aligned columns
func RenderEntryList(entries []overtime.Entry, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 {
		return ""
	}

	type entryData struct {
		number string
		name   string
		date   string
		times  string
		hours  string
		night  bool
		status overtime.Status
	}
	data := make([]entryData, len(entries))

	maxNumberWidth := len("Emp#")
	maxNameWidth := len("Name")
	for i, e := range entries {
		status := e.Status
		if status == "" {
			status = overtime.StatusPending
		}
		data[i] = entryData{
			number: e.EmployeeNumber,
			name:   e.Name,
			date:   cli.ShortDate(e.Date),
			times:  cli.FormatTimes(e),
			hours:  fmt.Sprintf("%5.1f %5.1f %5.1f", e.NormalOT, e.DoubleOT, e.TripleOT),
			night:  e.Night == overtime.NightYes,
			status: status,
		}
		maxNumberWidth = max(maxNumberWidth, len(e.EmployeeNumber))
		maxNameWidth = max(maxNameWidth, len(e.Name))
	}

	// Leave room for the fixed columns
	maxAllowedNameWidth := opts.Width - maxNumberWidth - 60
	if maxAllowedNameWidth < 12 {
		maxAllowedNameWidth = 12
	}
	if maxNameWidth > maxAllowedNameWidth {
		maxNameWidth = maxAllowedNameWidth
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-*s %-*s %-10s %-11s %5s %5s %5s %-5s %s",
		maxNumberWidth, "Emp#", maxNameWidth, "Name", "Date", "Times", "Norm", "Dbl", "Trpl", "Night", "Status")
	b.WriteString(styles.Header.Render(header))
	b.WriteString("\n")

	for i, ed := range data {
		style := styles.RowNormal
		marker := "  "
		if i == opts.Cursor {
			style = styles.RowSelected
			marker = "▸ "
		}

		name := ed.name
		if len(name) > maxNameWidth {
			name = name[:maxNameWidth-1] + "…"
		}

		night := "No"
		if ed.night {
			night = styles.Night.Render("Yes")
		}

		line := fmt.Sprintf("%s%s %s %s %-11s %s %-5s %s",
			marker,
			styles.Employee.Render(fmt.Sprintf("%-*s", maxNumberWidth, ed.number)),
			fmt.Sprintf("%-*s", maxNameWidth, name),
			styles.Date.Render(fmt.Sprintf("%-10s", ed.date)),
			ed.times,
			styles.Hours.Render(ed.hours),
			night,
			styles.StatusStyle(ed.status).Render(string(ed.status)))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func approveEntry(services *service.Services, e overtime.Entry) tea.Cmd {
	return func() tea.Msg {
		updated, err := services.Overtime.Approve(context.Background(), e.ID, nil, "")
		if err != nil {
			return ui.FlashMsg{Text: err.Error(), Error: true}
		}
		return ui.DataChangedMsg{Text: fmt.Sprintf("Approved %s for %s on %s",
			cli.FormatHours(updated.ApprovedOT), e.EmployeeNumber, cli.ShortDate(e.Date))}
	}
}

func rejectEntry(services *service.Services, e overtime.Entry, reason string) tea.Cmd {
	return func() tea.Msg {
		if err := services.Overtime.Reject(context.Background(), e.ID, reason); err != nil {
			return ui.FlashMsg{Text: err.Error(), Error: true}
		}
		return ui.DataChangedMsg{Text: fmt.Sprintf("Rejected overtime for %s on %s", e.EmployeeNumber, cli.ShortDate(e.Date))}
	}
}

func deleteEntry(services *service.Services, e overtime.Entry) tea.Cmd {
	return func() tea.Msg {
		if err := services.Overtime.Delete(context.Background(), e.ID); err != nil {
			return ui.FlashMsg{Text: err.Error(), Error: true}
		}
		return ui.DataChangedMsg{Text: fmt.Sprintf("Deleted overtime for %s on %s", e.EmployeeNumber, cli.ShortDate(e.Date))}
	}
}

// rejectPrompt asks for a rejection reason.
type rejectPrompt struct {
	input textinput.Model
	entry overtime.Entry
	open  bool
}

func newRejectPrompt() rejectPrompt {
	ti := textinput.New()
	ti.Placeholder = "Reason (optional)"
	ti.CharLimit = 200
	ti.Width = 40
	return rejectPrompt{input: ti}
}

func (p *rejectPrompt) Open(e overtime.Entry) tea.Cmd {
	p.entry = e
	p.open = true
	p.input.SetValue("")
	p.input.Focus()
	return textinput.Blink
}

func (p *rejectPrompt) Close() {
	p.open = false
	p.input.Blur()
}

func (p rejectPrompt) Value() string {
	return strings.TrimSpace(p.input.Value())
}

func (p rejectPrompt) View(styles ui.Styles) string {
	var b strings.Builder
	b.WriteString(styles.ViewTitle.Render("Reject Overtime"))
	b.WriteString("\n\n")
	b.WriteString(renderEntrySummary(p.entry, styles))
	b.WriteString("\n")
	b.WriteString(styles.StatLabel.Render("▸ Reason:"))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.StatLabel.Render("Enter to reject, Esc to cancel"))
	return b.String()
}

// renderEntrySummary renders the identifying fields of one entry.
func renderEntrySummary(e overtime.Entry, styles ui.Styles) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(styles.StatLabel.Render(label))
		b.WriteString(styles.StatValue.Render(value))
		b.WriteString("\n")
	}
	employee := e.EmployeeNumber
	if e.Name != "" {
		employee += " " + e.Name
	}
	line("Employee: ", employee)
	line("Date: ", cli.ShortDate(e.Date))
	line("Times: ", cli.FormatTimes(e))
	line("OT: ", fmt.Sprintf("normal %s, double %s, triple %s",
		cli.FormatHours(e.NormalOT), cli.FormatHours(e.DoubleOT), cli.FormatHours(e.TripleOT)))
	if e.Reason != "" {
		line("Reason: ", e.Reason)
	}
	return b.String()
}
