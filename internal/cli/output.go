package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/studioline/intake-backend/internal/projects/domain"
)

var (
	statusColors = map[domain.Status]*color.Color{
		domain.StatusPending:  color.New(color.FgYellow),
		domain.StatusQuoted:   color.New(color.FgBlue),
		domain.StatusAccepted: color.New(color.FgGreen),
		domain.StatusRejected: color.New(color.FgRed),
	}
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	labelColor   = color.New(color.Bold)
)

type printer struct {
	w        io.Writer
	jsonMode bool
}

func newPrinter(w io.Writer, jsonMode bool) *printer {
	return &printer{w: w, jsonMode: jsonMode}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, successColor.Sprint("✓ ")+fmt.Sprintf(format, args...))
}

func (p *printer) failure(msg string) string {
	return failureColor.Sprint("✗ ") + msg
}

func statusLabel(s domain.Status) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(string(s))
	}
	return string(s)
}

func formatQuote(q *float64) string {
	if q == nil {
		return "-"
	}
	return "$" + strconv.FormatFloat(*q, 'f', -1, 64)
}

func (p *printer) projectTable(items []domain.Project) error {
	if p.jsonMode {
		return p.json(items)
	}
	if len(items) == 0 {
		fmt.Fprintln(p.w, "No projects yet.")
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSERVICE\tBUDGET\tSTATUS\tQUOTE\tSUBMITTED")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Name, it.ServiceType, it.Budget,
			statusLabel(it.Status), formatQuote(it.Quote),
			it.SubmittedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func (p *printer) projectDetail(it *domain.Project) error {
	if p.jsonMode {
		return p.json(it)
	}

	company := it.Company
	if company == "" {
		company = "-"
	}
	quotedAt := "-"
	if it.QuotedAt != nil {
		quotedAt = it.QuotedAt.Local().Format(time.DateTime)
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"ID", it.ID},
		{"Name", it.Name},
		{"Email", it.Email},
		{"Company", company},
		{"Service", it.ServiceType},
		{"Budget", it.Budget},
		{"Status", statusLabel(it.Status)},
		{"Quote", formatQuote(it.Quote)},
		{"Submitted", it.SubmittedAt.Local().Format(time.DateTime)},
		{"Quoted", quotedAt},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", labelColor.Sprint(r[0]+":"), r[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(p.w, "\n%s\n", it.Description)
	return nil
}
