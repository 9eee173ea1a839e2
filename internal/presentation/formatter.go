package presentation

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	json   bool
}

// NewFormatter creates a formatter. asJSON selects indented JSON over tables.
func NewFormatter(writer io.Writer, asJSON bool) *Formatter {
	return &Formatter{
		writer: writer,
		json:   asJSON,
	}
}

// FormatTours writes the catalog listing.
func (f *Formatter) FormatTours(tours []TourDTO) error {
	if f.json {
		return f.encode(tours)
	}
	rows := make([][]string, 0, len(tours))
	for _, t := range tours {
		rows = append(rows, []string{t.Key, t.Name, strconv.Itoa(t.Steps), yesNo(t.AutoStart), strings.Join(t.Targets, ", ")})
	}
	return f.table([]string{"KEY", "NAME", "STEPS", "AUTO", "TARGETS"}, rows)
}

// FormatStatuses writes per-tour completion state.
func (f *Formatter) FormatStatuses(statuses []StatusDTO) error {
	if f.json {
		return f.encode(statuses)
	}
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := "pending"
		switch {
		case s.Error != "":
			state = "error: " + s.Error
		case s.Done && s.CompletedAt != nil:
			state = "done " + humanize.Time(*s.CompletedAt)
		case s.Done:
			state = "done"
		}
		rows = append(rows, []string{s.Key, s.Name, state})
	}
	return f.table([]string{"KEY", "NAME", "STATUS"}, rows)
}

// FormatMessage writes a single line of human output, or {"message": ...}.
func (f *Formatter) FormatMessage(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if f.json {
		return f.encode(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(f.writer, msg)
	return err
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		}).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
