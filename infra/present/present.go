// Package present renders a report for the terminal: the headline numbers
// as cards followed by every table.
package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kilianp07/chargereport/core/model"
	"github.com/kilianp07/chargereport/core/report"
	"github.com/kilianp07/chargereport/pkg/export"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
)

var printer = message.NewPrinter(language.English)

var tableTitles = map[string]string{
	"summary":   "Summary",
	"daily":     "Daily consumption",
	"kwh":       "Sessions by energy (kWh)",
	"duration":  "Sessions by duration (min)",
	"frequency": "Vehicles by number of sessions",
	"hourly":    "Sessions by hour of day",
}

// FormatKWh renders an energy total with thousands separators and one
// decimal, e.g. "1,234.5 kWh".
func FormatKWh(v float64) string { return printer.Sprintf("%.1f kWh", v) }

// FormatAverage renders an average with one decimal.
func FormatAverage(v float64) string { return printer.Sprintf("%.1f", v) }

// Cards renders the five headline numbers.
func Cards(s report.Summary, width int) string {
	cards := []string{
		card("Total energy", FormatKWh(s.TotalKWh)),
		card("Sessions", printer.Sprintf("%d", s.Sessions)),
		card("Active vehicles", printer.Sprintf("%d", s.ActiveVehicles)),
		card("Avg energy / day", FormatKWh(s.AvgKWhPerDay)),
		card("Avg sessions / day", FormatAverage(s.AvgSessionsPerDay)),
	}
	if width > 0 && width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func card(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

// Table renders header and rows as a bordered table under a title.
func Table(title string, header []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(header...).
		Rows(rows...)
	return titleStyle.Render(title) + "\n" + t.String()
}

// Heading describes the selection a report was computed for.
func Heading(sel model.Selection) string {
	vehicles := fmt.Sprintf("%d vehicles", len(sel.Vehicles))
	if len(sel.Vehicles) <= 5 {
		vehicles = strings.Join(sel.Vehicles, ", ")
		if vehicles == "" {
			vehicles = "no vehicles"
		}
	}
	return titleStyle.Render("Charging report") + " " +
		mutedStyle.Render(fmt.Sprintf("%s (%d days) · %s", sel.Range, sel.Range.Days(), vehicles))
}

// Render writes the heading, the cards and every table of rep to w.
func Render(w io.Writer, rep report.Report, width int) error {
	parts := []string{Heading(rep.Selection), Cards(rep.Summary, width)}
	for _, name := range export.Tables {
		if name == "summary" {
			continue
		}
		header, rows, err := export.Tabulate(rep, name)
		if err != nil {
			return err
		}
		parts = append(parts, Table(tableTitles[name], header, rows))
	}
	_, err := io.WriteString(w, strings.Join(parts, "\n\n")+"\n")
	return err
}
