package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"carbontrack/internal/catalog"
	"carbontrack/internal/dataset"
	"carbontrack/internal/domain"
	"carbontrack/internal/stores"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	var page string
	switch m.page {
	case PageDashboard:
		page = m.renderDashboard()
	case PageActivities:
		page = m.renderActivities()
	case PageForm:
		page = m.renderForm()
	case PageAnalytics:
		page = m.renderAnalytics()
	case PageSettings:
		page = m.renderSettings()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderMenu(), page)
	b.WriteString(body)

	if m.showEventLog {
		b.WriteString("\n")
		b.WriteString(m.renderEventLog())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render("carbontrack")
	var tabs []string
	for _, p := range []Page{PageDashboard, PageActivities, PageAnalytics, PageSettings} {
		style := m.styles.Tab
		if p == m.page || (m.page == PageForm && p == PageActivities) {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(pageTitles[p]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", strings.Join(tabs, " "))
}

func (m *Model) renderMenu() string {
	if m.menu.Collapsed() {
		return m.styles.Menu.Render("≡")
	}
	var items []string
	for i, p := range []Page{PageDashboard, PageActivities, PageAnalytics, PageSettings} {
		label := fmt.Sprintf("%d %s", i+1, pageTitles[p])
		style := m.styles.MenuItem
		if p == m.page || (m.page == PageForm && p == PageActivities) {
			style = m.styles.MenuItem.Bold(true)
		}
		items = append(items, style.Render(label))
	}
	return m.styles.Menu.Render(strings.Join(items, "\n"))
}

func (m *Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Your Carbon Footprint"))
	b.WriteString("\n\n")

	rows := []struct {
		label  string
		period stores.Period
	}{
		{"Today", stores.PeriodDay},
		{"This week", stores.PeriodWeek},
		{"This month", stores.PeriodMonth},
		{"All time", stores.PeriodAll},
	}
	for _, r := range rows {
		total := m.activity.TotalFootprint(r.period)
		b.WriteString(fmt.Sprintf("%s %s\n",
			m.styles.Label.Render(fmt.Sprintf("%-12s", r.label)),
			m.renderFootprint(total)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("%d activities logged", len(m.activities))))
	return b.String()
}

func (m *Model) renderFootprint(kg float64) string {
	text := fmt.Sprintf("%.2f kg CO2e", kg)
	if kg < 0 {
		return m.styles.Negative.Render(text + " (net savings)")
	}
	return m.styles.Positive.Render(text)
}

func (m *Model) renderActivities() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Logged Activities"))
	b.WriteString("\n\n")

	if len(m.activities) == 0 {
		b.WriteString(m.styles.Muted.Render("No activities yet. Press 'a' to log one."))
		return b.String()
	}

	for i, a := range m.activities {
		line := fmt.Sprintf("%-10s  %-28s  %s",
			truncateToDay(a.Date),
			describeActivity(a),
			m.renderFootprint(m.activity.CarbonFootprint(a)))
		if i == m.cursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("a add · enter edit · d delete"))
	return b.String()
}

func (m *Model) renderForm() string {
	var b strings.Builder
	heading := "Log Activity"
	if m.form.editingID != "" {
		heading = "Edit Activity"
	}
	b.WriteString(m.styles.Title.Render(heading))
	b.WriteString("\n\n")

	row := func(field int, label, value string) {
		marker := "  "
		if m.form.focus == field {
			marker = m.styles.Selected.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, m.styles.Label.Render(fmt.Sprintf("%-14s", label)), value))
	}

	row(fieldType, "Type", m.styles.Value.Render(m.form.typeLabel()))
	row(fieldDate, "Date", m.form.inputs[fieldDate].View())
	row(fieldQuantity, "Quantity", m.form.inputs[fieldQuantity].View())
	row(fieldNotes, "Notes", m.form.inputs[fieldNotes].View())
	if m.form.isCustom() {
		row(fieldCustomName, "Name", m.form.inputs[fieldCustomName].View())
		row(fieldCustomUnit, "Unit", m.form.inputs[fieldCustomUnit].View())
		row(fieldCustomFactor, "kg CO2e/unit", m.form.inputs[fieldCustomFactor].View())
	}

	if m.form.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.form.errMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter save · esc cancel · ←/→ change type"))
	return b.String()
}

func (m *Model) renderAnalytics() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Country Emissions"))
	b.WriteString("\n\n")

	if len(m.countries) == 0 {
		b.WriteString(m.styles.Muted.Render("No datasets configured. Set datasets_dir in the config file."))
		return b.String()
	}

	country := m.countries[m.countryIdx]
	b.WriteString(fmt.Sprintf("%s %s\n",
		m.styles.Label.Render("Country:"),
		m.styles.Value.Render(strings.ReplaceAll(country, "_", " "))))

	filtered := dataset.FilterByYearRange(m.series, m.yearStart, m.yearEnd)
	if len(filtered) == 0 {
		b.WriteString(m.styles.Muted.Render("no data in the selected year range"))
		return b.String()
	}

	stats := dataset.Calculate(filtered)
	b.WriteString(fmt.Sprintf("%s %d–%d\n", m.styles.Label.Render("Years:"), m.yearStart, m.yearEnd))
	b.WriteString(fmt.Sprintf("%s %.3f bn t CO2\n", m.styles.Label.Render("Avg total:"), stats.AverageTotalEmissions))
	b.WriteString(fmt.Sprintf("%s %.2f t CO2/person\n\n", m.styles.Label.Render("Avg per capita:"), stats.AveragePerCapita))

	b.WriteString(m.renderChart(filtered))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("←/→ country · -/= year range"))
	return b.String()
}

// renderChart draws a horizontal bar per year, scaled to the series maximum.
func (m *Model) renderChart(data []dataset.EmissionsData) string {
	maxTotal := 0.0
	for _, d := range data {
		if d.TotalEmissions > maxTotal {
			maxTotal = d.TotalEmissions
		}
	}
	if maxTotal == 0 {
		return ""
	}

	width := 40
	if m.width > 70 {
		width = m.width - 34
	}

	// At most one bar per row; subsample long ranges.
	step := 1
	if len(data) > 15 {
		step = len(data) / 15
	}

	var b strings.Builder
	for i := 0; i < len(data); i += step {
		d := data[i]
		n := int(d.TotalEmissions / maxTotal * float64(width))
		b.WriteString(fmt.Sprintf("%d %s %.2f\n",
			d.Year,
			m.styles.Bar.Render(strings.Repeat("█", n)),
			d.TotalEmissions))
	}
	return b.String()
}

func (m *Model) renderSettings() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	for i, f := range m.settingFields() {
		line := fmt.Sprintf("%s %s",
			m.styles.Label.Render(fmt.Sprintf("%-20s", f.name)),
			m.styles.Value.Render(f.value))
		if i == m.settingsCursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s · %s\n",
		m.styles.Label.Render("Theme:"),
		m.styles.Value.Render(string(m.theme.Mode())),
		m.styles.Value.Render(string(m.theme.Scheme()))))

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter change · r reset defaults · t theme · c scheme"))
	return b.String()
}

func (m *Model) renderEventLog() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Event Log"))
	b.WriteString("\n")
	if len(m.eventLog) == 0 {
		b.WriteString(m.styles.Muted.Render("no events yet"))
	}
	for _, e := range m.eventLog {
		b.WriteString(fmt.Sprintf("%s  %-22s %s\n",
			m.styles.Muted.Render(e.when.Format("15:04:05")),
			m.styles.Value.Render(string(e.event)),
			m.styles.Muted.Render(e.detail)))
	}
	return m.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderStatusBar() string {
	left := m.status
	if left == "" {
		left = "1-4 pages · m menu · t theme · e events · L log · q quit"
	}
	return m.styles.StatusBar.Render(left)
}

// describeActivity is the one-line human label for a record.
func describeActivity(a domain.Activity) string {
	if a.IsCustom {
		return fmt.Sprintf("%s: %.1f %s", a.CustomName, a.Quantity, a.CustomUnit)
	}
	if t, ok := catalog.Lookup(a.TypeID); ok {
		return fmt.Sprintf("%s: %.1f %s", t.Name, a.Quantity, t.Unit)
	}
	return fmt.Sprintf("%s: %.1f", a.TypeID, a.Quantity)
}
