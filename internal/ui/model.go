package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"carbontrack/internal/config"
	"carbontrack/internal/dataset"
	"carbontrack/internal/domain"
	"carbontrack/internal/eventbus"
	"carbontrack/internal/stores"
)

// Page identifies the visible page, mirroring the web app's routes.
type Page int

const (
	PageDashboard Page = iota
	PageActivities
	PageForm
	PageAnalytics
	PageSettings
)

var pageTitles = map[Page]string{
	PageDashboard:  "Dashboard",
	PageActivities: "Activities",
	PageForm:       "Log Activity",
	PageAnalytics:  "Analytics",
	PageSettings:   "Settings",
}

// maxEventLog caps the diagnostic event panel, like the web EventLogger.
const maxEventLog = 10

type logEntry struct {
	when   time.Time
	event  eventbus.EventType
	detail string
}

// Model is the bubbletea model for the tracker.
type Model struct {
	cfg      *config.Config
	bus      eventbus.Bus
	queue    *eventbus.Queue
	activity *stores.ActivityStore
	theme    *stores.ThemeStore
	settings *stores.SettingsStore
	menu     *stores.MenuStore
	loader   *dataset.Loader
	logPath  string

	program *tea.Program

	page   Page
	width  int
	height int
	styles Styles
	status string

	// activities page
	activities []domain.Activity
	cursor     int

	// activity form
	form activityForm

	// analytics page
	countries  []string
	countryIdx int
	series     []dataset.EmissionsData
	yearStart  int
	yearEnd    int

	// settings page
	settingsCursor int

	// diagnostic event log
	eventLog     []logEntry
	showEventLog bool
}

// NewModel creates the UI model.
func NewModel(
	cfg *config.Config,
	bus eventbus.Bus,
	queue *eventbus.Queue,
	activity *stores.ActivityStore,
	theme *stores.ThemeStore,
	settings *stores.SettingsStore,
	menu *stores.MenuStore,
	loader *dataset.Loader,
	logPath string,
) *Model {
	m := &Model{
		cfg:      cfg,
		bus:      bus,
		queue:    queue,
		activity: activity,
		theme:    theme,
		settings: settings,
		menu:     menu,
		loader:   loader,
		logPath:  logPath,
		form:     newActivityForm(),
	}
	m.refresh()
	return m
}

// SetProgram hands the model its running program, needed to release the
// terminal for the external pager.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// refresh pulls fresh snapshots from the stores and rebuilds the styles.
func (m *Model) refresh() {
	m.activities = m.activity.Activities()
	if m.cursor >= len(m.activities) {
		m.cursor = len(m.activities) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.styles = NewStyles(m.theme.Resolved(), m.theme.Scheme())
}

func (m *Model) Init() tea.Cmd {
	return m.loadCountriesCmd()
}

func (m *Model) loadCountriesCmd() tea.Cmd {
	return func() tea.Msg {
		countries, err := m.loader.Countries()
		return countriesLoadedMsg{countries: countries, err: err}
	}
}

func (m *Model) loadSeriesCmd(country string) tea.Cmd {
	return func() tea.Msg {
		data, err := m.loader.Load(country)
		return seriesLoadedMsg{country: country, data: data, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case StoreChangedMsg:
		m.refresh()
		return m, nil

	case EventMsg:
		m.recordEvent(msg.Event)
		return m, nil

	case countriesLoadedMsg:
		if msg.err != nil {
			m.status = "no country datasets available"
			return m, nil
		}
		m.countries = msg.countries
		m.countryIdx = 0
		for i, c := range m.countries {
			if c == m.cfg.Analytics.DefaultCountry {
				m.countryIdx = i
				break
			}
		}
		if len(m.countries) > 0 {
			return m, m.loadSeriesCmd(m.countries[m.countryIdx])
		}
		return m, nil

	case seriesLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("could not load dataset for %s", msg.country)
			m.series = nil
			return m, nil
		}
		m.series = msg.data
		years := dataset.Years(msg.data)
		if len(years) > 0 {
			m.yearEnd = years[len(years)-1]
			m.yearStart = m.yearEnd - 29
			if m.yearStart < years[0] {
				m.yearStart = years[0]
			}
		}
		return m, nil

	case pagerClosedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("pager failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.page == PageForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.page == PageForm {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "1":
		m.switchPage(PageDashboard)
	case "2":
		m.switchPage(PageActivities)
	case "3":
		m.switchPage(PageAnalytics)
	case "4":
		m.switchPage(PageSettings)
	case "tab":
		m.switchPage(m.nextPage())
	case "m":
		m.menu.ToggleCollapse()
	case "t":
		m.theme.ToggleMode()
	case "c":
		m.cycleScheme()
	case "e":
		m.showEventLog = !m.showEventLog
	case "L":
		return m, m.openLogPager()
	}

	switch m.page {
	case PageActivities:
		return m.handleActivitiesKey(msg)
	case PageAnalytics:
		return m.handleAnalyticsKey(msg)
	case PageSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m *Model) nextPage() Page {
	switch m.page {
	case PageDashboard:
		return PageActivities
	case PageActivities:
		return PageAnalytics
	case PageAnalytics:
		return PageSettings
	default:
		return PageDashboard
	}
}

func (m *Model) switchPage(page Page) {
	if page == m.page {
		return
	}
	m.page = page
	m.status = ""
	m.queue.Enqueue(domain.PageChangedEvent{Page: fmt.Sprintf("%d", page), Title: pageTitles[page]})
}

func (m *Model) cycleScheme() {
	order := []domain.ColorScheme{domain.SchemeBlue, domain.SchemeGreen, domain.SchemePurple, domain.SchemeAmber}
	current := m.theme.Scheme()
	for i, s := range order {
		if s == current {
			m.theme.SetScheme(order[(i+1)%len(order)])
			return
		}
	}
	m.theme.SetScheme(order[0])
}

func (m *Model) handleActivitiesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.activities)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a", "n":
		m.form = newActivityForm()
		m.form.cycleFocus(0)
		m.page = PageForm
	case "enter":
		if m.cursor < len(m.activities) {
			m.form = formForEdit(m.activities[m.cursor])
			m.form.cycleFocus(0)
			m.page = PageForm
		}
	case "d", "x":
		if m.cursor < len(m.activities) {
			m.activity.Delete(m.activities[m.cursor].ID)
			m.status = "activity deleted"
		}
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.page = PageActivities
		return m, nil
	case "tab", "down":
		m.form.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.form.cycleFocus(-1)
		return m, nil
	case "left":
		if m.form.focus == fieldType {
			m.form.cycleType(-1)
			return m, nil
		}
	case "right":
		if m.form.focus == fieldType {
			m.form.cycleType(1)
			return m, nil
		}
	case "enter":
		a, ok := m.form.submit()
		if !ok {
			return m, nil
		}
		if a.ID == "" {
			added := m.activity.Add(a)
			m.status = fmt.Sprintf("logged %s", describeActivity(added))
		} else {
			m.activity.Update(a)
			m.status = "activity updated"
		}
		m.page = PageActivities
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m *Model) handleAnalyticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.countries) == 0 {
		return m, nil
	}
	switch msg.String() {
	case "left", "h":
		m.countryIdx = (m.countryIdx - 1 + len(m.countries)) % len(m.countries)
		return m, m.loadSeriesCmd(m.countries[m.countryIdx])
	case "right", "l":
		m.countryIdx = (m.countryIdx + 1) % len(m.countries)
		return m, m.loadSeriesCmd(m.countries[m.countryIdx])
	case "-":
		m.yearStart += 10
		if m.yearStart > m.yearEnd {
			m.yearStart = m.yearEnd
		}
	case "=", "+":
		m.yearStart -= 10
	}
	return m, nil
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.settingFields()
	switch msg.String() {
	case "j", "down":
		if m.settingsCursor < len(fields)-1 {
			m.settingsCursor++
		}
	case "k", "up":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case "enter", " ":
		fields[m.settingsCursor].cycle()
		m.status = ""
	case "r":
		m.settings.ResetToDefaults()
		m.status = "settings reset to defaults"
	}
	return m, nil
}

// settingField pairs a display row with its cycle action.
type settingField struct {
	name  string
	value string
	cycle func()
}

func (m *Model) settingFields() []settingField {
	s := m.settings.Settings()
	return []settingField{
		{"Data collection", boolLabel(s.DataCollection), func() { m.settings.SetDataCollection(!s.DataCollection) }},
		{"Anonymize data", boolLabel(s.AnonymizeData), func() { m.settings.SetAnonymizeData(!s.AnonymizeData) }},
		{"Retention (days)", string(s.StorageLimit), func() {
			m.settings.SetStorageLimit(cycleEnum(s.StorageLimit,
				domain.Storage30Days, domain.Storage90Days, domain.Storage180Days, domain.Storage365Days, domain.StorageUnlimited))
		}},
		{"Units", string(s.Units), func() {
			m.settings.SetUnits(cycleEnum(s.Units, domain.UnitsMetric, domain.UnitsImperial))
		}},
		{"Date format", string(s.DateFormat), func() {
			m.settings.SetDateFormat(cycleEnum(s.DateFormat, domain.DateFormatUS, domain.DateFormatEU, domain.DateFormatISO))
		}},
		{"Email digest", string(s.EmailDigest), func() {
			m.settings.SetEmailDigest(cycleEnum(s.EmailDigest, domain.DigestDaily, domain.DigestWeekly, domain.DigestMonthly, domain.DigestNever))
		}},
		{"Push notifications", boolLabel(s.PushNotifications), func() { m.settings.SetPushNotifications(!s.PushNotifications) }},
	}
}

func cycleEnum[T comparable](current T, values ...T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// recordEvent appends a bus event to the diagnostic panel, newest first.
func (m *Model) recordEvent(e eventbus.Event) {
	entry := logEntry{
		when:   time.Now(),
		event:  e.Type(),
		detail: summarizeEvent(e),
	}
	m.eventLog = append([]logEntry{entry}, m.eventLog...)
	if len(m.eventLog) > maxEventLog {
		m.eventLog = m.eventLog[:maxEventLog]
	}
}

func summarizeEvent(e eventbus.Event) string {
	switch e := e.(type) {
	case domain.ActivityAddedEvent:
		return describeActivity(e.Activity)
	case domain.ActivityUpdatedEvent:
		return describeActivity(e.Activity)
	case domain.ActivityDeletedEvent:
		return fmt.Sprintf("id=%s", e.ID)
	case domain.ThemeChangedEvent:
		return string(e.Theme)
	case domain.SettingsUpdatedEvent:
		return fmt.Sprintf("%s=%v", e.Key, e.Value)
	case domain.MenuToggledEvent:
		return fmt.Sprintf("collapsed=%t", e.Collapsed)
	case domain.PageChangedEvent:
		return e.Title
	default:
		return ""
	}
}
