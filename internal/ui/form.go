package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"carbontrack/internal/catalog"
	"carbontrack/internal/domain"
)

// Form field indices. The type selector sits in front of the text inputs.
const (
	fieldType = iota
	fieldDate
	fieldQuantity
	fieldNotes
	fieldCustomName
	fieldCustomUnit
	fieldCustomFactor
	fieldCount
)

// activityForm collects one activity submission. Validation happens here, at
// the form boundary: the store stores whatever it is handed.
type activityForm struct {
	editingID string // non-empty when editing an existing record
	typeIdx   int    // index into catalog.ActivityTypes; one past the end means custom
	inputs    [fieldCount]textinput.Model
	focus     int
	errMsg    string
}

func newActivityForm() activityForm {
	f := activityForm{}

	mk := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = 30
		return in
	}

	f.inputs[fieldType] = textinput.New() // placeholder slot, the selector renders itself
	f.inputs[fieldDate] = mk("YYYY-MM-DD", 10)
	f.inputs[fieldDate].SetValue(time.Now().Format("2006-01-02"))
	f.inputs[fieldQuantity] = mk("0", 12)
	f.inputs[fieldNotes] = mk("optional notes", 120)
	f.inputs[fieldCustomName] = mk("activity name", 60)
	f.inputs[fieldCustomUnit] = mk("unit, e.g. kg", 20)
	f.inputs[fieldCustomFactor] = mk("kg CO2e per unit", 12)

	f.focus = fieldType
	return f
}

func formForEdit(a domain.Activity) activityForm {
	f := newActivityForm()
	f.editingID = a.ID
	f.inputs[fieldDate].SetValue(truncateToDay(a.Date))
	f.inputs[fieldQuantity].SetValue(strconv.FormatFloat(a.Quantity, 'f', -1, 64))
	f.inputs[fieldNotes].SetValue(a.Notes)

	if a.IsCustom {
		f.typeIdx = len(catalog.ActivityTypes)
		f.inputs[fieldCustomName].SetValue(a.CustomName)
		f.inputs[fieldCustomUnit].SetValue(a.CustomUnit)
		f.inputs[fieldCustomFactor].SetValue(strconv.FormatFloat(a.CustomCarbonPerUnit, 'f', -1, 64))
	} else {
		for i, t := range catalog.ActivityTypes {
			if t.ID == a.TypeID {
				f.typeIdx = i
				break
			}
		}
	}
	return f
}

func (f *activityForm) isCustom() bool {
	return f.typeIdx >= len(catalog.ActivityTypes)
}

// fields returns the focusable field indices for the current type selection.
func (f *activityForm) fields() []int {
	base := []int{fieldType, fieldDate, fieldQuantity, fieldNotes}
	if f.isCustom() {
		base = append(base, fieldCustomName, fieldCustomUnit, fieldCustomFactor)
	}
	return base
}

func (f *activityForm) cycleFocus(delta int) {
	fields := f.fields()
	pos := 0
	for i, idx := range fields {
		if idx == f.focus {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	f.focus = fields[pos]

	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *activityForm) cycleType(delta int) {
	// One extra slot past the catalog for the custom activity option.
	n := len(catalog.ActivityTypes) + 1
	f.typeIdx = (f.typeIdx + delta + n) % n
}

func (f *activityForm) update(msg tea.Msg) tea.Cmd {
	if f.focus == fieldType {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// submit validates the form and builds the activity record. The date keeps
// its YYYY-MM-DD shape; the store treats it as the start of that day.
func (f *activityForm) submit() (domain.Activity, bool) {
	date := strings.TrimSpace(f.inputs[fieldDate].Value())
	if _, err := time.Parse("2006-01-02", date); err != nil {
		f.errMsg = "date must be YYYY-MM-DD"
		return domain.Activity{}, false
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[fieldQuantity].Value()), 64)
	if err != nil || quantity <= 0 {
		f.errMsg = "quantity must be a positive number"
		return domain.Activity{}, false
	}

	a := domain.Activity{
		ID:       f.editingID,
		Date:     date,
		Quantity: quantity,
		Notes:    strings.TrimSpace(f.inputs[fieldNotes].Value()),
	}

	if f.isCustom() {
		a.IsCustom = true
		a.CustomName = strings.TrimSpace(f.inputs[fieldCustomName].Value())
		a.CustomUnit = strings.TrimSpace(f.inputs[fieldCustomUnit].Value())
		factor, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[fieldCustomFactor].Value()), 64)
		if err != nil {
			f.errMsg = "carbon factor must be a number"
			return domain.Activity{}, false
		}
		a.CustomCarbonPerUnit = factor
		if !a.WellFormed(catalog.Exists) {
			f.errMsg = "custom activities need a name, a unit and a positive carbon factor"
			return domain.Activity{}, false
		}
	} else {
		a.TypeID = catalog.ActivityTypes[f.typeIdx].ID
	}

	f.errMsg = ""
	return a, true
}

func (f *activityForm) typeLabel() string {
	if f.isCustom() {
		return "Custom activity"
	}
	t := catalog.ActivityTypes[f.typeIdx]
	return fmt.Sprintf("%s (%s)", t.Name, t.Unit)
}

func truncateToDay(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}
