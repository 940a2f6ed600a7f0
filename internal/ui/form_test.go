package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrack/internal/catalog"
	"carbontrack/internal/domain"
)

func TestFormSubmitPredefinedType(t *testing.T) {
	f := newActivityForm()
	f.typeIdx = 0 // car
	f.inputs[fieldDate].SetValue("2026-08-30")
	f.inputs[fieldQuantity].SetValue("12.5")
	f.inputs[fieldNotes].SetValue("commute")

	a, ok := f.submit()
	require.True(t, ok, f.errMsg)
	assert.Equal(t, "car", a.TypeID)
	assert.Equal(t, 12.5, a.Quantity)
	assert.Equal(t, "commute", a.Notes)
	assert.False(t, a.IsCustom)
}

func TestFormSubmitRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*activityForm)
		errLike string
	}{
		{"bad date", func(f *activityForm) {
			f.inputs[fieldDate].SetValue("30/08/2026")
		}, "date"},
		{"zero quantity", func(f *activityForm) {
			f.inputs[fieldQuantity].SetValue("0")
		}, "quantity"},
		{"negative quantity", func(f *activityForm) {
			f.inputs[fieldQuantity].SetValue("-3")
		}, "quantity"},
		{"custom without name", func(f *activityForm) {
			f.typeIdx = len(catalog.ActivityTypes)
			f.inputs[fieldCustomUnit].SetValue("kg")
			f.inputs[fieldCustomFactor].SetValue("1.5")
		}, "custom"},
		{"custom with non-positive factor", func(f *activityForm) {
			f.typeIdx = len(catalog.ActivityTypes)
			f.inputs[fieldCustomName].SetValue("Composting")
			f.inputs[fieldCustomUnit].SetValue("kg")
			f.inputs[fieldCustomFactor].SetValue("0")
		}, "custom"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newActivityForm()
			f.inputs[fieldDate].SetValue("2026-08-30")
			f.inputs[fieldQuantity].SetValue("1")
			tc.mutate(&f)

			_, ok := f.submit()
			assert.False(t, ok)
			assert.Contains(t, f.errMsg, tc.errLike)
		})
	}
}

func TestFormSubmitCustomActivity(t *testing.T) {
	f := newActivityForm()
	f.typeIdx = len(catalog.ActivityTypes)
	f.inputs[fieldDate].SetValue("2026-08-30")
	f.inputs[fieldQuantity].SetValue("3")
	f.inputs[fieldCustomName].SetValue("Home solar offset")
	f.inputs[fieldCustomUnit].SetValue("kWh")
	f.inputs[fieldCustomFactor].SetValue("2.5")

	a, ok := f.submit()
	require.True(t, ok, f.errMsg)
	assert.True(t, a.IsCustom)
	assert.Equal(t, "Home solar offset", a.CustomName)
	assert.Equal(t, 2.5, a.CustomCarbonPerUnit)
	assert.True(t, a.WellFormed(catalog.Exists))
}

func TestFormCycleTypeWrapsThroughCustom(t *testing.T) {
	f := newActivityForm()
	require.Zero(t, f.typeIdx)

	f.cycleType(-1)
	assert.True(t, f.isCustom(), "cycling back from the first type lands on the custom slot")

	f.cycleType(1)
	assert.Zero(t, f.typeIdx)
}

func TestFormForEditRestoresFields(t *testing.T) {
	a := domain.Activity{
		ID:       "abc",
		Date:     "2026-08-30T10:00:00Z",
		TypeID:   "flight",
		Quantity: 800,
		Notes:    "conference",
	}
	f := formForEdit(a)

	assert.Equal(t, "abc", f.editingID)
	assert.Equal(t, "2026-08-30", f.inputs[fieldDate].Value())
	assert.Equal(t, "800", f.inputs[fieldQuantity].Value())
	assert.Equal(t, "flight", catalog.ActivityTypes[f.typeIdx].ID)

	got, ok := f.submit()
	require.True(t, ok, f.errMsg)
	assert.Equal(t, "abc", got.ID, "editing keeps the record id")
	assert.Equal(t, "flight", got.TypeID)
}
