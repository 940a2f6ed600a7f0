// Package catalog holds the static activity-type reference data. The tables
// are read-only; stores consume them by id lookup and never mutate them.
// Emission factors follow EPA figures where available.
package catalog

// Category groups related activity types.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// ActivityType defines a predefined activity and its emission factor in
// kg CO2e per unit. Negative factors represent carbon savings.
type ActivityType struct {
	ID            string
	CategoryID    string
	Name          string
	CarbonPerUnit float64
	Unit          string
	Description   string
}

var Categories = []Category{
	{ID: "transportation", Name: "Transportation", Icon: "🚗", Color: "#3b82f6"},
	{ID: "food", Name: "Food", Icon: "🍽", Color: "#10b981"},
	{ID: "home", Name: "Home", Icon: "🏠", Color: "#ef4444"},
	{ID: "energy", Name: "Energy", Icon: "⚡", Color: "#f59e0b"},
	{ID: "waste", Name: "Waste", Icon: "🗑", Color: "#8b5cf6"},
}

var ActivityTypes = []ActivityType{
	// Transportation (EPA figures)
	{ID: "car", CategoryID: "transportation", Name: "Car Travel", CarbonPerUnit: 0.404, Unit: "miles",
		Description: "Distance traveled by car (based on average fuel economy from FHWA)"},
	{ID: "bus", CategoryID: "transportation", Name: "Bus Travel", CarbonPerUnit: 0.105, Unit: "km",
		Description: "Distance traveled by bus"},
	{ID: "train", CategoryID: "transportation", Name: "Train Travel", CarbonPerUnit: 0.041, Unit: "km",
		Description: "Distance traveled by train"},
	{ID: "flight", CategoryID: "transportation", Name: "Flight", CarbonPerUnit: 0.255, Unit: "km",
		Description: "Distance traveled by plane (avoiding airplane travel is a high-impact action)"},

	// Food
	{ID: "beef", CategoryID: "food", Name: "Beef Consumption", CarbonPerUnit: 27, Unit: "kg",
		Description: "Amount of beef consumed"},
	{ID: "chicken", CategoryID: "food", Name: "Chicken Consumption", CarbonPerUnit: 6.9, Unit: "kg",
		Description: "Amount of chicken consumed"},
	{ID: "veg_meal", CategoryID: "food", Name: "Vegetarian Meal", CarbonPerUnit: 2.5, Unit: "meal",
		Description: "One vegetarian meal (plant-based diet is a high-impact action)"},

	// Home energy (EPA figures)
	{ID: "electricity", CategoryID: "energy", Name: "Electricity Usage", CarbonPerUnit: 0.455, Unit: "kWh",
		Description: "Kilowatt-hours of electricity used (typical household: 881 kWh/month)"},
	{ID: "natural_gas", CategoryID: "energy", Name: "Natural Gas Usage", CarbonPerUnit: 0.054, Unit: "cubic feet",
		Description: "Cubic feet of natural gas used (typical household: 4,717 cubic feet/month)"},
	{ID: "fuel_oil", CategoryID: "energy", Name: "Fuel Oil Usage", CarbonPerUnit: 10.19, Unit: "gallon",
		Description: "Gallons of fuel oil used (typical household: 42 gallons/month)"},
	{ID: "propane", CategoryID: "energy", Name: "Propane Usage", CarbonPerUnit: 5.75, Unit: "gallon",
		Description: "Gallons of propane used (typical household: 32 gallons/month)"},

	// Waste (recycling credits are negative, per the EPA WARM model)
	{ID: "landfill", CategoryID: "waste", Name: "Landfill Waste", CarbonPerUnit: 0.5, Unit: "kg",
		Description: "Weight of waste sent to landfill"},
	{ID: "recycling_paper", CategoryID: "waste", Name: "Paper Recycling", CarbonPerUnit: -0.2, Unit: "kg",
		Description: "Weight of paper recycled"},
	{ID: "recycling_glass", CategoryID: "waste", Name: "Glass Recycling", CarbonPerUnit: -0.15, Unit: "kg",
		Description: "Weight of glass recycled"},
	{ID: "recycling_plastic", CategoryID: "waste", Name: "Plastic Recycling", CarbonPerUnit: -0.25, Unit: "kg",
		Description: "Weight of plastic recycled"},
	{ID: "recycling_metal", CategoryID: "waste", Name: "Metal Recycling", CarbonPerUnit: -0.3, Unit: "kg",
		Description: "Weight of metal recycled"},
}

var typesByID = func() map[string]ActivityType {
	m := make(map[string]ActivityType, len(ActivityTypes))
	for _, t := range ActivityTypes {
		m[t.ID] = t
	}
	return m
}()

// Lookup returns the activity type with the given id.
func Lookup(id string) (ActivityType, bool) {
	t, ok := typesByID[id]
	return t, ok
}

// Exists reports whether an activity type with the given id is defined.
func Exists(id string) bool {
	_, ok := typesByID[id]
	return ok
}

// CategoryOf returns the category an activity type belongs to.
func CategoryOf(typeID string) (Category, bool) {
	t, ok := typesByID[typeID]
	if !ok {
		return Category{}, false
	}
	for _, c := range Categories {
		if c.ID == t.CategoryID {
			return c, true
		}
	}
	return Category{}, false
}

// TypesInCategory returns the activity types of one category, in table order.
func TypesInCategory(categoryID string) []ActivityType {
	var out []ActivityType
	for _, t := range ActivityTypes {
		if t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out
}
