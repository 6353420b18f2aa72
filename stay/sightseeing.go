package stay

import "tripdeck/models"

// Spots returns the sightseeing for a day. Without an override every spot of
// the city is shown. With one, only the selected names are shown in selection
// order; an empty selection shows nothing. Selected names that are no longer
// in the catalog are kept with just their name.
func Spots(c *models.Catalog, city string, dayIndex int, overrides models.SightseeingOverrides) []models.Sightseeing {
	all := c.SpotsIn(city)
	selected, ok := overrides[dayIndex]
	if !ok {
		out := make([]models.Sightseeing, len(all))
		copy(out, all)
		return out
	}

	out := make([]models.Sightseeing, 0, len(selected))
	for _, name := range selected {
		spot := models.Sightseeing{Name: name}
		for _, s := range all {
			if s.Name == name {
				spot = s
				break
			}
		}
		out = append(out, spot)
	}
	return out
}

var mealPlans = map[string]string{
	"EP":  "Room Only",
	"CP":  "Breakfast",
	"MAP": "Breakfast & Dinner",
	"AP":  "All Meals",
}

// MealPlanLabel turns a hotel meal-plan code into display text. Unknown codes
// are shown as they are.
func MealPlanLabel(code string) string {
	if label, ok := mealPlans[code]; ok {
		return label
	}
	return code
}
