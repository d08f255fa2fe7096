package weather

// Label is one of the weather categories the classifier predicts.
type Label string

const (
	Cloudy       Label = "Cloudy"
	Cold         Label = "Cold"
	Rainy        Label = "Rainy"
	Sunny        Label = "Sunny"
	PartlyCloudy Label = "Partly Cloudy"
)

// categoryTable is index-aligned with the model output. Order must not change.
var categoryTable = [...]Label{Cloudy, Cold, Rainy, Sunny, PartlyCloudy}

// CategoryCount is the number of scores the model emits.
const CategoryCount = len(categoryTable)

// Categories returns a copy of the category table in model output order.
func Categories() []Label {
	out := make([]Label, CategoryCount)
	copy(out, categoryTable[:])
	return out
}

// CategoryAt maps an output index to its label. Out of range indexes fall back to the first category.
func CategoryAt(index int) Label {
	if index < 0 || index >= CategoryCount {
		return categoryTable[0]
	}
	return categoryTable[index]
}

var icons = map[Label]string{
	Sunny:        "sunny",
	Cloudy:       "cloudy",
	PartlyCloudy: "partly_cloudy",
	Rainy:        "rainy",
	Cold:         "cold",
}

// Icon returns the icon resource name for the label, or "" when there is none.
func (l Label) Icon() string {
	return icons[l]
}

func (l Label) String() string { return string(l) }
