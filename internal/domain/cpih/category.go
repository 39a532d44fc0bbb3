package cpih

// Category is one of the fixed household budget categories tracked by the
// CPIH divisions dataset. The set and its order are fixed for the lifetime
// of the system: the order defines feature-vector column order, which must
// match the order the model artifacts were trained on.
type Category string

const (
	CategoryFood       Category = "Food"
	CategoryHousing    Category = "Housing"
	CategoryTransport  Category = "Transport"
	CategoryHealth     Category = "Health"
	CategoryRecreation Category = "Recreation"
	CategoryMisc       Category = "Misc"
)

// categories holds the canonical ordering. Do not reorder.
var categories = [...]Category{
	CategoryFood,
	CategoryHousing,
	CategoryTransport,
	CategoryHealth,
	CategoryRecreation,
	CategoryMisc,
}

// CategoryCount is the number of fixed budget categories
const CategoryCount = len(categories)

// FeatureCount is the length of the model feature vector:
// per-category index values followed by per-category normalized weights
const FeatureCount = 2 * CategoryCount

var labels = map[Category]string{
	CategoryFood:       "Food",
	CategoryHousing:    "Housing",
	CategoryTransport:  "Transport",
	CategoryHealth:     "Health",
	CategoryRecreation: "Recreation",
	CategoryMisc:       "Miscellaneous",
}

// Categories returns the fixed categories in canonical order
func Categories() []Category {
	out := make([]Category, CategoryCount)
	copy(out, categories[:])
	return out
}

// Valid checks if the category belongs to the fixed set
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryHousing, CategoryTransport,
		CategoryHealth, CategoryRecreation, CategoryMisc:
		return true
	}
	return false
}

// Label returns the human-readable display name
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// String returns string representation
func (c Category) String() string {
	return string(c)
}
