package patients

// CategoryId identifies a dashboard tab. Ids are compared by plain string equality.
type CategoryId string

const (
	CategoryAll          CategoryId = "all-patients"
	CategoryCurrent      CategoryId = "current-patients"
	CategoryNew          CategoryId = "new-patients"
	CategoryDischarged   CategoryId = "discharged-patients"
	CategoryHighPriority CategoryId = "high-priority"
)

// Predicate reports whether a patient belongs to a category
type Predicate func(p Patient) bool

type Category struct {
	Id        CategoryId
	Label     string
	Predicate Predicate
}

type CategoryCount struct {
	Id    CategoryId
	Label string
	Count int
}

// Categories lists the known categories in tab order
var Categories = []Category{
	{Id: CategoryAll, Label: "All Patients", Predicate: func(Patient) bool { return true }},
	{Id: CategoryCurrent, Label: "Current Patients", Predicate: statusEquals(StatusCurrent)},
	{Id: CategoryNew, Label: "New Patients", Predicate: statusEquals(StatusNew)},
	{Id: CategoryDischarged, Label: "Discharged Patients", Predicate: statusEquals(StatusDischarged)},
	{Id: CategoryHighPriority, Label: "High Priority", Predicate: priorityEquals(PriorityHigh)},
}

func statusEquals(status string) Predicate {
	return func(p Patient) bool { return p.Status == status }
}

func priorityEquals(priority string) Predicate {
	return func(p Patient) bool { return p.Priority == priority }
}

func matchNone(Patient) bool { return false }

// LookupCategory returns the category with the given id
func LookupCategory(id CategoryId) (Category, bool) {
	for _, c := range Categories {
		if c.Id == id {
			return c, true
		}
	}
	return Category{}, false
}

// PredicateFor returns the predicate of a category. Unknown categories match no patient,
// so selecting one yields an empty list instead of an error.
func PredicateFor(id CategoryId) Predicate {
	if c, ok := LookupCategory(id); ok {
		return c.Predicate
	}
	return matchNone
}

// Counts returns the number of patients matching each known category, in tab order
func Counts(collection []Patient) []CategoryCount {
	counts := make([]CategoryCount, 0, len(Categories))
	for _, c := range Categories {
		count := 0
		for _, p := range collection {
			if c.Predicate(p) {
				count++
			}
		}
		counts = append(counts, CategoryCount{Id: c.Id, Label: c.Label, Count: count})
	}
	return counts
}
