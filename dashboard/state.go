// Package dashboard holds the filter and selection state of the patient dashboard.
//
// State is a plain value owned by a single session. Every transition replaces one field,
// no input is ever rejected, and the visible list is always derived from the current
// collection rather than stored.
package dashboard

import (
	"github.com/medidesk/console/patients"
)

type State struct {
	ActiveCategory patients.CategoryId `json:"activeCategory" bson:"activeCategory"`
	SearchQuery    string              `json:"searchQuery" bson:"searchQuery"`
	SelectedId     string              `json:"selectedId,omitempty" bson:"selectedId,omitempty"`
	PanelOpen      bool                `json:"panelOpen" bson:"panelOpen"`
}

func NewState() State {
	return State{ActiveCategory: patients.CategoryAll}
}

// SetSearchQuery replaces the search query. The selection is left untouched.
func (s *State) SetSearchQuery(query string) {
	s.SearchQuery = query
}

// SetActiveCategory replaces the active tab. Unknown ids are accepted and yield an empty list.
func (s *State) SetActiveCategory(id patients.CategoryId) {
	s.ActiveCategory = id
}

func (s *State) SelectPatient(p patients.Patient) {
	s.SelectedId = p.Id
	s.PanelOpen = true
}

// ClosePanel hides the detail panel but keeps the selection
func (s *State) ClosePanel() {
	s.PanelOpen = false
}

func (s State) HasSelection() bool {
	return s.SelectedId != ""
}

type View struct {
	Categories     []patients.CategoryCount
	ActiveCategory patients.CategoryId
	SearchQuery    string
	Visible        []patients.Patient
	// Selected is the patient shown in the detail panel, nil when the panel is closed or
	// the selected patient is no longer part of the collection
	Selected *patients.Patient
	Total    int
}

// View derives what the dashboard displays for the given collection
func (s State) View(collection []patients.Patient) View {
	view := View{
		Categories:     patients.Counts(collection),
		ActiveCategory: s.ActiveCategory,
		SearchQuery:    s.SearchQuery,
		Visible:        patients.Filter(collection, s.ActiveCategory, s.SearchQuery),
		Total:          len(collection),
	}
	if s.PanelOpen && s.HasSelection() {
		if p, ok := patients.Find(collection, s.SelectedId); ok {
			selected := *p
			view.Selected = &selected
		}
	}
	return view
}

// ViewSnapshot is View using the counts already computed for the snapshot
func (s State) ViewSnapshot(snapshot patients.Snapshot) View {
	view := s.View(snapshot.Patients)
	if snapshot.Counts != nil {
		view.Categories = snapshot.Counts
	}
	return view
}

// IsActive reports whether the given tab is the active one
func (v View) IsActive(id patients.CategoryId) bool {
	return v.ActiveCategory == id
}
