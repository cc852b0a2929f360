package domain

// ModuleSelection is the editable module list behind the submission wizard.
// Entries keep the order in which they were first added and never hold a
// non-positive quantity.
type ModuleSelection struct {
	items []SelectedModule
}

// NewModuleSelection seeds a selection, dropping entries with quantity <= 0.
// A module listed twice keeps its first position and the last quantity.
func NewModuleSelection(modules ...SelectedModule) *ModuleSelection {
	s := &ModuleSelection{}
	for _, m := range modules {
		s.Set(m.SoftwareModule, m.Quantity)
	}
	return s
}

// Set adds, updates or, when qty <= 0, removes a module.
func (s *ModuleSelection) Set(module SoftwareModule, qty int) {
	idx := s.index(module.ID)
	switch {
	case qty <= 0 && idx >= 0:
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	case qty <= 0:
	case idx >= 0:
		s.items[idx].Quantity = qty
	default:
		s.items = append(s.items, SelectedModule{SoftwareModule: module, Quantity: qty})
	}
}

// Quantity returns the selected quantity for id, zero when absent.
func (s *ModuleSelection) Quantity(id string) int {
	if idx := s.index(id); idx >= 0 {
		return s.items[idx].Quantity
	}
	return 0
}

// Modules returns a copy of the current selection.
func (s *ModuleSelection) Modules() []SelectedModule {
	return append([]SelectedModule{}, s.items...)
}

// Total is ComputeTotal over the current selection.
func (s *ModuleSelection) Total() float64 {
	return ComputeTotal(s.items)
}

func (s *ModuleSelection) Len() int { return len(s.items) }

func (s *ModuleSelection) index(id string) int {
	for i, m := range s.items {
		if m.ID == id {
			return i
		}
	}
	return -1
}
