package engine

// Selection holds the selected-region identity and whether the view is
// restricted to it. Selecting always sets both; clearing resets both.
type Selection struct {
	selectedID   string
	onlySelected bool
}

func (s *Selection) Select(id string) {
	s.selectedID = id
	s.onlySelected = true
}

func (s *Selection) Clear() {
	s.selectedID = ""
	s.onlySelected = false
}

func (s Selection) SelectedID() string { return s.selectedID }
func (s Selection) OnlySelected() bool { return s.onlySelected }
func (s Selection) Active() bool       { return s.selectedID != "" }
