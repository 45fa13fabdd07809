package regions

// Allocation partitions the candidate pincodes of one district into a selected
// set and the available remainder. Selected is the only stored collection; the
// available list is derived from it, so a code can never sit in both.
type Allocation struct {
	candidates []string
	index      map[string]bool
	selected   []string
}

// NewAllocation builds the partition. Selected codes that are not candidates are dropped.
func NewAllocation(candidates, selected []string) *Allocation {
	a := &Allocation{
		candidates: dedupe(candidates),
		index:      make(map[string]bool, len(candidates)),
	}
	for _, code := range a.candidates {
		a.index[code] = true
	}
	for _, code := range dedupe(selected) {
		if a.index[code] {
			a.selected = append(a.selected, code)
		}
	}
	return a
}

// Available returns the candidates that are not selected, in candidate order
func (a *Allocation) Available() []string {
	chosen := make(map[string]bool, len(a.selected))
	for _, code := range a.selected {
		chosen[code] = true
	}

	available := make([]string, 0, len(a.candidates)-len(a.selected))
	for _, code := range a.candidates {
		if !chosen[code] {
			available = append(available, code)
		}
	}
	return available
}

// Selected returns the selected codes in the order they were picked
func (a *Allocation) Selected() []string {
	return append([]string{}, a.selected...)
}

// Toggle moves code to the other collection. It reports false, leaving both
// collections untouched, when code is not a candidate of the district.
func (a *Allocation) Toggle(code string) bool {
	if !a.index[code] {
		return false
	}
	for i, c := range a.selected {
		if c == code {
			a.selected = append(a.selected[:i:i], a.selected[i+1:]...)
			return true
		}
	}
	a.selected = append(a.selected, code)
	return true
}

// SelectAll moves every available code to the selection. When nothing is
// available it works in reverse and empties the selection.
func (a *Allocation) SelectAll() {
	available := a.Available()
	if len(available) == 0 {
		a.selected = nil
		return
	}
	a.selected = append(a.selected, available...)
}

// AllSelected reports whether the next SelectAll will deselect
func (a *Allocation) AllSelected() bool {
	return len(a.selected) > 0 && len(a.selected) == len(a.candidates)
}
