package spacedrep

// Proficiency maps a vocabulary item id to its review score. Missing items
// score 0.
type Proficiency map[string]int

// Score returns the item's proficiency.
func (p Proficiency) Score(itemID string) int {
	return p[itemID]
}

// Clone returns an independent copy.
func (p Proficiency) Clone() Proficiency {
	out := make(Proficiency, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// RecordOutcome returns a new map with the item's score moved by +1 for a
// correct answer or -1 otherwise. Scores never drop below zero and have no
// ceiling. The input map is not modified.
func RecordOutcome(prof Proficiency, itemID string, correct bool) Proficiency {
	out := prof.Clone()
	delta := -1
	if correct {
		delta = 1
	}
	out[itemID] = max(0, prof[itemID]+delta)
	return out
}
