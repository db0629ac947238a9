package ecs

// intersect returns the ids present in every set. A nil set yields nothing.
func intersect(sets ...*SparseSet) []entityID {
	if len(sets) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	out := make([]entityID, 0, sets[smallest].Len())
	for _, id := range sets[smallest].denseEntities {
		keep := true
		for i, s := range sets {
			if i != smallest && !s.has(id) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, id)
		}
	}
	return out
}
