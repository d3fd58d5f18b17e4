package scheduler

import "sort"

const dailyLoadWeight = 10

type candidate struct {
	key   slotKey
	score int
}

// rankSlot scores a (day, slot) for a cohort. Lower is better.
func rankSlot(load loadTracker, day, slot, cohort string) int {
	return load.get(cohort, day) * dailyLoadWeight
}

// rankCandidates returns every (day, slot) ordered by ascending score. Equal
// scores keep day-major input order.
func rankCandidates(days, slots []string, load loadTracker, cohort string) []candidate {
	candidates := make([]candidate, 0, len(days)*len(slots))
	for _, day := range days {
		for _, slot := range slots {
			candidates = append(candidates, candidate{
				key:   slotKey{Day: day, Slot: slot},
				score: rankSlot(load, day, slot, cohort),
			})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})
	return candidates
}
