package srs

import (
	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
)

// KindStats counts the reviews of one kind.
type KindStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Stats aggregates review events across a task collection.
type Stats struct {
	Total     int                             `json:"total"`
	Completed int                             `json:"completed"`
	Pending   int                             `json:"pending"`
	Overdue   int                             `json:"overdue"`
	ByKind    map[domain.ReviewKind]KindStats `json:"byKind"`
}

// ComputeStats counts every review of every task in one pass. Overdue only
// counts pending reviews due before today. ByKind always holds all four
// kinds.
func ComputeStats(tasks []domain.StudyTask, today calendar.Date) Stats {
	stats := Stats{ByKind: make(map[domain.ReviewKind]KindStats, len(domain.ReviewKinds))}
	for _, kind := range domain.ReviewKinds {
		stats.ByKind[kind] = KindStats{}
	}

	for _, t := range tasks {
		for _, r := range t.Reviews {
			stats.Total++
			ks := stats.ByKind[r.Kind]
			ks.Total++
			if r.Completed {
				stats.Completed++
				ks.Completed++
			} else {
				stats.Pending++
				if IsOverdue(r, today) {
					stats.Overdue++
				}
			}
			stats.ByKind[r.Kind] = ks
		}
	}

	return stats
}
