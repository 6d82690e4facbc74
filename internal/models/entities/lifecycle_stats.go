package entities

// ApplicationCount is one row of the per-track, per-status application tally.
type ApplicationCount struct {
	Track  string `db:"track" json:"track"`
	Status string `db:"status" json:"status"`
	Total  int64  `db:"total" json:"total"`
}

type RequestCount struct {
	Status string `db:"status" json:"status"`
	Total  int64  `db:"total" json:"total"`
}

// LifecycleStats is the admin snapshot read by the monitor worker and /admin/stats.
type LifecycleStats struct {
	Applications []ApplicationCount `json:"applications"`
	Requests     []RequestCount     `json:"requests"`
	Roadmaps     int64              `json:"roadmaps"`
}

// PendingApplications returns the pending count for track.
func (s *LifecycleStats) PendingApplications(track string) int64 {
	for _, c := range s.Applications {
		if c.Track == track && c.Status == "pending" {
			return c.Total
		}
	}
	return 0
}

func (s *LifecycleStats) PendingRequests() int64 {
	for _, c := range s.Requests {
		if c.Status == "pending" {
			return c.Total
		}
	}
	return 0
}
