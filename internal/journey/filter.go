package journey

import "github.com/ShayCichocki/jrny/pkg/models"

// ActiveJourneys returns the journeys whose status is Active, in input order.
func ActiveJourneys(journeys []models.Journey) []models.Journey {
	var out []models.Journey
	for _, j := range journeys {
		if j.Status == models.JourneyActive {
			out = append(out, j)
		}
	}
	return out
}

// StoryJourneys returns the Active journeys that have daily tasks to show.
func StoryJourneys(journeys []models.Journey) []models.Journey {
	var out []models.Journey
	for _, j := range journeys {
		if j.Status == models.JourneyActive && len(j.DailyTasks) > 0 {
			out = append(out, j)
		}
	}
	return out
}
