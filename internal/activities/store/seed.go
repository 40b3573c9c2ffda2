package store

import (
	"context"
	"fmt"

	"mergington/internal/activities/models"
)

type seedActivity struct {
	name         string
	description  string
	schedule     string
	max          int
	participants []string
}

var defaultActivities = []seedActivity{
	{"Chess Club", "Learn strategies and compete in chess tournaments", "Fridays, 3:30 PM - 5:00 PM", 12,
		[]string{"michael@mergington.edu", "daniel@mergington.edu"}},
	{"Programming Class", "Learn programming fundamentals and build software projects", "Tuesdays and Thursdays, 3:30 PM - 4:30 PM", 20,
		[]string{"emma@mergington.edu", "sophia@mergington.edu"}},
	{"Gym Class", "Physical education and sports activities", "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM", 30,
		[]string{"john@mergington.edu", "olivia@mergington.edu"}},
	{"Soccer Team", "Competitive soccer practices and matches", "Mondays, Wednesdays, 4:00 PM - 6:00 PM", 22,
		[]string{"liam@mergington.edu", "noah@mergington.edu"}},
	{"Swimming Club", "Lap training, technique, and swim meets", "Tuesdays and Thursdays, 5:00 PM - 6:30 PM", 16,
		[]string{"ava@mergington.edu", "isabella@mergington.edu"}},
	{"Drama Club", "Acting, stagecraft, and school productions", "Tuesdays, 4:00 PM - 6:00 PM", 25,
		[]string{"charlotte@mergington.edu", "amelia@mergington.edu"}},
	{"Choir", "Vocal training, ensemble rehearsals, and performances", "Wednesdays, 3:45 PM - 5:15 PM", 30,
		[]string{"henry@mergington.edu", "ethan@mergington.edu"}},
	{"Debate Team", "Practice formal debate, research, and tournaments", "Thursdays, 4:00 PM - 6:00 PM", 18,
		[]string{"oliver@mergington.edu", "jack@mergington.edu"}},
	{"Math Club", "Problem solving, math competitions, and peer tutoring", "Fridays, 2:30 PM - 4:00 PM", 20,
		[]string{"lucas@mergington.edu", "mia@mergington.edu"}},
}

// SeedDefaultActivities loads the school's standing activity catalog.
func SeedDefaultActivities(ctx context.Context, s *InMemory) error {
	for _, sa := range defaultActivities {
		a, err := models.NewActivity(sa.name, sa.description, sa.schedule, sa.max, sa.participants)
		if err != nil {
			return fmt.Errorf("seed %q: %w", sa.name, err)
		}
		if err := s.Create(ctx, a); err != nil {
			return fmt.Errorf("seed %q: %w", sa.name, err)
		}
	}
	return nil
}
