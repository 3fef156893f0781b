package store

import (
	"context"
	"fmt"
	"time"

	"github.com/campusgo/assistant/domain"
)

// SeedDemoData populates the store with demo campus data for local
// development. Inserts are idempotent.
func (s *SQLiteStore) SeedDemoData(ctx context.Context) error {
	templates := []domain.FAQTemplate{
		{
			ID:       "faq_library_hours",
			Keywords: []string{"library", "hours", "open"},
			Question: "What are the library hours?",
			Answer:   "The main library is open Monday-Friday 8am-11pm, and weekends 10am-8pm.",
			Category: "facilities",
			Priority: 10,
		},
		{
			ID:       "faq_wifi",
			Keywords: []string{"wifi", "internet", "connect"},
			Question: "How do I connect to campus wifi?",
			Answer:   "Connect to the CampusNet network and sign in with your student ID and password.",
			Category: "it",
			Priority: 8,
		},
		{
			ID:       "faq_registration",
			Keywords: []string{"register", "registration", "enroll"},
			Question: "How do I register for classes?",
			Answer:   "Course registration opens through the student portal two weeks before each semester.",
			Category: "academics",
			Priority: 6,
		},
		{
			ID:       "faq_gym_hours",
			Keywords: []string{"gym", "fitness", "recreation"},
			Question: "When is the gym open?",
			Answer:   "The recreation center is open daily from 6am to midnight.",
			Category: "facilities",
			Priority: 5,
		},
	}
	for i := range templates {
		if err := s.CreateFAQTemplate(ctx, &templates[i]); err != nil {
			return fmt.Errorf("failed to seed faq template %s: %w", templates[i].ID, err)
		}
	}

	dining := []domain.DiningLocation{
		{ID: "din_commons", Name: "The Commons", Hours: "7am-9pm", IsOpen: true},
		{ID: "din_north", Name: "North Hall Cafe", Hours: "8am-6pm", IsOpen: true},
		{ID: "din_latenight", Name: "Late Night Grill", Hours: "8pm-2am", IsOpen: false},
	}
	for _, d := range dining {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO dining_locations (id, name, hours, is_open) VALUES (?, ?, ?, ?)`,
			d.ID, d.Name, d.Hours, d.IsOpen); err != nil {
			return fmt.Errorf("failed to seed dining location %s: %w", d.ID, err)
		}
	}

	buildings := []domain.Building{
		{ID: "bld_sci", Name: "Science Center", Code: "SCI", Address: "100 University Ave"},
		{ID: "bld_lib", Name: "Main Library", Code: "LIB", Address: "200 University Ave"},
		{ID: "bld_eng", Name: "Engineering Hall", Code: "ENG", Address: "300 Campus Dr"},
	}
	for _, b := range buildings {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO buildings (id, name, code, address) VALUES (?, ?, ?, ?)`,
			b.ID, b.Name, b.Code, b.Address); err != nil {
			return fmt.Errorf("failed to seed building %s: %w", b.ID, err)
		}
	}

	now := time.Now()
	events := []domain.CampusEvent{
		{ID: "evt_career", Title: "Career Fair", Location: "Student Union", StartTime: now.Add(48 * time.Hour)},
		{ID: "evt_concert", Title: "Spring Concert", Location: "Main Quad", StartTime: now.Add(7 * 24 * time.Hour)},
		{ID: "evt_hackathon", Title: "Hackathon Kickoff", Location: "Engineering Hall", StartTime: now.Add(14 * 24 * time.Hour)},
	}
	for _, e := range events {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO campus_events (id, title, location, start_time) VALUES (?, ?, ?, ?)`,
			e.ID, e.Title, e.Location, e.StartTime); err != nil {
			return fmt.Errorf("failed to seed event %s: %w", e.ID, err)
		}
	}

	courses := []domain.Course{
		{ID: "crs_cs101", Code: "CS101", Name: "Intro to Computer Science", Instructor: "Dr. Chen", Schedule: "MWF 10am"},
		{ID: "crs_math201", Code: "MATH201", Name: "Linear Algebra", Instructor: "Dr. Okafor", Schedule: "TTh 2pm"},
		{ID: "crs_hist110", Code: "HIST110", Name: "World History", Instructor: "Dr. Alvarez", Schedule: "MWF 1pm"},
	}
	for _, c := range courses {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO courses (id, code, name, instructor, schedule) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Code, c.Name, c.Instructor, c.Schedule); err != nil {
			return fmt.Errorf("failed to seed course %s: %w", c.ID, err)
		}
	}

	return nil
}
