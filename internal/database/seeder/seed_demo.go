package seeder

import (
	"context"

	"jobboard/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "password123"

var (
	demoRecruiterID = uuid.MustParse("6f1c1d2e-0d6a-4a53-9a43-1f0b7a3f6c01")
	demoSeekerID    = uuid.MustParse("6f1c1d2e-0d6a-4a53-9a43-1f0b7a3f6c02")
)

// DemoUsersSeeder creates one recruiter and one job seeker, both with the
// password "password123".
type DemoUsersSeeder struct{}

func (DemoUsersSeeder) Name() string { return "demo_users" }

func (DemoUsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "full_name", "role"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	items := []struct {
		ID       uuid.UUID
		Email    string
		FullName string
		Role     string
	}{
		{ID: demoRecruiterID, Email: "recruiter@demo.local", FullName: "Demo Recruiter", Role: "recruiter"},
		{ID: demoSeekerID, Email: "seeker@demo.local", FullName: "Demo Seeker", Role: "jobseeker"},
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			if _, err := tx.Exec(ctx,
				`INSERT INTO users (id, email, password_hash, full_name, role) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING`,
				it.ID, it.Email, string(hash), it.FullName, it.Role,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// DemoJobsSeeder posts a few jobs for the demo recruiter, one of them still
// waiting for moderation.
type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "recruiter_id", "title", "skills", "approval_status"); err != nil {
		return err
	}

	items := []struct {
		ID       string
		Title    string
		Company  string
		Location string
		Type     string
		Category string
		Skills   []string
		Approval string
	}{
		{"0b4f9a6e-8c1e-4d0c-b7a5-2c9e5a1d7e01", "Backend Engineer", "Acme", "Berlin", "full-time", "engineering", []string{"Go", "PostgreSQL", "Docker"}, "approved"},
		{"0b4f9a6e-8c1e-4d0c-b7a5-2c9e5a1d7e02", "Python Developer", "Initech", "Remote", "remote", "engineering", []string{"Python", "Django", "AWS"}, "approved"},
		{"0b4f9a6e-8c1e-4d0c-b7a5-2c9e5a1d7e03", "Product Designer", "Globex", "Lisbon", "contract", "design", []string{"Figma", "CSS"}, "pending"},
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		var approved int
		for _, it := range items {
			n, err := tx.Exec(ctx,
				`INSERT INTO jobs (id, recruiter_id, title, company_name, location, job_type, job_category, skills, approval_status)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				 ON CONFLICT (id) DO NOTHING`,
				uuid.MustParse(it.ID), demoRecruiterID, it.Title, it.Company, it.Location, it.Type, it.Category, it.Skills, it.Approval,
			)
			if err != nil {
				return err
			}
			if n > 0 && it.Approval == "approved" {
				approved++
			}
		}
		if approved == 0 {
			return nil
		}
		_, err := tx.Exec(ctx, `UPDATE users SET jobs_posted = jobs_posted + $2 WHERE id = $1`, demoRecruiterID, approved)
		return err
	})
}
