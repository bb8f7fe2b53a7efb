package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type demoJob struct {
	Title       string
	Company     string
	Location    string
	Type        job.Type
	Description string
	Salary      string
}

var demoJobs = []demoJob{
	{
		Title:       "Backend Engineer (Go)",
		Company:     "Acme",
		Location:    "Remote",
		Type:        job.TypeFullTime,
		Description: "Build and maintain Go services, REST APIs and PostgreSQL-backed systems.",
		Salary:      "$120k - $150k",
	},
	{
		Title:       "Product Designer",
		Company:     "Acme",
		Location:    "New York, NY",
		Type:        job.TypeContract,
		Description: "Own the design system and ship end-to-end flows in Figma.",
	},
	{
		Title:       "DevOps Engineer",
		Company:     "CloudWorks",
		Location:    "Berlin, DE",
		Type:        job.TypeFullTime,
		Description: "Operate CI/CD, Docker and Kubernetes for production workloads.",
		Salary:      "€80k",
	},
	{
		Title:       "Frontend Developer",
		Company:     "BuildFast",
		Location:    "Remote",
		Type:        job.TypePartTime,
		Description: "Ship product features in TypeScript and React with a focus on UI quality.",
	},
	{
		Title:       "Data Engineering Intern",
		Company:     "InsightWorks",
		Location:    "London, UK",
		Type:        job.TypeInternship,
		Description: "Help build data pipelines and tune PostgreSQL for analytics.",
		Salary:      "£2,000 / month",
	},
}

// DemoJobsSeeder posts a handful of listings owned by the demo user. Titles
// already posted by that user are skipped.
type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (DemoJobsSeeder) Requires() []Table {
	return []Table{{Name: "jobs", Columns: []string{
		"id",
		"title",
		"company",
		"location",
		"type",
		"description",
		"salary",
		"posted_at",
		"posted_by_id",
	}}}
}

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	var ownerID uuid.UUID
	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, DemoEmail)
	if err := row.Scan(&ownerID); err != nil {
		return fmt.Errorf("demo user missing, run %s first: %w", DemoUserSeeder{}.Name(), err)
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range demoJobs {
			var salary *string
			if it.Salary != "" {
				s := it.Salary
				salary = &s
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO jobs (title, company, location, type, description, salary, posted_by_id)
				 SELECT $1::text, $2::text, $3::text, $4::text, $5::text, $6::text, $7::uuid
				 WHERE NOT EXISTS (SELECT 1 FROM jobs WHERE title = $1 AND posted_by_id = $7)`,
				it.Title, it.Company, it.Location, string(it.Type), it.Description, salary, ownerID,
			)
			if err != nil {
				return fmt.Errorf("insert %q: %w", it.Title, err)
			}
		}
		return nil
	})
}
