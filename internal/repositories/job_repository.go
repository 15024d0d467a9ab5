package repositories

import (
	"context"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JobRepository struct {
	DB *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO jobs(title, location, description, is_open)
		 VALUES($1, NULLIF($2, ''), NULLIF($3, ''), $4)
		 RETURNING id, created_at`,
		j.Title, j.Location, j.Description, j.IsOpen,
	).Scan(&j.ID, &j.CreatedAt)
}

func (r *JobRepository) Get(ctx context.Context, id int) (*models.Job, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, title, COALESCE(location, '') as location, COALESCE(description, '') as description, is_open, created_at
		 FROM jobs WHERE id=$1`, id)

	var j models.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Location, &j.Description, &j.IsOpen, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// List returns postings; openOnly narrows to the public careers page view.
func (r *JobRepository) List(ctx context.Context, openOnly bool) ([]models.Job, error) {
	query := `SELECT id, title, COALESCE(location, '') as location, COALESCE(description, '') as description, is_open, created_at
	          FROM jobs`
	if openOnly {
		query += ` WHERE is_open=TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Location, &j.Description, &j.IsOpen, &j.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) Update(ctx context.Context, j *models.Job) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE jobs SET title=$1, location=NULLIF($2, ''), description=NULLIF($3, ''), is_open=$4 WHERE id=$5`,
		j.Title, j.Location, j.Description, j.IsOpen, j.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *JobRepository) CountOpen(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_open=TRUE`).Scan(&count)
	return count, err
}

func (r *JobRepository) CreateApplication(ctx context.Context, a *models.JobApplication) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO job_applications(job_id, name, phone, email, resume_url, message)
		 VALUES($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		 RETURNING id, created_at`,
		a.JobID, a.Name, a.Phone, a.Email, a.ResumeURL, a.Message,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *JobRepository) ListApplications(ctx context.Context, jobID int) ([]models.JobApplication, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, job_id, name, phone, COALESCE(email, '') as email,
		        COALESCE(resume_url, '') as resume_url, COALESCE(message, '') as message, created_at
		 FROM job_applications WHERE job_id=$1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.JobApplication
	for rows.Next() {
		var a models.JobApplication
		if err := rows.Scan(&a.ID, &a.JobID, &a.Name, &a.Phone, &a.Email, &a.ResumeURL, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
