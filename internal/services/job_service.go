package services

import (
	"context"
	"strings"

	"travel-backend/internal/models"
	"travel-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type JobService struct {
	Repo *repositories.JobRepository
}

func NewJobService(repo *repositories.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

func (s *JobService) CreateJob(ctx context.Context, req *models.CreateJobRequest) (*models.Job, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidField("title", "job title is required")
	}

	job := &models.Job{
		Title:       strings.TrimSpace(req.Title),
		Location:    strings.TrimSpace(req.Location),
		Description: strings.TrimSpace(req.Description),
		IsOpen:      true,
	}
	if req.IsOpen != nil {
		job.IsOpen = *req.IsOpen
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) UpdateJob(ctx context.Context, id int, req *models.CreateJobRequest) (*models.Job, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidField("title", "job title is required")
	}

	job, err := s.Repo.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	job.Title = strings.TrimSpace(req.Title)
	job.Location = strings.TrimSpace(req.Location)
	job.Description = strings.TrimSpace(req.Description)
	if req.IsOpen != nil {
		job.IsOpen = *req.IsOpen
	}

	if err := s.Repo.Update(ctx, job); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// ListJobs returns postings; openOnly narrows to the public careers view.
func (s *JobService) ListJobs(ctx context.Context, openOnly bool) ([]models.Job, error) {
	return s.Repo.List(ctx, openOnly)
}

// Apply records a candidate submission against an open posting.
func (s *JobService) Apply(ctx context.Context, jobID int, req *models.ApplyJobRequest) (*models.JobApplication, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidField("name", "name is required")
	}
	if len(strings.TrimSpace(req.Phone)) < 10 {
		return nil, invalidField("phone", "phone must be at least 10 characters")
	}

	job, err := s.Repo.Get(ctx, jobID)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !job.IsOpen {
		return nil, invalidField("job_id", "this position is no longer open")
	}

	app := &models.JobApplication{
		JobID:     job.ID,
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		ResumeURL: strings.TrimSpace(req.ResumeURL),
		Message:   strings.TrimSpace(req.Message),
	}
	if err := s.Repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *JobService) ListApplications(ctx context.Context, jobID int) ([]models.JobApplication, error) {
	return s.Repo.ListApplications(ctx, jobID)
}
