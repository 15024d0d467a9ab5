package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"travel-backend/internal/models"
	"travel-backend/internal/services"
	"travel-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type JobHandler struct {
	Service *services.JobService
}

func NewJobHandler(s *services.JobService) *JobHandler {
	return &JobHandler{Service: s}
}

// ListOpenJobs is the public careers page feed.
func (h *JobHandler) ListOpenJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.ListJobs(r.Context(), true)
	if err != nil {
		log.Printf("[Job] List failed: %v", err)
		writeServiceError(w, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	utils.JSON(w, http.StatusOK, jobs)
}

// Apply is the public application form for one posting.
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.ApplyJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.Service.Apply(r.Context(), jobID, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.ListJobs(r.Context(), false)
	if err != nil {
		log.Printf("[Job] List failed: %v", err)
		writeServiceError(w, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	utils.JSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.Service.CreateJob(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.Service.UpdateJob(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, job)
}

func (h *JobHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])

	apps, err := h.Service.ListApplications(r.Context(), jobID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if apps == nil {
		apps = []models.JobApplication{}
	}

	utils.JSON(w, http.StatusOK, apps)
}
