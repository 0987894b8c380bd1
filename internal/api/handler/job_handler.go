package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devhire/jobboard/internal/core/ports"
)

type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

type createJobRequest struct {
	Title           string   `json:"title"       validate:"required"`
	Type            string   `json:"type"        validate:"required,oneof=Full-Time Part-Time Remote Internship"`
	Description     string   `json:"description" validate:"required"`
	Location        string   `json:"location"    validate:"required"`
	Salary          string   `json:"salary"`
	RequiredSkills  []string `json:"requiredSkills"`
	PreferredSkills []string `json:"preferredSkills"`
}

type updateJobRequest struct {
	Title           *string  `json:"title"`
	Type            *string  `json:"type"`
	Description     *string  `json:"description"`
	Location        *string  `json:"location"`
	Salary          *string  `json:"salary"`
	RequiredSkills  []string `json:"requiredSkills"`
	PreferredSkills []string `json:"preferredSkills"`
	Status          *string  `json:"status"`
}

// Create posts a new job for the calling employer.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  domain.Job
// @Failure      403   {object}  map[string]string
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.Create(c.Request().Context(), session, ports.CreateJobInput{
		Title:           req.Title,
		Type:            req.Type,
		Description:     req.Description,
		Location:        req.Location,
		Salary:          req.Salary,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// Get returns one job posting by id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  map[string]string
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// List returns job postings, optionally filtered by employer, status,
// type, or free-text search over title, description and location.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        employerId  query     string  false  "Filter by employer"
// @Param        status      query     string  false  "Filter by status (active/closed)"
// @Param        type        query     string  false  "Filter by job type"
// @Param        search      query     string  false  "Free-text search"
// @Param        limit       query     int     false  "Max results"
// @Success      200         {array}   domain.Job
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	jobs, err := h.service.List(c.Request().Context(), ports.ListJobsFilter{
		EmployerID: c.QueryParam("employerId"),
		Status:     c.QueryParam("status"),
		Type:       c.QueryParam("type"),
		Search:     c.QueryParam("search"),
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Recommendations returns active jobs ranked by how many of the calling
// developer's skills they match.
//
// @Summary      Recommended jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.JobRecommendation
// @Failure      403  {object}  map[string]string
// @Router       /v1/jobs/recommendations [get]
func (h *JobHandler) Recommendations(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	recs, err := h.service.Recommend(c.Request().Context(), session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// Update edits a job posting. Owner or admin only.
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Partial update"
// @Success      200   {object}  domain.Job
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/jobs/{id} [patch]
func (h *JobHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	job, err := h.service.Update(c.Request().Context(), session, c.Param("id"), ports.UpdateJobInput{
		Title:           req.Title,
		Type:            req.Type,
		Description:     req.Description,
		Location:        req.Location,
		Salary:          req.Salary,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		Status:          req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete removes a job posting. Owner or admin only.
//
// @Summary      Delete a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id  path  string  true  "Job id"
// @Success      204  "deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), session, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
