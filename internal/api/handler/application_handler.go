package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devhire/jobboard/internal/core/ports"
)

type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type applyRequest struct {
	JobID       string `json:"jobId" validate:"required"`
	CoverLetter string `json:"coverLetter"`
}

type applicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// Apply submits an application to an active job.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyRequest  true  "Application"
// @Success      201   {object}  domain.Application
// @Failure      409   {object}  map[string]string
// @Router       /v1/applications [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.service.Apply(c.Request().Context(), session, ports.ApplyInput{
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

// ListMine returns the caller's own applications.
//
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Application
// @Router       /v1/applications [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	apps, err := h.service.ListMine(c.Request().Context(), session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// ListByJob returns a job's applications to its owning employer.
//
// @Summary      List applications for a job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {array}   domain.Application
// @Failure      403  {object}  map[string]string
// @Router       /v1/jobs/{id}/applications [get]
func (h *ApplicationHandler) ListByJob(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	apps, err := h.service.ListByJob(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// UpdateStatus accepts or rejects an application.
//
// @Summary      Review an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Application id"
// @Param        body  body      applicationStatusRequest  true  "New status"
// @Success      200   {object}  domain.Application
// @Failure      403   {object}  map[string]string
// @Router       /v1/applications/{id} [patch]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req applicationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.service.UpdateStatus(c.Request().Context(), session, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Withdraw deletes the caller's own application.
//
// @Summary      Withdraw an application
// @Tags         applications
// @Security     BearerAuth
// @Param        id  path  string  true  "Application id"
// @Success      204  "withdrawn"
// @Failure      404  {object}  map[string]string
// @Router       /v1/applications/{id} [delete]
func (h *ApplicationHandler) Withdraw(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Withdraw(c.Request().Context(), session, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
