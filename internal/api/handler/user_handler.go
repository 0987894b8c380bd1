package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devhire/jobboard/internal/core/domain"
	"github.com/devhire/jobboard/internal/core/ports"
)

type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type updateProfileRequest struct {
	FirstName    *string  `json:"firstName"`
	LastName     *string  `json:"lastName"`
	Company      *string  `json:"company"`
	About        *string  `json:"about"`
	ProfilePhoto *string  `json:"profilePhoto"`
	Resume       *string  `json:"resume"`
	IntroVideo   *string  `json:"introVideo"`
	CompanyLogo  *string  `json:"companyLogo"`
	Skills       []string `json:"skills"`
}

type updateProfileResponse struct {
	User    *domain.Account `json:"user"`
	Session *domain.Session `json:"session"`
}

// publicProfile is the view of an account exposed to other users: only
// published fields, never the draft, never credentials.
type publicProfile struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Role         domain.Role `json:"role"`
	Company      string      `json:"company,omitempty"`
	About        string      `json:"about,omitempty"`
	ProfilePhoto string      `json:"profilePhoto,omitempty"`
	Resume       string      `json:"resume,omitempty"`
	IntroVideo   string      `json:"introVideo,omitempty"`
	CompanyLogo  string      `json:"companyLogo,omitempty"`
	Skills       []string    `json:"skills,omitempty"`
	PublishedAt  time.Time   `json:"publishedAt,omitempty"`
}

type savedJobsResponse struct {
	SavedJobs []string `json:"savedJobs"`
	Saved     bool     `json:"saved"`
}

// UpdateMe merges a partial update into the caller's own account.
// Identity fields in the payload are ignored: id, email and role are
// pinned from the session.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Partial profile update"
// @Success      200   {object}  updateProfileResponse
// @Failure      401   {object}  map[string]string
// @Router       /v1/users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	account, refreshed, err := h.authService.UpdateProfile(c.Request().Context(), session, ports.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Company:      req.Company,
		About:        req.About,
		ProfilePhoto: req.ProfilePhoto,
		Resume:       req.Resume,
		IntroVideo:   req.IntroVideo,
		CompanyLogo:  req.CompanyLogo,
		Skills:       req.Skills,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateProfileResponse{User: account, Session: refreshed})
}

// Get returns another user's published profile. Draft content is owner
// only and never appears here.
//
// @Summary      Get a public profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  publicProfile
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}

	account, err := h.authService.GetAccount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, publicProfile{
		ID:           account.ID,
		Name:         account.Name(),
		Role:         account.Role,
		Company:      account.Company,
		About:        account.About,
		ProfilePhoto: account.ProfilePhoto,
		Resume:       account.Resume,
		IntroVideo:   account.IntroVideo,
		CompanyLogo:  account.CompanyLogo,
		Skills:       account.Skills,
		PublishedAt:  account.PublishedAt,
	})
}

// List returns all accounts, passwords stripped. Admin only; the RBAC
// gate sits in the route, and the service re-checks as a predicate.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Account
// @Failure      403  {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	accounts, err := h.authService.GetAllUsers(c.Request().Context(), session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// SavedJobs returns the caller's saved-job id list.
//
// @Summary      List saved jobs
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  savedJobsResponse
// @Router       /v1/users/me/saved-jobs [get]
func (h *UserHandler) SavedJobs(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	account, err := h.authService.GetAccount(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	saved := account.SavedJobs
	if saved == nil {
		saved = []string{}
	}
	return c.JSON(http.StatusOK, savedJobsResponse{SavedJobs: saved})
}

// ToggleSavedJob flips the saved state of one job for the caller.
//
// @Summary      Toggle a saved job
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  savedJobsResponse
// @Router       /v1/users/me/saved-jobs/{id} [put]
func (h *UserHandler) ToggleSavedJob(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	saved, nowSaved, err := h.authService.ToggleSavedJob(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, savedJobsResponse{SavedJobs: saved, Saved: nowSaved})
}
