package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devhire/jobboard/internal/core/domain"
	"github.com/devhire/jobboard/internal/core/ports"
	"github.com/devhire/jobboard/pkg/logger"
)

// ProfileHandler exposes the draft/publish editing workflow for the
// caller's own profile.
type ProfileHandler struct {
	profiles ports.ProfileService
	auth     ports.AuthService
}

func NewProfileHandler(profiles ports.ProfileService, auth ports.AuthService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: auth}
}

type fieldChangeRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type skillRequest struct {
	SkillID string `json:"skillId" validate:"required"`
}

type editStateResponse struct {
	View              string               `json:"view"`
	Origin            string               `json:"origin,omitempty"`
	WorkingCopy       *domain.ProfileDraft `json:"workingCopy,omitempty"`
	HasUnsavedChanges bool                 `json:"hasUnsavedChanges"`
	LastSaved         *time.Time           `json:"lastSaved,omitempty"`
}

func toEditStateResponse(st *ports.EditState) editStateResponse {
	resp := editStateResponse{
		View:              string(st.View),
		Origin:            string(st.Origin),
		WorkingCopy:       st.WorkingCopy,
		HasUnsavedChanges: st.HasUnsavedChanges,
	}
	if !st.LastSaved.IsZero() {
		ls := st.LastSaved
		resp.LastSaved = &ls
	}
	return resp
}

// Begin opens an edit session, seeding the working copy from the
// pending draft when one exists.
//
// @Summary      Begin editing own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  editStateResponse
// @Router       /v1/profile/edit [post]
func (h *ProfileHandler) Begin(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	state, err := h.profiles.BeginEdit(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEditStateResponse(state))
}

// FieldChange applies one edit to the working copy. The auto-save
// debounce restarts; nothing is persisted synchronously.
//
// @Summary      Change one profile field
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      fieldChangeRequest  true  "Field edit"
// @Success      200   {object}  editStateResponse
// @Failure      409   {object}  map[string]string
// @Router       /v1/profile/edit/fields [patch]
func (h *ProfileHandler) FieldChange(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req fieldChangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.profiles.FieldChange(c.Request().Context(), session.UserID, req.Field, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEditStateResponse(state))
}

// SkillAdd adds a skill reference to the working copy. Duplicates are
// no-ops.
//
// @Summary      Add a skill to the working copy
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      skillRequest  true  "Skill reference"
// @Success      200   {object}  editStateResponse
// @Router       /v1/profile/edit/skills [post]
func (h *ProfileHandler) SkillAdd(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req skillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.profiles.SkillAdd(c.Request().Context(), session.UserID, req.SkillID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEditStateResponse(state))
}

// SkillRemove removes a skill reference from the working copy. Removing
// an absent id is a no-op.
//
// @Summary      Remove a skill from the working copy
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Skill id"
// @Success      200  {object}  editStateResponse
// @Router       /v1/profile/edit/skills/{id} [delete]
func (h *ProfileHandler) SkillRemove(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	state, err := h.profiles.SkillRemove(c.Request().Context(), session.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEditStateResponse(state))
}

// SaveDraft persists the working copy now. Unlike the silent auto-save,
// failures surface to the caller.
//
// @Summary      Save the working copy as a draft
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  editStateResponse
// @Failure      409  {object}  map[string]string
// @Router       /v1/profile/draft [post]
func (h *ProfileHandler) SaveDraft(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	state, err := h.profiles.SaveDraft(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEditStateResponse(state))
}

// Publish promotes the working copy to the published profile and clears
// the draft. On failure the draft and edit session stay intact.
//
// @Summary      Publish the profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Account
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/profile/publish [post]
func (h *ProfileHandler) Publish(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	account, err := h.profiles.Publish(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	// The session projection carries name and company; reinstall it so
	// subsequent requests see the published values.
	if _, err := h.auth.RefreshSession(c.Request().Context(), session); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Str("user_id", session.UserID).Msg("session refresh after publish failed")
	}
	return c.JSON(http.StatusOK, account)
}

// Discard drops the pending draft, leaving the published profile
// untouched. Discarding with no draft present succeeds.
//
// @Summary      Discard the pending draft
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Account
// @Router       /v1/profile/discard [post]
func (h *ProfileHandler) Discard(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	account, err := h.profiles.Discard(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Cancel leaves edit mode without publishing or discarding. A final
// best-effort draft flush covers unsaved changes.
//
// @Summary      Cancel editing
// @Tags         profile
// @Security     BearerAuth
// @Success      204  "editing ended"
// @Router       /v1/profile/edit/cancel [post]
func (h *ProfileHandler) Cancel(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.profiles.Cancel(c.Request().Context(), session.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Status reports whether the caller is editing, has a pending draft, or
// is fully published.
//
// @Summary      Profile editing status
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  editStateResponse
// @Router       /v1/profile/status [get]
func (h *ProfileHandler) Status(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	state, err := h.profiles.Status(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEditStateResponse(state))
}
