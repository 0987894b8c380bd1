package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devhire/jobboard/internal/core/ports"
)

type SkillHandler struct {
	skills ports.SkillRepository
}

func NewSkillHandler(skills ports.SkillRepository) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// List returns the skill catalog.
//
// @Summary      List skills
// @Tags         skills
// @Produce      json
// @Success      200  {array}  domain.Skill
// @Router       /v1/skills [get]
func (h *SkillHandler) List(c echo.Context) error {
	skills, err := h.skills.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, skills)
}
