package handler

import (
	"net/http"

	"github.com/strengthsync/strengthsync/internal/api/middleware"
	"github.com/strengthsync/strengthsync/internal/api/response"
	"github.com/strengthsync/strengthsync/internal/services/badges"
)

// BadgeHandler handles badge endpoints
type BadgeHandler struct {
	badgeService *badges.Service
}

// NewBadgeHandler creates a new badge handler
func NewBadgeHandler(badgeService *badges.Service) *BadgeHandler {
	return &BadgeHandler{
		badgeService: badgeService,
	}
}

// ListMine handles GET /api/v1/badges/me
func (h *BadgeHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	awards, err := h.badgeService.ListForMember(r.Context(), member.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := make([]response.BadgeAward, len(awards))
	for i, a := range awards {
		name := string(a.Slug)
		if def, err := badges.Definition(a.Slug); err == nil {
			name = def.Name
		}
		resp[i] = response.BadgeAward{
			Slug:      string(a.Slug),
			Name:      name,
			Reason:    a.Reason,
			AwardedAt: a.AwardedAt,
		}
	}
	response.JSON(w, http.StatusOK, resp)
}
