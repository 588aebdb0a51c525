package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/strengthsync/strengthsync/internal/api/middleware"
	"github.com/strengthsync/strengthsync/internal/api/request"
	"github.com/strengthsync/strengthsync/internal/api/response"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/auth"
	"github.com/strengthsync/strengthsync/internal/services/org"
)

// OrgHandler handles organization endpoints
type OrgHandler struct {
	orgService *org.Service
}

// NewOrgHandler creates a new organization handler
func NewOrgHandler(orgService *org.Service) *OrgHandler {
	return &OrgHandler{
		orgService: orgService,
	}
}

// Create handles POST /api/v1/orgs
func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.CreateOrgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Slug == "" {
		WriteError(w, NewInvalidRequestError("slug is required"))
		return
	}

	organization, err := h.orgService.CreateOrganization(r.Context(), req.Name, req.Slug, session.MemberID)
	if err != nil {
		WriteError(w, err)
		return
	}

	// The creator became the org's owner; the auth middleware reloads the
	// member on every request, so the next call already sees the new role.
	response.JSON(w, http.StatusCreated, response.OrganizationFromModel(organization))
}

// Get handles GET /api/v1/orgs/{orgId}
func (h *OrgHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	orgID := model.OrgID(mux.Vars(r)["orgId"])

	if err := auth.HasRole(session, orgID, model.RoleOwner, model.RoleAdmin, model.RoleMember); err != nil {
		WriteError(w, err)
		return
	}

	organization, err := h.orgService.GetOrganization(r.Context(), orgID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OrganizationFromModel(organization))
}

// ListMembers handles GET /api/v1/orgs/{orgId}/members
func (h *OrgHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	orgID := model.OrgID(mux.Vars(r)["orgId"])

	if err := auth.HasRole(session, orgID, model.RoleOwner, model.RoleAdmin, model.RoleMember); err != nil {
		WriteError(w, err)
		return
	}

	members, err := h.orgService.ListMembers(r.Context(), orgID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := make([]response.Member, len(members))
	for i, m := range members {
		resp[i] = response.MemberFromModel(m)
	}
	response.JSON(w, http.StatusOK, resp)
}

// SetRole handles PUT /api/v1/orgs/{orgId}/members/{memberId}/role
func (h *OrgHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	vars := mux.Vars(r)
	orgID := model.OrgID(vars["orgId"])
	memberID := model.MemberID(vars["memberId"])

	if err := auth.RequireManager(session, orgID); err != nil {
		WriteError(w, err)
		return
	}

	var req request.SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	role := model.Role(req.Role)
	if !model.ValidRole(role) {
		WriteError(w, model.ErrInvalidRole)
		return
	}

	member, err := h.orgService.SetRole(r.Context(), orgID, memberID, role)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MemberFromModel(member))
}

// Deactivate handles POST /api/v1/orgs/{orgId}/members/{memberId}/deactivate
func (h *OrgHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	vars := mux.Vars(r)
	orgID := model.OrgID(vars["orgId"])
	memberID := model.MemberID(vars["memberId"])

	if err := auth.RequireManager(session, orgID); err != nil {
		WriteError(w, err)
		return
	}

	member, err := h.orgService.Deactivate(r.Context(), orgID, memberID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MemberFromModel(member))
}
