package handlers

import (
	"errors"
	"io"
	"net/http"

	"hrms/audit"
	"hrms/middleware"
	"hrms/models"
	"hrms/store"

	"go.uber.org/zap"
)

type TeamHandler struct {
	store    store.Store
	recorder *audit.Recorder
	logger   *zap.Logger
}

func NewTeamHandler(st store.Store, recorder *audit.Recorder, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{store: st, recorder: recorder, logger: logger}
}

type createTeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type assignmentRequest struct {
	EmployeeID uint `json:"employeeId"`
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	teams, err := h.store.ListTeams(r.Context(), claims.OrgID)
	if err != nil {
		respondInternal(w, h.logger, "Failed to fetch teams", err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id, ok := idParam(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid team id")
		return
	}

	team, err := h.store.TeamByID(r.Context(), claims.OrgID, id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Failed to fetch team", err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Team name is required")
		return
	}

	team := &models.Team{
		OrganisationID: claims.OrgID,
		Name:           req.Name,
		Description:    req.Description,
	}
	if err := h.store.CreateTeam(r.Context(), team); err != nil {
		respondInternal(w, h.logger, "Failed to create team", err)
		return
	}

	err := h.recorder.Record(r.Context(), claims.OrgID, claims.UserID, audit.ActionTeamCreated, map[string]interface{}{
		"teamId":   team.ID,
		"teamName": team.Name,
	})
	if err != nil {
		respondInternal(w, h.logger, "Failed to create team", err)
		return
	}

	respondJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id, ok := idParam(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid team id")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := decodePatch(body)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	detail, err := h.store.TeamByID(r.Context(), claims.OrgID, id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Failed to update team", err)
		return
	}
	team := detail.Team

	if value, present, err := p.stringField("name"); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	} else if present {
		if value == nil || *value == "" {
			respondMessage(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		team.Name = *value
	}

	if value, present, err := p.stringField("description"); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	} else if present {
		team.Description = value
	}

	if err := h.store.UpdateTeam(r.Context(), &team); err != nil {
		respondInternal(w, h.logger, "Failed to update team", err)
		return
	}

	err = h.recorder.Record(r.Context(), claims.OrgID, claims.UserID, audit.ActionTeamUpdated, map[string]interface{}{
		"teamId":   team.ID,
		"teamName": team.Name,
	})
	if err != nil {
		respondInternal(w, h.logger, "Failed to update team", err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id, ok := idParam(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid team id")
		return
	}

	detail, err := h.store.TeamByID(r.Context(), claims.OrgID, id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Failed to delete team", err)
		return
	}
	name := detail.Name

	if err := h.store.DeleteTeam(r.Context(), claims.OrgID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Team not found")
			return
		}
		respondInternal(w, h.logger, "Failed to delete team", err)
		return
	}

	err = h.recorder.Record(r.Context(), claims.OrgID, claims.UserID, audit.ActionTeamDeleted, map[string]interface{}{
		"teamId":   id,
		"teamName": name,
	})
	if err != nil {
		respondInternal(w, h.logger, "Failed to delete team", err)
		return
	}

	respondMessage(w, http.StatusOK, "Team deleted successfully")
}

// Assign adds an employee to a team. Both must resolve inside the
// caller's organisation before the relation is touched; a missing or
// foreign entity reads as 404 either way.
func (h *TeamHandler) Assign(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	teamID, ok := idParam(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid team id")
		return
	}

	var req assignmentRequest
	if err := decodeJSON(r, &req); err != nil || req.EmployeeID == 0 {
		respondMessage(w, http.StatusBadRequest, "Employee ID is required")
		return
	}

	team, err := h.store.TeamByID(r.Context(), claims.OrgID, teamID)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Failed to assign employee", err)
		return
	}

	employee, err := h.store.EmployeeByID(r.Context(), claims.OrgID, req.EmployeeID)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Failed to assign employee", err)
		return
	}

	if err := h.store.Assign(r.Context(), req.EmployeeID, teamID); err != nil {
		if errors.Is(err, store.ErrAlreadyAssigned) {
			respondMessage(w, http.StatusConflict, "Employee already assigned to this team")
			return
		}
		respondInternal(w, h.logger, "Failed to assign employee", err)
		return
	}

	err = h.recorder.Record(r.Context(), claims.OrgID, claims.UserID, audit.ActionEmployeeAssigned, map[string]interface{}{
		"employeeId":   employee.ID,
		"employeeName": employee.DisplayName(),
		"teamId":       team.ID,
		"teamName":     team.Name,
	})
	if err != nil {
		respondInternal(w, h.logger, "Failed to assign employee", err)
		return
	}

	respondMessage(w, http.StatusCreated, "Employee assigned to team successfully")
}

func (h *TeamHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	teamID, ok := idParam(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid team id")
		return
	}

	var req assignmentRequest
	if err := decodeJSON(r, &req); err != nil || req.EmployeeID == 0 {
		respondMessage(w, http.StatusBadRequest, "Employee ID is required")
		return
	}

	team, err := h.store.TeamByID(r.Context(), claims.OrgID, teamID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respondInternal(w, h.logger, "Failed to unassign employee", err)
		return
	}
	employee, empErr := h.store.EmployeeByID(r.Context(), claims.OrgID, req.EmployeeID)
	if empErr != nil && !errors.Is(empErr, store.ErrNotFound) {
		respondInternal(w, h.logger, "Failed to unassign employee", empErr)
		return
	}
	if team == nil || employee == nil {
		respondMessage(w, http.StatusNotFound, "Team or employee not found")
		return
	}

	if err := h.store.Unassign(r.Context(), req.EmployeeID, teamID); err != nil {
		if errors.Is(err, store.ErrNotAssigned) {
			respondMessage(w, http.StatusNotFound, "Assignment not found")
			return
		}
		respondInternal(w, h.logger, "Failed to unassign employee", err)
		return
	}

	err = h.recorder.Record(r.Context(), claims.OrgID, claims.UserID, audit.ActionEmployeeUnassigned, map[string]interface{}{
		"employeeId":   employee.ID,
		"employeeName": employee.DisplayName(),
		"teamId":       team.ID,
		"teamName":     team.Name,
	})
	if err != nil {
		respondInternal(w, h.logger, "Failed to unassign employee", err)
		return
	}

	respondMessage(w, http.StatusOK, "Employee unassigned from team successfully")
}
