package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"hrms/audit"
	"hrms/middleware"
	"hrms/models"
	"hrms/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EmployeeHandler struct {
	store    store.Store
	recorder *audit.Recorder
	logger   *zap.Logger
}

func NewEmployeeHandler(st store.Store, recorder *audit.Recorder, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{store: st, recorder: recorder, logger: logger}
}

type createEmployeeRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
}

func idParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	employees, err := h.store.ListEmployees(r.Context(), claims.OrgID)
	if err != nil {
		respondInternal(w, h.logger, "Failed to fetch employees", err)
		return
	}
	respondJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id, ok := idParam(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	employee, err := h.store.EmployeeByID(r.Context(), claims.OrgID, id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Failed to fetch employee", err)
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "First name, last name, and email are required")
		return
	}

	employee := &models.Employee{
		OrganisationID: claims.OrgID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Position:       req.Position,
		Department:     req.Department,
	}
	if err := h.store.CreateEmployee(r.Context(), employee); err != nil {
		respondInternal(w, h.logger, "Failed to create employee", err)
		return
	}

	err := h.recorder.Record(r.Context(), claims.OrgID, claims.UserID, audit.ActionEmployeeCreated, map[string]interface{}{
		"employeeId":   employee.ID,
		"employeeName": employee.DisplayName(),
		"email":        employee.Email,
	})
	if err != nil {
		respondInternal(w, h.logger, "Failed to create employee", err)
		return
	}

	respondJSON(w, http.StatusCreated, employee)
}

// Update applies a field-level partial update: a field changes only when
// the request carries it. Explicit null clears the optional fields and is
// rejected on the required ones.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id, ok := idParam(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid employee id")
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

	detail, err := h.store.EmployeeByID(r.Context(), claims.OrgID, id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Failed to update employee", err)
		return
	}
	employee := detail.Employee

	required := []struct {
		key  string
		dest *string
	}{
		{"first_name", &employee.FirstName},
		{"last_name", &employee.LastName},
		{"email", &employee.Email},
	}
	for _, f := range required {
		value, present, err := p.stringField(f.key)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if !present {
			continue
		}
		if value == nil || *value == "" {
			respondMessage(w, http.StatusBadRequest, f.key+" cannot be empty")
			return
		}
		*f.dest = *value
	}

	optional := []struct {
		key  string
		dest **string
	}{
		{"phone", &employee.Phone},
		{"position", &employee.Position},
		{"department", &employee.Department},
	}
	for _, f := range optional {
		value, present, err := p.stringField(f.key)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if present {
			*f.dest = value
		}
	}

	if err := h.store.UpdateEmployee(r.Context(), &employee); err != nil {
		respondInternal(w, h.logger, "Failed to update employee", err)
		return
	}

	err = h.recorder.Record(r.Context(), claims.OrgID, claims.UserID, audit.ActionEmployeeUpdated, map[string]interface{}{
		"employeeId":   employee.ID,
		"employeeName": employee.DisplayName(),
	})
	if err != nil {
		respondInternal(w, h.logger, "Failed to update employee", err)
		return
	}

	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id, ok := idParam(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	// Capture the display name before the row disappears; the audit entry
	// must stay readable afterwards.
	detail, err := h.store.EmployeeByID(r.Context(), claims.OrgID, id)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		respondInternal(w, h.logger, "Failed to delete employee", err)
		return
	}
	name := detail.DisplayName()

	if err := h.store.DeleteEmployee(r.Context(), claims.OrgID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Employee not found")
			return
		}
		respondInternal(w, h.logger, "Failed to delete employee", err)
		return
	}

	err = h.recorder.Record(r.Context(), claims.OrgID, claims.UserID, audit.ActionEmployeeDeleted, map[string]interface{}{
		"employeeId":   id,
		"employeeName": name,
	})
	if err != nil {
		respondInternal(w, h.logger, "Failed to delete employee", err)
		return
	}

	respondMessage(w, http.StatusOK, "Employee deleted successfully")
}
