package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mams-platform/mams/internal/catalog/domain"
	"github.com/mams-platform/mams/internal/catalog/usecase/command"
	"github.com/mams-platform/mams/internal/catalog/usecase/query"
	directoryhttp "github.com/mams-platform/mams/internal/directory/delivery/http"
	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/pkg/logger"
)

// EquipmentTypeHandler handles HTTP requests for the equipment catalog
type EquipmentTypeHandler struct {
	createHandler *command.CreateEquipmentTypeHandler
	updateHandler *command.UpdateEquipmentTypeHandler
	deleteHandler *command.DeleteEquipmentTypeHandler
	getHandler    *query.GetEquipmentTypeHandler
	listHandler   *query.ListEquipmentTypesHandler
}

// NewEquipmentTypeHandler creates a new equipment type handler
func NewEquipmentTypeHandler(
	createHandler *command.CreateEquipmentTypeHandler,
	updateHandler *command.UpdateEquipmentTypeHandler,
	deleteHandler *command.DeleteEquipmentTypeHandler,
	getHandler *query.GetEquipmentTypeHandler,
	listHandler *query.ListEquipmentTypesHandler,
) *EquipmentTypeHandler {
	return &EquipmentTypeHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateEquipmentType handles POST /api/equipment-types
func (h *EquipmentTypeHandler) CreateEquipmentType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	equipmentType, err := h.createHandler.Handle(command.CreateEquipmentTypeCommand{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Equipment type created successfully",
		Data:    equipmentType,
	})
}

// UpdateEquipmentType handles PATCH /api/equipment-types/{id}
func (h *EquipmentTypeHandler) UpdateEquipmentType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid equipment type ID",
		})
		return
	}

	var req struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	equipmentType, err := h.updateHandler.Handle(command.UpdateEquipmentTypeCommand{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrTypeNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Equipment type updated successfully",
		Data:    equipmentType,
	})
}

// DeleteEquipmentType handles DELETE /api/equipment-types/{id}
func (h *EquipmentTypeHandler) DeleteEquipmentType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid equipment type ID",
		})
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteEquipmentTypeCommand{ID: id}); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrTypeNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrTypeReferenced):
			status = http.StatusConflict
		}
		logger.Logger.Warn().Err(err).Uint("equipment_type_id", id).Msg("Failed to delete equipment type")
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Equipment type deleted successfully",
	})
}

// GetEquipmentType handles GET /api/equipment-types/{id}
func (h *EquipmentTypeHandler) GetEquipmentType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid equipment type ID",
		})
		return
	}

	equipmentType, err := h.getHandler.Handle(query.GetEquipmentTypeQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Equipment type not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    equipmentType,
	})
}

// ListEquipmentTypes handles GET /api/equipment-types
func (h *EquipmentTypeHandler) ListEquipmentTypes(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	types, err := h.listHandler.Handle(query.ListEquipmentTypesQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list equipment types")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list equipment types",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    types,
	})
}

// RegisterRoutes registers all catalog routes. Reads require authentication,
// writes require the admin role.
func (h *EquipmentTypeHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/equipment-types", directoryhttp.AuthMiddleware(h.ListEquipmentTypes)).Methods("GET")
	router.HandleFunc("/api/equipment-types/{id}", directoryhttp.AuthMiddleware(h.GetEquipmentType)).Methods("GET")
	router.HandleFunc("/api/equipment-types",
		directoryhttp.RequireRoles(h.CreateEquipmentType, directorydomain.RoleAdmin)).Methods("POST")
	router.HandleFunc("/api/equipment-types/{id}",
		directoryhttp.RequireRoles(h.UpdateEquipmentType, directorydomain.RoleAdmin)).Methods("PATCH")
	router.HandleFunc("/api/equipment-types/{id}",
		directoryhttp.RequireRoles(h.DeleteEquipmentType, directorydomain.RoleAdmin)).Methods("DELETE")
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
