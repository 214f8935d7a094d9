package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	directoryhttp "github.com/mams-platform/mams/internal/directory/delivery/http"
	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/internal/ledger/domain"
	"github.com/mams-platform/mams/internal/ledger/usecase/command"
	"github.com/mams-platform/mams/internal/ledger/usecase/query"
	"github.com/mams-platform/mams/pkg/logger"
)

// LedgerHandler handles HTTP requests for ledger operations and inventory
// queries
type LedgerHandler struct {
	purchaseHandler    *command.RecordPurchaseHandler
	transferHandler    *command.RecordTransferHandler
	assignmentHandler  *command.RecordAssignmentHandler
	expenditureHandler *command.RecordExpenditureHandler
	getInventory       *query.GetInventoryHandler
	listInventory      *query.ListInventoryHandler
	listMovements      *query.ListMovementsHandler
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(
	purchaseHandler *command.RecordPurchaseHandler,
	transferHandler *command.RecordTransferHandler,
	assignmentHandler *command.RecordAssignmentHandler,
	expenditureHandler *command.RecordExpenditureHandler,
	getInventory *query.GetInventoryHandler,
	listInventory *query.ListInventoryHandler,
	listMovements *query.ListMovementsHandler,
) *LedgerHandler {
	return &LedgerHandler{
		purchaseHandler:    purchaseHandler,
		transferHandler:    transferHandler,
		assignmentHandler:  assignmentHandler,
		expenditureHandler: expenditureHandler,
		getInventory:       getInventory,
		listInventory:      listInventory,
		listMovements:      listMovements,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordPurchase handles POST /api/purchases
func (h *LedgerHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EquipmentTypeID uint     `json:"equipment_type_id"`
		BaseID          uint     `json:"base_id"`
		Quantity        int      `json:"quantity"`
		Vendor          string   `json:"vendor"`
		UnitPrice       *float64 `json:"unit_price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	rec, err := h.purchaseHandler.Handle(r.Context(), command.RecordPurchaseCommand{
		EquipmentTypeID: req.EquipmentTypeID,
		BaseID:          req.BaseID,
		Quantity:        req.Quantity,
		Vendor:          req.Vendor,
		UnitPrice:       req.UnitPrice,
	})
	if err != nil {
		respondMovementError(w, "purchase", err)
		return
	}

	movementsTotal.WithLabelValues("purchase").Inc()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Purchase recorded successfully",
		Data:    rec,
	})
}

// RecordTransfer handles POST /api/transfers
func (h *LedgerHandler) RecordTransfer(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := directoryhttp.CallerFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Not authenticated"})
		return
	}

	var req struct {
		EquipmentTypeID uint `json:"equipment_type_id"`
		FromBaseID      uint `json:"from_base_id"`
		ToBaseID        uint `json:"to_base_id"`
		Quantity        int  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	rec, err := h.transferHandler.Handle(r.Context(), command.RecordTransferCommand{
		EquipmentTypeID: req.EquipmentTypeID,
		FromBaseID:      req.FromBaseID,
		ToBaseID:        req.ToBaseID,
		Quantity:        req.Quantity,
		InitiatedByID:   userID,
	})
	if err != nil {
		respondMovementError(w, "transfer", err)
		return
	}

	movementsTotal.WithLabelValues("transfer").Inc()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Transfer recorded successfully",
		Data:    rec,
	})
}

// RecordAssignment handles POST /api/assignments
func (h *LedgerHandler) RecordAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EquipmentTypeID uint `json:"equipment_type_id"`
		IssuingBaseID   uint `json:"issuing_base_id"`
		Quantity        int  `json:"quantity"`
		AssignedToID    uint `json:"assigned_to_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	rec, err := h.assignmentHandler.Handle(r.Context(), command.RecordAssignmentCommand{
		EquipmentTypeID: req.EquipmentTypeID,
		IssuingBaseID:   req.IssuingBaseID,
		Quantity:        req.Quantity,
		AssignedToID:    req.AssignedToID,
	})
	if err != nil {
		respondMovementError(w, "assignment", err)
		return
	}

	movementsTotal.WithLabelValues("assignment").Inc()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Assignment recorded successfully",
		Data:    rec,
	})
}

// RecordExpenditure handles POST /api/expenditures
func (h *LedgerHandler) RecordExpenditure(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EquipmentTypeID uint   `json:"equipment_type_id"`
		BaseID          uint   `json:"base_id"`
		Quantity        int    `json:"quantity"`
		Notes           string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	rec, err := h.expenditureHandler.Handle(r.Context(), command.RecordExpenditureCommand{
		EquipmentTypeID: req.EquipmentTypeID,
		BaseID:          req.BaseID,
		Quantity:        req.Quantity,
		Notes:           req.Notes,
	})
	if err != nil {
		respondMovementError(w, "expenditure", err)
		return
	}

	movementsTotal.WithLabelValues("expenditure").Inc()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Expenditure recorded successfully",
		Data:    rec,
	})
}

// GetInventory handles GET /api/inventory/{base_id}/{equipment_type_id}
func (h *LedgerHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	baseID, err1 := strconv.ParseUint(vars["base_id"], 10, 32)
	typeID, err2 := strconv.ParseUint(vars["equipment_type_id"], 10, 32)
	if err1 != nil || err2 != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid inventory key"})
		return
	}

	inv, err := h.getInventory.Handle(r.Context(), query.GetInventoryQuery{
		BaseID:          uint(baseID),
		EquipmentTypeID: uint(typeID),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			// No record yet means zero stock at the key
			respondJSON(w, http.StatusOK, Response{
				Success: true,
				Data: domain.InventoryRecord{
					BaseID:          uint(baseID),
					EquipmentTypeID: uint(typeID),
					Quantity:        0,
				},
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to get inventory")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to get inventory"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: inv})
}

// ListInventory handles GET /api/inventory
func (h *LedgerHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	_, role, callerBase, ok := directoryhttp.CallerFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := h.listInventory.Handle(r.Context(), query.ListInventoryQuery{
		CallerRole: role,
		CallerBase: callerBase,
		BaseID:     parseOptionalID(r, "base_id"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list inventory")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// ListPurchases handles GET /api/purchases
func (h *LedgerHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	q, ok := h.movementQuery(w, r)
	if !ok {
		return
	}
	records, err := h.listMovements.Purchases(r.Context(), q)
	h.respondHistory(w, r, records, err)
}

// ListTransfers handles GET /api/transfers
func (h *LedgerHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	q, ok := h.movementQuery(w, r)
	if !ok {
		return
	}
	records, err := h.listMovements.Transfers(r.Context(), q)
	h.respondHistory(w, r, records, err)
}

// ListAssignments handles GET /api/assignments
func (h *LedgerHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	q, ok := h.movementQuery(w, r)
	if !ok {
		return
	}
	records, err := h.listMovements.Assignments(r.Context(), q)
	h.respondHistory(w, r, records, err)
}

// ListExpenditures handles GET /api/expenditures
func (h *LedgerHandler) ListExpenditures(w http.ResponseWriter, r *http.Request) {
	q, ok := h.movementQuery(w, r)
	if !ok {
		return
	}
	records, err := h.listMovements.Expenditures(r.Context(), q)
	h.respondHistory(w, r, records, err)
}

func (h *LedgerHandler) movementQuery(w http.ResponseWriter, r *http.Request) (query.ListMovementsQuery, bool) {
	_, role, callerBase, ok := directoryhttp.CallerFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Not authenticated"})
		return query.ListMovementsQuery{}, false
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	return query.ListMovementsQuery{
		CallerRole:      role,
		CallerBase:      callerBase,
		BaseID:          parseOptionalID(r, "base_id"),
		EquipmentTypeID: parseOptionalID(r, "equipment_type_id"),
		Limit:           limit,
		Offset:          offset,
	}, true
}

func (h *LedgerHandler) respondHistory(w http.ResponseWriter, r *http.Request, records interface{}, err error) {
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list movement history")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// RegisterRoutes registers all ledger routes. Recording movements requires
// logistics or admin roles; commanders may record expenditures and
// assignments for their own troops.
func (h *LedgerHandler) RegisterRoutes(router *mux.Router) {
	logistics := []string{directorydomain.RoleAdmin, directorydomain.RoleLogisticsOfficer}
	operational := []string{directorydomain.RoleAdmin, directorydomain.RoleLogisticsOfficer, directorydomain.RoleBaseCommander}

	router.HandleFunc("/api/purchases", directoryhttp.RequireRoles(h.RecordPurchase, logistics...)).Methods("POST")
	router.HandleFunc("/api/purchases", directoryhttp.AuthMiddleware(h.ListPurchases)).Methods("GET")

	router.HandleFunc("/api/transfers", directoryhttp.RequireRoles(h.RecordTransfer, logistics...)).Methods("POST")
	router.HandleFunc("/api/transfers", directoryhttp.AuthMiddleware(h.ListTransfers)).Methods("GET")

	router.HandleFunc("/api/assignments", directoryhttp.RequireRoles(h.RecordAssignment, operational...)).Methods("POST")
	router.HandleFunc("/api/assignments", directoryhttp.AuthMiddleware(h.ListAssignments)).Methods("GET")

	router.HandleFunc("/api/expenditures", directoryhttp.RequireRoles(h.RecordExpenditure, operational...)).Methods("POST")
	router.HandleFunc("/api/expenditures", directoryhttp.AuthMiddleware(h.ListExpenditures)).Methods("GET")

	router.HandleFunc("/api/inventory", directoryhttp.AuthMiddleware(h.ListInventory)).Methods("GET")
	router.HandleFunc("/api/inventory/{base_id}/{equipment_type_id}", directoryhttp.AuthMiddleware(h.GetInventory)).Methods("GET")
}

func parseOptionalID(r *http.Request, name string) *uint {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	value := uint(id)
	return &value
}

// respondMovementError maps ledger errors to HTTP statuses
func respondMovementError(w http.ResponseWriter, movementType string, err error) {
	status := http.StatusBadRequest
	reason := "validation"

	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		status = http.StatusConflict
		reason = "insufficient_stock"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		status = http.StatusServiceUnavailable
		reason = "conflict"
	case errors.Is(err, domain.ErrUnknownReference):
		reason = "unknown_reference"
	}

	movementsRejected.WithLabelValues(movementType, reason).Inc()
	respondJSON(w, status, Response{Success: false, Error: err.Error()})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
