package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/internal/directory/usecase/command"
	"github.com/mams-platform/mams/internal/directory/usecase/query"
	"github.com/mams-platform/mams/pkg/logger"
)

// DirectoryHandler handles HTTP requests for bases and users
type DirectoryHandler struct {
	createBaseHandler *command.CreateBaseHandler
	registerHandler   *command.RegisterUserHandler
	loginHandler      *command.LoginUserHandler
	assignBaseHandler *command.AssignBaseHandler
	changeRoleHandler *command.ChangeRoleHandler
	getUserHandler    *query.GetUserHandler
	listUsersHandler  *query.ListUsersHandler
	listBasesHandler  *query.ListBasesHandler
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(
	createBaseHandler *command.CreateBaseHandler,
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	assignBaseHandler *command.AssignBaseHandler,
	changeRoleHandler *command.ChangeRoleHandler,
	getUserHandler *query.GetUserHandler,
	listUsersHandler *query.ListUsersHandler,
	listBasesHandler *query.ListBasesHandler,
) *DirectoryHandler {
	return &DirectoryHandler{
		createBaseHandler: createBaseHandler,
		registerHandler:   registerHandler,
		loginHandler:      loginHandler,
		assignBaseHandler: assignBaseHandler,
		changeRoleHandler: changeRoleHandler,
		getUserHandler:    getUserHandler,
		listUsersHandler:  listUsersHandler,
		listBasesHandler:  listBasesHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateBase handles POST /api/bases
func (h *DirectoryHandler) CreateBase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	base, err := h.createBaseHandler.Handle(command.CreateBaseCommand{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrBaseNameTaken) {
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Base created successfully",
		Data:    base,
	})
}

// ListBases handles GET /api/bases
func (h *DirectoryHandler) ListBases(w http.ResponseWriter, r *http.Request) {
	bases, err := h.listBasesHandler.Handle()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list bases")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list bases"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: bases})
}

// Register handles POST /api/users/register
func (h *DirectoryHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
		BaseID   *uint  `json:"base_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		BaseID:   req.BaseID,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login handles POST /api/users/login
func (h *DirectoryHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resp, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: resp})
}

// Me handles GET /api/users/me
func (h *DirectoryHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := CallerFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Not authenticated"})
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: userID})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "User not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// ListUsers handles GET /api/users
func (h *DirectoryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.listUsersHandler.Handle(query.ListUsersQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list users")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list users"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: users})
}

// AssignBase handles PATCH /api/users/{id}/base
func (h *DirectoryHandler) AssignBase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID"})
		return
	}

	var req struct {
		BaseID *uint `json:"base_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.assignBaseHandler.Handle(command.AssignBaseCommand{
		UserID: uint(id),
		BaseID: req.BaseID,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Base assignment updated",
		Data:    user,
	})
}

// ChangeRole handles PATCH /api/users/{id}/role
func (h *DirectoryHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID"})
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.changeRoleHandler.Handle(command.ChangeRoleCommand{
		UserID: uint(id),
		Role:   req.Role,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Role updated",
		Data:    user,
	})
}

// RegisterRoutes registers all directory routes
func (h *DirectoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/users/register", h.Register).Methods("POST")
	router.HandleFunc("/api/users/login", h.Login).Methods("POST")
	router.HandleFunc("/api/users/me", AuthMiddleware(h.Me)).Methods("GET")
	router.HandleFunc("/api/users", RequireRoles(h.ListUsers, domain.RoleAdmin)).Methods("GET")
	router.HandleFunc("/api/users/{id}/base", RequireRoles(h.AssignBase, domain.RoleAdmin)).Methods("PATCH")
	router.HandleFunc("/api/users/{id}/role", RequireRoles(h.ChangeRole, domain.RoleAdmin)).Methods("PATCH")

	router.HandleFunc("/api/bases", AuthMiddleware(h.ListBases)).Methods("GET")
	router.HandleFunc("/api/bases", RequireRoles(h.CreateBase, domain.RoleAdmin)).Methods("POST")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
