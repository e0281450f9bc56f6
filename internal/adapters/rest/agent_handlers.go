package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AgentHandler struct {
	listAgentsUC  usecases_port.ListAgentsUseCase
	getAgentUC    usecases_port.GetAgentUseCase
	saveAgentUC   usecases_port.SaveAgentUseCase
	deleteAgentUC usecases_port.DeleteAgentUseCase
}

func NewAgentHandler(
	listAgentsUC usecases_port.ListAgentsUseCase,
	getAgentUC usecases_port.GetAgentUseCase,
	saveAgentUC usecases_port.SaveAgentUseCase,
	deleteAgentUC usecases_port.DeleteAgentUseCase,
) *AgentHandler {
	return &AgentHandler{
		listAgentsUC:  listAgentsUC,
		getAgentUC:    getAgentUC,
		saveAgentUC:   saveAgentUC,
		deleteAgentUC: deleteAgentUC,
	}
}

// ListAgents обрабатывает GET /api/v1/agents
func (h *AgentHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	limit, offset := parsePagination(query)
	filters := domain.AgentFilters{
		Company:  query.Get("company"),
		IsActive: parseBool(query, "is_active"),
		Search:   query.Get("search"),
	}
	filters.OrderBy, filters.Descending = domain.ParseAgentOrdering(query.Get("ordering"))

	paginatedResult, err := h.listAgentsUC.Execute(r.Context(), filters, limit, offset)
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "ListAgents"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve agents")
		return
	}

	response := PaginatedAgentsResponse{
		Total:    paginatedResult.TotalCount,
		Page:     paginatedResult.CurrentPage,
		PageSize: paginatedResult.ItemsPerPage,
		Data:     make([]AgentResponse, len(paginatedResult.Items)),
	}
	for i := range paginatedResult.Items {
		response.Data[i] = toAgentResponse(&paginatedResult.Items[i])
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// GetAgent обрабатывает GET /api/v1/agents/{agentID}
func (h *AgentHandler) GetAgent(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	agentID, ok := parseAgentID(w, r, logger)
	if !ok {
		return
	}

	agent, err := h.getAgentUC.Execute(r.Context(), agentID)
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "GetAgent"})
		respondWithUseCaseError(w, err, "Failed to retrieve agent")
		return
	}

	RespondWithJSON(w, http.StatusOK, toAgentResponse(agent))
}

// CreateAgent обрабатывает POST /api/v1/agents
func (h *AgentHandler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "CreateAgent"})

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadMemory))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if err := contracts.ValidateRequest(contracts.SchemaAgent, body); err != nil {
		handlerLogger.Warn("Agent payload failed validation", port.Fields{"error": err.Error()})
		respondWithUseCaseError(w, err, "Invalid request body")
		return
	}

	var req AgentCreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	agent, err := h.saveAgentUC.Create(r.Context(), domain.AgentDraft{
		UserID:         req.UserID,
		Company:        req.Company,
		LicenseNumber:  req.LicenseNumber,
		CommissionRate: req.CommissionRate,
		Bio:            req.Bio,
		Website:        req.Website,
		SocialLinks:    req.SocialLinks,
		IsActive:       req.IsActive,
	})
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		respondWithUseCaseError(w, err, "Failed to create agent")
		return
	}

	RespondWithJSON(w, http.StatusCreated, toAgentResponse(agent))
}

// UpdateAgent обрабатывает PUT/PATCH /api/v1/agents/{agentID}
func (h *AgentHandler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	agentID, ok := parseAgentID(w, r, logger)
	if !ok {
		return
	}

	var req AgentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	agent, err := h.saveAgentUC.Update(r.Context(), agentID, domain.AgentPatch{
		Company:        req.Company,
		LicenseNumber:  req.LicenseNumber,
		CommissionRate: req.CommissionRate,
		Bio:            req.Bio,
		Website:        req.Website,
		SocialLinks:    req.SocialLinks,
		IsActive:       req.IsActive,
	})
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "UpdateAgent"})
		respondWithUseCaseError(w, err, "Failed to update agent")
		return
	}

	RespondWithJSON(w, http.StatusOK, toAgentResponse(agent))
}

// DeleteAgent обрабатывает DELETE /api/v1/agents/{agentID}
func (h *AgentHandler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	agentID, ok := parseAgentID(w, r, logger)
	if !ok {
		return
	}

	if err := h.deleteAgentUC.Execute(r.Context(), agentID); err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "DeleteAgent"})
		respondWithUseCaseError(w, err, "Failed to delete agent")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseAgentID(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "agentID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		logger.Warn("Invalid agent ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid agent ID format")
		return uuid.Nil, false
	}
	return id, true
}
