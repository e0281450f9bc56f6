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

type UserHandler struct {
	registerUC           usecases_port.RegisterUserUseCase
	loginUC              usecases_port.LoginUserUseCase
	logoutUC             usecases_port.LogoutUserUseCase
	getProfileUC         usecases_port.GetUserProfileUseCase
	getOwnerStatsUC      usecases_port.GetOwnerStatsUseCase
	uploadVerificationUC usecases_port.UploadVerificationUseCase
	updateUserUC         usecases_port.UpdateUserUseCase
}

func NewUserHandler(
	registerUC usecases_port.RegisterUserUseCase,
	loginUC usecases_port.LoginUserUseCase,
	logoutUC usecases_port.LogoutUserUseCase,
	getProfileUC usecases_port.GetUserProfileUseCase,
	getOwnerStatsUC usecases_port.GetOwnerStatsUseCase,
	uploadVerificationUC usecases_port.UploadVerificationUseCase,
	updateUserUC usecases_port.UpdateUserUseCase,
) *UserHandler {
	return &UserHandler{
		registerUC:           registerUC,
		loginUC:              loginUC,
		logoutUC:             logoutUC,
		getProfileUC:         getProfileUC,
		getOwnerStatsUC:      getOwnerStatsUC,
		uploadVerificationUC: uploadVerificationUC,
		updateUserUC:         updateUserUC,
	}
}

// Register обрабатывает POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "Register"})

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadMemory))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if err := contracts.ValidateRequest(contracts.SchemaUserRegistration, body); err != nil {
		handlerLogger.Warn("Registration payload failed validation", port.Fields{"error": err.Error()})
		respondWithUseCaseError(w, err, "Invalid request body")
		return
	}

	var req RegistrationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.registerUC.Execute(r.Context(), domain.RegistrationDraft{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		UserType:    req.UserType,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Password2:   req.Password2,
	})
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		respondWithUseCaseError(w, err, "Failed to register user")
		return
	}

	handlerLogger.Info("User registered", port.Fields{"user_id": user.ID.String()})
	RespondWithJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login обрабатывает POST /api/v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.loginUC.Execute(r.Context(), req.Username, req.Password)
	if err != nil {
		handlerLogger.Warn("Login failed", port.Fields{"username": req.Username})
		respondWithUseCaseError(w, err, "Failed to log in")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"token":  token,
		"user":   toUserResponse(user),
	})
}

// Logout обрабатывает POST /api/v1/users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	identity := contextkeys.IdentityFromContext(r.Context())
	if err := h.logoutUC.Execute(r.Context(), identity); err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "Logout"})
		respondWithUseCaseError(w, err, "Failed to log out")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// GetProfile обрабатывает GET /api/v1/users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	identity := contextkeys.IdentityFromContext(r.Context())
	user, err := h.getProfileUC.Execute(r.Context(), identity.UserID)
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "GetProfile"})
		respondWithUseCaseError(w, err, "Failed to retrieve profile")
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// GetStats обрабатывает GET /api/v1/users/stats
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	identity := contextkeys.IdentityFromContext(r.Context())
	stats, err := h.getOwnerStatsUC.Execute(r.Context(), identity.UserID)
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "GetStats"})
		respondWithUseCaseError(w, err, "Failed to retrieve stats")
		return
	}

	RespondWithJSON(w, http.StatusOK, OwnerStatsResponse{
		TotalProperties: stats.TotalProperties,
		ActiveListings:  stats.ActiveListings,
		TotalViews:      stats.TotalViews,
		TotalInquiries:  stats.TotalInquiries,
	})
}

// UploadVerification обрабатывает POST /api/v1/users/upload_verification.
// Multipart: поле document_type + файл document.
func (h *UserHandler) UploadVerification(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "UploadVerification"})

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	metaFields := map[string]string{}
	if dt := r.FormValue("document_type"); dt != "" {
		metaFields["document_type"] = dt
	}
	meta, _ := json.Marshal(metaFields)
	if err := contracts.ValidateRequest(contracts.SchemaVerificationDocument, meta); err != nil {
		handlerLogger.Warn("Verification payload failed validation", port.Fields{"error": err.Error()})
		respondWithUseCaseError(w, err, "Invalid request")
		return
	}

	files, closeFiles, err := openUploads(r, "document")
	if err != nil || len(files) == 0 {
		WriteJSONError(w, http.StatusBadRequest, "Document file is required")
		return
	}
	defer closeFiles()

	identity := contextkeys.IdentityFromContext(r.Context())
	doc, err := h.uploadVerificationUC.Execute(r.Context(), identity, r.FormValue("document_type"), files[0])
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		respondWithUseCaseError(w, err, "Failed to upload verification document")
		return
	}

	RespondWithJSON(w, http.StatusCreated, toVerificationDocumentResponse(doc))
}

// GetUser обрабатывает GET /api/v1/users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	userID, ok := parseUserID(w, r, logger)
	if !ok {
		return
	}

	user, err := h.getProfileUC.Execute(r.Context(), userID)
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "GetUser"})
		respondWithUseCaseError(w, err, "Failed to retrieve user")
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateUser обрабатывает PUT/PATCH /api/v1/users/{userID}.
// Менять можно только собственный аккаунт.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	userID, ok := parseUserID(w, r, logger)
	if !ok {
		return
	}

	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	identity := contextkeys.IdentityFromContext(r.Context())
	user, err := h.updateUserUC.Execute(r.Context(), identity, userID, domain.UserPatch{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "UpdateUser"})
		respondWithUseCaseError(w, err, "Failed to update user")
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

func parseUserID(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "userID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		logger.Warn("Invalid user ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}
