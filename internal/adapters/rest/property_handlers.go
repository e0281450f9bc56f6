package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadMemory = 32 << 20 // 32 MiB

type PropertyHandler struct {
	findPropertiesUC    usecases_port.FindPropertiesUseCase
	getDetailsUC        usecases_port.GetPropertyDetailsUseCase
	createPropertyUC    usecases_port.CreatePropertyUseCase
	updatePropertyUC    usecases_port.UpdatePropertyUseCase
	deletePropertyUC    usecases_port.DeletePropertyUseCase
	promotePropertyUC   usecases_port.PromotePropertyUseCase
	trackViewUC         usecases_port.TrackPropertyViewUseCase
	inquirePropertyUC   usecases_port.InquirePropertyUseCase
	findSimilarUC       usecases_port.FindSimilarPropertiesUseCase
	listInquiriesUC     usecases_port.ListInquiriesUseCase
	displayCurrency     string
}

func NewPropertyHandler(
	findPropertiesUC usecases_port.FindPropertiesUseCase,
	getDetailsUC usecases_port.GetPropertyDetailsUseCase,
	createPropertyUC usecases_port.CreatePropertyUseCase,
	updatePropertyUC usecases_port.UpdatePropertyUseCase,
	deletePropertyUC usecases_port.DeletePropertyUseCase,
	promotePropertyUC usecases_port.PromotePropertyUseCase,
	trackViewUC usecases_port.TrackPropertyViewUseCase,
	inquirePropertyUC usecases_port.InquirePropertyUseCase,
	findSimilarUC usecases_port.FindSimilarPropertiesUseCase,
	listInquiriesUC usecases_port.ListInquiriesUseCase,
	displayCurrency string,
) *PropertyHandler {
	return &PropertyHandler{
		findPropertiesUC:  findPropertiesUC,
		getDetailsUC:      getDetailsUC,
		createPropertyUC:  createPropertyUC,
		updatePropertyUC:  updatePropertyUC,
		deletePropertyUC:  deletePropertyUC,
		promotePropertyUC: promotePropertyUC,
		trackViewUC:       trackViewUC,
		inquirePropertyUC: inquirePropertyUC,
		findSimilarUC:     findSimilarUC,
		listInquiriesUC:   listInquiriesUC,
		displayCurrency:   displayCurrency,
	}
}

// FindProperties обрабатывает GET /api/v1/properties
func (h *PropertyHandler) FindProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	limit, offset := parsePagination(query)

	// Невалидные значения фильтров молча игнорируются
	filters := domain.PropertyFilters{
		Featured:   parseBool(query, "featured"),
		MinPrice:   parseFloat(query, "min_price"),
		MaxPrice:   parseFloat(query, "max_price"),
		MinArea:    parseInt(query, "min_area"),
		MaxArea:    parseInt(query, "max_area"),
		Category:   query.Get("category"),
		PriceType:  query.Get("price_type"),
		Bedrooms:   parseInt(query, "bedrooms"),
		Bathrooms:  parseInt(query, "bathrooms"),
		AgentID:    parseUUID(query, "agent"),
		IsFeatured: parseBool(query, "is_featured"),
		IsVerified: parseBool(query, "is_verified"),
		Search:     query.Get("search"),
	}
	filters.OrderBy, filters.Descending = domain.ParsePropertyOrdering(query.Get("ordering"))

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "FindProperties",
		"limit":   limit,
		"offset":  offset,
	})
	handlerLogger.Debug("Processing request to find properties", nil)

	paginatedResult, err := h.findPropertiesUC.Execute(r.Context(), filters, limit, offset)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve properties")
		return
	}

	handlerLogger.Info("Successfully found properties", port.Fields{
		"total_found":   paginatedResult.TotalCount,
		"items_on_page": len(paginatedResult.Items),
	})

	response := PaginatedPropertiesResponse{
		Total:    paginatedResult.TotalCount,
		Page:     paginatedResult.CurrentPage,
		PageSize: paginatedResult.ItemsPerPage,
		Data:     make([]PropertyCardResponse, len(paginatedResult.Items)),
	}
	for i := range paginatedResult.Items {
		response.Data[i] = toPropertyCardResponse(&paginatedResult.Items[i], h.displayCurrency)
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetPropertyDetails обрабатывает GET /api/v1/properties/{propertyID}
func (h *PropertyHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, ok := parsePropertyID(w, r, logger)
	if !ok {
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "GetPropertyDetails",
		"property_id": propertyID.String(),
	})

	property, err := h.getDetailsUC.Execute(r.Context(), propertyID)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		respondWithUseCaseError(w, err, "Failed to retrieve property")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyDetailsResponse(property, h.displayCurrency))
}

// CreateProperty обрабатывает POST /api/v1/properties.
// Принимает и JSON, и multipart/form-data с файлами uploaded_images.
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "CreateProperty"})

	var req PropertyCreateRequest
	var uploads []port.UploadedFile

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		body := propertyFormToJSON(r.MultipartForm.Value)
		if err := contracts.ValidateRequest(contracts.SchemaProperty, body); err != nil {
			handlerLogger.Warn("Property payload failed validation", port.Fields{"error": err.Error()})
			respondWithUseCaseError(w, err, "Invalid request body")
			return
		}
		if err := json.Unmarshal(body, &req); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		files, closeFiles, err := openUploads(r, "uploaded_images")
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Failed to read uploaded files")
			return
		}
		defer closeFiles()
		uploads = files
	} else {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadMemory))
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
			return
		}
		if err := contracts.ValidateRequest(contracts.SchemaProperty, body); err != nil {
			handlerLogger.Warn("Property payload failed validation", port.Fields{"error": err.Error()})
			respondWithUseCaseError(w, err, "Invalid request body")
			return
		}
		if err := json.Unmarshal(body, &req); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	draft := domain.PropertyDraft{
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		PriceType:      req.PriceType,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		Area:           req.Area,
		Category:       req.Category,
		AgentID:        req.AgentID,
		IsAvailable:    req.IsAvailable,
		Amenities:      req.Amenities,
		Images:         req.Images,
		VideoURL:       req.VideoURL,
		VirtualTourURL: req.VirtualTourURL,
		YearBuilt:      req.YearBuilt,
		ParkingSpaces:  req.ParkingSpaces,
		Furnished:      req.Furnished,
		PetFriendly:    req.PetFriendly,
	}

	identity := contextkeys.IdentityFromContext(r.Context())

	property, err := h.createPropertyUC.Execute(r.Context(), identity, draft, uploads)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		respondWithUseCaseError(w, err, "Failed to create property")
		return
	}

	handlerLogger.Info("Property created", port.Fields{"property_id": property.ID.String()})
	RespondWithJSON(w, http.StatusCreated, toPropertyDetailsResponse(property, h.displayCurrency))
}

// UpdateProperty обрабатывает PUT/PATCH /api/v1/properties/{propertyID}.
// Отсутствующее в теле поле остается нетронутым.
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, ok := parsePropertyID(w, r, logger)
	if !ok {
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "UpdateProperty",
		"property_id": propertyID.String(),
	})

	var req PropertyUpdateRequest
	var uploads []port.UploadedFile

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		if err := json.Unmarshal(propertyFormToJSON(r.MultipartForm.Value), &req); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		files, closeFiles, err := openUploads(r, "uploaded_images")
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Failed to read uploaded files")
			return
		}
		defer closeFiles()
		uploads = files
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	patch := domain.PropertyPatch{
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		PriceType:      req.PriceType,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		Area:           req.Area,
		Category:       req.Category,
		AgentID:        req.AgentID,
		IsFeatured:     req.IsFeatured,
		IsVerified:     req.IsVerified,
		IsAvailable:    req.IsAvailable,
		Amenities:      req.Amenities,
		Images:         req.Images,
		VideoURL:       req.VideoURL,
		VirtualTourURL: req.VirtualTourURL,
		YearBuilt:      req.YearBuilt,
		ParkingSpaces:  req.ParkingSpaces,
		Furnished:      req.Furnished,
		PetFriendly:    req.PetFriendly,
	}

	property, err := h.updatePropertyUC.Execute(r.Context(), propertyID, patch, uploads)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		respondWithUseCaseError(w, err, "Failed to update property")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyDetailsResponse(property, h.displayCurrency))
}

// DeleteProperty обрабатывает DELETE /api/v1/properties/{propertyID}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, ok := parsePropertyID(w, r, logger)
	if !ok {
		return
	}

	if err := h.deletePropertyUC.Execute(r.Context(), propertyID); err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "DeleteProperty"})
		respondWithUseCaseError(w, err, "Failed to delete property")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PromoteProperty обрабатывает POST /api/v1/properties/{propertyID}/promote
func (h *PropertyHandler) PromoteProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, ok := parsePropertyID(w, r, logger)
	if !ok {
		return
	}

	// Тело опционально: пустое или без days дает дефолтное окно
	var req PromoteRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	days := 0
	if req.Days != nil {
		days = *req.Days
	}

	property, err := h.promotePropertyUC.Execute(r.Context(), propertyID, days)
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "PromoteProperty"})
		respondWithUseCaseError(w, err, "Failed to promote property")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "promoted",
		"featured_until": property.FeaturedUntil,
	})
}

// TrackView обрабатывает POST /api/v1/properties/{propertyID}/track_view.
// Повторный просмотр с того же IP - тоже успех.
func (h *PropertyHandler) TrackView(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, ok := parsePropertyID(w, r, logger)
	if !ok {
		return
	}

	err := h.trackViewUC.Execute(r.Context(), propertyID, clientIP(r), r.UserAgent())
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "TrackView"})
		respondWithUseCaseError(w, err, "Failed to track view")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "view tracked"})
}

// InquireProperty обрабатывает POST /api/v1/properties/{propertyID}/inquire
func (h *PropertyHandler) InquireProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, ok := parsePropertyID(w, r, logger)
	if !ok {
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "InquireProperty",
		"property_id": propertyID.String(),
	})

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadMemory))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if err := contracts.ValidateRequest(contracts.SchemaInquiry, body); err != nil {
		handlerLogger.Warn("Inquiry payload failed validation", port.Fields{"error": err.Error()})
		respondWithUseCaseError(w, err, "Invalid request body")
		return
	}

	var req InquiryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inquiry, err := h.inquirePropertyUC.Execute(r.Context(), propertyID, domain.InquiryDraft{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		respondWithUseCaseError(w, err, "Failed to create inquiry")
		return
	}

	RespondWithJSON(w, http.StatusCreated, toInquiryResponse(inquiry))
}

// FindSimilar обрабатывает GET /api/v1/properties/{propertyID}/similar
func (h *PropertyHandler) FindSimilar(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID, ok := parsePropertyID(w, r, logger)
	if !ok {
		return
	}

	limit := 6
	if v := parseInt(r.URL.Query(), "limit"); v != nil && *v > 0 && *v <= 50 {
		limit = *v
	}

	similar, err := h.findSimilarUC.Execute(r.Context(), propertyID, limit)
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "FindSimilar"})
		respondWithUseCaseError(w, err, "Failed to find similar properties")
		return
	}

	response := make([]PropertyCardResponse, len(similar))
	for i := range similar {
		response[i] = toPropertyCardResponse(&similar[i], h.displayCurrency)
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// ListInquiries обрабатывает GET /api/v1/inquiries
func (h *PropertyHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	query := r.URL.Query()

	limit, offset := parsePagination(query)
	filters := domain.InquiryFilters{
		PropertyID: parseUUID(query, "property"),
		Status:     query.Get("status"),
	}

	paginatedResult, err := h.listInquiriesUC.Execute(r.Context(), filters, limit, offset)
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "ListInquiries"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve inquiries")
		return
	}

	response := PaginatedInquiriesResponse{
		Total:    paginatedResult.TotalCount,
		Page:     paginatedResult.CurrentPage,
		PageSize: paginatedResult.ItemsPerPage,
		Data:     make([]InquiryResponse, len(paginatedResult.Items)),
	}
	for i := range paginatedResult.Items {
		response.Data[i] = toInquiryResponse(&paginatedResult.Items[i])
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// --- Вспомогательные функции ---

func parsePropertyID(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "propertyID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		logger.Warn("Invalid property ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID format")
		return uuid.Nil, false
	}
	return id, true
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// propertyFormToJSON собирает multipart-поля в JSON-объект, приводя
// числовые и булевы поля к их типам. Непарсящееся значение просто
// не попадает в объект.
func propertyFormToJSON(form url.Values) []byte {
	obj := make(map[string]interface{})

	stringFields := []string{"title", "description", "price_type", "location", "category",
		"agent_id", "video_url", "virtual_tour_url", "amenities"}
	floatFields := []string{"price", "latitude", "longitude"}
	intFields := []string{"bedrooms", "bathrooms", "area", "year_built", "parking_spaces"}
	boolFields := []string{"furnished", "pet_friendly", "is_available", "is_featured", "is_verified"}

	for _, key := range stringFields {
		if v := form.Get(key); v != "" {
			obj[key] = v
		}
	}
	for _, key := range floatFields {
		if raw := form.Get(key); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				obj[key] = v
			}
		}
	}
	for _, key := range intFields {
		if raw := form.Get(key); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				obj[key] = v
			}
		}
	}
	for _, key := range boolFields {
		if raw := form.Get(key); raw != "" {
			if v, err := strconv.ParseBool(raw); err == nil {
				obj[key] = v
			}
		}
	}
	if images, ok := form["images"]; ok && len(images) > 0 {
		obj["images"] = images
	}

	body, _ := json.Marshal(obj)
	return body
}

// openUploads открывает все файлы из multipart-поля.
// Возвращенная функция закрывает их все разом.
func openUploads(r *http.Request, field string) ([]port.UploadedFile, func(), error) {
	if r.MultipartForm == nil {
		return nil, func() {}, nil
	}

	headers := r.MultipartForm.File[field]
	uploads := make([]port.UploadedFile, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, file)
		uploads = append(uploads, port.UploadedFile{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		})
	}

	return uploads, closeAll, nil
}
