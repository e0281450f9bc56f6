package rest

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// WriteValidationErrors отдает 400 с объектом {field: message}
func WriteValidationErrors(w http.ResponseWriter, verr *domain.ValidationError) {
	RespondWithJSON(w, http.StatusBadRequest, verr.Fields)
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithUseCaseError мапит ошибки ядра на HTTP-статусы.
// fallbackMessage уходит клиенту при любой неожиданной ошибке.
func respondWithUseCaseError(w http.ResponseWriter, err error, fallbackMessage string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteValidationErrors(w, verr)
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, "Forbidden")
	default:
		WriteJSONError(w, http.StatusInternalServerError, fallbackMessage)
	}
}

// parsePagination разбирает page/page_size с дефолтами и потолком.
// Возвращает limit и offset для хранилища.
func parsePagination(query url.Values) (limit, offset int) {
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}

// Хелперы query-параметров. Политика validate-or-ignore: пропущенное или
// некорректное значение дает nil, а не ошибку.

func parseFloat(query url.Values, key string) *float64 {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(query url.Values, key string) *int {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseBool(query url.Values, key string) *bool {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseUUID(query url.Values, key string) *uuid.UUID {
	raw := query.Get(key)
	if raw == "" {
		return nil
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &v
}

// clientIP возвращает первый адрес из X-Forwarded-For,
// иначе host-часть RemoteAddr
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
