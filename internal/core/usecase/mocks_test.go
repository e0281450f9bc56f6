package usecase

import (
	"context"
	"io"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// Моки портов для тестов use case. Незаданная функция означает,
// что тест не ожидает вызова этого метода.

type mockPropertyStorage struct {
	FindWithFiltersFn func(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error)
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	CreateFn          func(ctx context.Context, property *domain.Property) error
	UpdateFn          func(ctx context.Context, property *domain.Property) error
	DeleteFn          func(ctx context.Context, id uuid.UUID) error
	PromoteFn         func(ctx context.Context, id uuid.UUID, featuredUntil time.Time) error
	TrackViewFn       func(ctx context.Context, view *domain.PropertyView) (bool, error)
	CreateInquiryFn   func(ctx context.Context, inquiry *domain.PropertyInquiry) error
	FindInquiriesFn   func(ctx context.Context, filters domain.InquiryFilters, limit, offset int) (*domain.PaginatedInquiries, error)
	FindSimilarFn     func(ctx context.Context, anchor *domain.Property, limit int) ([]domain.Property, error)
	OwnerStatsFn      func(ctx context.Context, ownerID uuid.UUID) (*domain.OwnerStats, error)
}

func (m *mockPropertyStorage) FindWithFilters(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error) {
	return m.FindWithFiltersFn(ctx, filters, limit, offset)
}

func (m *mockPropertyStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockPropertyStorage) Create(ctx context.Context, property *domain.Property) error {
	return m.CreateFn(ctx, property)
}

func (m *mockPropertyStorage) Update(ctx context.Context, property *domain.Property) error {
	return m.UpdateFn(ctx, property)
}

func (m *mockPropertyStorage) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockPropertyStorage) Promote(ctx context.Context, id uuid.UUID, featuredUntil time.Time) error {
	return m.PromoteFn(ctx, id, featuredUntil)
}

func (m *mockPropertyStorage) TrackView(ctx context.Context, view *domain.PropertyView) (bool, error) {
	return m.TrackViewFn(ctx, view)
}

func (m *mockPropertyStorage) CreateInquiry(ctx context.Context, inquiry *domain.PropertyInquiry) error {
	return m.CreateInquiryFn(ctx, inquiry)
}

func (m *mockPropertyStorage) FindInquiries(ctx context.Context, filters domain.InquiryFilters, limit, offset int) (*domain.PaginatedInquiries, error) {
	return m.FindInquiriesFn(ctx, filters, limit, offset)
}

func (m *mockPropertyStorage) FindSimilar(ctx context.Context, anchor *domain.Property, limit int) ([]domain.Property, error) {
	return m.FindSimilarFn(ctx, anchor, limit)
}

func (m *mockPropertyStorage) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*domain.OwnerStats, error) {
	return m.OwnerStatsFn(ctx, ownerID)
}

type mockAgentStorage struct {
	FindWithFiltersFn     func(ctx context.Context, filters domain.AgentFilters, limit, offset int) (*domain.PaginatedAgents, error)
	GetByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	GetOrCreateByUserIDFn func(ctx context.Context, userID uuid.UUID) (*domain.Agent, error)
	CreateFn              func(ctx context.Context, agent *domain.Agent) error
	UpdateFn              func(ctx context.Context, agent *domain.Agent) error
	DeleteFn              func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAgentStorage) FindWithFilters(ctx context.Context, filters domain.AgentFilters, limit, offset int) (*domain.PaginatedAgents, error) {
	return m.FindWithFiltersFn(ctx, filters, limit, offset)
}

func (m *mockAgentStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockAgentStorage) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*domain.Agent, error) {
	return m.GetOrCreateByUserIDFn(ctx, userID)
}

func (m *mockAgentStorage) Create(ctx context.Context, agent *domain.Agent) error {
	return m.CreateFn(ctx, agent)
}

func (m *mockAgentStorage) Update(ctx context.Context, agent *domain.Agent) error {
	return m.UpdateFn(ctx, agent)
}

func (m *mockAgentStorage) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}

type mockUserStorage struct {
	CreateFn                     func(ctx context.Context, user *domain.User) error
	GetByIDFn                    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn              func(ctx context.Context, username string) (*domain.User, error)
	GetByEmailFn                 func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn                     func(ctx context.Context, user *domain.User) error
	UpdateLastLoginFn            func(ctx context.Context, id uuid.UUID, at time.Time) error
	ListVerificationDocumentsFn  func(ctx context.Context, userID uuid.UUID) ([]domain.VerificationDocument, error)
	CreateVerificationDocumentFn func(ctx context.Context, doc *domain.VerificationDocument) error
}

func (m *mockUserStorage) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFn(ctx, user)
}

func (m *mockUserStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockUserStorage) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.GetByUsernameFn(ctx, username)
}

func (m *mockUserStorage) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUserStorage) Update(ctx context.Context, user *domain.User) error {
	return m.UpdateFn(ctx, user)
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.UpdateLastLoginFn(ctx, id, at)
}

func (m *mockUserStorage) ListVerificationDocuments(ctx context.Context, userID uuid.UUID) ([]domain.VerificationDocument, error) {
	return m.ListVerificationDocumentsFn(ctx, userID)
}

func (m *mockUserStorage) CreateVerificationDocument(ctx context.Context, doc *domain.VerificationDocument) error {
	return m.CreateVerificationDocumentFn(ctx, doc)
}

type mockFileStorage struct {
	SaveFileFn func(ctx context.Context, namespace, filename string, content io.Reader) (string, error)
}

func (m *mockFileStorage) SaveFile(ctx context.Context, namespace, filename string, content io.Reader) (string, error) {
	return m.SaveFileFn(ctx, namespace, filename, content)
}

type mockEventPublisher struct {
	PublishFn func(ctx context.Context, routingKey string, payload interface{}) error
	published []string
}

func (m *mockEventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	m.published = append(m.published, routingKey)
	if m.PublishFn != nil {
		return m.PublishFn(ctx, routingKey, payload)
	}
	return nil
}

func (m *mockEventPublisher) Close() error { return nil }

type mockTokenManager struct {
	IssueFn    func(user *domain.User) (string, error)
	ValidateFn func(token string) (*domain.Identity, error)
}

func (m *mockTokenManager) Issue(user *domain.User) (string, error) {
	return m.IssueFn(user)
}

func (m *mockTokenManager) Validate(token string) (*domain.Identity, error) {
	return m.ValidateFn(token)
}

type mockTokenStore struct {
	RevokeFn    func(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevokedFn func(ctx context.Context, tokenID string) (bool, error)
}

func (m *mockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.RevokeFn(ctx, tokenID, ttl)
}

func (m *mockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return m.IsRevokedFn(ctx, tokenID)
}
