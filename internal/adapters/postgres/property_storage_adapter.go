package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// propertyColumns - канонический порядок колонок таблицы properties,
// его же ждет scanProperty
const propertyColumns = `p.id, p.title, p.description, p.price, p.price_type, p.location,
	p.latitude, p.longitude, p.location_hash, p.bedrooms, p.bathrooms, p.area, p.category,
	p.agent_id, p.owner_id, p.is_featured, p.is_verified, p.is_available, p.rating,
	p.total_reviews, p.amenities, p.images, p.video_url, p.virtual_tour_url, p.year_built,
	p.parking_spaces, p.furnished, p.pet_friendly, p.featured_until, p.created_at, p.updated_at`

type PropertyStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewPropertyStorageAdapter(pool *pgxpool.Pool) (*PropertyStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &PropertyStorageAdapter{pool: pool}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var p domain.Property
	var amenitiesRaw, imagesRaw []byte
	var locationHash *string

	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.PriceType, &p.Location,
		&p.Latitude, &p.Longitude, &locationHash, &p.Bedrooms, &p.Bathrooms, &p.Area, &p.Category,
		&p.AgentID, &p.OwnerID, &p.IsFeatured, &p.IsVerified, &p.IsAvailable, &p.Rating,
		&p.TotalReviews, &amenitiesRaw, &imagesRaw, &p.VideoURL, &p.VirtualTourURL, &p.YearBuilt,
		&p.ParkingSpaces, &p.Furnished, &p.PetFriendly, &p.FeaturedUntil, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if locationHash != nil {
		p.LocationHash = *locationHash
	}
	if err := json.Unmarshal(amenitiesRaw, &p.Amenities); err != nil {
		return nil, fmt.Errorf("failed to decode amenities: %w", err)
	}
	if err := json.Unmarshal(imagesRaw, &p.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}

	return &p, nil
}

// FindWithFilters ищет объявления по набору фильтров с пагинацией.
// COUNT и страница данных выполняются в одной транзакции.
func (a *PropertyStorageAdapter) FindWithFilters(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PropertyStorageAdapter",
		"method":    "FindWithFilters",
		"limit":     limit,
		"offset":    offset,
	})

	whereClause, args := applyPropertyFilters(filters)

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties p %s", whereClause)
	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count properties", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}

	if totalCount == 0 {
		return &domain.PaginatedProperties{
			Items:        []domain.Property{},
			TotalCount:   0,
			CurrentPage:  offset/limit + 1,
			ItemsPerPage: limit,
		}, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM properties p %s %s LIMIT $%d OFFSET $%d",
		propertyColumns, whereClause, propertyOrderClause(filters), len(args)+1, len(args)+2,
	)
	rows, err := tx.Query(ctx, dataQuery, append(args, limit, offset)...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Property, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Properties page loaded", port.Fields{"count": len(items), "total": totalCount})

	return &domain.PaginatedProperties{
		Items:        items,
		TotalCount:   int(totalCount),
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}

// GetByID возвращает объявление вместе со встроенным профилем агента
func (a *PropertyStorageAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties p WHERE p.id = $1", propertyColumns)

	property, err := scanProperty(a.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property %s: %w", id, err)
	}

	if property.AgentID != nil {
		agent, err := loadAgent(ctx, a.pool, *property.AgentID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		property.Agent = agent
	}

	return property, nil
}

func (a *PropertyStorageAdapter) Create(ctx context.Context, p *domain.Property) error {
	amenities, err := json.Marshal(p.Amenities)
	if err != nil {
		return fmt.Errorf("failed to encode amenities: %w", err)
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	p.LocationHash = locationHash(p.Latitude, p.Longitude)
	var hash *string
	if p.LocationHash != "" {
		hash = &p.LocationHash
	}

	query := `
		INSERT INTO properties (
			id, title, description, price, price_type, location, latitude, longitude,
			location_hash, bedrooms, bathrooms, area, category, agent_id, owner_id,
			is_available, amenities, images, video_url, virtual_tour_url, year_built,
			parking_spaces, furnished, pet_friendly
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		RETURNING is_featured, is_verified, rating, total_reviews, created_at, updated_at`

	err = a.pool.QueryRow(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.PriceType, p.Location, p.Latitude, p.Longitude,
		hash, p.Bedrooms, p.Bathrooms, p.Area, p.Category, p.AgentID, p.OwnerID,
		p.IsAvailable, amenities, images, p.VideoURL, p.VirtualTourURL, p.YearBuilt,
		p.ParkingSpaces, p.Furnished, p.PetFriendly,
	).Scan(&p.IsFeatured, &p.IsVerified, &p.Rating, &p.TotalReviews, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (a *PropertyStorageAdapter) Update(ctx context.Context, p *domain.Property) error {
	amenities, err := json.Marshal(p.Amenities)
	if err != nil {
		return fmt.Errorf("failed to encode amenities: %w", err)
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	p.LocationHash = locationHash(p.Latitude, p.Longitude)
	var hash *string
	if p.LocationHash != "" {
		hash = &p.LocationHash
	}

	query := `
		UPDATE properties SET
			title = $2, description = $3, price = $4, price_type = $5, location = $6,
			latitude = $7, longitude = $8, location_hash = $9, bedrooms = $10,
			bathrooms = $11, area = $12, category = $13, agent_id = $14,
			is_featured = $15, is_verified = $16, is_available = $17,
			amenities = $18, images = $19, video_url = $20, virtual_tour_url = $21,
			year_built = $22, parking_spaces = $23, furnished = $24, pet_friendly = $25,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err = a.pool.QueryRow(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.PriceType, p.Location,
		p.Latitude, p.Longitude, hash, p.Bedrooms,
		p.Bathrooms, p.Area, p.Category, p.AgentID,
		p.IsFeatured, p.IsVerified, p.IsAvailable,
		amenities, images, p.VideoURL, p.VirtualTourURL,
		p.YearBuilt, p.ParkingSpaces, p.Furnished, p.PetFriendly,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update property %s: %w", p.ID, err)
	}
	return nil
}

func (a *PropertyStorageAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := a.pool.Exec(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete property %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Promote перезаписывает featured-окно. Повторный promote двигает окно
// от "сейчас", ничего не суммируя.
func (a *PropertyStorageAdapter) Promote(ctx context.Context, id uuid.UUID, featuredUntil time.Time) error {
	ct, err := a.pool.Exec(ctx,
		"UPDATE properties SET is_featured = true, featured_until = $2, updated_at = now() WHERE id = $1",
		id, featuredUntil,
	)
	if err != nil {
		return fmt.Errorf("failed to promote property %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TrackView - атомарный insert-if-absent по уникальному ключу
// (property_id, ip_address). Конкурентные одинаковые запросы не дадут
// двух строк: дубликат молча поглощается базой.
func (a *PropertyStorageAdapter) TrackView(ctx context.Context, view *domain.PropertyView) (bool, error) {
	ct, err := a.pool.Exec(ctx, `
		INSERT INTO property_views (id, property_id, ip_address, user_agent)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (property_id, ip_address) DO NOTHING`,
		view.ID, view.PropertyID, view.IPAddress, view.UserAgent,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert property view: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (a *PropertyStorageAdapter) CreateInquiry(ctx context.Context, inquiry *domain.PropertyInquiry) error {
	err := a.pool.QueryRow(ctx, `
		INSERT INTO property_inquiries (id, property_id, name, email, phone, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		inquiry.ID, inquiry.PropertyID, inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Message, inquiry.Status,
	).Scan(&inquiry.CreatedAt, &inquiry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}
	return nil
}

func (a *PropertyStorageAdapter) FindInquiries(ctx context.Context, filters domain.InquiryFilters, limit, offset int) (*domain.PaginatedInquiries, error) {
	qb := newQueryBuilder()
	if filters.PropertyID != nil {
		qb.AddEquals("i.property_id", *filters.PropertyID)
	}
	if filters.Status != "" {
		qb.AddEquals("i.status", filters.Status)
	}
	whereClause, args := qb.build()

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalCount int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM property_inquiries i %s", whereClause)
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to count inquiries: %w", err)
	}

	dataQuery := fmt.Sprintf(`
		SELECT i.id, i.property_id, i.name, i.email, i.phone, i.message, i.status, i.created_at, i.updated_at
		FROM property_inquiries i %s
		ORDER BY i.created_at DESC, i.id ASC
		LIMIT $%d OFFSET $%d`, whereClause, len(args)+1, len(args)+2)

	rows, err := tx.Query(ctx, dataQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	items := make([]domain.PropertyInquiry, 0, limit)
	for rows.Next() {
		var inq domain.PropertyInquiry
		if err := rows.Scan(&inq.ID, &inq.PropertyID, &inq.Name, &inq.Email, &inq.Phone, &inq.Message, &inq.Status, &inq.CreatedAt, &inq.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		items = append(items, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inquiries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.PaginatedInquiries{
		Items:        items,
		TotalCount:   int(totalCount),
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}

// FindSimilar подбирает доступные объявления той же категории; при наличии
// location_hash у якоря - еще и в той же гео-ячейке
func (a *PropertyStorageAdapter) FindSimilar(ctx context.Context, anchor *domain.Property, limit int) ([]domain.Property, error) {
	qb := newQueryBuilder("p.is_available = true")
	qb.AddEquals("p.category", anchor.Category)
	qb.addCondition("%s != $%d", "p.id", anchor.ID)
	if anchor.LocationHash != "" {
		qb.AddEquals("p.location_hash", anchor.LocationHash)
	}
	whereClause, args := qb.build()

	query := fmt.Sprintf(
		"SELECT %s FROM properties p %s ORDER BY p.created_at DESC, p.id ASC LIMIT $%d",
		propertyColumns, whereClause, len(args)+1,
	)

	rows, err := a.pool.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar properties: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Property, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// OwnerStats считает агрегаты по объявлениям владельца одним запросом
func (a *PropertyStorageAdapter) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*domain.OwnerStats, error) {
	var stats domain.OwnerStats
	err := a.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE p.is_available),
			COALESCE((SELECT COUNT(*) FROM property_views v
				WHERE v.property_id IN (SELECT id FROM properties WHERE owner_id = $1)), 0),
			COALESCE((SELECT COUNT(*) FROM property_inquiries i
				WHERE i.property_id IN (SELECT id FROM properties WHERE owner_id = $1)), 0)
		FROM properties p
		WHERE p.owner_id = $1`,
		ownerID,
	).Scan(&stats.TotalProperties, &stats.ActiveListings, &stats.TotalViews, &stats.TotalInquiries)
	if err != nil {
		return nil, fmt.Errorf("failed to compute owner stats: %w", err)
	}
	return &stats, nil
}
