package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Колонки агента вместе со встроенным профилем пользователя: каталог агентов
// всегда отдается с именем и контактами
const agentColumns = `a.id, a.user_id, a.company, a.license_number, a.commission_rate,
	a.bio, a.website, a.social_links, a.total_properties_sold, a.total_properties_rented,
	a.average_rating, a.is_active, a.created_at, a.updated_at,
	u.username, u.email, u.first_name, u.last_name, u.phone_number, u.profile_picture, u.is_verified`

type AgentStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewAgentStorageAdapter(pool *pgxpool.Pool) (*AgentStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &AgentStorageAdapter{pool: pool}, nil
}

func scanAgent(row rowScanner) (*domain.Agent, error) {
	var a domain.Agent
	var u domain.User
	var socialLinksRaw []byte

	err := row.Scan(
		&a.ID, &a.UserID, &a.Company, &a.LicenseNumber, &a.CommissionRate,
		&a.Bio, &a.Website, &socialLinksRaw, &a.TotalPropertiesSold, &a.TotalPropertiesRented,
		&a.AverageRating, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
		&u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.ProfilePicture, &u.IsVerified,
	)
	if err != nil {
		return nil, err
	}

	if len(socialLinksRaw) > 0 {
		if err := json.Unmarshal(socialLinksRaw, &a.SocialLinks); err != nil {
			return nil, fmt.Errorf("failed to decode social links: %w", err)
		}
	}

	u.ID = a.UserID
	a.User = &u
	return &a, nil
}

// loadAgent подгружает профиль агента для встраивания в объявление
func loadAgent(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) (*domain.Agent, error) {
	query := fmt.Sprintf("SELECT %s FROM agents a JOIN users u ON u.id = a.user_id WHERE a.id = $1", agentColumns)

	agent, err := scanAgent(pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agent %s: %w", id, err)
	}
	return agent, nil
}

func (a *AgentStorageAdapter) FindWithFilters(ctx context.Context, filters domain.AgentFilters, limit, offset int) (*domain.PaginatedAgents, error) {
	whereClause, args := applyAgentFilters(filters)

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalCount int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM agents a JOIN users u ON u.id = a.user_id %s", whereClause)
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to count agents: %w", err)
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM agents a JOIN users u ON u.id = a.user_id %s %s LIMIT $%d OFFSET $%d",
		agentColumns, whereClause, agentOrderClause(filters), len(args)+1, len(args)+2,
	)
	rows, err := tx.Query(ctx, dataQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Agent, 0, limit)
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		items = append(items, *agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agents: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.PaginatedAgents{
		Items:        items,
		TotalCount:   int(totalCount),
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}

func (a *AgentStorageAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	return loadAgent(ctx, a.pool, id)
}

// GetOrCreateByUserID атомарно находит либо создает профиль агента для
// пользователя. ON CONFLICT DO UPDATE нужен, чтобы RETURNING сработал и для
// уже существующей строки - один round trip вместо read-then-write.
func (a *AgentStorageAdapter) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*domain.Agent, error) {
	agent := domain.Agent{
		ID:             uuid.New(),
		UserID:         userID,
		CommissionRate: domain.DefaultCommissionRate,
		IsActive:       true,
	}

	err := a.pool.QueryRow(ctx, `
		INSERT INTO agents (id, user_id, commission_rate, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, company, license_number, commission_rate, bio, website,
			total_properties_sold, total_properties_rented, average_rating,
			is_active, created_at, updated_at`,
		agent.ID, agent.UserID, agent.CommissionRate, agent.IsActive,
	).Scan(
		&agent.ID, &agent.Company, &agent.LicenseNumber, &agent.CommissionRate,
		&agent.Bio, &agent.Website, &agent.TotalPropertiesSold, &agent.TotalPropertiesRented,
		&agent.AverageRating, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create agent for user %s: %w", userID, err)
	}
	return &agent, nil
}

func (a *AgentStorageAdapter) Create(ctx context.Context, agent *domain.Agent) error {
	socialLinks, err := json.Marshal(agent.SocialLinks)
	if err != nil {
		return fmt.Errorf("failed to encode social links: %w", err)
	}

	err = a.pool.QueryRow(ctx, `
		INSERT INTO agents (id, user_id, company, license_number, commission_rate, bio, website, social_links, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING total_properties_sold, total_properties_rented, average_rating, created_at, updated_at`,
		agent.ID, agent.UserID, agent.Company, agent.LicenseNumber, agent.CommissionRate,
		agent.Bio, agent.Website, socialLinks, agent.IsActive,
	).Scan(&agent.TotalPropertiesSold, &agent.TotalPropertiesRented, &agent.AverageRating, &agent.CreatedAt, &agent.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert agent: %w", err)
	}
	return nil
}

func (a *AgentStorageAdapter) Update(ctx context.Context, agent *domain.Agent) error {
	socialLinks, err := json.Marshal(agent.SocialLinks)
	if err != nil {
		return fmt.Errorf("failed to encode social links: %w", err)
	}

	err = a.pool.QueryRow(ctx, `
		UPDATE agents SET
			company = $2, license_number = $3, commission_rate = $4, bio = $5,
			website = $6, social_links = $7, is_active = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		agent.ID, agent.Company, agent.LicenseNumber, agent.CommissionRate, agent.Bio,
		agent.Website, socialLinks, agent.IsActive,
	).Scan(&agent.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update agent %s: %w", agent.ID, err)
	}
	return nil
}

func (a *AgentStorageAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := a.pool.Exec(ctx, "DELETE FROM agents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete agent %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
