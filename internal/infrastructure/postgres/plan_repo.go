package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cashroute/cashroute/internal/domain/model"
	"github.com/cashroute/cashroute/internal/domain/port"
	"github.com/cashroute/cashroute/internal/domain/valueobject"
	pgpkg "github.com/cashroute/cashroute/pkg/postgres"
)

// Compile-time interface check.
var _ port.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implements PlanRepository using PostgreSQL. Saving a record writes
// the plan row and its domain events' outbox rows in one transaction.
type PlanRepo struct {
	pool *pgxpool.Pool
}

func NewPlanRepo(pool *pgxpool.Pool) *PlanRepo {
	return &PlanRepo{pool: pool}
}

// storedStep is the JSONB shape of one route hop.
type storedStep struct {
	FromAccountID    string          `json:"fromAccountId"`
	ToAccountID      string          `json:"toAccountId"`
	Amount           decimal.Decimal `json:"amount"`
	Speed            string          `json:"speed"`
	Fee              decimal.Decimal `json:"fee"`
	EstimatedArrival time.Time       `json:"estimatedArrival"`
}

// storedRoute is the JSONB shape of one selected route.
type storedRoute struct {
	Category         string          `json:"category"`
	Steps            []storedStep    `json:"steps"`
	TotalFee         decimal.Decimal `json:"totalFee"`
	EstimatedArrival time.Time       `json:"estimatedArrival"`
	RiskLevel        string          `json:"riskLevel"`
	RiskScore        float64         `json:"riskScore"`
	Reasoning        string          `json:"reasoning"`
}

func (r *PlanRepo) Save(ctx context.Context, rec model.PlanRecord) error {
	routesJSON, err := marshalRoutes(rec.Routes())
	if err != nil {
		return fmt.Errorf("marshal routes: %w", err)
	}

	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO route_plans (
				id, target_account_id, amount, deadline, requested_at,
				status, routes, all_routes_risky,
				error_message, shortfall, suggestion, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			rec.ID(), rec.TargetAccountID(), rec.Amount(), rec.Deadline(), rec.RequestedAt(),
			rec.Status().String(), routesJSON, rec.AllRoutesRisky(),
			rec.ErrorMessage(), rec.Shortfall(), nullableText(rec.Suggestion()), rec.CreatedAt(),
		)
		if err != nil {
			return fmt.Errorf("insert route plan: %w", err)
		}

		// Write domain events to the outbox in the same transaction.
		for _, evt := range rec.Events() {
			payload, merr := json.Marshal(evt)
			if merr != nil {
				return fmt.Errorf("marshal outbox event: %w", merr)
			}
			_, err = tx.Exec(ctx, `
				INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, evt.EventID(), evt.AggregateID(), evt.AggregateType(), evt.EventType(), payload, evt.OccurredAt())
			if err != nil {
				return fmt.Errorf("insert outbox event: %w", err)
			}
		}

		return nil
	})
}

func (r *PlanRepo) FindByID(ctx context.Context, id uuid.UUID) (model.PlanRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, target_account_id, amount, deadline, requested_at,
			status, routes, all_routes_risky,
			error_message, shortfall, suggestion, created_at
		FROM route_plans WHERE id = $1
	`, id)

	rec, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PlanRecord{}, port.ErrPlanNotFound
		}
		return model.PlanRecord{}, fmt.Errorf("query route plan: %w", err)
	}
	return rec, nil
}

func (r *PlanRepo) ListRecent(ctx context.Context, limit, offset int) ([]model.PlanRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM route_plans`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count route plans: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, target_account_id, amount, deadline, requested_at,
			status, routes, all_routes_risky,
			error_message, shortfall, suggestion, created_at
		FROM route_plans
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list route plans: %w", err)
	}
	defer rows.Close()

	var records []model.PlanRecord
	for rows.Next() {
		rec, err := scanPlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan route plan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate route plans: %w", err)
	}

	return records, total, nil
}

func (r *PlanRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM route_plans WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete route plans: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPlan(row pgx.Row) (model.PlanRecord, error) {
	var (
		id             uuid.UUID
		targetID       string
		amount         decimal.Decimal
		deadline       time.Time
		requestedAt    time.Time
		statusStr      string
		routesJSON     []byte
		allRoutesRisky bool
		errorMessage   string
		shortfall      *decimal.Decimal
		suggestion     *string
		createdAt      time.Time
	)

	if err := row.Scan(
		&id, &targetID, &amount, &deadline, &requestedAt,
		&statusStr, &routesJSON, &allRoutesRisky,
		&errorMessage, &shortfall, &suggestion, &createdAt,
	); err != nil {
		return model.PlanRecord{}, err
	}

	status, err := valueobject.NewPlanStatus(statusStr)
	if err != nil {
		return model.PlanRecord{}, fmt.Errorf("stored plan %s: %w", id, err)
	}

	routes, err := unmarshalRoutes(routesJSON)
	if err != nil {
		return model.PlanRecord{}, fmt.Errorf("stored plan %s: %w", id, err)
	}

	var suggestionStr string
	if suggestion != nil {
		suggestionStr = *suggestion
	}

	return model.ReconstructPlan(
		id, targetID, amount, deadline, requestedAt,
		status, routes, allRoutesRisky,
		errorMessage, shortfall, suggestionStr, createdAt,
	), nil
}

func marshalRoutes(routes []model.Route) ([]byte, error) {
	stored := make([]storedRoute, 0, len(routes))
	for _, rt := range routes {
		steps := make([]storedStep, 0, len(rt.Steps))
		for _, s := range rt.Steps {
			steps = append(steps, storedStep{
				FromAccountID:    s.FromID,
				ToAccountID:      s.ToID,
				Amount:           s.Amount,
				Speed:            s.Speed.String(),
				Fee:              s.Fee,
				EstimatedArrival: s.Arrival,
			})
		}
		stored = append(stored, storedRoute{
			Category:         rt.Category.String(),
			Steps:            steps,
			TotalFee:         rt.TotalFee,
			EstimatedArrival: rt.Arrival,
			RiskLevel:        rt.RiskLevel.String(),
			RiskScore:        rt.RiskScore,
			Reasoning:        rt.Reasoning,
		})
	}
	return json.Marshal(stored)
}

func unmarshalRoutes(data []byte) ([]model.Route, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var stored []storedRoute
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal routes: %w", err)
	}

	routes := make([]model.Route, 0, len(stored))
	for _, sr := range stored {
		category, err := valueobject.NewRouteCategory(sr.Category)
		if err != nil {
			return nil, err
		}
		level, err := valueobject.RiskLevelFromString(sr.RiskLevel)
		if err != nil {
			return nil, err
		}

		steps := make([]model.TransferStep, 0, len(sr.Steps))
		for _, ss := range sr.Steps {
			speed, err := valueobject.NewTransferSpeed(ss.Speed)
			if err != nil {
				return nil, err
			}
			steps = append(steps, model.TransferStep{
				FromID:  ss.FromAccountID,
				ToID:    ss.ToAccountID,
				Amount:  ss.Amount,
				Speed:   speed,
				Fee:     ss.Fee,
				Arrival: ss.EstimatedArrival,
			})
		}

		routes = append(routes, model.Route{
			Category:  category,
			Steps:     steps,
			TotalFee:  sr.TotalFee,
			Arrival:   sr.EstimatedArrival,
			RiskLevel: level,
			RiskScore: sr.RiskScore,
			Reasoning: sr.Reasoning,
		})
	}
	return routes, nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
