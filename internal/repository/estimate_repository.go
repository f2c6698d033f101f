package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/movetrace/homerange-backend-go/internal/models"
)

// EstimateRepository persists computed home-range estimates
type EstimateRepository struct {
	db *sql.DB
}

// NewEstimateRepository creates a new estimate repository
func NewEstimateRepository(db *sql.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

// Insert stores one estimate and fills its ID
func (r *EstimateRepository) Insert(e *models.HomeRangeEstimate) error {
	verticesJSON, err := json.Marshal(e.Vertices)
	if err != nil {
		return fmt.Errorf("failed to marshal vertices: %w", err)
	}

	res, err := r.db.Exec(`
		INSERT INTO home_range_estimates (group_id, estimator, percent, area, unit, point_count, bandwidth, vertices_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.GroupID, e.Estimator, e.Percent, e.Area, string(e.Unit), e.PointCount, e.Bandwidth, string(verticesJSON))
	if err != nil {
		return fmt.Errorf("failed to insert estimate: %w", err)
	}

	e.ID, err = res.LastInsertId()
	return err
}

// ListByGroup returns the stored estimates for one group, newest first
func (r *EstimateRepository) ListByGroup(groupID string) ([]models.HomeRangeEstimate, error) {
	rows, err := r.db.Query(`
		SELECT id, group_id, estimator, percent, area, unit, point_count, bandwidth, vertices_json, created_at
		FROM home_range_estimates
		WHERE group_id = ?
		ORDER BY id DESC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query estimates: %w", err)
	}
	defer rows.Close()

	var estimates []models.HomeRangeEstimate
	for rows.Next() {
		var e models.HomeRangeEstimate
		var unit, verticesJSON string
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Estimator, &e.Percent, &e.Area,
			&unit, &e.PointCount, &e.Bandwidth, &verticesJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan estimate: %w", err)
		}
		e.Unit = models.AreaUnit(unit)
		if err := json.Unmarshal([]byte(verticesJSON), &e.Vertices); err != nil {
			return nil, fmt.Errorf("failed to unmarshal vertices: %w", err)
		}
		estimates = append(estimates, e)
	}
	return estimates, rows.Err()
}
