package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/movetrace/homerange-backend-go/internal/models"
)

// TrackRepository handles database operations for track points
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new track repository
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

const trackColumns = `id, group_id, data_time, longitude, latitude, heading, distance, easting, northing, utm_zone, created_at`

// InsertBatch writes a batch of track points inside one transaction
func (r *TrackRepository) InsertBatch(points []models.TrackPoint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO track_points (group_id, data_time, longitude, latitude, heading, distance, easting, northing, utm_zone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(p.GroupID, p.DataTime, p.Longitude, p.Latitude,
			p.Heading, p.Distance, p.Easting, p.Northing, p.UTMZone); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert track point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit track points: %w", err)
	}
	return nil
}

// GetTrackPoints retrieves track points with filtering and pagination
func (r *TrackRepository) GetTrackPoints(filter models.TrackPointFilter) ([]models.TrackPoint, int64, error) {
	query := "SELECT " + trackColumns + " FROM track_points"

	var conditions []string
	var args []interface{}

	if filter.GroupID != "" {
		conditions = append(conditions, "group_id = ?")
		args = append(args, filter.GroupID)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "data_time >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "data_time <= ?")
		args = append(args, filter.EndTime)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Total count for pagination
	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM track_points"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count track points: %w", err)
	}

	query += where + " ORDER BY data_time"
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.PageSize, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query track points: %w", err)
	}
	defer rows.Close()

	points, err := scanTrackPoints(rows)
	if err != nil {
		return nil, 0, err
	}
	return points, total, nil
}

// GetGroupPoints returns every point of one group in time order, optionally
// restricted to a time window (zero bounds are ignored)
func (r *TrackRepository) GetGroupPoints(groupID string, startTime, endTime int64) ([]models.TrackPoint, error) {
	query := "SELECT " + trackColumns + " FROM track_points WHERE group_id = ?"
	args := []interface{}{groupID}

	if startTime > 0 {
		query += " AND data_time >= ?"
		args = append(args, startTime)
	}
	if endTime > 0 {
		query += " AND data_time <= ?"
		args = append(args, endTime)
	}
	query += " ORDER BY data_time"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query group points: %w", err)
	}
	defer rows.Close()

	return scanTrackPoints(rows)
}

// ListGroups returns the distinct group ids present in storage
func (r *TrackRepository) ListGroups() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT group_id FROM track_points ORDER BY group_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// DeleteGroup removes every point of one group; returns the rows removed
func (r *TrackRepository) DeleteGroup(groupID string) (int64, error) {
	res, err := r.db.Exec("DELETE FROM track_points WHERE group_id = ?", groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete group %s: %w", groupID, err)
	}
	return res.RowsAffected()
}

func scanTrackPoints(rows *sql.Rows) ([]models.TrackPoint, error) {
	var points []models.TrackPoint
	for rows.Next() {
		var p models.TrackPoint
		if err := rows.Scan(&p.ID, &p.GroupID, &p.DataTime, &p.Longitude, &p.Latitude,
			&p.Heading, &p.Distance, &p.Easting, &p.Northing, &p.UTMZone, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan track point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
