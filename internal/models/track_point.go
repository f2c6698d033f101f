package models

import "time"

// TrackPoint represents a single GPS fix from an animal collar
type TrackPoint struct {
	ID        int64   `json:"id" db:"id"`
	GroupID   string  `json:"groupId" db:"group_id"`       // Study group label, e.g. "west", "eastcent"
	DataTime  int64   `json:"dataTime" db:"data_time"`     // Unix timestamp in seconds
	Longitude float64 `json:"longitude" db:"longitude"`
	Latitude  float64 `json:"latitude" db:"latitude"`

	// Derived per-step fields, computed at import time
	Heading  float64 `json:"heading" db:"heading"`   // Bearing from previous fix, degrees
	Distance float64 `json:"distance" db:"distance"` // Distance from previous fix, meters

	// Projected coordinates (UTM), filled once per import
	Easting  float64 `json:"easting" db:"easting"`
	Northing float64 `json:"northing" db:"northing"`
	UTMZone  int     `json:"utmZone" db:"utm_zone"`

	CreatedAt *string `json:"createdAt,omitempty" db:"created_at"`
}

// Time returns the fix time as time.Time (UTC)
func (p *TrackPoint) Time() time.Time {
	return time.Unix(p.DataTime, 0).UTC()
}

// TrackPointsResponse represents a paginated response of track points
type TrackPointsResponse struct {
	Data       []TrackPoint `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

// TrackPointFilter represents filter parameters for querying track points
type TrackPointFilter struct {
	GroupID   string `form:"groupId"`
	StartTime int64  `form:"startTime"` // Unix timestamp
	EndTime   int64  `form:"endTime"`   // Unix timestamp
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}
