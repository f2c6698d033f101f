package models

// AreaUnit is the unit used to report home-range areas
type AreaUnit string

const (
	UnitSquareMeters     AreaUnit = "m2"
	UnitSquareKilometers AreaUnit = "km2"
	UnitHectares         AreaUnit = "ha"
)

// Valid reports whether the unit is one of the supported area units
func (u AreaUnit) Valid() bool {
	switch u {
	case UnitSquareMeters, UnitSquareKilometers, UnitHectares:
		return true
	}
	return false
}

// FromSquareMeters converts an area in m² into the unit
func (u AreaUnit) FromSquareMeters(m2 float64) float64 {
	switch u {
	case UnitSquareKilometers:
		return m2 / 1e6
	case UnitHectares:
		return m2 / 1e4
	default:
		return m2
	}
}

// HomeRangeEstimate is one estimator result for one study group.
// Vertices are projected (easting/northing, meters); VerticesGeo is the
// same outline reprojected to lon/lat for mapping.
type HomeRangeEstimate struct {
	ID          int64        `json:"id" db:"id"`
	GroupID     string       `json:"groupId" db:"group_id"`
	Estimator   string       `json:"estimator" db:"estimator"` // "mcp" or "kde"
	Percent     float64      `json:"percent" db:"percent"`     // Inclusion (MCP) or contour (KDE) percent
	Area        float64      `json:"area" db:"area"`
	Unit        AreaUnit     `json:"unit" db:"unit"`
	PointCount  int          `json:"pointCount" db:"point_count"`
	Bandwidth   float64      `json:"bandwidth,omitempty" db:"bandwidth"` // KDE only, meters
	Vertices    [][2]float64 `json:"vertices"`
	VerticesGeo [][2]float64 `json:"verticesGeo,omitempty"` // lon, lat
	CreatedAt   *string      `json:"createdAt,omitempty" db:"created_at"`
}

// Estimator name constants
const (
	EstimatorMCP = "mcp"
	EstimatorKDE = "kde"
)

// HomeRangeRequest carries the parameters for a home-range estimation call
type HomeRangeRequest struct {
	GroupIDs  []string `json:"groupIds" form:"groupIds"`
	Percent   float64  `json:"percent" form:"percent"`
	Unit      AreaUnit `json:"unit" form:"unit"`
	Bandwidth string   `json:"bandwidth,omitempty" form:"bandwidth"` // KDE: "reference" or a fixed value in meters
	StartTime int64    `json:"startTime,omitempty" form:"startTime"`
	EndTime   int64    `json:"endTime,omitempty" form:"endTime"`
}
