package models

// FractalRequest carries the parameters for a fractal-dimension call
type FractalRequest struct {
	GroupID   string `json:"groupId" form:"groupId"`
	Window    string `json:"window" form:"window"`       // "early", "mid", "late" or "" for all
	LagMode   string `json:"lagMode" form:"lagMode"`     // "automatic" or "full"
	PlotPath  string `json:"plotPath,omitempty" form:"plotPath"` // optional log-log diagnostic PNG
	StartTime int64  `json:"startTime,omitempty" form:"startTime"`
	EndTime   int64  `json:"endTime,omitempty" form:"endTime"`
}

// FractalResult holds the spectral fractal-dimension estimate for one subset
type FractalResult struct {
	GroupID    string  `json:"groupId"`
	Window     string  `json:"window,omitempty"`
	Dimension  float64 `json:"dimension"`          // D in [1, 2]
	Exponent   float64 `json:"exponent"`           // fitted spectral exponent beta
	PointCount int     `json:"pointCount"`
	LagMode    string  `json:"lagMode"`
	PlotPath   string  `json:"plotPath,omitempty"` // written only when requested
}

// Calendar windows used to split a season into thirds
const (
	WindowEarly = "early"
	WindowMid   = "mid"
	WindowLate  = "late"
)
