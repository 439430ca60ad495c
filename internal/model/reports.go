package model

import (
	"time"

	"github.com/google/uuid"
)

// Traffic report categories
const (
	CategoryTrafficJam = "TRAFFIC_JAM"
	CategoryAccident   = "ACCIDENT"
	CategoryFlooding   = "FLOODING"
	CategoryRoadClosed = "ROAD_CLOSED"
	CategoryCheckpoint = "CHECKPOINT"
)

// Severity levels
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

// Report is the full representation of a traffic report. It doubles as the
// REST response body and the broadcast payload, so voters and live-feed
// subscribers always see the same shape.
type Report struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"` // TRAFFIC_JAM, ACCIDENT, FLOODING, ROAD_CLOSED, CHECKPOINT
	Severity    string    `json:"severity"` // LOW, MEDIUM, HIGH
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Address     *string   `json:"address,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Verified    bool      `json:"verified"`
	Active      bool      `json:"active"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateReportRequest struct {
	UserID      uuid.UUID `json:"-"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=1000"`
	Category    string    `json:"category" validate:"required,oneof=TRAFFIC_JAM ACCIDENT FLOODING ROAD_CLOSED CHECKPOINT"`
	Severity    string    `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH"`
	Latitude    float64   `json:"latitude" validate:"latitude"`
	Longitude   float64   `json:"longitude" validate:"longitude"`
	Address     string    `json:"address" validate:"max=500"`
	ImageURL    string    `json:"image_url,omitempty"`
}

type UpdateReportRequest struct {
	ID          int64   `json:"-"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=1000"`
	Category    string  `json:"category" validate:"required,oneof=TRAFFIC_JAM ACCIDENT FLOODING ROAD_CLOSED CHECKPOINT"`
	Severity    string  `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	Address     string  `json:"address" validate:"max=500"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type ReportListParams struct {
	Category string
	Severity string
	Hours    int
	Page     int
	PageSize int
}

type AreaParams struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

type NearbyReportsParams struct {
	Latitude  float64
	Longitude float64
	Radius    float64
	Category  string
	Page      int
	PageSize  int
}
