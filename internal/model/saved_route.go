package model

import (
	"time"

	"github.com/google/uuid"
)

// SavedRoute is a user's named route, stored as an encoded polyline.
type SavedRoute struct {
	ID              int64     `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	OriginName      *string   `json:"origin_name,omitempty"`
	DestinationName *string   `json:"destination_name,omitempty"`
	Geometry        string    `json:"geometry"` // encoded polyline (precision 1e5)
	LengthMeters    float64   `json:"length_meters"`
	CreatedAt       time.Time `json:"created_at"`
}

type SaveRouteRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=50"`
	OriginName      string `json:"origin_name" validate:"max=200"`
	DestinationName string `json:"destination_name" validate:"max=200"`
	Geometry        string `json:"geometry" validate:"required"`
}
