package domain

import (
	"time"
)

// NuisanceFamily groups related nuisance types (e.g. noise, smell).
type NuisanceFamily struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NuisanceType is a concrete kind of nuisance that can be reported.
type NuisanceType struct {
	ID          string          `json:"id"`
	FamilyID    string          `json:"family_id"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Family      *NuisanceFamily `json:"family,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NuisanceReport is one observation of a nuisance at a location.
type NuisanceReport struct {
	ID        string        `json:"id"`
	TypeID    string        `json:"type_id"`
	Type      *NuisanceType `json:"type,omitempty"`
	UserID    *string       `json:"user_id,omitempty"`
	Location  Location      `json:"location"`
	Intensity int           `json:"intensity"`
	Distance  *float64      `json:"distance,omitempty"` // computed field
	CreatedAt time.Time     `json:"created_at"`
}

// Intensity bounds accepted for a report.
const (
	MinIntensity = 1
	MaxIntensity = 5
)

// MaxSRID is the largest SRID PostGIS stores.
const MaxSRID = 999999

// CreateNuisanceFamily is the input for registering a family.
type CreateNuisanceFamily struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// CreateNuisanceType is the input for registering a type.
type CreateNuisanceType struct {
	FamilyID    string `json:"family_id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// CreateNuisanceReport is the input for reporting a nuisance. SRID overrides
// whatever the location carries.
type CreateNuisanceReport struct {
	TypeID    string   `json:"type_id"`
	UserID    *string  `json:"user_id,omitempty"`
	Location  Location `json:"location"`
	SRID      *uint32  `json:"srid,omitempty"`
	Intensity int      `json:"intensity"`
}

// ReportCreatedEvent is published once a report is stored. The location
// travels as EWKB hex.
type ReportCreatedEvent struct {
	ReportID  string    `json:"report_id"`
	TypeID    string    `json:"type_id"`
	Intensity int       `json:"intensity"`
	Kind      string    `json:"kind"`
	SRID      uint32    `json:"srid"`
	Location  string    `json:"location_ewkb"`
	CreatedAt time.Time `json:"created_at"`
}
