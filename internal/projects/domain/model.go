package domain

import (
	"errors"
	"time"

	"github.com/gquyenhsb/agriplan-backend/internal/planner"
)

// ErrNotFound is returned when a project does not exist (or was deleted).
var ErrNotFound = errors.New("project not found")

// Project represents a single cultivation project.
// It is intentionally storage-agnostic and used across repository and HTTP layers.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeatherInfo is the weather snapshot persisted with a project, in the shape
// the weather endpoint returns.
type WeatherInfo struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	LastUpdated string  `json:"lastUpdated,omitempty"`
}

// LocationInfo is the reverse-geocoded position persisted with a project.
type LocationInfo struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// HistoryEntry is one prompt/response round of a project. The log is
// append-only; entries are never rewritten once recorded.
type HistoryEntry struct {
	Date   string `json:"date"` // DD/MM/YYYY
	Prompt string `json:"prompt"`
	Result string `json:"result"`
}

// ProjectState is the full persisted per-project blob. Field names follow the
// stored JSON document, so states written by earlier frontend versions keep
// loading.
type ProjectState struct {
	FruitType          string               `json:"fruitType"`
	City               string               `json:"city"`
	Result             string               `json:"result"`
	Weather            *WeatherInfo         `json:"weather,omitempty"`
	Location           *LocationInfo        `json:"location,omitempty"`
	ProjectInitialized bool                 `json:"projectInitialized"`
	History            []HistoryEntry       `json:"history"`
	Tasks              []planner.TaskRecord `json:"tasks"`
	TaskStatus         planner.StatusMap    `json:"taskStatus"`
}

// NewProjectState returns an empty state with non-nil collections, matching
// what a fresh client session starts from.
func NewProjectState() *ProjectState {
	return &ProjectState{
		History:    []HistoryEntry{},
		Tasks:      []planner.TaskRecord{},
		TaskStatus: planner.StatusMap{},
	}
}
