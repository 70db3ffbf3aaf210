package models

import "time"

// Craving is an append-only record of one craving episode
type Craving struct {
	ID              string         `json:"id"`
	Timestamp       time.Time      `json:"timestamp"`
	Intensity       int            `json:"intensity"` // 1-5
	Trigger         CravingTrigger `json:"trigger"`
	Action          CravingAction  `json:"action"`
	DurationMinutes *int           `json:"durationMinutes,omitempty"`
	Notes           string         `json:"notes"`
}

// NRTEntry is an append-only record of a nicotine replacement dose
type NRTEntry struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Type     NRTType   `json:"type"`
	DosageMg float64   `json:"dosageMg"`
	Notes    string    `json:"notes"`
}
