package domain

import (
	"encoding/json"
	"time"
)

// The records below are owned by the billing backend. The gateway only renders
// and edits them, so fields mirror the backend's JSON and carry no behaviour.

// Client is a billed customer of the tracking platform.
type Client struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Document   string    `json:"document,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	WhatsApp   string    `json:"whatsapp,omitempty"`
	Status     string    `json:"status"`
	DueDay     int       `json:"due_day"`
	MonthlyFee float64   `json:"monthly_fee"`
	Vehicles   int       `json:"vehicles,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Payment is a single charge against a client.
type Payment struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id"`
	ClientName      string     `json:"client_name,omitempty"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	Method          string     `json:"method,omitempty"`
	DueDate         time.Time  `json:"due_date"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	GatewayChargeID string     `json:"gateway_charge_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ConfigEntry is one key/value configuration row (gateway credentials,
// WhatsApp sender settings, automation switches).
type ConfigEntry struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Template is an outreach message template.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Channel   string    `json:"channel"`
	Body      string    `json:"body"`
	Variables []string  `json:"variables,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AutomationRun is one execution of a scheduled outreach automation.
type AutomationRun struct {
	ID         string     `json:"id"`
	Automation string     `json:"automation"`
	Status     string     `json:"status"`
	Message    string     `json:"message,omitempty"`
	Targets    int        `json:"targets"`
	Sent       int        `json:"sent"`
	Failed     int        `json:"failed"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// WebhookActivity is a received gateway callback, kept verbatim for auditing.
type WebhookActivity struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	Event      string          `json:"event"`
	Status     string          `json:"status"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
}

// TrackingIntegration holds the vehicle-tracking platform connection settings.
type TrackingIntegration struct {
	Provider   string     `json:"provider"`
	BaseURL    string     `json:"base_url"`
	APIKey     string     `json:"api_key,omitempty"`
	Enabled    bool       `json:"enabled"`
	Status     string     `json:"status,omitempty"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
}
