package models

import "time"

type AuditLog struct {
	Resource     string                 `json:"resource"`
	ResourceType string                 `json:"resource_type"`
	Action       string                 `json:"action"`
	Data         map[string]interface{} `json:"data,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}
