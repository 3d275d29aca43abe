package auditlog

import (
	"time"

	"github.com/YC815/Miaoli/pkg/models"

	"go.uber.org/zap"
)

// Auditlog records every successful mutation to the operational log. The
// durable audit record is the item's own operation log; this trail is for
// operators tailing the service.
type Auditlog struct {
	log *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

func (a *Auditlog) Log(action string, data map[string]interface{}, item Auditable) {
	entry := item.CreateLogView()
	entry.Action = action
	entry.Data = data
	entry.CreatedAt = time.Now()

	a.log.Info("audit",
		zap.String("resource", entry.Resource),
		zap.String("resource_type", entry.ResourceType),
		zap.String("action", entry.Action),
		zap.Any("data", entry.Data),
	)
}

func NewAuditLog(log *zap.Logger) *Auditlog {
	return &Auditlog{log: log}
}
