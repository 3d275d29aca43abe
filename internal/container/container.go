package container

import (
	"github.com/YC815/Miaoli/internal/distribution"
	"github.com/YC815/Miaoli/internal/donations"
	"github.com/YC815/Miaoli/internal/inventory"
	"github.com/YC815/Miaoli/internal/ledger"
	"github.com/YC815/Miaoli/internal/reports"
	"github.com/YC815/Miaoli/internal/storage"
	"github.com/YC815/Miaoli/pkg/auditlog"
	"github.com/YC815/Miaoli/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Ledger              *ledger.Ledger
	Reconciler          *ledger.Reconciler
	AuditLog            *auditlog.Auditlog
	LoginHandler        *security.LoginHandler
	InventoryHandler    *inventory.InventoryHandler
	DonationHandler     *donations.DonationHandler
	DistributionHandler *distribution.DistributionHandler
	ReportHandler       *reports.ReportHandler
}

func NewAppContainer(store storage.Gateway, log *zap.Logger) (*Container, error) {
	ldg, err := ledger.New(store, log)
	if err != nil {
		return nil, err
	}
	reconciler := ledger.NewReconciler(ldg)
	auditLog := auditlog.NewAuditLog(log)
	loginHandler := security.NewLoginHandler(security.AccountsFromEnv())
	inventoryHandler := inventory.NewHandler(ldg, auditLog)
	donationHandler := donations.NewHandler(ldg, reconciler, auditLog)
	distributionHandler := distribution.NewHandler(ldg, reconciler, auditLog)
	reportHandler := reports.NewHandler(ldg)

	return &Container{
		Ledger:              ldg,
		Reconciler:          reconciler,
		AuditLog:            auditLog,
		LoginHandler:        loginHandler,
		InventoryHandler:    inventoryHandler,
		DonationHandler:     donationHandler,
		DistributionHandler: distributionHandler,
		ReportHandler:       reportHandler,
	}, nil
}
