package billing

import (
	"restoration-app/config"
	"restoration-app/database"
	"restoration-app/internal/domain/entitlement"
	stripeinfra "restoration-app/internal/infra/stripe"
	"restoration-app/internal/infra/store"

	zlog "github.com/rs/zerolog/log"
)

// svc wires the entitlement service from process-wide state. Every piece is a
// stateless view over the shared DB handle, so building it per request is
// fine.
func svc() *entitlement.Service {
	st := store.NewGorm(database.DB, database.AddonLedgerAvailable)
	return entitlement.NewService(st, st, stripeinfra.Client{}, config.LIFETIME_PURCHASER_EMAIL, zlog.Logger)
}
