package reports

import "time"

// Report is the minimal row the entitlement core needs to exist: creating one
// consumes a report credit. Inspection content, photos and exports live in
// their own services.
type Report struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	Title      string `gorm:"not null"`
	DamageType string `gorm:"column:damage_type;type:varchar(20)"` // water | fire | mould
	ClientName string `gorm:"column:client_name"`
	Status     string `gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
