package models

import (
	"time"

	"github.com/google/uuid"
)

// AddonOption is a single priced choice inside an addon group.
type AddonOption struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AddonID         uuid.UUID `gorm:"column:addon_id;type:uuid;not null;index:addon_options_addon_id_idx"`
	Name            string    `gorm:"column:name;not null"`
	AdditionalPrice int64     `gorm:"column:additional_price;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
