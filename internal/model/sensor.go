package model

import "time"

// Sensor is the locally tracked sensor identity. The serial comes from the
// device layer; activation time and age are written back after reconciling
// against the service's active-sensor list.
type Sensor struct {
	ID          string    `db:"id" json:"id"`
	Serial      string    `db:"serial" json:"serial"`
	ProductType int       `db:"product_type" json:"productType"`
	ActivatedAt time.Time `db:"activated_at" json:"activatedAt"`
	AgeMinutes  int64     `db:"age_minutes" json:"ageMinutes"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
