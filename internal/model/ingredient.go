// File: internal/model/ingredient.go
package model

type Ingredient struct {
	ID              int    `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	MeasurementUnit string `db:"measurement_unit" json:"measurement_unit"`
}
