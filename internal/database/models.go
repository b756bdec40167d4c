package database

import (
	"database/sql"
)

// SamplesTable stores one row per dataset minute. A NULL value marks a
// sample that could not be parsed.
const SamplesTable = "circadian_samples"

// CreateSamplesTableSQL creates SamplesTable
const CreateSamplesTableSQL = `CREATE TABLE IF NOT EXISTS circadian_samples (
	dataset TEXT NOT NULL,
	minute  INTEGER NOT NULL,
	value   DOUBLE PRECISION,
	PRIMARY KEY (dataset, minute)
);`

// Sample is a single stored minute of a dataset
type Sample struct {
	Dataset string          `gorm:"column:dataset;primaryKey"`
	Minute  int             `gorm:"column:minute;primaryKey"`
	Value   sql.NullFloat64 `gorm:"column:value"`
}

// TableName specifies the table name for Sample
func (Sample) TableName() string {
	return SamplesTable
}
