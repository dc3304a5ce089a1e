package models

import "time"

// AuditFields holds standard audit columns shared by persisted models.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// DocumentHeader is the database model for the documents table. The totals
// summary is stored as jsonb and (un)marshalled at the repository boundary.
type DocumentHeader struct {
	DocumentID      string
	EntityID        string
	EntityName      string
	DocumentType    string
	PeriodStart     *time.Time
	PeriodEnd       *time.Time
	AccountingBasis string
	ReportDate      *time.Time
	Status          string
	FailureReason   string
	TotalsSummary   []byte // jsonb
	AuditFields
}

// RawLine is the database model for the staged raw_lines table.
type RawLine struct {
	LineID       string
	DocumentID   string
	Text         string
	PageNumber   int
	X0, Y0       float64
	X1, Y1       float64
	ColumnValues []string
	Position     int
}
