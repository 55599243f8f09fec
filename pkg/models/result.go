package models

import "time"

// ImportResult summarizes one import run.
type ImportResult struct {
	Vendor          string          `json:"vendor"`
	DryRun          bool            `json:"dry_run"`
	RowsParsed      int             `json:"rows_parsed"`
	RowsSkipped     int             `json:"rows_skipped"`
	Groups          int             `json:"groups"`
	Created         int             `json:"created"`
	Updated         int             `json:"updated"`
	CreatedProducts []string        `json:"created_products,omitempty"`
	UpdatedProducts []string        `json:"updated_products,omitempty"`
	Variants        int             `json:"variants"`
	Images          int             `json:"images"`
	ImagesReused    int             `json:"images_reused"`
	SkippedNoImage  int             `json:"skipped_no_image"`
	Failed          int             `json:"failed"`
	Errors          []ImportError   `json:"errors,omitempty"`
	Warnings        []ImportWarning `json:"warnings,omitempty"`
	StartedAt       time.Time       `json:"started_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}

// MarkCreated records a newly created product identifier.
func (r *ImportResult) MarkCreated(sku string) {
	r.Created++
	r.CreatedProducts = append(r.CreatedProducts, sku)
}

// MarkUpdated records an updated product identifier.
func (r *ImportResult) MarkUpdated(sku string) {
	r.Updated++
	r.UpdatedProducts = append(r.UpdatedProducts, sku)
}

// AddError records a failure against a row and bumps the failed count.
func (r *ImportResult) AddError(row int, group, message string) {
	r.Failed++
	r.Errors = append(r.Errors, ImportError{Row: row, Group: group, Message: message})
}

// AddWarning records a non-fatal issue.
func (r *ImportResult) AddWarning(row int, group, message string) {
	r.Warnings = append(r.Warnings, ImportWarning{Row: row, Group: group, Message: message})
}

// Duration returns the elapsed run time, zero while the run is in flight.
func (r *ImportResult) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// ImportError is a row- or group-level failure. The run continues past it.
type ImportError struct {
	Row     int    `json:"row"`
	Group   string `json:"group,omitempty"`
	Message string `json:"message"`
}

// ImportWarning is a non-fatal condition worth surfacing in the report.
type ImportWarning struct {
	Row     int    `json:"row"`
	Group   string `json:"group,omitempty"`
	Message string `json:"message"`
}
