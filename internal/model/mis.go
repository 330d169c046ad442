// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// MISColumn is one column of an MIS report template.
type MISColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// MISTemplate is an admin-defined tabular schema for report data. Rows are
// imported and exported through the API; this client never inspects their
// file formats.
type MISTemplate struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Columns   []MISColumn `json:"columns"`
	CreatedBy int64       `json:"created_by"`
	IsPublic  bool        `json:"is_public"`
	CreatedAt Time        `json:"created_at"`
	UpdatedAt Time        `json:"updated_at"`
}

// MISRow is one stored row of template data, keyed by column key.
type MISRow struct {
	ID         int64          `json:"id"`
	TemplateID int64          `json:"template_id"`
	Data       map[string]any `json:"data"`
	CreatedAt  Time           `json:"created_at"`
}

// MISExportFormats lists the export formats the API supports.
var MISExportFormats = []string{"csv", "xlsx", "docx", "pdf"}
