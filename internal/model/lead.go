// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Lead statuses recognized by the API.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusClosed    = "closed"
)

// LeadStatuses lists the valid lead statuses in display order.
var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusConverted,
	LeadStatusClosed,
}

// IsValidLeadStatus reports whether s is one of the recognized lead statuses.
func IsValidLeadStatus(s string) bool {
	for _, status := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Lead is a contact-form submission tracked through the admin pipeline.
type Lead struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Organization         string `json:"organization"`
	Message              string `json:"message"`
	PreferredContactTime string `json:"preferred_contact_time"`
	ServiceInterest      string `json:"service_interest"`
	Source               string `json:"source"`
	Status               string `json:"status"`
	Notes                string `json:"notes"`
	PrivacyAccepted      bool   `json:"privacy_accepted"`
	EmailSent            bool   `json:"email_sent"`
	CreatedAt            Time   `json:"created_at"`
	UpdatedAt            Time   `json:"updated_at"`
}

// ContactForm is the payload for a public contact submission.
type ContactForm struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone,omitempty"`
	Organization         string `json:"organization,omitempty"`
	Message              string `json:"message"`
	PreferredContactTime string `json:"preferred_contact_time,omitempty"`
	ServiceInterest      string `json:"service_interest,omitempty"`
	Source               string `json:"source,omitempty"`
	PrivacyAccepted      bool   `json:"privacy_accepted"`
}

// LeadStats summarizes the lead pipeline for the admin screens.
type LeadStats struct {
	Total       int64            `json:"total"`
	ByStatus    map[string]int64 `json:"by_status"`
	Recent7Days int64            `json:"recent_7_days"`
	ThisMonth   int64            `json:"this_month"`
}
