// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/mail"
	"strings"

	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/util"
)

// MinMessageLength is the minimum length of a contact form message.
const MinMessageLength = 10

// ValidateContactForm checks a public contact submission before it goes
// upstream. Returns a map of field name to error message; empty means valid.
func ValidateContactForm(form model.ContactForm) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(form.Name) == "" {
		errs["name"] = "Name is required"
	}

	if strings.TrimSpace(form.Email) == "" {
		errs["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(form.Email); err != nil {
		errs["email"] = "Invalid email format"
	}

	if strings.TrimSpace(form.Message) == "" {
		errs["message"] = "Message is required"
	} else if len(strings.TrimSpace(form.Message)) < MinMessageLength {
		errs["message"] = "Message must be at least 10 characters"
	}

	if !form.PrivacyAccepted {
		errs["privacy_accepted"] = "You must accept the privacy policy"
	}

	return errs
}

// ValidateEmail returns an error message if the email is missing or malformed.
func ValidateEmail(email string) string {
	if email == "" {
		return "Email is required"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Invalid email format"
	}
	return ""
}

// ValidateSlugFormat validates only the slug format without checking existence.
// Uniqueness is enforced upstream.
func ValidateSlugFormat(slug string) string {
	if slug == "" {
		return "Slug is required"
	}
	if !util.IsValidSlug(slug) {
		return "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	}
	return ""
}

// SlugFromForm returns the explicit slug if present, otherwise derives one
// from the title. Admin create forms leave the slug blank by default.
func SlugFromForm(slug, title string) string {
	slug = strings.TrimSpace(slug)
	if slug != "" {
		return slug
	}
	return util.Slugify(title)
}
