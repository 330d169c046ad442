// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Page is a static content page looked up publicly by slug, by ID in the admin area.
type Page struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Content         string `json:"content,omitempty"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	FeaturedImage   string `json:"featured_image"`
	IsPublished     bool   `json:"is_published"`
	SortOrder       int    `json:"sort_order"`
	Template        string `json:"template"`
	CreatedAt       Time   `json:"created_at"`
	UpdatedAt       Time   `json:"updated_at"`
}

// Service is an advisory service offering.
type Service struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description,omitempty"`
	Icon             string   `json:"icon"`
	FeaturedImage    string   `json:"featured_image"`
	Features         []string `json:"features"`
	MetaTitle        string   `json:"meta_title"`
	MetaDescription  string   `json:"meta_description"`
	IsFeatured       bool     `json:"is_featured"`
	IsPublished      bool     `json:"is_published"`
	SortOrder        int      `json:"sort_order"`
	DisplayOrder     int      `json:"display_order"`
	CreatedAt        Time     `json:"created_at"`
	UpdatedAt        Time     `json:"updated_at"`
}

// BlogPost is a blog article. Status mirrors the publication flag
// ("draft" or "published").
type BlogPost struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content,omitempty"`
	FeaturedImage   string   `json:"featured_image"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	IsPublished     bool     `json:"is_published"`
	Status          string   `json:"status,omitempty"`
	PublishedAt     Time     `json:"published_at"`
	Views           int64    `json:"views"`
	Author          string   `json:"author"`
	CreatedAt       Time     `json:"created_at"`
	UpdatedAt       Time     `json:"updated_at"`
}
