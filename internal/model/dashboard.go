// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// DashboardTotals holds the headline counters of the admin dashboard.
type DashboardTotals struct {
	TotalLeads    int64 `json:"total_leads"`
	TotalPages    int64 `json:"total_pages"`
	TotalServices int64 `json:"total_services"`
	TotalPosts    int64 `json:"total_posts"`
	RecentLeads   int64 `json:"recent_leads"`
	NewLeads      int64 `json:"new_leads"`
	TotalViews    int64 `json:"total_views"`
}

// MonthlyLeadCount is one month of lead volume.
type MonthlyLeadCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// ActivityItem is one entry of the dashboard's recent-activity feed.
type ActivityItem struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    Time   `json:"time"`
	ID      int64  `json:"id"`
}

// DashboardStats is the admin dashboard summary payload.
type DashboardStats struct {
	Stats          DashboardTotals    `json:"stats"`
	LeadsByStatus  map[string]int64   `json:"leads_by_status"`
	MonthlyLeads   []MonthlyLeadCount `json:"monthly_leads"`
	RecentActivity []ActivityItem     `json:"recent_activity"`
}
