// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// newTable returns a tablewriter configured for compact, borderless output.
func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	if !color.NoColor {
		colors := make([]tablewriter.Colors, len(headers))
		for i := range colors {
			colors[i] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiBlueColor}
		}
		table.SetHeaderColor(colors...)
	}
	return table
}

// statusColor renders a lead status with a color matching the admin UI badges.
func statusColor(status string) string {
	if color.NoColor {
		return status
	}
	switch status {
	case "new":
		return color.CyanString(status)
	case "contacted":
		return color.YellowString(status)
	case "qualified", "converted":
		return color.GreenString(status)
	case "closed":
		return color.HiBlackString(status)
	default:
		return status
	}
}

// truncate shortens a string for table cells.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
