// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/model"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Lead management commands",
	Long:  "List, update, and export leads from the contact pipeline.",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads",
	RunE:  runLeadsList,
}

var leadsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one lead in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeadsShow,
}

var leadsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a lead's status or notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeadsUpdate,
}

var leadsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export leads as CSV, optionally filtered by status",
	RunE:  runLeadsExport,
}

func runLeadsList(cmd *cobra.Command, _ []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	status, _ := cmd.Flags().GetString("status")
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")

	if status != "" && !model.IsValidLeadStatus(status) {
		return fmt.Errorf("invalid status %q; valid: %s", status, strings.Join(model.LeadStatuses, ", "))
	}

	client := newClient()
	result, err := client.AdminListLeads(cmd.Context(), page, perPage, status)
	if err != nil {
		return fmt.Errorf("listing leads: %w", err)
	}

	if len(result.Leads) == 0 {
		fmt.Println("No leads found")
		return nil
	}

	table := newTable(os.Stdout, []string{"ID", "Name", "Email", "Service", "Status", "Created"})
	for _, lead := range result.Leads {
		created := ""
		if !lead.CreatedAt.IsZero() {
			created = lead.CreatedAt.Time.Format("2006-01-02")
		}
		table.Append([]string{
			strconv.FormatInt(lead.ID, 10),
			truncate(lead.Name, 24),
			lead.Email,
			truncate(lead.ServiceInterest, 20),
			statusColor(lead.Status),
			created,
		})
	}
	table.Render()

	fmt.Printf("\nPage %d of %d (%d leads total)\n", result.CurrentPage, result.Pages, result.Total)
	return nil
}

func runLeadsShow(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid lead ID %q", args[0])
	}

	client := newClient()
	lead, err := client.AdminGetLead(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("fetching lead %d: %w", id, err)
	}

	fmt.Printf("ID:            %d\n", lead.ID)
	fmt.Printf("Name:          %s\n", lead.Name)
	fmt.Printf("Email:         %s\n", lead.Email)
	fmt.Printf("Phone:         %s\n", lead.Phone)
	fmt.Printf("Organization:  %s\n", lead.Organization)
	fmt.Printf("Service:       %s\n", lead.ServiceInterest)
	fmt.Printf("Contact time:  %s\n", lead.PreferredContactTime)
	fmt.Printf("Source:        %s\n", lead.Source)
	fmt.Printf("Status:        %s\n", statusColor(lead.Status))
	if !lead.CreatedAt.IsZero() {
		fmt.Printf("Created:       %s\n", lead.CreatedAt.Time.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\nMessage:\n%s\n", lead.Message)
	if lead.Notes != "" {
		fmt.Printf("\nNotes:\n%s\n", lead.Notes)
	}
	return nil
}

func runLeadsUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid lead ID %q", args[0])
	}

	var update api.LeadUpdate
	if cmd.Flags().Changed("status") {
		status, _ := cmd.Flags().GetString("status")
		if !model.IsValidLeadStatus(status) {
			return fmt.Errorf("invalid status %q; valid: %s", status, strings.Join(model.LeadStatuses, ", "))
		}
		update.Status = &status
	}
	if cmd.Flags().Changed("notes") {
		notes, _ := cmd.Flags().GetString("notes")
		update.Notes = &notes
	}
	if update.Status == nil && update.Notes == nil {
		return fmt.Errorf("nothing to update; pass --status or --notes")
	}

	client := newClient()
	lead, err := client.UpdateLead(cmd.Context(), id, update)
	if err != nil {
		return fmt.Errorf("updating lead %d: %w", id, err)
	}

	fmt.Printf("%s lead %d updated (status: %s)\n", color.GreenString("✓"), lead.ID, lead.Status)
	return nil
}

func runLeadsExport(cmd *cobra.Command, _ []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	status, _ := cmd.Flags().GetString("status")
	if status != "" && !model.IsValidLeadStatus(status) {
		return fmt.Errorf("invalid status %q; valid: %s", status, strings.Join(model.LeadStatuses, ", "))
	}

	client := newClient()
	blob, err := client.ExportLeads(cmd.Context(), status)
	if err != nil {
		return fmt.Errorf("exporting leads: %w", err)
	}

	if output == "" {
		output = blob.Filename
	}
	if output == "" {
		output = "leads.csv"
	}
	if output == "-" {
		_, err = os.Stdout.Write(blob.Data)
		return err
	}

	if err := os.WriteFile(output, blob.Data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Printf("%s wrote %d bytes to %s\n", color.GreenString("✓"), len(blob.Data), output)
	return nil
}

func init() {
	leadsListCmd.Flags().String("status", "", "filter by status ("+strings.Join(model.LeadStatuses, "|")+")")
	leadsListCmd.Flags().Int("page", 1, "page number")
	leadsListCmd.Flags().Int("per-page", 20, "leads per page")

	leadsUpdateCmd.Flags().String("status", "", "new status")
	leadsUpdateCmd.Flags().String("notes", "", "internal notes")

	leadsExportCmd.Flags().StringP("output", "o", "", "output file (- for stdout, default from server)")
	leadsExportCmd.Flags().String("status", "", "export only leads with this status")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsShowCmd)
	leadsCmd.AddCommand(leadsUpdateCmd)
	leadsCmd.AddCommand(leadsExportCmd)
}
