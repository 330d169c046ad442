// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/util"
)

var misCmd = &cobra.Command{
	Use:   "mis",
	Short: "MIS report template commands",
	Long:  "List report templates and import or export their data.",
}

var misListCmd = &cobra.Command{
	Use:   "list",
	Short: "List report templates",
	RunE:  runMISList,
}

var misImportCmd = &cobra.Command{
	Use:   "import <template-id> <file>",
	Short: "Import rows from a CSV or XLSX file",
	Args:  cobra.ExactArgs(2),
	RunE:  runMISImport,
}

var misExportCmd = &cobra.Command{
	Use:   "export <template-id>",
	Short: "Export template rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runMISExport,
}

func runMISList(cmd *cobra.Command, _ []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	client := newClient()
	templates, err := client.ListMISTemplates(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}

	if len(templates) == 0 {
		fmt.Println("No report templates found")
		return nil
	}

	table := newTable(os.Stdout, []string{"ID", "Name", "Columns", "Updated"})
	for _, tpl := range templates {
		keys := make([]string, len(tpl.Columns))
		for i, col := range tpl.Columns {
			keys[i] = col.Key
		}
		updated := ""
		if !tpl.UpdatedAt.IsZero() {
			updated = tpl.UpdatedAt.Time.Format("2006-01-02")
		}
		table.Append([]string{
			strconv.FormatInt(tpl.ID, 10),
			tpl.Name,
			truncate(strings.Join(keys, ", "), 50),
			updated,
		})
	}
	table.Render()
	return nil
}

func runMISImport(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid template ID %q", args[0])
	}

	path := args[1]
	filename, err := util.SanitizeFilename(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("invalid file name %q", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	client := newClient()
	imported, err := client.ImportMISRows(cmd.Context(), id, filename, file)
	if err != nil {
		return fmt.Errorf("importing into template %d: %w", id, err)
	}

	fmt.Printf("%s imported %d rows into template %d\n", color.GreenString("✓"), imported, id)
	return nil
}

func runMISExport(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid template ID %q", args[0])
	}

	format, _ := cmd.Flags().GetString("format")
	valid := false
	for _, f := range model.MISExportFormats {
		if format == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid format %q; valid: %s", format, strings.Join(model.MISExportFormats, ", "))
	}

	output, _ := cmd.Flags().GetString("output")

	client := newClient()
	blob, err := client.ExportMISTemplate(cmd.Context(), id, format)
	if err != nil {
		return fmt.Errorf("exporting template %d: %w", id, err)
	}

	if output == "" {
		output = blob.Filename
	}
	if output == "" {
		output = fmt.Sprintf("report-%d.%s", id, format)
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
	misExportCmd.Flags().StringP("format", "f", "csv", "export format ("+strings.Join(model.MISExportFormats, "|")+")")
	misExportCmd.Flags().StringP("output", "o", "", "output file (- for stdout, default from server)")

	misCmd.AddCommand(misListCmd)
	misCmd.AddCommand(misImportCmd)
	misCmd.AddCommand(misExportCmd)
}
