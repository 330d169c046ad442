// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Site settings commands",
	Long:  "List and change site settings. Changes take effect on the public site within the cache refresh window.",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	RunE:  runSettingsList,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")

	client := newClient()
	settings, err := client.AllSettings(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing settings: %w", err)
	}

	sort.Slice(settings, func(i, j int) bool {
		if settings[i].Category != settings[j].Category {
			return settings[i].Category < settings[j].Category
		}
		return settings[i].Key < settings[j].Key
	})

	table := newTable(os.Stdout, []string{"Category", "Key", "Value"})
	shown := 0
	for _, s := range settings {
		if category != "" && s.Category != category {
			continue
		}
		table.Append([]string{s.Category, s.Key, truncate(s.Value, 60)})
		shown++
	}
	if shown == 0 {
		fmt.Println("No settings found")
		return nil
	}
	table.Render()
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	key, value := args[0], args[1]

	client := newClient()

	// Verify the key exists; the settings endpoint upserts silently and a
	// typo would otherwise create a stray key.
	settings, err := client.AllSettings(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching settings: %w", err)
	}
	known := false
	for _, s := range settings {
		if s.Key == key {
			known = true
			break
		}
	}
	if !known {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("unknown setting %q; pass --force to create it", key)
		}
	}

	if err := client.UpdateSettings(cmd.Context(), map[string]string{key: value}); err != nil {
		return fmt.Errorf("updating setting %q: %w", key, err)
	}

	fmt.Printf("%s %s = %s\n", color.GreenString("✓"), key, value)
	return nil
}

func init() {
	settingsListCmd.Flags().String("category", "", "filter by category")
	settingsSetCmd.Flags().Bool("force", false, "allow creating a setting key that does not exist yet")

	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
