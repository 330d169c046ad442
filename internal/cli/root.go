// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cli implements the fcadmin command tree. It talks to the same
// FinanceClinics API as the web application, authenticating with a token
// stored in the user's config file.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/traamakrishna3012/financeclinics/internal/api"
)

const configName = ".fcadmin"

var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "fcadmin",
	Short: "FinanceClinics admin CLI",
	Long: `fcadmin provides command-line access to the FinanceClinics API:
lead management, site settings, and MIS report import/export.

Credentials are stored in ~/.fcadmin.yaml after "fcadmin auth login".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		return initConfig()
	},
}

// Execute runs the root command. Called once from main with the build
// version injected via ldflags.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fcadmin.yaml)")
	rootCmd.PersistentFlags().StringP("server", "s", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	_ = viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(leadsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(misCmd)
}

// initConfig reads the config file and environment variables.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetDefault("server.url", "http://localhost:5000/api")
	viper.SetDefault("server.timeout", "30s")
	viper.SetDefault("auth.email", "")
	viper.SetDefault("auth.token", "")

	viper.SetEnvPrefix("FCADMIN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}
	return nil
}

// newClient builds an API client from the active configuration. The token
// source reads the stored token so commands pick up a fresh login without
// re-reading the config file.
func newClient() *api.Client {
	timeout, err := time.ParseDuration(viper.GetString("server.timeout"))
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}
	return api.New(viper.GetString("server.url"),
		api.WithTokenSource(api.TokenSourceFunc(func(context.Context) string {
			return viper.GetString("auth.token")
		})),
		api.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
}

// saveSession persists the credentials to the config file, creating it with
// restrictive permissions when it does not exist yet.
func saveSession(email, token string) error {
	viper.Set("auth.email", email)
	viper.Set("auth.token", token)
	return writeConfig()
}

// clearSession removes the stored credentials.
func clearSession() error {
	viper.Set("auth.email", "")
	viper.Set("auth.token", "")
	return writeConfig()
}

func writeConfig() error {
	if err := viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		path := cfgFile
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path = home + "/" + configName + ".yaml"
		}
		if err := viper.WriteConfigAs(path); err != nil {
			return err
		}
		return os.Chmod(path, 0600)
	}
	return nil
}

// requireAuth returns an error when no token is stored.
func requireAuth() error {
	if viper.GetString("auth.token") == "" {
		return fmt.Errorf("not logged in; run: fcadmin auth login")
	}
	return nil
}
