// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Log in to the FinanceClinics API and manage the stored session.",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session token",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if email == "" {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return errors.New("email is required")
	}

	if password == "" {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return errors.New("password is required")
	}

	client := newClient()
	session, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := saveSession(session.User.Email, session.Token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Printf("%s logged in as %s (%s)\n", color.GreenString("✓"), session.User.Email, session.User.Role)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if viper.GetString("auth.token") == "" {
		return errors.New("not logged in")
	}

	// Best effort: the token is discarded locally even when the server
	// call fails.
	client := newClient()
	if err := client.Logout(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: server logout failed: %v\n", err)
	}

	if err := clearSession(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	fmt.Printf("%s logged out\n", color.GreenString("✓"))
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	client := newClient()
	user, err := client.Me(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching current user: %w", err)
	}

	fmt.Printf("Email:  %s\n", user.Email)
	fmt.Printf("Name:   %s\n", user.Name)
	fmt.Printf("Role:   %s\n", user.Role)
	fmt.Printf("Server: %s\n", viper.GetString("server.url"))
	return nil
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "email address")
	loginCmd.Flags().StringP("password", "p", "", "password (prompted when omitted)")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
}
