/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/verinews/apiserver/config"
	"github.com/verinews/apiserver/internal/db"
	"github.com/verinews/apiserver/internal/services"
	"github.com/verinews/apiserver/internal/store"
)

var (
	seedUsername string
	seedPassword string
)

// seedAdminCmd represents the seed-admin command.
var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the administrator account if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedPassword == "" {
			return errors.New("--password is required")
		}

		cfg := config.LoadConfig()

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbConn.Close()

		userService := services.NewUserService(store.NewUserRepository(dbConn))
		if err := userService.EnsureAdmin(cmd.Context(), seedUsername, seedPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedAdminCmd)
	seedAdminCmd.Flags().StringVar(&seedUsername, "username", "admin", "administrator username")
	seedAdminCmd.Flags().StringVar(&seedPassword, "password", "", "administrator password")
}
