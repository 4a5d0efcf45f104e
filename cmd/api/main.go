package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/housekeep/core/cmd/api/commands"
)

// @title Housekeep API
// @version 1.0
// @description Recurring household chores organised by space, with a due-date dashboard.

// @contact.name Housekeep
// @contact.url https://github.com/housekeep/core

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "housekeep",
		Short: "Housekeep API Server",
		Long:  `Housekeep tracks recurring household chores per space and shows what is overdue, due today and coming up.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewCatalogCommand())
	rootCmd.AddCommand(commands.NewDashboardCommand())
	rootCmd.AddCommand(commands.NewTokenCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
