package main

import (
	"context"
	"log"

	"github.com/shaoyun/taskmaster-pro/internal/config"
	"github.com/shaoyun/taskmaster-pro/internal/database"
	"github.com/shaoyun/taskmaster-pro/internal/repositories"
	"github.com/shaoyun/taskmaster-pro/internal/tags"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile-tags",
	Short: "Rebuild tag usage counts from the task set",
	Long:  "Recounts tag usage from the live tasks and replaces the tag index, repairing any drift from tolerated accounting failures",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}
		cfg := config.Load()

		if err := database.Init(cfg.DatabaseDSN); err != nil {
			return err
		}
		db := database.GetDB()

		ctx := context.Background()
		taskList, err := repositories.NewTaskRepository(db).List(ctx)
		if err != nil {
			return err
		}

		acct := tags.NewAccountant(repositories.NewTagRepository(db))
		if err := acct.Reconcile(ctx, taskList); err != nil {
			return err
		}

		log.Printf("tag usage reconciled across %d tasks", len(taskList))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
