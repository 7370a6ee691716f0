package main

import (
	"log"

	"github.com/pmfaria/shopfloor-api/internal/database"
	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newResetCommand() *cobra.Command {
	var dropTables bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all rows, or drop and recreate the schema with --drop",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := database.GetDB()

			if dropTables {
				log.Println("Dropping all tables...")
				if err := db.Migrator().DropTable(
					&models.Task{},
					&models.Operation{},
					&models.Order{},
					&models.Machine{},
					&models.User{},
				); err != nil {
					return err
				}
				return database.Migrate()
			}

			// Children before parents, all or nothing.
			log.Println("Clearing all rows...")
			return db.Transaction(func(tx *gorm.DB) error {
				for _, model := range []interface{}{
					&models.Task{},
					&models.Operation{},
					&models.Order{},
					&models.Machine{},
					&models.User{},
				} {
					if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dropTables, "drop", false, "drop and recreate tables instead of deleting rows")

	return cmd
}
