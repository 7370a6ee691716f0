package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pmfaria/shopfloor-api/internal/database"
	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newImportMachinesCommand() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "import-machines",
		Short: "Upsert the machine catalog from a CSV export",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" {
				return errors.New("--csv is required")
			}
			return importMachines(database.GetDB(), csvPath)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "path to the machine catalog CSV")

	return cmd
}

// importMachines upserts machines keyed by machine_location, all rows in a
// single transaction. Rows without a location are skipped; an unknown
// machine_type falls back to CONVENTIONAL. A malformed row aborts the whole
// import.
func importMachines(db *gorm.DB, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open csv: %w", err)
	}
	defer fh.Close()

	reader := csv.NewReader(fh)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["machine_location"]; !ok {
		return errors.New("csv is missing machine_location column")
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	imported, updated, skipped := 0, 0, 0

	err = db.Transaction(func(tx *gorm.DB) error {
		for {
			row, err := reader.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read csv row: %w", err)
			}

			location := field(row, "machine_location")
			if location == "" {
				skipped++
				continue
			}

			machineType := models.MachineType(strings.ToUpper(field(row, "machine_type")))
			if !machineType.Valid() {
				machineType = models.MachineTypeConventional
			}

			var existing models.Machine
			err = tx.Where("machine_location = ?", location).First(&existing).Error
			switch {
			case err == nil:
				existing.Description = field(row, "machine_description")
				existing.MachineID = field(row, "machine_id")
				existing.MachineType = machineType
				if err := tx.Save(&existing).Error; err != nil {
					return fmt.Errorf("failed to update machine %s: %w", location, err)
				}
				updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				machine := models.Machine{
					MachineLocation: location,
					Description:     field(row, "machine_description"),
					MachineID:       field(row, "machine_id"),
					MachineType:     machineType,
					Active:          true,
				}
				if err := tx.Create(&machine).Error; err != nil {
					return fmt.Errorf("failed to create machine %s: %w", location, err)
				}
				imported++
			default:
				return fmt.Errorf("failed to look up machine %s: %w", location, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Machines imported: %d created, %d updated, %d skipped", imported, updated, skipped)
	return nil
}
