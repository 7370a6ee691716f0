package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/pmfaria/shopfloor-api/internal/database"
	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	seedFirstNames = []string{
		"João", "Miguel", "Sofia", "Ana", "Tiago", "Rui", "Pedro", "Mariana",
		"Carlos", "Inês", "Rita", "Marta", "José", "Bruno", "Beatriz", "Luís",
	}
	seedLastNames = []string{
		"Silva", "Santos", "Ferreira", "Pereira", "Rodrigues", "Oliveira",
		"Costa", "Gomes", "Martins", "Lopes", "Carvalho", "Almeida", "Nunes",
	}
	seedOperationCodes = []string{"0010", "0040", "0110", "0210", "0310", "0410"}

	seedDescriptionsCNC = []string{
		"Serra de Corte", "Torno CNC DAEWOO PUMA", "Fresa CNC HELLER PFH",
		"Centro de Processamento MAKINO", "Rectificadora GÖCKEL G80",
		"Centro DAEWOO HM-500", "Fresa Vertical HELLER",
	}
	seedDescriptionsConv = []string{
		"Operação de Mão-de-obra", "Soldar à Mão", "Máquina de Lavagem MTM III",
		"Rebarbar Peças", "Linha de Montagem", "Embalagem Manual", "Pintura a Pó",
	}
)

func newSeedCommand() *cobra.Command {
	var numMachines, numUsers, numOrders int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with realistic random data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			if err := runSeed(database.GetDB(), rng, numMachines, numUsers, numOrders); err != nil {
				return err
			}

			log.Printf("Seeded %d machines, %d users, %d orders", numMachines, numUsers, numOrders)
			return nil
		},
	}

	cmd.Flags().IntVar(&numMachines, "machines", 20, "number of machines to create")
	cmd.Flags().IntVar(&numUsers, "users", 10, "number of users to create")
	cmd.Flags().IntVar(&numOrders, "orders", 15, "number of orders to create")

	return cmd
}

// runSeed writes the whole dataset in one transaction, so a rerun that
// collides with rows from an earlier invocation leaves the database
// untouched.
func runSeed(db *gorm.DB, rng *rand.Rand, numMachines, numUsers, numOrders int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		machines, err := seedMachines(tx, rng, numMachines)
		if err != nil {
			return err
		}
		users, err := seedUsers(tx, rng, numUsers)
		if err != nil {
			return err
		}
		return seedOrders(tx, rng, numOrders, machines, users)
	})
}

func seedMachines(db *gorm.DB, rng *rand.Rand, count int) ([]models.Machine, error) {
	machines := make([]models.Machine, 0, count)

	for i := 0; i < count; i++ {
		machineType := models.MachineTypeCNC
		description := seedDescriptionsCNC[rng.Intn(len(seedDescriptionsCNC))]
		if rng.Intn(100) < 30 {
			machineType = models.MachineTypeConventional
			description = seedDescriptionsConv[rng.Intn(len(seedDescriptionsConv))]
		}

		machine := models.Machine{
			MachineLocation: fmt.Sprintf("%d", 10000+rng.Intn(89999)),
			Description:     description,
			MachineID:       fmt.Sprintf("%d", 10000000+rng.Intn(89999999)),
			MachineType:     machineType,
			Active:          true,
		}
		if err := db.Create(&machine).Error; err != nil {
			return nil, fmt.Errorf("failed to seed machine: %w", err)
		}
		machines = append(machines, machine)
	}

	return machines, nil
}

func seedUsers(db *gorm.DB, rng *rand.Rand, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	for i := 0; i < count; i++ {
		bitzerID := 1000 + i
		user := models.User{
			BitzerID: &bitzerID,
			Name: fmt.Sprintf("%s %s",
				seedFirstNames[rng.Intn(len(seedFirstNames))],
				seedLastNames[rng.Intn(len(seedLastNames))]),
			Active: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}

func seedOrders(db *gorm.DB, rng *rand.Rand, count int, machines []models.Machine, users []models.User) error {
	processTypes := []models.ProcessType{
		models.ProcessTypePreparation,
		models.ProcessTypeQualityControl,
		models.ProcessTypeProcessing,
	}

	for i := 0; i < count; i++ {
		start := time.Now().AddDate(0, 0, -rng.Intn(60))
		end := start.AddDate(0, 0, 7+rng.Intn(30))

		order := models.Order{
			OrderNumber:    100000 + i,
			MaterialNumber: 50000 + rng.Intn(9999),
			StartDate:      &start,
			EndDate:        &end,
			NumPieces:      1 + rng.Intn(500),
		}
		if err := db.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}

		for _, code := range seedOperationCodes[:1+rng.Intn(len(seedOperationCodes))] {
			operation := models.Operation{
				OrderID:       order.ID,
				OperationCode: code,
			}
			if len(machines) > 0 && rng.Intn(100) < 80 {
				operation.MachineID = &machines[rng.Intn(len(machines))].ID
			}
			if err := db.Create(&operation).Error; err != nil {
				return fmt.Errorf("failed to seed operation: %w", err)
			}

			for t := 0; t < rng.Intn(4); t++ {
				startAt := start.Add(time.Duration(rng.Intn(8)) * time.Hour)
				endAt := startAt.Add(time.Duration(1+rng.Intn(6)) * time.Hour)
				good := rng.Intn(50)
				bad := rng.Intn(5)

				task := models.Task{
					OperationID: operation.ID,
					ProcessType: processTypes[rng.Intn(len(processTypes))],
					StartAt:     &startAt,
					EndAt:       &endAt,
					GoodPieces:  &good,
					BadPieces:   &bad,
				}
				if len(users) > 0 {
					operator := users[rng.Intn(len(users))]
					task.OperatorUserID = &operator.ID
					task.OperatorBitzerID = operator.BitzerID
				}
				if err := db.Create(&task).Error; err != nil {
					return fmt.Errorf("failed to seed task: %w", err)
				}
			}
		}
	}

	return nil
}
