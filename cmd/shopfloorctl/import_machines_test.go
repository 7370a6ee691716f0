package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmfaria/shopfloor-api/internal/models"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "machines.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportMachines_CreatesAndUpdates(t *testing.T) {
	db := newCommandTestDB(t)

	require.NoError(t, db.Create(&models.Machine{
		MachineLocation: "11111",
		Description:     "Serra de Corte",
		MachineID:       "30011111",
		MachineType:     models.MachineTypeConventional,
		Active:          true,
	}).Error)

	path := writeTestCSV(t, "machine_location,machine_description,machine_id,machine_type\n"+
		"11111,Torno CNC DAEWOO PUMA,30011111,CNC\n"+
		"22222,Linha de Montagem,30022222,conventional\n"+
		",Sem Localização,30033333,CNC\n")

	err := importMachines(db, path)

	require.NoError(t, err)
	assert.EqualValues(t, 2, rowCount(t, db, &models.Machine{}))

	var existing models.Machine
	require.NoError(t, db.Where("machine_location = ?", "11111").First(&existing).Error)
	assert.Equal(t, "Torno CNC DAEWOO PUMA", existing.Description)
	assert.Equal(t, models.MachineTypeCNC, existing.MachineType)

	var created models.Machine
	require.NoError(t, db.Where("machine_location = ?", "22222").First(&created).Error)
	assert.Equal(t, models.MachineTypeConventional, created.MachineType)
	assert.True(t, created.Active)
}

func TestImportMachines_UnknownTypeFallsBack(t *testing.T) {
	db := newCommandTestDB(t)

	path := writeTestCSV(t, "machine_location,machine_description,machine_id,machine_type\n"+
		"11111,Pintura a Pó,30011111,ROBOT\n")

	err := importMachines(db, path)

	require.NoError(t, err)
	var machine models.Machine
	require.NoError(t, db.Where("machine_location = ?", "11111").First(&machine).Error)
	assert.Equal(t, models.MachineTypeConventional, machine.MachineType)
}

func TestImportMachines_MalformedRowRollsBack(t *testing.T) {
	db := newCommandTestDB(t)

	// The second row has the wrong field count; the first must not survive
	path := writeTestCSV(t, "machine_location,machine_description,machine_id,machine_type\n"+
		"11111,Torno CNC DAEWOO PUMA,30011111,CNC\n"+
		"22222,truncated\n")

	err := importMachines(db, path)

	require.Error(t, err)
	assert.Zero(t, rowCount(t, db, &models.Machine{}))
}

func TestImportMachines_MissingLocationColumn(t *testing.T) {
	db := newCommandTestDB(t)

	path := writeTestCSV(t, "machine_description,machine_id,machine_type\n"+
		"Torno CNC DAEWOO PUMA,30011111,CNC\n")

	err := importMachines(db, path)

	require.Error(t, err)
	assert.Zero(t, rowCount(t, db, &models.Machine{}))
}
