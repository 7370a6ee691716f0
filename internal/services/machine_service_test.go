package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/pmfaria/shopfloor-api/internal/repository"
)

// MachineServiceTestSuite defines the test suite for MachineService
type MachineServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *MachineService
}

// SetupTest runs before each test
func (suite *MachineServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Machine{},
		&models.Order{},
		&models.Operation{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.service = NewMachineService(repository.NewMachineRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *MachineServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *MachineServiceTestSuite) createTestMachine(location string) *models.Machine {
	machine := &models.Machine{
		MachineLocation: location,
		Description:     "Torno CNC DAEWOO PUMA",
		MachineID:       "30012345",
		MachineType:     models.MachineTypeCNC,
		Active:          true,
	}
	suite.Require().NoError(suite.db.Create(machine).Error)
	return machine
}

func (suite *MachineServiceTestSuite) TestCreateMachine_DefaultsActive() {
	machine, err := suite.service.CreateMachine(CreateMachineInput{
		MachineLocation: "54321",
		Description:     "Fresa CNC HELLER PFH",
		MachineID:       "30054321",
		MachineType:     models.MachineTypeCNC,
	})

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), machine.Active)
}

func (suite *MachineServiceTestSuite) TestCreateMachine_ExplicitInactive() {
	inactive := false
	machine, err := suite.service.CreateMachine(CreateMachineInput{
		MachineLocation: "54321",
		Description:     "Linha de Montagem",
		MachineID:       "30054321",
		MachineType:     models.MachineTypeConventional,
		Active:          &inactive,
	})

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), machine.Active)
}

func (suite *MachineServiceTestSuite) TestCreateMachine_DuplicateLocation() {
	suite.createTestMachine("54321")

	_, err := suite.service.CreateMachine(CreateMachineInput{
		MachineLocation: "54321",
		Description:     "Serra de Corte",
		MachineID:       "30099999",
		MachineType:     models.MachineTypeCNC,
	})

	assert.ErrorIs(suite.T(), err, ErrDuplicateMachineLocation)
}

func (suite *MachineServiceTestSuite) TestCreateMachine_InvalidType() {
	_, err := suite.service.CreateMachine(CreateMachineInput{
		MachineLocation: "54321",
		Description:     "Serra de Corte",
		MachineID:       "30099999",
		MachineType:     "ROBOT",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidMachineType)
}

func (suite *MachineServiceTestSuite) TestListMachines_ActiveFilter() {
	suite.createTestMachine("11111")
	inactive := suite.createTestMachine("22222")
	inactive.Active = false
	suite.Require().NoError(suite.db.Save(inactive).Error)

	active := true
	machines, total, err := suite.service.ListMachines(&active, 1, 20)

	assert.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 1, total)
	assert.Len(suite.T(), machines, 1)
	assert.Equal(suite.T(), "11111", machines[0].MachineLocation)
}

func (suite *MachineServiceTestSuite) TestGetMachine_NotFound() {
	_, err := suite.service.GetMachine(999)

	assert.ErrorIs(suite.T(), err, ErrMachineNotFound)
}

func (suite *MachineServiceTestSuite) TestUpdateMachine_DuplicateLocation() {
	suite.createTestMachine("11111")
	other := suite.createTestMachine("22222")

	taken := "11111"
	_, err := suite.service.UpdateMachine(other.ID, UpdateMachineInput{
		MachineLocation: &taken,
	})

	assert.ErrorIs(suite.T(), err, ErrDuplicateMachineLocation)
}

func (suite *MachineServiceTestSuite) TestUpdateMachine_SameLocationNoConflict() {
	machine := suite.createTestMachine("11111")

	same := "11111"
	description := "Rectificadora GÖCKEL G80"
	updated, err := suite.service.UpdateMachine(machine.ID, UpdateMachineInput{
		MachineLocation: &same,
		Description:     &description,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), description, updated.Description)
}

func (suite *MachineServiceTestSuite) TestDeleteMachine_Success() {
	machine := suite.createTestMachine("11111")

	err := suite.service.DeleteMachine(machine.ID)

	assert.NoError(suite.T(), err)
	_, err = suite.service.GetMachine(machine.ID)
	assert.ErrorIs(suite.T(), err, ErrMachineNotFound)
}

func (suite *MachineServiceTestSuite) TestDeleteMachine_InUse() {
	machine := suite.createTestMachine("11111")

	order := &models.Order{OrderNumber: 100500, MaterialNumber: 70000001}
	suite.Require().NoError(suite.db.Create(order).Error)
	operation := &models.Operation{OrderID: order.ID, OperationCode: "0010", MachineID: &machine.ID}
	suite.Require().NoError(suite.db.Create(operation).Error)

	err := suite.service.DeleteMachine(machine.ID)

	assert.ErrorIs(suite.T(), err, ErrMachineInUse)

	// The machine must survive the failed delete
	_, err = suite.service.GetMachine(machine.ID)
	assert.NoError(suite.T(), err)
}

func (suite *MachineServiceTestSuite) TestDeleteMachine_NotFound() {
	err := suite.service.DeleteMachine(999)

	assert.ErrorIs(suite.T(), err, ErrMachineNotFound)
}

func TestMachineServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MachineServiceTestSuite))
}
