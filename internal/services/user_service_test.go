package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmfaria/shopfloor-api/internal/models"
	"github.com/pmfaria/shopfloor-api/internal/repository"
)

// UserServiceTestSuite defines the test suite for UserService
type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
}

// SetupTest runs before each test
func (suite *UserServiceTestSuite) SetupTest() {
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

	suite.service = NewUserService(repository.NewUserRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *UserServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserServiceTestSuite) createTestUser(bitzerID int, name string) *models.User {
	user := &models.User{
		BitzerID: &bitzerID,
		Name:     name,
		Active:   true,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	bitzerID := 1042
	user, err := suite.service.CreateUser(CreateUserInput{
		BitzerID: &bitzerID,
		Name:     "Ana Ferreira",
	})

	assert.NoError(suite.T(), err)
	assert.NotZero(suite.T(), user.ID)
	assert.True(suite.T(), user.Active)
	assert.False(suite.T(), user.IsAdmin)
	assert.Nil(suite.T(), user.PasswordHash)
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	password := "segredo123"
	user, err := suite.service.CreateUser(CreateUserInput{
		Name:     "Rui Santos",
		Password: &password,
	})

	assert.NoError(suite.T(), err)
	suite.Require().NotNil(user.PasswordHash)
	assert.NotEqual(suite.T(), password, *user.PasswordHash)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)))
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateBitzerID() {
	suite.createTestUser(1042, "Ana Ferreira")

	bitzerID := 1042
	_, err := suite.service.CreateUser(CreateUserInput{
		BitzerID: &bitzerID,
		Name:     "Rui Santos",
	})

	assert.ErrorIs(suite.T(), err, ErrDuplicateBitzerID)
}

func (suite *UserServiceTestSuite) TestCreateUser_NoBitzerIDAllowed() {
	_, err := suite.service.CreateUser(CreateUserInput{Name: "Ana Ferreira"})
	assert.NoError(suite.T(), err)

	// Multiple users without a bitzer id must not collide
	_, err = suite.service.CreateUser(CreateUserInput{Name: "Rui Santos"})
	assert.NoError(suite.T(), err)
}

func (suite *UserServiceTestSuite) TestListUsers_ActiveFilter() {
	suite.createTestUser(1001, "Ana Ferreira")
	inactive := suite.createTestUser(1002, "Rui Santos")
	inactive.Active = false
	suite.Require().NoError(suite.db.Save(inactive).Error)

	active := true
	users, total, err := suite.service.ListUsers(&active, 1, 20)

	assert.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 1, total)
	assert.Len(suite.T(), users, 1)
	assert.Equal(suite.T(), "Ana Ferreira", users[0].Name)
}

func (suite *UserServiceTestSuite) TestUpdateUser_DuplicateBitzerID() {
	suite.createTestUser(1001, "Ana Ferreira")
	other := suite.createTestUser(1002, "Rui Santos")

	taken := 1001
	_, err := suite.service.UpdateUser(other.ID, UpdateUserInput{
		BitzerID: &taken,
	})

	assert.ErrorIs(suite.T(), err, ErrDuplicateBitzerID)
}

func (suite *UserServiceTestSuite) TestUpdateUser_SameBitzerIDNoConflict() {
	user := suite.createTestUser(1001, "Ana Ferreira")

	same := 1001
	name := "Ana Ferreira Costa"
	updated, err := suite.service.UpdateUser(user.ID, UpdateUserInput{
		BitzerID: &same,
		Name:     &name,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), name, updated.Name)
}

func (suite *UserServiceTestSuite) TestDeleteUser_DetachesTasksKeepsSnapshot() {
	user := suite.createTestUser(1042, "Ana Ferreira")

	order := &models.Order{OrderNumber: 100500, MaterialNumber: 70000001}
	suite.Require().NoError(suite.db.Create(order).Error)
	operation := &models.Operation{OrderID: order.ID, OperationCode: "0010"}
	suite.Require().NoError(suite.db.Create(operation).Error)

	snapshot := 1042
	task := &models.Task{
		OperationID:      operation.ID,
		ProcessType:      models.ProcessTypeProcessing,
		OperatorUserID:   &user.ID,
		OperatorBitzerID: &snapshot,
	}
	suite.Require().NoError(suite.db.Create(task).Error)

	err := suite.service.DeleteUser(user.ID)
	assert.NoError(suite.T(), err)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	assert.Nil(suite.T(), reloaded.OperatorUserID)
	suite.Require().NotNil(reloaded.OperatorBitzerID)
	assert.Equal(suite.T(), 1042, *reloaded.OperatorBitzerID)
}

func (suite *UserServiceTestSuite) TestDeleteUser_NotFound() {
	err := suite.service.DeleteUser(999)

	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
