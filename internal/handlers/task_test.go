package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmfaria/shopfloor-api/internal/models"
)

// TaskHandlerTestSuite defines the test suite for the task endpoints
type TaskHandlerTestSuite struct {
	suite.Suite
	db        *gorm.DB
	router    *gin.Engine
	operation *models.Operation
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
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

	suite.router = newTestRouter(suite.db)

	order := &models.Order{OrderNumber: 100500, MaterialNumber: 70000001}
	suite.Require().NoError(suite.db.Create(order).Error)
	suite.operation = &models.Operation{OrderID: order.ID, OperationCode: "0010"}
	suite.Require().NoError(suite.db.Create(suite.operation).Error)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) request(method, url string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) createTestUser(bitzerID int) *models.User {
	user := &models.User{
		BitzerID: &bitzerID,
		Name:     "Ana Ferreira",
		Active:   true,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskHandlerTestSuite) tasksURL() string {
	return fmt.Sprintf("/api/operations/%d/tasks", suite.operation.ID)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	w := suite.request("POST", suite.tasksURL(), map[string]interface{}{
		"process_type": "PROCESSING",
		"good_pieces":  4,
		"bad_pieces":   1,
		"start_at":     "2025-03-01T08:00:00Z",
		"end_at":       "2025-03-01T12:30:00Z",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "PROCESSING", response["process_type"])
	assert.EqualValues(suite.T(), 4, response["good_pieces"])
	assert.EqualValues(suite.T(), suite.operation.ID, response["operation_id"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_SnapshotsOperator() {
	user := suite.createTestUser(1042)

	w := suite.request("POST", suite.tasksURL(), map[string]interface{}{
		"process_type":     "PREPARATION",
		"operator_user_id": user.ID,
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.EqualValues(suite.T(), 1042, response["operator_bitzer_id"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidProcessType() {
	w := suite.request("POST", suite.tasksURL(), map[string]interface{}{
		"process_type": "WELDING",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "INVALID_ARGUMENT", response["code"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_OperationNotFound() {
	w := suite.request("POST", "/api/operations/999/tasks", map[string]interface{}{
		"process_type": "PROCESSING",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_EndBeforeStart() {
	w := suite.request("POST", suite.tasksURL(), map[string]interface{}{
		"process_type": "PROCESSING",
		"start_at":     "2025-03-01T12:00:00Z",
		"end_at":       "2025-03-01T08:00:00Z",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_NegativeCounterRejected() {
	w := suite.request("POST", suite.tasksURL(), map[string]interface{}{
		"process_type": "PROCESSING",
		"good_pieces":  -1,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListOperationTasks_Empty() {
	w := suite.request("GET", suite.tasksURL(), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	assert.Empty(suite.T(), tasks)
}

func (suite *TaskHandlerTestSuite) TestListTasks_FilterByOperation() {
	other := &models.Operation{OrderID: suite.operation.OrderID, OperationCode: "0040"}
	suite.Require().NoError(suite.db.Create(other).Error)

	suite.Require().NoError(suite.db.Create(&models.Task{
		OperationID: suite.operation.ID,
		ProcessType: models.ProcessTypeProcessing,
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.Task{
		OperationID: other.ID,
		ProcessType: models.ProcessTypePreparation,
	}).Error)

	w := suite.request("GET", fmt.Sprintf("/api/tasks?operation_id=%d", other.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	first := tasks[0].(map[string]interface{})
	assert.Equal(suite.T(), "PREPARATION", first["process_type"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ExplicitNullClearsEnd() {
	w := suite.request("POST", suite.tasksURL(), map[string]interface{}{
		"process_type": "PROCESSING",
		"start_at":     "2025-03-01T08:00:00Z",
		"end_at":       "2025-03-01T12:00:00Z",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	taskID := uint64(created["id"].(float64))

	w = suite.request("PATCH", fmt.Sprintf("/api/tasks/%d", taskID), map[string]interface{}{
		"end_at": nil,
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(suite.T(), response["end_at"])
	assert.NotNil(suite.T(), response["start_at"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ExplicitNullClearsCountersAndNotes() {
	w := suite.request("POST", suite.tasksURL(), map[string]interface{}{
		"process_type": "PROCESSING",
		"good_pieces":  4,
		"num_benches":  2,
		"notes":        "primeira passagem",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	taskID := uint64(created["id"].(float64))

	w = suite.request("PATCH", fmt.Sprintf("/api/tasks/%d", taskID), map[string]interface{}{
		"good_pieces": nil,
		"num_benches": nil,
		"notes":       nil,
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(suite.T(), response["good_pieces"])
	assert.Nil(suite.T(), response["num_benches"])
	assert.Nil(suite.T(), response["notes"])
	assert.Equal(suite.T(), "PROCESSING", response["process_type"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ExplicitNullClearsSnapshot() {
	user := suite.createTestUser(1042)

	w := suite.request("POST", suite.tasksURL(), map[string]interface{}{
		"process_type":     "PROCESSING",
		"operator_user_id": user.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	taskID := uint64(created["id"].(float64))
	suite.Require().EqualValues(1042, created["operator_bitzer_id"])

	w = suite.request("PATCH", fmt.Sprintf("/api/tasks/%d", taskID), map[string]interface{}{
		"operator_bitzer_id": nil,
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(suite.T(), response["operator_bitzer_id"])
	// The operator reference itself is untouched
	assert.EqualValues(suite.T(), user.ID, response["operator_user_id"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_FractionalCounterRejected() {
	task := &models.Task{
		OperationID: suite.operation.ID,
		ProcessType: models.ProcessTypeProcessing,
	}
	suite.Require().NoError(suite.db.Create(task).Error)

	w := suite.request("PATCH", fmt.Sprintf("/api/tasks/%d", task.ID), map[string]interface{}{
		"good_pieces": 3.7,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NotFound() {
	w := suite.request("PATCH", "/api/tasks/999", map[string]interface{}{
		"good_pieces": 1,
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	task := &models.Task{
		OperationID: suite.operation.ID,
		ProcessType: models.ProcessTypeProcessing,
	}
	suite.Require().NoError(suite.db.Create(task).Error)

	w := suite.request("DELETE", fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request("GET", fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
