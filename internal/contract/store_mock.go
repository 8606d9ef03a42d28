package contract

import (
	"time"

	"github.com/jreiser/trendreport/schema"
	"github.com/stretchr/testify/mock"
)

// MockResultsStore is a testify mock of ResultsStore for pipeline tests.
type MockResultsStore struct {
	mock.Mock
}

var _ ResultsStore = &MockResultsStore{} // Compile-time check

func (m *MockResultsStore) BeginRun(scheme schema.LabelScheme, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(scheme, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResultsStore) EndRun(runID int64, endTime time.Time, totalRows int) error {
	args := m.Called(runID, endTime, totalRows)
	return args.Error(0)
}

func (m *MockResultsStore) RecordCohortRows(runID int64, rows []schema.LabeledRow) error {
	args := m.Called(runID, rows)
	return args.Error(0)
}

func (m *MockResultsStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

func (m *MockResultsStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.RunRecord), args.Error(1)
}

func (m *MockResultsStore) GetAllCohortRows() ([]schema.StoredCohortRow, error) {
	args := m.Called()
	return args.Get(0).([]schema.StoredCohortRow), args.Error(1)
}

func (m *MockResultsStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockResultsStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
