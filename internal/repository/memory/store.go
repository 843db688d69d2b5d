// Package memory implements the repository interfaces on process memory.
// It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/google/uuid"
)

type attendanceKey struct {
	employeeID string
	date       string
}

// Store holds every table behind one lock, mirroring the unique constraints of the SQL schema.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	branches       map[string]branch.Branch
	branchByName   map[string]string
	employees      map[string]employee.Employee
	employeeByMail map[string]string
	employeeOrder  []string

	records     map[string]attendance.Record
	recordByDay map[attendanceKey]string
	recordOrder []string
}

func NewStore() *Store {
	return &Store{
		now:            time.Now,
		branches:       make(map[string]branch.Branch),
		branchByName:   make(map[string]string),
		employees:      make(map[string]employee.Employee),
		employeeByMail: make(map[string]string),
		records:        make(map[string]attendance.Record),
		recordByDay:    make(map[attendanceKey]string),
	}
}

func newID() string {
	return uuid.NewString()
}

func (s *Store) Branches() branch.BranchRepository {
	return &branchRepository{store: s}
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepository{store: s}
}

func (s *Store) Attendances() attendance.AttendanceRepository {
	return &attendanceRepository{store: s}
}
