package policy

import (
	"testing"

	"github.com/NCHRD-2025/training-service/internal/models"
)

// expectation spells out one row of the capability matrix so the test
// exercises every (role, resource, action) combination explicitly.
type expectation struct {
	read, create, update, del bool
}

func full() expectation  { return expectation{true, true, true, true} }
func edit() expectation  { return expectation{true, true, true, false} }
func read() expectation  { return expectation{true, false, false, false} }
func none() expectation  { return expectation{} }
func notif() expectation { return expectation{read: true, update: true} }

func TestCapabilityMatrix(t *testing.T) {
	matrix := map[models.UserRole]map[Resource]expectation{
		models.RoleAdmin: {
			ResourceUsers:              full(),
			ResourceCompanies:          full(),
			ResourceStudents:           full(),
			ResourceVisits:             full(),
			ResourceEvaluationRequests: full(),
			ResourceAssignments:        full(),
			ResourceEvaluations:        full(),
			ResourceAttendance:         full(),
			ResourceTrainingDays:       full(),
			ResourceReports:            read(),
			ResourceLogs:               read(),
			ResourceNotifications:      notif(),
		},
		models.RoleManager: {
			ResourceUsers:              none(),
			ResourceCompanies:          full(),
			ResourceStudents:           edit(),
			ResourceVisits:             full(),
			ResourceEvaluationRequests: full(),
			ResourceAssignments:        full(),
			ResourceEvaluations:        read(),
			ResourceAttendance:         full(),
			ResourceTrainingDays:       full(),
			ResourceReports:            read(),
			ResourceLogs:               none(),
			ResourceNotifications:      notif(),
		},
		models.RoleSupervisor: {
			ResourceUsers:              none(),
			ResourceCompanies:          none(),
			ResourceStudents:           read(),
			ResourceVisits:             full(),
			ResourceEvaluationRequests: none(),
			ResourceAssignments:        none(),
			ResourceEvaluations:        edit(),
			ResourceAttendance:         edit(),
			ResourceTrainingDays:       read(),
			ResourceReports:            read(),
			ResourceLogs:               none(),
			ResourceNotifications:      notif(),
		},
		models.RoleInstitution: {
			ResourceUsers:              none(),
			ResourceCompanies:          none(),
			ResourceStudents:           none(),
			ResourceVisits:             none(),
			ResourceEvaluationRequests: none(),
			ResourceAssignments:        none(),
			ResourceEvaluations:        none(),
			ResourceAttendance:         edit(),
			ResourceTrainingDays:       read(),
			ResourceReports:            none(),
			ResourceLogs:               none(),
			ResourceNotifications:      notif(),
		},
		models.RoleEmployee: {
			ResourceUsers:              none(),
			ResourceCompanies:          none(),
			ResourceStudents:           none(),
			ResourceVisits:             none(),
			ResourceEvaluationRequests: none(),
			ResourceAssignments:        none(),
			ResourceEvaluations:        none(),
			ResourceAttendance:         none(),
			ResourceTrainingDays:       read(),
			ResourceReports:            none(),
			ResourceLogs:               none(),
			ResourceNotifications:      notif(),
		},
	}

	for role, resources := range matrix {
		for resource, want := range resources {
			checks := []struct {
				action Action
				want   bool
			}{
				{ActionRead, want.read},
				{ActionCreate, want.create},
				{ActionUpdate, want.update},
				{ActionDelete, want.del},
			}
			for _, c := range checks {
				if got := Allowed(role, c.action, resource); got != c.want {
					t.Errorf("Allowed(%s, %s, %s) = %v, want %v", role, c.action, resource, got, c.want)
				}
			}
		}
	}
}

func TestAllowedUnknownInputs(t *testing.T) {
	if Allowed("intern", ActionRead, ResourceStudents) {
		t.Error("unknown role should be denied")
	}
	if Allowed(models.RoleAdmin, "approve", ResourceStudents) {
		t.Error("unknown action should be denied")
	}
	if Allowed(models.RoleAdmin, ActionRead, "budgets") {
		t.Error("unknown resource should be denied")
	}
}

func TestCheckNilPrincipal(t *testing.T) {
	if Check(nil, ActionRead, ResourceStudents) {
		t.Error("nil principal should never be allowed")
	}
	p := &models.Principal{ID: 1, Username: "root", Role: models.RoleAdmin}
	if !Check(p, ActionDelete, ResourceCompanies) {
		t.Error("admin principal should be allowed")
	}
}
