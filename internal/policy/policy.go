// Package policy holds the single capability table that gates every
// resource operation. Handlers and services call Allowed once per request
// instead of comparing role strings at each call site. Object-level
// ownership (a supervisor's own visits and evaluations, a user's own
// notifications) is checked by the owning service after the table allows
// the action class.
package policy

import "github.com/NCHRD-2025/training-service/internal/models"

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceUsers              Resource = "users"
	ResourceCompanies          Resource = "companies"
	ResourceStudents           Resource = "students"
	ResourceVisits             Resource = "visits"
	ResourceEvaluationRequests Resource = "evaluation_requests"
	ResourceAssignments        Resource = "assigned_evaluations"
	ResourceEvaluations        Resource = "evaluations"
	ResourceAttendance         Resource = "attendance"
	ResourceTrainingDays       Resource = "training_days"
	ResourceReports            Resource = "reports"
	ResourceLogs               Resource = "logs"
	ResourceNotifications      Resource = "notifications"
)

type capability uint8

const (
	capRead capability = 1 << iota
	capCreate
	capUpdate
	capDelete

	capNone capability = 0
	capFull capability = capRead | capCreate | capUpdate | capDelete
	capEdit capability = capRead | capCreate | capUpdate
)

var actionCaps = map[Action]capability{
	ActionRead:   capRead,
	ActionCreate: capCreate,
	ActionUpdate: capUpdate,
	ActionDelete: capDelete,
}

// table is the closed capability matrix. Ownership-scoped rules (a
// supervisor's "own only" access) still appear here as the action class;
// the ownership part is enforced at the object level by services.
var table = map[models.UserRole]map[Resource]capability{
	models.RoleAdmin: {
		ResourceUsers:              capFull,
		ResourceCompanies:          capFull,
		ResourceStudents:           capFull,
		ResourceVisits:             capFull,
		ResourceEvaluationRequests: capFull,
		ResourceAssignments:        capFull,
		ResourceEvaluations:        capFull,
		ResourceAttendance:         capFull,
		ResourceTrainingDays:       capFull,
		ResourceReports:            capRead,
		ResourceLogs:               capRead,
		ResourceNotifications:      capRead | capUpdate,
	},
	models.RoleManager: {
		ResourceUsers:              capNone,
		ResourceCompanies:          capFull,
		ResourceStudents:           capEdit,
		ResourceVisits:             capFull,
		ResourceEvaluationRequests: capFull,
		ResourceAssignments:        capFull,
		ResourceEvaluations:        capRead,
		ResourceAttendance:         capFull,
		ResourceTrainingDays:       capFull,
		ResourceReports:            capRead,
		ResourceLogs:               capNone,
		ResourceNotifications:      capRead | capUpdate,
	},
	models.RoleSupervisor: {
		ResourceUsers:              capNone,
		ResourceCompanies:          capNone,
		ResourceStudents:           capRead,
		ResourceVisits:             capFull, // own only, object-checked
		ResourceEvaluationRequests: capNone,
		ResourceAssignments:        capNone,
		ResourceEvaluations:        capEdit, // own only, object-checked
		ResourceAttendance:         capEdit,
		ResourceTrainingDays:       capRead,
		ResourceReports:            capRead,
		ResourceLogs:               capNone,
		ResourceNotifications:      capRead | capUpdate,
	},
	models.RoleInstitution: {
		ResourceUsers:              capNone,
		ResourceCompanies:          capNone,
		ResourceStudents:           capNone,
		ResourceVisits:             capNone,
		ResourceEvaluationRequests: capNone,
		ResourceAssignments:        capNone,
		ResourceEvaluations:        capNone,
		ResourceAttendance:         capEdit, // scoped to the institution's students
		ResourceTrainingDays:       capRead,
		ResourceReports:            capNone,
		ResourceLogs:               capNone,
		ResourceNotifications:      capRead | capUpdate,
	},
	models.RoleEmployee: {
		ResourceUsers:              capNone,
		ResourceCompanies:          capNone,
		ResourceStudents:           capNone,
		ResourceVisits:             capNone,
		ResourceEvaluationRequests: capNone,
		ResourceAssignments:        capNone,
		ResourceEvaluations:        capNone,
		ResourceAttendance:         capNone,
		ResourceTrainingDays:       capRead,
		ResourceReports:            capNone,
		ResourceLogs:               capNone,
		ResourceNotifications:      capRead | capUpdate,
	},
}

// Allowed reports whether the role may perform the action on the resource
// class. Unknown roles, actions and resources are denied.
func Allowed(role models.UserRole, action Action, resource Resource) bool {
	caps, ok := table[role]
	if !ok {
		return false
	}
	bit, ok := actionCaps[action]
	if !ok {
		return false
	}
	return caps[resource]&bit != 0
}

// Check is Allowed for principals; a nil principal is never allowed.
func Check(p *models.Principal, action Action, resource Resource) bool {
	if p == nil {
		return false
	}
	return Allowed(p.Role, action, resource)
}
