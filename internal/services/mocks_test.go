package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

// stubRepository satisfies repositories.Repository with pluggable
// sub-repositories. Tests only fill in what they exercise.
type stubRepository struct {
	company           repositories.CompanyRepository
	student           repositories.StudentRepository
	visit             repositories.VisitRepository
	evaluationRequest repositories.EvaluationRequestRepository
	assignment        repositories.AssignmentRepository
	evaluation        repositories.EvaluationRepository
	trainingDay       repositories.TrainingDayRepository
	attendance        repositories.AttendanceRepository
	user              repositories.UserRepository
	notification      repositories.NotificationRepository
	systemLog         repositories.SystemLogRepository
	dashboard         repositories.DashboardRepository
}

func (s *stubRepository) Company() repositories.CompanyRepository   { return s.company }
func (s *stubRepository) Student() repositories.StudentRepository   { return s.student }
func (s *stubRepository) Visit() repositories.VisitRepository       { return s.visit }
func (s *stubRepository) EvaluationRequest() repositories.EvaluationRequestRepository {
	return s.evaluationRequest
}
func (s *stubRepository) Assignment() repositories.AssignmentRepository   { return s.assignment }
func (s *stubRepository) Evaluation() repositories.EvaluationRepository   { return s.evaluation }
func (s *stubRepository) TrainingDay() repositories.TrainingDayRepository { return s.trainingDay }
func (s *stubRepository) Attendance() repositories.AttendanceRepository   { return s.attendance }
func (s *stubRepository) User() repositories.UserRepository               { return s.user }
func (s *stubRepository) Notification() repositories.NotificationRepository {
	return s.notification
}
func (s *stubRepository) SystemLog() repositories.SystemLogRepository { return s.systemLog }
func (s *stubRepository) Dashboard() repositories.DashboardRepository { return s.dashboard }
func (s *stubRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(s)
}
func (s *stubRepository) Ping(ctx context.Context) error { return nil }
func (s *stubRepository) Close() error                   { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ===== SUB-REPOSITORY FAKES =====

type fakeSystemLogRepo struct {
	entries   []*models.SystemLog
	createErr error
}

func (f *fakeSystemLogRepo) Create(ctx context.Context, entry *models.SystemLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	entry.ID = uint(len(f.entries) + 1)
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeSystemLogRepo) List(ctx context.Context, filters repositories.LogFilters) ([]*models.SystemLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

type fakeNotificationRepo struct {
	notifications map[uint]*models.Notification
	nextID        uint
	updateCalls   int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uint]*models.Notification), nextID: 1}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	n.ID = f.nextID
	f.nextID++
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return n, nil
}

func (f *fakeNotificationRepo) Update(ctx context.Context, n *models.Notification) error {
	f.updateCalls++
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Notification, int64, error) {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeAssignmentRepo struct {
	assignments map[uint]*models.AssignedEvaluation
	updated     *models.AssignedEvaluation
}

func newFakeAssignmentRepo(assignments ...*models.AssignedEvaluation) *fakeAssignmentRepo {
	f := &fakeAssignmentRepo{assignments: make(map[uint]*models.AssignedEvaluation)}
	for _, a := range assignments {
		f.assignments[a.ID] = a
	}
	return f
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a *models.AssignedEvaluation) error {
	a.ID = uint(len(f.assignments) + 1)
	f.assignments[a.ID] = a
	return nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id uint) (*models.AssignedEvaluation, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAssignmentRepo) GetByIDWithEvaluation(ctx context.Context, id uint) (*models.AssignedEvaluation, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, a *models.AssignedEvaluation) error {
	f.updated = a
	f.assignments[a.ID] = a
	return nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id uint) error {
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentRepo) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.AssignedEvaluation, int64, error) {
	var out []*models.AssignedEvaluation
	for _, a := range f.assignments {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

type fakeEvaluationRepo struct {
	evaluations map[uint]*models.Evaluation
	created     *models.Evaluation
	lastFilters repositories.EvaluationFilters
}

func newFakeEvaluationRepo(evaluations ...*models.Evaluation) *fakeEvaluationRepo {
	f := &fakeEvaluationRepo{evaluations: make(map[uint]*models.Evaluation)}
	for _, e := range evaluations {
		f.evaluations[e.ID] = e
	}
	return f
}

func (f *fakeEvaluationRepo) Create(ctx context.Context, e *models.Evaluation) error {
	e.ID = uint(len(f.evaluations) + 1)
	f.evaluations[e.ID] = e
	f.created = e
	return nil
}

func (f *fakeEvaluationRepo) GetByID(ctx context.Context, id uint) (*models.Evaluation, error) {
	e, ok := f.evaluations[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeEvaluationRepo) GetByAssignment(ctx context.Context, assignmentID uint) (*models.Evaluation, error) {
	for _, e := range f.evaluations {
		if e.AssignedEvaluationID == assignmentID {
			return e, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (f *fakeEvaluationRepo) Update(ctx context.Context, e *models.Evaluation) error {
	f.evaluations[e.ID] = e
	return nil
}

func (f *fakeEvaluationRepo) Delete(ctx context.Context, id uint) error {
	delete(f.evaluations, id)
	return nil
}

func (f *fakeEvaluationRepo) List(ctx context.Context, filters repositories.EvaluationFilters) ([]*models.Evaluation, int64, error) {
	f.lastFilters = filters
	var out []*models.Evaluation
	for _, e := range f.evaluations {
		if filters.SupervisorID != nil && e.SupervisorID != *filters.SupervisorID {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

type fakeStudentRepo struct {
	students map[uint]*models.Student
}

func newFakeStudentRepo(students ...*models.Student) *fakeStudentRepo {
	f := &fakeStudentRepo{students: make(map[uint]*models.Student)}
	for _, s := range students {
		f.students[s.ID] = s
	}
	return f
}

func (f *fakeStudentRepo) Create(ctx context.Context, s *models.Student) error {
	s.ID = uint(len(f.students) + 1)
	f.students[s.ID] = s
	return nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeStudentRepo) GetByNationalID(ctx context.Context, nationalID string) (*models.Student, error) {
	for _, s := range f.students {
		if s.NationalID == nationalID {
			return s, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (f *fakeStudentRepo) Update(ctx context.Context, s *models.Student) error {
	f.students[s.ID] = s
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id uint) error {
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStudentRepo) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	_, err := f.GetByNationalID(ctx, nationalID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	u.ID = uint(len(f.users) + 1)
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return repositories.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeAttendanceRepo struct {
	records map[uint]*models.AttendanceRecord
	totals  *repositories.AttendanceTotals
	nextID  uint

	// captured by GetTotals / GetByDateRange
	gotFrom time.Time
	gotTo   time.Time
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: make(map[uint]*models.AttendanceRecord),
		totals:  &repositories.AttendanceTotals{},
		nextID:  1,
	}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, r *models.AttendanceRecord) error {
	for _, existing := range f.records {
		if existing.StudentID == r.StudentID && existing.Date.Equal(r.Date) {
			return repositories.ErrDuplicateKey
		}
	}
	r.ID = f.nextID
	f.nextID++
	f.records[r.ID] = r
	return nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id uint) (*models.AttendanceRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) GetByStudentAndDate(ctx context.Context, studentID uint, date time.Time) (*models.AttendanceRecord, error) {
	for _, r := range f.records {
		if r.StudentID == studentID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, r *models.AttendanceRecord) error {
	f.records[r.ID] = r
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id uint) error {
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, int64, error) {
	var out []*models.AttendanceRecord
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ExistsForStudentAndDate(ctx context.Context, studentID uint, date time.Time) (bool, error) {
	_, err := f.GetByStudentAndDate(ctx, studentID, date)
	return err == nil, nil
}

func (f *fakeAttendanceRepo) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, r := range f.records {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetTotals(ctx context.Context, from, to time.Time) (*repositories.AttendanceTotals, error) {
	f.gotFrom = from
	f.gotTo = to
	return f.totals, nil
}

type fakeVisitRepo struct {
	visits      map[uint]*models.Visit
	lastFilters repositories.VisitFilters
}

func newFakeVisitRepo(visits ...*models.Visit) *fakeVisitRepo {
	f := &fakeVisitRepo{visits: make(map[uint]*models.Visit)}
	for _, v := range visits {
		f.visits[v.ID] = v
	}
	return f
}

func (f *fakeVisitRepo) Create(ctx context.Context, v *models.Visit) error {
	v.ID = uint(len(f.visits) + 1)
	f.visits[v.ID] = v
	return nil
}

func (f *fakeVisitRepo) GetByID(ctx context.Context, id uint) (*models.Visit, error) {
	v, ok := f.visits[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return v, nil
}

func (f *fakeVisitRepo) Update(ctx context.Context, v *models.Visit) error {
	f.visits[v.ID] = v
	return nil
}

func (f *fakeVisitRepo) Delete(ctx context.Context, id uint) error {
	delete(f.visits, id)
	return nil
}

func (f *fakeVisitRepo) List(ctx context.Context, filters repositories.VisitFilters) ([]*models.Visit, int64, error) {
	f.lastFilters = filters
	var out []*models.Visit
	for _, v := range f.visits {
		if filters.SupervisorID != nil && v.SupervisorID != *filters.SupervisorID {
			continue
		}
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

type fakeEvaluationRequestRepo struct {
	requests map[uint]*models.EvaluationRequest
}

func newFakeEvaluationRequestRepo(requests ...*models.EvaluationRequest) *fakeEvaluationRequestRepo {
	f := &fakeEvaluationRequestRepo{requests: make(map[uint]*models.EvaluationRequest)}
	for _, r := range requests {
		f.requests[r.ID] = r
	}
	return f
}

func (f *fakeEvaluationRequestRepo) Create(ctx context.Context, r *models.EvaluationRequest) error {
	r.ID = uint(len(f.requests) + 1)
	f.requests[r.ID] = r
	return nil
}

func (f *fakeEvaluationRequestRepo) GetByID(ctx context.Context, id uint) (*models.EvaluationRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeEvaluationRequestRepo) GetByIDWithTargets(ctx context.Context, id uint) (*models.EvaluationRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeEvaluationRequestRepo) Update(ctx context.Context, r *models.EvaluationRequest) error {
	f.requests[r.ID] = r
	return nil
}

func (f *fakeEvaluationRequestRepo) Delete(ctx context.Context, id uint) error {
	delete(f.requests, id)
	return nil
}

func (f *fakeEvaluationRequestRepo) List(ctx context.Context, limit, offset int) ([]*models.EvaluationRequest, int64, error) {
	var out []*models.EvaluationRequest
	for _, r := range f.requests {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEvaluationRequestRepo) ReplaceTargets(ctx context.Context, id uint, companyIDs, studentIDs []uint) error {
	return nil
}
