package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

func newTestAttendanceService(repo *stubRepository) AttendanceService {
	if repo.systemLog == nil {
		repo.systemLog = &fakeSystemLogRepo{}
	}
	logger := testLogger()
	audit := NewAuditService(repo, logger, nil)
	return NewAttendanceService(repo, logger, validator.New(), audit, nil)
}

func TestAttendanceService_Record(t *testing.T) {
	ctx := context.Background()
	institution := &models.Principal{ID: 4, Username: "inst", Role: models.RoleInstitution}
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	seed := func() (*fakeAttendanceRepo, AttendanceService) {
		attendance := newFakeAttendanceRepo()
		students := newFakeStudentRepo(&models.Student{ID: 5, Name: "Ali", NationalID: "29805120101234", CompanyID: 3})
		service := newTestAttendanceService(&stubRepository{attendance: attendance, student: students})
		return attendance, service
	}

	t.Run("records attendance with company and recorder stamped", func(t *testing.T) {
		_, service := seed()

		record, err := service.Record(ctx, institution, &validator.AttendanceCreateRequest{
			StudentID: 5,
			Date:      date,
			Status:    models.AttendancePresent,
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if record.CompanyID != 3 {
			t.Errorf("expected company from the student row, got %d", record.CompanyID)
		}
		if record.RecordedByID == nil || *record.RecordedByID != institution.ID {
			t.Error("expected the recorder to be stamped from the caller")
		}
	})

	t.Run("second record for the same student and date conflicts", func(t *testing.T) {
		_, service := seed()

		first := &validator.AttendanceCreateRequest{StudentID: 5, Date: date, Status: models.AttendancePresent}
		if _, err := service.Record(ctx, institution, first); err != nil {
			t.Fatalf("first Record failed: %v", err)
		}

		second := &validator.AttendanceCreateRequest{StudentID: 5, Date: date, Status: models.AttendanceAbsent}
		if _, err := service.Record(ctx, institution, second); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("another date for the same student is fine", func(t *testing.T) {
		_, service := seed()

		if _, err := service.Record(ctx, institution, &validator.AttendanceCreateRequest{
			StudentID: 5, Date: date, Status: models.AttendancePresent,
		}); err != nil {
			t.Fatalf("first Record failed: %v", err)
		}
		if _, err := service.Record(ctx, institution, &validator.AttendanceCreateRequest{
			StudentID: 5, Date: date.AddDate(0, 0, 1), Status: models.AttendancePresent,
		}); err != nil {
			t.Fatalf("next-day Record failed: %v", err)
		}
	})

	t.Run("unknown student is a validation error", func(t *testing.T) {
		_, service := seed()

		_, err := service.Record(ctx, institution, &validator.AttendanceCreateRequest{
			StudentID: 999, Date: date, Status: models.AttendancePresent,
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("employee may not record attendance", func(t *testing.T) {
		_, service := seed()
		employee := &models.Principal{ID: 9, Username: "emp", Role: models.RoleEmployee}

		_, err := service.Record(ctx, employee, &validator.AttendanceCreateRequest{
			StudentID: 5, Date: date, Status: models.AttendancePresent,
		})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("institution may edit but not delete", func(t *testing.T) {
		_, service := seed()

		record, err := service.Record(ctx, institution, &validator.AttendanceCreateRequest{
			StudentID: 5, Date: date, Status: models.AttendancePresent,
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		absent := models.AttendanceAbsent
		reason := "sick"
		if _, err := service.Update(ctx, institution, record.ID, &validator.AttendanceUpdateRequest{
			Status: &absent, Reason: &reason,
		}); err != nil {
			t.Fatalf("institution update failed: %v", err)
		}

		if err := service.Delete(ctx, institution, record.ID); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected forbidden delete, got %v", err)
		}
	})
}

func TestAttendanceService_TrainingDays(t *testing.T) {
	ctx := context.Background()
	manager := &models.Principal{ID: 2, Username: "mgr", Role: models.RoleManager}

	t.Run("institution only reads the calendar", func(t *testing.T) {
		service := newTestAttendanceService(&stubRepository{})
		institution := &models.Principal{ID: 4, Username: "inst", Role: models.RoleInstitution}

		_, err := service.CreateTrainingDay(ctx, institution, &validator.TrainingDayRequest{
			Date:    time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			DayType: models.DayTraining,
		})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("rejects unknown day types", func(t *testing.T) {
		service := newTestAttendanceService(&stubRepository{})

		_, err := service.CreateTrainingDay(ctx, manager, &validator.TrainingDayRequest{
			Date:    time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			DayType: "weekend",
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
