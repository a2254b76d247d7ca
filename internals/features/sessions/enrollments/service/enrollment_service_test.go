package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	formationModel "afrikstudent_backend/internals/features/academics/formations/model"
	"afrikstudent_backend/internals/constants"
	sessionModel "afrikstudent_backend/internals/features/sessions/course_sessions/model"
	"afrikstudent_backend/internals/features/sessions/enrollments/dto"
	"afrikstudent_backend/internals/features/sessions/enrollments/model"
	userModel "afrikstudent_backend/internals/features/users/users/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&formationModel.FormationModel{},
		&userModel.UserModel{},
		&sessionModel.CourseSessionModel{},
		&model.EnrollmentModel{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, email string) userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		UserName:     "Student " + email,
		UserEmail:    email,
		UserPassword: "hash",
		UserRole:     constants.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedSession(t *testing.T, db *gorm.DB, maxStudents int, status string) sessionModel.CourseSessionModel {
	t.Helper()

	formation := formationModel.FormationModel{FormationTitle: "DevOps"}
	require.NoError(t, db.Create(&formation).Error)

	instructor := userModel.UserModel{
		UserName: "Instructor", UserEmail: uuid.NewString() + "@example.com",
		UserPassword: "hash", UserRole: constants.RoleInstructor,
	}
	require.NoError(t, db.Create(&instructor).Error)

	session := sessionModel.CourseSessionModel{
		CourseSessionFormationID:  formation.FormationID,
		CourseSessionInstructorID: instructor.UserID,
		CourseSessionStartDate:    time.Now().Add(24 * time.Hour),
		CourseSessionEndDate:      time.Now().Add(30 * 24 * time.Hour),
		CourseSessionStatus:       status,
		CourseSessionMaxStudents:  maxStudents,
	}
	require.NoError(t, db.Create(&session).Error)
	return session
}

func TestCreateEnrollment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	session := seedSession(t, db, 10, sessionModel.SessionStatusScheduled)
	student := seedStudent(t, db, "a@example.com")

	got, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusPending, got.EnrollmentStatus)
	assert.Equal(t, model.PaymentStatusUnpaid, got.EnrollmentPaymentStatus)
	assert.False(t, got.EnrollmentDate.IsZero())
	require.NotNil(t, got.Student)
	assert.Equal(t, student.UserID, got.Student.UserID)
}

func TestCreateEnrollment_DuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	session := seedSession(t, db, 10, sessionModel.SessionStatusScheduled)
	student := seedStudent(t, db, "a@example.com")

	req := dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
	}
	_, err := svc.CreateEnrollment(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateEnrollment(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, err.(*fiber.Error).Code)

	var count int64
	require.NoError(t, db.Model(&model.EnrollmentModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateEnrollment_FullSessionBoundary(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	session := seedSession(t, db, 1, sessionModel.SessionStatusScheduled)
	first := seedStudent(t, db, "first@example.com")
	second := seedStudent(t, db, "second@example.com")

	enrolled, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       first.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
	})
	require.NoError(t, err)

	// seat 2 of max 1
	_, err = svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       second.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, err.(*fiber.Error).Code)

	// cancelling frees the seat
	_, err = svc.CancelEnrollment(context.Background(), enrolled.EnrollmentID)
	require.NoError(t, err)

	_, err = svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       second.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
	})
	require.NoError(t, err)
}

func TestCreateEnrollment_ReactivatesCancelledRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	session := seedSession(t, db, 10, sessionModel.SessionStatusScheduled)
	student := seedStudent(t, db, "a@example.com")

	first, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
	})
	require.NoError(t, err)
	_, err = svc.CancelEnrollment(context.Background(), first.EnrollmentID)
	require.NoError(t, err)

	second, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
	})
	require.NoError(t, err)

	// same row reused, back to pending
	assert.Equal(t, first.EnrollmentID, second.EnrollmentID)
	assert.Equal(t, model.EnrollmentStatusPending, second.EnrollmentStatus)

	var count int64
	require.NoError(t, db.Model(&model.EnrollmentModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateEnrollment_CancelledSessionRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	session := seedSession(t, db, 10, sessionModel.SessionStatusCancelled)
	student := seedStudent(t, db, "a@example.com")

	_, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, err.(*fiber.Error).Code)
}

func TestCreateEnrollment_MissingPartiesRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	session := seedSession(t, db, 10, sessionModel.SessionStatusScheduled)
	student := seedStudent(t, db, "a@example.com")

	_, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       uuid.New(),
		EnrollmentCourseSessionID: session.CourseSessionID,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)

	_, err = svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)
}

func TestConfirmEnrollment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	session := seedSession(t, db, 10, sessionModel.SessionStatusScheduled)
	student := seedStudent(t, db, "a@example.com")

	created, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
	})
	require.NoError(t, err)

	got, err := svc.ConfirmEnrollment(context.Background(), created.EnrollmentID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusConfirmed, got.EnrollmentStatus)

	_, err = svc.ConfirmEnrollment(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)
}

func TestBulkUnenroll(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	session := seedSession(t, db, 10, sessionModel.SessionStatusScheduled)

	var ids []uuid.UUID
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		student := seedStudent(t, db, email)
		ids = append(ids, student.UserID)
		_, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
			EnrollmentStudentID:       student.UserID,
			EnrollmentCourseSessionID: session.CourseSessionID,
		})
		require.NoError(t, err)
	}

	removed, err := svc.BulkUnenroll(context.Background(), dto.BulkUnenrollRequest{
		CourseSessionID: session.CourseSessionID,
		StudentIDs:      ids[:2],
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	var count int64
	require.NoError(t, db.Model(&model.EnrollmentModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = svc.BulkUnenroll(context.Background(), dto.BulkUnenrollRequest{
		CourseSessionID: uuid.New(),
		StudentIDs:      ids,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)
}
