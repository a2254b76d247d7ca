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
	lessonModel "afrikstudent_backend/internals/features/academics/lessons/model"
	moduleModel "afrikstudent_backend/internals/features/academics/modules/model"
	"afrikstudent_backend/internals/constants"
	"afrikstudent_backend/internals/features/sessions/course_sessions/dto"
	"afrikstudent_backend/internals/features/sessions/course_sessions/model"
	enrollmentModel "afrikstudent_backend/internals/features/sessions/enrollments/model"
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
		&moduleModel.ModuleModel{},
		&lessonModel.LessonModel{},
		&userModel.UserModel{},
		&model.CourseSessionModel{},
		&model.ModuleSessionInstructorModel{},
		&enrollmentModel.EnrollmentModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		UserName:     "User " + uuid.NewString()[:8],
		UserEmail:    uuid.NewString() + "@example.com",
		UserPassword: "hash",
		UserRole:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedFormation(t *testing.T, db *gorm.DB) formationModel.FormationModel {
	t.Helper()
	formation := formationModel.FormationModel{FormationTitle: "Cloud"}
	require.NoError(t, db.Create(&formation).Error)
	return formation
}

func createReq(formationID, instructorID uuid.UUID) dto.CreateCourseSessionRequest {
	return dto.CreateCourseSessionRequest{
		CourseSessionFormationID:  formationID,
		CourseSessionInstructorID: instructorID,
		CourseSessionStartDate:    time.Now().Add(24 * time.Hour),
		CourseSessionEndDate:      time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestCreateSession_Defaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCourseSessionService(db)
	formation := seedFormation(t, db)
	instructor := seedUser(t, db, constants.RoleInstructor)

	got, err := svc.CreateSession(context.Background(), createReq(formation.FormationID, instructor.UserID))
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusScheduled, got.CourseSessionStatus)
	assert.Equal(t, model.DefaultMaxStudents, got.CourseSessionMaxStudents)
	assert.EqualValues(t, 0, got.EnrolledCount)
	assert.False(t, got.IsFull)
	require.NotNil(t, got.FormationTitle)
	assert.Equal(t, "Cloud", *got.FormationTitle)
}

func TestCreateSession_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCourseSessionService(db)
	formation := seedFormation(t, db)
	instructor := seedUser(t, db, constants.RoleInstructor)
	student := seedUser(t, db, constants.RoleStudent)

	// student cannot teach
	_, err := svc.CreateSession(context.Background(), createReq(formation.FormationID, student.UserID))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.(*fiber.Error).Code)

	// unknown formation
	_, err = svc.CreateSession(context.Background(), createReq(uuid.New(), instructor.UserID))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)

	// end before start
	req := createReq(formation.FormationID, instructor.UserID)
	req.CourseSessionEndDate = req.CourseSessionStartDate.Add(-time.Hour)
	_, err = svc.CreateSession(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.(*fiber.Error).Code)
}

func TestIsFull_CountsNonCancelledOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCourseSessionService(db)
	formation := seedFormation(t, db)
	instructor := seedUser(t, db, constants.RoleInstructor)

	req := createReq(formation.FormationID, instructor.UserID)
	one := 1
	req.CourseSessionMaxStudents = &one
	session, err := svc.CreateSession(context.Background(), req)
	require.NoError(t, err)

	full, err := svc.IsFull(context.Background(), session.CourseSessionID)
	require.NoError(t, err)
	assert.False(t, full)

	student := seedUser(t, db, constants.RoleStudent)
	enrollment := enrollmentModel.EnrollmentModel{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
		EnrollmentStatus:          enrollmentModel.EnrollmentStatusConfirmed,
		EnrollmentPaymentStatus:   enrollmentModel.PaymentStatusUnpaid,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	full, err = svc.IsFull(context.Background(), session.CourseSessionID)
	require.NoError(t, err)
	assert.True(t, full)

	// cancelled seats do not count
	require.NoError(t, db.Model(&enrollment).
		Update("enrollment_status", enrollmentModel.EnrollmentStatusCancelled).Error)
	full, err = svc.IsFull(context.Background(), session.CourseSessionID)
	require.NoError(t, err)
	assert.False(t, full)
}

func TestGetAvailableSessions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCourseSessionService(db)
	formation := seedFormation(t, db)
	instructor := seedUser(t, db, constants.RoleInstructor)

	open, err := svc.CreateSession(context.Background(), createReq(formation.FormationID, instructor.UserID))
	require.NoError(t, err)

	cancelledReq := createReq(formation.FormationID, instructor.UserID)
	cancelledReq.CourseSessionStatus = model.SessionStatusCancelled
	_, err = svc.CreateSession(context.Background(), cancelledReq)
	require.NoError(t, err)

	fullReq := createReq(formation.FormationID, instructor.UserID)
	one := 1
	fullReq.CourseSessionMaxStudents = &one
	full, err := svc.CreateSession(context.Background(), fullReq)
	require.NoError(t, err)
	student := seedUser(t, db, constants.RoleStudent)
	require.NoError(t, db.Create(&enrollmentModel.EnrollmentModel{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: full.CourseSessionID,
		EnrollmentStatus:          enrollmentModel.EnrollmentStatusConfirmed,
		EnrollmentPaymentStatus:   enrollmentModel.PaymentStatusUnpaid,
	}).Error)

	got, err := svc.GetAvailableSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, open.CourseSessionID, got[0].CourseSessionID)
}

func TestSessionStudents_AndAvailableStudents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCourseSessionService(db)
	formation := seedFormation(t, db)
	instructor := seedUser(t, db, constants.RoleInstructor)

	session, err := svc.CreateSession(context.Background(), createReq(formation.FormationID, instructor.UserID))
	require.NoError(t, err)

	enrolled := seedUser(t, db, constants.RoleStudent)
	cancelled := seedUser(t, db, constants.RoleStudent)
	outsider := seedUser(t, db, constants.RoleStudent)

	require.NoError(t, db.Create(&enrollmentModel.EnrollmentModel{
		EnrollmentStudentID:       enrolled.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
		EnrollmentStatus:          enrollmentModel.EnrollmentStatusConfirmed,
		EnrollmentPaymentStatus:   enrollmentModel.PaymentStatusUnpaid,
	}).Error)
	require.NoError(t, db.Create(&enrollmentModel.EnrollmentModel{
		EnrollmentStudentID:       cancelled.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
		EnrollmentStatus:          enrollmentModel.EnrollmentStatusCancelled,
		EnrollmentPaymentStatus:   enrollmentModel.PaymentStatusUnpaid,
	}).Error)

	students, err := svc.GetSessionStudents(context.Background(), session.CourseSessionID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, enrolled.UserID, students[0].UserID)

	available, err := svc.GetAvailableStudents(context.Background(), session.CourseSessionID)
	require.NoError(t, err)
	ids := map[uuid.UUID]bool{}
	for _, s := range available {
		ids[s.UserID] = true
	}
	// cancelled enrollment means the student can re-enroll; instructor is
	// not a student and never appears
	assert.True(t, ids[cancelled.UserID])
	assert.True(t, ids[outsider.UserID])
	assert.False(t, ids[enrolled.UserID])
	assert.False(t, ids[instructor.UserID])
}

func TestAssignModuleInstructor_ClosesPreviousAssignment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCourseSessionService(db)
	formation := seedFormation(t, db)
	instructor := seedUser(t, db, constants.RoleInstructor)
	replacement := seedUser(t, db, constants.RoleInstructor)

	module := moduleModel.ModuleModel{
		ModuleTitle:       "K8s",
		ModuleOrder:       1,
		ModuleFormationID: formation.FormationID,
	}
	require.NoError(t, db.Create(&module).Error)

	session, err := svc.CreateSession(context.Background(), createReq(formation.FormationID, instructor.UserID))
	require.NoError(t, err)

	first, err := svc.AssignModuleInstructor(context.Background(), session.CourseSessionID,
		dto.AssignModuleInstructorRequest{ModuleID: module.ModuleID, InstructorID: instructor.UserID})
	require.NoError(t, err)
	assert.Nil(t, first.ModuleSessionInstructorEndedAt)

	second, err := svc.AssignModuleInstructor(context.Background(), session.CourseSessionID,
		dto.AssignModuleInstructorRequest{ModuleID: module.ModuleID, InstructorID: replacement.UserID})
	require.NoError(t, err)
	assert.Equal(t, replacement.UserID, second.ModuleSessionInstructorInstructorID)

	// only one assignment still active
	var active int64
	require.NoError(t, db.Model(&model.ModuleSessionInstructorModel{}).
		Where("module_session_instructor_ended_at IS NULL").Count(&active).Error)
	assert.EqualValues(t, 1, active)

	require.NoError(t, svc.EndModuleInstructorAssignment(context.Background(), second.ModuleSessionInstructorID))

	err = svc.EndModuleInstructorAssignment(context.Background(), second.ModuleSessionInstructorID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)
}

func TestDeleteSession_RemovesDependents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCourseSessionService(db)
	formation := seedFormation(t, db)
	instructor := seedUser(t, db, constants.RoleInstructor)

	session, err := svc.CreateSession(context.Background(), createReq(formation.FormationID, instructor.UserID))
	require.NoError(t, err)

	student := seedUser(t, db, constants.RoleStudent)
	require.NoError(t, db.Create(&enrollmentModel.EnrollmentModel{
		EnrollmentStudentID:       student.UserID,
		EnrollmentCourseSessionID: session.CourseSessionID,
		EnrollmentStatus:          enrollmentModel.EnrollmentStatusConfirmed,
		EnrollmentPaymentStatus:   enrollmentModel.PaymentStatusUnpaid,
	}).Error)

	require.NoError(t, svc.DeleteSession(context.Background(), session.CourseSessionID))

	var sessions, enrollments int64
	require.NoError(t, db.Model(&model.CourseSessionModel{}).Count(&sessions).Error)
	require.NoError(t, db.Model(&enrollmentModel.EnrollmentModel{}).Count(&enrollments).Error)
	assert.EqualValues(t, 0, sessions)
	assert.EqualValues(t, 0, enrollments)
}
