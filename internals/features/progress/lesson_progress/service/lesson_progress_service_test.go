package service

import (
	"context"
	"testing"

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
	"afrikstudent_backend/internals/features/progress/lesson_progress/model"
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
		&model.LessonProgressModel{},
	))
	return db
}

func seedModuleWithLessons(t *testing.T, db *gorm.DB, formationID uuid.UUID, lessons int) (moduleModel.ModuleModel, []lessonModel.LessonModel) {
	t.Helper()

	module := moduleModel.ModuleModel{
		ModuleTitle:       "Module " + uuid.NewString()[:8],
		ModuleOrder:       1,
		ModuleFormationID: formationID,
	}
	require.NoError(t, db.Create(&module).Error)

	out := make([]lessonModel.LessonModel, 0, lessons)
	for i := 0; i < lessons; i++ {
		lesson := lessonModel.LessonModel{
			LessonTitle:    "Lesson",
			LessonModuleID: &module.ModuleID,
		}
		require.NoError(t, db.Create(&lesson).Error)
		out = append(out, lesson)
	}
	return module, out
}

func TestMarkCompleted_Upserts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLessonProgressService(db)

	formation := formationModel.FormationModel{FormationTitle: "F"}
	require.NoError(t, db.Create(&formation).Error)
	_, lessons := seedModuleWithLessons(t, db, formation.FormationID, 1)

	student := uuid.New()

	got, err := svc.MarkCompleted(context.Background(), student, lessons[0].LessonID)
	require.NoError(t, err)
	assert.True(t, got.LessonProgressIsCompleted)
	require.NotNil(t, got.LessonProgressCompletedAt)

	// marking again flips the same row
	again, err := svc.MarkCompleted(context.Background(), student, lessons[0].LessonID)
	require.NoError(t, err)
	assert.Equal(t, got.LessonProgressID, again.LessonProgressID)

	undone, err := svc.MarkIncomplete(context.Background(), student, lessons[0].LessonID)
	require.NoError(t, err)
	assert.Equal(t, got.LessonProgressID, undone.LessonProgressID)
	assert.False(t, undone.LessonProgressIsCompleted)
	assert.Nil(t, undone.LessonProgressCompletedAt)

	var count int64
	require.NoError(t, db.Model(&model.LessonProgressModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMarkCompleted_LessonNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLessonProgressService(db)

	_, err := svc.MarkCompleted(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)
}

func TestGetModuleProgress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLessonProgressService(db)

	formation := formationModel.FormationModel{FormationTitle: "F"}
	require.NoError(t, db.Create(&formation).Error)
	module, lessons := seedModuleWithLessons(t, db, formation.FormationID, 4)

	student := uuid.New()
	for _, l := range lessons[:3] {
		_, err := svc.MarkCompleted(context.Background(), student, l.LessonID)
		require.NoError(t, err)
	}
	// another student's progress must not bleed in
	_, err := svc.MarkCompleted(context.Background(), uuid.New(), lessons[3].LessonID)
	require.NoError(t, err)

	got, err := svc.GetModuleProgress(context.Background(), student, module.ModuleID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, got.TotalLessons)
	assert.EqualValues(t, 3, got.CompletedLessons)
	assert.InDelta(t, 75.0, got.CompletionRate, 0.001)

	_, err = svc.GetModuleProgress(context.Background(), student, uuid.New())
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)
}

func TestGetFormationProgress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLessonProgressService(db)

	formation := formationModel.FormationModel{FormationTitle: "F"}
	require.NoError(t, db.Create(&formation).Error)
	done, first := seedModuleWithLessons(t, db, formation.FormationID, 2)
	untouched, _ := seedModuleWithLessons(t, db, formation.FormationID, 2)

	student := uuid.New()
	for _, l := range first {
		_, err := svc.MarkCompleted(context.Background(), student, l.LessonID)
		require.NoError(t, err)
	}

	got, err := svc.GetFormationProgress(context.Background(), student, formation.FormationID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, got.TotalLessons)
	assert.EqualValues(t, 2, got.CompletedLessons)
	assert.InDelta(t, 50.0, got.CompletionRate, 0.001)
	require.Len(t, got.Modules, 2)

	rates := map[uuid.UUID]float64{}
	for _, m := range got.Modules {
		rates[m.ModuleID] = m.CompletionRate
	}
	assert.InDelta(t, 100.0, rates[done.ModuleID], 0.001)
	assert.InDelta(t, 0.0, rates[untouched.ModuleID], 0.001)
}

func TestGetStudentProgress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLessonProgressService(db)

	formation := formationModel.FormationModel{FormationTitle: "F"}
	require.NoError(t, db.Create(&formation).Error)
	_, lessons := seedModuleWithLessons(t, db, formation.FormationID, 2)

	student := uuid.New()
	for _, l := range lessons {
		_, err := svc.MarkCompleted(context.Background(), student, l.LessonID)
		require.NoError(t, err)
	}

	got, err := svc.GetStudentProgress(context.Background(), student)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	empty, err := svc.GetStudentProgress(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
