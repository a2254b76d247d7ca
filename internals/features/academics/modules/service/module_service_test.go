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
	"afrikstudent_backend/internals/features/academics/modules/dto"
	"afrikstudent_backend/internals/features/academics/modules/model"
	helper "afrikstudent_backend/internals/helpers"
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
		&model.ModuleModel{},
		&lessonModel.LessonModel{},
		&lessonModel.AttachmentModel{},
	))
	return db
}

func seedFormation(t *testing.T, db *gorm.DB) formationModel.FormationModel {
	t.Helper()
	formation := formationModel.FormationModel{FormationTitle: "Data Engineering"}
	require.NoError(t, db.Create(&formation).Error)
	return formation
}

func TestCreateModule_WithNestedLessons(t *testing.T) {
	db := setupTestDB(t)
	formation := seedFormation(t, db)
	svc := NewModuleService(db)

	// an existing unassigned lesson to pull in by id
	existing := lessonModel.LessonModel{LessonTitle: "Recycled"}
	require.NoError(t, db.Create(&existing).Error)

	order := 2
	got, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
		ModuleTitle:       "SQL",
		ModuleOrder:       1,
		ModuleFormationID: formation.FormationID,
		Lessons: []dto.NestedLessonInput{
			{LessonTitle: "Joins", LessonOrder: &order},
			{ID: &existing.LessonID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "SQL", got.ModuleTitle)
	assert.Len(t, got.Lessons, 2)

	var pulled lessonModel.LessonModel
	require.NoError(t, db.First(&pulled, "lesson_id = ?", existing.LessonID).Error)
	require.NotNil(t, pulled.LessonModuleID)
	assert.Equal(t, got.ModuleID, *pulled.LessonModuleID)
}

func TestCreateModule_FormationNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewModuleService(db)

	_, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
		ModuleTitle:       "Orphan",
		ModuleFormationID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)

	var count int64
	require.NoError(t, db.Model(&model.ModuleModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateModule_NestedLessonNotFound(t *testing.T) {
	db := setupTestDB(t)
	formation := seedFormation(t, db)
	svc := NewModuleService(db)

	missing := uuid.New()
	_, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
		ModuleTitle:       "Broken",
		ModuleFormationID: formation.FormationID,
		Lessons:           []dto.NestedLessonInput{{ID: &missing}},
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)

	// whole create rolled back, no half-made module
	var count int64
	require.NoError(t, db.Model(&model.ModuleModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestUpdateModule_DetachesNotDeletes(t *testing.T) {
	db := setupTestDB(t)
	formation := seedFormation(t, db)
	svc := NewModuleService(db)

	created, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
		ModuleTitle:       "Python",
		ModuleFormationID: formation.FormationID,
		Lessons:           []dto.NestedLessonInput{{LessonTitle: "Basics"}},
	})
	require.NoError(t, err)
	require.Len(t, created.Lessons, 1)
	lessonID := created.Lessons[0].LessonID

	newTitle := "Python 3"
	got, err := svc.UpdateModule(context.Background(), created.ModuleID, dto.UpdateModuleRequest{
		ModuleTitle:   &newTitle,
		DeleteLessons: []uuid.UUID{lessonID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Python 3", got.ModuleTitle)
	assert.Empty(t, got.Lessons)

	// the lesson row survived, unassigned
	var lesson lessonModel.LessonModel
	require.NoError(t, db.First(&lesson, "lesson_id = ?", lessonID).Error)
	assert.Nil(t, lesson.LessonModuleID)
}

func TestUpdateModule_ReassignsLessonFromOtherModule(t *testing.T) {
	db := setupTestDB(t)
	formation := seedFormation(t, db)
	svc := NewModuleService(db)

	src, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
		ModuleTitle:       "Source",
		ModuleFormationID: formation.FormationID,
		Lessons:           []dto.NestedLessonInput{{LessonTitle: "Moving"}},
	})
	require.NoError(t, err)
	dst, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
		ModuleTitle:       "Destination",
		ModuleFormationID: formation.FormationID,
	})
	require.NoError(t, err)

	lessonID := src.Lessons[0].LessonID
	got, err := svc.UpdateModule(context.Background(), dst.ModuleID, dto.UpdateModuleRequest{
		Lessons: []dto.NestedLessonInput{{ID: &lessonID}},
	})
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, lessonID, got.Lessons[0].LessonID)

	srcAfter, err := svc.GetModuleByID(context.Background(), src.ModuleID)
	require.NoError(t, err)
	assert.Empty(t, srcAfter.Lessons)
}

func TestDeleteModule_DetachesLessons(t *testing.T) {
	db := setupTestDB(t)
	formation := seedFormation(t, db)
	svc := NewModuleService(db)

	created, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
		ModuleTitle:       "Doomed",
		ModuleFormationID: formation.FormationID,
		Lessons: []dto.NestedLessonInput{
			{LessonTitle: "One"}, {LessonTitle: "Two"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteModule(context.Background(), created.ModuleID))

	var modules int64
	require.NoError(t, db.Model(&model.ModuleModel{}).Count(&modules).Error)
	assert.EqualValues(t, 0, modules)

	var orphans int64
	require.NoError(t, db.Model(&lessonModel.LessonModel{}).
		Where("lesson_module_id IS NULL").Count(&orphans).Error)
	assert.EqualValues(t, 2, orphans)

	err = svc.DeleteModule(context.Background(), created.ModuleID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.(*fiber.Error).Code)
}

func TestGetAllModules_FilterByFormation(t *testing.T) {
	db := setupTestDB(t)
	f1 := seedFormation(t, db)
	f2 := seedFormation(t, db)
	svc := NewModuleService(db)

	for i := 0; i < 2; i++ {
		_, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
			ModuleTitle: "A", ModuleFormationID: f1.FormationID,
		})
		require.NoError(t, err)
	}
	_, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
		ModuleTitle: "B", ModuleFormationID: f2.FormationID,
	})
	require.NoError(t, err)

	p := helper.PaginationParams{Page: 1, PerPage: 50}
	got, total, err := svc.GetAllModules(context.Background(), &f1.FormationID, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, got, 2)

	_, total, err = svc.GetAllModules(context.Background(), nil, p)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestModuleOrder_DuplicatesAllowed(t *testing.T) {
	db := setupTestDB(t)
	formation := seedFormation(t, db)
	svc := NewModuleService(db)

	for i := 0; i < 2; i++ {
		_, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{
			ModuleTitle:       "Same order",
			ModuleOrder:       5,
			ModuleFormationID: formation.FormationID,
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&model.ModuleModel{}).
		Where("module_order = ?", 5).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
