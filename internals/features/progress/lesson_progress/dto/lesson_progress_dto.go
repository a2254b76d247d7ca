package dto

import (
	"time"

	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/progress/lesson_progress/model"
)

type LessonProgressDTO struct {
	LessonProgressID        uuid.UUID `json:"lesson_progress_id"`
	LessonProgressStudentID uuid.UUID `json:"lesson_progress_student_id"`
	LessonProgressLessonID  uuid.UUID `json:"lesson_progress_lesson_id"`

	LessonProgressIsCompleted bool       `json:"lesson_progress_is_completed"`
	LessonProgressCompletedAt *time.Time `json:"lesson_progress_completed_at"`

	LessonProgressCreatedAt time.Time `json:"lesson_progress_created_at"`
	LessonProgressUpdatedAt time.Time `json:"lesson_progress_updated_at"`
}

// ModuleProgressDTO summarizes a student's completion within one module.
type ModuleProgressDTO struct {
	ModuleID         uuid.UUID `json:"module_id"`
	ModuleTitle      string    `json:"module_title"`
	TotalLessons     int64     `json:"total_lessons"`
	CompletedLessons int64     `json:"completed_lessons"`
	CompletionRate   float64   `json:"completion_rate"`
}

type FormationProgressDTO struct {
	FormationID      uuid.UUID           `json:"formation_id"`
	TotalLessons     int64               `json:"total_lessons"`
	CompletedLessons int64               `json:"completed_lessons"`
	CompletionRate   float64             `json:"completion_rate"`
	Modules          []ModuleProgressDTO `json:"modules"`
}

func ToLessonProgressDTO(m model.LessonProgressModel) LessonProgressDTO {
	return LessonProgressDTO{
		LessonProgressID:          m.LessonProgressID,
		LessonProgressStudentID:   m.LessonProgressStudentID,
		LessonProgressLessonID:    m.LessonProgressLessonID,
		LessonProgressIsCompleted: m.LessonProgressIsCompleted,
		LessonProgressCompletedAt: m.LessonProgressCompletedAt,
		LessonProgressCreatedAt:   m.LessonProgressCreatedAt,
		LessonProgressUpdatedAt:   m.LessonProgressUpdatedAt,
	}
}
