package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/constants"
	assignmentmodel "ourschool_backend/internals/features/school/assignments/model"
	assignmentservice "ourschool_backend/internals/features/school/assignments/service"
	"ourschool_backend/internals/features/school/terms/model"
	usermodel "ourschool_backend/internals/features/users/model"
)

var ErrGradeFinalized = errors.New("term grade is finalized")

// RecalcStudentTermGrade recomputes one student's aggregate for one
// subject from scratch. It is a no-op (nil error) when no term is
// active, when the subject is not linked to the active term, or when
// the aggregate has been finalized. Safe to call inside the grading
// transaction.
func RecalcStudentTermGrade(tx *gorm.DB, studentID, subjectID uuid.UUID) error {
	term, err := ActiveTerm(tx)
	if err != nil {
		return err
	}
	if term == nil {
		return nil
	}

	var link model.TermSubjectModel
	err = tx.First(&link,
		"term_subject_term_id = ? AND term_subject_subject_id = ? AND term_subject_is_active = ?",
		term.TermID, subjectID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	grade, err := getOrCreateTermGrade(tx, studentID, link.TermSubjectID)
	if err != nil {
		return err
	}
	if grade.IsFinalized {
		return nil
	}

	var rows []assignmentmodel.StudentAssignmentModel
	if err := tx.
		Preload("Template").
		Joins("JOIN assignment_templates ON assignment_templates.assignment_template_id = student_assignments.student_assignment_template_id").
		Where("student_assignments.student_assignment_student_id = ?", studentID).
		Where("assignment_templates.assignment_template_subject_id = ?", subjectID).
		Where("student_assignments.assigned_date >= ? AND student_assignments.assigned_date <= ?",
			term.TermStartDate, term.TermEndDate).
		Find(&rows).Error; err != nil {
		return err
	}

	var (
		earned    float64
		possible  float64
		completed int
	)
	for i := range rows {
		a := &rows[i]
		if a.Status != assignmentmodel.StatusGraded || a.PointsEarned == nil {
			continue
		}
		earned += *a.PointsEarned
		possible += a.EffectiveMaxPoints()
		completed++
	}

	now := time.Now()
	updates := map[string]interface{}{
		"current_points_earned":   earned,
		"current_points_possible": possible,
		"assignments_completed":   completed,
		"assignments_total":       len(rows),
		"last_calculated":         now,
	}
	if pct, ok := assignmentservice.Percentage(earned, possible); ok {
		letter := assignmentservice.LetterGrade(pct)
		updates["current_grade_percentage"] = pct
		updates["current_letter_grade"] = letter
	} else {
		updates["current_grade_percentage"] = nil
		updates["current_letter_grade"] = nil
	}

	return tx.Model(&model.StudentTermGradeModel{}).
		Where("student_term_grade_id = ?", grade.StudentTermGradeID).
		Updates(updates).Error
}

func getOrCreateTermGrade(tx *gorm.DB, studentID, termSubjectID uuid.UUID) (*model.StudentTermGradeModel, error) {
	var grade model.StudentTermGradeModel
	err := tx.First(&grade,
		"student_term_grade_student_id = ? AND student_term_grade_term_subject_id = ?",
		studentID, termSubjectID).Error
	if err == nil {
		return &grade, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	grade = model.StudentTermGradeModel{
		StudentTermGradeID:            uuid.New(),
		StudentTermGradeStudentID:     studentID,
		StudentTermGradeTermSubjectID: termSubjectID,
	}
	if err := tx.Create(&grade).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

// FinalizeGrade freezes the aggregate: current values are copied into
// the final columns and further recalcs skip the row. An already
// finalized grade is refused unless force is set, which restamps the
// final fields from the current ones.
func FinalizeGrade(db *gorm.DB, gradeID uuid.UUID, adminID *uuid.UUID, force bool) (*model.StudentTermGradeModel, error) {
	var grade model.StudentTermGradeModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&grade, "student_term_grade_id = ?", gradeID).Error; err != nil {
			return err
		}
		if grade.IsFinalized && !force {
			return ErrGradeFinalized
		}

		now := time.Now()
		updates := map[string]interface{}{
			"final_points_earned":    grade.CurrentPointsEarned,
			"final_points_possible":  grade.CurrentPointsPossible,
			"final_grade_percentage": grade.CurrentGradePercentage,
			"final_letter_grade":     grade.CurrentLetterGrade,
			"is_finalized":           true,
			"finalized_date":         now,
			"finalized_by":           adminID,
		}
		if err := tx.Model(&grade).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&grade, "student_term_grade_id = ?", gradeID).Error
	})
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

// CalculateAllTermGrades recalcs every (active student, linked subject)
// pair for the active term. Returns the number of pairs processed; zero
// with nil error when no term is active.
func CalculateAllTermGrades(db *gorm.DB) (int, error) {
	term, err := ActiveTerm(db)
	if err != nil {
		return 0, err
	}
	if term == nil {
		return 0, nil
	}

	var links []model.TermSubjectModel
	if err := db.
		Where("term_subject_term_id = ? AND term_subject_is_active = ?", term.TermID, true).
		Find(&links).Error; err != nil {
		return 0, err
	}

	var students []usermodel.UserModel
	if err := db.
		Where("role = ? AND is_active = ?", constants.RoleStudent, true).
		Find(&students).Error; err != nil {
		return 0, err
	}

	processed := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range links {
			for j := range students {
				if err := RecalcStudentTermGrade(tx, students[j].ID, links[i].TermSubjectSubjectID); err != nil {
					return err
				}
				processed++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}
