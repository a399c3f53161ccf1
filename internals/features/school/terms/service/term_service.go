package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/terms/model"
	settingsservice "ourschool_backend/internals/features/system/settings/service"
)

var ErrTermNotFound = errors.New("term not found")

// ActiveTerm resolves the terms.active_term_id setting to a term row.
// Returns (nil, nil) when no term is active or the pointer is stale;
// callers treat that as "nothing to aggregate", not an error.
func ActiveTerm(db *gorm.DB) (*model.TermModel, error) {
	raw, err := settingsservice.GetString(db, settingsservice.KeyActiveTermID, "")
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, nil
	}

	var term model.TermModel
	if err := db.First(&term, "term_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &term, nil
}

// ActivateTerm points the active-term setting at termID. The previous
// active term is implicitly deactivated by the swap; the whole change
// is one transactional settings write.
func ActivateTerm(db *gorm.DB, termID uuid.UUID) (*model.TermModel, error) {
	var term model.TermModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&term, "term_id = ?", termID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTermNotFound
			}
			return err
		}
		return settingsservice.Set(tx, settingsservice.KeyActiveTermID, termID.String())
	})
	if err != nil {
		return nil, err
	}
	return &term, nil
}

// DeactivateTerm clears the active-term pointer.
func DeactivateTerm(db *gorm.DB) error {
	return settingsservice.Unset(db, settingsservice.KeyActiveTermID)
}
