package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/backup/service"
	helper "ourschool_backend/internals/helpers"
)

type BackupController struct {
	DB *gorm.DB
}

func NewBackupController(db *gorm.DB) *BackupController {
	return &BackupController{DB: db}
}

// GET /backup/export
// Streams the snapshot as a downloadable JSON file.
func (ctl *BackupController) Export(c *fiber.Ctx) error {
	snap, err := service.Export(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	filename := fmt.Sprintf("ourschool-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.JSON(snap)
}

// POST /backup/import
// Replaces ALL existing data with the uploaded snapshot.
func (ctl *BackupController) Import(c *fiber.Ctx) error {
	var snap service.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid snapshot payload")
	}
	if snap.Version != service.SnapshotVersion {
		return helper.Error(c, fiber.StatusUnprocessableEntity,
			fmt.Sprintf("Unsupported snapshot version %d", snap.Version))
	}
	if len(snap.Users) == 0 {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Snapshot contains no users; refusing to wipe the system")
	}

	if err := service.Import(ctl.DB, &snap); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Snapshot imported", fiber.Map{
		"users":               len(snap.Users),
		"subjects":            len(snap.Subjects),
		"terms":               len(snap.Terms),
		"student_assignments": len(snap.StudentAssignments),
		"attendance_records":  len(snap.AttendanceRecords),
		"point_transactions":  len(snap.PointTransactions),
	})
}
