package services

import (
	"errors"

	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"gorm.io/gorm"
)

// CreateProject persists a new project supervised by the creator and
// provisions its chat room in the same transaction. Room provisioning is
// "create if absent": retried creates against an existing project never
// produce a second room.
func CreateProject(conn *gorm.DB, supervisor models.User, project *models.Project) error {
	if supervisor.Role != types.RoleSupervisor {
		return ErrForbidden
	}

	project.SupervisorID = supervisor.ID

	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		room, err := EnsureChatRoom(tx, project.ID)
		if err != nil {
			return err
		}
		project.ChatRoom = &room

		return nil
	})
}

// EnsureChatRoom returns the project's chat room, creating it if missing.
// The unique index on chat_rooms.project_id backs this under concurrency.
func EnsureChatRoom(conn *gorm.DB, projectID uint) (models.ChatRoom, error) {
	var room models.ChatRoom

	err := conn.Where(models.ChatRoom{ProjectID: projectID}).FirstOrCreate(&room).Error

	return room, err
}

// AssignWorker links a worker to a project. The duplicate check, the insert
// and the worker-count recompute all run in one transaction so that
// current_worker_count can never drift from the assignment rows.
func AssignWorker(conn *gorm.DB, project models.Project, worker models.User, roleDescription string) (models.ProjectWorker, error) {
	assignment := models.ProjectWorker{
		ProjectID:       project.ID,
		WorkerID:        worker.ID,
		RoleDescription: roleDescription,
	}

	err := conn.Transaction(func(tx *gorm.DB) error {
		var existing models.ProjectWorker

		err := tx.Where("project_id = ? AND worker_id = ?", project.ID, worker.ID).
			First(&existing).Error

		if err == nil {
			return ErrDuplicateAssignment
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		return recountWorkers(tx, project.ID)
	})

	if err != nil {
		return models.ProjectWorker{}, err
	}

	return assignment, nil
}

// UnassignWorker removes a worker's assignment and recomputes the count in
// the same transaction.
func UnassignWorker(conn *gorm.DB, projectID, workerID uint) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		var assignment models.ProjectWorker

		err := tx.Where("project_id = ? AND worker_id = ?", projectID, workerID).
			First(&assignment).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Unscoped().Delete(&assignment).Error; err != nil {
			return err
		}

		return recountWorkers(tx, projectID)
	})
}

func recountWorkers(tx *gorm.DB, projectID uint) error {
	var count int64

	if err := tx.Model(&models.ProjectWorker{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return err
	}

	return tx.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("current_worker_count", count).Error
}
