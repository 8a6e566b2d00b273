// Package authz holds the project access rules in one place. Every
// project-scoped resource (workers, suppliers, timeline, risks, updates,
// chat) goes through these predicates instead of re-checking roles inline.
package authz

import (
	"errors"

	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"gorm.io/gorm"
)

// CanWrite reports whether user may mutate project and its scoped resources.
// Only the supervisor who owns the project may write.
func CanWrite(user models.User, project models.Project) bool {
	return user.Role == types.RoleSupervisor && project.SupervisorID == user.ID
}

// CanRead reports whether user may see project and its scoped resources.
// Writers can read; a worker can read when a ProjectWorker row links them.
func CanRead(conn *gorm.DB, user models.User, project models.Project) (bool, error) {
	if CanWrite(user, project) {
		return true, nil
	}

	if user.Role != types.RoleWorker {
		return false, nil
	}

	var assignment models.ProjectWorker

	err := conn.Where("project_id = ? AND worker_id = ?", project.ID, user.ID).
		First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// VisibleProjects scopes a query to the projects user may read. Unauthorized
// callers get an empty set, never an error.
func VisibleProjects(conn *gorm.DB, user models.User) *gorm.DB {
	switch user.Role {
	case types.RoleSupervisor:
		return conn.Where("supervisor_id = ?", user.ID)
	case types.RoleWorker:
		return conn.Where("id IN (?)",
			conn.Session(&gorm.Session{NewDB: true}).
				Model(&models.ProjectWorker{}).
				Select("project_id").
				Where("worker_id = ?", user.ID))
	default:
		return conn.Where("1 = 0")
	}
}
