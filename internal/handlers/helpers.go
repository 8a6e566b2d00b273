package handlers

import (
	"errors"
	"net/http"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUser rebuilds the minimal user record the authz predicates need
// from the authenticated identity the middleware stored.
func currentUser(ctx *gin.Context) (models.User, error) {
	authUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:  authUser.Name,
		Email: authUser.Email,
		Role:  authUser.Role,
	}
	user.ID = authUser.ID

	return user, nil
}

// requireProject resolves the :project_id path parameter and the caller.
// On failure it writes the response and returns ok=false.
func requireProject(ctx *gin.Context) (models.Project, models.User, bool) {
	user, err := currentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.Project{}, models.User{}, false
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Project{}, models.User{}, false
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return models.Project{}, models.User{}, false
	}

	return project, user, true
}
