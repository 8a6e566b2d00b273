package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetProjectID(ctx *gin.Context) (uint64, error) {
	var err error

	projectIDStr := ctx.Param("project_id")

	if projectIDStr == "" {
		return 0, errors.New("Project ID not found")
	}

	projectID, err := strconv.ParseUint(projectIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid Project ID")
	}

	return projectID, nil
}

func GetRoomID(ctx *gin.Context) (uint64, error) {
	var err error

	roomIDStr := ctx.Param("room_id")

	if roomIDStr == "" {
		return 0, errors.New("Chat room ID not found")
	}

	roomID, err := strconv.ParseUint(roomIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid chat room ID")
	}

	return roomID, nil
}

func GetPathID(ctx *gin.Context, name string) (uint64, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New(name + " not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + name)
	}

	return id, nil
}
