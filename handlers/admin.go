package handlers

import (
	"net/http"

	"smartplates/services/user"
	"smartplates/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	UserService user.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us user.UserService) *AdminHandler {
	return &AdminHandler{UserService: us}
}

// GetAllUsersHandler returns all users (with sensitive fields excluded).
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.UserService.GetAllUsers()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch users", err.Error())
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUserByIDHandler removes any account by ID.
func (ah *AdminHandler) DeleteUserByIDHandler(c *gin.Context) {
	id := c.Param("id")
	if err := ah.UserService.DeleteUser(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete user "+id, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
