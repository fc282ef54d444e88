package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simailhq/simail_backend/models"
	"github.com/simailhq/simail_backend/utils"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !bindJSON(c, &req) {
			return
		}
		info, err := models.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := models.Logout(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

func listUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := models.GetAllUsers(c.Request.Context())
		if err != nil {
			respondFetchError(c, "users", "listUsersHandler", err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func getUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		user, err := models.GetUser(c.Request.Context(), id)
		if err != nil {
			respondFetchError(c, "users", "getUserHandler", err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUser
		if !bindJSON(c, &input) {
			return
		}
		user, err := models.CreateUser(c.Request.Context(), &input)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func updateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var input models.User
		if !bindJSON(c, &input) {
			return
		}
		user, err := input.UpdateUser(id)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		user.PrepareGive()
		c.JSON(http.StatusOK, user)
	}
}

func deleteUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var user models.User
		deleted, err := user.DeleteUser(id)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		deleted.PrepareGive()
		c.JSON(http.StatusOK, deleted)
	}
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func changePasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt(c, "id")
		if !ok {
			return
		}
		var req changePasswordRequest
		if !bindJSON(c, &req) {
			return
		}
		ctx := utils.SetUserIdInContext(c.Request.Context(), id)
		user, err := models.ChangePassword(ctx, req.OldPassword, req.NewPassword)
		if err != nil {
			respondMutationError(c, err)
			return
		}
		user.PrepareGive()
		c.JSON(http.StatusOK, user)
	}
}
