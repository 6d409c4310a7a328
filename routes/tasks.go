package routes

import (
	"net/http"
	"time"

	"reddit-insight-backend/models"
	"reddit-insight-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupTaskRoutes wires the to-do CRUD demo endpoints.
func SetupTaskRoutes(router *gin.Engine, tasks *mongo.Collection) {
	api := router.Group("/api/tasks")

	api.GET("", func(c *gin.Context) {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := tasks.Find(c.Request.Context(), bson.M{}, opts)
		if err != nil {
			utils.RespondWithInternalError(c, "listing_failed", "Failed to list tasks", nil)
			return
		}
		defer cursor.Close(c.Request.Context())

		var result []models.Task
		if err := cursor.All(c.Request.Context(), &result); err != nil {
			utils.RespondWithInternalError(c, "listing_failed", "Failed to decode tasks", nil)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": result})
	})

	api.POST("", func(c *gin.Context) {
		var task models.Task
		if err := c.ShouldBindJSON(&task); err != nil {
			utils.RespondWithBadRequest(c, "Missing 'title'", gin.H{"error": err.Error()})
			return
		}
		task.CreatedAt = time.Now()

		insertResult, err := tasks.InsertOne(c.Request.Context(), task)
		if err != nil {
			utils.RespondWithInternalError(c, "create_failed", "Failed to create task", nil)
			return
		}
		task.ID = insertResult.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, task)
	})

	api.PUT("/:id", func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondWithBadRequest(c, "Invalid task ID", nil)
			return
		}

		var task models.Task
		if err := c.ShouldBindJSON(&task); err != nil {
			utils.RespondWithBadRequest(c, "Missing 'title'", gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"$set": bson.M{"title": task.Title, "completed": task.Completed}}
		result, err := tasks.UpdateOne(c.Request.Context(), bson.M{"_id": id}, update)
		if err != nil {
			utils.RespondWithInternalError(c, "update_failed", "Failed to update task", nil)
			return
		}
		if result.MatchedCount == 0 {
			utils.RespondWithNotFound(c, "task_not_found", "Task not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	api.DELETE("/:id", func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondWithBadRequest(c, "Invalid task ID", nil)
			return
		}

		result, err := tasks.DeleteOne(c.Request.Context(), bson.M{"_id": id})
		if err != nil {
			utils.RespondWithInternalError(c, "delete_failed", "Failed to delete task", nil)
			return
		}
		if result.DeletedCount == 0 {
			utils.RespondWithNotFound(c, "task_not_found", "Task not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
}
