package http

import (
	"net/http"

	"bluff-card/internal/config"

	"github.com/gin-gonic/gin"
)

// GetRobotWeightsHandler returns the robot decision weights in effect.
// @Summary Get robot decision weights
// @Description Returns the challenge/lie probabilities the robots play with
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config/robot [get]
func GetRobotWeightsHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"weights":               cfg.GetRobot(),
			"awardPileOnRoundReset": cfg.AwardPileOnRoundReset,
		})
	}
}

// UpdateRobotWeightsHandler replaces the robot decision weights. Games
// started after the update use the new weights.
// @Summary Update robot decision weights
// @Tags Config
// @Accept json
// @Produce json
// @Param request body config.RobotWeights true "New weights"
// @Success 200 {object} map[string]interface{}
// @Router /config/robot [put]
func UpdateRobotWeightsHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var w config.RobotWeights
		if err := c.BindJSON(&w); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		cfg.SetRobot(w)
		c.JSON(http.StatusOK, gin.H{"weights": cfg.GetRobot()})
	}
}
