package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-portfolio/internal/domain/contact"
	"github.com/adanyl0v/go-portfolio/internal/models"
)

type contactRequest struct {
	Name    string `json:"name" form:"name" binding:"max=255"`
	Email   string `json:"email" form:"email" binding:"max=255"`
	Message string `json:"message" form:"message" binding:"max=5000"`
}

func (h *handlerImpl) HandleSubmitContact(c *gin.Context) {
	var req contactRequest
	err := c.ShouldBind(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.contact.Submit(c, models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":    verr.Error(),
				"problems": verr.Problems,
			})
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to submit contact message")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome": result.Outcome,
		"message": result.Message,
	})
}
