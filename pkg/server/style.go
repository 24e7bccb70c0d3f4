package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beerledger.io/BeerLedger/pkg/model"
)

type styleRepository interface {
	GetStyles(ctx context.Context) ([]*model.Style, error)
}

type StyleHandler struct {
	repository styleRepository
	logger     *zap.Logger
}

func NewStyleHandler(repository styleRepository, logger *zap.Logger) *StyleHandler {
	return &StyleHandler{repository: repository, logger: logger}
}

func (h *StyleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func (h *StyleHandler) List(c *gin.Context) {
	styles, err := h.repository.GetStyles(c.Request.Context())
	if err != nil {
		h.logger.Error("error listing styles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(http.StatusOK, stylesFromModel(styles))
}
