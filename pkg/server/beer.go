package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beerledger.io/BeerLedger/pkg/model"
	"beerledger.io/BeerLedger/pkg/repository"
)

type beerRepository interface {
	ListBeers(ctx context.Context, filter repository.BeerFilter) ([]*model.Beer, int64, error)
	GetBeerByID(ctx context.Context, beerID string) (*model.Beer, error)
	CreateBeer(ctx context.Context, beer model.Beer) (*model.Beer, error)
	UpdateBeer(ctx context.Context, beerID string, update model.BeerUpdate) (*model.Beer, error)
	DeleteBeer(ctx context.Context, beerID string) error
}

type BeerHandler struct {
	repository beerRepository
	logger     *zap.Logger
}

func NewBeerHandler(repository beerRepository, logger *zap.Logger) *BeerHandler {
	return &BeerHandler{repository: repository, logger: logger}
}

func (h *BeerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *BeerHandler) List(c *gin.Context) {
	filter, err := beerFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	beers, total, err := h.repository.ListBeers(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("error listing beers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"beers":      beersFromModel(beers),
		"pagination": paginationFor(total, filter.Page, filter.Limit),
	})
}

func (h *BeerHandler) Get(c *gin.Context) {
	beer, err := h.repository.GetBeerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrBeerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "beer not found"})

			return
		}

		h.logger.Error("error fetching beer", zap.String("beer_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(http.StatusOK, beerFromModel(*beer))
}

type createBeerRequest struct {
	Name          string            `binding:"required" json:"name"`
	NameDisplay   *string           `json:"name_display"`
	Description   *string           `json:"description"`
	ABV           *float64          `json:"abv"`
	IBU           *float64          `json:"ibu"`
	SRM           *float64          `json:"srm"`
	StyleID       *int              `json:"style_id"`
	AvailableID   *int              `json:"available_id"`
	GlasswareID   *int              `json:"glassware_id"`
	IsOrganic     bool              `json:"is_organic"`
	IsRetired     bool              `json:"is_retired"`
	Labels        *model.BeerLabels `json:"labels"`
	Status        *string           `json:"status"`
	StatusDisplay *string           `json:"status_display"`
}

func (h *BeerHandler) Create(c *gin.Context) {
	var request createBeerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	beer := model.Beer{
		Name:          request.Name,
		NameDisplay:   request.NameDisplay,
		Description:   request.Description,
		ABV:           request.ABV,
		IBU:           request.IBU,
		SRM:           request.SRM,
		StyleID:       request.StyleID,
		AvailableID:   request.AvailableID,
		GlasswareID:   request.GlasswareID,
		IsOrganic:     request.IsOrganic,
		IsRetired:     request.IsRetired,
		Labels:        request.Labels,
		Status:        request.Status,
		StatusDisplay: request.StatusDisplay,
	}

	created, err := h.repository.CreateBeer(c.Request.Context(), beer)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

			return
		}

		h.logger.Error("error creating beer", zap.String("name", request.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(http.StatusCreated, beerFromModel(*created))
}

type updateBeerRequest struct {
	Name          *string           `json:"name"`
	NameDisplay   *string           `json:"name_display"`
	Description   *string           `json:"description"`
	ABV           *float64          `json:"abv"`
	IBU           *float64          `json:"ibu"`
	SRM           *float64          `json:"srm"`
	StyleID       *int              `json:"style_id"`
	AvailableID   *int              `json:"available_id"`
	GlasswareID   *int              `json:"glassware_id"`
	IsOrganic     *bool             `json:"is_organic"`
	IsRetired     *bool             `json:"is_retired"`
	Labels        *model.BeerLabels `json:"labels"`
	Status        *string           `json:"status"`
	StatusDisplay *string           `json:"status_display"`
}

func (h *BeerHandler) Update(c *gin.Context) {
	var request updateBeerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	update := model.BeerUpdate{
		Name:          request.Name,
		NameDisplay:   request.NameDisplay,
		Description:   request.Description,
		ABV:           request.ABV,
		IBU:           request.IBU,
		SRM:           request.SRM,
		StyleID:       request.StyleID,
		AvailableID:   request.AvailableID,
		GlasswareID:   request.GlasswareID,
		IsOrganic:     request.IsOrganic,
		IsRetired:     request.IsRetired,
		Labels:        request.Labels,
		Status:        request.Status,
		StatusDisplay: request.StatusDisplay,
	}

	updated, err := h.repository.UpdateBeer(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrDuplicateName):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrBeerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "beer not found"})
		default:
			h.logger.Error("error updating beer", zap.String("beer_id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}

		return
	}

	c.JSON(http.StatusOK, beerFromModel(*updated))
}

func (h *BeerHandler) Delete(c *gin.Context) {
	err := h.repository.DeleteBeer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrBeerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "beer not found"})

			return
		}

		h.logger.Error("error deleting beer", zap.String("beer_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "beer deleted successfully"})
}
