package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beerledger.io/BeerLedger/pkg/auth"
	"beerledger.io/BeerLedger/pkg/model"
	"beerledger.io/BeerLedger/pkg/repository"
)

type collectionRepository interface {
	GetCollectionForUser(ctx context.Context, userID int64) ([]*model.CollectionEntry, error)
	GetCollectionEntryByID(ctx context.Context, entryID uint) (*model.CollectionEntry, error)
	AddCollectionEntry(ctx context.Context, entry model.CollectionEntry) (*model.CollectionEntry, error)
	UpdateCollectionEntry(ctx context.Context, entryID uint, update model.CollectionUpdate) (*model.CollectionEntry, error)
	DeleteCollectionEntry(ctx context.Context, entryID uint) error
	ClearCollections(ctx context.Context) error
}

type CollectionHandler struct {
	repository collectionRepository
	logger     *zap.Logger
}

func NewCollectionHandler(repository collectionRepository, logger *zap.Logger) *CollectionHandler {
	return &CollectionHandler{repository: repository, logger: logger}
}

func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/clear", h.Clear)
	rg.GET("/:userId", h.ListForUser)
	rg.POST("", h.Create)
	rg.PUT("/:userId", h.Update)   // same segment as the GET wildcard; holds an entry id
	rg.DELETE("/:userId", h.Delete)
}

func (h *CollectionHandler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id must be an integer"})

		return
	}

	entries, err := h.repository.GetCollectionForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(http.StatusOK, entriesFromModel(entries))
}

type createEntryRequest struct {
	UserID int64   `json:"user_id"`
	BeerID string  `binding:"required" json:"beer_id"`
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}

func (h *CollectionHandler) Create(c *gin.Context) {
	var request createEntryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := validateRating(request.Rating); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if !h.requireOwnership(c, request.UserID) {
		return
	}

	entry := model.CollectionEntry{
		UserID: request.UserID,
		BeerID: request.BeerID,
		Rating: request.Rating,
		Notes:  request.Notes,
	}

	created, err := h.repository.AddCollectionEntry(c.Request.Context(), entry)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			c.JSON(http.StatusConflict, gin.H{"error": "beer already in collection"})

			return
		}

		if errors.Is(err, repository.ErrBeerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "beer not found"})

			return
		}

		h.logger.Error("error adding collection entry",
			zap.Int64("user_id", request.UserID), zap.String("beer_id", request.BeerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(http.StatusCreated, entryFromModel(*created))
}

type updateEntryRequest struct {
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}

func (h *CollectionHandler) Update(c *gin.Context) {
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	var request updateEntryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := validateRating(request.Rating); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if !h.requireEntryOwnership(c, entryID) {
		return
	}

	updated, err := h.repository.UpdateCollectionEntry(c.Request.Context(), entryID,
		model.CollectionUpdate{Rating: request.Rating, Notes: request.Notes})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "collection entry not found"})
		default:
			h.logger.Error("error updating collection entry", zap.Uint("entry_id", entryID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}

		return
	}

	c.JSON(http.StatusOK, entryFromModel(*updated))
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	if !h.requireEntryOwnership(c, entryID) {
		return
	}

	if err := h.repository.DeleteCollectionEntry(c.Request.Context(), entryID); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "collection entry not found"})

			return
		}

		h.logger.Error("error deleting collection entry", zap.Uint("entry_id", entryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "beer removed from collection successfully"})
}

func (h *CollectionHandler) Clear(c *gin.Context) {
	if err := h.repository.ClearCollections(c.Request.Context()); err != nil {
		h.logger.Error("error clearing collections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all user collections cleared successfully"})
}

func entryIDParam(c *gin.Context) (uint, bool) {
	entryID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry id must be an integer"})

		return 0, false
	}

	return uint(entryID), true
}

const maxRating = 5

func validateRating(rating *int) error {
	if rating != nil && (*rating < 0 || *rating > maxRating) {
		return fmt.Errorf("%w: rating must be between 0 and %d", ErrInvalidInput, maxRating)
	}

	return nil
}

// requireOwnership rejects a mutation whose target user differs from the
// authenticated one. Anonymous requests pass when auth is disabled.
func (h *CollectionHandler) requireOwnership(c *gin.Context, userID int64) bool {
	authenticated, ok := auth.UserID(c)
	if !ok {
		return true
	}

	if authenticated != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify another user's collection"})

		return false
	}

	return true
}

func (h *CollectionHandler) requireEntryOwnership(c *gin.Context, entryID uint) bool {
	authenticated, ok := auth.UserID(c)
	if !ok {
		return true
	}

	entry, err := h.repository.GetCollectionEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "collection entry not found"})

			return false
		}

		h.logger.Error("error loading collection entry", zap.Uint("entry_id", entryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return false
	}

	if entry.UserID != authenticated {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify another user's collection"})

		return false
	}

	return true
}
