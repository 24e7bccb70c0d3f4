package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"
	"go.uber.org/zap"

	"beerledger.io/BeerLedger/pkg/model"
	"beerledger.io/BeerLedger/pkg/server"
)

type fakeStyleRepo struct {
	styles []*model.Style
	err    error
}

func (f *fakeStyleRepo) GetStyles(_ context.Context) ([]*model.Style, error) {
	return f.styles, f.err
}

type StyleHandlerSuite struct {
	suite.Suite
	repo   *fakeStyleRepo
	router *gin.Engine
}

func TestStyleHandlerSuite(t *testing.T) {
	suite.Run(t, new(StyleHandlerSuite))
}

func (suite *StyleHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.repo = &fakeStyleRepo{}
	suite.router = gin.New()
	server.NewStyleHandler(suite.repo, zap.NewNop()).RegisterRoutes(suite.router.Group("/api/styles"))
}

func (suite *StyleHandlerSuite) TestList_ReturnsStyles() {
	suite.repo.styles = []*model.Style{
		{ID: 3, Name: "American IPA", ShortName: pointy.String("IPA")},
		{ID: 9, Name: "Witbier"},
	}

	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/styles", nil))

	suite.Equal(http.StatusOK, recorder.Code)
	suite.Contains(recorder.Body.String(), `"name":"American IPA"`)
	suite.Contains(recorder.Body.String(), `"short_name":"IPA"`)
	suite.NotContains(recorder.Body.String(), `"short_name":null`)
}

func (suite *StyleHandlerSuite) TestList_ReturnsEmptyArrayWhenNoStyles() {
	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/styles", nil))

	suite.Equal(http.StatusOK, recorder.Code)
	suite.Equal("[]", recorder.Body.String())
}

func (suite *StyleHandlerSuite) TestList_ReturnsServerErrorOnRepositoryFailure() {
	suite.repo.err = errors.New("connection refused")

	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/styles", nil))

	suite.Equal(http.StatusInternalServerError, recorder.Code)
}
