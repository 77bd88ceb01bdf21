package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fsdevblog/gatelink/internal/cache"
	"github.com/fsdevblog/gatelink/internal/services"
	"github.com/fsdevblog/gatelink/internal/services/smocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ResolveControllerSuite struct {
	suite.Suite
	linkServMock   *smocks.LinkServiceMock
	resolverMock   *smocks.ResolverMock
	accessServMock *smocks.AccessServiceMock
	mailerMock     *smocks.MailerMock
	router         *gin.Engine
}

func (s *ResolveControllerSuite) SetupTest() {
	s.linkServMock = new(smocks.LinkServiceMock)
	s.resolverMock = new(smocks.ResolverMock)
	s.accessServMock = new(smocks.AccessServiceMock)
	s.mailerMock = new(smocks.MailerMock)
	s.router = newTestRouter(s.linkServMock, s.resolverMock, s.accessServMock, s.mailerMock)
}

func (s *ResolveControllerSuite) resolve(shortCode string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/s/"+shortCode, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ResolveControllerSuite) TestRedirect() {
	s.resolverMock.On("Resolve", mock.Anything, "pub1234").Return(&services.Resolution{
		Outcome: services.OutcomeRedirect,
		Snapshot: &cache.Snapshot{
			ShortCode:   "pub1234",
			OriginalURL: "https://example.com/target",
			Active:      true,
		},
	}, nil)

	w := s.resolve("pub1234")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("https://example.com/target", w.Header().Get("Location"))
}

func (s *ResolveControllerSuite) TestNotFound() {
	s.resolverMock.On("Resolve", mock.Anything, "nope123").
		Return(&services.Resolution{Outcome: services.OutcomeNotFound}, nil)

	w := s.resolve("nope123")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("URL not found", w.Body.String())
}

func (s *ResolveControllerSuite) TestInactive() {
	s.resolverMock.On("Resolve", mock.Anything, "off1234").Return(&services.Resolution{
		Outcome:  services.OutcomeInactive,
		Snapshot: &cache.Snapshot{ShortCode: "off1234"},
	}, nil)

	w := s.resolve("off1234")
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("URL Inactive", w.Body.String())
}

func (s *ResolveControllerSuite) TestProtectedRedirectsToRequestAccess() {
	s.resolverMock.On("Resolve", mock.Anything, "prot123").Return(&services.Resolution{
		Outcome: services.OutcomeRequiresVerification,
		Snapshot: &cache.Snapshot{
			ShortCode:   "prot123",
			IsProtected: true,
			Active:      true,
		},
	}, nil)

	w := s.resolve("prot123")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("http://test.com:8080/request-access/prot123", w.Header().Get("Location"))
}

func (s *ResolveControllerSuite) TestResolverFailure() {
	s.resolverMock.On("Resolve", mock.Anything, "pub1234").Return(nil, services.ErrUnknown)

	w := s.resolve("pub1234")
	s.Equal(http.StatusInternalServerError, w.Code)
}

func TestResolveControllerSuite(t *testing.T) {
	suite.Run(t, new(ResolveControllerSuite))
}
