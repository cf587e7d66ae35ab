package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"workbench/internal/platform/localstore"
	"workbench/internal/platform/metrics"
	"workbench/internal/registry"
	"workbench/internal/session"
	"workbench/internal/session/handler"
	audit "workbench/pkg/platform/audit"
	"workbench/pkg/testutil"
)

type SessionHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerSuite))
}

func (s *SessionHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	local, err := localstore.New(s.T().TempDir())
	s.Require().NoError(err)

	tokens := session.NewTokenService("test-signing-key", time.Hour)
	svc := session.NewService(
		registry.NewUsers(registry.SeedUsers()),
		session.NewInMemorySessionStore(),
		tokens,
		local,
		audit.NewPublisher(16, logger),
		metrics.NewWith(prometheus.NewRegistry()),
		logger,
		time.Hour,
	)

	h := handler.New(svc, logger, metrics.NewWith(prometheus.NewRegistry()), tokens)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

type switchResponse struct {
	Token   string          `json:"token"`
	Session session.Session `json:"session"`
	User    registry.User   `json:"user"`
}

// TestSwitch verifies the login-as flow returns a token plus the minted
// session for a known roster member.
func (s *SessionHandlerSuite) TestSwitch() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/session/switch", map[string]string{"userId": "trc-admin-001"})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)

	resp := testutil.UnmarshalResponse[switchResponse](s.T(), rr)
	s.NotEmpty(resp.Token)
	s.Equal("trc-admin-001", resp.Session.UserID.String())
	s.Equal("David Kim", resp.User.Name)
	s.Contains(resp.Session.Capabilities, session.CapabilityManageEvents)
}

// TestSwitchUnknownUser verifies an unknown roster id maps to 404.
func (s *SessionHandlerSuite) TestSwitchUnknownUser() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/session/switch", map[string]string{"userId": "ghost"})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
}

// TestSwitchMissingUserID verifies an empty body is rejected.
func (s *SessionHandlerSuite) TestSwitchMissingUserID() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/session/switch", map[string]string{})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}

// TestCurrentRequiresAuth verifies the introspection endpoint sits behind the
// bearer-token guard while switch does not.
func (s *SessionHandlerSuite) TestCurrentRequiresAuth() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/session/current"))
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}

// TestCurrentAfterSwitch verifies a freshly issued token resolves the minted
// session end to end.
func (s *SessionHandlerSuite) TestCurrentAfterSwitch() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/session/switch", map[string]string{"userId": "cfs-003"})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	switched := testutil.UnmarshalResponse[switchResponse](s.T(), rr)

	cur := testutil.NewRequest(s.T(), http.MethodGet, "/session/current")
	cur.Header.Set("Authorization", "Bearer "+switched.Token)
	rr = testutil.DoRequest(s.router, cur)
	testutil.AssertStatusOK(s.T(), rr)

	type currentResponse struct {
		Session session.Session `json:"session"`
		User    registry.User   `json:"user"`
	}
	resp := testutil.UnmarshalResponse[currentResponse](s.T(), rr)
	s.Equal("cfs-003", resp.Session.UserID.String())
	s.Equal("Christopher White", resp.User.Name)
}
