package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cardgame-go/internal/dependencies/mocks"
	"github.com/mcoot/cardgame-go/internal/dependencies/scheduler"
	"github.com/mcoot/cardgame-go/internal/messaging"
	"github.com/mcoot/cardgame-go/internal/model"
	"github.com/mcoot/cardgame-go/internal/services/cards"
	"github.com/mcoot/cardgame-go/internal/services/dispatch"
	"github.com/mcoot/cardgame-go/internal/services/session"
	"github.com/mcoot/cardgame-go/internal/storage/memory"
	"github.com/mcoot/cardgame-go/internal/testutil"
)

type RouterSuite struct {
	suite.Suite
	dispatcher *dispatch.Dispatcher
	handler    http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	svc := cards.New(testutil.NopLogger())
	_, err := svc.LoadFromReader(strings.NewReader(`{
		"name": "test",
		"prompts": [{"text": "Why? %s", "pick": 1}],
		"responses": ["r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9", "r10"]
	}`))
	s.Require().NoError(err)

	s.dispatcher = dispatch.New(session.DefaultConfig(), dispatch.Deps{
		Clock:        mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Random:       mocks.NewMockRandom(),
		Sink:         messaging.NewRecorder(),
		Storage:      memory.New(),
		Cards:        svc,
		Logger:       testutil.NopLogger(),
		NewScheduler: func() scheduler.Scheduler { return mocks.NewMockScheduler() },
	})
	s.handler = NewRouter(RouterConfig{
		Logger:     testutil.NopLogger(),
		Dispatcher: s.dispatcher,
	})
}

func (s *RouterSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) TestHealth() {
	rec := s.get("/api/v1/health")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status": "ok"}`, rec.Body.String())
}

func (s *RouterSuite) TestChannelsEmpty() {
	rec := s.get("/api/v1/channels")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"channels": []}`, rec.Body.String())
}

func (s *RouterSuite) TestChannelsListsSessions() {
	actor := model.Identity{Nick: "alice", User: "alice", Host: "irc.test"}
	s.Require().NoError(s.dispatcher.Dispatch(context.Background(), "games",
		actor, dispatch.Command{Kind: dispatch.CmdStart}))

	rec := s.get("/api/v1/channels")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"channels": ["games"]}`, rec.Body.String())
}

func (s *RouterSuite) TestChannelSnapshot() {
	actor := model.Identity{Nick: "alice", User: "alice", Host: "irc.test"}
	s.Require().NoError(s.dispatcher.Dispatch(context.Background(), "games",
		actor, dispatch.Command{Kind: dispatch.CmdStart}))

	rec := s.get("/api/v1/channels/games")
	s.Require().Equal(http.StatusOK, rec.Code)

	var snap session.Snapshot
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &snap))
	s.Equal("games", snap.Channel)
	s.Equal(session.StateStarted, snap.State)
	s.Require().Len(snap.Players, 1)
	s.Equal("alice", snap.Players[0].Nick)
}

func (s *RouterSuite) TestChannelNotFound() {
	rec := s.get("/api/v1/channels/nowhere")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "no session in channel")
}
