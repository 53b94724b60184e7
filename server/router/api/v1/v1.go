// Package v1 exposes the teaching service over a JSON HTTP API.
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/sahayak-ai/sahayak/internal/profile"
	"github.com/sahayak-ai/sahayak/server/middleware"
	"github.com/sahayak-ai/sahayak/server/service/teacher"
	"github.com/sahayak-ai/sahayak/store"
)

type APIV1Service struct {
	Profile *profile.Profile
	Teacher *teacher.Service
	Store   *store.Store

	limiter *middleware.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, teacherService *teacher.Service, sessions *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile: profile,
		Teacher: teacherService,
		Store:   sessions,
		limiter: middleware.NewRateLimiter(0, 0),
	}
}

// Register mounts all v1 routes on the echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	echoServer.GET("/healthz", s.GetHealth)

	g := echoServer.Group("/api/v1", middleware.RateLimit(s.limiter))

	g.POST("/teacher/ask", s.AskTeacher)
	g.GET("/greeting", s.GetGreeting)
	g.GET("/model", s.GetModelInfo)
	g.GET("/stats", s.GetStats)

	g.POST("/sessions", s.CreateSession)
	g.GET("/sessions", s.ListSessions)
	g.GET("/sessions/:id", s.GetSession)
	g.GET("/sessions/:id/messages", s.GetSessionMessages)
	g.POST("/sessions/:id/clear", s.ClearSession)
	g.DELETE("/sessions/:id", s.EndSession)
}
