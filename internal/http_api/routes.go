package http_api

// routes sets up the routes for the HTTP server.
func (s *HTTPServer) routes() {
	// Kept at the root for compatibility with existing clients.
	s.router.POST("/motivate", s.motivate)
	s.router.POST("/upload", s.upload)
	s.router.GET("/retrieve/:hash", s.retrieve)
	s.router.GET("/download/:hash", s.download)
	s.router.GET("/health", s.health)

	api := s.router.Group("/api/v1")
	api.POST("/session/connect", s.connect)
	api.POST("/session/disconnect", s.disconnect)
	api.GET("/session/status", s.status)
	api.POST("/register", s.register)
	api.POST("/habits", s.createHabit)
	api.GET("/habits", s.listHabits)
	api.POST("/habits/:id/track", s.trackHabit)
	api.POST("/delivery", s.linkDelivery)
}
