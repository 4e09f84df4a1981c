package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyplanner/internal/catalog"
	"studyplanner/internal/schedule"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSchedule(c *gin.Context) {
	var body scheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if s.llmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.llmTimeout)
		defer cancel()
	}

	var (
		resp schedule.ScheduleResponse
		err  error
	)
	if body.Courses.isList {
		resp, err = s.flow.RunList(ctx, body.Courses.list, body.AvailableHours.raw)
	} else {
		resp, err = s.flow.Run(ctx, body.Courses.raw, body.AvailableHours.raw)
	}
	if err != nil {
		s.writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeScheduleError maps the two failure kinds onto HTTP. Provider details
// stay in the logs; clients only see the generic message.
func (s *Server) writeScheduleError(c *gin.Context, err error) {
	var ve *schedule.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, errorBody{Error: ve.Error(), Field: ve.Field})
		return
	}
	s.logger.Warnw("schedule generation failed",
		"request_id", c.GetString(requestIDKey),
		"error", errors.Unwrap(err))
	c.JSON(http.StatusServiceUnavailable, errorBody{Error: schedule.GenerationUnavailableMessage})
}

func (s *Server) handleListCourses(c *gin.Context) {
	courses := s.catalog.Filter(catalog.Query{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Level:    c.Query("level"),
	})
	c.JSON(http.StatusOK, gin.H{"courses": courses, "count": len(courses)})
}

func (s *Server) handleGetCourse(c *gin.Context) {
	course, ok := s.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorBody{Error: "course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

func (s *Server) handleFacets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":  s.catalog.Categories(),
		"skillLevels": s.catalog.SkillLevels(),
	})
}
