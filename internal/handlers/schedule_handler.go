package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fitpulse/gym-api/internal/httpresp"
	ucschedule "github.com/fitpulse/gym-api/internal/usecase/schedule"
)

type ScheduleHandler struct {
	projector *ucschedule.Projector
}

func NewScheduleHandler(projector *ucschedule.Projector) *ScheduleHandler {
	return &ScheduleHandler{projector: projector}
}

// Get is the public weekly schedule: day-grouped classes with live seat
// counts, Monday first.
func (h *ScheduleHandler) Get(c *gin.Context) {
	days, err := h.projector.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, days)
}
