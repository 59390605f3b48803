package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"herptrack/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string has no time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2026-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}

// Request DTO for recording a care event.
type eventRequest struct {
	Type       string   `json:"type" binding:"required"` // feed, calcium, vitamin, uvb_on...
	Subtype    string   `json:"subtype,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Note       string   `json:"note,omitempty"`
	OccurredAt string   `json:"occurred_at,omitempty"` // RFC3339; defaults to now
}

// @Summary      Record care event
// @Tags         carelog
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.CareEvent
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/pets/{id}/events [post]
// @Security     BearerAuth
func (h *Handler) recordEvent(c *gin.Context) {
	var input eventRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	event := models.CareEvent{
		PetID:   c.Param("id"),
		Type:    input.Type,
		Subtype: input.Subtype,
		Value:   input.Value,
		Unit:    input.Unit,
		Note:    input.Note,
	}
	if input.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, input.OccurredAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid occurred_at; use RFC3339"})
			return
		}
		event.OccurredAt = t
	}

	created, err := h.services.CareLog.Record(c.Request.Context(), event)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "event_record_failed", err, "pet_id", event.PetID)
		return
	}
	c.JSON(http.StatusOK, created)
}

// @Summary      List care events
// @Description  Filter by window (half-open [from, to); 'to' date-only is treated as end-of-day) and comma-separated types.
// @Tags         carelog
// @Produce      json
// @Param        from   query  string  false  "Start of range"
// @Param        to     query  string  false  "End of range"
// @Param        types  query  string  false  "Comma-separated event types"
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets/{id}/events [get]
// @Security     BearerAuth
func (h *Handler) listEvents(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		if from, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if to, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return
	}

	var types []string
	if qs := strings.TrimSpace(c.Query("types")); qs != "" {
		types = strings.Split(qs, ",")
	}

	events, err := h.services.CareLog.List(ctx, c.Param("id"), types, from, to)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load events", "events_list_failed", err,
			"pet_id", c.Param("id"), "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
}

// Request DTO for recording an environment reading.
type readingRequest struct {
	Zone       string  `json:"zone" binding:"required"`
	TempC      float64 `json:"temp_c" binding:"required"`
	OccurredAt string  `json:"occurred_at,omitempty"` // RFC3339; defaults to now
}

// @Summary      Record environment reading
// @Tags         carelog
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.EnvReading
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/pets/{id}/readings [post]
// @Security     BearerAuth
func (h *Handler) recordReading(c *gin.Context) {
	var input readingRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	reading := models.EnvReading{
		PetID: c.Param("id"),
		Zone:  strings.ToLower(strings.TrimSpace(input.Zone)),
		TempC: input.TempC,
	}
	if input.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, input.OccurredAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid occurred_at; use RFC3339"})
			return
		}
		reading.OccurredAt = t
	}

	created, err := h.services.CareLog.RecordReading(c.Request.Context(), reading)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "reading_record_failed", err, "pet_id", reading.PetID)
		return
	}
	c.JSON(http.StatusOK, created)
}
