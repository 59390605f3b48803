package handlers

import (
	"net/http"
	"time"

	"herptrack/internal/models"

	"github.com/gin-gonic/gin"
)

// Absent evaluator results (no target configured) map to 204: the UI
// suppresses the card entirely rather than rendering a false "all good".

// @Summary      Feeding risk
// @Tags         risk
// @Produce      json
// @Success      200  {object}  models.FeedingSchedule
// @Success      204  "no feeding interval configured"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets/{id}/risk/feeding [get]
// @Security     BearerAuth
func (h *Handler) feedingRisk(c *gin.Context) {
	res, err := h.services.Schedule.EvaluateFeeding(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to evaluate feeding risk", "feeding_risk_failed", err, "pet_id", c.Param("id"))
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Calcium risk
// @Tags         risk
// @Produce      json
// @Success      200  {object}  models.CalciumSchedule
// @Success      204  "no calcium cadence configured"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets/{id}/risk/calcium [get]
// @Security     BearerAuth
func (h *Handler) calciumRisk(c *gin.Context) {
	res, err := h.services.Schedule.EvaluateCalcium(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to evaluate calcium risk", "calcium_risk_failed", err, "pet_id", c.Param("id"))
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Vitamin D3 risk
// @Tags         risk
// @Produce      json
// @Success      200  {object}  models.VitaminD3Schedule
// @Success      204  "no D3 interval configured"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets/{id}/risk/vitamin-d3 [get]
// @Security     BearerAuth
func (h *Handler) vitaminD3Risk(c *gin.Context) {
	res, err := h.services.Schedule.EvaluateVitaminD3(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to evaluate vitamin D3 risk", "d3_risk_failed", err, "pet_id", c.Param("id"))
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Request DTO carrying the hourly forecast series. The weather subsystem
// (the mobile client) posts the series; the server only classifies it.
type forecastRequest struct {
	Samples []models.HourlySample `json:"samples" binding:"required"`
}

// @Summary      Next-24h ambient temperature risk
// @Tags         risk
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.TempRiskResult
// @Success      204  "no ambient temperature band configured"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets/{id}/risk/temperature [post]
// @Security     BearerAuth
func (h *Handler) temperatureRisk(c *gin.Context) {
	var input forecastRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.Forecast.EvaluateTempNext24h(c.Request.Context(), c.Param("id"), input.Samples)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to evaluate temperature risk", "temp_risk_failed", err, "pet_id", c.Param("id"))
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Next-24h UVB risk
// @Tags         risk
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.UvbRiskResult
// @Success      204  "no UVI band configured"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets/{id}/risk/uvb [post]
// @Security     BearerAuth
func (h *Handler) uvbRisk(c *gin.Context) {
	var input forecastRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.Forecast.EvaluateUvbNext24h(c.Request.Context(), c.Param("id"), input.Samples)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to evaluate UVB risk", "uvb_risk_failed", err, "pet_id", c.Param("id"))
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Weekly compliance report
// @Description  Defaults to the trailing 7 days when no window is given.
// @Tags         compliance
// @Produce      json
// @Param        from  query  string  false  "Window start"
// @Param        to    query  string  false  "Window end (exclusive)"
// @Success      200  {object}  models.ComplianceReport
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets/{id}/compliance [get]
// @Security     BearerAuth
func (h *Handler) complianceReport(c *gin.Context) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -7)
	var err error

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
	}

	report, err := h.services.Compliance.Report(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to build compliance report", "compliance_failed", err,
			"pet_id", c.Param("id"), "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, report)
}
