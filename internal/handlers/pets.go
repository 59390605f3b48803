package handlers

import (
	"net/http"
	"time"

	"herptrack/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errCreatePet = "failed to create pet"
	errLoadPet   = "failed to load pet"
	errPetGone   = "pet not found"
)

// logAndJSONError centralizes error logging plus the JSON error response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for creating/updating a pet.
type petRequest struct {
	Name      string   `json:"name" binding:"required"`
	Species   string   `json:"species" binding:"required"`
	LifeStage string   `json:"life_stage" binding:"required"` // juvenile | adult
	Sex       string   `json:"sex,omitempty"`
	BirthDate string   `json:"birth_date,omitempty"` // YYYY-MM-DD
	WeightG   *float64 `json:"weight_g,omitempty"`
	Note      string   `json:"note,omitempty"`
}

func (r petRequest) toModel(ownerID int) (models.Pet, error) {
	p := models.Pet{
		OwnerID:   ownerID,
		Name:      r.Name,
		Species:   r.Species,
		LifeStage: r.LifeStage,
		Sex:       r.Sex,
		WeightG:   r.WeightG,
		Note:      r.Note,
	}
	if r.BirthDate != "" {
		t, err := time.Parse("2006-01-02", r.BirthDate)
		if err != nil {
			return models.Pet{}, err
		}
		p.BirthDate = &t
	}
	return p, nil
}

// @Summary      Create pet
// @Tags         pets
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Pet
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets [post]
// @Security     BearerAuth
func (h *Handler) createPet(c *gin.Context) {
	var input petRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	pet, err := input.toModel(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date; use YYYY-MM-DD"})
		return
	}

	created, err := h.services.Pets.Create(c.Request.Context(), pet)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "pet_create_failed", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// @Summary      List own pets
// @Tags         pets
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, pets"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets [get]
// @Security     BearerAuth
func (h *Handler) listPets(c *gin.Context) {
	pets, err := h.services.Pets.ListByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list pets", "pet_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(pets), "pets": pets})
}

// @Summary      Get pet
// @Tags         pets
// @Produce      json
// @Success      200  {object}  models.Pet
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/pets/{id} [get]
// @Security     BearerAuth
func (h *Handler) getPet(c *gin.Context) {
	pet, err := h.services.Pets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadPet, "pet_get_failed", err, "pet_id", c.Param("id"))
		return
	}
	if pet == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errPetGone})
		return
	}
	c.JSON(http.StatusOK, pet)
}

// @Summary      Update pet
// @Tags         pets
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/pets/{id} [put]
// @Security     BearerAuth
func (h *Handler) updatePet(c *gin.Context) {
	var input petRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	pet, err := input.toModel(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date; use YYYY-MM-DD"})
		return
	}
	pet.ID = c.Param("id")

	if err := h.services.Pets.Update(c.Request.Context(), pet); err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "pet_update_failed", err, "pet_id", pet.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// @Summary      Delete pet
// @Tags         pets
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePet(c *gin.Context) {
	if err := h.services.Pets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to delete pet", "pet_delete_failed", err, "pet_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Set species target
// @Description  Upserts the threshold row for the pet's species; the life stage comes from the payload.
// @Tags         targets
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/pets/{id}/target [put]
// @Security     BearerAuth
func (h *Handler) setTarget(c *gin.Context) {
	var input models.SpeciesTarget
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if input.Species == "" {
		pet, err := h.services.Pets.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			h.logAndJSONError(c, http.StatusInternalServerError, errLoadPet, "target_set_failed", err)
			return
		}
		if pet == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": errPetGone})
			return
		}
		input.Species = pet.Species
		if input.LifeStage == "" {
			input.LifeStage = pet.LifeStage
		}
	}

	if err := h.services.Pets.SetTarget(c.Request.Context(), input); err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "target_set_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "target_set"})
}

// @Summary      Get effective target
// @Description  Resolves the pet's target with life-stage fallback. 204 when none is configured.
// @Tags         targets
// @Produce      json
// @Success      200  {object}  models.EffectiveTarget
// @Success      204  "no target configured"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pets/{id}/target [get]
// @Security     BearerAuth
func (h *Handler) getTarget(c *gin.Context) {
	target, err := h.services.Targets.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to resolve target", "target_resolve_failed", err, "pet_id", c.Param("id"))
		return
	}
	if target == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, target)
}
