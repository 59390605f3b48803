package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"herptrack/internal/models"
	"herptrack/internal/service"
)

func TestPetHandlers_CreateAndGet(t *testing.T) {
	created := &models.Pet{ID: "p1", OwnerID: 7, Name: "Ziggy", Species: "bearded_dragon", LifeStage: "adult"}
	pets := &mockPets{created: created, pet: created}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		Pets:          pets,
	}
	r := newTestRouter(s)

	// Create attaches the authenticated owner.
	body := bytes.NewBufferString(`{"name":"Ziggy","species":"bearded_dragon","life_stage":"adult","weight_g":412.5}`)
	w := doRequest(r, http.MethodPost, "/api/v1/pets/", body, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("create status=%d, body=%s", w.Code, w.Body.String())
	}
	if pets.lastCreated.OwnerID != 7 {
		t.Fatalf("owner id not taken from token: %+v", pets.lastCreated)
	}
	if pets.lastCreated.WeightG == nil || *pets.lastCreated.WeightG != 412.5 {
		t.Fatalf("weight not bound: %+v", pets.lastCreated.WeightG)
	}

	// Missing required field → 400.
	body = bytes.NewBufferString(`{"name":"NoSpecies","life_stage":"adult"}`)
	w = doRequest(r, http.MethodPost, "/api/v1/pets/", body, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("create without species status=%d, want 400", w.Code)
	}

	// Malformed birth date → 400.
	body = bytes.NewBufferString(`{"name":"Z","species":"x","life_stage":"adult","birth_date":"29-08-2026"}`)
	w = doRequest(r, http.MethodPost, "/api/v1/pets/", body, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("create with bad birth_date status=%d, want 400", w.Code)
	}

	// Get found → 200.
	w = doRequest(r, http.MethodGet, "/api/v1/pets/p1", nil, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("get status=%d, body=%s", w.Code, w.Body.String())
	}
	var got models.Pet
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal pet: %v", err)
	}
	if got.Name != "Ziggy" {
		t.Fatalf("unexpected pet: %+v", got)
	}

	// Get unknown id → 404.
	pets.pet = nil
	w = doRequest(r, http.MethodGet, "/api/v1/pets/ghost", nil, "valid")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get missing status=%d, want 404", w.Code)
	}
}

func TestPetHandlers_Targets(t *testing.T) {
	pet := &models.Pet{ID: "p1", Species: "leopard_gecko", LifeStage: "juvenile"}
	pets := &mockPets{pet: pet}
	uvi := 1.5
	targets := &mockTargets{
		target: &models.EffectiveTarget{
			SpeciesTarget: models.SpeciesTarget{Species: "leopard_gecko", LifeStage: "adult", UviMax: &uvi},
			PetID:         "p1",
			ResolvedStage: "adult",
		},
	}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		Pets:          pets,
		Targets:       targets,
	}
	r := newTestRouter(s)

	// Species omitted in the payload falls back to the pet's own.
	body := bytes.NewBufferString(`{"life_stage":"juvenile","feed_interval_h_min":24,"feed_interval_h_max":48}`)
	w := doRequest(r, http.MethodPut, "/api/v1/pets/p1/target", body, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("set target status=%d, body=%s", w.Code, w.Body.String())
	}
	if pets.lastTarget.Species != "leopard_gecko" {
		t.Fatalf("species fallback: got %q", pets.lastTarget.Species)
	}
	if pets.lastTarget.FeedIntervalHoursMax == nil || *pets.lastTarget.FeedIntervalHoursMax != 48 {
		t.Fatalf("feed bounds not bound: %+v", pets.lastTarget)
	}

	// Resolve → 200 with the fallback stage recorded.
	w = doRequest(r, http.MethodGet, "/api/v1/pets/p1/target", nil, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("get target status=%d, body=%s", w.Code, w.Body.String())
	}
	var eff models.EffectiveTarget
	if err := json.Unmarshal(w.Body.Bytes(), &eff); err != nil {
		t.Fatalf("unmarshal target: %v", err)
	}
	if eff.ResolvedStage != "adult" || eff.UviMax == nil {
		t.Fatalf("unexpected effective target: %+v", eff)
	}

	// No target configured at all → 204.
	targets.target = nil
	w = doRequest(r, http.MethodGet, "/api/v1/pets/p1/target", nil, "valid")
	if w.Code != http.StatusNoContent {
		t.Fatalf("absent target status=%d, want 204", w.Code)
	}
}

func TestPetHandlers_DeleteError(t *testing.T) {
	pets := &mockPets{deleteErr: errors.New("db down")}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		Pets:          pets,
	}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodDelete, "/api/v1/pets/p1", nil, "valid")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("delete status=%d, want 500", w.Code)
	}
	if pets.deleteCalls != 1 {
		t.Fatalf("delete calls=%d, want 1", pets.deleteCalls)
	}
}
