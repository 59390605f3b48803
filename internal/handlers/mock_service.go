package handlers

import (
	"context"
	"net/http"
	"time"

	"herptrack/internal/models"
	"herptrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTargets struct {
	target *models.EffectiveTarget
	err    error

	lastPetID string
}

func (m *mockTargets) Resolve(ctx context.Context, petID string) (*models.EffectiveTarget, error) {
	m.lastPetID = petID
	return m.target, m.err
}

type mockSchedule struct {
	feeding    *models.FeedingSchedule
	feedingErr error
	calcium    *models.CalciumSchedule
	calciumErr error
	d3         *models.VitaminD3Schedule
	d3Err      error

	lastPetID string
}

func (m *mockSchedule) EvaluateFeeding(ctx context.Context, petID string) (*models.FeedingSchedule, error) {
	m.lastPetID = petID
	return m.feeding, m.feedingErr
}
func (m *mockSchedule) EvaluateCalcium(ctx context.Context, petID string) (*models.CalciumSchedule, error) {
	m.lastPetID = petID
	return m.calcium, m.calciumErr
}
func (m *mockSchedule) EvaluateVitaminD3(ctx context.Context, petID string) (*models.VitaminD3Schedule, error) {
	m.lastPetID = petID
	return m.d3, m.d3Err
}

type mockForecast struct {
	temp    *models.TempRiskResult
	tempErr error
	uvb     *models.UvbRiskResult
	uvbErr  error

	lastPetID   string
	lastSamples []models.HourlySample
}

func (m *mockForecast) EvaluateTempNext24h(ctx context.Context, petID string, samples []models.HourlySample) (*models.TempRiskResult, error) {
	m.lastPetID = petID
	m.lastSamples = samples
	return m.temp, m.tempErr
}
func (m *mockForecast) EvaluateUvbNext24h(ctx context.Context, petID string, samples []models.HourlySample) (*models.UvbRiskResult, error) {
	m.lastPetID = petID
	m.lastSamples = samples
	return m.uvb, m.uvbErr
}

type mockCompliance struct {
	report *models.ComplianceReport
	err    error

	lastPetID string
	lastFrom  time.Time
	lastTo    time.Time
}

func (m *mockCompliance) Report(ctx context.Context, petID string, from, to time.Time) (*models.ComplianceReport, error) {
	m.lastPetID = petID
	m.lastFrom = from
	m.lastTo = to
	return m.report, m.err
}

type mockCareLog struct {
	recordErr  error
	readingErr error
	events     []models.CareEvent
	listErr    error
	latest     *models.CareEvent
	latestErr  error

	lastEvent   models.CareEvent
	lastReading models.EnvReading
	lastTypes   []string
	lastFrom    time.Time
	lastTo      time.Time
}

func (m *mockCareLog) Record(ctx context.Context, e models.CareEvent) (*models.CareEvent, error) {
	m.lastEvent = e
	if m.recordErr != nil {
		return nil, m.recordErr
	}
	return &e, nil
}
func (m *mockCareLog) RecordReading(ctx context.Context, r models.EnvReading) (*models.EnvReading, error) {
	m.lastReading = r
	if m.readingErr != nil {
		return nil, m.readingErr
	}
	return &r, nil
}
func (m *mockCareLog) List(ctx context.Context, petID string, types []string, from, to time.Time) ([]models.CareEvent, error) {
	m.lastTypes = types
	m.lastFrom = from
	m.lastTo = to
	return m.events, m.listErr
}
func (m *mockCareLog) Latest(ctx context.Context, petID, typ string) (*models.CareEvent, error) {
	return m.latest, m.latestErr
}

type mockPets struct {
	created   *models.Pet
	createErr error
	pet       *models.Pet
	getErr    error
	pets      []models.Pet
	listErr   error
	updateErr error
	deleteErr error
	targetErr error

	lastCreated models.Pet
	lastTarget  models.SpeciesTarget
	deleteCalls int
}

func (m *mockPets) Create(ctx context.Context, p models.Pet) (*models.Pet, error) {
	m.lastCreated = p
	return m.created, m.createErr
}
func (m *mockPets) Get(ctx context.Context, id string) (*models.Pet, error) {
	return m.pet, m.getErr
}
func (m *mockPets) ListByOwner(ctx context.Context, ownerID int) ([]models.Pet, error) {
	return m.pets, m.listErr
}
func (m *mockPets) Update(ctx context.Context, p models.Pet) error { return m.updateErr }
func (m *mockPets) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	return m.deleteErr
}
func (m *mockPets) SetTarget(ctx context.Context, t models.SpeciesTarget) error {
	m.lastTarget = t
	return m.targetErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
