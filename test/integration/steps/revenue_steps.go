// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/staymetrics/backend/internal/application/usecase/reservation"
	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	"github.com/staymetrics/backend/internal/domain/entity"
	domainerror "github.com/staymetrics/backend/internal/domain/error"
	"github.com/staymetrics/backend/internal/infra/server/router"
	"github.com/staymetrics/backend/internal/integration/adapters"
	"github.com/staymetrics/backend/internal/integration/entrypoint/controller"
	"github.com/staymetrics/backend/internal/integration/entrypoint/middleware"
	"github.com/staymetrics/backend/internal/integration/persistence"
	"github.com/staymetrics/backend/internal/integration/persistence/model"
	"github.com/staymetrics/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// referenceTableJSON mirrors a production fallback configuration: static
// per-property figures served while the reservation store is down.
const referenceTableJSON = `{
	"prop-001": {"total": "2250.000", "count": 4},
	"prop-002": {"total": "4975.50", "count": 4},
	"prop-003": {"total": "6100.50", "count": 2},
	"prop-004": {"total": "1776.50", "count": 4},
	"prop-005": {"total": "3256.00", "count": 3}
}`

// failableRevenueRepo wraps the real repository so scenarios can switch the
// reservation store off and back on.
type failableRevenueRepo struct {
	inner revenue.RevenueRepository
	mu    sync.Mutex
	down  bool
}

func (f *failableRevenueRepo) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *failableRevenueRepo) storeDown() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.down {
		return nil
	}
	return domainerror.NewRevenueError(
		domainerror.ErrCodeStoreUnavailable,
		"reservation store is unreachable",
		errors.Join(domainerror.ErrStoreUnavailable, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")),
	)
}

func (f *failableRevenueRepo) AggregateAll(ctx context.Context, propertyID, tenantID string) (*revenue.RawAggregateRow, error) {
	if err := f.storeDown(); err != nil {
		return nil, err
	}
	return f.inner.AggregateAll(ctx, propertyID, tenantID)
}

func (f *failableRevenueRepo) AggregateRange(ctx context.Context, propertyID, tenantID string, bucket entity.TimeBucket) (*revenue.RawAggregateRow, error) {
	if err := f.storeDown(); err != nil {
		return nil, err
	}
	return f.inner.AggregateRange(ctx, propertyID, tenantID, bucket)
}

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	serverPort  int
	accessToken string
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	portInit       sync.Once
	testDB         *mock.Db
	testServerPort int
	storeSwitch    = &failableRevenueRepo{}
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("staymetrics", map[string]any{
			"properties":   &model.PropertyModel{},
			"reservations": &model.ReservationModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Data setup steps
	ctx.Given(`^a property "([^"]*)" exists for tenant "([^"]*)" with timezone "([^"]*)"$`, test.aPropertyExists)
	ctx.Given(`^the following reservations exist:$`, test.theFollowingReservationsExist)

	// Tenant context steps
	ctx.Given(`^I am authenticated as tenant "([^"]*)"$`, test.iAmAuthenticatedAsTenant)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Store availability steps
	ctx.Given(`^the reservation store is unavailable$`, test.theReservationStoreIsUnavailable)
	ctx.Given(`^the reservation store is available again$`, test.theReservationStoreIsAvailableAgain)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil

	storeSwitch.setDown(false)

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Create repositories; the revenue repository goes through the
			// failable wrapper so scenarios can simulate an outage.
			storeSwitch.inner = persistence.NewRevenueRepository(testDB.DbConn, 2*time.Second)
			propertyRepo := persistence.NewPropertyRepository(testDB.DbConn, 2*time.Second)
			reservationRepo := persistence.NewReservationRepository(testDB.DbConn, 2*time.Second)

			// Create adapters
			aggregateCache := adapters.NewRevenueCache(mock.NewRedis())
			referenceSource, err := adapters.NewStaticReferenceSource(referenceTableJSON)
			if err != nil {
				panic(err)
			}

			currencies := revenue.Currencies{Default: "USD"}
			fallbackPolicy := revenue.NewFallbackPolicy(referenceSource)

			// Create use cases
			getSummaryUseCase := revenue.NewGetRevenueSummaryUseCase(
				storeSwitch,
				aggregateCache,
				fallbackPolicy,
				currencies,
				5*time.Minute,
				15*time.Second,
			)
			getMonthlyUseCase := revenue.NewGetMonthlyRevenueUseCase(
				storeSwitch,
				propertyRepo,
				fallbackPolicy,
				currencies,
			)
			recordReservationUseCase := reservation.NewRecordReservationUseCase(reservationRepo, aggregateCache)

			// Create controllers
			healthController := controller.NewHealthController(
				func() bool { return testDB != nil && testDB.DbConn != nil },
				func() bool { return true },
			)
			dashboardController := controller.NewDashboardController(getSummaryUseCase, getMonthlyUseCase)
			reservationController := controller.NewReservationController(recordReservationUseCase)

			// Create middleware
			rateLimiter := middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
			tenantMiddleware := middleware.NewTenantMiddleware(testJWTSecret)

			r := router.NewRouter(healthController, dashboardController, reservationController, rateLimiter, tenantMiddleware)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aPropertyExists(propertyID, tenantID, timezone string) error {
	now := time.Now().UTC()
	prop := &model.PropertyModel{
		ID:        propertyID,
		TenantID:  tenantID,
		Name:      "Property " + propertyID,
		Timezone:  timezone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return t.db.DbConn.Create(prop).Error
}

func (t *testContext) theFollowingReservationsExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("reservation table needs a header row and at least one data row")
	}

	header := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[cell.Value] = i
	}

	cell := func(row *messages.PickleTableRow, column string) (string, error) {
		idx, ok := header[column]
		if !ok {
			return "", fmt.Errorf("missing column %q", column)
		}
		return row.Cells[idx].Value, nil
	}

	for _, row := range table.Rows[1:] {
		propertyID, err := cell(row, "property_id")
		if err != nil {
			return err
		}
		tenantID, err := cell(row, "tenant_id")
		if err != nil {
			return err
		}
		amount, err := cell(row, "total_amount")
		if err != nil {
			return err
		}
		checkInRaw, err := cell(row, "check_in")
		if err != nil {
			return err
		}
		status, err := cell(row, "status")
		if err != nil {
			return err
		}

		checkIn, err := time.Parse(time.RFC3339, checkInRaw)
		if err != nil {
			return fmt.Errorf("invalid check_in %q: %w", checkInRaw, err)
		}

		totalAmount, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("invalid total_amount %q: %w", amount, err)
		}

		now := time.Now().UTC()
		m := &model.ReservationModel{
			ID:          uuid.New(),
			PropertyID:  propertyID,
			TenantID:    tenantID,
			GuestName:   "Seeded Guest",
			TotalAmount: totalAmount,
			CheckInDate: checkIn.UTC(),
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := t.db.DbConn.Create(m).Error; err != nil {
			return err
		}
	}

	return nil
}

func (t *testContext) iAmAuthenticatedAsTenant(tenantID string) error {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"tenant_id": tenantID,
		"exp":       jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":       jwt.NewNumericDate(now),
		"nbf":       jwt.NewNumericDate(now),
		"iss":       "staymetrics",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign tenant token: %w", err)
	}
	t.accessToken = signed
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theReservationStoreIsUnavailable() error {
	storeSwitch.setDown(true)
	// Drop any memoized aggregates so the outage is actually observed.
	return mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) theReservationStoreIsAvailableAgain() error {
	storeSwitch.setDown(false)
	return mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(body.Content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)

	result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
	if result.Error != nil {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
