//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finsight/backend/config"
	"github.com/finsight/backend/internal/application/adapter"
	syncapp "github.com/finsight/backend/internal/application/sync"
	"github.com/finsight/backend/internal/application/usecase/rule"
	"github.com/finsight/backend/internal/application/usecase/suggestion"
	"github.com/finsight/backend/internal/application/usecase/transaction"
	"github.com/finsight/backend/internal/domain/entity"
	"github.com/finsight/backend/internal/infra/bus"
	"github.com/finsight/backend/internal/infra/server/router"
	"github.com/finsight/backend/internal/integration/adapters"
	"github.com/finsight/backend/internal/integration/entrypoint/controller"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
	"github.com/finsight/backend/internal/integration/persistence"
	"github.com/finsight/backend/internal/integration/persistence/model"
	"github.com/finsight/backend/internal/integration/realtime"
	"github.com/finsight/backend/test/integration/mock"
)

const testJWTSecret = "integration-test-secret-key-0123456789"

// testContext carries the state of a single scenario: the running server,
// the caller's identity, and the last HTTP response.
type testContext struct {
	db          *gorm.DB
	redisClient *redis.Client
	eventBus    *bus.Bus
	manager     *syncapp.Manager
	server      *httptest.Server
	client      *http.Client
	tokens      adapter.TokenService

	txRepo   adapter.TransactionRepository
	ruleRepo adapter.CategoryRuleRepository

	userID      uuid.UUID
	accessToken string

	storedTransactionID string
	storedRuleID        string

	status int
	body   []byte
}

func (tc *testContext) start() error {
	gin.SetMode(gin.TestMode)

	models := []any{&model.TransactionModel{}, &model.CategoryRuleModel{}}
	conn := mock.NewDb(models...)
	if err := mock.ClearDb(conn, models...); err != nil {
		return fmt.Errorf("clear database: %w", err)
	}
	tc.db = conn

	redisServer := mock.NewRedis()
	mock.ClearRedis()
	tc.redisClient = redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	feed := realtime.NewRedisFeed(tc.redisClient)

	tc.eventBus = bus.New()
	tc.txRepo = persistence.NewTransactionRepository(conn)
	tc.ruleRepo = persistence.NewCategoryRuleRepository(conn)
	broadcaster := realtime.NewBroadcaster(tc.eventBus, feed)

	tc.manager = syncapp.NewManager(tc.txRepo, feed, tc.eventBus, syncapp.Config{
		FetchTimeout: 2 * time.Second,
	})

	tc.tokens = adapters.NewTokenService(&config.JWTConfig{
		Secret:            testJWTSecret,
		AccessTokenExpiry: time.Hour,
	})

	suggestUseCase := suggestion.NewSuggestCategoryUseCase(
		suggestion.NewEngine(suggestion.BuiltinRules()),
		tc.ruleRepo,
		nil,
	)

	r := router.NewRouter(
		controller.NewHealthController(nil),
		controller.NewSummaryController(tc.manager),
		controller.NewTransactionController(
			transaction.NewCreateTransactionUseCase(tc.txRepo, broadcaster),
			transaction.NewUpdateTransactionUseCase(tc.txRepo, broadcaster),
			transaction.NewDeleteTransactionUseCase(tc.txRepo, broadcaster),
			transaction.NewListTransactionsUseCase(tc.txRepo),
		),
		controller.NewRuleController(
			rule.NewCreateRuleUseCase(tc.ruleRepo),
			rule.NewListRulesUseCase(tc.ruleRepo),
			rule.NewDeleteRuleUseCase(tc.ruleRepo),
		),
		controller.NewSuggestionController(suggestUseCase),
		nil,
		middleware.NewAuthMiddleware(tc.tokens),
	)

	tc.server = httptest.NewServer(r.Setup("test"))
	tc.client = tc.server.Client()
	return nil
}

func (tc *testContext) stop() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.manager != nil {
		tc.manager.Close()
	}
	if tc.eventBus != nil {
		tc.eventBus.Close()
	}
	if tc.redisClient != nil {
		tc.redisClient.Close()
	}
}

func (tc *testContext) doRequest(method, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body, err = io.ReadAll(resp.Body)
	return err
}

// lookupField resolves a dot-separated path in the last response body.
// Numeric segments index into arrays.
func (tc *testContext) lookupField(path string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.body, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w (body: %s)", err, tc.body)
	}

	current := doc
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response: %s", path, tc.body)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("invalid array index %q in path %q", segment, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into %q at segment %q", path, segment)
		}
	}
	return current, nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (tc *testContext) theAPIServerIsRunning() error {
	if tc.server == nil {
		return fmt.Errorf("server was not started")
	}
	return nil
}

func (tc *testContext) iAmAuthenticated() error {
	tc.userID = uuid.New()
	token, err := tc.tokens.GenerateAccessToken(context.Background(), tc.userID, "user@example.com")
	if err != nil {
		return err
	}
	tc.accessToken = token
	return nil
}

func (tc *testContext) iAmNotAuthenticated() error {
	tc.accessToken = ""
	return nil
}

func (tc *testContext) iSendARequestTo(method, path string) error {
	return tc.doRequest(method, path, nil)
}

func (tc *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return tc.doRequest(method, path, []byte(body.Content))
}

func (tc *testContext) iSendARequestWithMyUserIDAndBody(method, path string, body *godog.DocString) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("step body is not JSON: %w", err)
	}
	payload["user_id"] = tc.userID.String()

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tc.doRequest(method, path, data)
}

func (tc *testContext) iSendARequestToTheStoredTransaction(method string, body *godog.DocString) error {
	if tc.storedTransactionID == "" {
		return fmt.Errorf("no transaction was stored by a previous step")
	}
	return tc.doRequest(method, "/api/v1/transactions/"+tc.storedTransactionID, []byte(body.Content))
}

func (tc *testContext) iSendADeleteRequestToTheStoredRule() error {
	if tc.storedRuleID == "" {
		return fmt.Errorf("no rule was stored by a previous step")
	}
	return tc.doRequest(http.MethodDelete, "/api/v1/category-rules/"+tc.storedRuleID, nil)
}

func (tc *testContext) iHaveATransaction(txType string, amount int, month string) error {
	date := time.Now().UTC()
	if month == "last" {
		date = time.Date(date.Year(), date.Month(), 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}

	payload, err := json.Marshal(map[string]any{
		"date":        date.Format(time.RFC3339),
		"description": fmt.Sprintf("seeded %s of %d", txType, amount),
		"amount":      strconv.Itoa(amount),
		"type":        txType,
	})
	if err != nil {
		return err
	}

	if err := tc.doRequest(http.MethodPost, "/api/v1/transactions", payload); err != nil {
		return err
	}
	if tc.status != http.StatusCreated {
		return fmt.Errorf("seeding transaction failed with status %d: %s", tc.status, tc.body)
	}

	id, err := tc.lookupField("id")
	if err != nil {
		return err
	}
	tc.storedTransactionID = formatValue(id)
	return nil
}

func (tc *testContext) anotherUserHasATransaction(amount int) error {
	other := uuid.New()
	tx := entity.NewTransaction(
		other,
		time.Now().UTC(),
		"someone else's entry",
		"",
		decimal.NewFromInt(int64(amount)),
		entity.TransactionTypeExpense,
		"",
	)
	return tc.txRepo.Create(context.Background(), tx)
}

func (tc *testContext) iHaveACategoryRule(category, keyword string) error {
	payload, err := json.Marshal(map[string]any{
		"category": category,
		"keywords": []string{keyword},
	})
	if err != nil {
		return err
	}

	if err := tc.doRequest(http.MethodPost, "/api/v1/category-rules", payload); err != nil {
		return err
	}
	if tc.status != http.StatusCreated {
		return fmt.Errorf("seeding rule failed with status %d: %s", tc.status, tc.body)
	}

	id, err := tc.lookupField("id")
	if err != nil {
		return err
	}
	tc.storedRuleID = formatValue(id)
	return nil
}

func (tc *testContext) anotherUserHasACategoryRule(category string) error {
	other := uuid.New()
	seeded := entity.NewCategoryRule(other, category, []string{"gift"}, 0.8, 0)
	if err := tc.ruleRepo.Create(context.Background(), seeded); err != nil {
		return err
	}
	tc.storedRuleID = seeded.ID.String()
	return nil
}

func (tc *testContext) iWaitForTheSummaryToReport(count int) error {
	deadline := time.Now().Add(3 * time.Second)
	for {
		if err := tc.doRequest(http.MethodGet, "/api/v1/summary", nil); err != nil {
			return err
		}
		if tc.status == http.StatusOK {
			total, err := tc.lookupField("total_transactions")
			if err == nil && formatValue(total) == strconv.Itoa(count) {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("summary did not report %d transactions in time; last response (%d): %s",
				count, tc.status, tc.body)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (tc *testContext) theResponseStatusShouldBe(expected int) error {
	if tc.status != expected {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expected, tc.status, tc.body)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBe(path, expected string) error {
	value, err := tc.lookupField(path)
	if err != nil {
		return err
	}
	if got := formatValue(value); got != expected {
		return fmt.Errorf("expected field %q to be %q, got %q (body: %s)", path, expected, got, tc.body)
	}
	return nil
}

func (tc *testContext) theResponseShouldIncludeASuggestionFor(category string) error {
	value, err := tc.lookupField("suggestions")
	if err != nil {
		return err
	}
	entries, ok := value.([]any)
	if !ok {
		return fmt.Errorf("suggestions is not an array: %s", tc.body)
	}
	for _, entry := range entries {
		if m, ok := entry.(map[string]any); ok && m["category"] == category {
			return nil
		}
	}
	return fmt.Errorf("no suggestion for %q in response: %s", category, tc.body)
}

func InitializeScenario(sc *godog.ScenarioContext) {
	tc := &testContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, tc.start()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.stop()
		return ctx, nil
	})

	sc.Given(`^the API server is running$`, tc.theAPIServerIsRunning)
	sc.Given(`^I am authenticated$`, tc.iAmAuthenticated)
	sc.Given(`^I am not authenticated$`, tc.iAmNotAuthenticated)
	sc.Given(`^I have an? "([^"]*)" transaction of (\d+) dated (this|last) month$`, tc.iHaveATransaction)
	sc.Given(`^another user has a transaction of (\d+)$`, tc.anotherUserHasATransaction)
	sc.Given(`^I have a category rule for "([^"]*)" matching keyword "([^"]*)"$`, tc.iHaveACategoryRule)
	sc.Given(`^another user has a category rule for "([^"]*)"$`, tc.anotherUserHasACategoryRule)

	sc.When(`^I send a "([^"]*)" request to "([^"]*)"$`, tc.iSendARequestTo)
	sc.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	sc.When(`^I send a "([^"]*)" request to "([^"]*)" with my user id and body:$`, tc.iSendARequestWithMyUserIDAndBody)
	sc.When(`^I send a "([^"]*)" request to the stored transaction with body:$`, tc.iSendARequestToTheStoredTransaction)
	sc.When(`^I send a "DELETE" request to the stored rule$`, tc.iSendADeleteRequestToTheStoredRule)
	sc.When(`^I wait for the summary to report (\d+) transactions$`, tc.iWaitForTheSummaryToReport)

	sc.Then(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	sc.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	sc.Then(`^the response should include a suggestion for "([^"]*)"$`, tc.theResponseShouldIncludeASuggestionFor)
}
