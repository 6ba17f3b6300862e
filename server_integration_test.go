package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(b)
}

func setupTestServer(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	setupTestDB(t)
	r := gin.New()
	setupRoutes(r)

	// register + login to obtain a token
	creds := map[string]string{"username": "user1", "password": "pass123"}
	resp := performRequest(r, http.MethodPost, "/register", jsonBody(t, creds), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/login", jsonBody(t, creds), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}
	return r, token
}

func createNamed(t *testing.T, r http.Handler, token, path, name string, extra map[string]any) uint {
	t.Helper()
	body := map[string]any{"name": name}
	for k, v := range extra {
		body[k] = v
	}
	resp := performRequest(r, http.MethodPost, path, jsonBody(t, body), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("POST %s failed status=%d body=%s", path, resp.Code, resp.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &created)
	if created.ID == 0 {
		t.Fatalf("no id in response for %s: %s", path, resp.Body.String())
	}
	return created.ID
}

func TestLedgerEndToEnd(t *testing.T) {
	r, token := setupTestServer(t)

	// build the catalog through the API
	statusID := createNamed(t, r, token, "/api/statuses", "Бизнес", nil)
	expenseID := createNamed(t, r, token, "/api/operation-types", "Списание", nil)
	otherTypeID := createNamed(t, r, token, "/api/operation-types", "Пополнение", nil)
	foodID := createNamed(t, r, token, "/api/categories", "Еда",
		map[string]any{"operation_type_id": expenseID})
	diningID := createNamed(t, r, token, "/api/subcategories", "Рестораны",
		map[string]any{"category_id": foodID})

	// cascading lookups
	resp := performRequest(r, http.MethodGet, fmt.Sprintf("/api/operation-types/%d/categories", expenseID), nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("cascading categories failed: %d %s", resp.Code, resp.Body.String())
	}
	var cats []map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &cats)
	if len(cats) != 1 || cats[0]["name"] != "Еда" {
		t.Fatalf("unexpected cascading categories: %s", resp.Body.String())
	}

	// a consistent transaction is accepted
	txBody := map[string]any{
		"date":              "2024-01-15",
		"status_id":         statusID,
		"operation_type_id": expenseID,
		"category_id":       foodID,
		"subcategory_id":    diningID,
		"amount":            "1500.00",
		"comment":           "обед",
	}
	resp = performRequest(r, http.MethodPost, "/api/transactions", jsonBody(t, txBody), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", resp.Code, resp.Body.String())
	}

	// same category under an unrelated operation type is rejected
	txBody["operation_type_id"] = otherTypeID
	resp = performRequest(r, http.MethodPost, "/api/transactions", jsonBody(t, txBody), token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched category, got %d %s", resp.Code, resp.Body.String())
	}
	var errResp map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &errResp)
	if errResp["error"] == "" {
		t.Fatalf("expected mismatch description, got %s", resp.Body.String())
	}

	// listing with an explicit range returns the stored transaction with
	// its references embedded
	resp = performRequest(r, http.MethodGet, "/api/transactions?date_from=2024-01-01&date_to=2024-01-31", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", resp.Code, resp.Body.String())
	}
	var listResp struct {
		Transactions []struct {
			Category struct {
				Name string `json:"name"`
			} `json:"category"`
		} `json:"transactions"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &listResp)
	if len(listResp.Transactions) != 1 || listResp.Transactions[0].Category.Name != "Еда" {
		t.Fatalf("unexpected list payload: %s", resp.Body.String())
	}
}

func TestListFallsBackOnMalformedDates(t *testing.T) {
	r, token := setupTestServer(t)

	resp := performRequest(r, http.MethodGet, "/api/transactions?date_from=not-a-date&date_to=2024-01-31", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("malformed filter dates must not error: %d %s", resp.Code, resp.Body.String())
	}
	var listResp struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &listResp)
	defFrom, defTo := defaultDateRange(nowUTC())
	if listResp.DateFrom != defFrom.Format(dateLayout) || listResp.DateTo != defTo.Format(dateLayout) {
		t.Fatalf("expected default range %s..%s, got %s..%s",
			defFrom.Format(dateLayout), defTo.Format(dateLayout), listResp.DateFrom, listResp.DateTo)
	}

	// an empty-but-present bound (submitted by the filter form) resets both
	resp = performRequest(r, http.MethodGet, "/api/transactions?date_from=&date_to=2024-01-31", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("empty filter dates must not error: %d %s", resp.Code, resp.Body.String())
	}
	listResp.DateFrom, listResp.DateTo = "", ""
	_ = json.Unmarshal(resp.Body.Bytes(), &listResp)
	if listResp.DateFrom != defFrom.Format(dateLayout) || listResp.DateTo != defTo.Format(dateLayout) {
		t.Fatalf("expected default range for empty bounds, got %s..%s", listResp.DateFrom, listResp.DateTo)
	}
}

func TestZeroAmountTransactionOverAPI(t *testing.T) {
	r, token := setupTestServer(t)

	statusID := createNamed(t, r, token, "/api/statuses", "Личное", nil)
	typeID := createNamed(t, r, token, "/api/operation-types", "Списание", nil)
	catID := createNamed(t, r, token, "/api/categories", "Еда",
		map[string]any{"operation_type_id": typeID})

	// 0.00 is a legitimate amount (e.g. a voided operation)
	body := map[string]any{
		"date": "2024-01-15", "status_id": statusID,
		"operation_type_id": typeID, "category_id": catID, "amount": "0.00",
	}
	resp := performRequest(r, http.MethodPost, "/api/transactions", jsonBody(t, body), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("zero amount must be accepted, got %d %s", resp.Code, resp.Body.String())
	}

	// a missing amount is still a binding error
	delete(body, "amount")
	resp = performRequest(r, http.MethodPost, "/api/transactions", jsonBody(t, body), token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing amount must be rejected, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestProtectedDeleteOverAPI(t *testing.T) {
	r, token := setupTestServer(t)

	statusID := createNamed(t, r, token, "/api/statuses", "Налог", nil)
	typeID := createNamed(t, r, token, "/api/operation-types", "Списание", nil)
	catID := createNamed(t, r, token, "/api/categories", "Зарплата",
		map[string]any{"operation_type_id": typeID})

	txBody := map[string]any{
		"date": "2024-03-01", "status_id": statusID,
		"operation_type_id": typeID, "category_id": catID, "amount": "99.90",
	}
	resp := performRequest(r, http.MethodPost, "/api/transactions", jsonBody(t, txBody), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/statuses/%d", statusID), nil, token)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for referenced status, got %d", resp.Code)
	}
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/operation-types/%d", typeID), nil, token)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for referenced operation type, got %d", resp.Code)
	}
	// categories cascade instead of protecting
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", catID), nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected category cascade delete to succeed, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestDuplicateCategoryOverAPI(t *testing.T) {
	r, token := setupTestServer(t)

	typeID := createNamed(t, r, token, "/api/operation-types", "Списание", nil)
	createNamed(t, r, token, "/api/categories", "Еда", map[string]any{"operation_type_id": typeID})

	resp := performRequest(r, http.MethodPost, "/api/categories",
		jsonBody(t, map[string]any{"name": "Еда", "operation_type_id": typeID}), token)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate category, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestAPIRequiresAuth(t *testing.T) {
	r, _ := setupTestServer(t)

	resp := performRequest(r, http.MethodGet, "/api/transactions", nil, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
	resp = performRequest(r, http.MethodGet, "/api/reference", nil, "bogus.token.value")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", resp.Code)
	}
}

func TestReferenceIndexOverAPI(t *testing.T) {
	r, token := setupTestServer(t)
	seedDB()

	resp := performRequest(r, http.MethodGet, "/api/reference", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("reference index failed: %d %s", resp.Code, resp.Body.String())
	}
	var idx struct {
		Statuses       []map[string]any `json:"statuses"`
		OperationTypes []map[string]any `json:"operation_types"`
		Categories     []map[string]any `json:"categories"`
		SubCategories  []map[string]any `json:"subcategories"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &idx)
	if len(idx.Statuses) != 3 || len(idx.OperationTypes) != 2 ||
		len(idx.Categories) != 4 || len(idx.SubCategories) != 5 {
		t.Fatalf("unexpected reference index: %s", resp.Body.String())
	}
}
