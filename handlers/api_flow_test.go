package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"food-ordering-api/config"
	"food-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "api.db"))
	config.InitDB()
	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	parsed := map[string]interface{}{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "image/png" {
		_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
	}
	return rec, parsed
}

func TestOrderingFlow(t *testing.T) {
	r := setupServer(t)

	// Register a customer
	rec, body := doJSON(t, r, "POST", "/api/auth/register", "", gin.H{
		"username": "alex",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	userToken := body["token"].(string)

	// The seeded admin logs in
	rec, body = doJSON(t, r, "POST", "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	adminToken := body["token"].(string)

	// Admin builds the catalog: two restaurants, three dishes
	rec, body = doJSON(t, r, "POST", "/api/admin/restaurants", adminToken, gin.H{
		"name": "Noodle House", "delivery_fee": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	r1 := body["restaurant"].(map[string]interface{})["id"].(float64)

	rec, body = doJSON(t, r, "POST", "/api/admin/restaurants", adminToken, gin.H{
		"name": "Dumpling Bar", "delivery_fee": 8,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	r2 := body["restaurant"].(map[string]interface{})["id"].(float64)

	dishIDs := map[string]float64{}
	for _, d := range []gin.H{
		{"restaurant_id": r1, "name": "Dish A", "price": 20},
		{"restaurant_id": r1, "name": "Dish B", "price": 15},
		{"restaurant_id": r2, "name": "Dish C", "price": 10},
	} {
		rec, body = doJSON(t, r, "POST", "/api/admin/dishes", adminToken, d)
		require.Equal(t, http.StatusCreated, rec.Code)
		dishIDs[d["name"].(string)] = body["dish"].(map[string]interface{})["id"].(float64)
	}

	// Customer saves a delivery address
	rec, body = doJSON(t, r, "POST", "/api/addresses", userToken, gin.H{
		"name": "Alex", "phone": "13800000000", "address": "1 Main St", "is_default": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	addressID := body["address"].(map[string]interface{})["id"].(float64)

	// Fill the cart from both restaurants
	for name, qty := range map[string]int{"Dish A": 2, "Dish B": 1, "Dish C": 3} {
		rec, _ = doJSON(t, r, "POST", "/api/cart/add", userToken, gin.H{
			"dish_id": dishIDs[name], "quantity": qty,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body = doJSON(t, r, "GET", "/api/cart", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cartVM := body["cart"].(map[string]interface{})
	assert.Equal(t, 98.0, cartVM["grand_total"])

	// Checkout: two restaurants in the cart produce two orders
	rec, body = doJSON(t, r, "POST", "/api/cart/checkout", userToken, gin.H{
		"address_id": addressID, "remark": "ring the bell",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2.0, body["order_count"])

	// Cart is empty now, so a double submit fails cleanly
	rec, _ = doJSON(t, r, "POST", "/api/cart/checkout", userToken, gin.H{
		"address_id": addressID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Customer sees both orders
	rec, body = doJSON(t, r, "GET", "/api/orders", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orderList := body["orders"].([]interface{})
	require.Len(t, orderList, 2)
	firstOrder := orderList[0].(map[string]interface{})
	orderID := firstOrder["id"].(float64)

	// QR code for pickup
	rec, _ = doJSON(t, r, "GET", fmt.Sprintf("/api/orders/%.0f/qrcode", orderID), userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	// Admin confirms, then the customer can no longer cancel
	rec, _ = doJSON(t, r, "PUT", fmt.Sprintf("/api/admin/orders/%.0f/status", orderID), adminToken, gin.H{
		"status": "confirmed",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, r, "PUT", fmt.Sprintf("/api/orders/%.0f/cancel", orderID), userToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Backward transition is rejected
	rec, _ = doJSON(t, r, "PUT", fmt.Sprintf("/api/admin/orders/%.0f/status", orderID), adminToken, gin.H{
		"status": "pending",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Payment moves forward only
	rec, _ = doJSON(t, r, "PUT", fmt.Sprintf("/api/admin/orders/%.0f/payment", orderID), adminToken, gin.H{
		"payment_status": "paid",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// The second order is still pending and can be cancelled by its owner
	secondOrder := orderList[1].(map[string]interface{})
	rec, _ = doJSON(t, r, "PUT", fmt.Sprintf("/api/orders/%.0f/cancel", secondOrder["id"].(float64)), userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Admin drives the first order to completion, then the customer
	// reviews the restaurant against it
	for _, status := range []string{"preparing", "delivering", "completed"} {
		rec, _ = doJSON(t, r, "PUT", fmt.Sprintf("/api/admin/orders/%.0f/status", orderID), adminToken, gin.H{
			"status": status,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	restaurantID := firstOrder["restaurant_id"].(float64)
	rec, _ = doJSON(t, r, "POST", fmt.Sprintf("/api/restaurants/%.0f/reviews", restaurantID), userToken, gin.H{
		"rating": 4, "content": "fast and hot", "order_id": orderID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body = doJSON(t, r, "GET", fmt.Sprintf("/api/restaurants/%.0f/reviews", restaurantID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4.0, body["rating"])
	assert.Equal(t, 1.0, body["review_count"])
	require.Len(t, body["reviews"].([]interface{}), 1)

	// Dish ratings are editorial: set by the admin, not derived
	rec, body = doJSON(t, r, "PUT", fmt.Sprintf("/api/admin/dishes/%.0f", dishIDs["Dish A"]), adminToken, gin.H{
		"rating": 4.5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4.5, body["dish"].(map[string]interface{})["rating"])
}

func TestAuthAndOwnership(t *testing.T) {
	r := setupServer(t)

	// No token
	rec, _ := doJSON(t, r, "GET", "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Register two users
	_, body := doJSON(t, r, "POST", "/api/auth/register", "", gin.H{
		"username": "alex", "password": "secret123",
	})
	alexToken := body["token"].(string)
	_, body = doJSON(t, r, "POST", "/api/auth/register", "", gin.H{
		"username": "bella", "password": "secret123",
	})
	bellaToken := body["token"].(string)

	// Plain users cannot reach admin routes
	rec, _ = doJSON(t, r, "GET", "/api/admin/orders", alexToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Alex's address is invisible to Bella
	_, body = doJSON(t, r, "POST", "/api/addresses", alexToken, gin.H{
		"name": "Alex", "phone": "13800000000", "address": "1 Main St",
	})
	addressID := body["address"].(map[string]interface{})["id"].(float64)

	rec, _ = doJSON(t, r, "DELETE", fmt.Sprintf("/api/addresses/%.0f", addressID), bellaToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderListsSurfaceStorageErrors(t *testing.T) {
	r := setupServer(t)

	_, body := doJSON(t, r, "POST", "/api/auth/register", "", gin.H{
		"username": "alex", "password": "secret123",
	})
	userToken := body["token"].(string)
	_, body = doJSON(t, r, "POST", "/api/auth/login", "", gin.H{
		"username": "admin", "password": "admin123",
	})
	adminToken := body["token"].(string)

	// A broken connection must render as a 500, not an empty list
	sqlDB, err := config.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec, _ := doJSON(t, r, "GET", "/api/orders", userToken, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec, _ = doJSON(t, r, "GET", "/api/admin/orders", adminToken, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
