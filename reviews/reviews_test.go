package reviews

import (
	"fmt"
	"path/filepath"
	"testing"

	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Restaurant{},
		&models.Order{}, &models.OrderItem{}, &models.Review{},
	))
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string) models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: name, Status: models.RestaurantOpen}
	require.NoError(t, db.Create(&r).Error)
	require.NoError(t, db.First(&r, r.ID).Error)
	return r
}

func seedOrder(t *testing.T, db *gorm.DB, userID, restaurantID uint, status models.OrderStatus) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:         fmt.Sprintf("ORDTEST%06d", userID*1000+restaurantID),
		UserID:          userID,
		RestaurantID:    restaurantID,
		DeliveryName:    "Alex",
		DeliveryPhone:   "13800000000",
		DeliveryAddress: "1 Main St",
		Subtotal:        40,
		TotalAmount:     40,
		Status:          status,
		PaymentStatus:   models.PaymentPaid,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestCreateUpdatesRatingAggregate(t *testing.T) {
	db := setupDB(t)
	r := seedRestaurant(t, db, "Noodle House")

	// The first real review replaces the seeded default entirely
	review, err := Create(db, 1, r.ID, Input{Rating: 4, Content: "fast and hot"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	var after models.Restaurant
	require.NoError(t, db.First(&after, r.ID).Error)
	assert.Equal(t, 4.0, after.Rating)
	assert.Equal(t, 1, after.ReviewCount)

	_, err = Create(db, 2, r.ID, Input{Rating: 2})
	require.NoError(t, err)

	require.NoError(t, db.First(&after, r.ID).Error)
	assert.Equal(t, 3.0, after.Rating)
	assert.Equal(t, 2, after.ReviewCount)
}

func TestCreateErrors(t *testing.T) {
	db := setupDB(t)
	r := seedRestaurant(t, db, "Noodle House")

	_, err := Create(db, 1, r.ID, Input{Rating: 0})
	assert.ErrorIs(t, err, ErrBadRating)
	_, err = Create(db, 1, r.ID, Input{Rating: 6})
	assert.ErrorIs(t, err, ErrBadRating)

	_, err = Create(db, 1, 9999, Input{Rating: 4})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)

	// A failed create must not move the aggregate
	var after models.Restaurant
	require.NoError(t, db.First(&after, r.ID).Error)
	assert.Equal(t, 0, after.ReviewCount)
}

func TestCreateWithOrder(t *testing.T) {
	db := setupDB(t)
	r := seedRestaurant(t, db, "Noodle House")
	other := seedRestaurant(t, db, "Dumpling Bar")

	completed := seedOrder(t, db, 1, r.ID, models.StatusCompleted)
	review, err := Create(db, 1, r.ID, Input{Rating: 5, OrderID: &completed.ID})
	require.NoError(t, err)
	require.NotNil(t, review.OrderID)
	assert.Equal(t, completed.ID, *review.OrderID)

	missing := uint(9999)
	_, err = Create(db, 1, r.ID, Input{Rating: 5, OrderID: &missing})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Someone else's order
	_, err = Create(db, 2, r.ID, Input{Rating: 5, OrderID: &completed.ID})
	assert.ErrorIs(t, err, ErrOrderNotReviewable)

	// Order from a different restaurant
	_, err = Create(db, 1, other.ID, Input{Rating: 5, OrderID: &completed.ID})
	assert.ErrorIs(t, err, ErrOrderNotReviewable)

	// Order not yet completed
	pending := seedOrder(t, db, 2, r.ID, models.StatusPending)
	_, err = Create(db, 2, r.ID, Input{Rating: 5, OrderID: &pending.ID})
	assert.ErrorIs(t, err, ErrOrderNotReviewable)
}

func TestRecent(t *testing.T) {
	db := setupDB(t)
	r := seedRestaurant(t, db, "Noodle House")
	quiet := seedRestaurant(t, db, "Dumpling Bar")

	var lastID uint
	for i := 0; i < 12; i++ {
		review, err := Create(db, uint(i+1), r.ID, Input{Rating: i%5 + 1})
		require.NoError(t, err)
		lastID = review.ID
	}

	list, err := Recent(db, r.ID)
	require.NoError(t, err)
	require.Len(t, list, 10)
	assert.Equal(t, lastID, list[0].ID)

	empty, err := Recent(db, quiet.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
