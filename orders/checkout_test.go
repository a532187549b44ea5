package orders

import (
	"path/filepath"
	"strings"
	"testing"

	"food-ordering-api/cart"
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
		&models.Restaurant{}, &models.Category{}, &models.Dish{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string, fee float64) models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: name, DeliveryFee: fee, Status: models.RestaurantOpen}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func seedDish(t *testing.T, db *gorm.DB, restaurantID uint, name string, price float64) models.Dish {
	t.Helper()
	d := models.Dish{RestaurantID: restaurantID, Name: name, Price: price, Available: true}
	require.NoError(t, db.Create(&d).Error)
	return d
}

var testAddr = AddressSnapshot{Name: "Alex", Phone: "13800000000", Address: "1 Main St"}

func assertOrderInvariants(t *testing.T, db *gorm.DB, orderID uint) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, orderID).Error)

	var itemsSum float64
	for _, item := range order.Items {
		assert.Equal(t, item.Price*float64(item.Quantity), item.Subtotal)
		itemsSum += item.Subtotal
	}
	assert.Equal(t, itemsSum, order.Subtotal)
	assert.Equal(t, order.Subtotal+order.DeliveryFee, order.TotalAmount)
	return order
}

func TestCheckoutSingleRestaurant(t *testing.T) {
	db := setupDB(t)
	r1 := seedRestaurant(t, db, "Noodle House", 5)
	dishA := seedDish(t, db, r1.ID, "Dish A", 20)
	dishB := seedDish(t, db, r1.ID, "Dish B", 15)

	_, err := cart.Add(db, 1, dishA.ID, 2)
	require.NoError(t, err)
	_, err = cart.Add(db, 1, dishB.ID, 1)
	require.NoError(t, err)

	created, err := Checkout(db, 1, testAddr, "less spicy please")
	require.NoError(t, err)
	require.Len(t, created, 1)

	order := assertOrderInvariants(t, db, created[0].ID)
	assert.Equal(t, 55.0, order.Subtotal)
	assert.Equal(t, 60.0, order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentUnpaid, order.PaymentStatus)
	assert.Equal(t, "Alex", order.DeliveryName)
	assert.Equal(t, "1 Main St", order.DeliveryAddress)
	assert.Equal(t, "less spicy please", order.Remark)
	assert.Nil(t, order.ConfirmedAt)
	assert.Nil(t, order.DeliveredAt)

	// Cart is empty after a successful checkout
	count, err := cart.Count(db, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutSplitsByRestaurant(t *testing.T) {
	db := setupDB(t)
	r1 := seedRestaurant(t, db, "Noodle House", 5)
	r2 := seedRestaurant(t, db, "Dumpling Bar", 8)
	dishA := seedDish(t, db, r1.ID, "Dish A", 20)
	dishC := seedDish(t, db, r2.ID, "Dish C", 10)

	_, err := cart.Add(db, 1, dishA.ID, 1)
	require.NoError(t, err)
	_, err = cart.Add(db, 1, dishC.ID, 3)
	require.NoError(t, err)

	created, err := Checkout(db, 1, testAddr, "")
	require.NoError(t, err)
	require.Len(t, created, 2)

	byRestaurant := map[uint]models.Order{}
	for _, o := range created {
		byRestaurant[o.RestaurantID] = assertOrderInvariants(t, db, o.ID)
	}

	first := byRestaurant[r1.ID]
	require.Len(t, first.Items, 1)
	assert.Equal(t, dishA.ID, first.Items[0].DishID)
	assert.Equal(t, 20.0, first.Subtotal)
	assert.Equal(t, 25.0, first.TotalAmount)

	second := byRestaurant[r2.ID]
	require.Len(t, second.Items, 1)
	assert.Equal(t, dishC.ID, second.Items[0].DishID)
	assert.Equal(t, 30.0, second.Subtotal)
	assert.Equal(t, 38.0, second.TotalAmount)

	// Order numbers are distinct
	assert.NotEqual(t, created[0].OrderNo, created[1].OrderNo)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupDB(t)
	_, err := Checkout(db, 1, testAddr, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutFreezesPrices(t *testing.T) {
	db := setupDB(t)
	r1 := seedRestaurant(t, db, "Noodle House", 5)
	dish := seedDish(t, db, r1.ID, "Dish A", 20)

	_, err := cart.Add(db, 1, dish.ID, 2)
	require.NoError(t, err)
	created, err := Checkout(db, 1, testAddr, "")
	require.NoError(t, err)

	// A later catalog price change must not touch the order
	require.NoError(t, db.Model(&models.Dish{}).Where("id = ?", dish.ID).Update("price", 99).Error)

	order := assertOrderInvariants(t, db, created[0].ID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 20.0, order.Items[0].Price)
	assert.Equal(t, 40.0, order.Items[0].Subtotal)
	assert.Equal(t, 40.0, order.Subtotal)
}

func TestCheckoutIncrementsSalesCount(t *testing.T) {
	db := setupDB(t)
	r1 := seedRestaurant(t, db, "Noodle House", 5)
	dish := seedDish(t, db, r1.ID, "Dish A", 20)

	_, err := cart.Add(db, 1, dish.ID, 4)
	require.NoError(t, err)
	_, err = Checkout(db, 1, testAddr, "")
	require.NoError(t, err)

	var after models.Dish
	require.NoError(t, db.First(&after, dish.ID).Error)
	assert.Equal(t, 4, after.SalesCount)
}

func TestCheckoutFailureLeavesEverythingUntouched(t *testing.T) {
	db := setupDB(t)
	r1 := seedRestaurant(t, db, "Noodle House", 5)
	keep := seedDish(t, db, r1.ID, "Dish A", 20)
	gone := seedDish(t, db, r1.ID, "Dish B", 15)

	_, err := cart.Add(db, 1, keep.ID, 1)
	require.NoError(t, err)
	_, err = cart.Add(db, 1, gone.ID, 2)
	require.NoError(t, err)

	// Dish disappears between add-to-cart and checkout
	require.NoError(t, db.Delete(&models.Dish{}, gone.ID).Error)

	_, err = Checkout(db, 1, testAddr, "")
	assert.ErrorIs(t, err, ErrDishNotFound)

	// No partial orders, cart unchanged, sales counts unchanged
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)

	count, err := cart.Count(db, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var after models.Dish
	require.NoError(t, db.First(&after, keep.ID).Error)
	assert.Equal(t, 0, after.SalesCount)
}

func TestDoubleSubmitCreatesOrdersOnce(t *testing.T) {
	db := setupDB(t)
	r1 := seedRestaurant(t, db, "Noodle House", 5)
	dish := seedDish(t, db, r1.ID, "Dish A", 20)

	_, err := cart.Add(db, 1, dish.ID, 1)
	require.NoError(t, err)

	created, err := Checkout(db, 1, testAddr, "")
	require.NoError(t, err)
	require.Len(t, created, 1)

	// The duplicate submission sees an empty cart
	_, err = Checkout(db, 1, testAddr, "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
}

func TestGenerateOrderNo(t *testing.T) {
	no := GenerateOrderNo()
	assert.True(t, strings.HasPrefix(no, "ORD"))
	assert.Len(t, no, 23) // ORD + 14-digit timestamp + 6 random hex chars
	assert.Equal(t, strings.ToUpper(no), no)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := GenerateOrderNo()
		assert.False(t, seen[n], "duplicate order number generated")
		seen[n] = true
	}
}
