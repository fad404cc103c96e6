package services

import (
	"sync"
	"testing"

	"backend/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCartTotalSnapshot(t *testing.T) {
	db := newTestDB(t)
	carts := newCartService(db)
	orders := newOrderService(db)
	user := createUser(t, db, "alice")
	pasta := createMenuItem(t, db, "pasta", "12.99")
	soup := createMenuItem(t, db, "soup", "7.99")

	_, err := carts.Add(user.ID, pasta.ID, 2)
	require.NoError(t, err)
	_, err = carts.Add(user.ID, soup.ID, 1)
	require.NoError(t, err)

	order, err := orders.ConvertCart(user.ID)
	require.NoError(t, err)

	// 2 x 12.99 + 1 x 7.99, exact to the cent
	assert.True(t, order.Total.Equal(decimal.RequireFromString("33.97")),
		"total = %s", order.Total)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Nil(t, order.DeliveryCrewID)
	assert.False(t, order.Date.IsZero())

	items, err := orders.Repo.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].UnitPrice.Equal(pasta.Price))
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[1].UnitPrice.Equal(soup.Price))
	assert.Equal(t, 1, items[1].Quantity)

	// the cart is empty afterwards
	lines, err := carts.List(user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestConvertCartSnapshotSurvivesPriceChange(t *testing.T) {
	db := newTestDB(t)
	carts := newCartService(db)
	orders := newOrderService(db)
	user := createUser(t, db, "alice")
	pasta := createMenuItem(t, db, "pasta", "12.99")

	_, err := carts.Add(user.ID, pasta.ID, 1)
	require.NoError(t, err)

	order, err := orders.ConvertCart(user.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", pasta.ID).
		Update("price", decimal.RequireFromString("99.00")).Error)

	got, err := orders.Repo.GetOrder(order.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("12.99")))

	items, err := orders.Repo.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("12.99")))
}

// A converted cart must not leave tombstones behind: the customer can
// order the same item again right away.
func TestConvertCartAllowsReordering(t *testing.T) {
	db := newTestDB(t)
	carts := newCartService(db)
	orders := newOrderService(db)
	user := createUser(t, db, "alice")
	pasta := createMenuItem(t, db, "pasta", "12.99")

	_, err := carts.Add(user.ID, pasta.ID, 2)
	require.NoError(t, err)
	_, err = orders.ConvertCart(user.ID)
	require.NoError(t, err)

	_, err = carts.Add(user.ID, pasta.ID, 1)
	require.NoError(t, err)

	order, err := orders.ConvertCart(user.ID)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("12.99")))

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestConvertCartEmpty(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderService(db)
	user := createUser(t, db, "alice")

	_, err := orders.ConvertCart(user.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Two conversions racing over one cart must produce exactly one order.
func TestConvertCartConcurrentDoubleSubmit(t *testing.T) {
	db := newTestDB(t)
	carts := newCartService(db)
	orders := newOrderService(db)
	user := createUser(t, db, "alice")
	pasta := createMenuItem(t, db, "pasta", "12.99")

	_, err := carts.Add(user.ID, pasta.ID, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = orders.ConvertCart(user.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t,
				err == ErrEmptyCart || err == ErrCartConflict,
				"unexpected conversion error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListVisibleScoping(t *testing.T) {
	db := newTestDB(t)
	carts := newCartService(db)
	orders := newOrderService(db)
	pasta := createMenuItem(t, db, "pasta", "12.99")

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	boss := createUser(t, db, "boss")
	rider := createUser(t, db, "rider")
	joinGroup(t, db, boss, entity.GroupManager)
	joinGroup(t, db, rider, entity.GroupDeliveryCrew)

	for _, u := range []*entity.User{alice, bob} {
		_, err := carts.Add(u.ID, pasta.ID, 1)
		require.NoError(t, err)
		_, err = orders.ConvertCart(u.ID)
		require.NoError(t, err)
	}

	// assign alice's order to the rider
	aliceOrders, err := orders.ListVisible(actorFor(t, db, alice))
	require.NoError(t, err)
	require.Len(t, aliceOrders, 1)
	_, err = orders.Update(actorFor(t, db, boss), aliceOrders[0].ID,
		&OrderPatch{DeliveryCrewID: &rider.ID})
	require.NoError(t, err)

	// manager sees everything
	all, err := orders.ListVisible(actorFor(t, db, boss))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// customers see their own orders only
	own, err := orders.ListVisible(actorFor(t, db, bob))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, bob.ID, own[0].UserID)

	// crew sees assigned orders only
	assigned, err := orders.ListVisible(actorFor(t, db, rider))
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, alice.ID, assigned[0].UserID)
}

func TestUpdateRoleMask(t *testing.T) {
	db := newTestDB(t)
	carts := newCartService(db)
	orders := newOrderService(db)
	pasta := createMenuItem(t, db, "pasta", "12.99")

	alice := createUser(t, db, "alice")
	boss := createUser(t, db, "boss")
	rider := createUser(t, db, "rider")
	joinGroup(t, db, boss, entity.GroupManager)
	joinGroup(t, db, rider, entity.GroupDeliveryCrew)

	_, err := carts.Add(alice.ID, pasta.ID, 1)
	require.NoError(t, err)
	order, err := orders.ConvertCart(alice.ID)
	require.NoError(t, err)

	delivered := entity.OrderStatusDelivered

	// a customer's patch is accepted but none of it lands
	got, err := orders.Update(actorFor(t, db, alice), order.ID,
		&OrderPatch{Status: &delivered, DeliveryCrewID: &rider.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
	assert.Nil(t, got.DeliveryCrewID)

	// delivery crew may set status but not the assignment
	got, err = orders.Update(actorFor(t, db, rider), order.ID,
		&OrderPatch{Status: &delivered, DeliveryCrewID: &rider.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, got.Status)
	assert.Nil(t, got.DeliveryCrewID)

	// manager may assign crew; the target must hold the crew role
	got, err = orders.Update(actorFor(t, db, boss), order.ID,
		&OrderPatch{DeliveryCrewID: &rider.ID})
	require.NoError(t, err)
	require.NotNil(t, got.DeliveryCrewID)
	assert.Equal(t, rider.ID, *got.DeliveryCrewID)

	_, err = orders.Update(actorFor(t, db, boss), order.ID,
		&OrderPatch{DeliveryCrewID: &alice.ID})
	assert.ErrorIs(t, err, ErrNotDeliveryCrew)

	// total is immutable for everyone, silently
	newTotal := decimal.RequireFromString("0.01")
	got, err = orders.Update(actorFor(t, db, boss), order.ID,
		&OrderPatch{Total: &newTotal})
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("12.99")))
}

func TestUpdateUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderService(db)
	boss := createUser(t, db, "boss")
	joinGroup(t, db, boss, entity.GroupManager)

	delivered := entity.OrderStatusDelivered
	_, err := orders.Update(actorFor(t, db, boss), 9999, &OrderPatch{Status: &delivered})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetailVisibility(t *testing.T) {
	db := newTestDB(t)
	carts := newCartService(db)
	orders := newOrderService(db)
	pasta := createMenuItem(t, db, "pasta", "12.99")

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := carts.Add(alice.ID, pasta.ID, 1)
	require.NoError(t, err)
	order, err := orders.ConvertCart(alice.ID)
	require.NoError(t, err)

	detail, err := orders.Detail(actorFor(t, db, alice), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, detail.Order.ID)
	assert.Len(t, detail.Items, 1)

	// out of scope reads as absent
	_, err = orders.Detail(actorFor(t, db, bob), order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	carts := newCartService(db)
	orders := newOrderService(db)
	pasta := createMenuItem(t, db, "pasta", "12.99")
	alice := createUser(t, db, "alice")

	_, err := carts.Add(alice.ID, pasta.ID, 2)
	require.NoError(t, err)
	order, err := orders.ConvertCart(alice.ID)
	require.NoError(t, err)

	require.NoError(t, orders.Delete(order.ID))

	cnt, err := orders.Repo.CountOrderItems(order.ID)
	require.NoError(t, err)
	assert.Zero(t, cnt)

	assert.ErrorIs(t, orders.Delete(order.ID), ErrNotFound)
}
