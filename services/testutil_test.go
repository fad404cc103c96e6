package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"backend/entity"
	"backend/pkg/rbac"
	"backend/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so concurrent transactions serialize the way a
	// write-locked sqlite file does
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Group{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	))

	db.FirstOrCreate(&entity.Group{}, entity.Group{Name: entity.GroupManager})
	db.FirstOrCreate(&entity.Group{}, entity.Group{Name: entity.GroupDeliveryCrew})

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	u := entity.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func joinGroup(t *testing.T, db *gorm.DB, user *entity.User, groupName string) {
	t.Helper()
	groups := repository.NewGroupRepository(db)
	g, err := groups.GetByName(groupName)
	require.NoError(t, err)
	require.NoError(t, groups.AddMember(g, user))
}

// actorFor goes through the real role resolution so the tests cover
// the resolver as well as the services.
func actorFor(t *testing.T, db *gorm.DB, user *entity.User) *rbac.Actor {
	t.Helper()
	users := repository.NewUserRepository(db)
	roles, err := users.ResolveRoles(user)
	require.NoError(t, err)
	return &rbac.Actor{ID: user.ID, Username: user.Username, Roles: roles}
}

func createMenuItem(t *testing.T, db *gorm.DB, title, price string) *entity.MenuItem {
	t.Helper()
	cat := entity.Category{Slug: "main-" + title, Title: "Main"}
	require.NoError(t, db.Create(&cat).Error)
	m := entity.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		CategoryID: cat.ID,
	}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(db, repository.NewCartRepository(db), repository.NewMenuRepository(db))
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		repository.NewGroupRepository(db),
	)
}
