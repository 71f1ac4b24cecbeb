package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peacockstore/peacock-api/internal/model"
)

func TestUserRepo_CreateAndGetByEmailAndType(t *testing.T) {
	cleanupTable(t, "orders", "reviews", "products", "users")

	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := &model.User{
		Name: "Priya", Email: "priya@example.com", Password: "hashed",
		PhoneNumber: "+1 555 0100", UserType: model.UserTypeCustomer,
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.GetByEmailAndType(ctx, "priya@example.com", model.UserTypeCustomer)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	// Same address, other partition: no hit.
	missing, err := repo.GetByEmailAndType(ctx, "priya@example.com", model.UserTypeSeller)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_SameEmailBothTypes(t *testing.T) {
	cleanupTable(t, "orders", "reviews", "products", "users")

	repo := NewUserRepository(testPool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{
		Name: "Priya", Email: "priya@example.com", Password: "h", UserType: model.UserTypeCustomer,
	}))
	require.NoError(t, repo.Create(ctx, &model.User{
		Name: "Priya", Email: "priya@example.com", Password: "h", UserType: model.UserTypeSeller,
	}))

	// The same pair twice violates the unique constraint.
	err := repo.Create(ctx, &model.User{
		Name: "Priya", Email: "priya@example.com", Password: "h", UserType: model.UserTypeSeller,
	})
	assert.Error(t, err)
}

func TestUserRepo_Update(t *testing.T) {
	cleanupTable(t, "orders", "reviews", "products", "users")

	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := &model.User{Name: "Priya", Email: "priya@example.com", Password: "h", UserType: model.UserTypeCustomer}
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Priya S."
	user.PhoneNumber = "+1 555 0101"
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.GetByEmailAndType(ctx, "priya@example.com", model.UserTypeCustomer)
	require.NoError(t, err)
	assert.Equal(t, "Priya S.", found.Name)
	assert.Equal(t, "+1 555 0101", found.PhoneNumber)
}

func TestProductRepo_CRUD(t *testing.T) {
	cleanupTable(t, "orders", "reviews", "products")

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	product := &model.Product{
		Name: "Silk Lehenga", Category: model.CategoryWomen,
		Description: "Hand embroidered", StylingNotes: "Pair with gold jewellery",
		ImageURLs: []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
		BuyPrice:  decimal.NewFromFloat(299.99), RentPrice: decimal.NewFromFloat(49.99),
		SellerEmail: "seller@example.com",
	}
	require.NoError(t, repo.Create(ctx, product))
	assert.NotZero(t, product.ID)

	found, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Silk Lehenga", found.Name)
	assert.Len(t, found.ImageURLs, 2)
	assert.True(t, found.BuyPrice.Equal(decimal.NewFromFloat(299.99)))

	product.Name = "Silk Lehenga v2"
	require.NoError(t, repo.Update(ctx, product))
	found, _ = repo.GetByID(ctx, product.ID)
	assert.Equal(t, "Silk Lehenga v2", found.Name)

	require.NoError(t, repo.Delete(ctx, product.ID))
	found, err = repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProductRepo_ListByCategory(t *testing.T) {
	cleanupTable(t, "orders", "reviews", "products")

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	for _, p := range []*model.Product{
		{Name: "Lehenga", Category: model.CategoryWomen, ImageURLs: []string{"a"}, BuyPrice: decimal.NewFromInt(100), RentPrice: decimal.NewFromInt(20)},
		{Name: "Sherwani", Category: model.CategoryMen, ImageURLs: []string{"b"}, BuyPrice: decimal.NewFromInt(150), RentPrice: decimal.NewFromInt(30)},
		{Name: "Saree", Category: model.CategoryWomen, ImageURLs: []string{"c"}, BuyPrice: decimal.NewFromInt(80), RentPrice: decimal.NewFromInt(15)},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	women, err := repo.List(ctx, model.CategoryWomen)
	require.NoError(t, err)
	require.Len(t, women, 2)
	assert.Equal(t, "Lehenga", women[0].Name)
	assert.Equal(t, "Saree", women[1].Name)
}

func TestReviewRepo_CreateAndList(t *testing.T) {
	cleanupTable(t, "orders", "reviews", "products")

	productRepo := NewProductRepository(testPool)
	reviewRepo := NewReviewRepository(testPool)
	ctx := context.Background()

	product := &model.Product{
		Name: "Saree", Category: model.CategoryWomen, ImageURLs: []string{"a"},
		BuyPrice: decimal.NewFromInt(80), RentPrice: decimal.NewFromInt(15),
	}
	require.NoError(t, productRepo.Create(ctx, product))

	require.NoError(t, reviewRepo.Create(ctx, &model.Review{
		ProductID: product.ID, Author: "Guest", Location: "Austin, USA", Text: "Lovely", Rating: 5,
	}))
	require.NoError(t, reviewRepo.Create(ctx, &model.Review{
		ProductID: product.ID, Author: "Mia", Text: "Nice fabric", Rating: 4,
	}))

	reviews, err := reviewRepo.List(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	all, err := reviewRepo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderRepo_CreateGetAndList(t *testing.T) {
	cleanupTable(t, "orders")

	repo := NewOrderRepository(testPool)
	ctx := context.Background()

	items := []model.CartItem{
		{Product: model.Product{ID: 1, Name: "Saree", BuyPrice: decimal.NewFromInt(80)}, Quantity: 1, Action: model.ActionBuy},
	}
	older := &model.Order{
		ID: "PEA-1000-AAAA", UserEmail: "priya@example.com",
		Date: time.Now().UTC().Add(-time.Hour), Items: items,
		Total: decimal.NewFromFloat(86.40), Status: model.OrderStatusProcessing,
		ShippingDetails: model.ShippingDetails{
			FullName: "Priya", Email: "priya@example.com", Address: "12 Lake View Rd",
			City: "Austin", State: "TX", ZipCode: "78701", Country: "USA",
		},
	}
	newer := &model.Order{
		ID: "PEA-2000-BBBB", UserEmail: "priya@example.com",
		Date: time.Now().UTC(), Items: items,
		Total: decimal.NewFromFloat(86.40), Status: model.OrderStatusProcessing,
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	found, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Priya", found.ShippingDetails.FullName)
	require.Len(t, found.Items, 1)
	assert.Equal(t, model.ActionBuy, found.Items[0].Action)
	assert.True(t, found.Total.Equal(decimal.NewFromFloat(86.40)))

	orders, err := repo.ListByUserEmail(ctx, "priya@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "PEA-2000-BBBB", orders[0].ID)
	assert.Equal(t, "PEA-1000-AAAA", orders[1].ID)
}

func TestOrderRepo_UpdateStatus(t *testing.T) {
	cleanupTable(t, "orders")

	repo := NewOrderRepository(testPool)
	ctx := context.Background()

	order := &model.Order{
		ID: "PEA-3000-CCCC", UserEmail: "priya@example.com",
		Date: time.Now().UTC(), Total: decimal.NewFromInt(50), Status: model.OrderStatusProcessing,
	}
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, model.OrderStatusShipped, "TRK-ABC123"))
	found, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, found.Status)
	assert.Equal(t, "TRK-ABC123", found.TrackingNumber)

	// An empty tracking number leaves the stored one in place.
	require.NoError(t, repo.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered, ""))
	found, _ = repo.GetByID(ctx, order.ID)
	assert.Equal(t, model.OrderStatusDelivered, found.Status)
	assert.Equal(t, "TRK-ABC123", found.TrackingNumber)
}
