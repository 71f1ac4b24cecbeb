package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryWomen      Category = "women"
	CategoryMen        Category = "men"
	CategoryKidsBoys   Category = "kids-boys"
	CategoryKidsGirls  Category = "kids-girls"
	CategoryHandbags   Category = "handbags"
	CategoryShoes      Category = "shoes"
	CategoryJwellery   Category = "jwellery"
	CategoryPoojaItems Category = "pooja-items"
	CategoryHomeDecor  Category = "home-decor"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWomen, CategoryMen, CategoryKidsBoys, CategoryKidsGirls,
		CategoryHandbags, CategoryShoes, CategoryJwellery, CategoryPoojaItems, CategoryHomeDecor:
		return true
	}
	return false
}

// Product carries JSON tags because it is snapshotted into the orders
// items JSONB column in the shape the storefront reads back.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     Category        `json:"category"`
	Description  string          `json:"description"`
	StylingNotes string          `json:"stylingNotes,omitempty"`
	ImageURLs    []string        `json:"imageUrls"`
	BuyPrice     decimal.Decimal `json:"buyPrice"`
	RentPrice    decimal.Decimal `json:"rentPrice"`
	SellerEmail  string          `json:"sellerEmail,omitempty"`
}

type Review struct {
	ID        int64
	ProductID int64
	Author    string
	Location  string
	Text      string
	Rating    int
}

// CartAction is the cart-item mode: buy transfers ownership, rent is
// temporary use at the lower price.
type CartAction string

const (
	ActionBuy  CartAction = "buy"
	ActionRent CartAction = "rent"
)

func (a CartAction) Valid() bool {
	return a == ActionBuy || a == ActionRent
}

type CartItem struct {
	Product  Product    `json:"product"`
	Quantity int        `json:"quantity"`
	Action   CartAction `json:"action"`
}

// UnitPrice selects the buy or rent price according to the item action.
func (i CartItem) UnitPrice() decimal.Decimal {
	if i.Action == ActionBuy {
		return i.Product.BuyPrice
	}
	return i.Product.RentPrice
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ShippingDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusReturned   OrderStatus = "Returned"
)

// Progress maps the status to its position on the linear tracking
// indicator. Returned is terminal but sits outside the Processing →
// Shipped → Delivered line.
func (s OrderStatus) Progress() int {
	switch s {
	case OrderStatusProcessing:
		return 0
	case OrderStatusShipped:
		return 1
	case OrderStatusDelivered:
		return 2
	case OrderStatusReturned:
		return 3
	}
	return 0
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusReturned
}

type Order struct {
	ID              string
	UserEmail       string
	Date            time.Time
	Items           []CartItem
	Total           decimal.Decimal
	Status          OrderStatus
	TrackingNumber  string
	ShippingDetails ShippingDetails
}

type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeSeller   UserType = "seller"
)

func (t UserType) Valid() bool {
	return t == UserTypeCustomer || t == UserTypeSeller
}

// User identity is the (Email, UserType) pair: the same address may hold
// one customer account and one seller account.
type User struct {
	ID          int64
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	UserType    UserType
}

// OrderPlaced is the message published to the fulfillment queue after an
// order is persisted.
type OrderPlaced struct {
	OrderID   string `json:"order_id"`
	UserEmail string `json:"user_email"`
}
