package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peacockstore/peacock-api/internal/model"
)

// --- Auth ---

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	UserType string `json:"userType" binding:"required,oneof=customer seller"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"userType" binding:"required,oneof=customer seller"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	UserType    string `json:"userType"`
}

type UpdateUserRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// --- Product ---

type ProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category" binding:"required,oneof=women men kids-boys kids-girls handbags shoes jwellery pooja-items home-decor"`
	Description  string          `json:"description"`
	StylingNotes string          `json:"stylingNotes"`
	ImageURLs    []string        `json:"imageUrls" binding:"required,min=1"`
	BuyPrice     decimal.Decimal `json:"buyPrice" binding:"required"`
	RentPrice    decimal.Decimal `json:"rentPrice" binding:"required"`
}

// --- Review ---

type CreateReviewRequest struct {
	ProductID int64  `json:"productId" binding:"required"`
	Author    string `json:"author"`
	Location  string `json:"location"`
	Text      string `json:"text" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
}

type ReviewResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Author    string `json:"author"`
	Location  string `json:"location"`
	Text      string `json:"text"`
	Rating    int    `json:"rating"`
}

// --- Cart ---

type CartItemRequest struct {
	ProductID int64  `json:"productId" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=buy rent"`
}

type CartResponse struct {
	ID       uuid.UUID        `json:"id"`
	Items    []model.CartItem `json:"items"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

// --- Checkout ---

type StartCheckoutRequest struct {
	CartID uuid.UUID `json:"cartId" binding:"required"`
}

// ShippingRequest is deliberately unvalidated at the binding layer; the
// checkout session reports which gate failed (incomplete fields, terms).
type ShippingRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country"`
	TermsAccepted bool   `json:"termsAccepted"`
}

func (r ShippingRequest) Details() model.ShippingDetails {
	return model.ShippingDetails{
		FullName: r.FullName,
		Email:    r.Email,
		Address:  r.Address,
		City:     r.City,
		State:    r.State,
		ZipCode:  r.ZipCode,
		Country:  r.Country,
	}
}

type CardPayload struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

type PaymentRequest struct {
	Method          string       `json:"method" binding:"required,oneof=card external"`
	Card            *CardPayload `json:"card"`
	ProviderOrderID string       `json:"providerOrderId"`
}

type CheckoutResponse struct {
	ID       uuid.UUID        `json:"id"`
	Step     string           `json:"step"`
	Items    []model.CartItem `json:"items"`
	Subtotal decimal.Decimal  `json:"subtotal"`
	Taxes    decimal.Decimal  `json:"taxes"`
	Total    decimal.Decimal  `json:"total"`
}

// --- Order ---

type CreateOrderRequest struct {
	UserEmail       string                `json:"userEmail" binding:"required,email"`
	Items           []model.CartItem      `json:"items" binding:"required,min=1"`
	Total           decimal.Decimal       `json:"total" binding:"required"`
	ShippingDetails model.ShippingDetails `json:"shippingDetails" binding:"required"`
}

type OrderResponse struct {
	ID              string                `json:"id"`
	UserEmail       string                `json:"userEmail"`
	Date            time.Time             `json:"date"`
	Items           []model.CartItem      `json:"items"`
	Total           decimal.Decimal       `json:"total"`
	Status          model.OrderStatus     `json:"status"`
	StatusProgress  int                   `json:"statusProgress"`
	TrackingNumber  string                `json:"trackingNumber,omitempty"`
	ShippingDetails model.ShippingDetails `json:"shippingDetails"`
}
