package rest

import (
	"time"

	"car-market-service/internal/core/domain"
)

// VehicleResponse - DTO карточки объявления.
// Незаполненные поля сериализуются как null, фронтенд на это рассчитывает.
type VehicleResponse struct {
	VehicleID    int64      `json:"vehicle_id"`
	Title        *string    `json:"title"`
	Brand        *string    `json:"brand"`
	Model        *string    `json:"model"`
	Year         *int       `json:"year"`
	Price        *string    `json:"price"`
	PriceAmount  *int64     `json:"price_amount"`
	Mileage      *string    `json:"mileage"`
	MileageKm    *int64     `json:"mileage_km"`
	FuelType     *string    `json:"fuel_type"`
	Transmission *string    `json:"transmission"`
	BodyType     *string    `json:"body_type"`
	Color        *string    `json:"color"`
	Seats        *int       `json:"seats"`
	Origin       *string    `json:"origin"`
	Location     *string    `json:"location"`
	Description  *string    `json:"description"`
	ImageURL     *string    `json:"image_url"`
	SellerName   *string    `json:"seller_name"`
	SellerPhone  *string    `json:"seller_phone"`
	PostedAt     *time.Time `json:"posted_date"`
	URL          *string    `json:"url"`
}

func toVehicleResponse(v domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:    v.ID,
		Title:        v.Title,
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		Price:        v.Price,
		PriceAmount:  v.PriceAmount,
		Mileage:      v.Mileage,
		MileageKm:    v.MileageKm,
		FuelType:     v.FuelType,
		Transmission: v.Transmission,
		BodyType:     v.BodyType,
		Color:        v.Color,
		Seats:        v.Seats,
		Origin:       v.Origin,
		Location:     v.Location,
		Description:  v.Description,
		ImageURL:     v.ImageURL,
		SellerName:   v.SellerName,
		SellerPhone:  v.SellerPhone,
		PostedAt:     v.PostedAt,
		URL:          v.SourceURL,
	}
}

func toVehicleResponses(vehicles []domain.Vehicle) []VehicleResponse {
	responses := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, toVehicleResponse(v))
	}
	return responses
}

// SearchResponse - DTO для ответа со списком и пагинацией.
type SearchResponse struct {
	Results    []VehicleResponse `json:"results"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// SimilarVehiclesResponse - ответ подбора похожих объявлений.
type SimilarVehiclesResponse struct {
	Results []VehicleResponse `json:"results"`
	Count   int               `json:"count"`
}

// --- Auth ---

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// --- Favorites ---

type PaginatedFavoritesResponse struct {
	Favorites    []VehicleResponse `json:"favorites"`
	Total        int               `json:"total"`
	CurrentPage  int               `json:"current_page"`
	ItemsPerPage int               `json:"items_per_page"`
}

// --- Feedback ---

type FeedbackRequest struct {
	VehicleID       int64                  `json:"vehicle_id"`
	InteractionType string                 `json:"interaction_type"`
	Score           *float64               `json:"score"`
	SessionID       *string                `json:"session_id"`
	Metadata        map[string]interface{} `json:"metadata"`
}

type FeedbackResponse struct {
	InteractionID string    `json:"interaction_id"`
	VehicleID     int64     `json:"vehicle_id"`
	Type          string    `json:"interaction_type"`
	CreatedAt     time.Time `json:"created_at"`
}
