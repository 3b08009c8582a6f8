package rabbitmq

import (
	"time"

	"car-market-service/internal/core/domain"
)

// VehicleListingEventDTO - структура события с объявлением от парсеров.
// Поля соответствуют контракту schemas/events/vehicle-listing/v1.json.
type VehicleListingEventDTO struct {
	VehicleID    int64      `json:"vehicle_id"`
	Title        *string    `json:"title"`
	Brand        *string    `json:"brand"`
	Model        *string    `json:"model"`
	Year         *int       `json:"year"`
	Price        *string    `json:"price"`
	Mileage      *string    `json:"mileage"`
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
	PostedDate   *time.Time `json:"posted_date"`
	URL          *string    `json:"url"`
}

// toDomainVehicle транслирует DTO события в доменную модель.
// Числовые колонки price_amount и mileage_km вычисляются здесь,
// чтобы хранилище получало уже нормализованные значения.
func toDomainVehicle(dto *VehicleListingEventDTO) domain.Vehicle {
	return domain.Vehicle{
		ID:           dto.VehicleID,
		Title:        dto.Title,
		Brand:        dto.Brand,
		Model:        dto.Model,
		Year:         dto.Year,
		Price:        dto.Price,
		PriceAmount:  domain.NormalizeNumeric(dto.Price),
		Mileage:      dto.Mileage,
		MileageKm:    domain.NormalizeNumeric(dto.Mileage),
		FuelType:     dto.FuelType,
		Transmission: dto.Transmission,
		BodyType:     dto.BodyType,
		Color:        dto.Color,
		Seats:        dto.Seats,
		Origin:       dto.Origin,
		Location:     dto.Location,
		Description:  dto.Description,
		ImageURL:     dto.ImageURL,
		SellerName:   dto.SellerName,
		SellerPhone:  dto.SellerPhone,
		PostedAt:     dto.PostedDate,
		SourceURL:    dto.URL,
	}
}
