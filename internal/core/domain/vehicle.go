package domain

import "time"

// Vehicle - объявление о продаже автомобиля.
// Почти все поля опциональны: источники отдают очень неполные данные,
// поэтому указатели, а не нулевые значения.
type Vehicle struct {
	ID           int64
	Title        *string
	Brand        *string
	Model        *string
	Year         *int
	Price        *string // сырая строка источника, например "$15,500" или "Договорная"
	PriceAmount  *int64  // нормализованная цена, заполняется при приеме события
	Mileage      *string // сырая строка, например "120,000 km"
	MileageKm    *int64  // нормализованный пробег
	FuelType     *string
	Transmission *string
	BodyType     *string
	Color        *string
	Seats        *int
	Origin       *string
	Location     *string
	Description  *string
	ImageURL     *string
	SellerName   *string
	SellerPhone  *string
	PostedAt     *time.Time
	SourceURL    *string
}

// BatchSaveStats - итог пакетного сохранения объявлений.
type BatchSaveStats struct {
	Created int
	Updated int
}
