package domain

// SearchFilters - набор фильтров каталога. Пустая строка / nil означает
// "фильтр не задан".
type SearchFilters struct {
	Query        string // свободный текст: ищется в title, brand и model
	Brand        string
	Model        string
	YearMin      *int
	YearMax      *int
	PriceMin     *float64
	PriceMax     *float64
	MileageMax   *float64
	FuelType     string
	Transmission string
	BodyType     string
	Location     string
}

// SortSpec - требуемая сортировка выдачи.
// Field: id | price | year | mileage (неизвестное значение трактуется как id).
// Direction: "asc" включает возрастание, любое другое значение - убывание.
type SortSpec struct {
	Field     string
	Direction string
}

// SearchResult - одна страница выдачи плюс метаданные пагинации.
type SearchResult struct {
	Vehicles   []Vehicle
	TotalCount int
	Page       int
	PageSize   int
}

// TotalPages считает количество страниц округлением вверх.
// При пустой выдаче страниц ноль, даже если запрошена страница 1.
func (r *SearchResult) TotalPages() int {
	if r.TotalCount == 0 || r.PageSize <= 0 {
		return 0
	}
	return (r.TotalCount + r.PageSize - 1) / r.PageSize
}

// PaginatedVehicles - страница избранного пользователя.
type PaginatedVehicles struct {
	Vehicles     []Vehicle
	TotalCount   int
	CurrentPage  int
	ItemsPerPage int
}
