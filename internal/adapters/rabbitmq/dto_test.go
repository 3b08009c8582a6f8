package rabbitmq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainVehicle_NormalizesNumericFields(t *testing.T) {
	body := []byte(`{
		"vehicle_id": 42,
		"title": "Toyota Corolla 1.8",
		"brand": "Toyota",
		"price": "$15,500",
		"mileage": "120,000 km"
	}`)

	var dto VehicleListingEventDTO
	require.NoError(t, json.Unmarshal(body, &dto))

	vehicle := toDomainVehicle(&dto)

	assert.Equal(t, int64(42), vehicle.ID)
	require.NotNil(t, vehicle.Price)
	assert.Equal(t, "$15,500", *vehicle.Price)
	require.NotNil(t, vehicle.PriceAmount)
	assert.Equal(t, int64(15500), *vehicle.PriceAmount)
	require.NotNil(t, vehicle.MileageKm)
	assert.Equal(t, int64(120000), *vehicle.MileageKm)
}

func TestToDomainVehicle_KeepsNilsAndRawText(t *testing.T) {
	price := "Договорная"
	dto := VehicleListingEventDTO{VehicleID: 7, Price: &price}

	vehicle := toDomainVehicle(&dto)

	assert.Equal(t, int64(7), vehicle.ID)
	// Сырая строка сохраняется, нормализованного значения нет
	require.NotNil(t, vehicle.Price)
	assert.Nil(t, vehicle.PriceAmount)
	assert.Nil(t, vehicle.Mileage)
	assert.Nil(t, vehicle.MileageKm)
	assert.Nil(t, vehicle.Brand)
	assert.Nil(t, vehicle.PostedAt)
}
