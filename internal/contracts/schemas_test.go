package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEvent_ValidListing(t *testing.T) {
	body := []byte(`{
		"vehicle_id": 42,
		"title": "Toyota Corolla 1.8 2019",
		"brand": "Toyota",
		"year": 2019,
		"price": "$15,500",
		"mileage": "120,000 km",
		"posted_date": "2026-08-30T12:00:00Z"
	}`)

	assert.NoError(t, ValidateEvent("VehicleListingEvent", "1.0.0", body))
}

func TestValidateEvent_MinimalListing(t *testing.T) {
	// Обязателен только vehicle_id, остальные поля могут отсутствовать или быть null
	body := []byte(`{"vehicle_id": 1, "brand": null}`)
	assert.NoError(t, ValidateEvent("VehicleListingEvent", "1.0.0", body))
}

func TestValidateEvent_MissingVehicleID(t *testing.T) {
	body := []byte(`{"title": "Toyota Corolla"}`)
	assert.Error(t, ValidateEvent("VehicleListingEvent", "1.0.0", body))
}

func TestValidateEvent_WrongFieldType(t *testing.T) {
	body := []byte(`{"vehicle_id": "42"}`)
	assert.Error(t, ValidateEvent("VehicleListingEvent", "1.0.0", body))
}

func TestValidateEvent_UnknownSchema(t *testing.T) {
	body := []byte(`{"vehicle_id": 42}`)

	err := ValidateEvent("NoSuchEvent", "1.0.0", body)
	assert.ErrorContains(t, err, "not found")
}

func TestValidateEvent_NotJSON(t *testing.T) {
	err := ValidateEvent("VehicleListingEvent", "1.0.0", []byte("not json at all"))
	assert.Error(t, err)
}

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "VehicleListingEvent/1.0.0", generateKeyFromPath("events/vehicle-listing/v1.json"))
	assert.Equal(t, "", generateKeyFromPath("events/extra/level/v1.json"))
}
