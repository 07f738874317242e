package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ops@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}

func TestCoordinateRanges(t *testing.T) {
	assert.True(t, IsValidLatitude(28.5562))
	assert.True(t, IsValidLatitude(-90))
	assert.False(t, IsValidLatitude(90.0001))
	assert.True(t, IsValidLongitude(-180))
	assert.False(t, IsValidLongitude(181))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-12-09")
	assert.True(t, ok)
	_, ok = IsValidDate("09-12-2024")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2024-01-15T10:30:00Z")
	assert.True(t, ok)
	_, ok = IsValidDateTime("2024-01-15T10:30:00+05:30")
	assert.True(t, ok)
	_, ok = IsValidDateTime("2024-01-15 10:30")
	assert.False(t, ok)
}

func TestIsValidLocationCode(t *testing.T) {
	assert.True(t, IsValidLocationCode("DEL"))
	assert.True(t, IsValidLocationCode("BLR"))
	assert.False(t, IsValidLocationCode("del"))
	assert.False(t, IsValidLocationCode("D"))
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("AA1024"))
	assert.True(t, IsValidEmployeeCode("aa123456"))
	assert.False(t, IsValidEmployeeCode("A1024"))
	assert.False(t, IsValidEmployeeCode("AA12"))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "latitude must be between -90 and 90"},
		{Field: "reason", Message: "reason is required"},
	}
	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "reason is required", m["reason"])
	assert.Contains(t, errs.Error(), "latitude")
}
