package employee_test

import (
	"testing"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/employee"
	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeAt(t *testing.T) {
	birth := date(2000, 6, 15)

	t.Run("day before birthday", func(t *testing.T) {
		age, err := employee.AgeAt(birth, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 23, age)
	})

	t.Run("on the birthday", func(t *testing.T) {
		age, err := employee.AgeAt(birth, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 24, age)
	})

	t.Run("earlier month", func(t *testing.T) {
		age, err := employee.AgeAt(birth, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 23, age)
	})

	t.Run("nil birth date", func(t *testing.T) {
		_, err := employee.AgeAt(nil, time.Now())
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidBirthDate)
	})

	t.Run("future birth date", func(t *testing.T) {
		future := date(2100, 1, 1)
		_, err := employee.AgeAt(future, time.Now())
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidBirthDate)
	})
}

func TestBirthDateBoundsForAges(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("no bounds is unbounded", func(t *testing.T) {
		bounds, err := employee.BirthDateBoundsForAges(nil, nil, asOf)
		require.NoError(t, err)
		assert.True(t, bounds.Unbounded())
		assert.True(t, bounds.Contains(nil))
	})

	t.Run("min age caps the latest birth date", func(t *testing.T) {
		minAge := 18
		bounds, err := employee.BirthDateBoundsForAges(&minAge, nil, asOf)
		require.NoError(t, err)
		require.Nil(t, bounds.Earliest)
		require.NotNil(t, bounds.Latest)
		assert.Equal(t, time.Date(2006, 6, 15, 0, 0, 0, 0, time.UTC), *bounds.Latest)

		assert.True(t, bounds.Contains(date(2006, 6, 15)))
		assert.False(t, bounds.Contains(date(2006, 6, 16)))
		assert.True(t, bounds.Contains(date(1950, 1, 1)))
	})

	t.Run("max age caps the earliest birth date", func(t *testing.T) {
		maxAge := 65
		bounds, err := employee.BirthDateBoundsForAges(nil, &maxAge, asOf)
		require.NoError(t, err)
		require.NotNil(t, bounds.Earliest)
		require.Nil(t, bounds.Latest)
		assert.Equal(t, time.Date(1959, 6, 15, 0, 0, 0, 0, time.UTC), *bounds.Earliest)

		assert.False(t, bounds.Contains(date(1959, 6, 14)))
		assert.True(t, bounds.Contains(date(1959, 6, 15)))
	})

	t.Run("negative age is rejected", func(t *testing.T) {
		minAge := -1
		_, err := employee.BirthDateBoundsForAges(&minAge, nil, asOf)
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidAgeRange)
	})

	t.Run("min above max is rejected", func(t *testing.T) {
		minAge, maxAge := 50, 20
		_, err := employee.BirthDateBoundsForAges(&minAge, &maxAge, asOf)
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidAgeRange)
	})
}
