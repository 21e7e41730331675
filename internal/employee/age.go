package employee

import (
	"time"

	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"
)

// AgeAt returns whole calendar years between birthDate and asOf. A
// birthday that has not yet occurred in asOf's year does not count.
func AgeAt(birthDate *time.Time, asOf time.Time) (int, error) {
	if birthDate == nil {
		return 0, employeeerrors.ErrInvalidBirthDate
	}

	birth := birthDate.UTC()
	asOf = asOf.UTC()
	if birth.After(asOf) {
		return 0, employeeerrors.ErrInvalidBirthDate
	}

	years := asOf.Year() - birth.Year()
	if asOf.Month() < birth.Month() ||
		(asOf.Month() == birth.Month() && asOf.Day() < birth.Day()) {
		years--
	}
	return years, nil
}

// BirthDateBounds is the closed birth-date interval derived from an age
// range. A nil side is unconstrained.
type BirthDateBounds struct {
	Earliest *time.Time // from maxAge: born on or after this date
	Latest   *time.Time // from minAge: born on or before this date
}

// Unbounded reports whether neither side constrains anything.
func (b BirthDateBounds) Unbounded() bool {
	return b.Earliest == nil && b.Latest == nil
}

// Contains reports whether birthDate falls inside the closed interval.
// A nil birth date matches only an unbounded interval.
func (b BirthDateBounds) Contains(birthDate *time.Time) bool {
	if b.Unbounded() {
		return true
	}
	if birthDate == nil {
		return false
	}
	if b.Earliest != nil && birthDate.Before(*b.Earliest) {
		return false
	}
	if b.Latest != nil && birthDate.After(*b.Latest) {
		return false
	}
	return true
}

// BirthDateBoundsForAges converts an age range into birth-date bounds as
// of the given date. An older person has an earlier birth date, so minAge
// caps the latest birth date and maxAge caps the earliest. Negative ages
// and minAge > maxAge are rejected up front; a single-sided range
// constrains only its own side.
func BirthDateBoundsForAges(minAge, maxAge *int, asOf time.Time) (BirthDateBounds, error) {
	if minAge == nil && maxAge == nil {
		return BirthDateBounds{}, nil
	}

	if minAge != nil && *minAge < 0 {
		return BirthDateBounds{}, employeeerrors.ErrInvalidAgeRange
	}
	if maxAge != nil && *maxAge < 0 {
		return BirthDateBounds{}, employeeerrors.ErrInvalidAgeRange
	}
	if minAge != nil && maxAge != nil && *minAge > *maxAge {
		return BirthDateBounds{}, employeeerrors.ErrInvalidAgeRange
	}

	var bounds BirthDateBounds
	asOf = asOf.UTC()

	if minAge != nil {
		latest := asOf.AddDate(-*minAge, 0, 0)
		bounds.Latest = &latest
	}
	if maxAge != nil {
		earliest := asOf.AddDate(-*maxAge, 0, 0)
		bounds.Earliest = &earliest
	}

	return bounds, nil
}
