package employee

import (
	"strings"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/domain"
)

// Predicate is a pure match function over an employee. Constructors never
// fail; invalid combinations are rejected before predicates are built.
type Predicate func(*Employee) bool

// And folds predicates into their conjunction. No predicates means no
// constraint: every employee matches.
func And(preds ...Predicate) Predicate {
	return func(e *Employee) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// NameMatches matches when term is a case-insensitive substring of the
// first OR the last name.
func NameMatches(term string) Predicate {
	lowered := strings.ToLower(term)
	return func(e *Employee) bool {
		return strings.Contains(strings.ToLower(e.FirstName), lowered) ||
			strings.Contains(strings.ToLower(e.LastName), lowered)
	}
}

// DepartmentEquals matches the department name exactly, case-sensitive.
// Department name *search* elsewhere is case-insensitive; the two are
// deliberately separate operations.
func DepartmentEquals(name string) Predicate {
	return func(e *Employee) bool {
		return e.DepartmentName() == name
	}
}

func StatusEquals(status domain.Status) Predicate {
	return func(e *Employee) bool {
		return e.Status == status
	}
}

// BornWithin matches birth dates inside the closed interval.
func BornWithin(bounds BirthDateBounds) Predicate {
	return func(e *Employee) bool {
		return bounds.Contains(e.BirthDate)
	}
}

// FilterCriteria is one advanced-search request. A nil field contributes
// no constraint.
type FilterCriteria struct {
	Name       *string
	Department *string
	Status     *domain.Status
	MinAge     *int
	MaxAge     *int
}

// Predicate builds the conjunction of all present criteria, deriving
// birth-date bounds from the age range as of the given date. The only
// failure mode is an invalid age range.
func (c FilterCriteria) Predicate(asOf time.Time) (Predicate, error) {
	preds := make([]Predicate, 0, 4)

	if c.Name != nil && *c.Name != "" {
		preds = append(preds, NameMatches(*c.Name))
	}
	if c.Department != nil && *c.Department != "" {
		preds = append(preds, DepartmentEquals(*c.Department))
	}
	if c.Status != nil {
		preds = append(preds, StatusEquals(*c.Status))
	}
	if c.MinAge != nil || c.MaxAge != nil {
		bounds, err := BirthDateBoundsForAges(c.MinAge, c.MaxAge, asOf)
		if err != nil {
			return nil, err
		}
		preds = append(preds, BornWithin(bounds))
	}

	return And(preds...), nil
}

// Filter applies the composed predicate, preserving input order.
func Filter(employees []Employee, pred Predicate) []Employee {
	matched := make([]Employee, 0, len(employees))
	for i := range employees {
		if pred(&employees[i]) {
			matched = append(matched, employees[i])
		}
	}
	return matched
}
