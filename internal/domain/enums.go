package domain

// Status is the lifecycle state of an employee (also reused for user
// accounts, matching the source data model).
type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusOnLeave    Status = "ON_LEAVE"
	StatusTerminated Status = "TERMINATED"
	StatusProbation  Status = "PROBATION"
)

// ParseStatus reports whether raw names a known status.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusActive, StatusInactive, StatusOnLeave, StatusTerminated, StatusProbation:
		return Status(raw), true
	}
	return "", false
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ParseGender reports whether raw names a known gender.
func ParseGender(raw string) (Gender, bool) {
	switch Gender(raw) {
	case GenderMale, GenderFemale:
		return Gender(raw), true
	}
	return "", false
}
