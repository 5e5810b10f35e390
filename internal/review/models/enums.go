package models

import dErrors "emend/pkg/domain-errors"

// Gender codes accepted on the personal section.
type Gender string

const (
	GenderMasculine Gender = "M"
	GenderFeminine  Gender = "F"
)

func (g Gender) Valid() bool {
	return g == GenderMasculine || g == GenderFeminine
}

// DocumentType enumerates the accepted identity document kinds.
type DocumentType string

const (
	DocumentTypeIdentityCard  DocumentType = "RG"
	DocumentTypeDriverLicense DocumentType = "CH"
)

func (d DocumentType) Valid() bool {
	return d == DocumentTypeIdentityCard || d == DocumentTypeDriverLicense
}

// EmploymentStatus describes the cross-border employment situation.
type EmploymentStatus string

const (
	EmploymentStatusEmployed   EmploymentStatus = "EMPLOYED"
	EmploymentStatusSelf       EmploymentStatus = "SELF_EMPLOYED"
	EmploymentStatusRetired    EmploymentStatus = "RETIRED"
	EmploymentStatusStudent    EmploymentStatus = "STUDENT"
	EmploymentStatusUnemployed EmploymentStatus = "UNEMPLOYED"
)

func (e EmploymentStatus) Valid() bool {
	switch e {
	case EmploymentStatusEmployed, EmploymentStatusSelf, EmploymentStatusRetired,
		EmploymentStatusStudent, EmploymentStatusUnemployed:
		return true
	}
	return false
}

// EmploymentType refines an EMPLOYED status.
type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "FULL_TIME"
	EmploymentTypePartTime EmploymentType = "PART_TIME"
	EmploymentTypeContract EmploymentType = "CONTRACT"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeContract:
		return true
	}
	return false
}

// EmploymentPosition is the declared role at the cross-border employer.
type EmploymentPosition string

const (
	EmploymentPositionOfficer  EmploymentPosition = "OFFICER"
	EmploymentPositionDirector EmploymentPosition = "DIRECTOR"
	EmploymentPositionManager  EmploymentPosition = "MANAGER"
	EmploymentPositionAnalyst  EmploymentPosition = "ANALYST"
	EmploymentPositionOther    EmploymentPosition = "OTHER"
)

func (e EmploymentPosition) Valid() bool {
	switch e {
	case EmploymentPositionOfficer, EmploymentPositionDirector, EmploymentPositionManager,
		EmploymentPositionAnalyst, EmploymentPositionOther:
		return true
	}
	return false
}

// TimeExperience buckets declared market experience.
type TimeExperience string

const (
	TimeExperienceNone        TimeExperience = "NONE"
	TimeExperienceOneToTwo    TimeExperience = "YRS_1_2"
	TimeExperienceThreeToFive TimeExperience = "YRS_3_5"
	TimeExperienceFivePlus    TimeExperience = "YRS_5_10"
	TimeExperienceTenPlus     TimeExperience = "YRS_10_"
)

func (t TimeExperience) Valid() bool {
	switch t {
	case TimeExperienceNone, TimeExperienceOneToTwo, TimeExperienceThreeToFive,
		TimeExperienceFivePlus, TimeExperienceTenPlus:
		return true
	}
	return false
}

func validEnum(field string, ok bool) error {
	if !ok {
		return dErrors.New(dErrors.CodeValidation, "invalid value for field "+field)
	}
	return nil
}

// RiskRating is the ordinal risk classification, A (low) through D (critical).
type RiskRating string

const (
	RiskRatingLow      RiskRating = "A"
	RiskRatingModerate RiskRating = "B"
	RiskRatingHigh     RiskRating = "C"
	RiskRatingCritical RiskRating = "D"
)
