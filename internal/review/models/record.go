package models

import "time"

// PersonalData is the stored personal section. Dates are epoch seconds so the
// merge layer can compare submitted and stored values directly.
type PersonalData struct {
	Name               string         `json:"name"`
	NickName           string         `json:"nick_name"`
	BirthDate          int64          `json:"birth_date"`
	Gender             Gender         `json:"gender"`
	FatherName         string         `json:"father_name"`
	MotherName         string         `json:"mother_name"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	Nationality        int64          `json:"nationality"`
	OccupationActivity int64          `json:"occupation_activity"`
	CompanyName        string         `json:"company_name"`
	CompanyCNPJ        string         `json:"company_cnpj"`
	Patrimony          float64        `json:"patrimony"`
	Income             float64        `json:"income"`
	TaxResidences      []TaxResidence `json:"foreign_tax_residences"`
	USPerson           bool           `json:"us_person"`
	BirthPlaceCountry  string         `json:"birth_place_country"`
	BirthPlaceState    string         `json:"birth_place_state"`
	BirthPlaceCity     int64          `json:"birth_place_city"`
}

// SpouseData is the stored spouse block inside the marital section.
type SpouseData struct {
	Name        string `json:"name"`
	CPF         string `json:"cpf"`
	Nationality int64  `json:"nationality"`
}

// MaritalData is the stored marital section. Spouse is nil for statuses
// without one; a status change that drops the spouse clears the block.
type MaritalData struct {
	StatusCode int64       `json:"status_code"`
	Spouse     *SpouseData `json:"spouse,omitempty"`
}

// DocumentsData is the stored identity documents section.
type DocumentsData struct {
	CPF            string       `json:"cpf"`
	IdentityType   DocumentType `json:"identity_type"`
	IdentityNumber string       `json:"identity_number"`
	ExpeditionDate int64        `json:"expedition_date"`
	Issuer         string       `json:"issuer"`
	State          string       `json:"state"`
}

// AddressData is the stored residential address section.
type AddressData struct {
	Country      string `json:"country"`
	State        string `json:"state"`
	City         int64  `json:"city"`
	Neighborhood string `json:"neighborhood"`
	StreetName   string `json:"street_name"`
	Number       string `json:"number"`
	ZipCode      string `json:"zip_code"`
	Phone        string `json:"phone"`
	Complement   string `json:"complement"`
}

// CrossBorderData is the stored cross-border employment section.
type CrossBorderData struct {
	IsPoliticallyExposed bool               `json:"is_politically_exposed"`
	IsExchangeMember     bool               `json:"is_exchange_member"`
	TimeExperience       TimeExperience     `json:"time_experience"`
	IsCompanyDirector    bool               `json:"is_company_director"`
	CompanyDirectorOf    string             `json:"company_director_of"`
	EmployStatus         EmploymentStatus   `json:"employ_status"`
	EmployType           EmploymentType     `json:"employ_type"`
	EmployPosition       EmploymentPosition `json:"employ_position"`
	EmployCompanyName    string             `json:"employ_company_name"`
}

// PEPFlags holds the politically-exposed-person markers kept on the record
// itself rather than inside a section; the risk engine consumes them on
// every rescoring.
type PEPFlags struct {
	IsPEP        bool `json:"is_pep"`
	IsPEPRelated bool `json:"is_pep_related"`
}

// RiskBlock is the last accepted risk verdict folded into the record.
type RiskBlock struct {
	Rating RiskRating `json:"rating"`
	Score  float64    `json:"score"`
}

// ChangeControl tracks when the record last moved and when its risk rating
// last changed. RiskRatingChangedAt only advances on an actual rating change.
type ChangeControl struct {
	UpdatedAt           time.Time  `json:"updated_at"`
	RiskRatingChangedAt *time.Time `json:"risk_rating_changed_at,omitempty"`
}

// Record is the stored registration. ID is the storage key and is stripped
// before the merged copy travels to the risk engine or the audit trail.
type Record struct {
	ID                    string          `json:"_id,omitempty"`
	UniqueID              string          `json:"unique_id"`
	Personal              PersonalData    `json:"personal"`
	Marital               MaritalData     `json:"marital"`
	Documents             DocumentsData   `json:"documents"`
	Address               AddressData     `json:"address"`
	CrossBorderEmployment CrossBorderData `json:"cross_border_employment"`
	PEP                   PEPFlags        `json:"pep"`
	Risk                  *RiskBlock      `json:"risk,omitempty"`
	ChangeControl         ChangeControl   `json:"change_control"`
}

// Clone deep-copies the record so merging never mutates the stored snapshot.
func (r *Record) Clone() *Record {
	out := *r
	if r.Personal.TaxResidences != nil {
		out.Personal.TaxResidences = make([]TaxResidence, len(r.Personal.TaxResidences))
		copy(out.Personal.TaxResidences, r.Personal.TaxResidences)
	}
	if r.Marital.Spouse != nil {
		spouse := *r.Marital.Spouse
		out.Marital.Spouse = &spouse
	}
	if r.Risk != nil {
		risk := *r.Risk
		out.Risk = &risk
	}
	if r.ChangeControl.RiskRatingChangedAt != nil {
		at := *r.ChangeControl.RiskRatingChangedAt
		out.ChangeControl.RiskRatingChangedAt = &at
	}
	return &out
}
