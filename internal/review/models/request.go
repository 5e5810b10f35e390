package models

import (
	"emend/internal/review/validate"
	dErrors "emend/pkg/domain-errors"
)

// TaxResidence declares a foreign tax residency.
type TaxResidence struct {
	Country   string `json:"country"`
	TaxNumber string `json:"tax_number"`
}

// PersonalUpdate carries the optional personal-section fields.
type PersonalUpdate struct {
	Name               *Sourced[string]         `json:"name,omitempty"`
	NickName           *Sourced[string]         `json:"nick_name,omitempty"`
	BirthDate          *Sourced[int64]          `json:"birth_date,omitempty"`
	Gender             *Sourced[Gender]         `json:"gender,omitempty"`
	FatherName         *Sourced[string]         `json:"father_name,omitempty"`
	MotherName         *Sourced[string]         `json:"mother_name,omitempty"`
	Email              *Sourced[string]         `json:"email,omitempty"`
	Phone              *Sourced[string]         `json:"phone,omitempty"`
	Nationality        *Sourced[int64]          `json:"nationality,omitempty"`
	OccupationActivity *Sourced[int64]          `json:"occupation_activity,omitempty"`
	CompanyName        *Sourced[string]         `json:"company_name,omitempty"`
	CompanyCNPJ        *Sourced[string]         `json:"company_cnpj,omitempty"`
	Patrimony          *Sourced[float64]        `json:"patrimony,omitempty"`
	Income             *Sourced[float64]        `json:"income,omitempty"`
	TaxResidences      *Sourced[[]TaxResidence] `json:"foreign_tax_residences,omitempty"`
	USPerson           *Sourced[bool]           `json:"us_person,omitempty"`
	BirthPlaceCountry  *Sourced[string]         `json:"birth_place_country,omitempty"`
	BirthPlaceState    *Sourced[string]         `json:"birth_place_state,omitempty"`
	BirthPlaceCity     *Sourced[int64]          `json:"birth_place_city,omitempty"`
}

// SpouseUpdate is required in full when present: a partial spouse is rejected.
type SpouseUpdate struct {
	Name        Sourced[string] `json:"name"`
	CPF         Sourced[string] `json:"cpf"`
	Nationality Sourced[int64]  `json:"nationality"`
}

// MaritalUpdate carries the marital section; status is mandatory inside it.
type MaritalUpdate struct {
	Status *Sourced[int64] `json:"status"`
	Spouse *SpouseUpdate   `json:"spouse,omitempty"`
}

// DocumentsUpdate carries the identity document section.
type DocumentsUpdate struct {
	CPF            *Sourced[string]       `json:"cpf,omitempty"`
	IdentityType   *Sourced[DocumentType] `json:"identity_type,omitempty"`
	IdentityNumber *Sourced[string]       `json:"identity_number,omitempty"`
	ExpeditionDate *Sourced[int64]        `json:"expedition_date,omitempty"`
	Issuer         *Sourced[string]       `json:"issuer,omitempty"`
	State          *Sourced[string]       `json:"state,omitempty"`
}

// AddressUpdate carries the residential address section.
type AddressUpdate struct {
	Country      *Sourced[string] `json:"country,omitempty"`
	State        *Sourced[string] `json:"state,omitempty"`
	City         *Sourced[int64]  `json:"city,omitempty"`
	Neighborhood *Sourced[string] `json:"neighborhood,omitempty"`
	StreetName   *Sourced[string] `json:"street_name,omitempty"`
	Number       *Sourced[string] `json:"number,omitempty"`
	ZipCode      *Sourced[string] `json:"zip_code,omitempty"`
	Phone        *Sourced[string] `json:"phone,omitempty"`
	Complement   *Sourced[string] `json:"complement,omitempty"`
}

// CrossBorderUpdate carries the cross-border employment disclosures.
type CrossBorderUpdate struct {
	IsPoliticallyExposed *Sourced[bool]               `json:"is_politically_exposed,omitempty"`
	IsExchangeMember     *Sourced[bool]               `json:"is_exchange_member,omitempty"`
	TimeExperience       *Sourced[TimeExperience]     `json:"time_experience,omitempty"`
	IsCompanyDirector    *Sourced[bool]               `json:"is_company_director,omitempty"`
	CompanyDirectorOf    *Sourced[string]             `json:"company_director_of,omitempty"`
	EmployStatus         *Sourced[EmploymentStatus]   `json:"employ_status,omitempty"`
	EmployType           *Sourced[EmploymentType]     `json:"employ_type,omitempty"`
	EmployPosition       *Sourced[EmploymentPosition] `json:"employ_position,omitempty"`
	EmployCompanyName    *Sourced[string]             `json:"employ_company_name,omitempty"`
}

// UpdateRequest is the partial update payload: every section is optional,
// but an entirely empty request is rejected. Once validated it is immutable
// and is only ever merged into the stored record, never persisted as-is.
type UpdateRequest struct {
	Personal              *PersonalUpdate    `json:"personal,omitempty"`
	Marital               *MaritalUpdate     `json:"marital,omitempty"`
	Documents             *DocumentsUpdate   `json:"documents,omitempty"`
	Address               *AddressUpdate     `json:"address,omitempty"`
	CrossBorderEmployment *CrossBorderUpdate `json:"cross_border_employment,omitempty"`
}

// Validate runs the composite schema: per-field rules plus the cross-field
// invariants. It is pure and synchronous; reference-table existence is the
// gate's concern, not validation's. Normalized values (stripped identifiers)
// are written back in place.
func (r *UpdateRequest) Validate() error {
	if r.Personal == nil && r.Marital == nil && r.Documents == nil &&
		r.Address == nil && r.CrossBorderEmployment == nil {
		return dErrors.New(dErrors.CodeValidation, "at least one update is required")
	}

	if r.Personal != nil {
		if err := r.Personal.validate(); err != nil {
			return err
		}
	}
	if r.Marital != nil {
		if err := r.Marital.validate(); err != nil {
			return err
		}
	}
	if r.Documents != nil {
		if err := r.Documents.validate(); err != nil {
			return err
		}
	}
	if r.Address != nil {
		if err := r.Address.validate(); err != nil {
			return err
		}
	}
	if r.CrossBorderEmployment != nil {
		if err := r.CrossBorderEmployment.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p *PersonalUpdate) validate() error {
	fields := []error{
		requireSource("personal.name", p.Name),
		requireSource("personal.nick_name", p.NickName),
		requireSource("personal.birth_date", p.BirthDate),
		requireSource("personal.gender", p.Gender),
		requireSource("personal.father_name", p.FatherName),
		requireSource("personal.mother_name", p.MotherName),
		requireSource("personal.email", p.Email),
		requireSource("personal.phone", p.Phone),
		requireSource("personal.nationality", p.Nationality),
		requireSource("personal.occupation_activity", p.OccupationActivity),
		requireSource("personal.company_name", p.CompanyName),
		requireSource("personal.company_cnpj", p.CompanyCNPJ),
		requireSource("personal.patrimony", p.Patrimony),
		requireSource("personal.income", p.Income),
		requireSource("personal.foreign_tax_residences", p.TaxResidences),
		requireSource("personal.us_person", p.USPerson),
		requireSource("personal.birth_place_country", p.BirthPlaceCountry),
		requireSource("personal.birth_place_state", p.BirthPlaceState),
		requireSource("personal.birth_place_city", p.BirthPlaceCity),
	}
	for _, err := range fields {
		if err != nil {
			return err
		}
	}

	if p.Name != nil {
		if _, err := validate.PersonName(p.Name.Value); err != nil {
			return err
		}
	}
	if p.FatherName != nil {
		if _, err := validate.PersonName(p.FatherName.Value); err != nil {
			return err
		}
	}
	if p.MotherName != nil {
		if _, err := validate.PersonName(p.MotherName.Value); err != nil {
			return err
		}
	}
	if p.BirthDate != nil {
		if _, err := validate.Timestamp(p.BirthDate.Value); err != nil {
			return err
		}
	}
	if p.Gender != nil {
		if err := validEnum("personal.gender", p.Gender.Value.Valid()); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if _, err := validate.Email(p.Email.Value); err != nil {
			return err
		}
	}
	if p.Phone != nil {
		if _, err := validate.CelPhone(p.Phone.Value); err != nil {
			return err
		}
	}
	if p.OccupationActivity != nil {
		if _, err := validate.Activity(p.OccupationActivity.Value); err != nil {
			return err
		}
	}
	if p.CompanyCNPJ != nil {
		normalized, err := validate.CNPJ(p.CompanyCNPJ.Value)
		if err != nil {
			return err
		}
		p.CompanyCNPJ.Value = normalized
	}
	if p.TaxResidences != nil {
		for _, tr := range p.TaxResidences.Value {
			if _, err := validate.Country(tr.Country); err != nil {
				return err
			}
			if tr.TaxNumber == "" {
				return dErrors.New(dErrors.CodeValidation, "missing tax number for tax residence")
			}
		}
	}
	if p.BirthPlaceCountry != nil {
		if _, err := validate.Country(p.BirthPlaceCountry.Value); err != nil {
			return err
		}
	}
	if p.BirthPlaceState != nil {
		if _, err := validate.State(p.BirthPlaceState.Value); err != nil {
			return err
		}
	}

	// Birthplace is all-or-nothing: a partial combination cannot be resolved
	// against the reference tables.
	return combinationPresent("birth place",
		p.BirthPlaceCountry != nil, p.BirthPlaceState != nil, p.BirthPlaceCity != nil)
}

func (m *MaritalUpdate) validate() error {
	if m.Status == nil {
		return dErrors.New(dErrors.CodeValidation, "marital status is required")
	}
	if err := requireSource("marital.status", m.Status); err != nil {
		return err
	}
	if m.Spouse != nil {
		if err := requireSource("marital.spouse.name", &m.Spouse.Name); err != nil {
			return err
		}
		if err := requireSource("marital.spouse.cpf", &m.Spouse.CPF); err != nil {
			return err
		}
		if err := requireSource("marital.spouse.nationality", &m.Spouse.Nationality); err != nil {
			return err
		}
		if _, err := validate.PersonName(m.Spouse.Name.Value); err != nil {
			return err
		}
		normalized, err := validate.CPF(m.Spouse.CPF.Value)
		if err != nil {
			return err
		}
		m.Spouse.CPF.Value = normalized
	}
	return nil
}

func (d *DocumentsUpdate) validate() error {
	fields := []error{
		requireSource("documents.cpf", d.CPF),
		requireSource("documents.identity_type", d.IdentityType),
		requireSource("documents.identity_number", d.IdentityNumber),
		requireSource("documents.expedition_date", d.ExpeditionDate),
		requireSource("documents.issuer", d.Issuer),
		requireSource("documents.state", d.State),
	}
	for _, err := range fields {
		if err != nil {
			return err
		}
	}

	if d.CPF != nil {
		normalized, err := validate.CPF(d.CPF.Value)
		if err != nil {
			return err
		}
		d.CPF.Value = normalized
	}
	if d.IdentityType != nil {
		if err := validEnum("documents.identity_type", d.IdentityType.Value.Valid()); err != nil {
			return err
		}
	}
	if d.IdentityNumber != nil {
		normalized, err := validate.DocumentNumber(d.IdentityNumber.Value)
		if err != nil {
			return err
		}
		d.IdentityNumber.Value = normalized
	}
	if d.ExpeditionDate != nil {
		if _, err := validate.Timestamp(d.ExpeditionDate.Value); err != nil {
			return err
		}
	}
	if d.State != nil {
		if _, err := validate.State(d.State.Value); err != nil {
			return err
		}
	}
	return nil
}

func (a *AddressUpdate) validate() error {
	fields := []error{
		requireSource("address.country", a.Country),
		requireSource("address.state", a.State),
		requireSource("address.city", a.City),
		requireSource("address.neighborhood", a.Neighborhood),
		requireSource("address.street_name", a.StreetName),
		requireSource("address.number", a.Number),
		requireSource("address.zip_code", a.ZipCode),
		requireSource("address.phone", a.Phone),
		requireSource("address.complement", a.Complement),
	}
	for _, err := range fields {
		if err != nil {
			return err
		}
	}

	if a.Country != nil {
		if _, err := validate.Country(a.Country.Value); err != nil {
			return err
		}
	}
	if a.State != nil {
		if _, err := validate.State(a.State.Value); err != nil {
			return err
		}
	}
	if a.Neighborhood != nil {
		if _, err := validate.BoundedText("neighborhood", a.Neighborhood.Value, 3, 18); err != nil {
			return err
		}
	}
	if a.StreetName != nil {
		if _, err := validate.BoundedText("street name", a.StreetName.Value, 3, 30); err != nil {
			return err
		}
	}
	if a.ZipCode != nil {
		if _, err := validate.ZipCode(a.ZipCode.Value); err != nil {
			return err
		}
	}
	if a.Phone != nil {
		if _, err := validate.Phone(a.Phone.Value); err != nil {
			return err
		}
	}
	if a.Complement != nil {
		if _, err := validate.BoundedText("complement", a.Complement.Value, 0, 20); err != nil {
			return err
		}
	}

	// Country/state/city resolve together or not at all.
	return combinationPresent("address",
		a.Country != nil, a.State != nil, a.City != nil)
}

func (c *CrossBorderUpdate) validate() error {
	fields := []error{
		requireSource("cross_border_employment.is_politically_exposed", c.IsPoliticallyExposed),
		requireSource("cross_border_employment.is_exchange_member", c.IsExchangeMember),
		requireSource("cross_border_employment.time_experience", c.TimeExperience),
		requireSource("cross_border_employment.is_company_director", c.IsCompanyDirector),
		requireSource("cross_border_employment.company_director_of", c.CompanyDirectorOf),
		requireSource("cross_border_employment.employ_status", c.EmployStatus),
		requireSource("cross_border_employment.employ_type", c.EmployType),
		requireSource("cross_border_employment.employ_position", c.EmployPosition),
		requireSource("cross_border_employment.employ_company_name", c.EmployCompanyName),
	}
	for _, err := range fields {
		if err != nil {
			return err
		}
	}

	if c.TimeExperience != nil {
		if err := validEnum("cross_border_employment.time_experience", c.TimeExperience.Value.Valid()); err != nil {
			return err
		}
	}
	if c.EmployStatus != nil {
		if err := validEnum("cross_border_employment.employ_status", c.EmployStatus.Value.Valid()); err != nil {
			return err
		}
	}
	if c.EmployType != nil {
		if err := validEnum("cross_border_employment.employ_type", c.EmployType.Value.Valid()); err != nil {
			return err
		}
	}
	if c.EmployPosition != nil {
		if err := validEnum("cross_border_employment.employ_position", c.EmployPosition.Value.Valid()); err != nil {
			return err
		}
	}

	// Declaring directorship requires naming the company.
	if c.IsCompanyDirector != nil && c.IsCompanyDirector.Value {
		if c.CompanyDirectorOf == nil || c.CompanyDirectorOf.Value == "" {
			return dErrors.New(dErrors.CodeValidation,
				"company_director_of is required for company directors")
		}
	}
	return nil
}

// combinationPresent rejects partially filled place combinations.
func combinationPresent(what string, country, state, city bool) error {
	if country || state || city {
		if !(country && state && city) {
			return dErrors.New(dErrors.CodeValidation, what+" requires country, state and city together")
		}
	}
	return nil
}
