// Package builder merges a validated update request into the stored
// registration. Only fields present in the request move; everything else is
// carried over untouched from the stored snapshot.
package builder

import (
	"slices"

	"emend/internal/review/models"
)

// Build returns a merged deep copy of the stored record plus the list of
// fields the request actually changed. The stored record is never mutated,
// and the storage id is stripped from the merge output so it cannot leak
// into downstream payloads.
func Build(stored *models.Record, req *models.UpdateRequest) (*models.Record, []models.FieldChange) {
	merged := stored.Clone()
	merged.ID = ""

	var changes []models.FieldChange

	if p := req.Personal; p != nil {
		applyPersonal(&changes, &merged.Personal, p)
	}
	if m := req.Marital; m != nil {
		applyMarital(&changes, &merged.Marital, m)
	}
	if d := req.Documents; d != nil {
		applyDocuments(&changes, &merged.Documents, d)
	}
	if a := req.Address; a != nil {
		applyAddress(&changes, &merged.Address, a)
	}
	if c := req.CrossBorderEmployment; c != nil {
		applyCrossBorder(&changes, &merged.CrossBorderEmployment, c)
	}

	return merged, changes
}

// apply overwrites target with the submitted value and records the change.
// An absent field or an identical value is a no-op.
func apply[T comparable](changes *[]models.FieldChange, section, field string, target *T, submitted *models.Sourced[T]) {
	if submitted == nil || *target == submitted.Value {
		return
	}
	*changes = append(*changes, models.FieldChange{
		Section: section, Field: field, Old: *target, New: submitted.Value,
	})
	*target = submitted.Value
}

func applyPersonal(changes *[]models.FieldChange, data *models.PersonalData, p *models.PersonalUpdate) {
	const section = "personal"
	apply(changes, section, "name", &data.Name, p.Name)
	apply(changes, section, "nick_name", &data.NickName, p.NickName)
	apply(changes, section, "birth_date", &data.BirthDate, p.BirthDate)
	apply(changes, section, "gender", &data.Gender, p.Gender)
	apply(changes, section, "father_name", &data.FatherName, p.FatherName)
	apply(changes, section, "mother_name", &data.MotherName, p.MotherName)
	apply(changes, section, "email", &data.Email, p.Email)
	apply(changes, section, "phone", &data.Phone, p.Phone)
	apply(changes, section, "nationality", &data.Nationality, p.Nationality)
	apply(changes, section, "occupation_activity", &data.OccupationActivity, p.OccupationActivity)
	apply(changes, section, "company_name", &data.CompanyName, p.CompanyName)
	apply(changes, section, "company_cnpj", &data.CompanyCNPJ, p.CompanyCNPJ)
	apply(changes, section, "patrimony", &data.Patrimony, p.Patrimony)
	apply(changes, section, "income", &data.Income, p.Income)
	if p.TaxResidences != nil && !slices.Equal(data.TaxResidences, p.TaxResidences.Value) {
		*changes = append(*changes, models.FieldChange{
			Section: section, Field: "foreign_tax_residences",
			Old: data.TaxResidences, New: p.TaxResidences.Value,
		})
		data.TaxResidences = slices.Clone(p.TaxResidences.Value)
	}
	apply(changes, section, "us_person", &data.USPerson, p.USPerson)
	apply(changes, section, "birth_place_country", &data.BirthPlaceCountry, p.BirthPlaceCountry)
	apply(changes, section, "birth_place_state", &data.BirthPlaceState, p.BirthPlaceState)
	apply(changes, section, "birth_place_city", &data.BirthPlaceCity, p.BirthPlaceCity)
}

// applyMarital treats the spouse block as a unit: a submitted spouse replaces
// the stored one, and a marital section without a spouse clears it. Statuses
// without a partner carry no spouse block.
func applyMarital(changes *[]models.FieldChange, data *models.MaritalData, m *models.MaritalUpdate) {
	const section = "marital"
	apply(changes, section, "status_code", &data.StatusCode, m.Status)

	if m.Spouse != nil {
		submitted := &models.SpouseData{
			Name:        m.Spouse.Name.Value,
			CPF:         m.Spouse.CPF.Value,
			Nationality: m.Spouse.Nationality.Value,
		}
		if data.Spouse == nil || *data.Spouse != *submitted {
			*changes = append(*changes, models.FieldChange{
				Section: section, Field: "spouse", Old: data.Spouse, New: submitted,
			})
			data.Spouse = submitted
		}
		return
	}
	if data.Spouse != nil {
		*changes = append(*changes, models.FieldChange{
			Section: section, Field: "spouse", Old: data.Spouse, New: nil,
		})
		data.Spouse = nil
	}
}

func applyDocuments(changes *[]models.FieldChange, data *models.DocumentsData, d *models.DocumentsUpdate) {
	const section = "documents"
	apply(changes, section, "cpf", &data.CPF, d.CPF)
	apply(changes, section, "identity_type", &data.IdentityType, d.IdentityType)
	apply(changes, section, "identity_number", &data.IdentityNumber, d.IdentityNumber)
	apply(changes, section, "expedition_date", &data.ExpeditionDate, d.ExpeditionDate)
	apply(changes, section, "issuer", &data.Issuer, d.Issuer)
	apply(changes, section, "state", &data.State, d.State)
}

func applyAddress(changes *[]models.FieldChange, data *models.AddressData, a *models.AddressUpdate) {
	const section = "address"
	apply(changes, section, "country", &data.Country, a.Country)
	apply(changes, section, "state", &data.State, a.State)
	apply(changes, section, "city", &data.City, a.City)
	apply(changes, section, "neighborhood", &data.Neighborhood, a.Neighborhood)
	apply(changes, section, "street_name", &data.StreetName, a.StreetName)
	apply(changes, section, "number", &data.Number, a.Number)
	apply(changes, section, "zip_code", &data.ZipCode, a.ZipCode)
	apply(changes, section, "phone", &data.Phone, a.Phone)
	apply(changes, section, "complement", &data.Complement, a.Complement)
}

func applyCrossBorder(changes *[]models.FieldChange, data *models.CrossBorderData, c *models.CrossBorderUpdate) {
	const section = "cross_border_employment"
	apply(changes, section, "is_politically_exposed", &data.IsPoliticallyExposed, c.IsPoliticallyExposed)
	apply(changes, section, "is_exchange_member", &data.IsExchangeMember, c.IsExchangeMember)
	apply(changes, section, "time_experience", &data.TimeExperience, c.TimeExperience)
	apply(changes, section, "is_company_director", &data.IsCompanyDirector, c.IsCompanyDirector)
	apply(changes, section, "company_director_of", &data.CompanyDirectorOf, c.CompanyDirectorOf)
	apply(changes, section, "employ_status", &data.EmployStatus, c.EmployStatus)
	apply(changes, section, "employ_type", &data.EmployType, c.EmployType)
	apply(changes, section, "employ_position", &data.EmployPosition, c.EmployPosition)
	apply(changes, section, "employ_company_name", &data.EmployCompanyName, c.EmployCompanyName)
}
