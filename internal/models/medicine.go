package models

import (
	"fmt"
	"time"

	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

// MedicineDeclaration represents the MEDICINES table. A declaration is a
// citizen's claim about a specific batch of surplus medicine offered for
// redistribution. Rows are never deleted; every lifecycle exit is a
// terminal status.
type MedicineDeclaration struct {
	MedicineID      string         `db:"MEDICINE_ID" json:"medicineId"`
	DeclarationCode string         `db:"DECLARATION_CODE" json:"declarationCode"`
	Name            string         `db:"NAME" json:"name"`
	AMM             string         `db:"AMM" json:"amm"`
	BatchNumber     string         `db:"BATCH_NUMBER" json:"batchNumber"`
	ExpirationDate  int64          `db:"EXPIRATION_DATE" json:"expirationDate"`
	Quantity        int            `db:"QUANTITY" json:"quantity"`
	IsImported      bool           `db:"IS_IMPORTED" json:"isImported"`
	CountryOfOrigin *string        `db:"COUNTRY_OF_ORIGIN" json:"countryOfOrigin,omitempty"`
	IsRecalled      bool           `db:"IS_RECALLED" json:"-"`
	SafetyRating    int            `db:"SAFETY_RATING" json:"-"`
	Status          MedicineStatus `db:"STATUS" json:"status"`
	CitizenID       string         `db:"CITIZEN_ID" json:"citizenId"`
	PharmacyID      *string        `db:"PHARMACY_ID" json:"pharmacyId,omitempty"`

	PharmacyVerifiedAt *int64  `db:"PHARMACY_VERIFIED_AT" json:"pharmacyVerifiedAt,omitempty"`
	PharmacyVerifiedBy *string `db:"PHARMACY_VERIFIED_BY" json:"pharmacyVerifiedBy,omitempty"`
	PharmacyNotes      *string `db:"PHARMACY_NOTES" json:"-"`

	RegulatoryValidatedAt *int64  `db:"REGULATORY_VALIDATED_AT" json:"regulatoryValidatedAt,omitempty"`
	RegulatoryValidatedBy *string `db:"REGULATORY_VALIDATED_BY" json:"regulatoryValidatedBy,omitempty"`
	RegulatoryNotes       *string `db:"REGULATORY_NOTES" json:"-"`

	CreatedTime int64 `db:"CREATED_TIME" json:"createdTime"`
	UpdatedTime int64 `db:"UPDATED_TIME" json:"updatedTime"`
}

// IsExpired reports whether the medicine's expiration date has passed
func (m *MedicineDeclaration) IsExpired(now time.Time) bool {
	return !utils.MillisToTime(m.ExpirationDate).After(now)
}

// CanBeRedistributed reports whether the medicine is currently eligible
// for redistribution under the safety rules: not expired, not imported,
// not recalled, and in an approved-or-restricted status.
func (m *MedicineDeclaration) CanBeRedistributed(now time.Time) bool {
	if m.IsExpired(now) {
		return false
	}
	if m.IsImported {
		return false
	}
	if m.IsRecalled {
		return false
	}
	if m.Status != StatusApprovedForRedistribution && m.Status != StatusRestrictedUse {
		return false
	}
	return true
}

// EligibilityReasons enumerates every condition currently blocking
// redistribution, or a single eligible message when none apply.
func (m *MedicineDeclaration) EligibilityReasons(now time.Time) []string {
	reasons := make([]string, 0)
	if m.IsExpired(now) {
		reasons = append(reasons, "medicine has expired")
	}
	if m.IsImported {
		reasons = append(reasons, "imported medicines cannot be redistributed")
	}
	if m.IsRecalled {
		reasons = append(reasons, "medicine has been recalled")
	}
	if m.Status != StatusApprovedForRedistribution && m.Status != StatusRestrictedUse {
		reasons = append(reasons, fmt.Sprintf("status is %s, must be %s or %s",
			m.Status, StatusApprovedForRedistribution, StatusRestrictedUse))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "medicine is eligible for redistribution")
	}
	return reasons
}

// MedicineAPIRequest is the payload for declaring a medicine. Fields are
// left untyped so that validation can tell an absent field apart from a
// present-but-invalid one and report the specific field code instead of a
// generic bind failure.
type MedicineAPIRequest struct {
	Name            interface{} `json:"name,omitempty"`
	AMM             interface{} `json:"amm,omitempty"`
	BatchNumber     interface{} `json:"batch_number,omitempty"`
	ExpirationDate  interface{} `json:"expiration_date,omitempty"`
	Quantity        interface{} `json:"quantity,omitempty"`
	IsImported      interface{} `json:"is_imported,omitempty"`
	CountryOfOrigin interface{} `json:"country_of_origin,omitempty"`
}

// AsMap converts the request into the generic shape the field validators
// consume. Absent fields are dropped; present fields pass through as-is,
// so an empty string still reaches the length check.
func (r *MedicineAPIRequest) AsMap() map[string]interface{} {
	data := map[string]interface{}{}
	if r.Name != nil {
		data["name"] = r.Name
	}
	if r.AMM != nil {
		data["amm"] = r.AMM
	}
	if r.BatchNumber != nil {
		data["batch_number"] = r.BatchNumber
	}
	if r.ExpirationDate != nil {
		data["expiration_date"] = r.ExpirationDate
	}
	if r.Quantity != nil {
		data["quantity"] = r.Quantity
	}
	if r.IsImported != nil {
		data["is_imported"] = r.IsImported
	}
	if r.CountryOfOrigin != nil {
		data["country_of_origin"] = r.CountryOfOrigin
	}
	return data
}

// MedicineVerifyRequest is the pharmacist verification payload
type MedicineVerifyRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Notes    string `json:"notes,omitempty"`
}

// MedicineValidateRequest is the regulatory validation payload
type MedicineValidateRequest struct {
	Decision string `json:"decision" binding:"required"`
	Notes    string `json:"notes,omitempty"`
}

// MedicineResponse is the external representation of a declaration.
// Sensitive fields (safety rating, notes, recall flag) are present only
// when built for a pharmacist or admin reader.
type MedicineResponse struct {
	MedicineID         string         `json:"medicineId"`
	DeclarationCode    string         `json:"declarationCode"`
	Name               string         `json:"name"`
	AMM                string         `json:"amm"`
	BatchNumber        string         `json:"batchNumber"`
	ExpirationDate     string         `json:"expirationDate"`
	Quantity           int            `json:"quantity"`
	IsImported         bool           `json:"isImported"`
	CountryOfOrigin    *string        `json:"countryOfOrigin,omitempty"`
	Status             MedicineStatus `json:"status"`
	CitizenID          string         `json:"citizenId"`
	IsExpired          bool           `json:"isExpired"`
	CanBeRedistributed bool           `json:"canBeRedistributed"`
	CreatedTime        int64          `json:"createdTime"`
	UpdatedTime        int64          `json:"updatedTime"`

	SafetyRating    *int    `json:"safetyRating,omitempty"`
	PharmacyNotes   *string `json:"pharmacyNotes,omitempty"`
	RegulatoryNotes *string `json:"regulatoryNotes,omitempty"`
	IsRecalled      *bool   `json:"isRecalled,omitempty"`
}

// ToResponse builds the external representation of the declaration.
func (m *MedicineDeclaration) ToResponse(now time.Time, includeSensitive bool) *MedicineResponse {
	resp := &MedicineResponse{
		MedicineID:         m.MedicineID,
		DeclarationCode:    m.DeclarationCode,
		Name:               m.Name,
		AMM:                m.AMM,
		BatchNumber:        m.BatchNumber,
		ExpirationDate:     utils.FormatTime(utils.MillisToTime(m.ExpirationDate)),
		Quantity:           m.Quantity,
		IsImported:         m.IsImported,
		CountryOfOrigin:    m.CountryOfOrigin,
		Status:             m.Status,
		CitizenID:          m.CitizenID,
		IsExpired:          m.IsExpired(now),
		CanBeRedistributed: m.CanBeRedistributed(now),
		CreatedTime:        m.CreatedTime,
		UpdatedTime:        m.UpdatedTime,
	}
	if includeSensitive {
		rating := m.SafetyRating
		recalled := m.IsRecalled
		resp.SafetyRating = &rating
		resp.PharmacyNotes = m.PharmacyNotes
		resp.RegulatoryNotes = m.RegulatoryNotes
		resp.IsRecalled = &recalled
	}
	return resp
}

// EligibilityResponse is the eligibility check result
type EligibilityResponse struct {
	MedicineID string   `json:"medicineId"`
	IsEligible bool     `json:"isEligible"`
	Reasons    []string `json:"reasons"`
}
