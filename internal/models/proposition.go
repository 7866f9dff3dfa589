package models

import (
	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

// MedicineProposition represents the MEDICINE_PROPOSITIONS table: the
// public, facility-facing listing derived from a pharmacy-verified
// declaration. Status only ever moves forward (AVAILABLE to DISTRIBUTED
// or EXPIRED) and IsActive is false exactly when the status has left
// AVAILABLE.
type MedicineProposition struct {
	PropositionID        string            `db:"PROPOSITION_ID" json:"propositionId"`
	MedicineID           string            `db:"MEDICINE_ID" json:"medicineId"`
	Status               PropositionStatus `db:"STATUS" json:"status"`
	IsActive             bool              `db:"IS_ACTIVE" json:"isActive"`
	ExpiredAt            *int64            `db:"EXPIRED_AT" json:"expiredAt,omitempty"`
	RequestingFacilityID *string           `db:"REQUESTING_FACILITY_ID" json:"requestingFacilityId,omitempty"`
	RequestedAt          *int64            `db:"REQUESTED_AT" json:"requestedAt,omitempty"`
	CreatedTime          int64             `db:"CREATED_TIME" json:"createdTime"`
	UpdatedTime          int64             `db:"UPDATED_TIME" json:"updatedTime"`
}

// PropositionListing is a proposition row joined with its medicine and
// the assigned pharmacy, as surfaced on the public listing endpoint.
type PropositionListing struct {
	PropositionID  string            `db:"PROPOSITION_ID"`
	Status         PropositionStatus `db:"STATUS"`
	IsActive       bool              `db:"IS_ACTIVE"`
	CreatedTime    int64             `db:"CREATED_TIME"`
	MedicineID     string            `db:"MEDICINE_ID"`
	MedicineName   string            `db:"NAME"`
	AMM            string            `db:"AMM"`
	BatchNumber    string            `db:"BATCH_NUMBER"`
	ExpirationDate int64             `db:"EXPIRATION_DATE"`
	Quantity       int               `db:"QUANTITY"`
	PharmacyName   *string           `db:"PHARMACY_NAME"`
	PharmacyCity   *string           `db:"PHARMACY_CITY"`
}

// PropositionFilters narrows the public proposition listing
type PropositionFilters struct {
	City         string
	SortByExpiry bool
	Limit        int
	Offset       int
}

// PropositionResponse is the external representation of a proposition
type PropositionResponse struct {
	PropositionID        string            `json:"propositionId"`
	MedicineID           string            `json:"medicineId"`
	Status               PropositionStatus `json:"status"`
	IsActive             bool              `json:"isActive"`
	ExpiredAt            *string           `json:"expiredAt,omitempty"`
	RequestingFacilityID *string           `json:"requestingFacilityId,omitempty"`
	RequestedAt          *string           `json:"requestedAt,omitempty"`
	CreatedTime          int64             `json:"createdTime"`
	UpdatedTime          int64             `json:"updatedTime"`
}

// ToResponse builds the external representation of the proposition
func (p *MedicineProposition) ToResponse() *PropositionResponse {
	resp := &PropositionResponse{
		PropositionID:        p.PropositionID,
		MedicineID:           p.MedicineID,
		Status:               p.Status,
		IsActive:             p.IsActive,
		RequestingFacilityID: p.RequestingFacilityID,
		CreatedTime:          p.CreatedTime,
		UpdatedTime:          p.UpdatedTime,
	}
	if p.ExpiredAt != nil {
		formatted := utils.FormatTime(utils.MillisToTime(*p.ExpiredAt))
		resp.ExpiredAt = &formatted
	}
	if p.RequestedAt != nil {
		formatted := utils.FormatTime(utils.MillisToTime(*p.RequestedAt))
		resp.RequestedAt = &formatted
	}
	return resp
}

// PropositionListingResponse is one row of the public listing
type PropositionListingResponse struct {
	PropositionID  string            `json:"propositionId"`
	Status         PropositionStatus `json:"status"`
	Medicine       ListingMedicine   `json:"medicine"`
	PharmacyName   *string           `json:"pharmacyName,omitempty"`
	PharmacyCity   *string           `json:"pharmacyCity,omitempty"`
	CreatedTime    int64             `json:"createdTime"`
}

// ListingMedicine is the medicine summary embedded in a listing row
type ListingMedicine struct {
	MedicineID     string `json:"medicineId"`
	Name           string `json:"name"`
	AMM            string `json:"amm"`
	BatchNumber    string `json:"batchNumber"`
	ExpirationDate string `json:"expirationDate"`
	Quantity       int    `json:"quantity"`
}

// ToResponse builds the external representation of a listing row
func (l *PropositionListing) ToResponse() PropositionListingResponse {
	return PropositionListingResponse{
		PropositionID: l.PropositionID,
		Status:        l.Status,
		Medicine: ListingMedicine{
			MedicineID:     l.MedicineID,
			Name:           l.MedicineName,
			AMM:            l.AMM,
			BatchNumber:    l.BatchNumber,
			ExpirationDate: utils.FormatTime(utils.MillisToTime(l.ExpirationDate)),
			Quantity:       l.Quantity,
		},
		PharmacyName: l.PharmacyName,
		PharmacyCity: l.PharmacyCity,
		CreatedTime:  l.CreatedTime,
	}
}
