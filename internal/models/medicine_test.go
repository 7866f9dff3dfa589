package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dhouhaelaouni/tunimed/pkg/utils"
)

func declarationFixture(status MedicineStatus, expiration time.Time) *MedicineDeclaration {
	now := utils.GetCurrentTimeMillis()
	return &MedicineDeclaration{
		MedicineID:      "MED-1",
		DeclarationCode: "DECL-TEST0001",
		Name:            "Doliprane 500mg",
		AMM:             "AMM67890",
		BatchNumber:     "LOT42",
		ExpirationDate:  utils.TimeToMillis(expiration),
		Quantity:        5,
		Status:          status,
		CitizenID:       "citizen-1",
		CreatedTime:     now,
		UpdatedTime:     now,
	}
}

func TestCanBeRedistributed(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(30 * 24 * time.Hour)

	approved := declarationFixture(StatusApprovedForRedistribution, future)
	assert.True(t, approved.CanBeRedistributed(now))

	restricted := declarationFixture(StatusRestrictedUse, future)
	assert.True(t, restricted.CanBeRedistributed(now))

	submitted := declarationFixture(StatusSubmitted, future)
	assert.False(t, submitted.CanBeRedistributed(now))

	distributed := declarationFixture(StatusDistributed, future)
	assert.False(t, distributed.CanBeRedistributed(now))
}

func TestCanBeRedistributed_ExpiredAlwaysLoses(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-24 * time.Hour)

	// Expiration dominates regardless of status.
	for _, status := range AllMedicineStatuses() {
		m := declarationFixture(status, past)
		assert.False(t, m.CanBeRedistributed(now), "status %s", status)
	}
}

func TestCanBeRedistributed_ImportedAndRecalled(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(30 * 24 * time.Hour)

	imported := declarationFixture(StatusApprovedForRedistribution, future)
	imported.IsImported = true
	assert.False(t, imported.CanBeRedistributed(now))

	recalled := declarationFixture(StatusApprovedForRedistribution, future)
	recalled.IsRecalled = true
	assert.False(t, recalled.CanBeRedistributed(now))
}

func TestEligibilityReasons_ListsEveryFailure(t *testing.T) {
	now := time.Now().UTC()

	m := declarationFixture(StatusSubmitted, now.Add(-time.Hour))
	m.IsImported = true
	m.IsRecalled = true

	reasons := m.EligibilityReasons(now)

	assert.Len(t, reasons, 4)
	assert.Contains(t, reasons, "medicine has expired")
	assert.Contains(t, reasons, "imported medicines cannot be redistributed")
	assert.Contains(t, reasons, "medicine has been recalled")
}

func TestEligibilityReasons_EligibleMessage(t *testing.T) {
	now := time.Now().UTC()
	m := declarationFixture(StatusApprovedForRedistribution, now.Add(time.Hour))

	reasons := m.EligibilityReasons(now)

	assert.Equal(t, []string{"medicine is eligible for redistribution"}, reasons)
}

func TestIsExpired_BoundaryIsExpired(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	exact := declarationFixture(StatusApprovedForRedistribution, now)
	assert.True(t, exact.IsExpired(now), "expiring exactly now counts as expired")

	later := declarationFixture(StatusApprovedForRedistribution, now.Add(time.Millisecond))
	assert.False(t, later.IsExpired(now))
}

func TestToResponse_SensitiveFields(t *testing.T) {
	now := time.Now().UTC()
	m := declarationFixture(StatusApprovedForRedistribution, now.Add(time.Hour))
	m.SafetyRating = 4
	m.IsRecalled = true
	m.PharmacyNotes = ptr("packaging intact")
	m.RegulatoryNotes = ptr("approved with conditions")

	public := m.ToResponse(now, false)
	assert.Nil(t, public.SafetyRating)
	assert.Nil(t, public.PharmacyNotes)
	assert.Nil(t, public.RegulatoryNotes)
	assert.Nil(t, public.IsRecalled)

	reviewer := m.ToResponse(now, true)
	assert.Equal(t, 4, *reviewer.SafetyRating)
	assert.Equal(t, "packaging intact", *reviewer.PharmacyNotes)
	assert.Equal(t, "approved with conditions", *reviewer.RegulatoryNotes)
	assert.True(t, *reviewer.IsRecalled)
}

func TestAsMap_DropsAbsentOptionalFields(t *testing.T) {
	req := &MedicineAPIRequest{
		Name:           "Aspirin",
		AMM:            "AMM12345",
		BatchNumber:    "BATCH001",
		ExpirationDate: "2027-01-01",
		Quantity:       10,
	}

	data := req.AsMap()

	assert.Len(t, data, 5)
	assert.NotContains(t, data, "is_imported")
	assert.NotContains(t, data, "country_of_origin")

	req.IsImported = true
	req.CountryOfOrigin = "France"
	data = req.AsMap()
	assert.Equal(t, true, data["is_imported"])
	assert.Equal(t, "France", data["country_of_origin"])
}

func TestAsMap_KeepsPresentEmptyStrings(t *testing.T) {
	req := &MedicineAPIRequest{
		Name:           "",
		AMM:            "AMM12345",
		BatchNumber:    "BATCH001",
		ExpirationDate: "2027-01-01",
		Quantity:       10,
	}

	data := req.AsMap()

	assert.Contains(t, data, "name")
	assert.Equal(t, "", data["name"])
}

func ptr(s string) *string {
	return &s
}
