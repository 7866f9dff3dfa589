package models

// Role represents a user role in the TuniMed system
type Role string

const (
	RoleCitizen        Role = "CITIZEN"
	RolePharmacist     Role = "PHARMACIST"
	RoleHealthFacility Role = "HEALTH_FACILITY"
	RoleAdmin          Role = "ADMIN"
)

// AllRoles returns every defined role
func AllRoles() []Role {
	return []Role{RoleCitizen, RolePharmacist, RoleHealthFacility, RoleAdmin}
}

// Valid reports whether the role is one of the defined roles
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RolePharmacist, RoleHealthFacility, RoleAdmin:
		return true
	}
	return false
}

// MedicineStatus represents a medicine declaration workflow status
type MedicineStatus string

const (
	StatusSubmitted                 MedicineStatus = "SUBMITTED"
	StatusPharmacyVerified          MedicineStatus = "PHARMACY_VERIFIED"
	StatusPharmacyRejected          MedicineStatus = "PHARMACY_REJECTED"
	StatusApprovedForRedistribution MedicineStatus = "APPROVED_FOR_REDISTRIBUTION"
	StatusRestrictedUse             MedicineStatus = "RESTRICTED_USE"
	StatusRejectedRegulatory        MedicineStatus = "REJECTED_REGULATORY"
	StatusDistributed               MedicineStatus = "DISTRIBUTED"
	StatusCancelled                 MedicineStatus = "CANCELLED"
)

// AllMedicineStatuses returns every defined declaration status
func AllMedicineStatuses() []MedicineStatus {
	return []MedicineStatus{
		StatusSubmitted,
		StatusPharmacyVerified,
		StatusPharmacyRejected,
		StatusApprovedForRedistribution,
		StatusRestrictedUse,
		StatusRejectedRegulatory,
		StatusDistributed,
		StatusCancelled,
	}
}

// Valid reports whether the status is one of the defined statuses
func (s MedicineStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusPharmacyVerified, StatusPharmacyRejected,
		StatusApprovedForRedistribution, StatusRestrictedUse,
		StatusRejectedRegulatory, StatusDistributed, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined from the status
func (s MedicineStatus) Terminal() bool {
	switch s {
	case StatusPharmacyRejected, StatusRejectedRegulatory, StatusDistributed, StatusCancelled:
		return true
	}
	return false
}

// PropositionStatus represents the state of a public redistribution listing
type PropositionStatus string

const (
	PropositionAvailable   PropositionStatus = "AVAILABLE"
	PropositionDistributed PropositionStatus = "DISTRIBUTED"
	PropositionExpired     PropositionStatus = "EXPIRED"
)

// Valid reports whether the proposition status is defined
func (s PropositionStatus) Valid() bool {
	switch s {
	case PropositionAvailable, PropositionDistributed, PropositionExpired:
		return true
	}
	return false
}

// RegulatoryDecision is a regulatory agent's verdict on a verified declaration
type RegulatoryDecision string

const (
	DecisionApproved   RegulatoryDecision = "APPROVED"
	DecisionRestricted RegulatoryDecision = "RESTRICTED"
	DecisionRejected   RegulatoryDecision = "REJECTED"
)

// Valid reports whether the decision is defined
func (d RegulatoryDecision) Valid() bool {
	switch d {
	case DecisionApproved, DecisionRestricted, DecisionRejected:
		return true
	}
	return false
}

// ToStatus maps a regulatory decision onto the resulting declaration status
func (d RegulatoryDecision) ToStatus() MedicineStatus {
	switch d {
	case DecisionApproved:
		return StatusApprovedForRedistribution
	case DecisionRestricted:
		return StatusRestrictedUse
	default:
		return StatusRejectedRegulatory
	}
}

// ActionType represents an audited user action
type ActionType string

const (
	ActionMedicineDeclared           ActionType = "MEDICINE_DECLARED"
	ActionMedicineVerified           ActionType = "MEDICINE_VERIFIED"
	ActionMedicineRejected           ActionType = "MEDICINE_REJECTED"
	ActionMedicineApproved           ActionType = "MEDICINE_APPROVED"
	ActionMedicineRestricted         ActionType = "MEDICINE_RESTRICTED"
	ActionMedicineRegulatoryRejected ActionType = "MEDICINE_REGULATORY_REJECTED"
	ActionMedicineDistributed        ActionType = "MEDICINE_DISTRIBUTED"
	ActionMedicineCancelled          ActionType = "MEDICINE_CANCELLED"
)

// Valid reports whether the action type is defined
func (a ActionType) Valid() bool {
	switch a {
	case ActionMedicineDeclared, ActionMedicineVerified, ActionMedicineRejected,
		ActionMedicineApproved, ActionMedicineRestricted,
		ActionMedicineRegulatoryRejected, ActionMedicineDistributed,
		ActionMedicineCancelled:
		return true
	}
	return false
}
