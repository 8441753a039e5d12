package models

// ProfileID is the fixed row id of the singleton profile record.
const ProfileID = 1

// DiverProfile holds the diver's identity, certification and emergency
// contact details. All fields are free text; exactly zero or one profile
// exists per device. The JSON shape is part of the export contract.
type DiverProfile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	CertAgency     string `json:"certAgency"`
	CertLevel      string `json:"certLevel"`
	CertNumber     string `json:"certNumber"`
	EmergencyName  string `json:"emergencyName"`
	EmergencyPhone string `json:"emergencyPhone"`
}
