package models

import "time"

const (
	ActionGenerateSpreadsheet = "spreadsheet.generate"
	ActionGenerateMonthly     = "spreadsheet.generate_monthly"
)

// ActivityLog records one successful generation.
type ActivityLog struct {
	ID            string    `bson:"id" json:"id"`
	Actor         string    `bson:"actor" json:"actor"`
	Action        string    `bson:"action" json:"action"`
	PatientName   string    `bson:"patientName" json:"patientName"`
	Professional  string    `bson:"professional" json:"professional"`
	Competence    string    `bson:"competence" json:"competence"`
	Documents     int       `bson:"documents" json:"documents"`
	Records       int       `bson:"records" json:"records"`
	TotalSessions int       `bson:"totalSessions" json:"totalSessions"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
