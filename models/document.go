package models

// CompanyData identifies the clinic printed at the top of the document.
type CompanyData struct {
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj,omitempty"`
	Address string `json:"address,omitempty"`
}

// HeaderFields are the identity cells of the attendance document.
type HeaderFields struct {
	Professional      string       `json:"professional" binding:"required"`
	Therapy           string       `json:"therapy,omitempty"`
	LicenseNumber     string       `json:"licenseNumber" binding:"required"`
	AuthorizedSession string       `json:"authorizedSession,omitempty"`
	PatientName       string       `json:"patientName" binding:"required"`
	Responsible       string       `json:"responsible" binding:"required"`
	HealthPlan        string       `json:"healthPlan" binding:"required"`
	CardNumber        string       `json:"cardNumber,omitempty"`
	GuideNumber       string       `json:"guideNumber,omitempty"`
	Company           *CompanyData `json:"company,omitempty"`
}

// DocumentRequest is the payload of every generation endpoint.
type DocumentRequest struct {
	HeaderFields
	ScheduleRequest
}

// Document is one generated spreadsheet.
type Document struct {
	FileName       string          `json:"fileName"`
	Competence     string          `json:"competence"`
	Segment        *MonthSegment   `json:"segment,omitempty"`
	Records        []SessionRecord `json:"records"`
	TotalSessions  int             `json:"totalSessions"`
	DuplicatedRows int             `json:"duplicatedRows"`
	Content        []byte          `json:"-"`
}

// SchedulePreview is what the admin UI shows before a document is generated.
type SchedulePreview struct {
	Competence     string          `json:"competence"`
	WeekdaySummary string          `json:"weekdaySummary"`
	Records        []SessionRecord `json:"records"`
	TotalSessions  int             `json:"totalSessions"`
	Segments       []MonthSegment  `json:"segments"`
}
