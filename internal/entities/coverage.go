package entities

// CoverageRegion is a maximal merged span of a doctor's availability windows
// with no gaps. WindowID is a stable handle back to one source window: the
// first window of the region in start order, lowest id on ties.
type CoverageRegion struct {
	WindowID int
	Interval TimeInterval
}

// CandidateDoctor is one triage search hit: a doctor whose merged coverage
// contains the requested interval and who has no conflicting appointment.
type CandidateDoctor struct {
	AvailabilityID int    `json:"availability_id"`
	DoctorID       int    `json:"doctor_id"`
	DoctorName     string `json:"doctor_name"`
}
