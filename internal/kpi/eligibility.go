package kpi

// Subdivision tags used for drill-down breakdowns.
const (
	SubdivisionProdev  = "PRODEV"
	SubdivisionPD1     = "PD1"
	SubdivisionPD2     = "PD2"
	SubdivisionDocs    = "DOCS"
	SubdivisionITS     = "ITS"
	SubdivisionChapter = "CHAPTER"
)

// UptimeKPI is the one Quality KPI that is only tracked by ITS.
const UptimeKPI = "Uptime / System Availability"

var defaultSubdivisions = map[Perspective][]string{
	Financial:           {SubdivisionProdev, SubdivisionPD1, SubdivisionPD2, SubdivisionDocs, SubdivisionITS, SubdivisionChapter},
	CustomerService:     {SubdivisionProdev, SubdivisionPD1, SubdivisionPD2, SubdivisionDocs},
	Quality:             {SubdivisionProdev, SubdivisionPD1, SubdivisionPD2, SubdivisionDocs},
	EmployeeFulfillment: {SubdivisionChapter},
}

type perspectiveKPI struct {
	perspective Perspective
	kpi         string
}

var subdivisionExceptions = map[perspectiveKPI][]string{
	{Quality, UptimeKPI}: {SubdivisionITS},
}

// EligibleSubdivisions returns the subdivisions a KPI can be drilled into.
// The table is static; it does not depend on which rows exist.
func EligibleSubdivisions(perspective Perspective, kpi string) []string {
	allowed, ok := subdivisionExceptions[perspectiveKPI{perspective, kpi}]
	if !ok {
		allowed = defaultSubdivisions[perspective]
	}
	out := make([]string, len(allowed))
	copy(out, allowed)
	return out
}

// IsEligibleSubdivision reports whether subdivision is in EligibleSubdivisions.
func IsEligibleSubdivision(perspective Perspective, kpi, subdivision string) bool {
	for _, s := range EligibleSubdivisions(perspective, kpi) {
		if s == subdivision {
			return true
		}
	}
	return false
}
