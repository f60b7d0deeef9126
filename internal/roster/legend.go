package roster

// DefaultLegend is the built-in staff roster used when the server listing is
// unavailable. The editor and the search modal fall back to it so assignment
// keeps working offline.
func DefaultLegend() []StaffRef {
	return []StaffRef{
		{ID: "816031001", Name: "Daniel Rasheed"},
		{ID: "816031002", Name: "Amara Okafor"},
		{ID: "816031003", Name: "Priya Maharaj"},
		{ID: "816031004", Name: "Marcus Chen"},
		{ID: "816031005", Name: "Sofia Ramirez"},
		{ID: "816031006", Name: "Kwame Boateng"},
		{ID: "816031007", Name: "Leah Persad"},
		{ID: "816031008", Name: "Omar Hassan"},
	}
}
