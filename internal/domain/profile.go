package domain

// Profile selects the daily value column used for %DV.
type Profile string

const (
	ProfileAdult             Profile = "adult"
	ProfileInfant            Profile = "infant"
	ProfileChild1To3         Profile = "child_1_3"
	ProfilePregnantLactating Profile = "pregnant_lactating"
)

var profileLabels = map[Profile]string{
	ProfileAdult:             "Adult",
	ProfileInfant:            "Infant",
	ProfileChild1To3:         "Child 1-3",
	ProfilePregnantLactating: "Pregnant/Lactating",
}

// Profiles lists every supported profile in display order.
var Profiles = []Profile{ProfileAdult, ProfileInfant, ProfileChild1To3, ProfilePregnantLactating}

// Valid reports whether p is a known profile.
func (p Profile) Valid() bool {
	_, ok := profileLabels[p]
	return ok
}

// Label returns the human readable name.
func (p Profile) Label() string {
	return profileLabels[p]
}
