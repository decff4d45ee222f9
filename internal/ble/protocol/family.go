package protocol

import "strings"

// Family is a controller product line inferred from the advertised name.
// It only filters scan results; every family shares one frame format.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyAPM
	FamilyTriones
	FamilyConsmart
	FamilyDreamFlash
	FamilyQHM
)

func (f Family) String() string {
	switch f {
	case FamilyAPM:
		return "APM"
	case FamilyTriones:
		return "Triones"
	case FamilyConsmart:
		return "Consmart"
	case FamilyDreamFlash:
		return "DreamFlash"
	case FamilyQHM:
		return "QHM"
	default:
		return "Unknown"
	}
}

// Supported reports whether f is a recognised family.
func (f Family) Supported() bool {
	return f != FamilyUnknown && f <= FamilyQHM
}

type familyRule struct {
	family   Family
	prefixes []string
	contains []string
}

// Evaluated in order; first match wins. "AP" also covers "APM-".
var familyRules = []familyRule{
	{family: FamilyAPM, prefixes: []string{"APM-", "AP"}},
	{family: FamilyTriones, prefixes: []string{"Triones-", "Triones+", "Triones"}},
	{family: FamilyConsmart, contains: []string{"Consmart"}},
	{family: FamilyDreamFlash, prefixes: []string{"Dream", "Flash"}},
	{family: FamilyQHM, prefixes: []string{"QHM"}},
}

// Classify maps an advertised name to a family. An empty name (no name
// advertised) is FamilyUnknown. Matching is case-sensitive.
func Classify(name string) Family {
	if name == "" {
		return FamilyUnknown
	}
	for _, r := range familyRules {
		for _, p := range r.prefixes {
			if strings.HasPrefix(name, p) {
				return r.family
			}
		}
		for _, c := range r.contains {
			if strings.Contains(name, c) {
				return r.family
			}
		}
	}
	return FamilyUnknown
}

// SupportedFamilies lists the recognised families in match priority order.
func SupportedFamilies() []Family {
	out := make([]Family, len(familyRules))
	for i, r := range familyRules {
		out[i] = r.family
	}
	return out
}
