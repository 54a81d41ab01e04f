package domain

import "strings"

// CanonicalFields is the full set of talent attributes the tool reads and
// edits, in the order GTR2 lists them inside a driver block. Anything else
// found in a .rcd file is ignored.
var CanonicalFields = []string{
	"Abbreviation",
	"Nationality",
	"NatAbbrev",
	"StartsDry",
	"StartsWet",
	"StartStalls",
	"QualifyingAbility",
	"RaceAbility",
	"Consistency",
	"RainAbility",
	"Passing",
	"Crash",
	"Recovery",
	"CompletedLaps%",
	"TrackAggression",
	"CorneringAdd",
	"CorneringMult",
	"TCGripThreshold",
	"TCThrottleFract",
	"TCResponse",
	"MinRacingSkill",
	"Composure",
	"RaceColdBrainMin",
	"RaceColdBrainTime",
	"QualColdBrainMin",
	"QualColdBrainTime",
}

var canonicalByLower = func() map[string]string {
	m := make(map[string]string, len(CanonicalFields))
	for _, f := range CanonicalFields {
		m[strings.ToLower(f)] = f
	}
	return m
}()

// CanonicalField resolves a key to its canonical spelling, case-insensitively.
func CanonicalField(key string) (string, bool) {
	f, ok := canonicalByLower[strings.ToLower(strings.TrimSpace(key))]
	return f, ok
}
