package reconcile

import (
	"fmt"
	"strings"

	"github.com/reconlab/tabdiff/pkg/errors"
)

// LabelSet holds the fully resolved display strings for every comparison
// outcome. Values are plain ASCII because results feed external tooling with
// encoding constraints.
type LabelSet struct {
	Match            string
	Mismatch         string
	Warning          string
	OverallMatch     string
	OverallMismatch  string
	OverallLeftOnly  string
	OverallRightOnly string
	NALeftOnly       string
	NARightOnly      string
	NullVsValue      string
	Higher           string
	Lower            string
	Same             string
	MatchIndicator   string
	NoMatchIndicator string
}

// ResolveLabels merges user-supplied label overrides over the defaults and
// returns an immutable, fully populated set. Side names feed the one-sided
// defaults so a QES/NIQ deployment reads "QES ONLY" out of the box.
// Unknown label keys and non-ASCII values are configuration errors.
func ResolveLabels(user map[string]string, left, right SideConfig) (LabelSet, error) {
	set := LabelSet{
		Match:            "MATCH",
		Mismatch:         "MISMATCH",
		Warning:          "WARNING",
		OverallMatch:     "MATCH",
		OverallMismatch:  "MISMATCH",
		OverallLeftOnly:  strings.ToUpper(left.Name) + " ONLY",
		OverallRightOnly: strings.ToUpper(right.Name) + " ONLY",
		NALeftOnly:       "N/A - " + left.Name + " Only",
		NARightOnly:      "N/A - " + right.Name + " Only",
		NullVsValue:      "NULL vs value",
		Higher:           "HIGHER",
		Lower:            "LOWER",
		Same:             "SAME",
		MatchIndicator:   "Match",
		NoMatchIndicator: "Don't Match",
	}

	fields := map[string]*string{
		"match":              &set.Match,
		"mismatch":           &set.Mismatch,
		"warning":            &set.Warning,
		"overall_match":      &set.OverallMatch,
		"overall_mismatch":   &set.OverallMismatch,
		"overall_left_only":  &set.OverallLeftOnly,
		"overall_right_only": &set.OverallRightOnly,
		"na_left_only":       &set.NALeftOnly,
		"na_right_only":      &set.NARightOnly,
		"null_vs_value":      &set.NullVsValue,
		"higher":             &set.Higher,
		"lower":              &set.Lower,
		"same":               &set.Same,
		"match_indicator":    &set.MatchIndicator,
		"no_match_indicator": &set.NoMatchIndicator,
	}

	for key, value := range user {
		field, ok := fields[key]
		if !ok {
			return LabelSet{}, errors.NewConfigError("labels",
				fmt.Sprintf("unknown label key %q", key), nil)
		}
		*field = value
	}

	for key, field := range fields {
		if !isASCII(*field) {
			return LabelSet{}, errors.NewConfigError("labels",
				fmt.Sprintf("label %q contains non-ASCII characters: %q", key, *field), nil)
		}
	}

	return set, nil
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}
