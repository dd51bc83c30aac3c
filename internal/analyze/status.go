package analyze

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status classifies one input signature's before/after comparison. The
// enumeration order is the report's canonical ordering; do not reorder.
type Status int

const (
	// Added: signature absent before, exactly one recipe after.
	Added Status = iota
	// Removed: signature present before, absent after.
	Removed
	// OutputsChanged: single recipe each side, outputs differ.
	OutputsChanged
	// StatsChanged: single recipe each side, outputs equal but duration,
	// eut or enabled differ.
	StatsChanged
	// Conflicting: multiple registrations on both sides, not all equal.
	Conflicting
	// ConflictCreated: the change introduced a multi-registration.
	ConflictCreated
	// ConflictRemoved: a multi-registration collapsed to one recipe.
	ConflictRemoved
	// DuplicateRegistration: multiple registrations on both sides, all
	// byte-for-byte equal.
	DuplicateRegistration
	// MissingInput: the signature itself contains an unresolved descriptor.
	MissingInput
	// MissingOutput: an after-side recipe has an unresolved descriptor and
	// the before side already had one.
	MissingOutput
	// MissingOutputCreated: an after-side recipe has an unresolved
	// descriptor that the before side did not have.
	MissingOutputCreated

	numStatuses
)

var statusNames = [numStatuses]string{
	Added:                 "Added",
	Removed:               "Removed",
	OutputsChanged:        "OutputsChanged",
	StatsChanged:          "StatsChanged",
	Conflicting:           "Conflicting",
	ConflictCreated:       "ConflictCreated",
	ConflictRemoved:       "ConflictRemoved",
	DuplicateRegistration: "DuplicateRegistration",
	MissingInput:          "MissingInput",
	MissingOutput:         "MissingOutput",
	MissingOutputCreated:  "MissingOutputCreated",
}

// AllStatuses returns every status kind in enumeration order.
func AllStatuses() []Status {
	out := make([]Status, numStatuses)
	for i := range out {
		out[i] = Status(i)
	}
	return out
}

// String returns the status kind name used on the command line and in the
// report.
func (s Status) String() string {
	if s < 0 || s >= numStatuses {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalJSON encodes the status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseStatus maps a status kind name to its Status, case-insensitively.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if strings.EqualFold(n, name) {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("unknown status kind %q (valid kinds: %s)",
		name, strings.Join(statusNames[:], ", "))
}

// ParseStatusSet parses a list of status kind names into a set.
func ParseStatusSet(names []string) (map[Status]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := make(map[Status]bool, len(names))
	for _, name := range names {
		s, err := ParseStatus(name)
		if err != nil {
			return nil, err
		}
		set[s] = true
	}
	return set, nil
}
