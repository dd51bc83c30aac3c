// Package report turns a classification result into its two outputs: the
// pretty-printed nested JSON report and the per-kind summary. Both are fully
// deterministic: machines sort lexically, status kinds follow enumeration
// order, record lists arrive pre-sorted from the classifier.
package report

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/RecursivePineapple/recex-analyzer/internal/analyze"
	"github.com/RecursivePineapple/recex-analyzer/internal/errors"
)

// Report is the filtered, nested analysis output:
// machine name -> status kind -> ordered record list.
type Report struct {
	Machines analyze.Result
}

// Filter applies a mutually-exclusive allow or deny list of status kinds.
// Supplying both is a usage error. Machines left with no statuses are
// dropped entirely.
func Filter(result analyze.Result, whitelist, blacklist map[analyze.Status]bool) (*Report, error) {
	if len(whitelist) > 0 && len(blacklist) > 0 {
		return nil, errors.New(errors.UsageError,
			"cannot use --blacklist and --whitelist at the same time", nil)
	}

	filtered := make(analyze.Result, len(result))
	for machine, statuses := range result {
		kept := make(analyze.MachineStatuses, len(statuses))
		for status, records := range statuses {
			if len(blacklist) > 0 && blacklist[status] {
				continue
			}
			if len(whitelist) > 0 && !whitelist[status] {
				continue
			}
			kept[status] = records
		}
		if len(kept) > 0 {
			filtered[machine] = kept
		}
	}

	return &Report{Machines: filtered}, nil
}

// MarshalJSON writes machines in sorted order and each machine's statuses in
// enumeration order. encoding/json would sort status names alphabetically,
// which breaks the report's canonical kind ordering, so the nesting is
// emitted by hand.
func (r *Report) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(r.Machines))
	for name := range r.Machines {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, name); err != nil {
			return nil, err
		}

		statuses := r.Machines[name]
		buf.WriteByte('{')
		first := true
		for _, status := range analyze.AllStatuses() {
			records, ok := statuses[status]
			if !ok || len(records) == 0 {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false

			if err := writeJSONKey(&buf, status.String()); err != nil {
				return nil, err
			}
			data, err := json.Marshal(records)
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Encode renders the report as pretty-printed JSON. Identical inputs always
// produce byte-identical output.
func (r *Report) Encode() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func writeJSONKey(buf *bytes.Buffer, key string) error {
	data, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(data)
	buf.WriteByte(':')
	return nil
}
