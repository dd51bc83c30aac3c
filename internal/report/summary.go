package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/RecursivePineapple/recex-analyzer/internal/analyze"
)

// Summary holds the total record count per status kind across all machines.
type Summary struct {
	counts map[analyze.Status]int
}

// Summarize computes per-kind totals over a (typically filtered) result.
func Summarize(result analyze.Result) *Summary {
	counts := make(map[analyze.Status]int)
	for _, statuses := range result {
		for status, records := range statuses {
			counts[status] += len(records)
		}
	}
	return &Summary{counts: counts}
}

// Counts returns a copy of the per-kind totals.
func (s *Summary) Counts() map[analyze.Status]int {
	out := make(map[analyze.Status]int, len(s.counts))
	for status, n := range s.counts {
		out[status] = n
	}
	return out
}

// Count returns the total for one status kind.
func (s *Summary) Count(status analyze.Status) int {
	return s.counts[status]
}

// Total returns the record count across all kinds.
func (s *Summary) Total() int {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// RenderHuman writes one "Kind: count" line per present status kind, in
// enumeration order.
func (s *Summary) RenderHuman(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "summary:"); err != nil {
		return err
	}
	for _, status := range analyze.AllStatuses() {
		n, ok := s.counts[status]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s: %d\n", status, n); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes the summary as a JSON object with kinds in enumeration
// order.
func (s *Summary) RenderJSON(w io.Writer) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// MarshalJSON emits kinds in enumeration order rather than alphabetically.
func (s *Summary) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	first := true
	for _, status := range analyze.AllStatuses() {
		n, ok := s.counts[status]
		if !ok {
			continue
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = append(buf, fmt.Sprintf("%q:%d", status.String(), n)...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// RenderYAML writes the summary as a YAML mapping with kinds in enumeration
// order.
func (s *Summary) RenderYAML(w io.Writer) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, status := range analyze.AllStatuses() {
		n, ok := s.counts[status]
		if !ok {
			continue
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: status.String()},
			&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", n)},
		)
	}

	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(node)
}
