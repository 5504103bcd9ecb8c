package sanitize

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmylchreest/readease/pkg/dom"
)

// Stats captures what a sanitize pass did.
type Stats struct {
	// Element counts
	ElementsRemoved map[string]int `json:"elements_removed" yaml:"elements_removed"` // tag -> count
	ElementsKept    int            `json:"elements_kept" yaml:"elements_kept"`

	// Rule triggers
	RoleRemovals         int `json:"role_removals" yaml:"role_removals"`
	ClassRemovals        int `json:"class_removals" yaml:"class_removals"`
	EmptyElementRemovals int `json:"empty_element_removals" yaml:"empty_element_removals"`
	QuoteLikeMarked      int `json:"quote_like_marked" yaml:"quote_like_marked"`

	// Attribute cleaning
	AttributesRemoved int `json:"attributes_removed" yaml:"attributes_removed"`

	TotalDuration time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
	}
}

// TotalElementsRemoved returns the sum of all removed elements.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, count := range s.ElementsRemoved {
		total += count
	}
	return total
}

// RecordRemoval records that an element was removed.
func (s *Stats) RecordRemoval(tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Elements: %d removed, %d kept\n", s.TotalElementsRemoved(), s.ElementsKept)

	if len(s.ElementsRemoved) > 0 {
		tags := make([]string, 0, len(s.ElementsRemoved))
		for tag := range s.ElementsRemoved {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, s.ElementsRemoved[tag]))
		}
		sb.WriteString("Removed by tag: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	if s.RoleRemovals > 0 || s.ClassRemovals > 0 {
		fmt.Fprintf(&sb, "Rule removals: role=%d, class=%d\n", s.RoleRemovals, s.ClassRemovals)
	}
	if s.EmptyElementRemovals > 0 {
		fmt.Fprintf(&sb, "Empty element removals: %d\n", s.EmptyElementRemovals)
	}
	if s.AttributesRemoved > 0 {
		fmt.Fprintf(&sb, "Attributes removed: %d\n", s.AttributesRemoved)
	}

	fmt.Fprintf(&sb, "Timing: total=%v\n", s.TotalDuration.Round(time.Microsecond))
	return sb.String()
}

// Warning represents a non-fatal issue encountered during sanitizing.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // "remove", "empty", "render"
	Message string `json:"message" yaml:"message"` // Human-readable description
	Context string `json:"context" yaml:"context"` // Element or rule that caused it
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a sanitize pass.
type Result struct {
	// Root is the sanitized tree (the input tree, mutated).
	Root *dom.Node `json:"-" yaml:"-"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats" yaml:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
