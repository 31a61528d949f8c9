package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// PolicyKind names a scheduling discipline.
type PolicyKind string

const (
	PolicyFCFS               PolicyKind = "fcfs"
	PolicySJF                PolicyKind = "sjf"
	PolicySRTF               PolicyKind = "srtf"
	PolicyPriority           PolicyKind = "priority-np"
	PolicyPriorityPreemptive PolicyKind = "priority-p"
	PolicyRoundRobin         PolicyKind = "round-robin"
)

// validPolicies is the set of recognized policy names.
// Shared by Config.Validate() and NewPolicy().
var validPolicies = map[PolicyKind]bool{
	PolicyFCFS:               true,
	PolicySJF:                true,
	PolicySRTF:               true,
	PolicyPriority:           true,
	PolicyPriorityPreemptive: true,
	PolicyRoundRobin:         true,
}

// IsValidPolicy returns true if name is a recognized policy.
func IsValidPolicy(name string) bool {
	return validPolicies[PolicyKind(name)]
}

// ValidPolicyNames returns the recognized policy names in sorted order.
func ValidPolicyNames() []string {
	names := make([]string, 0, len(validPolicies))
	for k := range validPolicies {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// Defaults used by the CLI when aging is switched on without explicit parameters.
const (
	DefaultAgingInterval int64 = 5
	DefaultAgingStep     int   = 1
)

// AgingConfig controls priority aging. Only the priority-p policy honors it.
type AgingConfig struct {
	Enabled  bool  `yaml:"aging_enabled"`
	Interval int64 `yaml:"aging_interval"` // ticks of waiting per promotion
	Step     int   `yaml:"aging_step"`     // priority levels gained per promotion
}

// Config holds the immutable per-run scheduling parameters.
type Config struct {
	Policy        PolicyKind  `yaml:"policy"`
	Quantum       int64       `yaml:"quantum"`                 // round-robin time slice
	ContextSwitch int64       `yaml:"context_switch_overhead"` // ticks charged per switch, 0 disables
	Aging         AgingConfig `yaml:",inline"`
}

// Validate checks every field and reports all problems at once.
// The returned error wraps ErrInvalidConfiguration.
func (c Config) Validate() error {
	verr := &ValidationError{Kind: ErrInvalidConfiguration}
	if !validPolicies[c.Policy] {
		verr.add("unknown policy %q; valid: %v", c.Policy, ValidPolicyNames())
	}
	if c.Quantum < 0 {
		verr.add("quantum must be non-negative, got %d", c.Quantum)
	} else if c.Policy == PolicyRoundRobin && c.Quantum == 0 {
		verr.add("quantum must be positive for %s", PolicyRoundRobin)
	}
	if c.ContextSwitch < 0 {
		verr.add("context_switch_overhead must be non-negative, got %d", c.ContextSwitch)
	}
	if c.Aging.Interval < 0 {
		verr.add("aging_interval must be non-negative, got %d", c.Aging.Interval)
	}
	if c.Aging.Step < 0 {
		verr.add("aging_step must be non-negative, got %d", c.Aging.Step)
	}
	if c.Aging.Enabled && c.Policy == PolicyPriorityPreemptive {
		if c.Aging.Interval == 0 {
			verr.add("aging_interval must be positive when aging is enabled")
		}
		if c.Aging.Step == 0 {
			verr.add("aging_step must be positive when aging is enabled")
		}
	}
	return verr.errOrNil()
}

// agingActive reports whether aging applies to this run.
func (c Config) agingActive() bool {
	return c.Aging.Enabled && c.Policy == PolicyPriorityPreemptive
}

// warnIgnored logs parameters that the selected policy does not use.
func (c Config) warnIgnored() {
	if c.Quantum > 0 && c.Policy != PolicyRoundRobin {
		logrus.Warnf("quantum=%d ignored by policy %s", c.Quantum, c.Policy)
	}
	if c.Aging.Enabled && c.Policy != PolicyPriorityPreemptive {
		logrus.Warnf("aging ignored by policy %s; only %s ages priorities", c.Policy, PolicyPriorityPreemptive)
	}
}

// ValidateProcesses checks every spec and reports all problems at once.
// The returned error wraps ErrInvalidProcess. An empty slice is valid.
func ValidateProcesses(specs []ProcessSpec) error {
	verr := &ValidationError{Kind: ErrInvalidProcess}
	seen := make(map[string]int, len(specs))
	for i, s := range specs {
		switch {
		case s.ID == "":
			verr.add("process #%d has an empty id", i)
		case s.ID == LabelContextSwitch || s.ID == LabelIdle:
			verr.add("process #%d uses reserved id %q", i, s.ID)
		}
		if j, dup := seen[s.ID]; dup && s.ID != "" {
			verr.add("process #%d duplicates id %q of process #%d", i, s.ID, j)
		} else {
			seen[s.ID] = i
		}
		if s.Arrival < 0 {
			verr.add("process %q has negative arrival %d", s.ID, s.Arrival)
		}
		if s.Burst <= 0 {
			verr.add("process %q has non-positive burst %d", s.ID, s.Burst)
		}
	}
	return verr.errOrNil()
}
