package sim

// Aging raises the effective priority of processes that sit in the ready set,
// so low-priority work cannot starve under preemptive priority scheduling.
//
// Formula, per ready process with waited = clock - ReadySince:
//
//	if waited >= Interval and EffectivePriority > 1:
//	    EffectivePriority = max(1, EffectivePriority - (waited / Interval) * Step)
//
// Whenever the priority changes the wait anchor ReadySince resets to clock.
type Aging struct {
	Interval int64
	Step     int
}

// Promotion records one aging step applied to a process.
type Promotion struct {
	Process *Process
	From    int
	To      int
	Waited  int64
}

// NewAging returns the Aging for cfg, or nil when aging is not active.
func NewAging(cfg Config) *Aging {
	if !cfg.agingActive() {
		return nil
	}
	return &Aging{Interval: cfg.Aging.Interval, Step: cfg.Aging.Step}
}

// Apply ages every ready process at clock and returns the promotions made,
// in ready-set order. A nil Aging does nothing.
func (a *Aging) Apply(ready *ReadySet, clock int64) []Promotion {
	if a == nil || a.Interval <= 0 {
		return nil
	}
	var promotions []Promotion
	for _, p := range ready.Items() {
		waited := clock - p.ReadySince
		if waited < a.Interval || p.EffectivePriority <= 1 {
			continue
		}
		steps := int(waited / a.Interval)
		next := max(1, p.EffectivePriority-steps*a.Step)
		if next == p.EffectivePriority {
			continue
		}
		promotions = append(promotions, Promotion{Process: p, From: p.EffectivePriority, To: next, Waited: waited})
		p.EffectivePriority = next
		p.ReadySince = clock
	}
	return promotions
}
