package analyzer

// Delta computes the period-over-period change between a current and a
// previous value. When previous is 0 the change is reported as flat 0
// regardless of current, avoiding division by zero without fabricating an
// infinite swing.
func Delta(current, previous float64) Change {
	if previous == 0 {
		return Change{Pct: 0, Direction: TrendFlat}
	}

	pct := 100 * (current - previous) / previous
	switch {
	case pct > 0:
		return Change{Pct: pct, Direction: TrendUp}
	case pct < 0:
		return Change{Pct: pct, Direction: TrendDown}
	default:
		return Change{Pct: 0, Direction: TrendFlat}
	}
}
