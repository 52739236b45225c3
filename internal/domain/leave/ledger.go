package leave

// EffectiveAllocation computes the cap for a quarter: its base allocation
// plus the previous quarter's remainder for Q2 and Q4. Q1 and Q3 never
// receive carry-in, and nothing carries across a year boundary.
//
// The source balance is the same quarter's year only; callers pass nil when
// the source quarter was never referenced, which contributes nothing.
func EffectiveAllocation(balance QuarterBalance, source *QuarterBalance) int {
	effective := balance.Allocated
	if balance.Quarter != 2 && balance.Quarter != 4 {
		return effective
	}
	if source == nil {
		return effective
	}
	if source.Year != balance.Year || source.Quarter != balance.Quarter-1 {
		return effective
	}
	return effective + source.Remaining()
}

// CarrySourceQuarter returns the quarter whose remainder feeds the given
// quarter, or 0 when it receives no carry-in.
func CarrySourceQuarter(quarter int) int {
	switch quarter {
	case 2:
		return 1
	case 4:
		return 3
	}
	return 0
}
