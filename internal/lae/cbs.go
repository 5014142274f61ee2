package lae

// ClotBurdenScore recomputes the Heidelberg clot burden score from the
// per-branch and per-lobe occlusion findings. A totally or partially
// occluded main branch scores for the whole lung; otherwise the lobes
// contribute individually.
func ClotBurdenScore(f Findings) float64 {
	var score float64

	// Left lung
	switch f.LaeMainBranchLeft {
	case MainBranchTotal:
		score += 20
	case MainBranchPartial:
		score += 10
	default:
		score += lobeScore(f.LaeUpperLobeLeft, 10, 5, 2.5, 1)
		score += lobeScore(f.LaeLowerLobeLeft, 10, 5, 2.5, 1)
	}

	// Right lung
	switch f.LaeMainBranchRight {
	case MainBranchTotal:
		score += 20
	case MainBranchPartial:
		score += 10
	default:
		score += lobeScore(f.LaeUpperLobeRight, 6, 3, 1.5, 1)
		score += lobeScore(f.LaeMiddleLobeRight, 4, 2, 1, 0.5)
		score += lobeScore(f.LaeLowerLobeRight, 10, 5, 2.5, 1)
	}

	return score
}

func lobeScore(o LobeOcclusion, total, partial, segmental, subsegmental float64) float64 {
	switch o {
	case LobeTotal:
		return total
	case LobePartial:
		return partial
	case LobeSegmental:
		return segmental
	case LobeSubsegmental:
		return subsegmental
	}
	return 0
}
