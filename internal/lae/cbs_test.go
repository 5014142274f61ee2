package lae

import "testing"

// clearFindings returns findings with no occlusions anywhere.
func clearFindings() Findings {
	return Findings{
		LaePresence:        LaePresenceNo,
		LaeMainBranchRight: MainBranchNone,
		LaeUpperLobeRight:  LobeNone,
		LaeLowerLobeRight:  LobeNone,
		LaeMiddleLobeRight: LobeNone,
		LaeMainBranchLeft:  MainBranchNone,
		LaeUpperLobeLeft:   LobeNone,
		LaeLowerLobeLeft:   LobeNone,
		PerfusionDeficit:   PerfusionNA,
		RVLVQuotient:       QuotientNA,
	}
}

func TestClotBurdenScore(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Findings)
		want   float64
	}{
		{
			name:   "no occlusion",
			modify: func(f *Findings) {},
			want:   0,
		},
		{
			name: "total occlusion both main branches",
			modify: func(f *Findings) {
				f.LaeMainBranchLeft = MainBranchTotal
				f.LaeMainBranchRight = MainBranchTotal
			},
			want: 40,
		},
		{
			name: "partial left main branch overrides left lobes",
			modify: func(f *Findings) {
				f.LaeMainBranchLeft = MainBranchPartial
				f.LaeUpperLobeLeft = LobeTotal
				f.LaeLowerLobeLeft = LobeTotal
			},
			want: 10,
		},
		{
			name: "left lobes count without main branch occlusion",
			modify: func(f *Findings) {
				f.LaeUpperLobeLeft = LobeTotal
				f.LaeLowerLobeLeft = LobeSegmental
			},
			want: 12.5,
		},
		{
			name: "right lobes have asymmetric weights",
			modify: func(f *Findings) {
				f.LaeUpperLobeRight = LobePartial
				f.LaeMiddleLobeRight = LobeSubsegmental
				f.LaeLowerLobeRight = LobeTotal
			},
			want: 13.5,
		},
		{
			name: "subsegmental everywhere",
			modify: func(f *Findings) {
				f.LaeUpperLobeRight = LobeSubsegmental
				f.LaeMiddleLobeRight = LobeSubsegmental
				f.LaeLowerLobeRight = LobeSubsegmental
				f.LaeUpperLobeLeft = LobeSubsegmental
				f.LaeLowerLobeLeft = LobeSubsegmental
			},
			want: 4.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := clearFindings()
			tt.modify(&f)

			if got := ClotBurdenScore(f); got != tt.want {
				t.Errorf("ClotBurdenScore() = %v, want %v", got, tt.want)
			}
		})
	}
}
