package seqtools

import (
	"math"
	"testing"
)

func Test_Translate(t *testing.T) {
	type args struct {
		seq      string
		code     int
		useStart bool
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			"stop at first in-frame stop codon",
			args{"ATGAAGTGA", 1, true},
			"MK*",
		},
		{
			"find downstream start codon",
			args{"CCATGAAA", 1, true},
			"MK",
		},
		{
			"translate from position zero without start search",
			args{"AAGTTT", 1, false},
			"KF",
		},
		{
			"tolerate RNA input",
			args{"AUGAAGUGA", 1, true},
			"MK*",
		},
		{
			"unknown codons become X",
			args{"ATGNNNAAA", 1, true},
			"MXK",
		},
		{
			"unknown genetic code falls back to the standard table",
			args{"ATGAAGTGA", 99, true},
			"MK*",
		},
		{
			"empty sequence",
			args{"", 1, true},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(tt.args.seq, tt.args.code, tt.args.useStart); got != tt.want {
				t.Errorf("Translate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_ReverseComplement(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want string
	}{
		{"plain DNA", "ATGC", "GCAT"},
		{"preserves case", "atGC", "GCat"},
		{"ambiguity codes", "RYSWKMBVDH", "DHBVKMWSRY"},
		{"unknown symbols pass through", "AT-GC", "GC-AT"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReverseComplement(tt.seq); got != tt.want {
				t.Errorf("ReverseComplement() = %v, want %v", got, tt.want)
			}
		})
	}

	// involution over plain DNA
	seqs := []string{"A", "ACGT", "GATTACA", "CCCGGGTTTAAA"}
	for _, seq := range seqs {
		if got := ReverseComplement(ReverseComplement(seq)); got != seq {
			t.Errorf("ReverseComplement is not an involution for %s: got %s", seq, got)
		}
	}
}

func Test_GC(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want float64
	}{
		{"empty sequence is 0", "", 0.0},
		{"all GC", "GGCC", 100.0},
		{"no GC", "ATAT", 0.0},
		{"half", "ATGC", 50.0},
		{"lower case counts", "atgc", 50.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GC(tt.seq); got != tt.want {
				t.Errorf("GC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Compose(t *testing.T) {
	comp := Compose("AATGCU")

	if comp.Length != 6 {
		t.Errorf("Length = %d, want 6", comp.Length)
	}
	if comp.A != 2 {
		t.Errorf("A = %d, want 2", comp.A)
	}
	if comp.T != 2 { // U counts as T
		t.Errorf("T = %d, want 2", comp.T)
	}
	if comp.G != 1 || comp.C != 1 {
		t.Errorf("G, C = %d, %d, want 1, 1", comp.G, comp.C)
	}
	if math.Abs(comp.GCPercent+comp.ATPercent-100) > 1e-9 {
		t.Errorf("GC%% + AT%% = %f, want 100", comp.GCPercent+comp.ATPercent)
	}

	if empty := Compose(""); empty.Length != 0 {
		t.Errorf("Compose(\"\").Length = %d, want 0", empty.Length)
	}
}

func Test_MeltingTemp(t *testing.T) {
	// Wallace rule below 14 bases: 2*(A+T) + 4*(G+C)
	if got := MeltingTemp("ATGC"); got != 12 {
		t.Errorf("MeltingTemp(ATGC) = %f, want 12", got)
	}

	// GC-based estimate at 14 bases and above
	seq := "ATGCATGCATGCAT" // 14 bases, 42.857% GC
	want := 64.9 + 41*(GC(seq)-16.4)/14
	if got := MeltingTemp(seq); math.Abs(got-want) > 1e-9 {
		t.Errorf("MeltingTemp(%s) = %f, want %f", seq, got, want)
	}
}

func Test_FindRestrictionSites(t *testing.T) {
	seq := "AAGAATTCTTGGATCCAAGAATTCTT"

	sites, err := FindRestrictionSites(seq, map[string]string{
		"EcoRI":  "GAATTC",
		"BamHI":  "GGATCC",
		"NotI":   "GCGGCCGC",
		"FauxNI": "GGANTC",
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := sites["EcoRI"]; len(got) != 2 || got[0] != 2 || got[1] != 18 {
		t.Errorf("EcoRI positions = %v, want [2 18]", got)
	}
	if got := sites["BamHI"]; len(got) != 1 || got[0] != 10 {
		t.Errorf("BamHI positions = %v, want [10]", got)
	}
	if _, found := sites["NotI"]; found {
		t.Error("NotI should be omitted with zero hits")
	}
	if _, found := sites["FauxNI"]; found {
		t.Error("FauxNI should be omitted with zero hits")
	}
}

func Test_FindRestrictionSites_ambiguity(t *testing.T) {
	// GRATYC: R = A|G, Y = C|T
	sites, err := FindRestrictionSites("TTGAATCCTT", map[string]string{"Amb": "GRATYC"})
	if err != nil {
		t.Fatal(err)
	}
	if got := sites["Amb"]; len(got) != 1 || got[0] != 2 {
		t.Errorf("ambiguous site positions = %v, want [2]", got)
	}
}
