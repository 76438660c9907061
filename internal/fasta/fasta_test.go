package fasta

import (
	"strings"
	"testing"
)

func Test_Parse(t *testing.T) {
	type args struct {
		content string
	}
	tests := []struct {
		name string
		args args
		want []Record
	}{
		{
			"two plain records",
			args{">seq1 first sequence\nATGC\nGGTT\n>seq2\nAACC\n"},
			[]Record{
				{
					Header:      "seq1 first sequence",
					Accession:   "seq1",
					Description: "first sequence",
					Seq:         "ATGCGGTT",
				},
				{
					Header:    "seq2",
					Accession: "seq2",
					Seq:       "AACC",
				},
			},
		},
		{
			"ncbi pipe-delimited header",
			args{">gi|12345|ref|NM_000546.6|tumor protein p53\nATGC\n"},
			[]Record{
				{
					Header:      "gi|12345|ref|NM_000546.6|tumor protein p53",
					Accession:   "NM_000546.6",
					Description: "tumor protein p53",
					GI:          "12345",
					Database:    "ref",
					Seq:         "ATGC",
				},
			},
		},
		{
			"content before the first header is discarded",
			args{"junk line\nACGT\n>seq1\nATGC\n"},
			[]Record{
				{Header: "seq1", Accession: "seq1", Seq: "ATGC"},
			},
		},
		{
			"blank lines inside a record are skipped",
			args{">seq1\nAT\n\nGC\n"},
			[]Record{
				{Header: "seq1", Accession: "seq1", Seq: "ATGC"},
			},
		},
		{
			"empty input",
			args{""},
			nil,
		},
		{
			"header with no sequence still yields a record",
			args{">empty record\n"},
			[]Record{
				{Header: "empty record", Accession: "empty", Description: "record"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.args.content)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() returned %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Parse()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func Test_ParseReader(t *testing.T) {
	content := ">seq1\nATGC\n>seq2\nGGTT\n>seq3\nAACC\n"

	var streamed []Record
	err := ParseReader(strings.NewReader(content), func(rec Record) error {
		streamed = append(streamed, rec)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	batch := Parse(content)
	if len(streamed) != len(batch) {
		t.Fatalf("streamed %d records, batch parsed %d", len(streamed), len(batch))
	}
	for i := range batch {
		if streamed[i] != batch[i] {
			t.Errorf("record %d: streamed %+v, batch %+v", i, streamed[i], batch[i])
		}
	}
}

func Test_Format_roundTrip(t *testing.T) {
	rec := NewRecord("NM_000546.6 tumor protein p53", strings.Repeat("ATGCCGTTAGCAACGGATCA", 12))

	for _, width := range []int{10, 60, 70, 80, 1000} {
		parsed := Parse(rec.Format(width))
		if len(parsed) != 1 {
			t.Fatalf("round trip at width %d produced %d records", width, len(parsed))
		}
		if parsed[0].Seq != rec.Seq {
			t.Errorf("round trip at width %d changed the sequence", width)
		}
		if parsed[0].Header != rec.Header {
			t.Errorf("round trip at width %d changed the header", width)
		}
	}
}

func Test_Record_derived(t *testing.T) {
	rec := NewRecord("seq1", "ATGAAGTGA")

	if got := rec.Translate(1); got != "MK*" {
		t.Errorf("Translate() = %v, want MK*", got)
	}
	if got := rec.ReverseComplement(); got != "TCACTTCAT" {
		t.Errorf("ReverseComplement() = %v, want TCACTTCAT", got)
	}
	if got := NewRecord("gc", "GGCC").GC(); got != 100.0 {
		t.Errorf("GC() = %v, want 100", got)
	}
	if got := NewRecord("empty", "").GC(); got != 0.0 {
		t.Errorf("GC() on empty = %v, want 0", got)
	}
}

func Test_FilterByLength(t *testing.T) {
	records := []Record{
		NewRecord("a", "AT"),
		NewRecord("b", "ATGCAT"),
		NewRecord("c", "ATGCATGCAT"),
	}

	if got := FilterByLength(records, 3, 0); len(got) != 2 {
		t.Errorf("FilterByLength(min 3) kept %d records, want 2", len(got))
	}
	if got := FilterByLength(records, 3, 8); len(got) != 1 || got[0].Accession != "b" {
		t.Errorf("FilterByLength(min 3, max 8) = %v, want just b", got)
	}
}

func Test_Summarize(t *testing.T) {
	records := []Record{
		NewRecord("a", "AT"),
		NewRecord("b", "ATGCAT"),
		NewRecord("c", "ATGCATGCAT"),
	}

	stats := Summarize(records)
	if stats.Count != 3 || stats.TotalLength != 18 {
		t.Errorf("Count, TotalLength = %d, %d, want 3, 18", stats.Count, stats.TotalLength)
	}
	if stats.MinLength != 2 || stats.MaxLength != 10 {
		t.Errorf("MinLength, MaxLength = %d, %d, want 2, 10", stats.MinLength, stats.MaxLength)
	}
	if stats.MeanLength != 6 || stats.MedianLength != 6 {
		t.Errorf("MeanLength, MedianLength = %f, %d, want 6, 6", stats.MeanLength, stats.MedianLength)
	}

	if empty := Summarize(nil); empty.Count != 0 {
		t.Errorf("Summarize(nil).Count = %d, want 0", empty.Count)
	}
}

func Test_ReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/test.fasta"

	records := []Record{
		NewRecord("seq1 first", strings.Repeat("ATGC", 30)),
		NewRecord("seq2 second", "AACCGGTT"),
	}

	if err := WriteFile(path, records, 70); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadFile() returned %d records, want 2", len(got))
	}
	for i := range records {
		if got[i].Seq != records[i].Seq || got[i].Header != records[i].Header {
			t.Errorf("record %d did not survive the file round trip", i)
		}
	}

	if _, err := ReadFile(dir + "/missing.fasta"); err == nil {
		t.Error("ReadFile() on a missing file should error")
	}
}
