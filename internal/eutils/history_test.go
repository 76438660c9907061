package eutils

import "testing"

func Test_History(t *testing.T) {
	h := &History{}
	if h.Active() {
		t.Error("zero-value history reports active")
	}

	h.SaveSearch("MCID_a", 1, "pubmed", "p53", 42)
	h.SavePost("MCID_a", 2, "protein", 10)

	if !h.Active() || h.WebEnv != "MCID_a" || h.QueryKey != 2 {
		t.Errorf("history = %+v", h)
	}
	if len(h.Log) != 2 {
		t.Fatalf("log holds %d entries, want 2", len(h.Log))
	}
	if h.Log[0].Operation != "search" || h.Log[0].Term != "p53" || h.Log[0].Count != 42 {
		t.Errorf("search entry = %+v", h.Log[0])
	}
	if h.Log[1].Operation != "post" || h.Log[1].Database != "protein" || h.Log[1].Count != 10 {
		t.Errorf("post entry = %+v", h.Log[1])
	}

	if entry := h.EntryByKey(1); entry == nil || entry.Database != "pubmed" {
		t.Errorf("EntryByKey(1) = %+v", entry)
	}
	if entry := h.EntryByKey(99); entry != nil {
		t.Errorf("EntryByKey(99) = %+v", entry)
	}

	h.Clear()
	if h.Active() || len(h.Log) != 2 {
		t.Errorf("after Clear: %+v", h)
	}

	h.ClearAll()
	if h.Log != nil {
		t.Errorf("after ClearAll the log remains: %+v", h.Log)
	}
}

func Test_CombineQueries(t *testing.T) {
	type args struct {
		keys     []int
		operator string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{
			name: "two keys AND",
			args: args{keys: []int{1, 2}, operator: "AND"},
			want: "#1 AND #2",
		},
		{
			name: "three keys OR",
			args: args{keys: []int{1, 2, 5}, operator: "OR"},
			want: "#1 OR #2 OR #5",
		},
		{
			name:    "single key",
			args:    args{keys: []int{1}, operator: "AND"},
			wantErr: true,
		},
		{
			name:    "no keys",
			args:    args{operator: "AND"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineQueries(tt.args.keys, tt.args.operator)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CombineQueries() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CombineQueries() = %q, want %q", got, tt.want)
			}
		})
	}
}
