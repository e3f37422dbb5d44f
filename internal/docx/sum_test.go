package docx

import (
	"strings"
	"testing"
)

func TestSumColumn(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		idx  int
		want float64
	}{
		{
			name: "empty cells count as zero",
			rows: [][]string{{"a", "10.5"}, {"b", ""}, {"c", "4.25"}},
			idx:  1,
			want: 14.75,
		},
		{
			name: "ragged rows skip missing cells",
			rows: [][]string{{"a", "100"}, {"b"}, {"c", "50"}},
			idx:  1,
			want: 150,
		},
		{
			name: "rounds to two decimals",
			rows: [][]string{{"0.105"}, {"0.105"}},
			idx:  0,
			want: 0.21,
		},
		{
			name: "no rows",
			rows: nil,
			idx:  0,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SumColumn(tt.rows, tt.idx)
			if err != nil {
				t.Fatalf("SumColumn failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSumColumn_NonNumericCell(t *testing.T) {
	_, err := SumColumn([][]string{{"ten"}}, 0)
	if err == nil {
		t.Fatal("expected error for non-numeric cell")
	}
	if !strings.Contains(err.Error(), `"ten"`) {
		t.Errorf("error should name the bad value: %v", err)
	}
}
