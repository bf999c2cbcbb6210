// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relation

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	psalms, related := Extract(
		[][]string{{"2", "110"}, {"18"}},
		[][]string{{"Dan 7:28"}, {"2Sa 22:1", "1Ch 16:7"}},
	)

	if got := psalms[0]; !reflect.DeepEqual(got, []string{"Psa 2", "Psa 110"}) {
		t.Errorf("psalms[0] = %v, want bare numerals prefixed with Psa", got)
	}
	if got := psalms[1]; !reflect.DeepEqual(got, []string{"Psa 18"}) {
		t.Errorf("psalms[1] = %v, want [Psa 18]", got)
	}
	if got := related[1]; !reflect.DeepEqual(got, []string{"2Sa 22:1", "1Ch 16:7"}) {
		t.Errorf("related[1] = %v, source order not preserved", got)
	}
}

func TestExtractKeepsNonNumeralPsalmCitations(t *testing.T) {
	psalms, _ := Extract([][]string{{"Psa 90"}}, [][]string{{"Deu 33:1"}})
	if got := psalms[0]; !reflect.DeepEqual(got, []string{"Psa 90"}) {
		t.Errorf("psalms[0] = %v, want already-named citation stored as-is", got)
	}
}

func TestExtractRaggedLengths(t *testing.T) {
	tests := []struct {
		name     string
		psalms   [][]string
		related  [][]string
		wantRows int
	}{
		{
			name:     "related shorter",
			psalms:   [][]string{{"2"}, {"3"}, {"4"}},
			related:  [][]string{{"Dan 7:28"}},
			wantRows: 1,
		},
		{
			name:     "psalms shorter",
			psalms:   [][]string{{"2"}},
			related:  [][]string{{"Dan 7:28"}, {"Rev 19:15"}},
			wantRows: 1,
		},
		{
			name:     "both empty",
			psalms:   nil,
			related:  nil,
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			psalms, related := Extract(tt.psalms, tt.related)
			if len(psalms) != tt.wantRows || len(related) != tt.wantRows {
				t.Errorf("rows = (%d, %d), want %d on both sides",
					len(psalms), len(related), tt.wantRows)
			}
		})
	}
}

func TestExtractCopiesInput(t *testing.T) {
	relatedCell := []string{"Dan 7:28"}
	_, related := Extract([][]string{{"2"}}, [][]string{relatedCell})

	relatedCell[0] = "mutated"
	if related[0][0] != "Dan 7:28" {
		t.Error("Extract aliased the caller's slice instead of copying")
	}
}
