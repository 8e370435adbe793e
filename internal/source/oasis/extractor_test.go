package oasis

import (
	"testing"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

func row(patientID, episodeNo, idValue string) model.EpisodeRow {
	return model.EpisodeRow{
		PatientID: patientID,
		EpisodeNo: episodeNo,
		IDValue:   &idValue,
	}
}

func TestGroupEpisodeRows(t *testing.T) {
	rows := []model.EpisodeRow{
		row("P-1", "EP-1", "a"),
		row("P-1", "EP-1", "b"),
		row("P-1", "EP-2", "c"),
		row("P-2", "EP-2", "d"),
		row("P-2", "EP-3", "e"),
		row("P-2", "EP-3", "f"),
		row("P-2", "EP-3", "g"),
	}

	groups := groupEpisodeRows(rows)
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}
	wantSizes := []int{2, 1, 1, 3}
	for i, g := range groups {
		if len(g) != wantSizes[i] {
			t.Errorf("group %d has %d rows, want %d", i, len(g), wantSizes[i])
		}
		for _, r := range g[1:] {
			if r.PatientID != g[0].PatientID || r.EpisodeNo != g[0].EpisodeNo {
				t.Errorf("group %d mixes keys: %s/%s and %s/%s",
					i, g[0].PatientID, g[0].EpisodeNo, r.PatientID, r.EpisodeNo)
			}
		}
	}
	// The same episode number under a different patient is a distinct group.
	if groups[1][0].PatientID == groups[2][0].PatientID {
		t.Error("episode EP-2 of P-1 and P-2 collapsed into one group")
	}
	// Order within the trailing group survives.
	if got := *groups[3][2].IDValue; got != "g" {
		t.Errorf("final group lost row order, last value %q", got)
	}
}

func TestGroupEpisodeRows_SingleAndTrailingGroups(t *testing.T) {
	// A lone final row must still come out as its own group.
	groups := groupEpisodeRows([]model.EpisodeRow{
		row("P-1", "EP-1", "a"),
		row("P-1", "EP-1", "b"),
		row("P-9", "EP-9", "z"),
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	last := groups[len(groups)-1]
	if len(last) != 1 || last[0].EpisodeNo != "EP-9" {
		t.Errorf("trailing single-row group dropped: %+v", last)
	}

	if groups := groupEpisodeRows([]model.EpisodeRow{row("P-1", "EP-1", "a")}); len(groups) != 1 {
		t.Errorf("single input row should yield one group, got %d", len(groups))
	}
}

func TestGroupEpisodeRows_Empty(t *testing.T) {
	if groups := groupEpisodeRows(nil); len(groups) != 0 {
		t.Errorf("no input rows should yield no groups, got %d", len(groups))
	}
}
