package conflict

import (
	"testing"

	"github.com/matsen/docshelf/internal/reference"
)

func existingRefs() []reference.Reference {
	return []reference.Reference{
		{Filename: "Smith_Deep_Learning.pdf", Title: "Deep Learning", FileHash: "hash1"},
		{Filename: "Jones_Statistics.pdf", Title: "Statistics"},
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		stub      reference.Stub
		wantKinds []Kind
	}{
		{
			name:      "no conflicts",
			stub:      reference.Stub{Filename: "New_Title.pdf", FileHash: "hash9"},
			wantKinds: nil,
		},
		{
			name:      "hash duplicate with different filename",
			stub:      reference.Stub{Filename: "Other_Name.pdf", FileHash: "hash1"},
			wantKinds: []Kind{KindHashDuplicate},
		},
		{
			name:      "filename collision with unique hash",
			stub:      reference.Stub{Filename: "Jones_Statistics.pdf", FileHash: "hash9"},
			wantKinds: []Kind{KindFilenameCollision},
		},
		{
			name:      "both",
			stub:      reference.Stub{Filename: "Smith_Deep_Learning.pdf", FileHash: "hash1"},
			wantKinds: []Kind{KindHashDuplicate, KindFilenameCollision},
		},
		{
			name:      "empty hash ignored",
			stub:      reference.Stub{Filename: "New.pdf", FileHash: ""},
			wantKinds: nil,
		},
		{
			name:      "filename match is case-sensitive",
			stub:      reference.Stub{Filename: "smith_deep_learning.pdf", FileHash: "hash9"},
			wantKinds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.stub, existingRefs())
			if len(got) != len(tt.wantKinds) {
				t.Fatalf("Detect() returned %d conflicts, want %d: %+v", len(got), len(tt.wantKinds), got)
			}
			for i, c := range got {
				if c.Type != tt.wantKinds[i] {
					t.Errorf("conflict[%d].Type = %q, want %q", i, c.Type, tt.wantKinds[i])
				}
				if c.ExistingFilename == "" || c.Message == "" {
					t.Errorf("conflict[%d] missing descriptor fields: %+v", i, c)
				}
			}
		})
	}
}

func TestMatchHash_IgnoresEntriesWithoutHash(t *testing.T) {
	refs := []reference.Reference{{Filename: "a.pdf"}, {Filename: "b.pdf", FileHash: ""}}
	if got := MatchHash("", refs); got != nil {
		t.Errorf("MatchHash(\"\") = %+v, want nil", got)
	}
	if got := MatchHash("x", refs); got != nil {
		t.Errorf("MatchHash(x) = %+v, want nil", got)
	}
}

func TestMatchFilename(t *testing.T) {
	refs := existingRefs()
	if got := MatchFilename("Jones_Statistics.pdf", refs); got == nil || got.Title != "Statistics" {
		t.Errorf("MatchFilename() = %+v", got)
	}
	if got := MatchFilename("", refs); got != nil {
		t.Errorf("MatchFilename(\"\") = %+v, want nil", got)
	}
}
