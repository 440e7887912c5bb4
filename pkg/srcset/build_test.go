package srcset

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"
)

// stubClock replaces the package clock for the duration of a test and
// advances by one millisecond on every sample.
func stubClock(t *testing.T, startMillis int64) {
	t.Helper()
	orig := now
	current := startMillis
	now = func() time.Time {
		ts := time.UnixMilli(current)
		current++
		return ts
	}
	t.Cleanup(func() { now = orig })
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		sizes   SizeMap
		context string
		want    string
	}{
		{
			name:    "Empty",
			sizes:   SizeMap{},
			context: ContextTile,
			want:    "",
		},
		{
			name:    "Nil",
			sizes:   nil,
			context: ContextTile,
			want:    "",
		},
		{
			name:    "SingleEntry",
			sizes:   SizeMap{LowMin: "a.jpg"},
			context: ContextTile,
			want:    "a.jpg 145w",
		},
		{
			name: "FullTileTable",
			sizes: SizeMap{
				LowMin: "a.jpg", LowMid: "b.jpg", LowMax: "c.jpg",
				HighMin: "d.jpg", HighMid: "e.jpg", HighMax: "f.jpg",
			},
			context: ContextTile,
			want:    "a.jpg 145w, b.jpg 220w, c.jpg 280w, d.jpg 290w, e.jpg 440w, f.jpg 560w",
		},
		{
			name:    "SparseKeysKeepCanonicalOrder",
			sizes:   SizeMap{HighMin: "d.jpg", LowMax: "c.jpg", LowMin: "a.jpg"},
			context: ContextTile,
			want:    "a.jpg 145w, c.jpg 280w, d.jpg 290w",
		},
		{
			name:    "NarrowTable",
			sizes:   SizeMap{LowMin: "a.jpg", HighMax: "f.jpg"},
			context: ContextNarrow,
			want:    "a.jpg 360w, f.jpg 960w",
		},
		{
			name:    "UnknownContextFallsBackToNarrow",
			sizes:   SizeMap{LowMin: "a.jpg"},
			context: "billboard",
			want:    "a.jpg 360w",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.sizes, tt.context, false); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildWidthsNonDecreasing(t *testing.T) {
	sizes := SizeMap{
		LowMin: "a", LowMid: "b", LowMax: "c",
		HighMin: "d", HighMid: "e", HighMax: "f",
	}
	for _, context := range Contexts() {
		out := Build(sizes, context, false)
		prev := 0
		for _, desc := range strings.Split(out, ", ") {
			fields := strings.Fields(desc)
			if len(fields) != 2 {
				t.Fatalf("context %q: malformed descriptor %q", context, desc)
			}
			w, err := strconv.Atoi(strings.TrimSuffix(fields[1], "w"))
			if err != nil {
				t.Fatalf("context %q: bad width in %q: %v", context, desc, err)
			}
			if w < prev {
				t.Errorf("context %q: width %d follows %d", context, w, prev)
			}
			prev = w
		}
	}
}

func TestBuildCacheBust(t *testing.T) {
	stubClock(t, 1700000000000)

	got := Build(SizeMap{LowMin: "a.jpg"}, ContextTile, true)
	want := "a.jpg?timestamp=1700000000000 145w"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}

	// Existing query strings are extended, not duplicated.
	got = Build(SizeMap{LowMin: "a.jpg?v=2"}, ContextTile, true)
	want = "a.jpg?v=2&timestamp=1700000000001 145w"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

// The freshness timestamp is sampled once per descriptor, not once per call.
// This test pins that behavior; a switch to a single shared sample per call
// is a contract change and must fail here.
func TestBuildCacheBustSamplesPerDescriptor(t *testing.T) {
	stubClock(t, 1700000000000)

	got := Build(SizeMap{LowMin: "a.jpg", HighMin: "b.jpg"}, ContextTile, true)
	want := fmt.Sprintf("a.jpg?timestamp=%d 145w, b.jpg?timestamp=%d 290w",
		1700000000000, 1700000000001)
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}
