package cli

import (
	"testing"

	"github.com/mlorenz/picset/pkg/srcset"
)

func TestFormatWidths(t *testing.T) {
	got := formatWidths(srcset.Table("tile"))
	want := "lowMin=145w lowMid=220w lowMax=280w highMin=290w highMid=440w highMax=560w"
	if got != want {
		t.Errorf("formatWidths = %q, want %q", got, want)
	}
}
