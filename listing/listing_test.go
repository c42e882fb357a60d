package listing_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsariola/notecomp"
	"github.com/vsariola/notecomp/listing"
)

func TestRender(t *testing.T) {
	l, err := listing.New(10)
	if err != nil {
		t.Fatal(err)
	}
	sheet := &notecomp.Sheet{Items: []notecomp.Item{
		{X: 0, Y: 670, Width: 100, Instrument: "Piano"},
		{Selected: true, Group: []notecomp.Item{
			{X: 100, Y: 660, Width: 50, Instrument: "Violin"},
			{X: 150.5, Y: 650, Width: 50, Instrument: "Violin"},
		}},
	}}
	var buf bytes.Buffer
	if err := l.Render(&buf, "my song", sheet); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"My Song\n=======\n",
		"group of 2 *\n",
		"  ",
		"at 150.5 for 50 on Violin\n",
		"at 0 for 100 on Piano\n",
		"3 notes\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing does not contain %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "\n  ") != 2 {
		t.Errorf("expected the two group members to be indented:\n%s", out)
	}
}

func TestNewFromTemplates(t *testing.T) {
	dir := t.TempDir()
	tmpl := `{{ .Title }}: {{ .NumNotes }}`
	if err := os.WriteFile(filepath.Join(dir, "listing.txt"), []byte(tmpl), 0644); err != nil {
		t.Fatal(err)
	}
	l, err := listing.NewFromTemplates(10, dir)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	sheet := &notecomp.Sheet{Items: []notecomp.Item{{Instrument: "Piano", Width: 1}}}
	if err := l.Render(&buf, "x", sheet); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "x: 1" {
		t.Fatalf("got %q", buf.String())
	}
}
