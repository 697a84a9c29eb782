package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Modality", "Hits", "Accuracy"}
	rows := [][]string{
		{"position", "3", "87.5%"},
		{"letter", "12", "9.0%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Modality Hits Accuracy" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "position    3    87.5%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "letter     12     9.0%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"L", "n"}, [][]string{{"字", "1"}}, nil)
	if lines[0] != "L  n" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "字 1" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
