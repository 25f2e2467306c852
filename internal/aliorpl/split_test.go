package aliorpl

import (
	"errors"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	input := "\ufeffa;b;c\r\n\"x;y\";2;3\n\nlast;;\n"

	var got []Record
	for rec, err := range Split(strings.NewReader(input)) {
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		got = append(got, rec)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].Fields[0] != "a" || got[0].Line != 1 {
		t.Fatalf("unexpected first record: %+v", got[0])
	}
	if got[1].Fields[0] != "x;y" || len(got[1].Fields) != 3 {
		t.Fatalf("unexpected quoted record: %+v", got[1])
	}
	if got[2].Line != 4 || len(got[2].Fields) != 3 || got[2].Fields[2] != "" {
		t.Fatalf("unexpected last record: %+v", got[2])
	}
}

func TestSplitStopsEarly(t *testing.T) {
	count := 0
	for range Split(strings.NewReader("1;2\n3;4\n5;6\n")) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestSplitReadError(t *testing.T) {
	for _, err := range Split(failingReader{}) {
		if err == nil || !strings.Contains(err.Error(), "disk gone") {
			t.Fatalf("expected read error, got %v", err)
		}
		return
	}
	t.Fatal("expected one error from the sequence")
}

func TestSplitSkipsBlankLines(t *testing.T) {
	var lines []int
	for rec, err := range Split(strings.NewReader("a;1\n\n\r\nb;2\n")) {
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		lines = append(lines, rec.Line)
	}
	if len(lines) != 2 || lines[0] != 1 || lines[1] != 4 {
		t.Fatalf("lines = %v, want [1 4]", lines)
	}
}
