package lcd

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mcdev12/chessclock/go/internal/display"
)

func TestBufferRendersBothRows(t *testing.T) {
	buf := NewBuffer(display.Columns, 40)

	if err := display.Render(buf, 40, -65*time.Second, 599*time.Second); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := [2]string{"Red         Blue", "-01:05     09:59"}
	if diff := cmp.Diff(want, buf.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferHomeOverwritesWithoutClearing(t *testing.T) {
	buf := NewBuffer(16, 40)
	_ = buf.Write("abcdef")
	_ = buf.Home()
	_ = buf.Write("XY")

	if got := buf.Rows()[0]; got != "XYcdef          " {
		t.Fatalf("row 1 = %q", got)
	}

	_ = buf.Clear()
	if got := buf.String(); got != "                \n                " {
		t.Fatalf("after clear = %q", got)
	}
}

func TestBufferCursorWrapsAndRejectsOutOfRange(t *testing.T) {
	buf := NewBuffer(16, 40)

	if err := buf.SetCursor(DDRAMSize); !errors.Is(err, ErrCursorRange) {
		t.Fatalf("expected ErrCursorRange, got %v", err)
	}

	if err := buf.SetCursor(DDRAMSize - 1); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}
	_ = buf.Write("ZA")
	if got := buf.Rows()[0]; got[0] != 'A' {
		t.Fatalf("expected write to wrap to cell 0, row 1 = %q", got)
	}
}
