package sites

import (
	"testing"

	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/weather"
)

func TestProcessHidesInvalidInput(t *testing.T) {
	tn := NewTannery("Vats", nil, entropy.NewSource(1))
	res := tn.ProcessHides(0, 2.0)
	if !res.Err {
		t.Fatalf("zero hides: got %+v, want Err", res)
	}
}

func TestProcessHidesCapacityCap(t *testing.T) {
	tn := NewTannery("Vats", nil, entropy.NewSource(1))

	first := tn.ProcessHides(8, 3.0)
	if first.Err || first.HidesUsed != 8 {
		t.Fatalf("first shift: %+v, want 8 hides used", first)
	}
	if first.Leather > first.HidesUsed {
		t.Fatalf("leather %d exceeds hides used %d", first.Leather, first.HidesUsed)
	}

	second := tn.ProcessHides(8, 3.0)
	if second.HidesUsed != tanneryDailyCapacity-8 {
		t.Fatalf("second shift used %d, want remaining capacity %d",
			second.HidesUsed, tanneryDailyCapacity-8)
	}

	third := tn.ProcessHides(1, 3.0)
	if third.HidesUsed != 0 || third.Err {
		t.Fatalf("at capacity: %+v, want plain zero-use result", third)
	}
}

func TestUpdateDailyResetsCapacityAndFreeze(t *testing.T) {
	tn := NewTannery("Vats", nil, entropy.NewSource(1))
	tn.ProcessHides(tanneryDailyCapacity, 1.0)
	if tn.RemainingCapacity() != 0 {
		t.Fatal("capacity not exhausted")
	}

	tn.UpdateDaily(weather.Snapshot{Season: weather.Spring, Temperature: 12})
	if tn.RemainingCapacity() != tanneryDailyCapacity {
		t.Fatalf("capacity = %d after reset, want %d", tn.RemainingCapacity(), tanneryDailyCapacity)
	}
	if !tn.Operational {
		t.Fatal("mild day left the vats frozen")
	}

	tn.UpdateDaily(weather.Snapshot{Season: weather.Winter, Temperature: -10})
	if tn.Operational {
		t.Fatal("deep cold did not stop the vats")
	}
	res := tn.ProcessHides(3, 1.0)
	if res.HidesUsed != 0 || res.Leather != 0 {
		t.Fatalf("frozen tannery processed hides: %+v", res)
	}
}

func TestTanneryEffluentPollutesRiver(t *testing.T) {
	src := entropy.NewSource(1)
	river := NewRiver("Downstream", src)
	tn := NewTannery("Vats", river, src)
	before := river.Pollution

	tn.ProcessHides(10, 2.0)
	if river.Pollution <= before {
		t.Fatalf("pollution %f did not rise from %f", river.Pollution, before)
	}
}
