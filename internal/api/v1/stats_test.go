package v1

import "testing"

func TestCountersClone(t *testing.T) {
	messages, guests := int64(11), int64(2)
	orig := Counters{
		DailyMessages:          &messages,
		DailyUserTypeGuest:     &guests,
		DailyActiveHomeservers: 2,
		TotalMessages:          40,
	}

	clone := orig.Clone()
	*clone.DailyMessages = 0
	*clone.DailyUserTypeGuest = 0

	if *orig.DailyMessages != 11 || *orig.DailyUserTypeGuest != 2 {
		t.Fatalf("clone shares counters with the original: %d, %d", *orig.DailyMessages, *orig.DailyUserTypeGuest)
	}
	if clone.DailyActiveHomeservers != 2 || clone.TotalMessages != 40 {
		t.Fatalf("scalar fields not copied: %+v", clone)
	}
	if clone.TotalUsers != nil {
		t.Fatal("nil counter must stay nil")
	}
}
