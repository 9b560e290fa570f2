package config

import (
	"testing"
)

func TestGetEnvSliceTrimsEntries(t *testing.T) {
	t.Setenv("TEST_SLICE", "2026-08-17, 2026-12-25 ,  2027-01-01")

	got := getEnvSlice("TEST_SLICE")
	want := []string{"2026-08-17", "2026-12-25", "2027-01-01"}
	if len(got) != len(want) {
		t.Fatalf("getEnvSlice returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetEnvSliceDropsEmptyEntries(t *testing.T) {
	t.Setenv("TEST_SLICE", "2026-08-17,, ,2026-12-25,")

	got := getEnvSlice("TEST_SLICE")
	if len(got) != 2 || got[0] != "2026-08-17" || got[1] != "2026-12-25" {
		t.Fatalf("getEnvSlice returned %v, want [2026-08-17 2026-12-25]", got)
	}
}

func TestGetEnvSliceUnset(t *testing.T) {
	t.Setenv("TEST_SLICE", "")

	if got := getEnvSlice("TEST_SLICE"); len(got) != 0 {
		t.Fatalf("getEnvSlice returned %v, want empty", got)
	}
}

func TestLoadPublicHolidaysSkipsUnparsableDates(t *testing.T) {
	t.Setenv("PUBLIC_HOLIDAYS", "2026-08-17, not-a-date, 2026-12-25")

	got := loadPublicHolidays()
	if len(got) != 2 || got[0] != "2026-08-17" || got[1] != "2026-12-25" {
		t.Fatalf("loadPublicHolidays returned %v, want [2026-08-17 2026-12-25]", got)
	}
}
