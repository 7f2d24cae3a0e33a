package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}

	h.Append(d1, "overwritten")
	if h.Len() != 2 {
		t.Errorf("Append on existing day changed Len() to %v want 2", h.Len())
	}
	if v, _ := h.Get(d1); v != "overwritten" {
		t.Errorf("Get(d1) = %q want %q", v, "overwritten")
	}
}

func TestFirstInYear(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2020, 12, 31), 1).Append(New(2021, 1, 4), 2).Append(New(2021, 1, 5), 3).Append(New(2023, 6, 1), 4)

	if d, ok := h.FirstInYear(2021); !ok || d != New(2021, 1, 4) {
		t.Errorf("FirstInYear(2021) = %v, %v want 2021-01-04, true", d, ok)
	}
	if d, ok := h.FirstInYear(2023); !ok || d != New(2023, 6, 1) {
		t.Errorf("FirstInYear(2023) = %v, %v want 2023-06-01, true", d, ok)
	}
	if _, ok := h.FirstInYear(2022); ok {
		t.Errorf("FirstInYear(2022) found a date in a year without data")
	}
	if _, ok := h.FirstInYear(2024); ok {
		t.Errorf("FirstInYear(2024) found a date after the history")
	}
}

func TestFirstLatest(t *testing.T) {
	h := new(History[string])
	if d, v := h.First(); !d.IsZero() || v != "" {
		t.Errorf("empty First() = %v, %q", d, v)
	}
	h.Append(New(2021, 1, 1), "b").Append(New(2020, 1, 1), "a")
	if d, v := h.First(); d != New(2020, 1, 1) || v != "a" {
		t.Errorf("First() = %v, %q", d, v)
	}
	if d, v := h.Latest(); d != New(2021, 1, 1) || v != "b" {
		t.Errorf("Latest() = %v, %q", d, v)
	}
}
