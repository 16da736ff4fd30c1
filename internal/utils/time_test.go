package utils

import "testing"

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if FormatDate(d) != "2025-06-01" {
		t.Fatalf("round-trip got %s", FormatDate(d))
	}
	if _, err := ParseDate("01/06/2025"); err == nil {
		t.Fatal("expected error for wrong layout")
	}
	if _, err := ParseDate("2025-02-30"); err == nil {
		t.Fatal("expected error for impossible date")
	}
}

func TestInclusiveDays(t *testing.T) {
	cases := []struct {
		start, end string
		want       int64
	}{
		{"2025-06-01", "2025-06-03", 3},
		{"2025-06-01", "2025-06-01", 1},
		{"2025-06-01", "2025-06-30", 30},
	}
	for _, c := range cases {
		s, _ := ParseDate(c.start)
		e, _ := ParseDate(c.end)
		if got := InclusiveDays(s, e); got != c.want {
			t.Errorf("InclusiveDays(%s,%s) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

// A three-day rental at $50.00/day costs exactly $150.00.
func TestPriceArithmeticExact(t *testing.T) {
	s, _ := ParseDate("2025-06-01")
	e, _ := ParseDate("2025-06-03")
	total := ToCents(50.00) * InclusiveDays(s, e)
	if FormatAmount(total) != "$150.00" {
		t.Fatalf("got %s, want $150.00", FormatAmount(total))
	}
}
