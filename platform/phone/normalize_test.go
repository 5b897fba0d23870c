package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"local indonesian", "081234567890", "+6281234567890"},
		{"already e164", "+6281234567890", "+6281234567890"},
		{"with separators", "0812-3456-7890", "+6281234567890"},
		{"surrounding whitespace", "  081234567890 ", "+6281234567890"},
		{"unparseable kept trimmed", " bukan nomor ", "bukan nomor"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input); got != tc.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("+62 812-3456-7890"); got != "6281234567890" {
		t.Fatalf("Digits = %q, want 6281234567890", got)
	}
	if got := Digits("abc"); got != "" {
		t.Fatalf("Digits on non-numeric input = %q, want empty", got)
	}
}

func TestDigitsMasksFormattingDifferences(t *testing.T) {
	a := Digits(NormalizeE164("081234567890"))
	b := Digits("+62 812 3456 7890")
	if a != b {
		t.Fatalf("expected same digits for both spellings, got %q and %q", a, b)
	}
}
