package cards

import (
	"errors"
	"testing"
	"time"
)

func TestValidNumber(t *testing.T) {
	valid := []string{
		"4242424242424242",
		"4111 1111 1111 1111",
		"5555-5555-5555-4444",
		"378282246310005",  // amex
		"6011111111111117", // discover
		"2200000000000004", // mir
	}
	for _, n := range valid {
		if !ValidNumber(n) {
			t.Errorf("ValidNumber(%q) = false, want true", n)
		}
	}

	invalid := []string{
		"",
		"abcd",
		"4242424242424241", // испорчена последняя цифра
		"1234567890123456",
	}
	for _, n := range invalid {
		if ValidNumber(n) {
			t.Errorf("ValidNumber(%q) = true, want false", n)
		}
	}
}

func TestValidNumberPerturbation(t *testing.T) {
	// меняем любую одну цифру валидного номера — Лун должен ломаться
	base := "4242424242424242"
	for i := 0; i < len(base); i++ {
		d := base[i] - '0'
		mutated := []byte(base)
		mutated[i] = byte('0' + (d+1)%10)
		if ValidNumber(string(mutated)) {
			t.Errorf("mutated %q at pos %d still passes Luhn", string(mutated), i)
		}
	}
}

func TestValidExpiry(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		month, year int
		want        bool
	}{
		{"future year", 1, 2027, true},
		{"current month", 6, 2026, true}, // действительна до конца месяца
		{"last month", 5, 2026, false},
		{"past year", 12, 2025, false},
		{"month zero", 0, 2027, false},
		{"month thirteen", 13, 2027, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidExpiry(tc.month, tc.year, now); got != tc.want {
				t.Errorf("ValidExpiry(%d, %d) = %v, want %v", tc.month, tc.year, got, tc.want)
			}
		})
	}
}

func TestValidExpiryEndOfMonth(t *testing.T) {
	// последняя секунда месяца — ещё действительна
	now := time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)
	if !ValidExpiry(6, 2026, now) {
		t.Error("card should be valid through the last second of its month")
	}
	// первая секунда следующего месяца — уже нет
	now = time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	if ValidExpiry(6, 2026, now) {
		t.Error("card should be expired on the first second of the next month")
	}
}

func TestDetectBrand(t *testing.T) {
	cases := []struct {
		number string
		want   Brand
	}{
		{"4242424242424242", BrandVisa},
		{"4111111111111111", BrandVisa},
		{"5555555555554444", BrandMastercard},
		{"378282246310005", BrandAmex},
		{"371449635398431", BrandAmex},
		{"6011111111111117", BrandDiscover},
		{"6511111111111119", BrandDiscover},
		{"2200000000000004", BrandMir},
		{"2204000000000004", BrandMir},
		{"2205000000000003", BrandUnknown}, // вне диапазона 2200-2204
		{"1234567890123456", BrandUnknown},
		{"", BrandUnknown},
		{"garbage", BrandUnknown},
	}
	for _, tc := range cases {
		if got := DetectBrand(tc.number); got != tc.want {
			t.Errorf("DetectBrand(%q) = %q, want %q", tc.number, got, tc.want)
		}
	}
}

func TestDetectBrandIgnoresSeparators(t *testing.T) {
	if got := DetectBrand("4242 4242 4242 4242"); got != BrandVisa {
		t.Errorf("DetectBrand with spaces = %q, want visa", got)
	}
}

func TestLastFour(t *testing.T) {
	last4, err := LastFour("4242 4242 4242 4242")
	if err != nil {
		t.Fatalf("LastFour: %v", err)
	}
	if last4 != "4242" {
		t.Errorf("LastFour = %q, want 4242", last4)
	}

	if _, err := LastFour("123"); !errors.Is(err, ErrInvalidCardNumber) {
		t.Errorf("LastFour on short input: err = %v, want ErrInvalidCardNumber", err)
	}
}
