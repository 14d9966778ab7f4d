package cards

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var ErrInvalidCardNumber = errors.New("invalid card number")

type Brand string

const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "mastercard"
	BrandAmex       Brand = "amex"
	BrandDiscover   Brand = "discover"
	BrandMir        Brand = "mir"
	BrandUnknown    Brand = "unknown"
)

// порядок важен: первый совпавший паттерн выигрывает
var brandPatterns = []struct {
	brand Brand
	re    *regexp.Regexp
}{
	{BrandVisa, regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)},
	{BrandMastercard, regexp.MustCompile(`^5[1-5][0-9]{14}$`)},
	{BrandAmex, regexp.MustCompile(`^3[47][0-9]{13}$`)},
	{BrandDiscover, regexp.MustCompile(`^6(?:011|5[0-9]{2})[0-9]{12}$`)},
	{BrandMir, regexp.MustCompile(`^220[0-4][0-9]{12}$`)},
}

func stripNonDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidNumber — проверка Луна: удваиваем каждую вторую цифру справа,
// если получилось >9 — вычитаем 9, сумма должна делиться на 10.
func ValidNumber(raw string) bool {
	n := stripNonDigits(raw)
	if n == "" {
		return false
	}
	sum := 0
	alt := false
	for i := len(n) - 1; i >= 0; i-- {
		d := int(n[i] - '0')
		if alt {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		alt = !alt
	}
	return sum%10 == 0
}

// ValidExpiry — карта действительна до последнего мгновения месяца.
func ValidExpiry(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	// первое число следующего месяца минус секунда
	endOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, 1, 0).Add(-time.Second)
	return !endOfMonth.Before(now)
}

// DetectBrand — тотальная функция: любой вход даёт ровно один бренд.
func DetectBrand(raw string) Brand {
	n := stripNonDigits(raw)
	for _, p := range brandPatterns {
		if p.re.MatchString(n) {
			return p.brand
		}
	}
	return BrandUnknown
}

func LastFour(raw string) (string, error) {
	n := stripNonDigits(raw)
	if len(n) < 4 {
		return "", ErrInvalidCardNumber
	}
	return n[len(n)-4:], nil
}
