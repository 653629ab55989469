// Package format holds small display helpers shared by templates.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Currency formats amount in minor units for the supported currencies.
// Example: Currency(1250, "GBP") => "£12.50"
func Currency(minor int64, currency string) string {
	currency = strings.ToUpper(currency)
	switch currency {
	case "GBP", "USD", "EUR":
		neg := minor < 0
		if neg {
			minor = -minor
		}
		head := symbol(currency) + thousandSep(minor/100) + fmt.Sprintf(".%02d", minor%100)
		if neg {
			return "-" + head
		}
		return head
	case "JPY":
		return "¥" + thousandSep(minor)
	default:
		// generic minor units
		return fmt.Sprintf("%s %s", currency, thousandSep(minor))
	}
}

// WholeCurrency rounds minor units half away from zero to major units and
// formats them without decimals. Example: WholeCurrency(510, "GBP") => "£5"
func WholeCurrency(minor int64, currency string) string {
	currency = strings.ToUpper(currency)
	sym := symbol(currency)
	if sym == "" {
		return Currency(minor, currency)
	}
	neg := minor < 0
	if neg {
		minor = -minor
	}
	out := sym + thousandSep((minor+50)/100)
	if neg {
		return "-" + out
	}
	return out
}

func symbol(currency string) string {
	switch currency {
	case "GBP":
		return "£"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	}
	return ""
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Date formats t in the short English form used across the site.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
