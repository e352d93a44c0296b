package utils

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func PrettyFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprintf("%v", f)
	}
	for _, unit := range []string{"", "K", "M", "G"} {
		if math.Abs(f) < 1000.0 {
			return fmt.Sprintf("%3.2f%s", f, unit)
		}
		f /= 1000.0
	}
	return fmt.Sprintf("%.2fT", f)
}

// AbbreviateDecimal prints v with at most 9 fraction digits, collapsing long
// runs of leading fraction zeros into a subscript count (0.0₅123).
func AbbreviateDecimal(v decimal.Decimal) string {
	s := v.StringFixedBank(9)
	ss := strings.Split(s, ".")
	if len(ss) == 1 {
		return s
	}

	fraction := ss[1]
	cnt := 0
	for _, c := range fraction {
		if c == '0' {
			cnt++
		} else {
			break
		}
	}

	const zero rune = '₀'
	if cnt >= 9 {
		fraction = fraction[:3]
	} else if cnt > 2 {
		fraction = fmt.Sprintf("0%s%s", string(zero+rune(cnt)), fraction[cnt:lo.Min([]int{9, cnt + 3})])
	} else {
		fraction = fraction[:lo.Min([]int{len(fraction), cnt + 3})]
	}
	return fmt.Sprintf("%s.%s", ss[0], fraction)
}

// ShortAddress keeps the first n characters of an address.
func ShortAddress(address string, n int) string {
	if len(address) <= n {
		return address
	}
	return address[:n]
}

// TrimSpace strips NUL padding and whitespace from both ends of s.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == 0 || unicode.IsSpace(r)
	})
}
