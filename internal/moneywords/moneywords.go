// Package moneywords spells out ruble amounts in Russian for the
// "total in words" line of acts and orders.
package moneywords

import (
	"fmt"
	"math"
	"strings"
)

var (
	units = [10]string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	teens = [10]string{
		"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать",
		"пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать",
	}
	tens = [10]string{
		"", "", "двадцать", "тридцать", "сорок", "пятьдесят",
		"шестьдесят", "семьдесят", "восемьдесят", "девяносто",
	}
	hundreds = [10]string{
		"", "сто", "двести", "триста", "четыреста", "пятьсот",
		"шестьсот", "семьсот", "восемьсот", "девятьсот",
	}
)

type scale struct {
	one, few, many string
	feminine       bool
}

var scales = []scale{
	{"", "", "", false},
	{"тысяча", "тысячи", "тысяч", true},
	{"миллион", "миллиона", "миллионов", false},
	{"миллиард", "миллиарда", "миллиардов", false},
}

// NumberInWords converts a non-negative integer to Russian words.
func NumberInWords(n int64) string {
	if n == 0 {
		return "ноль"
	}

	var parts []string
	remaining := n
	for _, sc := range scales {
		chunk := int(remaining % 1000)
		remaining /= 1000
		if chunk == 0 {
			continue
		}

		words := underThousand(chunk, sc.feminine)
		if name := scaleName(chunk, sc); name != "" {
			words += " " + name
		}
		parts = append(parts, words)
	}

	// Chunks were collected lowest scale first.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

// Amount renders a ruble amount: spelled-out rubles, the declined ruble word,
// and kopecks as a two-digit figure ("14 копеек" form).
func Amount(amount float64) (words, rubleWord, kopecks string) {
	rubles := int64(amount)
	kop := int(math.Round((amount - float64(rubles)) * 100))

	return NumberInWords(rubles), declineRubles(rubles), fmt.Sprintf("%02d копеек", kop)
}

func underThousand(n int, feminine bool) string {
	var words []string
	if n >= 100 {
		words = append(words, hundreds[n/100])
		n %= 100
	}
	if n >= 20 {
		words = append(words, tens[n/10])
		n %= 10
	}
	switch {
	case n >= 10:
		words = append(words, teens[n-10])
	case n > 0:
		if feminine && n <= 2 {
			words = append(words, [2]string{"одна", "две"}[n-1])
		} else {
			words = append(words, units[n])
		}
	}
	return strings.Join(words, " ")
}

func scaleName(chunk int, sc scale) string {
	if sc.one == "" {
		return ""
	}
	if chunk%100 >= 11 && chunk%100 <= 19 {
		return sc.many
	}
	switch chunk % 10 {
	case 1:
		return sc.one
	case 2, 3, 4:
		return sc.few
	default:
		return sc.many
	}
}

func declineRubles(n int64) string {
	if n%100 >= 11 && n%100 <= 14 {
		return "рублей"
	}
	switch n % 10 {
	case 1:
		return "рубль"
	case 2, 3, 4:
		return "рубля"
	default:
		return "рублей"
	}
}
