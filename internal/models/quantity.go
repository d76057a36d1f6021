package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	quantityRe = regexp.MustCompile(`^([-+]?\d*\.?\d+)\s*([a-zA-ZñÑ]*)$`)
	numberRe   = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)
)

var unitAliases = map[string]string{
	"g": "g", "gr": "g", "gramos": "g",
	"kg": "kg", "kilos": "kg",
	"ml": "ml", "mililitros": "ml",
	"l": "L", "litros": "L",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "pound": "lb", "pounds": "lb",
}

// ParseQuantity splits a free-form amount such as "200 g" or "2" into a
// number and a normalised unit. Unparseable input yields 0 "ud".
func ParseQuantity(s string) (float64, string) {
	s = strings.TrimSpace(s)
	if m := quantityRe.FindStringSubmatch(s); m != nil {
		qty, _ := strconv.ParseFloat(m[1], 64)
		unit := strings.ToLower(m[2])
		if unit == "" {
			return qty, "ud"
		}
		if alias, ok := unitAliases[unit]; ok {
			unit = alias
		}
		return qty, unit
	}
	if n := numberRe.FindString(s); n != "" {
		qty, _ := strconv.ParseFloat(n, 64)
		return qty, "ud"
	}
	return 0, "ud"
}

// ConvertUnit maps imperial and English units to the metric/Spanish ones
// shown on shopping lists.
func ConvertUnit(qty float64, unit string) (float64, string) {
	if unit == "" {
		unit = "ud"
	}
	switch strings.ToLower(unit) {
	case "oz", "ounce", "ounces", "onza", "onzas":
		return qty * 28.35, "g"
	case "lb", "pound", "pounds", "libra", "libras":
		qty *= 453.59
		if qty >= 1000 {
			return qty / 1000, "kg"
		}
		return qty, "g"
	case "unit", "count":
		return qty, "ud"
	case "tbsp", "cda":
		return qty, "cda"
	case "tsp", "cdta":
		return qty, "cdta"
	case "cup", "cups", "taza":
		return qty, "taza"
	}
	return qty, unit
}

// FormatQuantity prints whole numbers without decimals and everything else
// rounded to two places.
func FormatQuantity(qty float64) string {
	if qty == math.Trunc(qty) {
		return strconv.FormatFloat(qty, 'f', 0, 64)
	}
	return strconv.FormatFloat(math.Round(qty*100)/100, 'f', -1, 64)
}
