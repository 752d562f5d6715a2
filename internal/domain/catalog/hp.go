package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// hpPattern localiza la potencia en una descripción. El orden de la alternancia importa:
// mixto ("1 1/2"), fracción ("3/4"), decimal ("0.5"), entero ("5").
var hpPattern = regexp.MustCompile(`(?i)(\d+\s+\d+/\d+|\d+/\d+|\d+\.\d+|\d+)\s*HP`)

// ParseHP interpreta una potencia escrita como "1/2 HP", "1 1/2 HP Motor", "5 HP" o "0.5HP".
// Devuelve ok=false cuando el texto no es legible; nunca falla.
func ParseHP(s string) (float64, bool) {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "hp", "")
	s = strings.ReplaceAll(s, "motor", "")
	s = strings.TrimSpace(s)

	var hp float64
	switch {
	case strings.Contains(s, " "):
		parts := strings.Fields(s)
		if len(parts) != 2 {
			return 0, false
		}
		whole, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, false
		}
		frac, ok := parseFraction(parts[1])
		if !ok {
			return 0, false
		}
		hp = whole + frac
	case strings.Contains(s, "/"):
		frac, ok := parseFraction(s)
		if !ok {
			return 0, false
		}
		hp = frac
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		hp = v
	}

	if math.IsNaN(hp) || math.IsInf(hp, 0) || hp <= 0 {
		return 0, false
	}
	return hp, true
}

func parseFraction(s string) (float64, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, false
	}
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

// ExtractHP busca la potencia dentro de la descripción completa de un producto.
func ExtractHP(description string) (float64, bool) {
	m := hpPattern.FindStringSubmatch(description)
	if m == nil {
		return 0, false
	}
	return ParseHP(m[1])
}

// ParseRPMRange interpreta el rango "min-max" (o "min a max") de la descripción de una transmisión.
// Solo se aceptan dos enteros: un sufijo como "RPM" o min > max hacen el rango ilegible.
func ParseRPMRange(text string) (entity.RPMRange, bool) {
	t := strings.ToLower(text)
	t = strings.ReplaceAll(t, " a ", "-")
	t = strings.TrimSpace(t)

	parts := strings.Split(t, "-")
	if len(parts) != 2 {
		return entity.RPMRange{}, false
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return entity.RPMRange{}, false
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return entity.RPMRange{}, false
	}
	if lo > hi {
		return entity.RPMRange{}, false
	}
	return entity.RPMRange{Min: lo, Max: hi}, true
}

// Bracket rango de potencia al que pertenece un grupo de transmisiones.
type Bracket struct {
	Category string
	MinHP    float64
	MaxHP    float64
}

// Brackets los cuatro grupos de transmisión del catálogo.
var Brackets = []Bracket{
	{Category: "0.25-2HP", MinHP: 0.25, MaxHP: 2},
	{Category: "3-5HP", MinHP: 3, MaxHP: 5},
	{Category: "7.5-10HP", MinHP: 7.5, MaxHP: 10},
	{Category: "15-30HP", MinHP: 15, MaxHP: 30},
}

// BracketFor devuelve el grupo de transmisión para la potencia. Fuera de los cuatro
// rangos no hay grupo (por ejemplo 2.5 HP o 50 HP).
func BracketFor(hp float64) (Bracket, bool) {
	for _, b := range Brackets {
		if hp >= b.MinHP && hp <= b.MaxHP {
			return b, true
		}
	}
	return Bracket{}, false
}

func isBracketCategory(category string) bool {
	for _, b := range Brackets {
		if b.Category == category {
			return true
		}
	}
	return false
}
