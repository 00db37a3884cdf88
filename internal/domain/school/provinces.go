package school

import "sort"

// provinces is the fixed province to city table offered during registration
// and school management.
var provinces = map[string][]string{
	"تهران": {"تهران", "شهریار", "اسلامشهر", "قدس", "ملارد", "ورامین", "پاکدشت", "قرچک"},
	"البرز": {"کرج", "فردیس", "نظرآباد", "هشتگرد", "محمدشهر", "کمال‌شهر", "اشتهارد"},
}

// provinceOrder is the display order of provinces.
var provinceOrder = []string{"تهران", "البرز"}

// Provinces returns the province names in display order.
func Provinces() []string {
	out := make([]string, len(provinceOrder))
	copy(out, provinceOrder)
	return out
}

// Cities returns the sorted cities of a province, or nil for unknown names.
func Cities(province string) []string {
	cities, ok := provinces[province]
	if !ok {
		return nil
	}
	out := make([]string, len(cities))
	copy(out, cities)
	sort.Strings(out)
	return out
}

// ValidProvince reports whether name is in the table.
func ValidProvince(name string) bool {
	_, ok := provinces[name]
	return ok
}

// ValidCity reports whether city belongs to province.
func ValidCity(province, city string) bool {
	for _, c := range provinces[province] {
		if c == city {
			return true
		}
	}
	return false
}
