package nlp

import "strings"

const (
	CityHoChiMinh = "Ho Chi Minh City"
	CityHanoi     = "Hanoi"
	CityDaNang    = "Da Nang"
	CityNhaTrang  = "Nha Trang"
	CityDaLat     = "Da Lat"
	CityPhuQuoc   = "Phu Quoc"
	CityCanTho    = "Can Tho"
)

// cityAliases is keyed by folded text.
var cityAliases = map[string]string{
	"hcm":              CityHoChiMinh,
	"tphcm":            CityHoChiMinh,
	"tp.hcm":           CityHoChiMinh,
	"tp hcm":           CityHoChiMinh,
	"sai gon":          CityHoChiMinh,
	"saigon":           CityHoChiMinh,
	"sgn":              CityHoChiMinh,
	"ho chi minh":      CityHoChiMinh,
	"ho chi minh city": CityHoChiMinh,
	"hn":               CityHanoi,
	"hanoi":            CityHanoi,
	"ha noi":           CityHanoi,
	"han":              CityHanoi,
	"thu do":           CityHanoi,
	"dn":               CityDaNang,
	"da nang":          CityDaNang,
	"danang":           CityDaNang,
	"dad":              CityDaNang,
	"nha trang":        CityNhaTrang,
	"nt":               CityNhaTrang,
	"cxr":              CityNhaTrang,
	"da lat":           CityDaLat,
	"dalat":            CityDaLat,
	"phu quoc":         CityPhuQuoc,
	"pqc":              CityPhuQuoc,
	"can tho":          CityCanTho,
}

const maxAliasWords = 4

// NormalizeCity maps a raw city mention to its canonical name. Unknown names
// are title-cased; close misspellings of a known alias are corrected.
func NormalizeCity(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	folded := Fold(raw)
	if city, ok := cityAliases[folded]; ok {
		return city
	}

	if len([]rune(folded)) >= 5 {
		for alias, city := range cityAliases {
			if len(alias) >= 5 && Similarity(folded, alias) >= 0.85 {
				return city
			}
		}
	}

	return Title(raw)
}

// IsKnownCity reports whether raw is one of the served cities.
func IsKnownCity(raw string) bool {
	_, ok := cityAliases[Fold(strings.TrimSpace(raw))]
	return ok
}

type cityMention struct {
	index int
	city  string
}

// findCities scans folded words for aliases, longest match first.
func findCities(folded []string) []cityMention {
	var found []cityMention
	for i := 0; i < len(folded); {
		matched := 0
		for n := maxAliasWords; n >= 1; n-- {
			if i+n > len(folded) {
				continue
			}
			if city, ok := cityAliases[strings.Join(folded[i:i+n], " ")]; ok {
				found = append(found, cityMention{index: i, city: city})
				matched = n
				break
			}
		}
		if matched == 0 {
			i++
			continue
		}
		i += matched
	}
	return found
}
