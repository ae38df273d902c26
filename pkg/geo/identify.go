package geo

import "strings"

// areas are the Fukuoka city districts and hubs a request may name as its
// starting point. Order matters: the first area found in a text wins.
var areas = []string{
	"博多", "天神", "中央区", "博多区", "早良区", "東区", "西区", "南区", "城南区",
}

// City is appended to an area before geocoding so that "東区" is not resolved
// to a ward of some other city.
const City = "福岡市"

func IsArea(place string) bool {
	for _, a := range areas {
		if strings.EqualFold(a, strings.TrimSpace(place)) {
			return true
		}
	}
	return false
}

// ExtractArea returns the first known area mentioned in text, or "".
func ExtractArea(text string) string {
	for _, a := range areas {
		if strings.Contains(text, a) {
			return a
		}
	}
	return ""
}

// AreaQuery turns an area hint into an address suitable for a geocoder.
func AreaQuery(area string) string {
	area = strings.TrimSpace(area)
	if area == "" || strings.HasPrefix(area, City) {
		return area
	}
	return City + area
}

// District returns the ward part of a Japanese address ("福岡市博多区上川端町1-41"
// yields "博多区"), or "" when the address has none.
func District(address string) string {
	idx := strings.Index(address, "区")
	if idx == -1 {
		return ""
	}
	head := address[:idx]
	if c := strings.LastIndex(head, "市"); c != -1 {
		head = head[c+len("市"):]
	}
	return head + "区"
}
