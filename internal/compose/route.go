package compose

import (
	"fmt"
	"strings"

	"concierge/internal/models"
)

const routeClosing = "このコースなら、福岡の歴史と文化を肌で感じながら、心願成就への道のりを歩むことができます。地下鉄やバスを使えば効率よく回れますし、各スポットの周辺には美味しいグルメや見どころもたくさんありますよ。"

var orderWords = []string{"まず", "次に", "そして"}

// DistanceLabel renders a resolved distance as "1.2km", or "" when unresolved.
func DistanceLabel(e models.EnrichedLocation) string {
	r, ok := e.Resolved()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1fkm", r.DistanceKm)
}

// ForRoute narrates a selected route stop by stop.
func ForRoute(route []models.EnrichedLocation, query string) string {
	if len(route) == 0 {
		return "この近くにはございませんので、他のところはいかがでしょう？"
	}

	stops := make([]string, len(route))
	for i, stop := range route {
		word := "最後に"
		if i < len(orderWords) {
			word = orderWords[i]
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s、%s", word, orDefault(stop.Name, unnamedLocation))
		if d := DistanceLabel(stop); d != "" {
			fmt.Fprintf(&b, "（約%s）", d)
		}
		b.WriteString("へ足を向けてみませんか。")
		if stop.Address != "" {
			fmt.Fprintf(&b, "%sにある", stop.Address)
		}
		b.WriteString("この神社は")
		if benefits := joinNonEmpty(stop.BenefitTags, "、"); benefits != "" {
			fmt.Fprintf(&b, "%sで知られ、", benefits)
		}
		b.WriteString("福岡の歴史を感じられる場所です。")
		stops[i] = b.String()
	}

	intro := "あなたのお願いにぴったりの"
	if strings.Contains(query, "観光") {
		intro = "福岡市内の魅力的な神社と観光地を巡る"
	}
	return fmt.Sprintf("福岡市で神社めぐりをしながら観光地へとご案内いたします！\n\n%s特別なコースをご提案させていただきますね。\n\n%s\n\n%s",
		intro, strings.Join(stops, "\n\n"), routeClosing)
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
