// Package compose turns resolution and routing results into user-facing text.
package compose

import (
	"fmt"
	"strings"

	"concierge/internal/models"
)

const (
	// MaxListed caps how many candidates a message lists.
	MaxListed = 10

	NoMatch     = "該当する神社やコースは見つかりませんでした。"
	Unavailable = "AIコンシェルジュが応答していません。しばらくしてからもう一度お試しください。"

	unnamedLocation = "名称不明"
	unnamedCourse   = "名称未設定"
	noDescription   = "説明準備中"
)

// ForResolution shapes the message for a resolution result.
func ForResolution(r models.ResolutionResult) string {
	switch {
	case r.Empty():
		return NoMatch
	case r.Tier == models.TierCourse:
		return forCourses(r)
	case len(r.Locations) > 1:
		return forCandidates(r.Locations)
	default:
		return forSingleLocation(r)
	}
}

func forCandidates(locs []models.Location) string {
	var b strings.Builder
	b.WriteString("いくつか候補がございます。")
	for i, l := range locs {
		if i == MaxListed {
			break
		}
		b.WriteString("\n・")
		b.WriteString(orDefault(l.Name, unnamedLocation))
		if l.Address != "" {
			fmt.Fprintf(&b, "（%s）", l.Address)
		}
	}
	return b.String()
}

func forSingleLocation(r models.ResolutionResult) string {
	name := r.PrimaryLocationName()
	plans := r.PlansFor(name)
	switch len(plans) {
	case 0:
		return fmt.Sprintf("「%s」に対応するコースは未登録です。近隣スポット名で再検索してみてください。", name)
	case 1:
		return fmt.Sprintf("「%s」に近いおすすめコースは『%s』です。%s", name, plans[0].Course, plans[0].Description)
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "「%s」の近くには、いくつかプランがございます。", name)
		for _, p := range plans {
			fmt.Fprintf(&b, "\n・『%s』— %s", p.Course, orDefault(p.Description, noDescription))
		}
		return b.String()
	}
}

func forCourses(r models.ResolutionResult) string {
	var b strings.Builder
	if len(r.Courses) == 1 {
		c := r.Courses[0]
		fmt.Fprintf(&b, "該当するコースは『%s』です。%s", orDefault(c.Name, unnamedCourse), c.Description)
	} else {
		b.WriteString("いくつか候補のコースがございます。")
		for i, c := range r.Courses {
			if i == MaxListed {
				break
			}
			fmt.Fprintf(&b, "\n・『%s』— %s", orDefault(c.Name, unnamedCourse), orDefault(c.Description, noDescription))
		}
	}
	var names []string
	for _, l := range r.Locations {
		if l.Name != "" {
			names = append(names, l.Name)
		}
	}
	if len(names) > 0 {
		fmt.Fprintf(&b, "\n含まれる神社：%s", strings.Join(names, "、"))
	}
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
