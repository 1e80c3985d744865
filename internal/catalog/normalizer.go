// Package catalog turns backend place records into attractions and runs the
// filter, sort, paginate and ML-match steps over them.
package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/cairogo-gateway/internal/domain"
)

// PlaceholderDescription is used when a place has neither a short nor a full description.
const PlaceholderDescription = "No description available at the moment."

// PriceTable - cost tier to estimated ticket price
type PriceTable struct {
	Low    int
	Medium int
	High   int
}

// DefaultPrices - EGP-equivalent estimates used when nothing is configured
var DefaultPrices = PriceTable{Low: 200, Medium: 500, High: 1000}

// PriceForTier returns the estimate for low/medium/high (any case) and nil for anything else.
func (t PriceTable) PriceForTier(tier string) *int {
	var p int
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case "low":
		p = t.Low
	case "medium":
		p = t.Medium
	case "high":
		p = t.High
	default:
		return nil
	}
	return &p
}

// Normalizer maps raw place records to attractions. It has no side effects.
type Normalizer struct {
	apiBase     *url.URL
	proxyPrefix string
	prices      PriceTable
}

// NewNormalizer - apiBase is the backend base URL; a non-empty proxyPrefix
// rewrites absolute photo URLs on the backend origin to that path.
func NewNormalizer(apiBase, proxyPrefix string, prices PriceTable) *Normalizer {
	n := &Normalizer{
		proxyPrefix: strings.TrimRight(proxyPrefix, "/"),
		prices:      prices,
	}
	if u, err := url.Parse(apiBase); err == nil && u.Scheme != "" && u.Host != "" {
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		n.apiBase = u
	}
	return n
}

// Prices returns the tier table in use.
func (n *Normalizer) Prices() PriceTable {
	return n.prices
}

// NormalizeAll normalizes a catalog load; ids are assigned 1..len(raws) in order.
func (n *Normalizer) NormalizeAll(raws []domain.RawPlace) []domain.Attraction {
	out := make([]domain.Attraction, 0, len(raws))
	for i := range raws {
		out = append(out, n.Normalize(raws[i], i+1))
	}
	return out
}

// Normalize maps one raw record. id is the synthetic sequential identifier.
func (n *Normalizer) Normalize(raw domain.RawPlace, id int) domain.Attraction {
	a := domain.Attraction{
		ID:                  id,
		PlaceID:             raw.PlaceID,
		Title:               strings.TrimSpace(raw.Name),
		Description:         describe(raw),
		LongDescription:     nonEmpty(raw.Description),
		Photo:               n.ResolvePhotoURL(raw.ImageURL),
		Rating:              ClampRating(ParseRating(raw.Rating)),
		Category:            deref(raw.Category),
		Level:               deref(raw.CostTier),
		Distance:            deref(raw.District),
		Moods:               cleanTags(raw.MoodTags),
		ActivityTypes:       cleanTags(raw.ActivityTypes),
		Website:             nonEmpty(raw.Website),
		Phone:               nonEmpty(raw.Phone),
		AccessibilityInfo:   nonEmpty(raw.AccessibilityInfo),
		ParkingInfo:         nonEmpty(raw.ParkingInfo),
		IndoorOutdoor:       nonEmpty(raw.IndoorOutdoor),
		BestTimeOfDay:       nonEmpty(raw.BestTimeToVisit),
		AverageVisitMinutes: raw.AverageVisitDurationMinutes,
	}
	a.Price = n.prices.PriceForTier(a.Level)
	return a
}

// ResolvePhotoURL applies the proxy rewrite or base resolution to an image URL.
// Unparseable input is returned unchanged.
func (n *Normalizer) ResolvePhotoURL(raw *string) *string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	s := strings.TrimSpace(*raw)

	u, err := url.Parse(s)
	if err != nil {
		return &s
	}

	if !u.IsAbs() {
		if n.apiBase == nil {
			return &s
		}
		u = n.apiBase.ResolveReference(u)
		if n.proxyPrefix == "" {
			out := u.String()
			return &out
		}
	}

	if n.proxyPrefix != "" && n.apiBase != nil && sameOrigin(u, n.apiBase) {
		out := n.proxyPrefix + u.EscapedPath()
		if u.RawQuery != "" {
			out += "?" + u.RawQuery
		}
		if u.Fragment != "" {
			out += "#" + u.EscapedFragment()
		}
		return &out
	}
	return &s
}

// ParseRating accepts a JSON number or a numeric string; anything else is 0.
func ParseRating(v interface{}) float64 {
	var f float64
	switch r := v.(type) {
	case float64:
		f = r
	case float32:
		f = float64(r)
	case int:
		f = float64(r)
	case int64:
		f = float64(r)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ClampRating bounds a rating to [0,5].
func ClampRating(r float64) float64 {
	return math.Max(0, math.Min(5, r))
}

// StarRating returns the number of filled stars (0..5) for a rating.
func StarRating(r float64) int {
	return int(math.Round(ClampRating(r)))
}

func describe(raw domain.RawPlace) string {
	if s := nonEmpty(raw.ShortDescription); s != nil {
		return *s
	}
	if s := nonEmpty(raw.Description); s != nil {
		return *s
	}
	return PlaceholderDescription
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
