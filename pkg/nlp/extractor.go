package nlp

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"SovicoAssistant/internal/entity"
)

var (
	exactDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	passengerPattern = regexp.MustCompile(`(\d+)\s*người|for\s*(\d+)`)
	flightIDPattern  = regexp.MustCompile(`\b(vj|vn|qh)\s?(\d{3,4})\b`)

	// used only when no known city is mentioned
	fallbackLocationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`từ\s+([^\sđ]+)\s+đến\s+([^\s]+)`),
		regexp.MustCompile(`([^\s]+)\s+đến\s+([^\s]+)`),
		regexp.MustCompile(`đi\s+([^\s]+)`),
	}

	relativeDates = []struct {
		pattern *regexp.Regexp
		value   string
	}{
		{regexp.MustCompile(`hôm nay|today`), "hôm nay"},
		{regexp.MustCompile(`ngày mai|tomorrow`), "ngày mai"},
		{regexp.MustCompile(`tuần sau|next week`), "tuần sau"},
		{regexp.MustCompile(`tháng sau|next month`), "tháng sau"},
	}

	timePreferences = []struct {
		pattern *regexp.Regexp
		value   string
	}{
		{regexp.MustCompile(`sáng|morning`), "sáng"},
		{regexp.MustCompile(`chiều|afternoon`), "chiều"},
		{regexp.MustCompile(`tối|evening`), "tối"},
	}

	priceRanges = []struct {
		pattern *regexp.Regexp
		value   string
	}{
		{regexp.MustCompile(`rẻ nhất|cheapest|giá rẻ`), "cheapest"},
		{regexp.MustCompile(`đắt nhất|expensive|cao cấp`), "expensive"},
		{regexp.MustCompile(`trung bình|medium`), "medium"},
	}

	signalKeywords = []struct {
		signal   string
		keywords []string
	}{
		{SignalSearch, []string{"tìm", "search", "có", "kiểm tra", "xem", "hiện thị", "cho tôi xem"}},
		{SignalBooking, []string{"đặt vé", "đặt chỗ", "book", "mua vé", "order"}},
		{SignalPrice, []string{"giá", "price", "cost", "bao nhiêu"}},
		{SignalInfo, []string{"thông tin", "info", "chi tiết", "detail"}},
	}

	serviceKeywords = []struct {
		service  entity.ServiceType
		keywords []string
	}{
		{entity.ServiceHotel, []string{"khách sạn", "hotel", "phòng", "lưu trú", "nơi ở", "chỗ ở", "resort"}},
		{entity.ServiceTransfer, []string{"xe đưa đón", "taxi", "grab", "transfer", "đưa đón"}},
		{entity.ServiceTour, []string{"tour", "du lịch", "tham quan", "khám phá"}},
		{entity.ServiceInsurance, []string{"bảo hiểm", "insurance"}},
	}

	fromMarkers = map[string]bool{"từ": true}
	toMarkers   = map[string]bool{"đến": true, "tới": true, "đi": true, "ra": true, "vào": true}
)

// RuleExtractor is the deterministic extractor. It needs no network and is
// always available as the fallback.
type RuleExtractor struct{}

func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

func (e *RuleExtractor) Extract(_ context.Context, message string, _ entity.Slots) (*Extraction, error) {
	text := Clean(message)

	out := &Extraction{Source: SourceRules}
	out.Slots.Locations = extractLocations(text)
	out.Slots.Date = extractDate(text)
	out.Slots.TimePreference = firstMatch(text, timePreferences)
	out.Slots.PriceRange = firstMatch(text, priceRanges)
	out.Slots.Passengers = extractPassengers(text)

	for _, group := range signalKeywords {
		if containsAny(text, group.keywords) {
			out.IntentSignals = append(out.IntentSignals, group.signal)
		}
	}

	for _, group := range serviceKeywords {
		if containsAny(text, group.keywords) {
			out.ServiceType = group.service
			break
		}
	}

	if m := flightIDPattern.FindStringSubmatch(text); m != nil {
		out.FlightID = strings.ToUpper(m[1]) + m[2]
	}

	return out, nil
}

func extractLocations(text string) entity.Locations {
	words := strings.Fields(text)
	folded := make([]string, len(words))
	for i, w := range words {
		folded[i] = Fold(strings.TrimRight(w, "."))
	}

	mentions := findCities(folded)

	fromIdx, toIdx := -1, -1
	for i, w := range words {
		if fromMarkers[w] && fromIdx < 0 {
			fromIdx = i
		}
		if toMarkers[w] && toIdx < 0 {
			toIdx = i
		}
	}

	switch {
	case len(mentions) >= 2:
		first, second := mentions[0].city, mentions[1].city
		if fromIdx >= 0 && toIdx >= 0 && toIdx < fromIdx {
			return entity.Locations{From: second, To: first}
		}
		return entity.Locations{From: first, To: second}
	case len(mentions) == 1:
		m := mentions[0]
		if nearestMarkerBefore(words, m.index) == "from" {
			return entity.Locations{From: m.city}
		}
		return entity.Locations{To: m.city}
	}

	for _, p := range fallbackLocationPatterns {
		match := p.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if len(match) == 3 {
			return entity.Locations{From: NormalizeCity(match[1]), To: NormalizeCity(match[2])}
		}
		return entity.Locations{To: NormalizeCity(match[1])}
	}

	return entity.Locations{}
}

func nearestMarkerBefore(words []string, idx int) string {
	for i := idx - 1; i >= 0; i-- {
		if fromMarkers[words[i]] {
			return "from"
		}
		if toMarkers[words[i]] {
			return "to"
		}
	}
	return ""
}

func extractDate(text string) string {
	if m := exactDatePattern.FindString(text); m != "" {
		return m
	}

	return firstMatch(text, relativeDates)
}

func extractPassengers(text string) int {
	m := passengerPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	raw := m[1]
	if raw == "" {
		raw = m[2]
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return max(1, min(n, 10))
}

func firstMatch(text string, table []struct {
	pattern *regexp.Regexp
	value   string
}) string {
	for _, row := range table {
		if row.pattern.MatchString(text) {
			return row.value
		}
	}
	return ""
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
