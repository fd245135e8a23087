package intentService

import (
	"SovicoAssistant/internal/api/intent"
	"SovicoAssistant/internal/entity"
	"regexp"
	"strings"
)

var (
	exactBookingPhrases = map[string]float64{
		"đặt vé này":     0.95,
		"đặt vé":         0.9,
		"book vé":        0.9,
		"mua vé này":     0.9,
		"đặt chuyến này": 0.9,
		"đặt vé cho tôi": 0.9,
		"đặt cho tôi":    0.9,
	}

	deicticPhrases = []string{
		"cho tôi vé", "vé rẻ nhất", "đưa cho tôi", "thông tin vé", "chọn vé",
		"chuyến bay đó", "chuyến đó", "vé đó",
	}

	strongBookingPatterns = compileAll(
		`đặt vé.*này`,
		`đặt.*chuyến.*này`,
		`book.*này`,
		`mua vé.*này`,
		`chọn.*chuyến.*này`,
	)

	contextBookingPatterns = compileAll(
		`hãy đặt.*cho.*tôi`,
		`đặt.*cho.*tôi.*chuyến`,
		`cho.*tôi.*chuyến.*đó`,
		`đặt.*chuyến.*đó`,
	)

	mediumBookingPatterns = compileAll(
		`đặt vé`,
		`tôi muốn đặt`,
		`book vé`,
		`mua vé`,
		`cho tôi.*vé`,
		`vé.*rẻ nhất`,
		`thông tin.*vé.*rẻ`,
	)

	// "có" also matches inside longer words; kept as observed.
	questionIndicators = []string{"?", "bao nhiêu", "như thế nào", "có", "không"}

	searchPatterns = compileAll(
		`giá vé.*từ.*đến`,
		`tìm.*chuyến bay`,
		`có chuyến.*không`,
		`giá.*rẻ nhất`,
		`chuyến bay.*nào`,
		`vé.*bao nhiêu`,
	)

	searchLocationWords = []string{"hcm", "hà nội", "đà nẵng", "sài gòn", "hanoi", "ho chi minh", "từ", "đến"}
	searchTimeWords     = []string{"hôm nay", "ngày mai", "tuần sau", "tháng"}

	flightInfoPatterns = compileAll(
		`thông tin.*chuyến bay`,
		`chi tiết.*vé`,
		`hành lý.*bao nhiêu`,
		`check.*in`,
		`hủy.*vé`,
		`đổi.*vé`,
	)

	servicePatterns = []struct {
		intent   intent.Intent
		patterns []string
	}{
		{intent.IntentRequestHotel, []string{"khách sạn", "phòng", "hotel", "lưu trú"}},
		{intent.IntentRequestTransfer, []string{"xe đưa đón", "taxi", "grab", "transfer"}},
		{intent.IntentRequestTour, []string{"tour", "du lịch", "tham quan", "khám phá"}},
		{intent.IntentRequestInsurance, []string{"bảo hiểm", "insurance"}},
	}
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

func matchAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func normalizeMessage(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

func scoreBooking(message string, recent intent.RecentContext) intent.Result {
	text := normalizeMessage(message)
	hasSearch := recent.HasRecentSearch()

	confidence, exact := exactBookingPhrases[text]
	switch {
	case exact:
	case strings.Contains(text, "hãy đặt") && hasSearch:
		confidence = 0.95
	case strings.Contains(text, "đặt cho tôi chuyến") && hasSearch:
		confidence = 0.9
	case hasSearch && containsAny(text, deicticPhrases):
		confidence = 0.85
	case matchAny(text, strongBookingPatterns):
		confidence = 0.9
	case hasSearch && matchAny(text, contextBookingPatterns):
		confidence = 0.9
	case matchAny(text, mediumBookingPatterns):
		confidence = 0.6
		if hasSearch {
			confidence = 0.8
		}
	}

	if containsAny(text, questionIndicators) {
		confidence *= 0.3
	}

	result := intent.Result{
		Intent:                  intent.IntentBookFlight,
		Confidence:              confidence,
		RequiresFlightSelection: !hasSearch,
		ContextAvailable:        hasSearch,
	}
	if hasSearch {
		result.LastSearch = recent.LastSearch
	}
	return result
}

func scoreSearch(message string, slots entity.Slots) intent.Result {
	text := strings.ToLower(message)
	confidence := 0.0

	for _, p := range searchPatterns {
		if p.MatchString(text) {
			confidence += 0.4
		}
	}

	locations := 0
	for _, w := range searchLocationWords {
		if strings.Contains(text, w) {
			locations++
		}
	}

	if locations >= 2 {
		confidence += 0.5
	} else if strings.Contains(text, "vé") {
		confidence += 0.3
	}

	if containsAny(text, searchTimeWords) {
		confidence += 0.2
	}

	return intent.Result{
		Intent:     intent.IntentSearchFlight,
		Confidence: min(confidence, 1.0),
		Search: &intent.SearchInfo{
			FromCity: slots.Locations.From,
			ToCity:   slots.Locations.To,
			Date:     slots.Date,
		},
	}
}

func scoreInfo(message string, recent intent.RecentContext) intent.Result {
	text := strings.ToLower(message)

	for _, group := range servicePatterns {
		if containsAny(text, group.patterns) {
			return intent.Result{Intent: group.intent, Confidence: 0.9}
		}
	}

	if matchAny(text, flightInfoPatterns) {
		return intent.Result{Intent: intent.IntentGetInfo, Confidence: 0.8}
	}

	if recent.UpsellActive && strings.Contains(text, "tìm") {
		return intent.Result{Intent: intent.IntentRequestHotel, Confidence: 0.8}
	}

	return intent.Result{Intent: intent.IntentGetInfo}
}

// pick applies the fixed priority between the three scorers.
func pick(booking, search, info intent.Result) intent.Result {
	switch {
	case booking.Confidence > 0.8:
		return booking
	case booking.Confidence > 0.6 && booking.Confidence > search.Confidence:
		return booking
	case search.Confidence > 0.6:
		return search
	case booking.Confidence > 0.5:
		return booking
	case info.Confidence > 0.5:
		return info
	}
	return intent.Result{Intent: intent.IntentUnknown}
}
