package nlp

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"SovicoAssistant/internal/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// modelExtraction is the JSON shape requested from language models.
type modelExtraction struct {
	From           string   `json:"from"`
	To             string   `json:"to"`
	Date           string   `json:"date"`
	TimePreference string   `json:"time_preference"`
	Passengers     int      `json:"passengers"`
	PriceRange     string   `json:"price_range"`
	IntentSignals  []string `json:"intent_signals"`
	ServiceType    string   `json:"service_type"`
	FlightID       string   `json:"flight_id"`
}

func ExtractionPrompt(message string, known entity.Slots) string {
	return fmt.Sprintf(`Bạn là bộ phân tích yêu cầu du lịch của SOVICO. Trả về DUY NHẤT một object JSON với các khoá:
from, to (tên thành phố), date ("hôm nay", "ngày mai", "tuần sau", "tháng sau" hoặc dd/mm/yyyy),
time_preference ("sáng", "chiều", "tối"), passengers (số, 0 nếu không nhắc tới),
price_range ("cheapest", "expensive", "medium"),
intent_signals (mảng con của ["search","booking","price","info"]),
service_type ("hotel", "transfer", "tour", "insurance" hoặc rỗng), flight_id (ví dụ "VJ112").
Để trống các khoá không có trong tin nhắn.

Ngữ cảnh đã biết: from=%q to=%q date=%q

Tin nhắn: %s`, known.Locations.From, known.Locations.To, known.Date, message)
}

// ParseModelExtraction decodes a model reply into an Extraction, normalizing
// city names and dropping values outside the known vocabularies.
func ParseModelExtraction(raw string, source string) (*Extraction, error) {
	var m modelExtraction
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &m); err != nil {
		return nil, fmt.Errorf("nlp: decode model extraction: %w", err)
	}

	out := &Extraction{Source: source}
	out.Slots.Locations = entity.Locations{From: NormalizeCity(m.From), To: NormalizeCity(m.To)}
	out.Slots.Date = strings.TrimSpace(m.Date)
	out.Slots.TimePreference = oneOf(m.TimePreference, "sáng", "chiều", "tối")
	out.Slots.PriceRange = oneOf(m.PriceRange, "cheapest", "expensive", "medium")
	if m.Passengers > 0 {
		out.Slots.Passengers = max(1, min(m.Passengers, 10))
	}

	for _, s := range m.IntentSignals {
		if v := oneOf(s, SignalSearch, SignalBooking, SignalPrice, SignalInfo); v != "" {
			out.IntentSignals = append(out.IntentSignals, v)
		}
	}

	if st := entity.ServiceType(strings.ToLower(m.ServiceType)); st.Valid() {
		out.ServiceType = st
	}
	out.FlightID = strings.ToUpper(strings.ReplaceAll(m.FlightID, " ", ""))

	return out, nil
}

func SynthesisPrompt(turn TurnData) string {
	var b strings.Builder
	b.WriteString("Bạn là trợ lý du lịch SOVICO. Viết lại câu trả lời dưới đây bằng tiếng Việt thân thiện, ngắn gọn. ")
	b.WriteString("Giữ nguyên mọi số hiệu chuyến bay, giá, ngày giờ và mã. Không thêm thông tin mới.\n\n")
	fmt.Fprintf(&b, "Khách hỏi: %s\n", turn.UserMessage)
	fmt.Fprintf(&b, "Chức năng: %s\n", turn.Capability)
	fmt.Fprintf(&b, "Số chuyến bay: %d, khách sạn: %d, xe đưa đón: %d\n\n", len(turn.Flights), len(turn.Hotels), len(turn.Transfers))
	fmt.Fprintf(&b, "Câu trả lời gốc:\n%s", turn.Draft)
	return b.String()
}

// CleanJSON strips markdown code fences some models wrap around JSON.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func oneOf(v string, allowed ...string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return ""
}
