package chatService

import (
	"SovicoAssistant/internal/api/booking"
	"SovicoAssistant/internal/api/chat"
	"SovicoAssistant/internal/entity"
)

const maxSuggestions = 4

const cancelSuggestion = "❌ Hủy đặt vé"

func exampleSearches() []string {
	return []string{
		"Hà Nội đi Đà Nẵng ngày mai",
		"Vé rẻ nhất Hồ Chí Minh đi Hà Nội",
		"🏨 Khách sạn Đà Nẵng",
		"❓ Trợ giúp",
	}
}

func searchSuggestions(c *entity.ConversationContext) []string {
	out := []string{"Đặt vé này", "💰 Vé rẻ nhất"}
	if c.CurrentDestination != "" {
		out = append(out, "🏨 Khách sạn tại "+c.CurrentDestination)
	}
	return append(out, "🚗 Xe đưa đón")
}

func bookingSuggestions(session *entity.BookingSession) []string {
	if session == nil {
		return exampleSearches()
	}

	switch session.Step {
	case entity.StepCollectPhone:
		return []string{"0987654321", cancelSuggestion}
	case entity.StepConfirmUserInfo:
		return []string{"Đúng", "Sửa", cancelSuggestion}
	case entity.StepCollectAdditionalInfo:
		return []string{"CCCD: 001234567890, SMS: " + orPlaceholder(session.Phone), cancelSuggestion}
	case entity.StepVerifySMS:
		return []string{"Gửi lại mã", cancelSuggestion}
	}
	return []string{cancelSuggestion}
}

func orPlaceholder(phone string) string {
	if phone == "" {
		return "0987654321"
	}
	return phone
}

// completedSuggestions leads with the upsell offer for the destination.
func completedSuggestions(result *booking.StepResult) []string {
	var out []string
	if result != nil && result.Upsell != nil {
		out = append(out, result.Upsell.Suggestions...)
	}
	if len(out) >= maxSuggestions {
		out = out[:maxSuggestions-1]
	}
	return append(out, "🔍 Tìm chuyến bay khác")
}

func errorSuggestions() []string {
	return chat.FailureSuggestions()
}

func serviceSuggestions(city string, current entity.ServiceType) []string {
	var out []string
	for _, t := range []entity.ServiceType{entity.ServiceHotel, entity.ServiceTransfer, entity.ServiceTour, entity.ServiceInsurance} {
		if t == current {
			continue
		}
		out = append(out, "Xem "+serviceLabel(t)+" tại "+city)
	}
	if len(out) >= maxSuggestions {
		out = out[:maxSuggestions-1]
	}
	return append(out, "🔍 Tìm chuyến bay đến "+city)
}
