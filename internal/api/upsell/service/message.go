package upsellService

import (
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/utils"
	"fmt"
	"strings"
)

func upsellMessage(destination string) string {
	return fmt.Sprintf("🎉 **CHÚC MỪNG ĐẶT VÉ THÀNH CÔNG!**\n\n"+
		"🌟 **DỊCH VỤ BỔ SUNG TẠI %s**\n\n"+
		"SOVICO có thể hỗ trợ thêm cho chuyến đi của bạn:\n\n"+
		"🏨 **Khách sạn SOVICO** - Ưu đãi đặc biệt cho khách VietJet\n"+
		"🚗 **Xe đưa đón sân bay** - Tiện lợi, an toàn, đúng giờ\n"+
		"🎯 **Tour du lịch** - Khám phá điểm đến với hướng dẫn viên chuyên nghiệp\n"+
		"🛡️ **Bảo hiểm SOVICO Care** - An tâm tuyệt đối cho chuyến đi\n\n"+
		"💝 **Ưu đãi combo:** Giảm 15-30%% khi đặt kèm vé VietJet!\n\n"+
		"Bạn có muốn tìm hiểu thêm dịch vụ nào không?", strings.ToUpper(destination))
}

// bookingInfo is the text shown when a user opens one offer; it ends with the
// questions needed to book it.
func bookingInfo(service entity.TravelService) string {
	var b strings.Builder
	price := utils.FormatVND(service.Price)

	switch service.Type {
	case entity.ServiceHotel:
		fmt.Fprintf(&b, "🏨 **%s**\n\n", service.Name)
		fmt.Fprintf(&b, "⭐ %d sao\n", service.Rating)
		fmt.Fprintf(&b, "💰 %s VNĐ/%s\n", price, service.Unit)
		if service.Discount != "" {
			fmt.Fprintf(&b, "🎁 %s\n", service.Discount)
		}
		if service.Location != "" {
			fmt.Fprintf(&b, "📍 %s\n", service.Location)
		}
		b.WriteString("\n📝 Bạn muốn đặt từ ngày nào đến ngày nào?\n👥 Số người: ? | Số phòng: ?")
	case entity.ServiceTransfer:
		fmt.Fprintf(&b, "🚗 **%s**\n\n", service.Name)
		fmt.Fprintf(&b, "💰 %s VNĐ/%s\n", price, service.Unit)
		for _, feature := range service.Features {
			fmt.Fprintf(&b, "✅ %s\n", feature)
		}
		b.WriteString("\n📝 Bạn cần đưa đón lúc mấy giờ?\n📍 Địa chỉ đón: ?")
	case entity.ServiceTour:
		fmt.Fprintf(&b, "🎯 **%s**\n\n", service.Name)
		fmt.Fprintf(&b, "⏰ Thời gian: %s\n", service.Duration)
		fmt.Fprintf(&b, "💰 %s VNĐ/%s\n", price, service.Unit)
		if len(service.Features) > 0 {
			fmt.Fprintf(&b, "📋 Bao gồm: %s\n", strings.Join(service.Features, ", "))
		}
		b.WriteString("\n📅 Bạn muốn tham gia tour ngày nào?\n👥 Số người tham gia: ?")
	case entity.ServiceInsurance:
		fmt.Fprintf(&b, "🛡️ **%s**\n\n", service.Name)
		fmt.Fprintf(&b, "💰 %s VNĐ/%s\n", price, service.Unit)
		fmt.Fprintf(&b, "🔒 Bảo hiểm tối đa: %s\n", service.Coverage)
		for _, benefit := range service.Features {
			fmt.Fprintf(&b, "• %s\n", benefit)
		}
		b.WriteString("\n✅ Bạn có muốn mua bảo hiểm này không?")
	default:
		fmt.Fprintf(&b, "**%s**\n💰 %s VNĐ", service.Name, price)
	}

	return b.String()
}
