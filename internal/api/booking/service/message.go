package bookingService

import (
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/utils"
	"fmt"
	"strings"
)

const (
	msgSessionInvalid  = "Session đặt vé không hợp lệ. Vui lòng bắt đầu lại."
	msgInvalidPhone    = "Số điện thoại không hợp lệ. Vui lòng nhập số điện thoại 10 số bắt đầu bằng 0."
	msgConfirmReprompt = "Vui lòng trả lời 'Đúng' hoặc 'Sửa' để tiếp tục."
	msgMissingIDNumber = "❌ Vui lòng cung cấp số CCCD (12-15 số). Ví dụ: 123456789012345"
	msgMalformedCode   = "❌ Vui lòng nhập mã xác thực gồm 6 chữ số, hoặc gõ 'gửi lại' để nhận mã mới."
	msgSendFailed      = "Không thể gửi SMS. Vui lòng thử lại."

	msgNewUser = "🎆 Chào mừng bạn đến với SOVICO!\n\n" +
		"📝 Vui lòng cung cấp thông tin:\n- Họ tên đầy đủ\n- Số CMND/CCCD\n- Email\n- Địa chỉ\n\n" +
		"Trả lời 'Đúng' để tiếp tục đặt vé."

	msgEditInfo = `📝 **NHẬP THÔNG TIN MỚI**

Vui lòng cung cấp:
1. Họ tên đầy đủ
2. Số CMND/CCCD
3. Email
4. Địa chỉ

Ví dụ: "Nguyễn Văn A, 123456789012, email@gmail.com, 123 Nguyễn Huệ Q1 HCM"`
)

func startMessage(f entity.Flight) string {
	return fmt.Sprintf(`🛫 **ĐẶT VÉ MÁY BAY**

Bạn đã chọn:
✈️ %s %s
📍 %s → %s
📅 %s lúc %s
💰 %s VNĐ

📱 **Để tiếp tục đặt vé, vui lòng cung cấp số điện thoại:**
(Chúng tôi sẽ kiểm tra thông tin khách hàng có sẵn)`,
		f.Airline, f.FlightID, f.FromCity, f.ToCity, f.Date, f.Time, utils.FormatVND(f.Price))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func existingUserMessage(c entity.Customer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "👋 Chào lại %s! (%d booking, %d điểm)\n\n", c.FullName, c.TotalBookings, c.LoyaltyPoints)
	b.WriteString("📋 **XÁC NHẬN THÔNG TIN**\n\n")
	b.WriteString("👤 **Thông tin hành khách:**\n")
	fmt.Fprintf(&b, "- Họ tên: %s\n", orNA(c.FullName))
	fmt.Fprintf(&b, "- CMND/CCCD: %s\n", orNA(c.IDNumber))
	fmt.Fprintf(&b, "- Điện thoại: %s\n", orNA(c.Phone))
	fmt.Fprintf(&b, "- Email: %s\n", orNA(c.Email))
	b.WriteString("\n❓ **Thông tin trên có chính xác không?**\n")
	b.WriteString("Trả lời: 'Đúng' để tiếp tục hoặc 'Sửa' để chỉnh sửa")

	return b.String()
}

func additionalInfoMessage(idNumber string) string {
	return fmt.Sprintf(`📝 **THÔNG TIN BỔ SUNG**

Vui lòng cung cấp thêm:
1️⃣ **Số CCCD mới nhất** (nếu khác với CMND cũ: %s)
2️⃣ **Số điện thoại nhận SMS** xác thực thanh toán

📱 SMS sẽ được gửi để xác thực giao dịch.`, orNA(idNumber))
}

func paymentMessage(sent, bookingRef string) string {
	return fmt.Sprintf(`💳 **XÁC THỰC THANH TOÁN**

%s

🔐 Vui lòng nhập mã 6 số để xác nhận thanh toán cho booking: %s

⏰ Mã có hiệu lực trong 5 phút`, sent, bookingRef)
}

func successMessage(confirmation string, mailed bool) string {
	mail := ""
	if mailed {
		mail = "\n📧 Email xác nhận đã gửi"
	}

	return fmt.Sprintf(`🎉 **THANH TOÁN THÀNH CÔNG!**

✅ Xác thực hoàn tất
🎫 Mã xác nhận: %s%s

📝 **Hướng dẫn:**
- Có mặt tại sân bay trước 2 tiếng
- Mang theo CMND/CCCD và mã xác nhận
- Check-in online: vietjetair.com`, confirmation, mail)
}
