package chatService

import (
	"SovicoAssistant/internal/api/upsell"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/utils"
	"fmt"
	"strings"
)

const maxListed = 5

const helpDraft = `🤖 Tôi là trợ lý đặt vé SOVICO. Tôi có thể giúp bạn:

✈️ Tìm chuyến bay: "Tìm vé Hà Nội đi Đà Nẵng ngày mai"
💰 Xem giá rẻ nhất: "Vé rẻ nhất từ Sài Gòn ra Hà Nội"
🎫 Đặt vé: "Đặt vé này" sau khi tìm chuyến
🏨 Dịch vụ: khách sạn, xe đưa đón, tour, bảo hiểm du lịch`

func noFlightsDraft(from, to string) string {
	return fmt.Sprintf("😔 Không tìm thấy chuyến bay từ %s đến %s. Bạn thử chọn ngày hoặc điểm đến khác nhé.", from, to)
}

func flightsDraft(r *entity.SearchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "✈️ Tìm thấy %d chuyến bay từ %s đến %s ngày %s:\n\n", len(r.Flights), r.From, r.To, r.Date)
	for i, f := range r.Flights {
		if i == maxListed {
			fmt.Fprintf(&b, "... và %d chuyến khác\n", len(r.Flights)-maxListed)
			break
		}
		fmt.Fprintf(&b, "%d. %s | %s | %s VNĐ | còn %d ghế\n", i+1, f.FlightID, f.Time, utils.FormatVND(f.Price), f.SeatsLeft)
	}

	if cheapest, ok := r.Cheapest(); ok {
		fmt.Fprintf(&b, "\n💰 Rẻ nhất: %s lúc %s - %s VNĐ\n", cheapest.FlightID, cheapest.Time, utils.FormatVND(cheapest.Price))
	}
	b.WriteString("\n💡 Gõ \"Đặt vé này\" để đặt chuyến đầu tiên hoặc \"Đặt vé VJ123\" để chọn chuyến khác.")

	return b.String()
}

func cheapestDraft(f entity.Flight) string {
	return fmt.Sprintf("💰 Vé rẻ nhất từ %s đến %s ngày %s:\n\n✈️ %s %s lúc %s\n💵 %s VNĐ (còn %d ghế)\n\n"+
		"💡 Gõ \"Đặt vé này\" để đặt chuyến này.",
		f.FromCity, f.ToCity, f.Date, f.Airline, f.FlightID, f.Time, utils.FormatVND(f.Price), f.SeatsLeft)
}

func flightInfoDraft(f entity.Flight) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ℹ️ **Thông tin chuyến bay %s**\n\n", f.FlightID)
	fmt.Fprintf(&b, "✈️ Hãng: %s\n", f.Airline)
	fmt.Fprintf(&b, "📍 Hành trình: %s → %s (%s)\n", f.FromCity, f.ToCity, f.Route)
	fmt.Fprintf(&b, "📅 Ngày %s lúc %s, bay %s\n", f.Date, f.Time, f.Duration)
	if f.Aircraft != "" {
		fmt.Fprintf(&b, "🛩️ Máy bay: %s\n", f.Aircraft)
	}
	fmt.Fprintf(&b, "💺 Hạng %s, còn %d ghế\n", f.ClassType, f.SeatsLeft)
	fmt.Fprintf(&b, "💰 Giá: %s VNĐ", utils.FormatVND(f.Price))

	return b.String()
}

func hotelsDraft(city string, hotels []entity.Hotel) string {
	if len(hotels) == 0 {
		return fmt.Sprintf("😔 Hiện chưa có khách sạn nào tại %s.", city)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏨 Khách sạn tại %s:\n\n", city)
	for i, h := range hotels {
		if i == maxListed {
			break
		}
		fmt.Fprintf(&b, "%d. %s %s\n   📍 %s | %s VNĐ/đêm | còn %d phòng\n",
			i+1, h.Name, strings.Repeat("⭐", h.Rating), h.Location, utils.FormatVND(h.PricePerNight), h.RoomsLeft)
	}
	return strings.TrimRight(b.String(), "\n")
}

func transfersDraft(city string, transfers []entity.Transfer) string {
	if len(transfers) == 0 {
		return fmt.Sprintf("😔 Hiện chưa có dịch vụ xe đưa đón tại %s.", city)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚗 Xe đưa đón tại %s:\n\n", city)
	for i, t := range transfers {
		fmt.Fprintf(&b, "%d. %s → %s\n   🚙 %s | %s VNĐ\n",
			i+1, t.FromLocation, t.ToLocation, t.Vehicle, utils.FormatVND(t.Price))
	}
	return strings.TrimRight(b.String(), "\n")
}

// servicesDraft lists the offer, narrowed to one type when requested.
func servicesDraft(offer *upsell.UpsellResult, only entity.ServiceType) string {
	if !only.Valid() {
		return offer.Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌟 Dịch vụ %s SOVICO tại %s:\n\n", serviceLabel(only), offer.Destination)
	n := 0
	for _, svc := range offer.Services {
		if svc.Type != only {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. %s\n   💰 %s VNĐ/%s\n   %s\n", n, svc.Name, utils.FormatVND(svc.Price), svc.Unit, svc.Description)
	}
	if n == 0 {
		return offer.Message
	}
	return strings.TrimRight(b.String(), "\n")
}

func serviceLabel(t entity.ServiceType) string {
	switch t {
	case entity.ServiceHotel:
		return "khách sạn"
	case entity.ServiceTransfer:
		return "xe đưa đón"
	case entity.ServiceTour:
		return "tour du lịch"
	case entity.ServiceInsurance:
		return "bảo hiểm du lịch"
	}
	return "dịch vụ"
}
