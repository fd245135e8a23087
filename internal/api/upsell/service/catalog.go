package upsellService

import (
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/nlp"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeDestination resolves city aliases first, so "Sài Gòn" and
// "TP.HCM" share the "hochiminhcity" key.
func normalizeDestination(destination string) string {
	return strings.ReplaceAll(nlp.Fold(nlp.NormalizeCity(destination)), " ", "")
}

// matchKey reports whether a normalized destination names the catalog city.
// A fragment such as "ha" matches nothing.
func matchKey(key string, dest string) bool {
	return dest != "" && strings.Contains(dest, key)
}

type catalogEntry[T any] struct {
	key   string
	value T
}

func vnd(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

var hotelCatalog = []catalogEntry[[]entity.TravelService]{
	{"hanoi", []entity.TravelService{
		{
			ID:          "sovico_hn_001",
			Name:        "Sovico Grand Hotel Hanoi",
			Type:        entity.ServiceHotel,
			Rating:      5,
			Price:       vnd(2200000),
			Unit:        "đêm",
			Description: "Khách sạn 5⭐ trung tâm Hà Nội - Thương hiệu Sovico",
			Discount:    "Giảm 20% + miễn phí breakfast cho khách VietJet",
			Features:    []string{"Pool", "Spa", "Gym", "Business Center"},
			Location:    "Ba Đình, Hà Nội",
		},
		{
			ID:          "sovico_hn_002",
			Name:        "Sovico Boutique Hanoi",
			Type:        entity.ServiceHotel,
			Rating:      4,
			Price:       vnd(1500000),
			Unit:        "đêm",
			Description: "Khách sạn boutique phong cách hiện đại",
			Discount:    "Giảm 15% cho khách đặt combo",
			Features:    []string{"Rooftop Bar", "Restaurant", "WiFi"},
			Location:    "Hoàn Kiếm, Hà Nội",
		},
	}},
	{"hochiminhcity", []entity.TravelService{
		{
			ID:          "sovico_hcm_001",
			Name:        "Sovico Luxury Saigon",
			Type:        entity.ServiceHotel,
			Rating:      5,
			Price:       vnd(3800000),
			Unit:        "đêm",
			Description: "Khách sạn sang trọng Q1 - View sông Sài Gòn",
			Discount:    "Upgrade suite miễn phí + Late checkout",
			Features:    []string{"Infinity Pool", "Sky Bar", "Spa", "Concierge"},
			Location:    "Quận 1, TP.HCM",
		},
		{
			ID:          "sovico_hcm_002",
			Name:        "Sovico Business Hotel",
			Type:        entity.ServiceHotel,
			Rating:      4,
			Price:       vnd(2200000),
			Unit:        "đêm",
			Description: "Khách sạn doanh nhân trung tâm Q3",
			Discount:    "Miễn phí meeting room 2h",
			Features:    []string{"Business Center", "Meeting Rooms", "Gym"},
			Location:    "Quận 3, TP.HCM",
		},
	}},
	{"danang", []entity.TravelService{
		{
			ID:          "sovico_dn_001",
			Name:        "Sovico Beach Resort Da Nang",
			Type:        entity.ServiceHotel,
			Rating:      5,
			Price:       vnd(4200000),
			Unit:        "đêm",
			Description: "Resort 5⭐ view biển Mỹ Khê - All-inclusive",
			Discount:    "Giảm 25% + miễn phí spa + Kids club",
			Features:    []string{"Private Beach", "Water Sports", "Kids Club", "Multiple Restaurants"},
			Location:    "Bãi biển Mỹ Khê, Đà Nẵng",
		},
	}},
	{"nhatrang", []entity.TravelService{
		{
			ID:          "sovico_nt_001",
			Name:        "Sovico Ocean Resort Nha Trang",
			Type:        entity.ServiceHotel,
			Rating:      5,
			Price:       vnd(3500000),
			Unit:        "đêm",
			Description: "Resort biển 5⭐ view vịnh Nha Trang",
			Discount:    "Giảm 20% + miễn phí water sports",
			Features:    []string{"Beachfront", "Water Sports", "Spa", "Multiple Pools"},
			Location:    "Trần Phú, Nha Trang",
		},
	}},
	{"phuquoc", []entity.TravelService{
		{
			ID:          "sovico_pq_001",
			Name:        "Sovico Paradise Resort Phu Quoc",
			Type:        entity.ServiceHotel,
			Rating:      5,
			Price:       vnd(5200000),
			Unit:        "đêm",
			Description: "Resort đảo thiên đường - Luxury experience",
			Discount:    "Giảm 30% + miễn phí island hopping",
			Features:    []string{"Private Villas", "Island Tours", "Diving Center", "Fine Dining"},
			Location:    "Bãi Sao, Phú Quốc",
		},
	}},
}

type transferInfo struct {
	price       int64
	vehicles    []string
	airportCode string
}

var transferCatalog = []catalogEntry[transferInfo]{
	{"hanoi", transferInfo{380000, []string{"Toyota Vios", "Toyota Innova", "Mercedes E-Class"}, "NOI"}},
	{"hochiminhcity", transferInfo{420000, []string{"Toyota Vios", "Toyota Innova", "Mercedes E-Class"}, "SGN"}},
	{"danang", transferInfo{320000, []string{"Toyota Vios", "Toyota Innova"}, "DAD"}},
	{"nhatrang", transferInfo{350000, []string{"Toyota Vios", "Toyota Innova"}, "CXR"}},
	{"phuquoc", transferInfo{280000, []string{"Toyota Vios", "Toyota Innova"}, "PQC"}},
}

var defaultTransfer = transferInfo{350000, []string{"Toyota Vios"}, "XXX"}

var tourCatalog = []catalogEntry[[]entity.TravelService]{
	{"hanoi", []entity.TravelService{
		{
			ID:          "sovico_tour_hn_001",
			Name:        "Hà Nội Heritage Tour",
			Type:        entity.ServiceTour,
			Price:       vnd(890000),
			Unit:        "người",
			Duration:    "1 ngày (8h)",
			Description: "Khám phá di sản văn hóa Hà Nội với hướng dẫn viên chuyên nghiệp",
			Features:    []string{"Xe đưa đón khách sạn", "Hướng dẫn viên tiếng Việt/Anh", "Vé tham quan", "Bữa trưa truyền thống", "Nước suối"},
		},
	}},
	{"hochiminhcity", []entity.TravelService{
		{
			ID:          "sovico_tour_hcm_001",
			Name:        "Sài Gòn Discovery Tour",
			Type:        entity.ServiceTour,
			Price:       vnd(780000),
			Unit:        "người",
			Duration:    "1 ngày (7h)",
			Description: "Khám phá Sài Gòn từ lịch sử đến hiện đại",
			Features:    []string{"Xe đưa đón", "Hướng dẫn viên", "Vé tham quan", "Bữa trưa đặc sản", "Cafe Sài Gòn"},
		},
	}},
	{"danang", []entity.TravelService{
		{
			ID:          "sovico_tour_dn_001",
			Name:        "Bà Nà Hills & Hội An Combo",
			Type:        entity.ServiceTour,
			Price:       vnd(1200000),
			Unit:        "người",
			Duration:    "1 ngày (10h)",
			Description: "Kết hợp Bà Nà Hills và phố cổ Hội An trong 1 ngày",
			Features:    []string{"Vé cáp treo Bà Nà", "Bữa trưa buffet", "Xe đưa đón", "Hướng dẫn viên", "Vé tham quan Hội An"},
		},
	}},
}

var insurance = entity.TravelService{
	ID:          "sovico_insurance_001",
	Name:        "SOVICO Travel Care Premium",
	Type:        entity.ServiceInsurance,
	Price:       vnd(180000),
	Unit:        "người/chuyến",
	Coverage:    "10 tỷ VNĐ",
	Description: "Bảo hiểm du lịch toàn diện - Đối tác chiến lược với VietJet",
	Discount:    "Giảm 20% khi mua combo với vé VietJet + khách sạn SOVICO",
	Features: []string{
		"Tai nạn cá nhân: 10 tỷ VNĐ",
		"Chi phí y tế: 1 tỷ VNĐ",
		"Hủy/hoãn chuyến: 100 triệu VNĐ",
		"Mất/chậm hành lý: 50 triệu VNĐ",
		"Trợ cấp cứu 24/7 toàn cầu",
	},
}

func hotelsFor(destination string) []entity.TravelService {
	dest := normalizeDestination(destination)
	for _, e := range hotelCatalog {
		if matchKey(e.key, dest) {
			return cloneServices(e.value)
		}
	}

	return []entity.TravelService{{
		ID:          fmt.Sprintf("sovico_%s_001", dest),
		Name:        fmt.Sprintf("Sovico Hotel %s", destination),
		Type:        entity.ServiceHotel,
		Rating:      4,
		Price:       vnd(2000000),
		Unit:        "đêm",
		Description: fmt.Sprintf("Khách sạn Sovico tại %s", destination),
		Discount:    "Giảm 15% cho khách SOVICO",
	}}
}

func transferFor(destination string) entity.TravelService {
	dest := normalizeDestination(destination)
	info := defaultTransfer
	for _, e := range transferCatalog {
		if matchKey(e.key, dest) {
			info = e.value
			break
		}
	}

	return entity.TravelService{
		ID:          fmt.Sprintf("sovico_transfer_%s", dest),
		Name:        "SOVICO Airport Transfer",
		Type:        entity.ServiceTransfer,
		Price:       vnd(info.price),
		Unit:        "chuyến",
		Description: fmt.Sprintf("Dịch vụ đưa đón sân bay %s - %s", info.airportCode, destination),
		Discount:    "Giảm 15% khi đặt combo với vé VietJet + khách sạn",
		Features: []string{
			fmt.Sprintf("Xe %s hoặc tương đương", info.vehicles[0]),
			"Tài xế chuyên nghiệp, giỏi tiếng Anh",
			"Theo dõi chuyến bay real-time",
			"Hỗ trợ hành lý",
		},
	}
}

func toursFor(destination string) []entity.TravelService {
	dest := normalizeDestination(destination)
	for _, e := range tourCatalog {
		if matchKey(e.key, dest) {
			return cloneServices(e.value)
		}
	}

	return []entity.TravelService{{
		ID:          fmt.Sprintf("sovico_tour_%s_001", dest),
		Name:        fmt.Sprintf("Tour %s", destination),
		Type:        entity.ServiceTour,
		Price:       vnd(800000),
		Unit:        "người",
		Duration:    "1 ngày",
		Description: fmt.Sprintf("Khám phá %s", destination),
		Features:    []string{"Xe đưa đón", "Hướng dẫn viên"},
	}}
}

func cloneServices(in []entity.TravelService) []entity.TravelService {
	out := make([]entity.TravelService, len(in))
	copy(out, in)
	return out
}
