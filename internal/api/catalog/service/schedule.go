package catalogService

import "SovicoAssistant/pkg/nlp"

type route struct {
	from string
	to   string
}

type routeInfo struct {
	basePrice  int64
	flightTime string
}

type scheduledFlight struct {
	flightID string
	times    []string
	aircraft string
}

var airportCodes = map[string]string{
	nlp.CityHanoi:     "HAN",
	nlp.CityHoChiMinh: "SGN",
	nlp.CityDaNang:    "DAD",
	nlp.CityPhuQuoc:   "PQC",
	nlp.CityNhaTrang:  "CXR",
	nlp.CityDaLat:     "DLI",
	nlp.CityCanTho:    "VCA",
}

var routes = map[route]routeInfo{
	{nlp.CityHanoi, nlp.CityHoChiMinh}:    {1299000, "2h05m"},
	{nlp.CityHoChiMinh, nlp.CityHanoi}:    {1299000, "2h05m"},
	{nlp.CityHanoi, nlp.CityDaNang}:       {899000, "1h20m"},
	{nlp.CityDaNang, nlp.CityHanoi}:       {899000, "1h20m"},
	{nlp.CityHoChiMinh, nlp.CityDaNang}:   {999000, "1h25m"},
	{nlp.CityDaNang, nlp.CityHoChiMinh}:   {999000, "1h25m"},
	{nlp.CityHanoi, nlp.CityPhuQuoc}:      {1799000, "2h35m"},
	{nlp.CityPhuQuoc, nlp.CityHanoi}:      {1799000, "2h35m"},
	{nlp.CityHoChiMinh, nlp.CityPhuQuoc}:  {699000, "50m"},
	{nlp.CityPhuQuoc, nlp.CityHoChiMinh}:  {699000, "50m"},
	{nlp.CityHanoi, nlp.CityNhaTrang}:     {1399000, "2h00m"},
	{nlp.CityNhaTrang, nlp.CityHanoi}:     {1399000, "2h00m"},
	{nlp.CityHoChiMinh, nlp.CityNhaTrang}: {799000, "1h10m"},
	{nlp.CityNhaTrang, nlp.CityHoChiMinh}: {799000, "1h10m"},
	{nlp.CityHoChiMinh, nlp.CityDaLat}:    {599000, "55m"},
	{nlp.CityDaLat, nlp.CityHoChiMinh}:    {599000, "55m"},
}

var schedules = map[route][]scheduledFlight{
	{nlp.CityHoChiMinh, nlp.CityHanoi}: {
		{"VJ111", []string{"05:30", "08:15", "12:45", "16:35", "20:15"}, "A321"},
		{"VJ113", []string{"06:45", "10:30", "14:20", "18:50"}, "A320"},
		{"VJ115", []string{"07:00", "11:15", "15:30", "19:45"}, "A321"},
		{"VJ117", []string{"09:20", "13:40", "17:55", "21:40"}, "A320"},
		{"VJ119", []string{"22:30"}, "A320"},
		{"VJ121", []string{"23:45"}, "A321"},
	},
	{nlp.CityHanoi, nlp.CityHoChiMinh}: {
		{"VJ112", []string{"05:45", "09:30", "13:15", "17:00", "20:45"}, "A321"},
		{"VJ114", []string{"06:30", "10:15", "14:00", "18:30"}, "A320"},
		{"VJ116", []string{"07:45", "11:30", "15:45", "19:15"}, "A321"},
		{"VJ118", []string{"08:00", "12:20", "16:40", "21:00"}, "A320"},
		{"VJ120", []string{"22:15"}, "A320"},
		{"VJ122", []string{"23:30"}, "A321"},
	},
	{nlp.CityHoChiMinh, nlp.CityDaNang}: {
		{"VJ321", []string{"06:00", "10:45", "15:20", "19:30"}, "A320"},
		{"VJ323", []string{"07:15", "12:00", "16:35", "20:45"}, "A321"},
		{"VJ325", []string{"08:30", "13:15", "17:50"}, "A320"},
		{"VJ327", []string{"09:45", "14:30", "21:15"}, "A320"},
	},
	{nlp.CityDaNang, nlp.CityHoChiMinh}: {
		{"VJ322", []string{"07:30", "12:15", "16:50", "21:00"}, "A320"},
		{"VJ324", []string{"08:45", "13:30", "18:05"}, "A321"},
		{"VJ326", []string{"09:00", "14:45", "19:20"}, "A320"},
		{"VJ328", []string{"11:15", "15:50", "22:30"}, "A320"},
	},
	{nlp.CityHanoi, nlp.CityDaNang}: {
		{"VJ541", []string{"06:15", "11:00", "15:35", "19:50"}, "A320"},
		{"VJ543", []string{"07:30", "12:15", "16:50", "21:05"}, "A321"},
		{"VJ545", []string{"08:45", "13:30", "18:05"}, "A320"},
		{"VJ547", []string{"10:00", "14:45", "22:20"}, "A320"},
	},
	{nlp.CityDaNang, nlp.CityHanoi}: {
		{"VJ542", []string{"08:00", "12:45", "17:20", "21:35"}, "A320"},
		{"VJ544", []string{"09:15", "14:00", "18:35"}, "A321"},
		{"VJ546", []string{"10:30", "15:15", "19:50"}, "A320"},
		{"VJ548", []string{"11:45", "16:30", "23:15"}, "A320"},
	},
	{nlp.CityHoChiMinh, nlp.CityPhuQuoc}: {
		{"VJ621", []string{"06:30", "11:15", "16:00", "20:30"}, "A320"},
		{"VJ623", []string{"07:45", "12:30", "17:15"}, "A321"},
		{"VJ625", []string{"09:00", "13:45", "18:30"}, "A320"},
		{"VJ627", []string{"10:15", "15:00", "19:45"}, "A320"},
		{"VJ629", []string{"21:30", "22:45"}, "A320"},
	},
	{nlp.CityPhuQuoc, nlp.CityHoChiMinh}: {
		{"VJ622", []string{"08:15", "13:00", "17:45", "22:15"}, "A320"},
		{"VJ624", []string{"09:30", "14:15", "19:00"}, "A321"},
		{"VJ626", []string{"10:45", "15:30", "20:15"}, "A320"},
		{"VJ628", []string{"12:00", "16:45", "21:30"}, "A320"},
		{"VJ630", []string{"23:15"}, "A320"},
	},
	{nlp.CityHanoi, nlp.CityPhuQuoc}: {
		{"VJ631", []string{"07:00", "13:30", "19:15"}, "A321"},
		{"VJ633", []string{"10:15", "16:45"}, "A320"},
		{"VJ635", []string{"22:00"}, "A321"},
	},
	{nlp.CityPhuQuoc, nlp.CityHanoi}: {
		{"VJ632", []string{"11:30", "18:00"}, "A321"},
		{"VJ634", []string{"14:45", "21:15"}, "A320"},
		{"VJ636", []string{"23:45"}, "A321"},
	},
	{nlp.CityHoChiMinh, nlp.CityNhaTrang}: {
		{"VJ431", []string{"06:45", "12:30", "18:15"}, "A320"},
		{"VJ433", []string{"08:00", "14:45", "20:30"}, "A320"},
		{"VJ435", []string{"10:15", "16:00"}, "A321"},
	},
	{nlp.CityNhaTrang, nlp.CityHoChiMinh}: {
		{"VJ432", []string{"08:30", "14:15", "20:00"}, "A320"},
		{"VJ434", []string{"09:45", "16:30", "22:15"}, "A320"},
		{"VJ436", []string{"12:00", "17:45"}, "A321"},
	},
	{nlp.CityHanoi, nlp.CityNhaTrang}: {
		{"VJ451", []string{"07:15", "14:00"}, "A320"},
		{"VJ453", []string{"11:30", "18:45"}, "A321"},
	},
	{nlp.CityNhaTrang, nlp.CityHanoi}: {
		{"VJ452", []string{"10:00", "16:45"}, "A320"},
		{"VJ454", []string{"14:15", "21:30"}, "A321"},
	},
	{nlp.CityHoChiMinh, nlp.CityDaLat}: {
		{"VJ361", []string{"07:30", "14:15"}, "A320"},
		{"VJ363", []string{"10:45", "17:30"}, "A320"},
	},
	{nlp.CityDaLat, nlp.CityHoChiMinh}: {
		{"VJ362", []string{"09:15", "16:00"}, "A320"},
		{"VJ364", []string{"12:30", "19:15"}, "A320"},
	},
}

type hotelInfo struct {
	name      string
	rating    int
	basePrice int64
	category  string
}

var hotelsByCity = map[string][]hotelInfo{
	nlp.CityDaNang: {
		{"Vinpearl Resort Da Nang", 5, 2500000, "resort"},
		{"Pullman Da Nang Beach Resort", 5, 2200000, "hotel"},
		{"Novotel Da Nang Premier Han River", 4, 1800000, "hotel"},
		{"Fusion Maia Da Nang", 5, 3000000, "spa_resort"},
	},
	nlp.CityHanoi: {
		{"Lotte Hotel Hanoi", 5, 3500000, "luxury"},
		{"JW Marriott Hotel Hanoi", 5, 3200000, "business"},
		{"Hilton Hanoi Opera", 5, 2800000, "heritage"},
	},
	nlp.CityHoChiMinh: {
		{"Park Hyatt Saigon", 5, 4000000, "luxury"},
		{"Caravelle Saigon", 5, 3500000, "heritage"},
		{"Renaissance Riverside Hotel Saigon", 4, 2500000, "business"},
	},
	nlp.CityPhuQuoc: {
		{"JW Marriott Phu Quoc Emerald Bay", 5, 4500000, "luxury_resort"},
		{"InterContinental Phu Quoc Long Beach", 5, 3800000, "beach_resort"},
		{"Vinpearl Resort Phu Quoc", 5, 3200000, "resort"},
	},
	nlp.CityNhaTrang: {
		{"Vinpearl Resort Nha Trang", 5, 2800000, "resort"},
		{"Sheraton Nha Trang Hotel", 5, 2500000, "hotel"},
		{"Amiana Resort Nha Trang", 4, 2000000, "beach_resort"},
	},
	nlp.CityDaLat: {
		{"Ana Mandara Villas Dalat", 5, 3000000, "villa_resort"},
		{"Dalat Palace Heritage Hotel", 5, 2500000, "heritage"},
		{"Swiss-Belresort Tuyen Lam Dalat", 4, 1800000, "resort"},
	},
}

var cityDisplayNames = map[string]string{
	nlp.CityHanoi:     "Hà Nội",
	nlp.CityHoChiMinh: "TP.HCM",
	nlp.CityDaNang:    "Đà Nẵng",
	nlp.CityPhuQuoc:   "Phú Quốc",
	nlp.CityNhaTrang:  "Nha Trang",
	nlp.CityDaLat:     "Đà Lạt",
	nlp.CityCanTho:    "Cần Thơ",
}

type transferInfo struct {
	kind    string
	from    string
	to      string
	price   int64
	vehicle string
}

var transfersByCity = map[string][]transferInfo{
	nlp.CityDaNang: {
		{"Airport Transfer", "Sân bay Đà Nẵng", "Trung tâm thành phố", 300000, "Xe riêng"},
		{"Hotel Transfer", "Sân bay Đà Nẵng", "Khu resort", 400000, "Xe 7 chỗ"},
	},
	nlp.CityHanoi: {
		{"Airport Transfer", "Sân bay Nội Bài", "Trung tâm Hà Nội", 500000, "Xe riêng"},
		{"Train Station Transfer", "Ga Hà Nội", "Khách sạn", 200000, "Taxi"},
	},
	nlp.CityHoChiMinh: {
		{"Airport Transfer", "Sân bay Tân Sơn Nhất", "Quận 1", 400000, "Xe riêng"},
		{"City Transfer", "Khách sạn", "Địa điểm tham quan", 300000, "Xe 4 chỗ"},
	},
	nlp.CityPhuQuoc: {
		{"Airport Transfer", "Sân bay Phú Quốc", "Khu resort", 200000, "Xe riêng"},
		{"Island Tour", "Khách sạn", "Tour đảo", 800000, "Xe + thuyền"},
	},
	nlp.CityNhaTrang: {
		{"Airport Transfer", "Sân bay Cam Ranh", "Trung tâm Nha Trang", 350000, "Xe riêng"},
		{"Beach Transfer", "Khách sạn", "Bãi biển", 150000, "Xe 4 chỗ"},
	},
}
