package catalogService

import (
	"SovicoAssistant/internal/api/catalog"
	"SovicoAssistant/internal/entity"
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/nlp"
	"fmt"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"sort"
	"strconv"
	"strings"
	"time"
)

const airlineName = "VietJet Air"

var hotelNamespace = uuid.MustParse("6f1c2a8e-5b0d-4c4e-9a57-0d3f1e2b7c11")

func (s *catalogService) SearchFlights(ctx context.Context, from, to, date string) ([]entity.Flight, error) {
	from, to = nlp.NormalizeCity(from), nlp.NormalizeCity(to)
	key := route{from, to}

	info, ok := routes[key]
	if !ok {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"from":       from,
			"to":         to,
		}).Debug("No route in catalog")
		return []entity.Flight{}, nil
	}

	today := s.today()
	day := nlp.ResolveDate(date, s.now())
	daysAhead := int(day.Sub(today).Hours() / 24)

	flights := make([]entity.Flight, 0)
	for _, sf := range schedules[key] {
		number, _ := strconv.Atoi(sf.flightID[2:])
		for _, departure := range departuresFor(sf, number, day.Weekday()) {
			hour, minute := clock(departure)
			flights = append(flights, entity.Flight{
				FlightID:    sf.flightID,
				Airline:     airlineName,
				AirlineCode: "VJ",
				FromCity:    from,
				ToCity:      to,
				FromCode:    airportCodes[from],
				ToCode:      airportCodes[to],
				Route:       fmt.Sprintf("%s → %s", airportCodes[from], airportCodes[to]),
				Date:        day.Format(nlp.DateLayout),
				Time:        departure,
				Price:       flightPrice(info.basePrice, daysAhead, hour, minute),
				SeatsLeft:   seatsLeft(number, hour, day.Weekday(), daysAhead),
				ClassType:   "Economy",
				Duration:    info.flightTime,
				Aircraft:    sf.aircraft,
			})
		}
	}

	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Time < flights[j].Time
	})

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"from":       from,
		"to":         to,
		"date":       day.Format(nlp.DateLayout),
		"count":      len(flights),
	}).Debug("Flights generated")

	return flights, nil
}

func (s *catalogService) CheapestFlight(ctx context.Context, from, to, date string) (mo.Option[entity.Flight], error) {
	flights, err := s.SearchFlights(ctx, from, to, date)
	if err != nil {
		return mo.None[entity.Flight](), err
	}

	result := &entity.SearchResult{Flights: flights}
	if cheapest, ok := result.Cheapest(); ok {
		return mo.Some(cheapest), nil
	}
	return mo.None[entity.Flight](), nil
}

// FlightByID looks the flight number up across every route for the given day.
// The earliest departure of that number is returned.
func (s *catalogService) FlightByID(ctx context.Context, flightID, date string) (entity.Flight, error) {
	flightID = strings.ToUpper(strings.ReplaceAll(flightID, " ", ""))

	for key, list := range schedules {
		for _, sf := range list {
			if sf.flightID != flightID {
				continue
			}
			flights, err := s.SearchFlights(ctx, key.from, key.to, date)
			if err != nil {
				return entity.Flight{}, err
			}
			for _, f := range flights {
				if f.FlightID == flightID {
					return f, nil
				}
			}
		}
	}

	return entity.Flight{}, catalog.ErrFlightNotFound
}

func (s *catalogService) SearchHotels(ctx context.Context, city, checkIn string, guests int) ([]entity.Hotel, error) {
	if strings.TrimSpace(city) == "" {
		return nil, catalog.ErrMissingCity
	}
	city = nlp.NormalizeCity(city)

	hotels := make([]entity.Hotel, 0, len(hotelsByCity[city]))
	for i, h := range hotelsByCity[city] {
		id := uuid.NewSHA1(hotelNamespace, []byte(city+"/"+h.name)).String()
		hotels = append(hotels, entity.Hotel{
			HotelID:       "H" + strings.ToUpper(id[:6]),
			Name:          h.name,
			City:          city,
			Location:      displayName(city),
			Category:      h.category,
			Rating:        h.rating,
			PricePerNight: hotelPrice(h.basePrice, h.rating, checkIn),
			RoomsLeft:     3 + (i*7+h.rating)%13,
			CheckIn:       checkIn,
			Guests:        guests,
		})
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"city":       city,
		"count":      len(hotels),
	}).Debug("Hotels generated")

	return hotels, nil
}

func (s *catalogService) SearchTransfers(ctx context.Context, city string) ([]entity.Transfer, error) {
	if strings.TrimSpace(city) == "" {
		return nil, catalog.ErrMissingCity
	}
	city = nlp.NormalizeCity(city)

	transfers := make([]entity.Transfer, 0, len(transfersByCity[city]))
	for i, t := range transfersByCity[city] {
		transfers = append(transfers, entity.Transfer{
			TransferID:   fmt.Sprintf("T%s%02d", airportCodes[city], i+1),
			City:         city,
			Type:         t.kind,
			FromLocation: t.from,
			ToLocation:   t.to,
			Vehicle:      t.vehicle,
			Price:        decimal.NewFromInt(t.price),
		})
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"city":       city,
		"count":      len(transfers),
	}).Debug("Transfers generated")

	return transfers, nil
}

func (s *catalogService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func displayName(city string) string {
	if name, ok := cityDisplayNames[city]; ok {
		return name
	}
	return city
}

// departuresFor picks a fixed window of the schedule: weekends fly the most
// departures, Monday and Friday fewer, midweek the fewest.
func departuresFor(sf scheduledFlight, number int, day time.Weekday) []string {
	n := 2
	switch day {
	case time.Saturday, time.Sunday:
		n = 4
	case time.Monday, time.Friday:
		n = 3
	}
	if n > len(sf.times) {
		n = len(sf.times)
	}

	span := len(sf.times) - n + 1
	if span < 1 {
		span = 1
	}
	start := number % span
	return sf.times[start : start+n]
}

func clock(hhmm string) (int, int) {
	parts := strings.SplitN(hhmm, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute := 0
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour, minute
}

func flightPrice(base int64, daysAhead, hour, minute int) decimal.Decimal {
	price := decimal.NewFromInt(base)

	switch {
	case daysAhead <= 3:
		price = price.Mul(decimal.RequireFromString("1.5"))
	case daysAhead <= 7:
		price = price.Mul(decimal.RequireFromString("1.2"))
	case daysAhead >= 30:
		price = price.Mul(decimal.RequireFromString("0.8"))
	}

	switch {
	case (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19):
		price = price.Mul(decimal.RequireFromString("1.1"))
	case hour >= 12 && hour <= 14:
		price = price.Mul(decimal.RequireFromString("0.95"))
	}

	seed := (hour*60 + minute) % 100
	fluctuation := decimal.NewFromFloat(0.9).Add(decimal.NewFromInt(int64(seed % 21)).Div(decimal.NewFromInt(100)))

	return roundThousand(price.Mul(fluctuation))
}

func hotelPrice(base int64, rating int, checkIn string) decimal.Decimal {
	price := decimal.NewFromInt(base)

	if day, err := time.Parse(nlp.DateLayout, checkIn); err == nil {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			price = price.Mul(decimal.RequireFromString("1.3"))
		}
	}

	dateLen := len(checkIn)
	if dateLen == 0 {
		dateLen = len("default")
	}
	seed := (rating*17 + dateLen*3) % 100
	fluctuation := decimal.NewFromFloat(0.85).Add(decimal.NewFromInt(int64(seed % 31)).Div(decimal.NewFromInt(100)))

	return roundThousand(price.Mul(fluctuation))
}

func roundThousand(d decimal.Decimal) decimal.Decimal {
	return d.Div(decimal.NewFromInt(1000)).Round(0).Mul(decimal.NewFromInt(1000))
}

func seatsLeft(number, hour int, day time.Weekday, daysAhead int) int {
	base := float64(45 - number%25)

	dayFactor := 1.0
	switch day {
	case time.Saturday, time.Sunday:
		dayFactor = 0.6
	case time.Monday, time.Friday:
		dayFactor = 0.8
	}

	timeFactor := 0.9
	switch {
	case (hour >= 6 && hour <= 8) || (hour >= 17 && hour <= 19):
		timeFactor = 0.5
	case (hour >= 9 && hour <= 11) || (hour >= 14 && hour <= 16):
		timeFactor = 0.7
	}

	advanceFactor := 0.2
	switch {
	case daysAhead >= 30:
		advanceFactor = 1.0
	case daysAhead >= 14:
		advanceFactor = 0.8
	case daysAhead >= 7:
		advanceFactor = 0.6
	case daysAhead >= 3:
		advanceFactor = 0.4
	}

	seats := int(base * dayFactor * timeFactor * advanceFactor)
	if seats < 1 {
		return 1
	}
	return seats
}
