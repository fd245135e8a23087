package entity

import "time"

type BookingStep string

const (
	StepCollectPhone          BookingStep = "collect_phone"
	StepConfirmUserInfo       BookingStep = "confirm_user_info"
	StepCollectAdditionalInfo BookingStep = "collect_additional_info"
	StepVerifySMS             BookingStep = "verify_sms"
	StepCompleted             BookingStep = "completed"
)

var BookingStepMap = map[BookingStep]string{
	StepCollectPhone:          "Nhập số điện thoại",
	StepConfirmUserInfo:       "Xác nhận thông tin",
	StepCollectAdditionalInfo: "Thông tin bổ sung",
	StepVerifySMS:             "Xác thực SMS",
	StepCompleted:             "Hoàn tất",
}

func (s BookingStep) String() string {
	return string(s)
}

func (s BookingStep) DisplayName() string {
	return BookingStepMap[s]
}

func (s BookingStep) Valid() bool {
	_, ok := BookingStepMap[s]
	return ok
}

type UserType string

const (
	UserTypeExisting UserType = "existing"
	UserTypeNew      UserType = "new"
)

// BookingSession lives inside ConversationContext while a booking is in flight.
// FlightInfo is captured once at start and never rewritten.
type BookingSession struct {
	SessionID       string           `json:"session_id"`
	Step            BookingStep      `json:"step"`
	FlightInfo      Flight           `json:"flight_info"`
	Phone           string           `json:"phone,omitempty"`
	UserType        UserType         `json:"user_type,omitempty"`
	CustomerID      string           `json:"customer_id,omitempty"`
	CustomerName    string           `json:"customer_name,omitempty"`
	CustomerEmail   string           `json:"customer_email,omitempty"`
	// ProfileIDNumber is the ID on file for an existing customer, shown back
	// when asking for additional info. CCCD is what the user typed in that step
	// and is the one recorded on the booking.
	ProfileIDNumber string           `json:"profile_id_number,omitempty"`
	CCCD            string           `json:"cccd,omitempty"`
	SMSPhone        string           `json:"sms_phone,omitempty"`
	SMSCode         *OutstandingCode `json:"sms_code,omitempty"`
	BookingRef      string           `json:"booking_ref,omitempty"`
	StartedAt       time.Time        `json:"started_at"`
}

// OutstandingCode mirrors the verification record for the session's SMS phone.
// The authoritative record is owned by the verification service.
type OutstandingCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *BookingSession) IsActive() bool {
	return s != nil && s.SessionID != "" && s.Step != ""
}

func (s *BookingSession) Clone() *BookingSession {
	if s == nil {
		return nil
	}
	cp := *s
	if s.SMSCode != nil {
		code := *s.SMSCode
		cp.SMSCode = &code
	}
	return &cp
}
