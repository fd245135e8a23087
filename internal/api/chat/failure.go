package chat

import (
	"errors"
	"fmt"
	"golang.org/x/net/context"
	"net/http"
)

const (
	MsgBusy           = "Hệ thống đang bận, vui lòng thử lại sau."
	MsgInvalidFrame   = "Tin nhắn không đúng định dạng. Vui lòng gửi JSON {\"user_id\", \"message\"}."
	MsgInvalidRequest = "Thiếu mã người dùng hoặc nội dung tin nhắn."
	msgEmptyMessage   = "Bạn chưa nhập nội dung tin nhắn."
	msgTimeout        = "⏳ Yêu cầu xử lý quá lâu, vui lòng thử lại."
	msgUnexpected     = "😔 Xin lỗi, đã có lỗi xảy ra. Vui lòng thử lại sau ít phút."
)

// Failure is a failed chat request as clients see it.
type Failure struct {
	Status      int      `json:"-"`
	Code        string   `json:"code"`
	Message     string   `json:"error"`
	Suggestions []string `json:"suggestions"`
}

func FailureSuggestions() []string {
	return []string{"🔄 Thử lại", "🔍 Tìm chuyến bay", "📞 Liên hệ hỗ trợ"}
}

// DescribeFailure maps a chat error to its Vietnamese reply. ok is false for
// errors that do not come from the chat domain; they still get a generic reply.
func DescribeFailure(err error) (f Failure, ok bool) {
	f = Failure{Suggestions: FailureSuggestions()}

	switch {
	case errors.Is(err, ErrContextStore), errors.Is(err, ErrTurnAborted):
		f.Status, f.Code, f.Message = http.StatusServiceUnavailable, "CONTEXT_UNAVAILABLE", MsgBusy
	case errors.Is(err, ErrEmptyMessage):
		f.Status, f.Code, f.Message = http.StatusBadRequest, "EMPTY_MESSAGE", msgEmptyMessage
	case errors.Is(err, ErrMessageTooLong):
		f.Status, f.Code = http.StatusRequestEntityTooLarge, "MESSAGE_TOO_LONG"
		f.Message = fmt.Sprintf("Tin nhắn quá dài, vui lòng rút gọn dưới %d ký tự.", MaxMessageRunes)
	case errors.Is(err, context.DeadlineExceeded):
		f.Status, f.Code, f.Message = http.StatusRequestTimeout, "TIMEOUT", msgTimeout
	default:
		f.Status, f.Code, f.Message = http.StatusInternalServerError, "INTERNAL_ERROR", msgUnexpected
		return f, false
	}

	return f, true
}
