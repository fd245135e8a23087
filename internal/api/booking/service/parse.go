package bookingService

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^0\d{9}$`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	codePattern  = regexp.MustCompile(`\b(\d{6})\b`)

	// Labeled patterns first, then a bare digit run.
	idNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:cccd|cmnd|căn cước)[:\s]*(\d{12,15})\b`),
		regexp.MustCompile(`\b(\d{12,15})\b`),
	}
	smsPhonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:sms|điện thoại|sđt|phone)[:\s]*(0\d{9})\b`),
		regexp.MustCompile(`\b(0\d{9})\b`),
	}

	affirmatives = map[string]struct{}{"đúng": {}, "ok": {}, "yes": {}, "correct": {}, "chính xác": {}}
	negatives    = map[string]struct{}{"sai": {}, "sửa": {}, "no": {}, "incorrect": {}, "chỉnh sửa": {}}
	resendWords  = []string{"gửi lại", "resend"}
)

// NormalizePhone strips surrounding space, inner spaces and hyphens.
func NormalizePhone(raw string) string {
	return strings.NewReplacer(" ", "", "-", "", "\t", "").Replace(strings.TrimSpace(raw))
}

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// splitPhoneEmail pulls an optional email out of the phone step input.
func splitPhoneEmail(input string) (phone, email string) {
	email = emailPattern.FindString(input)
	if email != "" {
		input = strings.Replace(input, email, " ", 1)
	}
	return NormalizePhone(input), strings.ToLower(email)
}

func firstGroup(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// parseAdditionalInfo finds the national ID and the optional SMS phone.
// The ID is blanked before the phone search so a phone is never read out of it.
func parseAdditionalInfo(input string) (idNumber, smsPhone string) {
	text := strings.ToLower(strings.TrimSpace(input))

	idNumber = firstGroup(idNumberPatterns, text)
	if idNumber == "" {
		return "", ""
	}

	rest := strings.Replace(text, idNumber, " ", 1)
	return idNumber, firstGroup(smsPhonePatterns, rest)
}

func parseCode(input string) string {
	if m := codePattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return ""
}

func answerIn(set map[string]struct{}, input string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

func wantsResend(input string) bool {
	lower := strings.ToLower(input)
	for _, w := range resendWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
