package verificationService

import (
	"SovicoAssistant/internal/api/verification"
	verificationRepository "SovicoAssistant/internal/api/verification/repository"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/bcrypt"
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/utils"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"regexp"
)

var phonePattern = regexp.MustCompile(`^0[0-9]{9}$`)

func (s *verificationService) SendCode(ctx context.Context, phone string, purpose entity.VerificationPurpose) (*verification.SendResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !phonePattern.MatchString(phone) {
		return nil, verification.ErrInvalidPhone
	}

	code, err := s.utils.NewNumericCode(verification.CodeLength)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate verification code")
		return nil, verification.ErrFailedToSendCode
	}

	hash, err := s.bcrypt.Hash(code)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash verification code")
		return nil, verification.ErrFailedToSendCode
	}

	now := s.now()
	record := entity.VerificationRecord{
		Phone:     phone,
		CodeHash:  hash,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Save(ctx, record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to save verification record")
		return nil, verification.ErrFailedToSendCode
	}

	text := fmt.Sprintf("SOVICO: Ma xac thuc cua ban la %s. Ma co hieu luc trong 5 phut.", code)
	s.dispatcher.Submit("verification_code", func(ctx context.Context) error {
		return s.sender.SendMessage(ctx, phone, text)
	})
	s.metrics.CodesSent.Inc()

	masked := utils.MaskPhone(phone)
	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"phone":      masked,
		"purpose":    purpose,
	}).Info("Verification code issued")

	return &verification.SendResult{
		Code:        code,
		ExpiresIn:   verification.CodeTTLSeconds,
		MaskedPhone: masked,
		Message:     fmt.Sprintf("📱 Mã xác thực đã được gửi đến %s", masked),
	}, nil
}

// VerifyCode checks input and consumes the record on success.
func (s *verificationService) VerifyCode(ctx context.Context, phone string, input string) (*verification.VerifyResult, error) {
	res, err := s.CheckCode(ctx, phone, input)
	if err != nil {
		return res, err
	}
	if err := s.ConsumeCode(ctx, phone); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to delete used verification record")
	}
	return res, nil
}

// CheckCode counts one attempt and compares input against the record. A
// matching code stays stored until ConsumeCode is called.
func (s *verificationService) CheckCode(ctx context.Context, phone string, input string) (*verification.VerifyResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	record, err := s.store.Attempt(ctx, phone, s.now(), verification.MaxAttempts)
	switch {
	case errors.Is(err, verificationRepository.ErrRecordNotFound):
		s.metrics.CodeVerifications.WithLabelValues("not_found").Inc()
		return &verification.VerifyResult{
			Message: "Không tìm thấy mã xác thực. Vui lòng yêu cầu gửi lại.",
		}, verification.ErrCodeNotFound
	case errors.Is(err, verificationRepository.ErrRecordExpired):
		s.metrics.CodeVerifications.WithLabelValues("expired").Inc()
		return &verification.VerifyResult{
			Message: "Mã xác thực đã hết hạn. Vui lòng yêu cầu gửi lại.",
		}, verification.ErrCodeExpired
	case errors.Is(err, verificationRepository.ErrAttemptsExhausted):
		s.metrics.CodeVerifications.WithLabelValues("exhausted").Inc()
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"phone":      utils.MaskPhone(phone),
		}).Warn("Verification locked after too many attempts")
		return &verification.VerifyResult{
			Message: fmt.Sprintf("Đã nhập sai quá %d lần. Vui lòng yêu cầu gửi lại mã mới.", verification.MaxAttempts),
		}, verification.ErrCodeExhausted
	case err != nil:
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to check verification code")
		return nil, err
	}

	if err := s.bcrypt.Compare(record.CodeHash, input); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatch) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to compare verification code")
		}

		s.metrics.CodeVerifications.WithLabelValues("mismatch").Inc()
		left := verification.MaxAttempts - record.Attempts
		return &verification.VerifyResult{
			Message:      fmt.Sprintf("Mã xác thực không đúng. Còn %d lần thử.", left),
			AttemptsLeft: left,
		}, verification.ErrCodeMismatch
	}

	s.metrics.CodeVerifications.WithLabelValues("success").Inc()

	return &verification.VerifyResult{
		Success: true,
		Message: "✅ Xác thực thành công!",
	}, nil
}

func (s *verificationService) ConsumeCode(ctx context.Context, phone string) error {
	return s.store.Delete(ctx, phone)
}
