package contact

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"umrah-storefront/internal/domain"
)

// ErrCaptchaRejected is returned when the reCAPTCHA token does not verify.
var ErrCaptchaRejected = errors.New("captcha verification failed")

// Input is the contact form payload.
type Input struct {
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email,max=254"`
	Message        string `json:"message" validate:"required,min=10,max=5000"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// Result mirrors the form backend's {success, message} reply.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type captchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	From string
	To   string
}

type Service struct {
	validate *validator.Validate
	captcha  captchaVerifier
	mail     mailer
	cfg      Config
	logger   *zap.Logger
}

// New wires the form handler. A nil captcha verifier disables the reCAPTCHA check.
func New(captcha captchaVerifier, m mailer, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if captcha == nil {
		logger.Warn("contact form captcha verification disabled")
	}
	return &Service{validate: v, captcha: captcha, mail: m, cfg: cfg, logger: logger.Named("contact_service")}
}

// Submit validates the form, checks the captcha and forwards the message to the team inbox.
func (s *Service) Submit(ctx context.Context, in Input, remoteIP string) (*Result, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, describe(err))
	}
	if s.captcha != nil {
		if strings.TrimSpace(in.RecaptchaToken) == "" {
			return nil, ErrCaptchaRejected
		}
		if err := s.captcha.Verify(ctx, in.RecaptchaToken, remoteIP); err != nil {
			s.logger.Info("captcha rejected", zap.Error(err))
			return nil, ErrCaptchaRejected
		}
	}

	msg := Message{
		From:    s.cfg.From,
		To:      s.cfg.To,
		ReplyTo: in.Email,
		Subject: "Contact form: " + in.Name,
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", in.Name, in.Email, in.Message),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		s.logger.Error("send contact mail", zap.Error(err))
		return nil, fmt.Errorf("send contact mail: %w", err)
	}
	s.logger.Info("contact message forwarded", zap.String("reply_to", in.Email))
	return &Result{Success: true, Message: "Thank you! Your message has been sent."}, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			parts = append(parts, e.Field()+" is required")
		case "email":
			parts = append(parts, e.Field()+" must be a valid email")
		case "min":
			parts = append(parts, e.Field()+" must be at least "+e.Param()+" characters")
		case "max":
			parts = append(parts, e.Field()+" must be at most "+e.Param()+" characters")
		default:
			parts = append(parts, e.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
