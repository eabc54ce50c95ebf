package services

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-portfolio/internal/domain/contact"
	"github.com/adanyl0v/go-portfolio/internal/models"
)

const (
	contactDeliveredMessage = "Thanks, your message was sent."
	contactDemoMessage      = "Your message was accepted for demo purposes; the hosting form collector did not confirm delivery."
	contactLocalMessage     = "Your message was saved locally; the form endpoint could not be reached."
)

type contactServiceImpl struct {
	logger     zerolog.Logger
	httpClient *http.Client
	endpoint   string
}

func NewContactService(
	logger zerolog.Logger,
	httpClient *http.Client,
	endpoint string,
) ContactService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &contactServiceImpl{
		logger:     logger,
		httpClient: httpClient,
		endpoint:   endpoint,
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, msg models.ContactMessage) (*ContactResult, error) {
	err := contact.Validate(msg)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("rejected contact message")
		return nil, err
	}

	if s.endpoint == "" {
		s.logger.Warn().Msg("no contact endpoint configured")
		return &ContactResult{
			Outcome: ContactOutcomeLocal,
			Message: contactLocalMessage,
		}, nil
	}

	form := url.Values{}
	form.Set("name", strings.TrimSpace(msg.Name))
	form.Set("email", msg.Email)
	form.Set("message", strings.TrimSpace(msg.Message))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("endpoint", s.endpoint).
			Msg("failed to build contact request")
		return &ContactResult{
			Outcome: ContactOutcomeLocal,
			Message: contactLocalMessage,
		}, nil
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("endpoint", s.endpoint).
			Msg("failed to post contact message")
		return &ContactResult{
			Outcome: ContactOutcomeLocal,
			Message: contactLocalMessage,
		}, nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	// 422 counts as delivered.
	if (resp.StatusCode >= 200 && resp.StatusCode <= 299) ||
		resp.StatusCode == http.StatusUnprocessableEntity {
		s.logger.Info().
			Int("status", resp.StatusCode).
			Msg("delivered contact message")
		return &ContactResult{
			Outcome:    ContactOutcomeDelivered,
			Message:    contactDeliveredMessage,
			StatusCode: resp.StatusCode,
		}, nil
	}

	s.logger.Warn().
		Int("status", resp.StatusCode).
		Msg("contact endpoint did not accept message")
	return &ContactResult{
		Outcome:    ContactOutcomeDemo,
		Message:    contactDemoMessage,
		StatusCode: resp.StatusCode,
	}, nil
}
