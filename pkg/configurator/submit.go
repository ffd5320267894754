package configurator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/gpio"
)

// Submit validates the draft and persists it when valid. On success the
// session closes and the saved record is returned; the validation warnings
// stay readable through Warnings.
//
// Schema failures never reach the network. A validator that gives no answer
// blocks persistence; the draft is kept so the user can retry.
func (s *Session) Submit(ctx context.Context) (*device.Record, error) {
	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return nil, ErrClosed
	case StateValidating, StateValid:
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if s.catalogErr != nil {
		err := s.catalogErr
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	// ids are materialized on the draft itself so retries reuse them
	for i := range s.draft.Switches {
		if s.draft.Switches[i].ID == "" {
			s.draft.Switches[i].ID = uuid.NewString()
		}
	}
	s.state = StateValidating
	s.fields = map[string][]gpio.Issue{}
	s.general = nil
	s.warnings = nil
	gen := s.generation
	draft := s.draft.Clone()
	existing := s.existing
	s.mu.Unlock()

	if errs := s.validator.ValidateDraft(draft); len(errs) > 0 {
		s.finish(gen, func() {
			s.state = StateInvalid
			for _, issue := range schemaIssues(errs) {
				s.addField(issue)
			}
		})
		return nil, fmt.Errorf("%w: %d field errors", ErrInvalid, len(errs))
	}

	normalized, err := device.Normalize(draft)
	if err != nil {
		s.finish(gen, func() {
			s.state = StateInvalid
			s.addField(gpio.Issue{Field: "macAddress", Message: err.Error()})
		})
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	result, err := s.provider.ValidateConfig(ctx, normalized.ValidateRequest(existing))
	if err != nil {
		log.Warn().Err(err).Msg("GPIO validation unavailable")
		s.finish(gen, func() {
			s.state = StateInvalid
			s.general = append(s.general, gpio.Issue{
				Message:    fmt.Sprintf("GPIO validation could not be obtained: %v", err),
				Suggestion: retrySuggestion,
			})
		})
		return nil, fmt.Errorf("%w: %w", ErrValidationUnavailable, err)
	}

	if !result.Valid {
		s.finish(gen, func() {
			s.state = StateInvalid
			s.warnings = result.Warnings
			for _, issue := range result.Errors {
				s.addField(issue)
			}
		})
		return nil, fmt.Errorf("%w: %d GPIO errors", ErrInvalid, len(result.Errors))
	}

	if !s.finish(gen, func() {
		s.state = StateValid
		s.warnings = result.Warnings
	}) {
		return nil, ErrClosed
	}

	var rec *device.Record
	if existing != nil {
		rec, err = s.persister.UpdateDevice(ctx, existing.ID, normalized)
	} else {
		rec, err = s.persister.CreateDevice(ctx, normalized)
	}
	if err != nil {
		log.Error().Err(err).Str("mac", normalized.MACAddress).Msg("Failed to save device")
		s.finish(gen, func() {
			s.state = StateIdle
			s.general = append(s.general, gpio.Issue{
				Message:    fmt.Sprintf("Device could not be saved: %v", err),
				Suggestion: "Your changes are kept, try saving again",
			})
		})
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	log.Info().Str("id", rec.ID).Str("mac", rec.MACAddress).Msg("Device saved")
	s.mu.Lock()
	s.close()
	s.warnings = result.Warnings
	s.mu.Unlock()
	return rec, nil
}

// finish applies fn unless the session was closed since gen was taken.
func (s *Session) finish(gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	fn()
	return true
}

// addField routes issue to a per-field banner, or the general banner when
// it has no field. Caller holds mu.
func (s *Session) addField(issue gpio.Issue) {
	if issue.Field == "" {
		s.general = append(s.general, issue)
		return
	}
	s.fields[issue.Field] = append(s.fields[issue.Field], issue)
}

func schemaIssues(errs []schema.FieldError) []gpio.Issue {
	out := make([]gpio.Issue, 0, len(errs))
	for _, fe := range errs {
		out = append(out, gpio.Issue{Field: fe.Field, Message: fe.Message})
	}
	return out
}
