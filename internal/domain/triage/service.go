package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aegiscare/clinic/internal/domain/identity"
	"github.com/aegiscare/clinic/internal/platform/completion"
)

var ErrMissingSymptoms = errors.New("symptom description is required")

// DoctorDirectory is the read-only doctor lookup the triage reply is
// decorated with. identity.Service satisfies it.
type DoctorDirectory interface {
	FindBySpecialization(ctx context.Context, specialization string) (*identity.User, error)
}

// Result is the composed triage reply. Fallback reports whether the
// narrative came from the canned local text instead of the remote
// assistant.
type Result struct {
	Reply          string `json:"reply"`
	Specialization string `json:"specialization"`
	Fallback       bool   `json:"fallback"`
}

// Service turns free-text symptoms into first-aid guidance and a
// specialist recommendation. The remote assistant is advisory only: the
// specialist always comes from the local rule table, and any remote
// failure falls through to a canned narrative.
type Service struct {
	client    completion.Client
	directory DoctorDirectory
	rules     []Rule
	timeout   time.Duration
}

func NewService(client completion.Client, directory DoctorDirectory, rules []Rule, timeout time.Duration) *Service {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Service{client: client, directory: directory, rules: rules, timeout: timeout}
}

// Analyze runs the triage protocol: one bounded remote attempt for the
// narrative, local keyword matching for the specialist, directory lookup
// for the recommendation block. Remote failures never surface as errors.
func (s *Service) Analyze(ctx context.Context, symptoms, lang string) (*Result, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, ErrMissingSymptoms
	}

	specialization := match(s.rules, symptoms)

	narrative, fallback := s.narrative(ctx, symptoms, lang)

	var b strings.Builder
	b.WriteString(narrative)
	b.WriteString("\n\n")
	b.WriteString(s.recommendation(ctx, specialization))

	return &Result{
		Reply:          b.String(),
		Specialization: specialization,
		Fallback:       fallback,
	}, nil
}

// narrative asks the remote assistant for first-aid guidance in the
// caller's language, with the canned text as the failure path.
func (s *Service) narrative(ctx context.Context, symptoms, lang string) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := []completion.Message{
		{
			Role: "system",
			Content: fmt.Sprintf(
				"You are a healthcare assistant. Based on the patient's symptoms, give concise first aid advice "+
					"and mention what type of specialist (e.g. Cardiologist, Neurologist) should be consulted. "+
					"Reply fully in %s.", LanguageName(lang)),
		},
		{Role: "user", Content: symptoms},
	}

	reply, err := s.client.Complete(callCtx, messages)
	if err != nil {
		// Client implementations funnel every failure through
		// ErrRemoteService, so any error here means the assistant could
		// not be reached and the tag applies.
		return "(assistant unavailable) " + FallbackText(lang), true
	}
	if strings.TrimSpace(reply) == "" {
		return FallbackText(lang), true
	}
	return reply, false
}

// recommendation formats the doctor block for a specialization. A failed
// lookup is informational, not an error.
func (s *Service) recommendation(ctx context.Context, specialization string) string {
	doc, err := s.directory.FindBySpecialization(ctx, specialization)
	if err != nil || doc == nil {
		return fmt.Sprintf("No %s available currently in the system.", specialization)
	}

	return fmt.Sprintf(
		"Recommended specialist:\nDr. %s\n%s, %s\nLocation: %s | Experience: %d years",
		doc.Name,
		strDeref(doc.Specialization, specialization),
		strDeref(doc.Hospital, "-"),
		strDeref(doc.Location, "-"),
		intDeref(doc.ExperienceYears),
	)
}

func strDeref(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}

func intDeref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
