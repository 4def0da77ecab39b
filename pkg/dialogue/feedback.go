package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/physiobotics/go-nao/pkg/gesture"
	"github.com/physiobotics/go-nao/pkg/listen"
	"github.com/physiobotics/go-nao/pkg/rating"
	"github.com/physiobotics/go-nao/pkg/session"
)

// Feedback is the post-session feedback workflow: consent, session details,
// treatment effectiveness, pain levels before and after, and overall
// experience, saved as one feedback document.
type Feedback struct {
	*Interviewer
}

// NewFeedback creates the feedback workflow with a fresh record.
func NewFeedback(cfg Config) *Feedback {
	record := session.NewRecord(
		"session_info",
		"treatment_feedback",
		"pain_assessment",
		"overall_experience",
	)
	record.SetIdentityField("session_info", "patient")
	return &Feedback{Interviewer: newInterviewer(cfg, record)}
}

// Stages returns the ordered feedback stages for the session driver.
func (f *Feedback) Stages() []session.Stage {
	return []session.Stage{
		{Name: "greet", Run: f.greet},
		{Name: "session_info", Run: f.sessionInfo},
		{Name: "treatment_effectiveness", Run: f.treatmentEffectiveness},
		{Name: "pain_levels", Run: f.painLevels},
		{Name: "overall_experience", Run: f.overallExperience},
		{Name: "conclude", Run: f.conclude},
	}
}

const feedbackGreeting = "Hello! I hope you had a good physiotherapy session today. " +
	"I'd like to ask you a few questions about your experience. " +
	"Your feedback helps us improve our services and your treatment plan. " +
	"Would you mind taking a moment to share your feedback with me?"

// greet bows, asks for consent, and ends the run politely on a decline.
func (f *Feedback) greet(ctx context.Context) error {
	if err := f.playGesture(ctx, gesture.WelcomeBow()); err != nil {
		return err
	}

	resp := f.ask(ctx, listen.FieldConsent, feedbackGreeting, 10*time.Second,
		[]string{"yes", "sure", "okay", "no", "not now"})

	switch strings.ToLower(resp) {
	case "no", "not now":
		f.say("No problem! I understand you might be tired after your session. " +
			"Perhaps we can get your feedback next time. Have a great day!")
		return session.ErrDeclined
	}

	f.say("Great! Thank you for your willingness to help us improve.")
	return ctx.Err()
}

// sessionInfo confirms the session date, therapist, patient, and treatment
// type.
func (f *Feedback) sessionInfo(ctx context.Context) error {
	f.say("First, let's confirm a few details about today's session.")

	dateAnswer := f.ask(ctx, listen.FieldSessionDate,
		"Was your session today, or on a different date?", 15*time.Second,
		[]string{"today", "yesterday", "different date"})
	f.record.Set("session_info", "date", resolveSessionDate(dateAnswer))

	therapist := f.ask(ctx, listen.FieldTherapistName,
		"What is the name of your physiotherapist?", 15*time.Second,
		[]string{"Jack", "Smith"})
	f.record.Set("session_info", "therapist", therapist)

	patient := f.ask(ctx, listen.FieldPatientName,
		"And your name please?", 15*time.Second,
		[]string{"Bob", "Smith"})
	f.record.Set("session_info", "patient", patient)

	treatment := f.ask(ctx, listen.FieldTreatmentType,
		"What type of treatment did you receive today? For example, was it manual therapy, exercises, or something else?",
		15*time.Second,
		[]string{"manual therapy", "exercises", "massage", "something else"})
	f.record.Set("session_info", "treatment_type", treatment)

	return ctx.Err()
}

// resolveSessionDate maps the spoken answer to a concrete date, defaulting
// to today when unclear.
func resolveSessionDate(answer string) string {
	text := strings.ToLower(answer)
	switch {
	case strings.Contains(text, "yesterday"):
		return time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	default:
		return time.Now().Format("2006-01-02")
	}
}

// treatmentEffectiveness collects the helpfulness answer, a 1-10 rating,
// and free-form comments.
func (f *Feedback) treatmentEffectiveness(ctx context.Context) error {
	f.say("Now, I'd like to ask about the effectiveness of your treatment.")

	helpful := f.ask(ctx, listen.FieldTreatmentHelpful,
		"Did you find today's treatment helpful?", 10*time.Second,
		[]string{"yes", "no", "somewhat", "very", "not really"})
	f.record.Set("treatment_feedback", "helpful", helpful)

	effectiveness := f.askNumeric(ctx, listen.FieldTreatmentHelpful,
		"On a scale from 1 to 10, how would you rate the effectiveness of today's treatment?",
		rating.Scale{Min: 1, Max: 10})
	f.record.Set("treatment_feedback", "effectiveness_rating", effectiveness)

	comments := f.ask(ctx, listen.FieldTreatmentComments,
		"Is there anything specific about the treatment that worked well or could be improved?",
		20*time.Second, nil)
	f.record.Set("treatment_feedback", "comments", comments)

	return ctx.Err()
}

// painLevels collects before/after pain ratings, comments on the change,
// and asks where pain remains.
func (f *Feedback) painLevels(ctx context.Context) error {
	f.say("Next, let's talk about your pain levels.")

	before := f.askPain(ctx, listen.FieldPainBefore,
		"How would you rate your pain before today's treatment?")
	f.record.Set("pain_assessment", "before", before)

	after := f.askPain(ctx, listen.FieldPainAfter,
		"And how would you rate your pain now, after the treatment?")
	f.record.Set("pain_assessment", "after", after)

	reduction := before - after
	f.record.Set("pain_assessment", "change", reduction)
	switch {
	case reduction > 0:
		f.say(fmt.Sprintf("That's great! Your pain has decreased by %d points.", reduction))
	case reduction == 0:
		f.say("I see that your pain level hasn't changed. We'll work to address this in future sessions.")
	default:
		f.say("I notice your pain has increased. This is important information for your therapist to know.")
	}

	location := f.ask(ctx, listen.FieldRemainingPain,
		"Could you tell me where you're still experiencing pain, if any?",
		15*time.Second, nil)
	f.record.Set("pain_assessment", "location", location)

	return ctx.Err()
}

// overallExperience collects satisfaction, continuation intent,
// recommendation, and improvement suggestions.
func (f *Feedback) overallExperience(ctx context.Context) error {
	f.say("Finally, let's talk about your overall experience and future plans.")

	satisfaction := f.askSatisfaction(ctx, listen.FieldOverall,
		"Overall, how satisfied are you with your physiotherapy experience today?")
	f.record.Set("overall_experience", "satisfaction", string(satisfaction))

	cont := f.ask(ctx, listen.FieldContinueTreatment,
		"Do you feel you would benefit from continuing with your current treatment plan?",
		10*time.Second, []string{"yes", "no", "not sure", "maybe"})
	f.record.Set("overall_experience", "continue_treatment", cont)

	recommend := f.ask(ctx, listen.FieldRecommend,
		"Would you recommend our physiotherapy services to friends or family?",
		10*time.Second, []string{"yes", "no", "maybe", "definitely", "probably not"})
	f.record.Set("overall_experience", "would_recommend", recommend)

	improvements := f.ask(ctx, listen.FieldImprovements,
		"Do you have any suggestions for how we could improve our services?",
		20*time.Second, nil)
	f.record.Set("overall_experience", "improvement_suggestions", improvements)

	return ctx.Err()
}

const feedbackConclusion = "Thank you so much for taking the time to provide this valuable feedback. " +
	"Your input helps us improve our services and tailor your treatment plan. " +
	"The physiotherapy team will review your comments to ensure you receive the best possible care. " +
	"Is there anything else you'd like to share before we finish?"

// conclude saves the feedback, collects closing comments into the same
// file, and says goodbye.
func (f *Feedback) conclude(ctx context.Context) error {
	f.record.SetRoot("timestamp", time.Now().Format("2006-01-02 15:04:05"))

	if path, err := f.store.Save(f.record); err != nil {
		if errors.Is(err, session.ErrNoIdentity) {
			f.say("I don't have enough information to save your feedback. Let me notify the staff.")
		}
		f.logger.Error("feedback save failed", "error", err)
	} else {
		f.logger.Info("feedback saved", "path", path)
	}

	if err := f.playGesture(ctx, gesture.ThankYouNod()); err != nil {
		return err
	}
	f.say(feedbackConclusion)

	final := f.ask(ctx, listen.FieldFinalComments, "", 15*time.Second, nil)
	if final != "" {
		f.record.SetRoot("final_comments", final)
		if _, err := f.store.Save(f.record); err != nil {
			f.logger.Warn("final comments merge failed", "error", err)
		}
	}

	f.say("Thank you again for your feedback. We look forward to seeing you at your next appointment. Have a wonderful day!")
	return f.playGesture(ctx, gesture.GoodbyeWave())
}
