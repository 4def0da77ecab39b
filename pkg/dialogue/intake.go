package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/physiobotics/go-nao/pkg/gesture"
	"github.com/physiobotics/go-nao/pkg/listen"
	"github.com/physiobotics/go-nao/pkg/session"
)

// Intake is the patient-intake workflow: it greets the patient, collects
// personal information, medical history, and a physiotherapy assessment,
// then saves the profile with a generated summary.
type Intake struct {
	*Interviewer
}

// NewIntake creates the intake workflow with a fresh record.
func NewIntake(cfg Config) *Intake {
	record := session.NewRecord(
		"personal_info",
		"medical_history",
		"physiotherapy_assessment",
	)
	record.SetIdentityField("personal_info", "name")
	record.SetRoot("session_notes", []string{})
	return &Intake{Interviewer: newInterviewer(cfg, record)}
}

// Stages returns the ordered intake stages for the session driver.
func (in *Intake) Stages() []session.Stage {
	return []session.Stage{
		{Name: "greet", Run: in.greet},
		{Name: "personal_info", Run: in.collectPersonalInfo},
		{Name: "medical_history", Run: in.medicalHistory},
		{Name: "assessment", Run: in.assessment},
		{Name: "conclude", Run: in.conclude},
	}
}

const intakeGreeting = "Hello! I'm your physiotherapy assistant today. " +
	"I'll be helping to collect some information before your session with the physiotherapist. " +
	"I'll ask you a few questions about your health and the reason for your visit today. " +
	"You can answer naturally, and I'll guide you through the process. " +
	"For best results, please speak clearly and directly toward me."

// greet waves and introduces the assistant.
func (in *Intake) greet(ctx context.Context) error {
	if err := in.playGesture(ctx, gesture.Wave()); err != nil {
		return err
	}
	in.say(intakeGreeting)
	return nil
}

// collectPersonalInfo gathers name, age, phone, and emergency contact.
func (in *Intake) collectPersonalInfo(ctx context.Context) error {
	in.say("Let's start with some basic information about you.")

	name := in.ask(ctx, listen.FieldName, "What is your full name?", 15*time.Second, nil)
	in.record.Set("personal_info", "name", name)

	age := in.ask(ctx, listen.FieldAge,
		"Thank you, "+firstName(name)+". What is your age?", 10*time.Second, nil)
	in.record.Set("personal_info", "age", age)

	phone := in.ask(ctx, listen.FieldPhone,
		"What is the best phone number to reach you?", 15*time.Second, nil)
	in.record.Set("personal_info", "phone", phone)

	emergency := in.ask(ctx, listen.FieldEmergencyContact,
		"In case of emergency, who should we contact and what is their relationship to you?",
		15*time.Second, nil)
	in.record.Set("personal_info", "emergency_contact", emergency)

	in.record.Set("personal_info", "registration_date", time.Now().Format("2006-01-02 15:04:05"))

	in.say("Thank you for providing your personal information, " + firstName(name) + ".")
	return ctx.Err()
}

// historyQuestions pairs each medical-history question with the field that
// selects its simulated fallback answer.
var historyQuestions = []struct {
	Field    listen.Field
	Question string
}{
	{listen.FieldConditions, "Do you have any ongoing medical conditions I should be aware of?"},
	{listen.FieldMedications, "Are you currently taking any medications? If so, what are they?"},
	{listen.FieldSurgeries, "Have you had any surgeries or major injuries in the past?"},
	{listen.FieldAllergies, "Do you have any allergies to medications or other substances?"},
}

// medicalHistory asks the four history questions and stores each answer
// with the model's interpretation.
func (in *Intake) medicalHistory(ctx context.Context) error {
	in.say("Now, I'd like to ask about your medical history. This helps us provide the best care for you.")

	for _, hq := range historyQuestions {
		resp := in.ask(ctx, hq.Field, hq.Question, 15*time.Second, nil)
		interpretation := in.llm.Interpret(ctx, hq.Question, resp)
		in.record.SetQA("medical_history", keyFromQuestion(hq.Question), session.QA{
			Question:       hq.Question,
			Response:       resp,
			Interpretation: interpretation,
		})
	}

	in.say("Thank you for sharing your medical history. This information will help us provide appropriate care.")
	return ctx.Err()
}

// assessmentFields cycles the fallback fields across the generated
// assessment questions.
var assessmentFields = []listen.Field{
	listen.FieldPainLocation,
	listen.FieldPainScale,
	listen.FieldAggravators,
	listen.FieldActivities,
	listen.FieldPreviousTreatment,
}

// assessment asks model-generated (or canned) assessment questions and the
// final goals question.
func (in *Intake) assessment(ctx context.Context) error {
	in.say("Now, let's talk specifically about what brings you in for physiotherapy today.")

	questions := in.llm.AssessmentQuestions(ctx)
	for i, question := range questions {
		field := assessmentFields[i%len(assessmentFields)]
		resp := in.ask(ctx, field, question, 5*time.Second, nil)
		summary := in.llm.Summarize(ctx, resp)
		in.record.SetQA("physiotherapy_assessment", keyFromQuestion(question), session.QA{
			Question:       question,
			Response:       resp,
			Interpretation: summary,
		})
	}

	goals := in.ask(ctx, listen.FieldGoals,
		"What are your goals for physiotherapy? What would you like to be able to do when you recover?",
		15*time.Second, nil)
	in.record.Set("physiotherapy_assessment", "goals", goals)
	return ctx.Err()
}

const intakeConclusion = "Thank you for providing all this information. I've recorded your details for the physiotherapist. " +
	"The physiotherapist will review this information before your session. " +
	"They'll develop a personalized treatment plan based on your needs and goals."

// conclude saves the profile, merges in a generated summary, and says
// goodbye. A failed save ends the run with a spoken apology instead of a
// summary.
func (in *Intake) conclude(ctx context.Context) error {
	path, err := in.store.Save(in.record)
	if err != nil {
		if errors.Is(err, session.ErrNoIdentity) {
			in.say("I don't have enough information to save a profile. Let's try again.")
		} else {
			in.say("I'm having trouble saving your information. Let me call the physiotherapist to assist you.")
		}
		in.logger.Error("profile save failed", "error", err)
		return nil
	}
	in.logger.Info("profile saved", "path", path)

	summary := in.generateSummary(ctx)
	in.record.SetRoot("assessment_summary", summary)
	if _, err := in.store.Save(in.record); err != nil {
		in.logger.Warn("summary merge failed", "error", err)
	}

	in.say(intakeConclusion)
	in.say("The physiotherapist will be with you shortly. I hope you have a productive session today. Thank you!")

	return in.playGesture(ctx, gesture.GoodbyeWave())
}

// generateSummary asks the model for an assessment summary of the whole
// record.
func (in *Intake) generateSummary(ctx context.Context) string {
	snapshot, err := json.Marshal(in.record.Snapshot())
	if err != nil {
		in.logger.Warn("record snapshot marshal failed", "error", err)
		snapshot = []byte("{}")
	}

	prompt := "Create a concise summary of this patient's physiotherapy assessment based on: " +
		string(snapshot) +
		"\n\nInclude:\n1. Key symptoms and affected areas\n2. Relevant medical history\n3. Functional limitations\n4. Preliminary recommendations"

	return in.llm.ChatOrCanned(ctx,
		"You are a physiotherapy assistant creating a patient summary for the physiotherapist.",
		prompt)
}
