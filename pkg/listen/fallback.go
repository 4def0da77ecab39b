package listen

// Field identifies the question being asked. It selects the simulated
// fallback answer when recognition produces nothing, replacing the old
// free-form context-string matching with an explicit identifier.
type Field int

const (
	FieldUnknown Field = iota

	// Intake fields
	FieldName
	FieldAge
	FieldPhone
	FieldEmergencyContact
	FieldConditions
	FieldMedications
	FieldSurgeries
	FieldAllergies
	FieldPainLocation
	FieldPainScale
	FieldAggravators
	FieldActivities
	FieldPreviousTreatment
	FieldGoals

	// Feedback fields
	FieldConsent
	FieldSessionDate
	FieldTherapistName
	FieldPatientName
	FieldTreatmentType
	FieldTreatmentHelpful
	FieldTreatmentComments
	FieldPainBefore
	FieldPainAfter
	FieldRemainingPain
	FieldOverall
	FieldContinueTreatment
	FieldRecommend
	FieldImprovements
	FieldFinalComments
)

var fieldNames = map[Field]string{
	FieldUnknown:           "unknown",
	FieldName:              "name",
	FieldAge:               "age",
	FieldPhone:             "phone",
	FieldEmergencyContact:  "emergency_contact",
	FieldConditions:        "conditions",
	FieldMedications:       "medications",
	FieldSurgeries:         "surgeries",
	FieldAllergies:         "allergies",
	FieldPainLocation:      "pain_location",
	FieldPainScale:         "pain_scale",
	FieldAggravators:       "aggravators",
	FieldActivities:        "activities",
	FieldPreviousTreatment: "previous_treatment",
	FieldGoals:             "goals",

	FieldConsent:           "consent",
	FieldSessionDate:       "session_date",
	FieldTherapistName:     "therapist_name",
	FieldPatientName:       "patient_name",
	FieldTreatmentType:     "treatment_type",
	FieldTreatmentHelpful:  "treatment_helpful",
	FieldTreatmentComments: "treatment_comments",
	FieldPainBefore:        "pain_before",
	FieldPainAfter:         "pain_after",
	FieldRemainingPain:     "remaining_pain",
	FieldOverall:           "overall",
	FieldContinueTreatment: "continue_treatment",
	FieldRecommend:         "recommend",
	FieldImprovements:      "improvements",
	FieldFinalComments:     "final_comments",
}

// String returns the field's snake_case name.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// Table maps fields to deterministic simulated answers. Every lookup
// produces a value: unknown fields get the table's default answer.
type Table struct {
	answers map[Field]string
	deflt   Field
}

// Answer returns the simulated answer for the field.
func (t Table) Answer(f Field) string {
	if a, ok := t.answers[f]; ok {
		return a
	}
	if a, ok := t.answers[t.deflt]; ok {
		return a
	}
	return "Yes"
}

// IntakeFallbacks returns the simulated answers for the intake workflow.
func IntakeFallbacks() Table {
	return Table{
		deflt: FieldName,
		answers: map[Field]string{
			FieldName:              "John Smith",
			FieldAge:               "45",
			FieldPhone:             "555-123-4567",
			FieldEmergencyContact:  "Mary Smith, wife, 555-987-6543",
			FieldConditions:        "Lower back pain for 3 months, mild hypertension",
			FieldMedications:       "Ibuprofen occasionally, blood pressure medication daily",
			FieldSurgeries:         "No previous surgeries",
			FieldAllergies:         "No known allergies",
			FieldPainLocation:      "Lower back, worse on the right side",
			FieldPainScale:         "6 out of 10 when standing for long periods",
			FieldAggravators:       "Sitting for long periods and bending forward",
			FieldActivities:        "Difficulty gardening and carrying groceries",
			FieldPreviousTreatment: "No previous physiotherapy",
			FieldGoals:             "I want to be able to garden again without pain and return to my walking routine",
		},
	}
}

// FeedbackFallbacks returns the simulated answers for the feedback workflow.
func FeedbackFallbacks() Table {
	return Table{
		deflt: FieldOverall,
		answers: map[Field]string{
			FieldSessionDate:       "Today's session was good",
			FieldTherapistName:     "John Smith",
			FieldTreatmentHelpful:  "Yes, the treatment was very helpful",
			FieldPainBefore:        "My pain was about 7 out of 10 before treatment",
			FieldPainAfter:         "Now my pain is about 3 out of 10",
			FieldTreatmentComments: "The exercises were explained well",
			FieldOverall:           "Overall I'm very satisfied with the treatment",
			FieldContinueTreatment: "Yes, I want to continue with this treatment plan",
			FieldRecommend:         "I would definitely recommend this to others",
			FieldImprovements:      "Maybe add more appointment time slots",
		},
	}
}
