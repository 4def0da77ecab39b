package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Canned returns a keyword-triggered fallback sentence for when the model
// is unreachable. The reply acknowledges the topic of the prompt so the
// conversation stays coherent without a model behind it.
func Canned(prompt string) string {
	text := strings.ToLower(prompt)
	switch {
	case strings.Contains(text, "pain"):
		return "I understand you're experiencing pain. Could you tell me more about where it hurts and what makes it worse?"
	case strings.Contains(text, "medication"):
		return "Thank you for sharing about your medication. It's important for us to know this for your treatment plan."
	case strings.Contains(text, "exercise"):
		return "Exercises are an important part of physiotherapy. We'll make sure to develop a suitable program for you."
	default:
		return "Thank you for sharing that information. It will help us provide better care for you."
	}
}

// ChatOrCanned asks the model and absorbs every failure into a canned
// sentence. It never returns an error.
func (c *Client) ChatOrCanned(ctx context.Context, systemRole, prompt string) string {
	reply, err := c.Ask(ctx, systemRole, prompt)
	if err != nil {
		c.logger.Warn("chat failed, using canned reply", "error", err)
		return Canned(prompt)
	}
	return reply
}

// Interpret asks the model to summarize a subject's answer to a question.
func (c *Client) Interpret(ctx context.Context, question, response string) string {
	return c.ChatOrCanned(ctx,
		"Summarize the patient's response concisely and extract key medical information.",
		"Interpret this patient response to '"+question+"': "+response)
}

// Summarize asks the model to condense an assessment answer.
func (c *Client) Summarize(ctx context.Context, response string) string {
	return c.ChatOrCanned(ctx,
		"Extract key physiotherapy assessment information.",
		"Summarize this physiotherapy assessment response concisely: "+response)
}

// defaultAssessmentQuestions is the canned question set used when the model
// cannot produce a parseable list.
var defaultAssessmentQuestions = []string{
	"Can you describe where you're experiencing pain or discomfort?",
	"On a scale of 0-10, how would you rate your pain, with 10 being the most severe?",
	"What movements or activities make your symptoms worse?",
	"What daily activities are difficult for you because of this issue?",
	"Have you had physiotherapy for this condition before? If so, what worked or didn't work?",
}

// AssessmentQuestions asks the model to generate assessment questions as a
// JSON list, falling back to the fixed set when the model fails or the reply
// does not parse.
func (c *Client) AssessmentQuestions(ctx context.Context) []string {
	reply, err := c.Ask(ctx,
		"You are a physiotherapy assistant generating assessment questions. Respond with a JSON list of question strings only.",
		"Generate 5 specific physiotherapy assessment questions.")
	if err != nil {
		c.logger.Warn("question generation failed, using canned set", "error", err)
		return defaultAssessmentQuestions
	}

	var questions []string
	if err := json.Unmarshal([]byte(extractJSONArray(reply)), &questions); err != nil || len(questions) == 0 {
		c.logger.Warn("unparseable question list, using canned set")
		return defaultAssessmentQuestions
	}
	return questions
}

// extractJSONArray pulls the outermost [...] out of a reply that may wrap
// the list in prose or a code fence.
func extractJSONArray(reply string) string {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return reply
	}
	return reply[start : end+1]
}
