package prompt

import (
	"fmt"
	"strings"
)

func buildRoadmapPrompt(profile Profile, targetRole string) string {
	sb := &strings.Builder{}
	sb.WriteString("You are an expert career coach and learning strategist. Based on the following user profile and their target job role, generate a detailed, personalized learning roadmap.\n\n")
	writeProfile(sb, profile)
	fmt.Fprintf(sb, "\nTarget Role: %s\n\n", targetRole)
	sb.WriteString(`Generate a roadmap as a JSON object with two main keys: "nodes" and "dependencies".

- "nodes": An array of learning modules. Each node should be an object with:
    - "id": A unique integer identifier for the node (e.g., 1, 2, 3).
    - "title": A concise name for the learning module (e.g., "Mastering React Hooks").
    - "details": A detailed, 2-3 sentence description of what the user will learn and why it's important for the target role.
    - "resources": An array of 2-3 high-quality, real-world learning resources (articles, tutorials, documentation). Each resource should be an object with "title" and "url".

- "dependencies": An array of objects representing the relationships between nodes. Each object should have:
    - "source": The "id" of the node that must be completed first.
    - "target": The "id" of the node that depends on the source.

Respond strictly with JSON. Ensure the roadmap is comprehensive, logical, and tailored to the user's profile and goals. The roadmap should contain at least 10 nodes.`)
	return sb.String()
}

func buildJobSuggestionsPrompt(profile Profile) string {
	sb := &strings.Builder{}
	sb.WriteString("Based on the following user profile, suggest 5 relevant and diverse job profiles. For each job profile, provide a title and a short description (1-2 sentences).\n\n")
	writeProfile(sb, profile)
	sb.WriteString(`
Return the suggestions as a JSON array of objects, where each object has a "title" and a "description" property. Respond strictly with JSON.`)
	return sb.String()
}

func buildChatPrompt(message, locale string) string {
	if locale == "" || locale == "en" {
		return message
	}
	return fmt.Sprintf("%s\n\n(Answer in the language with ISO code '%s'.)", message, locale)
}

func buildImproveTextPrompt(text string) string {
	return fmt.Sprintf("You are an expert career coach and resume writer. Rewrite the following resume text to be more impactful, professional, and achievement-oriented. Use strong action verbs and quantify results where possible. Keep the tone professional. Respond with the rewritten text only. Here is the text to improve: %s", text)
}

func writeProfile(sb *strings.Builder, profile Profile) {
	experience := profile.Experience
	if experience == "" {
		experience = "Not specified"
	}
	sb.WriteString("User Profile:\n")
	fmt.Fprintf(sb, "- Bio: %s\n", profile.Bio)
	fmt.Fprintf(sb, "- Skills: %s\n", strings.Join(profile.Skills, ", "))
	fmt.Fprintf(sb, "- Industry: %s\n", profile.Industry)
	fmt.Fprintf(sb, "- Experience: %s\n", experience)
}
