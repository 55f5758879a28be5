package slots

import (
	"fmt"
	"strings"
)

// Profile bundles everything one demo agent needs: the schema to fill,
// the trigger heuristic that opens a session, and the wording of the
// conversation around it.
type Profile struct {
	Name       string
	Greeting   string
	FilePrefix string
	Schema     Schema
	// Triggers are phrases that mark an utterance as the start of this
	// profile's flow, in addition to any schema vocabulary member.
	Triggers []string
	// SystemPrompt seeds the general-purpose fallback model.
	SystemPrompt string
	Summary      func(Record) string
}

// LooksLikeIntent reports whether the utterance looks like the start of
// this profile's flow: it mentions a trigger phrase or any vocabulary
// member of the schema.
func LooksLikeIntent(p Profile, text string) bool {
	low := strings.ToLower(strings.TrimSpace(text))
	if low == "" {
		return false
	}
	if containsAnyPhrase(low, p.Triggers) {
		return true
	}
	for _, f := range p.Schema {
		if len(f.Vocab) > 0 && containsAnyPhrase(low, f.Vocab) {
			return true
		}
	}
	return false
}

// namePatterns are the prioritized templates for extracting a person's
// name, anchored at the end of the utterance.
func namePatterns() []Pattern {
	return []Pattern{
		MustPattern(`(?i)\bmy name is ([A-Za-z ]+)$`),
		MustPattern(`(?i)\bthis is ([A-Za-z ]+)$`),
		MustPattern(`(?i)\bit'?s ([A-Za-z ]+)$`),
		MustPattern(`(?i)\bfor ([A-Za-z ]+)$`),
		MustPattern(`(?i)\bname[:\- ]*([A-Za-z ]+)$`),
		MustPattern(`(?i)\bis ([A-Za-z]+)$`),
	}
}

// CoffeeProfile is the barista agent: a five-slot coffee order.
func CoffeeProfile() Profile {
	schema := Schema{
		{Key: "drinkType", Prompt: "What would you like to drink? (e.g., latte, americano, cappuccino)", Kind: KindEnum,
			Vocab: []string{"latte", "cappuccino", "americano", "espresso", "mocha", "flat white", "macchiato", "cold brew", "iced latte"}},
		{Key: "size", Prompt: "What size would you like? (small / medium / large)", Kind: KindEnum,
			Vocab: []string{"small", "medium", "large"}},
		{Key: "milk", Prompt: "Any milk preference? (dairy / oat / almond / none)", Kind: KindEnum,
			Vocab: []string{"dairy", "oat", "almond", "soy", "none", "whole", "skim", "regular"}},
		{Key: "extras", Prompt: "Any extras? (e.g., whipped cream, caramel, extra shot). Say 'none' if no extras.", Kind: KindList,
			Vocab: []string{"whipped cream", "whipped", "caramel", "extra shot", "vanilla", "syrup", "sugar", "honey"}},
		{Key: "name", Prompt: "Name for the order, please.", Kind: KindFree, Patterns: namePatterns()},
	}
	return Profile{
		Name:         "barista",
		Greeting:     "Welcome to JavaBean! I'm your barista. What would you like to have today?",
		FilePrefix:   "order",
		Schema:       schema,
		Triggers:     []string{"order", "want", "i'd like", "please", "for here", "to go", "takeaway", "grab"},
		SystemPrompt: "You are a friendly coffee shop assistant. Keep replies short and conversational.",
		Summary: func(r Record) string {
			extras, _ := r.List("extras")
			extrasLine := "None"
			if len(extras) > 0 {
				extrasLine = strings.Join(extras, ", ")
			}
			return fmt.Sprintf("Order Summary:\n- Name: %s\n- Drink: %s (%s)\n- Milk: %s\n- Extras: %s\n",
				r.Scalar("name"), r.Scalar("drinkType"), r.Scalar("size"), r.Scalar("milk"), extrasLine)
		},
	}
}

// WellnessProfile is a daily check-in agent.
func WellnessProfile() Profile {
	schema := Schema{
		{Key: "mood", Prompt: "How are you feeling today? (great / good / okay / low / stressed)", Kind: KindEnum,
			Vocab: []string{"great", "good", "okay", "fine", "low", "sad", "stressed", "tired", "anxious"}},
		{Key: "sleep", Prompt: "How many hours did you sleep last night?", Kind: KindFree, Patterns: []Pattern{
			MustPattern(`(?i)\b(\d{1,2}(?:\.\d)?) ?(?:hours|hrs|h)\b`),
			MustPattern(`(?i)\bslept (?:for )?(\d{1,2}(?:\.\d)?)\b`),
			MustPattern(`^(\d{1,2}(?:\.\d)?)$`),
		}},
		{Key: "symptoms", Prompt: "Any symptoms to note? (e.g., headache, fatigue). Say 'none' if you feel fine.", Kind: KindList,
			Vocab: []string{"headache", "fatigue", "nausea", "fever", "cough", "sore throat", "back pain", "insomnia"}},
		{Key: "name", Prompt: "And your name, please.", Kind: KindFree, Patterns: namePatterns()},
	}
	return Profile{
		Name:         "wellness",
		Greeting:     "Hi! Time for your daily check-in. How are you feeling today?",
		FilePrefix:   "checkin",
		Schema:       schema,
		Triggers:     []string{"check in", "check-in", "checkin", "feeling", "slept", "wellness"},
		SystemPrompt: "You are a gentle wellness companion. Keep replies short, warm, and never give medical advice.",
		Summary: func(r Record) string {
			symptoms, _ := r.List("symptoms")
			line := "none"
			if len(symptoms) > 0 {
				line = strings.Join(symptoms, ", ")
			}
			return fmt.Sprintf("Check-in Summary:\n- Name: %s\n- Mood: %s\n- Sleep: %s hours\n- Symptoms: %s\n",
				r.Scalar("name"), r.Scalar("mood"), r.Scalar("sleep"), line)
		},
	}
}

// LeadProfile captures a sales lead.
func LeadProfile() Profile {
	schema := Schema{
		{Key: "product", Prompt: "Which product are you interested in? (starter / team / enterprise)", Kind: KindEnum,
			Vocab: []string{"starter", "team", "enterprise"}},
		{Key: "company", Prompt: "What company are you with?", Kind: KindFree, Patterns: []Pattern{
			MustPattern(`(?i)\b(?:i work (?:at|for)|we are|we're|company is) ([A-Za-z0-9 .&-]+)$`),
			MustPattern(`(?i)\bfrom ([A-Za-z0-9 .&-]+)$`),
		}},
		{Key: "budget", Prompt: "Do you have a budget range in mind?", Kind: KindFree, Patterns: []Pattern{
			MustPattern(`(?i)\b(?:budget (?:is|of) |around |about |up to )?\$? ?(\d[\d,]*(?:k)?)(?: dollars| usd)?$`),
		}},
		{Key: "interests", Prompt: "Which capabilities matter most? (e.g., analytics, support, integrations). Say 'none' to skip.", Kind: KindList,
			Vocab: []string{"analytics", "support", "integrations", "security", "onboarding", "reporting", "api access"}},
		{Key: "name", Prompt: "Who should we follow up with? Your name, please.", Kind: KindFree, Patterns: namePatterns()},
	}
	return Profile{
		Name:         "leads",
		Greeting:     "Thanks for reaching out! I can get you set up with the right plan. Which product are you interested in?",
		FilePrefix:   "lead",
		Schema:       schema,
		Triggers:     []string{"pricing", "demo", "sales", "quote", "trial", "interested"},
		SystemPrompt: "You are a concise, helpful pre-sales assistant. Answer product questions briefly and honestly.",
		Summary: func(r Record) string {
			interests, _ := r.List("interests")
			line := "none"
			if len(interests) > 0 {
				line = strings.Join(interests, ", ")
			}
			return fmt.Sprintf("Lead Summary:\n- Name: %s\n- Company: %s\n- Product: %s\n- Budget: %s\n- Interests: %s\n",
				r.Scalar("name"), r.Scalar("company"), r.Scalar("product"), r.Scalar("budget"), line)
		},
	}
}

// FoodProfile is a small takeout ordering agent.
func FoodProfile() Profile {
	schema := Schema{
		{Key: "dish", Prompt: "What would you like to eat? (e.g., margherita pizza, pad thai, caesar salad)", Kind: KindEnum,
			Vocab: []string{"margherita pizza", "pepperoni pizza", "pad thai", "caesar salad", "burger", "veggie burger", "ramen", "burrito", "fish and chips"}},
		{Key: "quantity", Prompt: "How many would you like?", Kind: KindFree, Patterns: []Pattern{
			MustPattern(`(?i)\b(\d{1,2}) (?:of them|orders|portions|please)$`),
			MustPattern(`(?i)^(\d{1,2})$`),
			MustPattern(`(?i)\bmake (?:it|that) (\d{1,2})\b`),
		}},
		{Key: "extras", Prompt: "Any sides or extras? (e.g., fries, garlic bread, extra cheese). Say 'none' if nothing.", Kind: KindList,
			Vocab: []string{"fries", "garlic bread", "extra cheese", "salad", "soda", "ketchup", "hot sauce"}},
		{Key: "name", Prompt: "Name for the order, please.", Kind: KindFree, Patterns: namePatterns()},
	}
	return Profile{
		Name:         "food",
		Greeting:     "Welcome! What can I get started for you today?",
		FilePrefix:   "meal",
		Schema:       schema,
		Triggers:     []string{"order", "hungry", "want", "i'd like", "delivery", "takeout", "to go"},
		SystemPrompt: "You are a cheerful takeout assistant. Keep replies short and to the point.",
		Summary: func(r Record) string {
			extras, _ := r.List("extras")
			line := "None"
			if len(extras) > 0 {
				line = strings.Join(extras, ", ")
			}
			return fmt.Sprintf("Order Summary:\n- Name: %s\n- Dish: %s x%s\n- Extras: %s\n",
				r.Scalar("name"), r.Scalar("dish"), r.Scalar("quantity"), line)
		},
	}
}
