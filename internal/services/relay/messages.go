package relay

import (
	"errors"

	"DashPull/internal/domain/models"
)

var errorTexts = map[string][2]string{
	models.LangFR: {
		"La réponse a pris trop de temps. Veuillez réessayer.",
		"Désolé, une erreur est survenue. Veuillez réessayer.",
	},
	models.LangEN: {
		"Response took too long. Please try again.",
		"Sorry, an error occurred. Please try again.",
	},
}

// ErrorMessage returns the user-facing text for a failed call.
func ErrorMessage(lang string, err error) string {
	texts := errorTexts[models.NormalizeLang(lang)]
	if errors.Is(err, models.ErrRelayTimeout) {
		return texts[0]
	}
	return texts[1]
}

var widgetStrings = map[string]models.ChatStrings{
	models.LangFR: {
		Welcome:     "Bonjour ! Je suis Midolli-AI, l'assistant de Rafael Midolli. Je connais tout sur son parcours de Data Analyst, ses projets et son expertise. Comment puis-je vous aider ?",
		Chips:       []string{"🎓 Formation", "📊 Résultats", "🛠️ Stack", "📁 Projets"},
		Placeholder: "Posez votre question...",
		Disclaimer:  "Midolli-AI peut faire des erreurs.",
		Subtitle:    "Assistant Data Portfolio",
		Send:        "Envoyer",
		Responded:   "répondu en",
	},
	models.LangEN: {
		Welcome:     "Hello! I'm Midolli-AI, Rafael Midolli's assistant. I know everything about his Data Analyst journey, projects and expertise. How can I help you?",
		Chips:       []string{"🎓 Education", "📊 Results", "🛠️ Stack", "📁 Projects"},
		Placeholder: "Ask me anything...",
		Disclaimer:  "Midolli-AI can make mistakes.",
		Subtitle:    "Data Portfolio Assistant",
		Send:        "Send",
		Responded:   "responded in",
	},
}

// Strings returns a copy of the widget copy for lang.
func Strings(lang string) models.ChatStrings {
	s := widgetStrings[models.NormalizeLang(lang)]
	s.Chips = append([]string(nil), s.Chips...)
	return s
}
