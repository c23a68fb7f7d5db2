package config

type AI string

const (
	AIGemini AI = "gemini"
	AIOpenAI AI = "openai"
)

type Model string

const (
	ModelGeminiV25Pro       Model = "gemini-2.5-pro"
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"

	ModelGPTV4o     Model = "gpt-4o"
	ModelGPTV4oMini Model = "gpt-4o-mini"
)

func SupportedAIs() []AI {
	return []AI{
		AIOpenAI,
		AIGemini,
	}
}

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIGemini:
		return []Model{
			ModelGeminiV25Pro,
			ModelGeminiV25Flash,
			ModelGeminiV25FlashLite,
		}
	case AIOpenAI:
		return []Model{
			ModelGPTV4o,
			ModelGPTV4oMini,
		}
	default:
		return []Model{}
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(ai AI) Model {
	switch ai {
	case AIGemini:
		return ModelGeminiV25Flash
	default:
		return ModelGPTV4oMini
	}
}

func IsSupportedAI(ai AI) bool {
	for _, s := range SupportedAIs() {
		if s == ai {
			return true
		}
	}
	return false
}
