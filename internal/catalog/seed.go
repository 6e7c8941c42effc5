package catalog

import "github.com/toolhub/toolhub/internal/domain"

// DefaultSeed is the built-in seed set used when neither the
// persistence store nor a seed file yields a catalog.
func DefaultSeed() []domain.Tool {
	return []domain.Tool{
		{
			ID:            "1",
			Name:          "ChatGPT",
			Description:   "Advanced conversational AI for writing, coding, and analysis.",
			DescriptionZh: "用于写作、编程与分析的对话式 AI。",
			Category:      domain.CategoryText,
			URL:           "https://chat.openai.com",
			IconURL:       "https://www.google.com/s2/favicons?domain=chat.openai.com&sz=128",
			Tags:          []string{"chatbot", "writing", "assistant"},
			IsFeatured:    true,
		},
		{
			ID:            "2",
			Name:          "Midjourney",
			Description:   "High-quality artistic image generation from text prompts.",
			DescriptionZh: "从文本提示生成高质量艺术图像。",
			Category:      domain.CategoryImage,
			URL:           "https://www.midjourney.com",
			IconURL:       "https://www.google.com/s2/favicons?domain=www.midjourney.com&sz=128",
			Tags:          []string{"art", "generation", "creative"},
			IsFeatured:    true,
		},
		{
			ID:            "3",
			Name:          "Jasper",
			Description:   "AI content creator for marketing teams and blogs.",
			DescriptionZh: "面向营销团队与博客的 AI 内容创作工具。",
			Category:      domain.CategoryMarketing,
			URL:           "https://www.jasper.ai",
			IconURL:       "https://www.google.com/s2/favicons?domain=www.jasper.ai&sz=128",
			Tags:          []string{"copywriting", "seo", "blogging"},
		},
		{
			ID:            "4",
			Name:          "GitHub Copilot",
			Description:   "Your AI pair programmer that helps write better code.",
			DescriptionZh: "帮助你写出更好代码的 AI 结对程序员。",
			Category:      domain.CategoryCode,
			URL:           "https://github.com/features/copilot",
			IconURL:       "https://www.google.com/s2/favicons?domain=github.com&sz=128",
			Tags:          []string{"coding", "developer", "autocomplete"},
		},
		{
			ID:            "5",
			Name:          "Runway",
			Description:   "Advanced video editing and generation suite powered by AI.",
			DescriptionZh: "由 AI 驱动的视频编辑与生成套件。",
			Category:      domain.CategoryVideo,
			URL:           "https://runwayml.com",
			IconURL:       "https://www.google.com/s2/favicons?domain=runwayml.com&sz=128",
			Tags:          []string{"video editing", "vfx", "generation"},
		},
		{
			ID:            "6",
			Name:          "ElevenLabs",
			Description:   "The most realistic text-to-speech and voice cloning software.",
			DescriptionZh: "逼真的文本转语音与声音克隆软件。",
			Category:      domain.CategoryAudio,
			URL:           "https://elevenlabs.io",
			IconURL:       "https://www.google.com/s2/favicons?domain=elevenlabs.io&sz=128",
			Tags:          []string{"tts", "voice", "audio"},
		},
		{
			ID:            "7",
			Name:          "Canva Magic",
			Description:   "AI-powered design tools integrated into the Canva suite.",
			DescriptionZh: "集成在 Canva 套件中的 AI 设计工具。",
			Category:      domain.CategoryDesign,
			URL:           "https://www.canva.com",
			IconURL:       "https://www.google.com/s2/favicons?domain=www.canva.com&sz=128",
			Tags:          []string{"design", "social media", "easy"},
		},
		{
			ID:            "8",
			Name:          "Notion AI",
			Description:   "Write, plan, and get organized with AI right inside Notion.",
			DescriptionZh: "在 Notion 中用 AI 写作、规划与整理。",
			Category:      domain.CategoryProductivity,
			URL:           "https://www.notion.so",
			IconURL:       "https://www.google.com/s2/favicons?domain=www.notion.so&sz=128",
			Tags:          []string{"notes", "wiki", "productivity"},
		},
	}
}
