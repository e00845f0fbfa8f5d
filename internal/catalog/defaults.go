package catalog

func defaultEntries() []Entry {
	return []Entry{
		{Name: "grok-4-latest", Description: "Grok 4 model with advanced reasoning capabilities."},

		{Name: "gemini-3-pro-preview", Description: "Flagship Gemini 3 Pro model for advanced reasoning and coding tasks."},
		{Name: "gemini-2.5-pro", Description: "Reasoning over complex problems in code, math, and STEM. Analyzing large documents"},
		{Name: "gemini-2.5-flash", Description: "Gemini 2.5 Flash model, optimized for speed and cost."},

		{Name: "claude-opus-4-0", Description: "Most capable and intelligent model yet"},
		{Name: "claude-sonnet-4-0", Description: "High intelligence and balanced performance"},

		{Name: "gpt-5.1", Description: "Flagship model for coding and agentic tasks."},
		{Name: "gpt-5", Description: "Flagship GPT model for complex tasks."},
		{Name: "gpt-5-mini", Description: "Balanced for intelligence, speed, and cost."},
		{Name: "gpt-5-nano", Description: "Fastest, most cost-effective GPT-5 model."},
		{Name: "gpt-4.1", Description: "For complex tasks."},
		{Name: "gpt-4.1-mini", Description: "Balanced for intelligence, speed, and cost."},
		{Name: "gpt-4.1-nano", Description: "Fastest, most cost-effective GPT-4.1 model."},
		{Name: "gpt-4o", Description: "Fast, intelligent, flexible GPT model."},
		{Name: "gpt-4o-mini", Description: "Fast, affordable small model for focused tasks."},
		{Name: "gpt-4o-search-preview", Description: "GPT model for web search in Chat Completions."},
		{Name: "gpt-4o-mini-search-preview", Description: "Fast, affordable small model for web search."},

		{Name: "o4-mini", Description: "Faster, more affordable reasoning model."},
		{Name: "o4-mini-deep-research", Description: "Faster, more affordable deep research model."},

		{Name: "o3", Description: "Our most powerful reasoning model."},
		{Name: "o3-pro", Description: "Version of o3 with more compute for better responses."},
		{Name: "o3-deep-research", Description: "Our most powerful deep research model."},
		{Name: "o3-mini", Description: "A small model alternative to o3."},

		{Name: "gpt-image-1", Description: "Generate images from text prompts.", ImageCapable: true},
	}
}
