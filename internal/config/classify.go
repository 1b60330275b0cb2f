package config

// Classifiers are the topic labels the summarizer may assign to a paper.
// The list is presented to the model verbatim; "others" is the catch-all
// and must stay last so prompt examples read naturally.
func Classifiers() []string {
	return []string{
		"multimodal large language model",
		"large language model",
		"long context",
		"key value cache",
		"image generation",
		"video generation",
		"diffusion/flow matching/consistency",
		"retrieval augmented generation",
		"agent",
		"survey",
		"benchmark",
		"autonomous driving",
		"point cloud",
		"vision language action",
		"gauss splatting",
		"slam",
		"anomaly detection",
		"segmentation",
		"neural radiance fields",
		"3d scene generation",
		"reinforcement learning",
		"others",
	}
}

// FilteredClassifiers are dropped entirely from the Markdown digest.
// These topics are tracked for completeness but are outside the digest's
// reading scope.
func FilteredClassifiers() []string {
	return []string{
		"gauss splatting",
		"autonomous driving",
		"point cloud",
		"vision language action",
		"3d scene generation",
		"others",
	}
}

// BoringSections are omitted from the interactive HTML report.
func BoringSections() []string {
	return []string{"others"}
}

// SuperCategories maps a classifier to the digest heading it is rolled
// up under. Classifiers absent from this map fall back to "Others".
func SuperCategories() map[string]string {
	return map[string]string{
		"image generation":                    "Generation",
		"video generation":                    "Generation",
		"diffusion/flow matching/consistency": "Generation",
		"long context":                        "LLM",
		"key value cache":                     "LLM",
		"retrieval augmented generation":      "RAG",
		"multimodal large language model":     "MLLM",
		"large language model":                "LLM",
		"agent":                               "Agent",
		"survey":                              "Survey",
		"benchmark":                           "Benchmark",
		"reinforcement learning":              "LLM",
	}
}

// PromptTemplate is the summarization prompt. The two %s verbs receive
// the paper title and abstract; the classifier list is appended by the
// summarizer. The model must answer in the exact
// "TL;DR: / Keywords: / Classifier:" block format the parser expects.
const PromptTemplate = `Title:
%s

Abstract:
%s

You are a research assistant tasked with analyzing and categorizing AI research papers. Please analyze this paper and provide:

1. A concise TL;DR summary (1-3 sentences) capturing the main contribution and significance.
   Example: "This paper proposes a training-free method for token reduction in MLLMs that improves inference speed by 30%% with minimal accuracy loss."

2. 3-5 relevant keywords using general technical terms (avoid specific model names).
   Examples: 'Large Language Models', 'Retrieval-Augmented Generation', 'Multimodal Learning', 'Diffusion Models', 'Image Generation'

3. Classify this paper into exactly ONE of these categories: %s
   Choose the most specific category that applies. Select 'Others' only if none fit.

Important guidelines:
- For TL;DR, focus on technical contributions and innovations, not just applications
- For keywords, use standardized technical terms that would help in categorization
- Avoid abbreviations in keywords; use full terms (e.g., "Large Language Models" not "LLM")
- Do not split the one keyword into multiple keywords, for example, "multimodal large language model" is one keyword, not "multimodal" and "large language model"
- Select only ONE classifier that best represents the paper's primary focus, if you cannot decide, select "Others".

Format your response EXACTLY as follows:
TL;DR: [your summary]
Keywords: [comma-separated keywords]
Classifier: single classifier`
