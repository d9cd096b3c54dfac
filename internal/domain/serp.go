package domain

// SERPAnalysis captures which features appear on a results page for
// one keyword, with the extracted content per feature.
type SERPAnalysis struct {
	Keyword         string          `json:"keyword"`
	CheckDate       string          `json:"check_date"`
	CheckTime       string          `json:"check_time"`
	FeaturedSnippet FeaturedSnippet `json:"featured_snippet"`
	PeopleAlsoAsk   PeopleAlsoAsk   `json:"people_also_ask"`
	KnowledgePanel  KnowledgePanel  `json:"knowledge_panel"`
	LocalPack       LocalPack       `json:"local_pack"`
	VideoResults    VideoResults    `json:"video_results"`
	ImagePack       ImagePack       `json:"image_pack"`
	SiteLinks       SiteLinks       `json:"site_links"`
	TopStories      TopStories      `json:"top_stories"`
	OrganicResults  OrganicSummary  `json:"organic_results"`
}

type FeaturedSnippet struct {
	Present   bool   `json:"present"`
	Content   string `json:"content,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

type PeopleAlsoAsk struct {
	Present   bool     `json:"present"`
	Count     int      `json:"count"`
	Questions []string `json:"questions,omitempty"`
}

type KnowledgePanel struct {
	Present     bool   `json:"present"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
}

type LocalPack struct {
	Present    bool     `json:"present"`
	Count      int      `json:"count"`
	Businesses []string `json:"businesses,omitempty"`
}

type VideoResults struct {
	Present bool     `json:"present"`
	Count   int      `json:"count"`
	Videos  []string `json:"videos,omitempty"`
}

type ImagePack struct {
	Present bool `json:"present"`
}

type SiteLinks struct {
	Present bool     `json:"present"`
	Count   int      `json:"count"`
	Links   []string `json:"links,omitempty"`
}

type TopStories struct {
	Present   bool     `json:"present"`
	Count     int      `json:"count"`
	Headlines []string `json:"headlines,omitempty"`
}

type OrganicSummary struct {
	Count int `json:"count"`
}
