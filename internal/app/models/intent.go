package models

// Intent is one knowledge-base entry: a tag, the phrasings that trigger it
// and the canned answers it can return.
type Intent struct {
	Tag       string   `json:"tag"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses"`
}

// KnowledgeBase mirrors the on-disk knowledge_base.json document. It is
// loaded once at startup and never mutated afterwards.
type KnowledgeBase struct {
	Intents []Intent `json:"intents"`
}
