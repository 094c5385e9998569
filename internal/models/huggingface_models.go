package models

type SentimentAnalysisRequest struct {
	Inputs       string `json:"inputs"`
	LanguageCode string `json:"language_code,omitempty"`
}
