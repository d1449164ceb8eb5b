package mockapi

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	Text *string `json:"text" binding:"required"`
}

// BatchPredictRequest is the body of POST /predict-batch.
type BatchPredictRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// PredictResponse is the classification result for one text.
type PredictResponse struct {
	Label           string             `json:"label"`
	Score           float64            `json:"score"`
	Probabilities   map[string]float64 `json:"probabilities"`
	HoaxProbability float64            `json:"hoax_probability"`
	RiskLevel       string             `json:"risk_level"`
	RiskExplanation string             `json:"risk_explanation"`
}

// BatchPredictResponse wraps results in request order.
type BatchPredictResponse struct {
	Results []PredictResponse `json:"results"`
}

// InfoResponse describes the running service.
type InfoResponse struct {
	Message        string            `json:"message"`
	ModelID        string            `json:"model_id"`
	Labels         map[int]string    `json:"labels"`
	RiskThresholds map[string]string `json:"risk_thresholds"`
	Logging        LoggingInfo       `json:"logging"`
}

// LoggingInfo reports the sampled logging settings.
type LoggingInfo struct {
	Enabled    bool    `json:"enabled"`
	SampleRate float64 `json:"sample_rate"`
}
