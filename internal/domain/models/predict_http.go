package models

// Requests and responses for the prediction API. Defined in domain for
// consistency and reuse across handlers.

type SentimentRequest struct {
	Text string `json:"text" validate:"required"`
}

type SentimentResponse struct {
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
}

type PredictRequest struct {
	Symbol     string  `json:"symbol" default:"UNKNOWN"`
	NewsText   string  `json:"news_text" validate:"required"`
	OpenPrice  float64 `json:"open_price" validate:"gte=0"`
	ClosePrice float64 `json:"close_price" validate:"gte=0"`
	Volume     float64 `json:"volume" validate:"gte=0"`
}

// Prediction is the model's decision for one sample.
type Prediction struct {
	Direction  string  `json:"direction"`
	Confidence float64 `json:"confidence"`
	Value      int     `json:"prediction_value"`
}

type PredictResponse struct {
	Symbol     string        `json:"symbol"`
	NewsText   string        `json:"news_text"`
	Sentiment  Sentiment     `json:"sentiment"`
	Prediction Prediction    `json:"prediction"`
	Input      PredictInputs `json:"input_features"`
}

// PredictInputs echoes the raw inputs the prediction was built from.
type PredictInputs struct {
	OpenPrice      float64 `json:"open_price"`
	ClosePrice     float64 `json:"close_price"`
	PriceChangePct float64 `json:"price_change_pct"`
	Volume         float64 `json:"volume"`
}

type HealthResponse struct {
	Status            string `json:"status"`
	SentimentAnalyzer bool   `json:"sentiment_analyzer"`
	PredictorModel    bool   `json:"predictor_model"`
}

type StatsResponse struct {
	ModelType         string `json:"model_type"`
	FeatureCount      int    `json:"features_count"`
	TreeCount         int    `json:"tree_count"`
	SentimentAnalyzer string `json:"sentiment_analyzer"`
}
