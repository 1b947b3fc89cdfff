package model

// CarePlan bundles the recommendation lists returned for a disease search.
type CarePlan struct {
	Symptoms []string `json:"symptoms"`
	Diet     []string `json:"diet"`
	Exercise []string `json:"exercise"`
	Yoga     []string `json:"yoga"`
}

// DiseaseCodes carries the dual coding of a condition.
type DiseaseCodes struct {
	ICD11   string `json:"icd11"`
	Namaste string `json:"namaste"`
}

// DiseaseResult is the payload of POST /api/search-disease. The name is
// rendered as plain text; the backend is not trusted to supply markup.
type DiseaseResult struct {
	Name        string       `json:"name"`
	Codes       DiseaseCodes `json:"codes"`
	Description string       `json:"description"`
	CarePlan    CarePlan     `json:"carePlan"`
	Specialist  string       `json:"specialist"`
}

// SymptomReport is the payload of POST /api/analyze-symptoms.
type SymptomReport struct {
	Disease   string `json:"disease"`
	Risk      string `json:"risk"`
	Specialty string `json:"specialty"`
	Advice    string `json:"advice"`
}
