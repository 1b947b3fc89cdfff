// Package triage fronts the backend's disease-code search and symptom
// analyzer, and maps conditions to the specialist worth seeing.
package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayursync/web/internal/model"
)

// DefaultSpecialist is recommended when no mapping matches.
const DefaultSpecialist = "General Physician"

// specialistByDisease routes a diagnosed condition to a specialty. Lookup is
// exact first, then by substring of the disease name.
var specialistByDisease = map[string]string{
	"Asthma":                                 "Pulmonologist",
	"Bronchial Asthma":                       "Pulmonologist",
	"Diabetes":                               "Endocrinologist",
	"Diabetes Type 2":                        "Endocrinologist",
	"Hypertension":                           "Cardiologist",
	"Heart attack":                           "Cardiologist",
	"Migraine":                               "Neurologist",
	"Paralysis":                              "Neurologist",
	"Jaundice":                               "Gastroenterologist",
	"Malaria":                                "General Physician",
	"Dengue":                                 "General Physician",
	"Typhoid":                                "General Physician",
	"Pneumonia":                              "Pulmonologist",
	"Arthritis":                              "Rheumatologist",
	"Acne":                                   "Dermatologist",
	"Psoriasis":                              "Dermatologist",
	"Fungal infection":                       "Dermatologist",
	"GERD":                                   "Gastroenterologist",
	"Common Cold":                            "General Physician",
	"Tuberculosis":                           "Pulmonologist",
	"(vertigo) Paroymsal Positional Vertigo": "Neurologist",
	"Urinary tract infection":                "Urologist",
	"Hypothyroidism":                         "Endocrinologist",
}

// Specialist resolves the recommended specialty for a disease name,
// case-insensitively: exact match first, then by substring.
func Specialist(disease string) string {
	disease = strings.ToLower(strings.TrimSpace(disease))
	if disease == "" {
		return DefaultSpecialist
	}
	for name, s := range specialistByDisease {
		if strings.ToLower(name) == disease {
			return s
		}
	}
	for name, s := range specialistByDisease {
		if strings.Contains(disease, strings.ToLower(name)) {
			return s
		}
	}
	return DefaultSpecialist
}

type Backend interface {
	SearchDisease(ctx context.Context, query string) (*model.DiseaseResult, error)
	AnalyzeSymptoms(ctx context.Context, symptoms string) (*model.SymptomReport, error)
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Search looks a disease up and fills in the specialist when the backend
// left it blank.
func (s *Service) Search(ctx context.Context, query string) (*model.DiseaseResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("enter a disease to search for")
	}

	result, err := s.backend.SearchDisease(ctx, query)
	if err != nil {
		return nil, err
	}
	if result.Specialist == "" {
		result.Specialist = Specialist(result.Name)
	}
	return result, nil
}

// Analyze runs the symptom description through the backend model.
func (s *Service) Analyze(ctx context.Context, symptoms string) (*model.SymptomReport, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, fmt.Errorf("describe your symptoms first")
	}

	report, err := s.backend.AnalyzeSymptoms(ctx, symptoms)
	if err != nil {
		return nil, err
	}
	if report.Specialty == "" {
		report.Specialty = Specialist(report.Disease)
	}
	return report, nil
}
