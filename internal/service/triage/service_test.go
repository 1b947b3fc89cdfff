package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayursync/web/internal/model"
)

func TestSpecialist(t *testing.T) {
	tests := []struct {
		disease string
		want    string
	}{
		{"Diabetes", "Endocrinologist"},
		{"diabetes", "Endocrinologist"},
		{"  Asthma  ", "Pulmonologist"},
		{"Type 2 Diabetes Mellitus", "Endocrinologist"},
		{"chronic migraine", "Neurologist"},
		{"Common Cold", "General Physician"},
		{"", "General Physician"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Specialist(tt.disease), tt.disease)
	}
}

type fakeBackend struct {
	result *model.DiseaseResult
	report *model.SymptomReport
}

func (f *fakeBackend) SearchDisease(ctx context.Context, query string) (*model.DiseaseResult, error) {
	return f.result, nil
}

func (f *fakeBackend) AnalyzeSymptoms(ctx context.Context, symptoms string) (*model.SymptomReport, error) {
	return f.report, nil
}

func TestSearchFillsSpecialist(t *testing.T) {
	svc := NewService(&fakeBackend{result: &model.DiseaseResult{Name: "Diabetes"}})

	result, err := svc.Search(context.Background(), "  diabetes ")
	require.NoError(t, err)
	assert.Equal(t, "Endocrinologist", result.Specialist)

	_, err = svc.Search(context.Background(), "   ")
	assert.Error(t, err)
}

func TestSearchKeepsBackendSpecialist(t *testing.T) {
	svc := NewService(&fakeBackend{result: &model.DiseaseResult{
		Name:       "Diabetes",
		Specialist: "Diabetologist",
	}})

	result, err := svc.Search(context.Background(), "diabetes")
	require.NoError(t, err)
	assert.Equal(t, "Diabetologist", result.Specialist)
}

func TestAnalyzeFillsSpecialty(t *testing.T) {
	svc := NewService(&fakeBackend{report: &model.SymptomReport{
		Disease: "Asthma",
		Risk:    "Medium",
	}})

	report, err := svc.Analyze(context.Background(), "wheezing and shortness of breath")
	require.NoError(t, err)
	assert.Equal(t, "Pulmonologist", report.Specialty)

	_, err = svc.Analyze(context.Background(), "")
	assert.Error(t, err)
}
