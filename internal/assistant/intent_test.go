package assistant_test

import (
	"testing"

	"folio-go/internal/assistant"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		name string
		text string
		want assistant.Intent
	}{
		{"schedule keyword", "I'd like to SCHEDULE something", assistant.IntentSchedule},
		{"call keyword", "give me a call", assistant.IntentSchedule},
		{"meeting keyword", "can we set up a meeting?", assistant.IntentSchedule},
		{"french rdv", "on peut prendre un rdv ?", assistant.IntentSchedule},
		{"french rendez-vous", "je veux un rendez-vous", assistant.IntentSchedule},
		{"project keyword", "show me your projects", assistant.IntentProjects},
		{"work keyword", "what work have you done", assistant.IntentProjects},
		{"french projet", "parlez-moi de vos projets", assistant.IntentProjects},
		{"service keyword", "what services do you provide", assistant.IntentServices},
		{"help keyword", "I need help", assistant.IntentServices},
		{"french aide", "j'ai besoin d'aide", assistant.IntentServices},
		{"schedule beats project", "schedule a call about my project", assistant.IntentSchedule},
		{"project beats service", "your portfolio offers great services", assistant.IntentProjects},
		{"no match", "what's the weather", assistant.IntentFallback},
		{"empty", "", assistant.IntentFallback},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, assistant.DetectIntent(tc.text))
		})
	}
}
