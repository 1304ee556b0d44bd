package assistant

import "github.com/WorksphereAI/worksphereai-sub002/pkg/models"

// Assemble converts a handler envelope into the wire response shape.
// It carries no business logic: empty action and suggestion lists are
// dropped from the serialized body via omitempty.
func Assemble(env *models.Envelope) *models.AssistantResponse {
	return &models.AssistantResponse{
		Response:    env.Text,
		Actions:     env.Actions,
		Suggestions: env.Suggestions,
	}
}
