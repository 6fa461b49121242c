package questions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePregunta() Pregunta {
	return Pregunta{
		PreguntaID:    7,
		Contenido:     "Contenido de la pregunta",
		Imagen:        "imagen.png",
		Opcion1:       "Opción 1",
		Opcion2:       "Opción 2",
		Opcion3:       "Opción 3",
		Opcion4:       "Opción 4",
		Respuesta:     "Opción 2",
		RespuestaDada: "Opción 1",
		ExamenID:      3,
	}
}

func TestNewQuestionViewMasksOnlyTheAnswer(t *testing.T) {
	q := samplePregunta()

	masked := NewQuestionView(q, false)
	assert.Empty(t, masked.Respuesta)

	// Every other field passes through untouched.
	assert.Equal(t, q.PreguntaID, masked.PreguntaID)
	assert.Equal(t, q.Contenido, masked.Contenido)
	assert.Equal(t, q.Imagen, masked.Imagen)
	assert.Equal(t, q.Opcion1, masked.Opcion1)
	assert.Equal(t, q.Opcion2, masked.Opcion2)
	assert.Equal(t, q.Opcion3, masked.Opcion3)
	assert.Equal(t, q.Opcion4, masked.Opcion4)
	assert.Equal(t, q.RespuestaDada, masked.RespuestaDada)
	assert.Equal(t, q.ExamenID, masked.ExamenID)
}

func TestNewQuestionViewPrivilegedIsIdentity(t *testing.T) {
	q := samplePregunta()
	v := NewQuestionView(q, true)
	assert.Equal(t, q.Respuesta, v.Respuesta)
	assert.Equal(t, q.Contenido, v.Contenido)
}

func TestNewQuestionViewIsIdempotent(t *testing.T) {
	q := samplePregunta()
	q.Respuesta = "" // already masked upstream

	v := NewQuestionView(q, false)
	assert.Empty(t, v.Respuesta)
	assert.Equal(t, q.Contenido, v.Contenido)
}

func TestMaskedViewOmitsAnswerFromJSON(t *testing.T) {
	data, err := json.Marshal(NewQuestionView(samplePregunta(), false))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "respuesta")
	assert.Contains(t, fields, "contenido")
	assert.Contains(t, fields, "opcion4")
}

func TestNewQuestionViews(t *testing.T) {
	qs := []Pregunta{samplePregunta(), samplePregunta()}
	views := NewQuestionViews(qs, false)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Empty(t, v.Respuesta)
	}

	assert.Empty(t, NewQuestionViews(nil, false))
}
