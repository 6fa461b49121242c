package questions

// QuestionView is the outbound representation of a question. The correct
// answer is omitted from the JSON entirely unless the caller's role grants
// the privileged view, making "masked" a property of the type rather than a
// runtime convention on the stored entity.
type QuestionView struct {
	PreguntaID    int64  `json:"preguntaId"`
	Contenido     string `json:"contenido"`
	Imagen        string `json:"imagen"`
	Opcion1       string `json:"opcion1"`
	Opcion2       string `json:"opcion2"`
	Opcion3       string `json:"opcion3"`
	Opcion4       string `json:"opcion4"`
	Respuesta     string `json:"respuesta,omitempty"`
	RespuestaDada string `json:"respuestaDada,omitempty"`
	ExamenID      int64  `json:"examenId"`
}

// NewQuestionView builds the outbound view. includeAnswer comes from the
// caller's role, never from which endpoint was hit. Building a view from an
// already-masked view input is a no-op.
func NewQuestionView(q Pregunta, includeAnswer bool) QuestionView {
	v := QuestionView{
		PreguntaID:    q.PreguntaID,
		Contenido:     q.Contenido,
		Imagen:        q.Imagen,
		Opcion1:       q.Opcion1,
		Opcion2:       q.Opcion2,
		Opcion3:       q.Opcion3,
		Opcion4:       q.Opcion4,
		RespuestaDada: q.RespuestaDada,
		ExamenID:      q.ExamenID,
	}
	if includeAnswer {
		v.Respuesta = q.Respuesta
	}
	return v
}

// NewQuestionViews maps a question slice through NewQuestionView.
func NewQuestionViews(qs []Pregunta, includeAnswer bool) []QuestionView {
	views := make([]QuestionView, 0, len(qs))
	for _, q := range qs {
		views = append(views, NewQuestionView(q, includeAnswer))
	}
	return views
}
